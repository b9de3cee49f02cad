package sora

import (
	"fmt"
	"sort"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// ProjectSummary is the project-level worst case over all sites.
type ProjectSummary struct {
	// SAIL is the highest-ranked site SAIL. OutOfScope outranks VI.
	SAIL           tables.SAIL `json:"sail,omitempty" yaml:"sail,omitempty"`
	GoverningSites []string    `json:"governing_sites,omitempty" yaml:"governing_sites,omitempty"`

	WithinScope     bool     `json:"within_scope" yaml:"within_scope"`
	OutOfScopeSites []string `json:"out_of_scope_sites,omitempty" yaml:"out_of_scope_sites,omitempty"`
	IncompleteSites []string `json:"incomplete_sites,omitempty" yaml:"incomplete_sites,omitempty"`
	InvalidSites    []string `json:"invalid_sites,omitempty" yaml:"invalid_sites,omitempty"`

	// Complete is true when every site evaluated without error.
	Complete             bool `json:"complete" yaml:"complete"`
	OSOCompliant         bool `json:"oso_compliant" yaml:"oso_compliant"`
	ContainmentCompliant bool `json:"containment_compliant" yaml:"containment_compliant"`

	Sites []SiteResult `json:"sites" yaml:"sites"`
}

// Aggregate evaluates each site independently and reduces the results.
// The summary does not depend on the order of sites.
func Aggregate(sites []assessment.SiteAssessment) (ProjectSummary, error) {
	results := make([]SiteResult, len(sites))
	for i := range sites {
		results[i] = Evaluate(sites[i])
	}
	return Summarize(results)
}

// Summarize reduces already computed site results. It is the reduction step
// of Aggregate, exposed for callers that cache per-site results.
func Summarize(results []SiteResult) (ProjectSummary, error) {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.SiteID
	}
	if err := checkIDs(ids); err != nil {
		return ProjectSummary{}, err
	}

	sorted := make([]SiteResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SiteID < sorted[j].SiteID })

	sum := ProjectSummary{Sites: sorted}
	osoOK, containOK := true, true
	for _, r := range sorted {
		switch r.Status {
		case StatusIncomplete:
			sum.IncompleteSites = append(sum.IncompleteSites, r.SiteID)
		case StatusInvalid:
			sum.InvalidSites = append(sum.InvalidSites, r.SiteID)
		case StatusOutOfScope:
			sum.OutOfScopeSites = append(sum.OutOfScopeSites, r.SiteID)
		case StatusOK:
			if r.OSO == nil || !r.OSO.Summary.OverallCompliant {
				osoOK = false
			}
			if r.Containment == nil || !r.Containment.MeetsRequirement {
				containOK = false
			}
		}

		// An invalid site may still carry a resolved SAIL (for example an
		// unknown OSO declaration); it counts toward the worst case.
		if r.SAIL == tables.SAILUnset {
			continue
		}
		switch {
		case r.SAIL.Rank() > sum.SAIL.Rank():
			sum.SAIL = r.SAIL
			sum.GoverningSites = []string{r.SiteID}
		case r.SAIL == sum.SAIL:
			sum.GoverningSites = append(sum.GoverningSites, r.SiteID)
		}
	}

	sum.WithinScope = len(sum.OutOfScopeSites) == 0
	sum.Complete = len(sorted) > 0 && len(sum.IncompleteSites) == 0 && len(sum.InvalidSites) == 0
	ready := sum.Complete && sum.WithinScope
	sum.OSOCompliant = ready && osoOK
	sum.ContainmentCompliant = ready && containOK
	return sum, nil
}

func checkIDs(ids []string) error {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if id == "" {
			return fmt.Errorf("%w: site %d has no id", ErrDuplicateSite, i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateSite, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
