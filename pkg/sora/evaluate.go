package sora

import (
	"slices"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// Status classifies a per-site evaluation.
type Status string

const (
	StatusOK         Status = "ok"
	StatusIncomplete Status = "incomplete"
	StatusInvalid    Status = "invalid"
	StatusOutOfScope Status = "out_of_scope"
)

// SiteResult is everything derived from one SiteAssessment.
type SiteResult struct {
	SiteID   string `json:"site_id" yaml:"site_id"`
	SiteName string `json:"site_name,omitempty" yaml:"site_name,omitempty"`
	Status   Status `json:"status" yaml:"status"`

	IntrinsicGRC int                   `json:"intrinsic_grc" yaml:"intrinsic_grc"`
	FinalGRC     int                   `json:"final_grc" yaml:"final_grc"`
	Reductions   []MitigationReduction `json:"reductions,omitempty" yaml:"reductions,omitempty"`
	InitialARC   tables.ARC            `json:"initial_arc,omitempty" yaml:"initial_arc,omitempty"`
	ResidualARC  tables.ARC            `json:"residual_arc,omitempty" yaml:"residual_arc,omitempty"`
	SAIL         tables.SAIL           `json:"sail,omitempty" yaml:"sail,omitempty"`

	OSO         *OSOReport         `json:"oso,omitempty" yaml:"oso,omitempty"`
	Containment *ContainmentReport `json:"containment,omitempty" yaml:"containment,omitempty"`

	Missing []string `json:"missing,omitempty" yaml:"missing,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// Err returns the error behind an incomplete or invalid status, or nil.
func (r SiteResult) Err() error { return r.err }

// Clone returns a copy of r that shares no slices or reports with it.
func (r SiteResult) Clone() SiteResult {
	r.Reductions = slices.Clone(r.Reductions)
	r.Missing = slices.Clone(r.Missing)
	if r.OSO != nil {
		oso := *r.OSO
		oso.PerOSO = slices.Clone(oso.PerOSO)
		r.OSO = &oso
	}
	if r.Containment != nil {
		c := *r.Containment
		c.RequiredEvidence = slices.Clone(c.RequiredEvidence)
		r.Containment = &c
	}
	return r
}

func (r *SiteResult) fail(status Status, err error) SiteResult {
	r.Status = status
	r.err = err
	r.Error = err.Error()
	return *r
}

// Evaluate runs every resolver over one site. It never returns an error:
// an unknown category marks the site invalid and a missing required field
// marks it incomplete, so a single bad record does not stop a project
// summary. No SAIL is produced for either status.
func Evaluate(site assessment.SiteAssessment) SiteResult {
	res := SiteResult{SiteID: site.ID, SiteName: site.Name}

	var (
		pop      tables.Population
		ua       tables.UAClass
		initial  tables.ARC
		adjacent tables.Population
		err      error
	)
	if site.Population != "" {
		if pop, err = tables.ParsePopulation(site.Population); err != nil {
			return res.fail(StatusInvalid, err)
		}
	}
	if site.UAClass != "" {
		if ua, err = tables.ParseUAClass(site.UAClass); err != nil {
			return res.fail(StatusInvalid, err)
		}
	}
	if site.InitialARC != "" {
		if initial, err = tables.ParseARC(site.InitialARC); err != nil {
			return res.fail(StatusInvalid, err)
		}
	}
	if site.AdjacentPopulation != "" {
		if adjacent, err = tables.ParsePopulation(site.AdjacentPopulation); err != nil {
			return res.fail(StatusInvalid, err)
		}
	}

	if !pop.Valid() {
		res.Missing = append(res.Missing, assessment.FieldPopulation)
	}
	if !ua.Valid() {
		res.Missing = append(res.Missing, assessment.FieldUAClass)
	}
	if !initial.Valid() {
		res.Missing = append(res.Missing, "initial_arc")
	}
	if len(res.Missing) > 0 {
		return res.fail(StatusIncomplete, &IncompleteError{Missing: res.Missing})
	}

	ground, err := ResolveGroundRisk(pop, ua, site.Mitigations)
	if err != nil {
		return res.fail(StatusInvalid, err)
	}
	res.IntrinsicGRC = ground.IntrinsicGRC
	res.FinalGRC = ground.FinalGRC
	res.Reductions = ground.Reductions
	res.InitialARC = initial

	residual, err := ResolveAirRisk(initial, site.Tactical)
	if err != nil {
		return res.fail(StatusInvalid, err)
	}
	res.ResidualARC = residual

	sail, err := ResolveSAIL(ground.FinalGRC, residual)
	if err != nil {
		return res.fail(StatusInvalid, err)
	}
	res.SAIL = sail
	if sail.OutOfScope() {
		res.Status = StatusOutOfScope
		return res
	}

	oso, err := CheckOSOCompliance(sail, site.OSOs)
	if err != nil {
		return res.fail(StatusInvalid, err)
	}
	res.OSO = &oso

	if adjacent.Valid() {
		c, err := ResolveContainment(sail, pop, adjacent, site.Containment, site.MaxSpeedMS())
		if err != nil {
			return res.fail(StatusInvalid, err)
		}
		res.Containment = &c
	} else {
		// Containment cannot be judged yet; the SAIL still stands.
		res.Missing = append(res.Missing, "adjacent_population")
	}

	res.Status = StatusOK
	return res
}
