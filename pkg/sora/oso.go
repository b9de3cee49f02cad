package sora

import (
	"fmt"
	"sort"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// OSOResult is the compliance verdict for one objective.
type OSOResult struct {
	ID        string             `json:"id" yaml:"id"`
	Title     string             `json:"title" yaml:"title"`
	Required  tables.Requirement `json:"required" yaml:"required"`
	Achieved  tables.Robustness  `json:"achieved" yaml:"achieved"`
	Evidence  string             `json:"evidence,omitempty" yaml:"evidence,omitempty"`
	Compliant bool               `json:"compliant" yaml:"compliant"`
}

// OSOSummary totals the per-objective verdicts. TotalRequired counts the
// non-optional objectives.
type OSOSummary struct {
	CompliantCount   int  `json:"compliant_count" yaml:"compliant_count"`
	TotalRequired    int  `json:"total_required" yaml:"total_required"`
	OverallCompliant bool `json:"overall_compliant" yaml:"overall_compliant"`
}

// OSOReport is the compliance check of one site at its SAIL.
type OSOReport struct {
	SAIL    tables.SAIL `json:"sail" yaml:"sail"`
	PerOSO  []OSOResult `json:"per_oso" yaml:"per_oso"`
	Summary OSOSummary  `json:"summary" yaml:"summary"`
}

// CheckOSOCompliance compares declared robustness against the requirement
// of every catalog OSO at sail. Undeclared objectives count as "none".
// Declarations for objectives outside the catalog are rejected.
func CheckOSOCompliance(sail tables.SAIL, declared map[string]assessment.OSODeclaration) (OSOReport, error) {
	if !sail.Level() {
		return OSOReport{}, &CategoryError{Kind: "SAIL for OSO requirements", Value: sail.String()}
	}

	ids := make([]string, 0, len(declared))
	for id := range declared {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, err := tables.OSOByID(id); err != nil {
			return OSOReport{}, err
		}
	}

	report := OSOReport{SAIL: sail}
	for _, x := range tables.OSOs() {
		required, _ := x.Required(sail)
		d := declared[x.ID]
		achieved, err := tables.ParseRobustness(d.Robustness)
		if err != nil {
			return OSOReport{}, fmt.Errorf("%s: %w", x.ID, err)
		}

		res := OSOResult{
			ID:        x.ID,
			Title:     x.Title,
			Required:  required,
			Achieved:  achieved,
			Evidence:  d.Evidence,
			Compliant: required.SatisfiedBy(achieved),
		}
		if required != tables.RequirementOptional {
			report.Summary.TotalRequired++
			if res.Compliant {
				report.Summary.CompliantCount++
			}
		}
		report.PerOSO = append(report.PerOSO, res)
	}
	report.Summary.OverallCompliant = report.Summary.CompliantCount == report.Summary.TotalRequired
	return report, nil
}
