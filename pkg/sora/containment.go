package sora

import (
	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// ContainmentReport is the containment verdict for one site.
type ContainmentReport struct {
	AdjacentIsRiskier  bool              `json:"adjacent_is_riskier" yaml:"adjacent_is_riskier"`
	RequiredRobustness tables.Robustness `json:"required_robustness" yaml:"required_robustness"`
	Method             string            `json:"method" yaml:"method"`
	Achievable         tables.Robustness `json:"achievable" yaml:"achievable"`
	MeetsRequirement   bool              `json:"meets_requirement" yaml:"meets_requirement"`
	AdjacentDistanceM  float64           `json:"adjacent_distance_m" yaml:"adjacent_distance_m"`
	RequiredEvidence   []string          `json:"required_evidence,omitempty" yaml:"required_evidence,omitempty"`
	Evidence           string            `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}

// ResolveContainment checks the declared containment method against what
// the adjacent area demands. When the adjacent area is not riskier than the
// operational area nothing is required. The adjacent distance is derived
// from maxSpeedMS for display only.
func ResolveContainment(sail tables.SAIL, operational, adjacent tables.Population, cfg assessment.ContainmentConfig, maxSpeedMS float64) (ContainmentReport, error) {
	if !operational.Valid() {
		return ContainmentReport{}, &CategoryError{Kind: "population category", Value: operational.String()}
	}
	if !adjacent.Valid() {
		return ContainmentReport{}, &CategoryError{Kind: "adjacent population category", Value: adjacent.String()}
	}

	method := cfg.Method
	if method == "" {
		method = "none"
	}
	cm, err := tables.ContainmentMethodByKey(method)
	if err != nil {
		return ContainmentReport{}, err
	}

	report := ContainmentReport{
		AdjacentIsRiskier:  adjacent.RiskierThan(operational),
		RequiredRobustness: tables.RobustnessNone,
		Method:             cm.Key,
		Achievable:         cm.Achievable,
		AdjacentDistanceM:  tables.AdjacentAreaDistance(maxSpeedMS),
		RequiredEvidence:   cm.Evidence,
		Evidence:           cfg.Evidence,
	}
	if !report.AdjacentIsRiskier {
		report.MeetsRequirement = true
		return report, nil
	}

	required, err := tables.ContainmentRequirement(adjacent, sail)
	if err != nil {
		return ContainmentReport{}, err
	}
	report.RequiredRobustness = required
	report.MeetsRequirement = cm.Achievable.AtLeast(required)
	return report, nil
}
