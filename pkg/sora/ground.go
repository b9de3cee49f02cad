package sora

import (
	"fmt"
	"sort"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// GroundRisk is the ground risk resolution for one site.
type GroundRisk struct {
	IntrinsicGRC int                   `json:"intrinsic_grc" yaml:"intrinsic_grc"`
	FinalGRC     int                   `json:"final_grc" yaml:"final_grc"`
	Reductions   []MitigationReduction `json:"reductions,omitempty" yaml:"reductions,omitempty"`
}

// MitigationReduction is the credit one enabled mitigation claimed.
type MitigationReduction struct {
	ID         string            `json:"id" yaml:"id"`
	Robustness tables.Robustness `json:"robustness" yaml:"robustness"`
	Reduction  int               `json:"reduction" yaml:"reduction"`
}

// WithinScope reports whether the final GRC is covered by the SAIL matrix.
func (g GroundRisk) WithinScope() bool { return g.FinalGRC <= tables.MaxFGRC }

// ResolveGroundRisk computes iGRC from the population and UA class, then
// applies every enabled mitigation. Unknown mitigation IDs are rejected
// whether enabled or not. The final GRC is clamped to [0, iGRC] and is never
// clamped to the matrix bound.
func ResolveGroundRisk(p tables.Population, ua tables.UAClass, mitigations map[string]assessment.MitigationConfig) (GroundRisk, error) {
	igrc, err := tables.IntrinsicGRC(p, ua)
	if err != nil {
		return GroundRisk{}, err
	}

	ids := make([]string, 0, len(mitigations))
	for id := range mitigations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := GroundRisk{IntrinsicGRC: igrc}
	total := 0
	for _, id := range ids {
		gm, err := tables.GroundMitigationByID(id)
		if err != nil {
			return GroundRisk{}, err
		}
		cfg := mitigations[id]
		if !cfg.Enabled {
			continue
		}
		r, err := tables.ParseRobustness(cfg.Robustness)
		if err != nil {
			return GroundRisk{}, fmt.Errorf("mitigation %s: %w", id, err)
		}
		red, ok := gm.Reduction(r)
		if !ok {
			return GroundRisk{}, fmt.Errorf("mitigation %s: %w", id,
				&CategoryError{Kind: "robustness for " + id, Value: r.String()})
		}
		total += red
		g.Reductions = append(g.Reductions, MitigationReduction{ID: id, Robustness: r, Reduction: red})
	}

	g.FinalGRC = clamp(igrc-total, 0, igrc)
	return g, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
