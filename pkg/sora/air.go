package sora

import (
	"fmt"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// ResolveAirRisk returns the residual ARC. A disabled tactical mitigation
// leaves the initial ARC unchanged; an enabled one steps it down by the
// table reduction, never below ARC-a.
func ResolveAirRisk(initial tables.ARC, t assessment.TacticalConfig) (tables.ARC, error) {
	if !initial.Valid() {
		return tables.ARCUnset, &CategoryError{Kind: "ARC", Value: initial.String()}
	}
	if !t.Enabled {
		return initial, nil
	}

	typ, err := tables.ParseTacticalType(t.Type)
	if err != nil {
		return tables.ARCUnset, err
	}
	r, err := tables.ParseRobustness(t.Robustness)
	if err != nil {
		return tables.ARCUnset, fmt.Errorf("tactical mitigation %s: %w", typ, err)
	}
	tm, err := tables.Tactical(typ)
	if err != nil {
		return tables.ARCUnset, err
	}
	return initial.StepDown(tm.Steps[r]), nil
}
