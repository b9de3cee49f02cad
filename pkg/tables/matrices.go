package tables

import (
	"fmt"
	"strconv"
)

// MaxFGRC is the highest final GRC the SAIL matrix covers. Anything above
// is outside the assessed scope.
const MaxFGRC = 7

// notCovered marks an iGRC cell the methodology does not assess.
const notCovered = -1

// intrinsicGRC is indexed [population][UA class].
var intrinsicGRC = [...][uaClassCount]int{
	//                       1m 3m 8m 20m 40m
	PopulationControlled: {0, 1, 1, 2, 3, 3},
	PopulationRemote:     {0, 2, 3, 4, 5, 6},
	PopulationLightly:    {0, 3, 4, 5, 6, 7},
	PopulationSparsely:   {0, 4, 5, 6, 7, 8},
	PopulationSuburban:   {0, 5, 6, 7, 8, 9},
	PopulationMixed:      {0, 6, 7, 8, 9, 10},
	PopulationUrban:      {0, 6, 7, 8, 9, 10},
	PopulationGathering:  {0, 7, 8, notCovered, notCovered, notCovered},
}

var (
	_ [len(intrinsicGRC) - int(populationCount)]struct{}
	_ [int(populationCount) - len(intrinsicGRC)]struct{}
)

// IntrinsicGRC looks up the iGRC for a population and UA class. Cells the
// table does not cover are reported as invalid categories.
func IntrinsicGRC(p Population, c UAClass) (int, error) {
	if !p.Valid() {
		return 0, invalid("population category", p.String())
	}
	if !c.Valid() {
		return 0, invalid("UA characteristic", c.String())
	}
	v := intrinsicGRC[p][c]
	if v == notCovered {
		return 0, invalid("population/UA combination", fmt.Sprintf("%s/%s", p, c))
	}
	return v, nil
}

// sailMatrix is indexed [fGRC 0..7][ARC].
var sailMatrix = [MaxFGRC + 1][arcCount]SAIL{
	//     a      b       c       d
	0: {0, SAILI, SAILII, SAILIV, SAILVI},
	1: {0, SAILI, SAILII, SAILIV, SAILVI},
	2: {0, SAILI, SAILII, SAILIV, SAILVI},
	3: {0, SAILII, SAILII, SAILIV, SAILVI},
	4: {0, SAILIII, SAILIII, SAILIV, SAILVI},
	5: {0, SAILIV, SAILIV, SAILIV, SAILVI},
	6: {0, SAILV, SAILV, SAILV, SAILVI},
	7: {0, SAILVI, SAILVI, SAILVI, SAILVI},
}

// SAILFor maps a final GRC and residual ARC to a SAIL. fGRC above MaxFGRC
// yields SAILOutOfScope.
func SAILFor(fgrc int, a ARC) (SAIL, error) {
	if !a.Valid() {
		return SAILUnset, invalid("ARC", a.String())
	}
	if fgrc < 0 {
		return SAILUnset, invalid("final GRC", strconv.Itoa(fgrc))
	}
	if fgrc > MaxFGRC {
		return SAILOutOfScope, nil
	}
	return sailMatrix[fgrc][a], nil
}

// containmentRequirement is indexed [adjacent population][SAIL].
var containmentRequirement = [...][SAILVI + 1]Robustness{
	//                       I ... VI
	PopulationControlled: {0, RobustnessLow, RobustnessLow, RobustnessLow, RobustnessLow, RobustnessLow, RobustnessLow},
	PopulationRemote:     {0, RobustnessLow, RobustnessLow, RobustnessLow, RobustnessLow, RobustnessMedium, RobustnessMedium},
	PopulationLightly:    {0, RobustnessLow, RobustnessLow, RobustnessLow, RobustnessMedium, RobustnessMedium, RobustnessMedium},
	PopulationSparsely:   {0, RobustnessLow, RobustnessLow, RobustnessMedium, RobustnessMedium, RobustnessMedium, RobustnessHigh},
	PopulationSuburban:   {0, RobustnessMedium, RobustnessMedium, RobustnessMedium, RobustnessMedium, RobustnessHigh, RobustnessHigh},
	PopulationMixed:      {0, RobustnessMedium, RobustnessMedium, RobustnessMedium, RobustnessHigh, RobustnessHigh, RobustnessHigh},
	PopulationUrban:      {0, RobustnessMedium, RobustnessMedium, RobustnessHigh, RobustnessHigh, RobustnessHigh, RobustnessHigh},
	PopulationGathering:  {0, RobustnessHigh, RobustnessHigh, RobustnessHigh, RobustnessHigh, RobustnessHigh, RobustnessHigh},
}

var (
	_ [len(containmentRequirement) - int(populationCount)]struct{}
	_ [int(populationCount) - len(containmentRequirement)]struct{}
)

// ContainmentRequirement is the containment robustness required when the
// adjacent area has population p and the operation is at SAIL s.
func ContainmentRequirement(p Population, s SAIL) (Robustness, error) {
	if !p.Valid() {
		return RobustnessNone, invalid("population category", p.String())
	}
	if !s.Level() {
		return RobustnessNone, invalid("SAIL", s.String())
	}
	return containmentRequirement[p][s], nil
}
