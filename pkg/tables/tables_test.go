package tables

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestIntrinsicGRCTotal(t *testing.T) {
	for _, p := range Populations() {
		for _, c := range UAClasses() {
			v, err := IntrinsicGRC(p, c)
			if p == PopulationGathering && c >= UAClass8m {
				require.ErrorIs(t, err, ErrInvalidCategory, "%s/%s", p, c)
				continue
			}
			require.NoError(t, err, "%s/%s", p, c)
			assert.Positive(t, v, "%s/%s", p, c)
		}
	}
}

func TestIntrinsicGRCMonotonic(t *testing.T) {
	for _, c := range UAClasses() {
		prev := 0
		for _, p := range Populations() {
			v, err := IntrinsicGRC(p, c)
			if err != nil {
				continue
			}
			assert.GreaterOrEqual(t, v, prev, "population %s, UA %s", p, c)
			prev = v
		}
	}
	for _, p := range Populations() {
		prev := 0
		for _, c := range UAClasses() {
			v, err := IntrinsicGRC(p, c)
			if err != nil {
				continue
			}
			assert.GreaterOrEqual(t, v, prev, "population %s, UA %s", p, c)
			prev = v
		}
	}
}

func TestIntrinsicGRCRejectsUnset(t *testing.T) {
	_, err := IntrinsicGRC(PopulationUnset, UAClass1m)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = IntrinsicGRC(PopulationUrban, UAClassUnset)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSAILMatrixMonotonic(t *testing.T) {
	for _, a := range ARCs() {
		prev := SAILUnset
		for f := 0; f <= MaxFGRC; f++ {
			s, err := SAILFor(f, a)
			require.NoError(t, err)
			require.True(t, s.Level())
			assert.GreaterOrEqual(t, s.Rank(), prev.Rank(), "fGRC %d ARC %s", f, a)
			prev = s
		}
	}
	for f := 0; f <= MaxFGRC; f++ {
		prev := SAILUnset
		for _, a := range ARCs() {
			s, err := SAILFor(f, a)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, s.Rank(), prev.Rank(), "fGRC %d ARC %s", f, a)
			prev = s
		}
	}
}

func TestSAILScopeBoundary(t *testing.T) {
	s, err := SAILFor(7, ARCb)
	require.NoError(t, err)
	assert.Equal(t, SAILVI, s)

	s, err = SAILFor(8, ARCb)
	require.NoError(t, err)
	assert.Equal(t, SAILOutOfScope, s)
	assert.False(t, s.Level())
	assert.Greater(t, s.Rank(), SAILVI.Rank())

	_, err = SAILFor(-1, ARCa)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = SAILFor(3, ARCUnset)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestOSORequirementsMonotonic(t *testing.T) {
	require.Len(t, OSOs(), 17)
	for _, x := range OSOs() {
		prev := RequirementOptional
		for _, s := range SAILs() {
			q, ok := x.Required(s)
			require.True(t, ok)
			assert.GreaterOrEqual(t, q, prev, "%s at SAIL %s", x.ID, s)
			prev = q
		}
		_, ok := x.Required(SAILOutOfScope)
		assert.False(t, ok)
	}
}

func TestOSOByID(t *testing.T) {
	x, err := OSOByID("OSO08")
	require.NoError(t, err)
	q, _ := x.Required(SAILI)
	assert.Equal(t, RequirementLow, q)

	_, err = OSOByID("OSO99")
	var ce *CategoryError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "OSO99", ce.Value)
}

func TestContainmentRequirementMonotonic(t *testing.T) {
	for _, p := range Populations() {
		prev := RobustnessNone
		for _, s := range SAILs() {
			r, err := ContainmentRequirement(p, s)
			require.NoError(t, err)
			assert.NotEqual(t, RobustnessNone, r)
			assert.GreaterOrEqual(t, r, prev, "%s at SAIL %s", p, s)
			prev = r
		}
	}
	_, err := ContainmentRequirement(PopulationUrban, SAILOutOfScope)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestUAClassFor(t *testing.T) {
	tests := []struct {
		dim, speed float64
		want       UAClass
		ok         bool
	}{
		{0.5, 20, UAClass1m, true},
		{1, 25, UAClass1m, true},
		{1, 26, UAClass3m, true},
		{1.2, 10, UAClass3m, true},
		{8, 75, UAClass8m, true},
		{2, 100, UAClass20m, true},
		{40, 200, UAClass40m, true},
		{41, 10, UAClassUnset, false},
		{0, 10, UAClassUnset, false},
		{1, -1, UAClassUnset, false},
	}
	for _, tt := range tests {
		got, ok := UAClassFor(tt.dim, tt.speed)
		assert.Equal(t, tt.ok, ok, "%g m / %g m/s", tt.dim, tt.speed)
		assert.Equal(t, tt.want, got, "%g m / %g m/s", tt.dim, tt.speed)
	}
}

func TestParseUAClassLabel(t *testing.T) {
	c, err := ParseUAClass("3m_35ms")
	require.NoError(t, err)
	assert.Equal(t, UAClass3m, c)

	c, err = ParseUAClass(UAClass1m.Label())
	require.NoError(t, err)
	assert.Equal(t, UAClass1m, c)

	_, err = ParseUAClass("5m_50ms")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestParseRoundTrip(t *testing.T) {
	for _, p := range Populations() {
		got, err := ParsePopulation(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	for _, a := range ARCs() {
		got, err := ParseARC(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	for _, s := range append(SAILs(), SAILOutOfScope) {
		got, err := ParseSAIL(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	for _, r := range Robustnesses() {
		got, err := ParseRobustness(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := ParsePopulation("downtown")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = ParseARC("e")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	_, err = ParseRobustness("extreme")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestTextMarshalling(t *testing.T) {
	type row struct {
		Population Population `json:"population" yaml:"population"`
		UA         UAClass    `json:"ua" yaml:"ua"`
		ARC        ARC        `json:"arc" yaml:"arc"`
		SAIL       SAIL       `json:"sail" yaml:"sail"`
		Robustness Robustness `json:"robustness" yaml:"robustness"`
	}
	in := row{PopulationSuburban, UAClass20m, ARCc, SAILOutOfScope, RobustnessMedium}

	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"population":"suburban","ua":"20m_120ms","arc":"c","sail":"out_of_scope","robustness":"medium"}`, string(b))
	var out row
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, out)

	y, err := yaml.Marshal(in)
	require.NoError(t, err)
	out = row{}
	require.NoError(t, yaml.Unmarshal(y, &out))
	assert.Equal(t, in, out)

	err = json.Unmarshal([]byte(`{"population":"downtown"}`), &out)
	assert.True(t, errors.Is(err, ErrInvalidCategory), "got %v", err)
}

func TestStepDownFloor(t *testing.T) {
	assert.Equal(t, ARCb, ARCd.StepDown(2))
	assert.Equal(t, ARCa, ARCb.StepDown(1))
	assert.Equal(t, ARCa, ARCb.StepDown(5))
	assert.Equal(t, ARCc, ARCc.StepDown(0))
	for _, a := range ARCs() {
		for n := 0; n <= 4; n++ {
			assert.GreaterOrEqual(t, a.StepDown(n).Rank(), 0)
		}
	}
}

func TestGroundMitigationLevels(t *testing.T) {
	m, err := GroundMitigationByID("M1C")
	require.NoError(t, err)
	red, ok := m.Reduction(RobustnessMedium)
	assert.True(t, ok)
	assert.Equal(t, 2, red)
	_, ok = m.Reduction(RobustnessHigh)
	assert.False(t, ok)
	red, ok = m.Reduction(RobustnessNone)
	assert.True(t, ok)
	assert.Zero(t, red)
	assert.Equal(t, 2, m.MaxReduction())

	_, err = GroundMitigationByID("M3")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestAdjacentAreaDistance(t *testing.T) {
	assert.Equal(t, 5000.0, AdjacentAreaDistance(0))
	assert.Equal(t, 5000.0, AdjacentAreaDistance(20))
	assert.Equal(t, 9000.0, AdjacentAreaDistance(50))
	assert.Equal(t, 35000.0, AdjacentAreaDistance(250))
}

func TestContainmentMethods(t *testing.T) {
	m, err := ContainmentMethodByKey("none")
	require.NoError(t, err)
	assert.Equal(t, RobustnessNone, m.Achievable)

	m, err = ContainmentMethodByKey("tether")
	require.NoError(t, err)
	assert.Equal(t, RobustnessHigh, m.Achievable)
	assert.NotEmpty(t, m.Evidence)

	_, err = ContainmentMethodByKey("net")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestContainmentMethodsAreCopies(t *testing.T) {
	want, err := ContainmentMethodByKey("geofence")
	require.NoError(t, err)
	original := want.Evidence[0]

	for _, m := range ContainmentMethods() {
		for i := range m.Evidence {
			m.Evidence[i] = "edited"
		}
	}
	for _, m := range BuildCatalog().ContainmentMethods {
		for i := range m.Evidence {
			m.Evidence[i] = "edited"
		}
	}
	want.Evidence[0] = "edited"

	got, err := ContainmentMethodByKey("geofence")
	require.NoError(t, err)
	assert.Equal(t, original, got.Evidence[0])
	assert.Equal(t, original, ContainmentMethods()[1].Evidence[0])
}

func TestBuildCatalog(t *testing.T) {
	c := BuildCatalog()
	assert.Len(t, c.Populations, len(Populations()))
	assert.Len(t, c.UAClasses, len(UAClasses()))
	assert.Len(t, c.OSOs, 17)
	assert.Len(t, c.GroundMitigations, 4)
	assert.Len(t, c.TacticalMitigations, 3)
	assert.Equal(t, MaxFGRC, c.MaxFGRC)

	require.Contains(t, c.IntrinsicGRC, "sparsely")
	require.NotNil(t, c.IntrinsicGRC["sparsely"]["1m_25ms"])
	assert.Equal(t, 4, *c.IntrinsicGRC["sparsely"]["1m_25ms"])
	assert.Nil(t, c.IntrinsicGRC["gathering"]["40m_200ms"])
	assert.Equal(t, SAILVI, c.SAILMatrix[7]["b"])

	_, err := json.Marshal(c)
	require.NoError(t, err)
}
