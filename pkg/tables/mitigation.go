package tables

import "sort"

// GroundMitigation is a strategic mitigation that reduces the GRC. Not every
// mitigation offers every robustness level.
type GroundMitigation struct {
	ID          string
	Name        string
	Description string
	reductions  map[Robustness]int
}

// Reduction returns the GRC reduction at r, or false when the mitigation
// does not define that level. "none" is always defined and worth 0.
func (m GroundMitigation) Reduction(r Robustness) (int, bool) {
	if r == RobustnessNone {
		return 0, true
	}
	v, ok := m.reductions[r]
	return v, ok
}

// Levels lists the robustness levels this mitigation offers, ascending,
// excluding "none".
func (m GroundMitigation) Levels() []Robustness {
	out := make([]Robustness, 0, len(m.reductions))
	for r := range m.reductions {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MaxReduction is the largest reduction the mitigation can claim.
func (m GroundMitigation) MaxReduction() int {
	best := 0
	for _, v := range m.reductions {
		if v > best {
			best = v
		}
	}
	return best
}

var groundMitigations = []GroundMitigation{
	{
		ID:          "M1A",
		Name:        "Sheltering",
		Description: "Strategic mitigation crediting people sheltered by structures in the operational area",
		reductions:  map[Robustness]int{RobustnessLow: 1, RobustnessMedium: 2},
	},
	{
		ID:          "M1B",
		Name:        "Operational restrictions",
		Description: "Restrictions in time or space that reduce the number of people at risk",
		reductions:  map[Robustness]int{RobustnessMedium: 1, RobustnessHigh: 2},
	},
	{
		ID:          "M1C",
		Name:        "Ground observation",
		Description: "Observers or tactical means that detect and avoid overflight of uninvolved people",
		reductions:  map[Robustness]int{RobustnessLow: 1, RobustnessMedium: 2},
	},
	{
		ID:          "M2",
		Name:        "Effects of impact reduced",
		Description: "Parachute or frangible design reducing energy transferred on impact",
		reductions:  map[Robustness]int{RobustnessMedium: 1, RobustnessHigh: 2},
	},
}

// GroundMitigations returns the catalog in display order.
func GroundMitigations() []GroundMitigation {
	out := make([]GroundMitigation, len(groundMitigations))
	copy(out, groundMitigations)
	return out
}

// GroundMitigationByID looks up M1A, M1B, M1C or M2.
func GroundMitigationByID(id string) (GroundMitigation, error) {
	for _, m := range groundMitigations {
		if m.ID == id {
			return m, nil
		}
	}
	return GroundMitigation{}, invalid("ground mitigation", id)
}

// TacticalType is the operational type a tactical mitigation is claimed for.
type TacticalType int

const (
	TacticalUnset TacticalType = iota
	TacticalVLOS
	TacticalEVLOS
	TacticalBVLOS
	tacticalCount
)

var tacticalNames = [...]string{"", "VLOS", "EVLOS", "BVLOS"}

// TacticalMitigation holds the ARC step reduction per robustness level.
type TacticalMitigation struct {
	Type        TacticalType
	Name        string
	Description string
	Steps       [robustnessCount]int
}

var tacticalMitigations = [...]TacticalMitigation{
	TacticalVLOS: {
		Name:        "Visual line of sight",
		Description: "Remote pilot or visual observers see and avoid conflicting traffic",
		Steps:       [robustnessCount]int{RobustnessLow: 1, RobustnessMedium: 1, RobustnessHigh: 1},
	},
	TacticalEVLOS: {
		Name:        "Extended visual line of sight",
		Description: "Airspace observers relay traffic information to the remote pilot",
		Steps:       [robustnessCount]int{RobustnessLow: 0, RobustnessMedium: 1, RobustnessHigh: 1},
	},
	TacticalBVLOS: {
		Name:        "Beyond visual line of sight",
		Description: "Detect-and-avoid system meeting the tactical mitigation performance requirement",
		Steps:       [robustnessCount]int{RobustnessLow: 1, RobustnessMedium: 2, RobustnessHigh: 3},
	},
}

var (
	_ [len(tacticalNames) - int(tacticalCount)]struct{}
	_ [int(tacticalCount) - len(tacticalNames)]struct{}
	_ [len(tacticalMitigations) - int(tacticalCount)]struct{}
	_ [int(tacticalCount) - len(tacticalMitigations)]struct{}
)

func ParseTacticalType(s string) (TacticalType, error) {
	return parseName[TacticalType]("tactical mitigation type", tacticalNames[:], s)
}

func (t TacticalType) String() string { return nameOf(tacticalNames[:], t) }

func (t TacticalType) Valid() bool { return t > TacticalUnset && t < tacticalCount }

func (t TacticalType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *TacticalType) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*t = TacticalUnset
		return nil
	}
	v, err := ParseTacticalType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Tactical returns the tactical mitigation definition for t.
func Tactical(t TacticalType) (TacticalMitigation, error) {
	if !t.Valid() {
		return TacticalMitigation{}, invalid("tactical mitigation type", t.String())
	}
	m := tacticalMitigations[t]
	m.Type = t
	return m, nil
}

// TacticalMitigations lists all types in declaration order.
func TacticalMitigations() []TacticalMitigation {
	out := make([]TacticalMitigation, 0, tacticalCount-1)
	for t := TacticalVLOS; t < tacticalCount; t++ {
		m, _ := Tactical(t)
		out = append(out, m)
	}
	return out
}
