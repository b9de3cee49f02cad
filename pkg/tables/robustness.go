package tables

// Robustness is the integrity/assurance level of a mitigation or safety
// objective as achieved by the operator.
type Robustness int

const (
	RobustnessNone Robustness = iota
	RobustnessLow
	RobustnessMedium
	RobustnessHigh
	robustnessCount
)

var robustnessNames = [...]string{"none", "low", "medium", "high"}

var (
	_ [len(robustnessNames) - int(robustnessCount)]struct{}
	_ [int(robustnessCount) - len(robustnessNames)]struct{}
)

// ParseRobustness resolves a stored level. The empty string is "none": an
// undeclared level earns no credit.
func ParseRobustness(s string) (Robustness, error) {
	if s == "" {
		return RobustnessNone, nil
	}
	for i, n := range robustnessNames {
		if n == s {
			return Robustness(i), nil
		}
	}
	return RobustnessNone, invalid("robustness", s)
}

func (r Robustness) String() string { return nameOf(robustnessNames[:], r) }

func (r Robustness) Valid() bool { return r >= RobustnessNone && r < robustnessCount }

func (r Robustness) AtLeast(other Robustness) bool { return r >= other }

func (r Robustness) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Robustness) UnmarshalText(b []byte) error {
	v, err := ParseRobustness(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Robustnesses lists every level in ascending order.
func Robustnesses() []Robustness {
	return []Robustness{RobustnessNone, RobustnessLow, RobustnessMedium, RobustnessHigh}
}

// Requirement is the robustness an OSO demands at a given SAIL.
type Requirement int

const (
	RequirementOptional Requirement = iota
	RequirementLow
	RequirementMedium
	RequirementHigh
)

var requirementNames = [...]string{"optional", "low", "medium", "high"}

func (q Requirement) String() string { return nameOf(requirementNames[:], q) }

// Robustness is the minimum achieved level that satisfies q.
func (q Requirement) Robustness() Robustness { return Robustness(q) }

// SatisfiedBy reports whether achieved meets q. Optional is always met.
func (q Requirement) SatisfiedBy(achieved Robustness) bool {
	return q == RequirementOptional || achieved >= q.Robustness()
}

func (q Requirement) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

func (q *Requirement) UnmarshalText(b []byte) error {
	for i, n := range requirementNames {
		if n == string(b) {
			*q = Requirement(i)
			return nil
		}
	}
	return invalid("OSO requirement", string(b))
}
