package tables

// ARC is the air risk class, ordered by increasing mid-air collision risk.
type ARC int

const (
	ARCUnset ARC = iota
	ARCa
	ARCb
	ARCc
	ARCd
	arcCount
)

var arcNames = [...]string{"", "a", "b", "c", "d"}

// ARCInfo describes one air risk class.
type ARCInfo struct {
	Key         ARC    `json:"key" yaml:"key"`
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}

var arcDescriptions = [...]string{
	ARCa: "Atypical or segregated airspace; collision risk acceptable without tactical mitigation",
	ARCb: "Uncontrolled airspace at low altitude over rural areas",
	ARCc: "Uncontrolled airspace over urban areas, or low-altitude controlled airspace",
	ARCd: "Airport environment, or controlled airspace above 500 ft AGL",
}

var (
	_ [len(arcNames) - int(arcCount)]struct{}
	_ [int(arcCount) - len(arcNames)]struct{}
	_ [len(arcDescriptions) - int(arcCount)]struct{}
	_ [int(arcCount) - len(arcDescriptions)]struct{}
)

// ParseARC accepts "a" through "d". Anything else is ErrInvalidCategory.
func ParseARC(s string) (ARC, error) {
	return parseName[ARC]("ARC", arcNames[:], s)
}

func (a ARC) String() string { return nameOf(arcNames[:], a) }

func (a ARC) Valid() bool { return a > ARCUnset && a < arcCount }

// Rank is 0 for ARC-a through 3 for ARC-d.
func (a ARC) Rank() int { return int(a) - 1 }

// StepDown subtracts n ordinal steps, flooring at ARC-a. Steps beyond the
// floor are absorbed.
func (a ARC) StepDown(n int) ARC {
	if n <= 0 {
		return a
	}
	out := int(a) - n
	if out < int(ARCa) {
		return ARCa
	}
	return ARC(out)
}

func (a ARC) Info() ARCInfo {
	if !a.Valid() {
		return ARCInfo{Key: a}
	}
	return ARCInfo{Key: a, Label: "ARC-" + a.String(), Description: arcDescriptions[a]}
}

func (a ARC) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *ARC) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*a = ARCUnset
		return nil
	}
	v, err := ParseARC(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func ARCs() []ARC { return []ARC{ARCa, ARCb, ARCc, ARCd} }
