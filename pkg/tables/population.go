package tables

// Population is the ground population category of an operational or
// adjacent area. Declaration order is the base-risk ranking.
type Population int

const (
	PopulationUnset Population = iota
	PopulationControlled
	PopulationRemote
	PopulationLightly
	PopulationSparsely
	PopulationSuburban
	PopulationMixed
	PopulationUrban
	PopulationGathering
	populationCount
)

var populationNames = [...]string{
	"",
	"controlled",
	"remote",
	"lightly",
	"sparsely",
	"suburban",
	"mixed",
	"urban",
	"gathering",
}

// PopulationInfo is the display data for one category.
type PopulationInfo struct {
	Key     Population `json:"key" yaml:"key"`
	Label   string     `json:"label" yaml:"label"`
	Density string     `json:"density" yaml:"density"`
	Rank    int        `json:"rank" yaml:"rank"`
}

var populationInfo = [...]PopulationInfo{
	PopulationControlled: {Label: "Controlled ground area", Density: "No uninvolved persons present"},
	PopulationRemote:     {Label: "Remote", Density: "< 5 people/km²"},
	PopulationLightly:    {Label: "Lightly populated", Density: "< 50 people/km²"},
	PopulationSparsely:   {Label: "Sparsely populated", Density: "< 500 people/km²"},
	PopulationSuburban:   {Label: "Suburban / low density", Density: "< 5,000 people/km²"},
	PopulationMixed:      {Label: "Mixed use", Density: "Varying density up to 50,000 people/km²"},
	PopulationUrban:      {Label: "High density metropolitan", Density: "< 50,000 people/km²"},
	PopulationGathering:  {Label: "Assemblies of people", Density: "> 50,000 people/km²"},
}

// Compile-time checks: name and info tables must cover every category.
var (
	_ [len(populationNames) - int(populationCount)]struct{}
	_ [int(populationCount) - len(populationNames)]struct{}
	_ [len(populationInfo) - int(populationCount)]struct{}
	_ [int(populationCount) - len(populationInfo)]struct{}
)

// ParsePopulation resolves a stored key.
func ParsePopulation(s string) (Population, error) {
	return parseName[Population]("population category", populationNames[:], s)
}

func (p Population) String() string { return nameOf(populationNames[:], p) }

// Valid reports whether p is a declared category (not unset).
func (p Population) Valid() bool { return p > PopulationUnset && p < populationCount }

// Rank orders categories by base risk. Unset ranks below everything.
func (p Population) Rank() int { return int(p) - 1 }

// RiskierThan reports whether p carries a higher base risk than other.
func (p Population) RiskierThan(other Population) bool { return p.Rank() > other.Rank() }

// Info returns the display data for p.
func (p Population) Info() PopulationInfo {
	if !p.Valid() {
		return PopulationInfo{Key: p}
	}
	info := populationInfo[p]
	info.Key = p
	info.Rank = p.Rank()
	return info
}

func (p Population) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Population) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = PopulationUnset
		return nil
	}
	v, err := ParsePopulation(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Populations lists every category in rank order.
func Populations() []Population {
	out := make([]Population, 0, populationCount-1)
	for p := PopulationControlled; p < populationCount; p++ {
		out = append(out, p)
	}
	return out
}
