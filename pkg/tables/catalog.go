package tables

// Catalog is a serializable snapshot of every reference table, for display
// and API clients.
type Catalog struct {
	Populations         []PopulationInfo           `json:"populations" yaml:"populations"`
	UAClasses           []UAClassInfo              `json:"ua_classes" yaml:"ua_classes"`
	ARCs                []ARCInfo                  `json:"arcs" yaml:"arcs"`
	GroundMitigations   []GroundMitigationView     `json:"ground_mitigations" yaml:"ground_mitigations"`
	TacticalMitigations []TacticalMitigationView   `json:"tactical_mitigations" yaml:"tactical_mitigations"`
	OSOs                []OSOView                  `json:"osos" yaml:"osos"`
	ContainmentMethods  []ContainmentMethodView    `json:"containment_methods" yaml:"containment_methods"`
	IntrinsicGRC        map[string]map[string]*int `json:"intrinsic_grc" yaml:"intrinsic_grc"`
	SAILMatrix          map[int]map[string]SAIL    `json:"sail_matrix" yaml:"sail_matrix"`
	MaxFGRC             int                        `json:"max_fgrc" yaml:"max_fgrc"`
}

type GroundMitigationView struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Reductions  map[string]int `json:"reductions" yaml:"reductions"`
}

type TacticalMitigationView struct {
	Type        TacticalType   `json:"type" yaml:"type"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Steps       map[string]int `json:"steps" yaml:"steps"`
}

type OSOView struct {
	ID       string                 `json:"id" yaml:"id"`
	Title    string                 `json:"title" yaml:"title"`
	Category string                 `json:"category" yaml:"category"`
	Required map[string]Requirement `json:"required" yaml:"required"`
}

type ContainmentMethodView struct {
	Key        string     `json:"key" yaml:"key"`
	Label      string     `json:"label" yaml:"label"`
	Achievable Robustness `json:"achievable" yaml:"achievable"`
	Evidence   []string   `json:"evidence" yaml:"evidence"`
}

// BuildCatalog assembles the snapshot. Uncovered iGRC cells are nil.
func BuildCatalog() Catalog {
	c := Catalog{
		IntrinsicGRC: make(map[string]map[string]*int),
		SAILMatrix:   make(map[int]map[string]SAIL),
		MaxFGRC:      MaxFGRC,
	}

	for _, p := range Populations() {
		c.Populations = append(c.Populations, p.Info())
		row := make(map[string]*int)
		for _, ua := range UAClasses() {
			if v, err := IntrinsicGRC(p, ua); err == nil {
				v := v
				row[ua.String()] = &v
			} else {
				row[ua.String()] = nil
			}
		}
		c.IntrinsicGRC[p.String()] = row
	}
	for _, ua := range UAClasses() {
		c.UAClasses = append(c.UAClasses, ua.Info())
	}
	for _, a := range ARCs() {
		c.ARCs = append(c.ARCs, a.Info())
	}
	for f := 0; f <= MaxFGRC; f++ {
		row := make(map[string]SAIL)
		for _, a := range ARCs() {
			s, _ := SAILFor(f, a)
			row[a.String()] = s
		}
		c.SAILMatrix[f] = row
	}

	for _, gm := range GroundMitigations() {
		v := GroundMitigationView{ID: gm.ID, Name: gm.Name, Description: gm.Description, Reductions: map[string]int{}}
		for _, r := range gm.Levels() {
			v.Reductions[r.String()], _ = gm.Reduction(r)
		}
		c.GroundMitigations = append(c.GroundMitigations, v)
	}
	for _, tm := range TacticalMitigations() {
		v := TacticalMitigationView{Type: tm.Type, Name: tm.Name, Description: tm.Description, Steps: map[string]int{}}
		for _, r := range Robustnesses() {
			v.Steps[r.String()] = tm.Steps[r]
		}
		c.TacticalMitigations = append(c.TacticalMitigations, v)
	}
	for _, x := range OSOs() {
		v := OSOView{ID: x.ID, Title: x.Title, Category: x.Category, Required: map[string]Requirement{}}
		for _, s := range SAILs() {
			v.Required[s.String()], _ = x.Required(s)
		}
		c.OSOs = append(c.OSOs, v)
	}
	for _, cm := range ContainmentMethods() {
		c.ContainmentMethods = append(c.ContainmentMethods, ContainmentMethodView{
			Key: cm.Key, Label: cm.Label, Achievable: cm.Achievable, Evidence: cm.Evidence,
		})
	}
	return c
}
