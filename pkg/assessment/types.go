package assessment

import (
	"time"

	"github.com/google/uuid"
)

// FieldSource records who last set an auto-syncable field.
type FieldSource string

const (
	SourceUser     FieldSource = "user"
	SourceSurvey   FieldSource = "survey"
	SourceAircraft FieldSource = "aircraft"
)

// Auto-syncable field names, as used in SiteAssessment.Sources.
const (
	FieldPopulation = "population"
	FieldUAClass    = "ua_class"
)

// Project is the owning record for a set of site assessments.
type Project struct {
	ID       string           `yaml:"id" json:"id" validate:"required,max=128"`
	Name     string           `yaml:"name" json:"name" validate:"max=200"`
	Operator string           `yaml:"operator,omitempty" json:"operator,omitempty" validate:"max=200"`
	Sites    []SiteAssessment `yaml:"sites" json:"sites" validate:"dive"`
}

// SiteByID returns a pointer into p.Sites, or nil.
func (p *Project) SiteByID(id string) *SiteAssessment {
	for i := range p.Sites {
		if p.Sites[i].ID == id {
			return &p.Sites[i]
		}
	}
	return nil
}

// SiteAssessment is the mutable SORA record for one operating site.
// Category fields hold reference-table keys as stored; they are parsed, and
// rejected if unknown, by the engine rather than at load time so a legacy
// record still loads and can be flagged for re-entry.
type SiteAssessment struct {
	ID   string `yaml:"id" json:"id" validate:"required,max=128"`
	Name string `yaml:"name" json:"name" validate:"max=200"`

	Population string           `yaml:"population" json:"population"`
	UAClass    string           `yaml:"ua_class" json:"ua_class"`
	Aircraft   *AircraftProfile `yaml:"aircraft,omitempty" json:"aircraft,omitempty"`

	Mitigations map[string]MitigationConfig `yaml:"mitigations,omitempty" json:"mitigations,omitempty" validate:"dive"`

	InitialARC string         `yaml:"initial_arc" json:"initial_arc"`
	Tactical   TacticalConfig `yaml:"tactical" json:"tactical"`

	OSOs map[string]OSODeclaration `yaml:"osos,omitempty" json:"osos,omitempty" validate:"dive"`

	AdjacentPopulation string            `yaml:"adjacent_population" json:"adjacent_population"`
	Containment        ContainmentConfig `yaml:"containment" json:"containment"`

	Sources   map[string]FieldSource `yaml:"sources,omitempty" json:"sources,omitempty"`
	UpdatedAt time.Time              `yaml:"updated_at,omitempty" json:"updated_at,omitempty" hash:"ignore"`
}

// AircraftProfile is the slice of an aircraft registry entry the engine
// needs.
type AircraftProfile struct {
	Name          string  `yaml:"name,omitempty" json:"name,omitempty"`
	MaxDimensionM float64 `yaml:"max_dimension_m" json:"max_dimension_m" validate:"gte=0"`
	MaxSpeedMS    float64 `yaml:"max_speed_ms" json:"max_speed_ms" validate:"gte=0"`
}

// MitigationConfig is the user's declaration for one ground mitigation.
type MitigationConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	Robustness string `yaml:"robustness,omitempty" json:"robustness,omitempty"`
	Evidence   string `yaml:"evidence,omitempty" json:"evidence,omitempty" validate:"max=10000"`
}

// TacticalConfig is the user's declaration for the tactical mitigation.
type TacticalConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	Type       string `yaml:"type,omitempty" json:"type,omitempty"`
	Robustness string `yaml:"robustness,omitempty" json:"robustness,omitempty"`
	Evidence   string `yaml:"evidence,omitempty" json:"evidence,omitempty" validate:"max=10000"`
}

// OSODeclaration is the robustness the operator claims for one OSO. The
// evidence text is kept verbatim for audit.
type OSODeclaration struct {
	Robustness string `yaml:"robustness" json:"robustness"`
	Evidence   string `yaml:"evidence,omitempty" json:"evidence,omitempty" validate:"max=10000"`
}

// ContainmentConfig is the selected containment method.
type ContainmentConfig struct {
	Method   string `yaml:"method,omitempty" json:"method,omitempty"`
	Evidence string `yaml:"evidence,omitempty" json:"evidence,omitempty" validate:"max=10000"`
}

// NewSite creates an empty assessment, as done when a site is added to a
// project.
func NewSite(name string) SiteAssessment {
	return SiteAssessment{
		ID:          uuid.NewString(),
		Name:        name,
		Mitigations: map[string]MitigationConfig{},
		OSOs:        map[string]OSODeclaration{},
		Sources:     map[string]FieldSource{},
	}
}

// Source returns who set field, or "" if nobody has.
func (s *SiteAssessment) Source(field string) FieldSource {
	if s.Sources == nil {
		return ""
	}
	return s.Sources[field]
}

// UserSet reports whether field was explicitly set by the user.
func (s *SiteAssessment) UserSet(field string) bool {
	return s.Source(field) == SourceUser
}

// AutoSyncFields are the fields a linked survey or aircraft may fill in.
var AutoSyncFields = []string{FieldPopulation, FieldUAClass}

// UserOwned reports whether auto-sync must leave field alone: the user set
// it, or it holds a value with no recorded source.
func (s *SiteAssessment) UserOwned(field string) bool {
	src := s.Source(field)
	return src == SourceUser || (src == "" && s.Get(field) != "")
}

// MarkUserEdits stamps SourceUser on every auto-syncable field whose value
// differs from prev, which is nil for a new site. Unchanged fields keep
// prev's source and cleared fields lose theirs, whatever s.Sources claims.
func (s *SiteAssessment) MarkUserEdits(prev *SiteAssessment) {
	for _, f := range AutoSyncFields {
		v := s.Get(f)
		switch {
		case v == "":
			delete(s.Sources, f)
		case prev == nil || prev.Get(f) != v:
			s.Set(f, v, SourceUser)
		case prev.Source(f) == "":
			delete(s.Sources, f)
		default:
			s.Set(f, v, prev.Source(f))
		}
	}
}

// Set writes an auto-syncable field and records its source.
func (s *SiteAssessment) Set(field, value string, src FieldSource) bool {
	switch field {
	case FieldPopulation:
		s.Population = value
	case FieldUAClass:
		s.UAClass = value
	default:
		return false
	}
	if s.Sources == nil {
		s.Sources = map[string]FieldSource{}
	}
	s.Sources[field] = src
	return true
}

// Get reads an auto-syncable field.
func (s *SiteAssessment) Get(field string) string {
	switch field {
	case FieldPopulation:
		return s.Population
	case FieldUAClass:
		return s.UAClass
	}
	return ""
}

// MaxSpeedMS is the linked aircraft's maximum speed, or 0 when unknown.
func (s *SiteAssessment) MaxSpeedMS() float64 {
	if s.Aircraft == nil {
		return 0
	}
	return s.Aircraft.MaxSpeedMS
}

// Clone returns a deep copy.
func (s SiteAssessment) Clone() SiteAssessment {
	out := s
	if s.Aircraft != nil {
		a := *s.Aircraft
		out.Aircraft = &a
	}
	if s.Mitigations != nil {
		out.Mitigations = make(map[string]MitigationConfig, len(s.Mitigations))
		for k, v := range s.Mitigations {
			out.Mitigations[k] = v
		}
	}
	if s.OSOs != nil {
		out.OSOs = make(map[string]OSODeclaration, len(s.OSOs))
		for k, v := range s.OSOs {
			out.OSOs[k] = v
		}
	}
	if s.Sources != nil {
		out.Sources = make(map[string]FieldSource, len(s.Sources))
		for k, v := range s.Sources {
			out.Sources[k] = v
		}
	}
	return out
}
