package sora

import (
	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// SuggestionInputs carries what linked collaborators know about a site.
type SuggestionInputs struct {
	// SurveyPopulation is the population category recorded on a linked
	// site survey, or "".
	SurveyPopulation string
	// Aircraft is the linked aircraft, or nil.
	Aircraft *assessment.AircraftProfile
}

// Suggestion is a proposed value for an auto-syncable field. Applicable is
// false when the field is user-owned or already holds Value.
type Suggestion struct {
	Field      string                 `json:"field" yaml:"field"`
	Value      string                 `json:"value" yaml:"value"`
	Source     assessment.FieldSource `json:"source" yaml:"source"`
	Current    string                 `json:"current,omitempty" yaml:"current,omitempty"`
	Applicable bool                   `json:"applicable" yaml:"applicable"`
}

// Suggest offers population and UA class values derived from the linked
// survey and aircraft. It never modifies site. An aircraft that fits no UA
// bucket yields no UA suggestion; an unknown survey category is an error.
func Suggest(site assessment.SiteAssessment, in SuggestionInputs) ([]Suggestion, error) {
	var out []Suggestion

	if in.SurveyPopulation != "" {
		p, err := tables.ParsePopulation(in.SurveyPopulation)
		if err != nil {
			return nil, err
		}
		out = append(out, suggestion(&site, assessment.FieldPopulation, p.String(), assessment.SourceSurvey))
	}

	if in.Aircraft != nil {
		if c, ok := tables.UAClassFor(in.Aircraft.MaxDimensionM, in.Aircraft.MaxSpeedMS); ok {
			out = append(out, suggestion(&site, assessment.FieldUAClass, c.String(), assessment.SourceAircraft))
		}
	}
	return out, nil
}

func suggestion(site *assessment.SiteAssessment, field, value string, src assessment.FieldSource) Suggestion {
	current := site.Get(field)
	return Suggestion{
		Field:      field,
		Value:      value,
		Source:     src,
		Current:    current,
		Applicable: !site.UserOwned(field) && current != value,
	}
}

// ApplySuggestions returns a copy of site with the applicable suggestions
// written and their sources recorded. Fields set by the user are left alone
// even if a suggestion claims to be applicable.
func ApplySuggestions(site assessment.SiteAssessment, suggestions []Suggestion) assessment.SiteAssessment {
	out := site.Clone()
	for _, s := range suggestions {
		if !s.Applicable || out.UserOwned(s.Field) {
			continue
		}
		out.Set(s.Field, s.Value, s.Source)
	}
	return out
}
