package assessment

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestLoadProject(t *testing.T) {
	p, err := LoadProject("../../examples/default-project")
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}

	if p.ID != "prj-2026-014" {
		t.Errorf("id = %q, want %q", p.ID, "prj-2026-014")
	}
	if len(p.Sites) != 3 {
		t.Fatalf("sites = %d, want 3", len(p.Sites))
	}

	a := p.SiteByID("site-a")
	if a == nil {
		t.Fatal("missing site-a")
	}
	if a.Population != "sparsely" {
		t.Errorf("population = %q, want sparsely", a.Population)
	}
	if a.UAClass != "1m_25ms" {
		t.Errorf("ua_class = %q, want 1m_25ms", a.UAClass)
	}
	m1c, ok := a.Mitigations["M1C"]
	if !ok || !m1c.Enabled || m1c.Robustness != "medium" {
		t.Errorf("M1C = %+v, want enabled at medium", m1c)
	}
	if !a.Tactical.Enabled || a.Tactical.Type != "VLOS" {
		t.Errorf("tactical = %+v, want enabled VLOS", a.Tactical)
	}
	if a.OSOs["OSO03"].Evidence != "Maintenance log MX-0119" {
		t.Errorf("OSO03 evidence = %q", a.OSOs["OSO03"].Evidence)
	}
	if a.MaxSpeedMS() != 23 {
		t.Errorf("max speed = %v, want 23", a.MaxSpeedMS())
	}
	if !a.UserSet(FieldPopulation) {
		t.Error("population should be recorded as user-set")
	}

	if err := p.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadProjectMissing(t *testing.T) {
	_, err := LoadProject("/nonexistent/path")
	if err == nil {
		t.Error("expected error for missing project directory")
	}
}

func fullSite() SiteAssessment {
	return SiteAssessment{
		ID:         "s1",
		Name:       "Quarry",
		Population: "remote",
		UAClass:    "3m_35ms",
		Aircraft:   &AircraftProfile{Name: "Fixed wing", MaxDimensionM: 2.5, MaxSpeedMS: 33},
		Mitigations: map[string]MitigationConfig{
			"M1B": {Enabled: true, Robustness: "high", Evidence: "NOTAM and road closure"},
			"M2":  {Enabled: false, Robustness: "medium"},
		},
		InitialARC: "c",
		Tactical:   TacticalConfig{Enabled: true, Type: "BVLOS", Robustness: "medium", Evidence: "DAA report"},
		OSOs: map[string]OSODeclaration{
			"OSO01": {Robustness: "high", Evidence: "LUC"},
		},
		AdjacentPopulation: "lightly",
		Containment:        ContainmentConfig{Method: "tether", Evidence: "cert 7"},
		Sources:            map[string]FieldSource{FieldUAClass: SourceAircraft},
		UpdatedAt:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRoundTripJSON(t *testing.T) {
	in := fullSite()
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out SiteAssessment
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("JSON round trip mismatch:\n in = %+v\nout = %+v", in, out)
	}
}

func TestRoundTripYAML(t *testing.T) {
	in := Project{ID: "p", Name: "YAML", Sites: []SiteAssessment{fullSite()}}
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := Save(path, &in); err != nil {
		t.Fatal(err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(&in, out) {
		t.Errorf("YAML round trip mismatch:\n in = %+v\nout = %+v", in, *out)
	}

	raw, _ := yaml.Marshal(in.Sites[0].Tactical)
	if len(raw) == 0 {
		t.Error("expected tactical config to encode")
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := fullSite()
	b := a.Clone()
	b.Mitigations["M1B"] = MitigationConfig{}
	b.Aircraft.MaxSpeedMS = 99
	b.Sources[FieldPopulation] = SourceUser

	if a.Mitigations["M1B"].Robustness != "high" {
		t.Error("clone shares mitigation map")
	}
	if a.Aircraft.MaxSpeedMS != 33 {
		t.Error("clone shares aircraft")
	}
	if a.UserSet(FieldPopulation) {
		t.Error("clone shares sources map")
	}
}

func TestNewSite(t *testing.T) {
	s := NewSite("North field")
	if s.ID == "" {
		t.Error("NewSite should assign an id")
	}
	if s.Population != "" || s.InitialARC != "" {
		t.Error("NewSite should start empty")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	blank := SiteAssessment{}
	if err := blank.Validate(); err == nil {
		t.Error("expected validation error for missing id")
	}
}

func TestSetRecordsSource(t *testing.T) {
	var s SiteAssessment
	if !s.Set(FieldPopulation, "urban", SourceSurvey) {
		t.Fatal("Set rejected population")
	}
	if s.Population != "urban" || s.Source(FieldPopulation) != SourceSurvey {
		t.Errorf("population = %q source = %q", s.Population, s.Source(FieldPopulation))
	}
	if s.Set("initial_arc", "b", SourceUser) {
		t.Error("Set should only accept auto-syncable fields")
	}
}

func TestUserOwned(t *testing.T) {
	s := SiteAssessment{ID: "s1"}
	if s.UserOwned(FieldPopulation) {
		t.Error("empty field with no source should be free for auto-sync")
	}
	s.Population = "urban"
	if !s.UserOwned(FieldPopulation) {
		t.Error("value with no recorded source should be treated as user-entered")
	}
	s.Set(FieldPopulation, "remote", SourceSurvey)
	if s.UserOwned(FieldPopulation) {
		t.Error("survey-sourced value should be free for auto-sync")
	}
	s.Set(FieldPopulation, "remote", SourceUser)
	if !s.UserOwned(FieldPopulation) {
		t.Error("user-set value should be owned")
	}
}

func TestMarkUserEdits(t *testing.T) {
	prev := SiteAssessment{ID: "s1"}
	prev.Set(FieldPopulation, "suburban", SourceSurvey)
	prev.Set(FieldUAClass, "3m_35ms", SourceAircraft)

	tests := []struct {
		name       string
		prev       *SiteAssessment
		population string
		uaClass    string
		claimed    map[string]FieldSource
		wantPop    FieldSource
		wantUA     FieldSource
	}{
		{"new site", nil, "urban", "1m_25ms", nil, SourceUser, SourceUser},
		{"changed population", &prev, "urban", "3m_35ms", nil, SourceUser, SourceAircraft},
		{"unchanged keeps source", &prev, "suburban", "3m_35ms", nil, SourceSurvey, SourceAircraft},
		{"claimed source ignored on change", &prev, "urban", "3m_35ms",
			map[string]FieldSource{FieldPopulation: SourceSurvey}, SourceUser, SourceAircraft},
		{"claimed source ignored when unchanged", &prev, "suburban", "3m_35ms",
			map[string]FieldSource{FieldPopulation: SourceUser}, SourceSurvey, SourceAircraft},
		{"cleared loses source", &prev, "", "3m_35ms", nil, "", SourceAircraft},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SiteAssessment{ID: "s1", Population: tt.population, UAClass: tt.uaClass, Sources: tt.claimed}
			s.MarkUserEdits(tt.prev)
			if got := s.Source(FieldPopulation); got != tt.wantPop {
				t.Errorf("population source = %q, want %q", got, tt.wantPop)
			}
			if got := s.Source(FieldUAClass); got != tt.wantUA {
				t.Errorf("ua_class source = %q, want %q", got, tt.wantUA)
			}
		})
	}
	if prev.Source(FieldPopulation) != SourceSurvey {
		t.Error("prev must not be modified")
	}
}
