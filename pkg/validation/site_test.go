package validation

import (
	"testing"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
)

func TestValidateSiteValid(t *testing.T) {
	s := validSite("site-a")
	r := ValidateSite(&s)
	if !r.Valid {
		t.Errorf("expected valid report, got %d errors: %v", len(r.Errors), r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", r.Warnings)
	}
}

func TestValidateSiteMissingFields(t *testing.T) {
	s := validSite("site-a")
	s.Population = ""
	s.UAClass = ""
	s.InitialARC = ""
	r := ValidateSite(&s)
	if r.Valid {
		t.Fatal("expected invalid report for missing fields")
	}
	assertHasError(t, r, "sites[site-a].population")
	assertHasError(t, r, "sites[site-a].ua_class")
	assertHasError(t, r, "sites[site-a].initial_arc")
	for _, e := range r.Errors {
		if len(e.Suggestions) == 0 {
			t.Errorf("missing-field error %s should list options", e.Path)
		}
	}
}

func TestValidateSiteUnknownCategories(t *testing.T) {
	s := validSite("site-a")
	s.Population = "downtown"
	s.InitialARC = "e"
	s.AdjacentPopulation = "metro"
	s.Containment.Method = "lasso"
	r := ValidateSite(&s)
	assertHasError(t, r, "sites[site-a].population")
	assertHasError(t, r, "sites[site-a].initial_arc")
	assertHasError(t, r, "sites[site-a].adjacent_population")
	assertHasError(t, r, "sites[site-a].containment.method")
}

func TestValidateSiteUncoveredCell(t *testing.T) {
	s := validSite("site-a")
	s.Population = "gathering"
	s.UAClass = "20m_120ms"
	s.Aircraft = nil
	r := ValidateSite(&s)
	if r.Valid {
		t.Error("expected invalid report for uncovered iGRC cell")
	}
	assertHasError(t, r, "sites[site-a].ua_class")
}

func TestValidateSiteMitigations(t *testing.T) {
	s := validSite("site-a")
	s.Mitigations["M1A"] = assessment.MitigationConfig{Enabled: true, Robustness: "high", Evidence: "n/a"}
	s.Mitigations["M2"] = assessment.MitigationConfig{Enabled: true, Robustness: "medium"}
	s.Mitigations["M1B"] = assessment.MitigationConfig{Enabled: true}
	s.Mitigations["M7"] = assessment.MitigationConfig{Enabled: false}
	r := ValidateSite(&s)

	assertHasError(t, r, "sites[site-a].mitigations.M1A.robustness")
	assertHasError(t, r, "sites[site-a].mitigations.M7")
	assertHasWarning(t, r, "sites[site-a].mitigations.M2.evidence")
	if len(r.Info) != 1 || r.Info[0].Path != "sites[site-a].mitigations.M1B.robustness" {
		t.Errorf("expected one info finding for M1B, got %v", r.Info)
	}
}

func TestValidateSiteEvidenceWarnings(t *testing.T) {
	s := validSite("site-a")
	s.Tactical.Evidence = ""
	s.OSOs["OSO08"] = assessment.OSODeclaration{Robustness: "medium"}
	s.OSOs["OSO02"] = assessment.OSODeclaration{Robustness: "none"}
	s.Containment.Evidence = ""
	r := ValidateSite(&s)

	if !r.Valid {
		t.Errorf("missing evidence should not invalidate the site: %v", r.Errors)
	}
	assertHasWarning(t, r, "sites[site-a].tactical.evidence")
	assertHasWarning(t, r, "sites[site-a].osos.OSO08.evidence")
	assertHasWarning(t, r, "sites[site-a].containment.evidence")
	if len(r.Warnings) != 3 {
		t.Errorf("expected 3 warnings, got %d: %v", len(r.Warnings), r.Warnings)
	}
}

func TestValidateSiteUnknownOSO(t *testing.T) {
	s := validSite("site-a")
	s.OSOs["OSO99"] = assessment.OSODeclaration{Robustness: "low", Evidence: "x"}
	s.OSOs["OSO03"] = assessment.OSODeclaration{Robustness: "excellent", Evidence: "x"}
	r := ValidateSite(&s)
	assertHasError(t, r, "sites[site-a].osos.OSO99")
	assertHasError(t, r, "sites[site-a].osos.OSO03.robustness")
}

func TestValidateSiteTactical(t *testing.T) {
	s := validSite("site-a")
	s.Tactical.Type = "radar"
	r := ValidateSite(&s)
	assertHasError(t, r, "sites[site-a].tactical.type")

	// Disabled tactical settings are not checked.
	s.Tactical.Enabled = false
	r = ValidateSite(&s)
	if !r.Valid {
		t.Errorf("expected valid report, got %v", r.Errors)
	}
}

func TestValidateSiteAircraftMismatch(t *testing.T) {
	s := validSite("site-a")
	s.Aircraft = &assessment.AircraftProfile{Name: "Heavy lifter", MaxDimensionM: 2.2, MaxSpeedMS: 30}
	r := ValidateSite(&s)
	assertHasWarning(t, r, "sites[site-a].ua_class")

	s.Aircraft = &assessment.AircraftProfile{Name: "Airliner", MaxDimensionM: 60, MaxSpeedMS: 250}
	r = ValidateSite(&s)
	assertHasWarning(t, r, "sites[site-a].aircraft")
}

func TestValidateSiteNoAdjacent(t *testing.T) {
	s := validSite("site-a")
	s.AdjacentPopulation = ""
	r := ValidateSite(&s)
	if !r.Valid {
		t.Errorf("unset adjacent population should only warn: %v", r.Errors)
	}
	assertHasWarning(t, r, "sites[site-a].adjacent_population")
}

func TestValidateProjectMergesSites(t *testing.T) {
	p := validProject()
	p.Sites[1].InitialARC = ""
	p.Sites[1].ID = "site-a"
	r := ValidateProject(p)
	if r.Valid {
		t.Fatal("expected invalid project report")
	}
	assertHasError(t, r, "sites[1].id")
	assertHasError(t, r, "sites[site-a].initial_arc")
}

func TestValidateDefaultProject(t *testing.T) {
	p, err := assessment.LoadProject("../../examples/default-project")
	if err != nil {
		t.Fatalf("loading default project: %v", err)
	}
	r := ValidateProject(p)
	if !r.Valid {
		t.Errorf("default project should validate, got %v", r.Errors)
	}
}
