package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
)

// ValidateSchema performs structural validation on a parsed Project: the
// struct rules on the record and unique site IDs. It says nothing about
// whether category values exist in the reference tables.
func ValidateSchema(p *assessment.Project) *Report {
	r := NewReport()

	validateStruct(p, r)
	validateSiteIDs(p, r)

	return r
}

func validateStruct(p *assessment.Project, r *Report) {
	err := p.Validate()
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		r.AddError(Result{
			Level:   LevelSchema,
			Message: err.Error(),
		})
		return
	}

	for _, fe := range verrs {
		path := strings.TrimPrefix(fe.Namespace(), "Project.")
		expected := fe.Tag()
		if fe.Param() != "" {
			expected += "=" + fe.Param()
		}
		r.AddError(Result{
			Level:       LevelSchema,
			SiteID:      siteIDFor(p, path),
			Message:     fmt.Sprintf("%s fails %q", path, fe.Tag()),
			Path:        path,
			ActualValue: fe.Value(),
			Expected:    expected,
		})
	}
}

// siteIDFor maps a sites[i] path back to the site's ID, when it has one.
func siteIDFor(p *assessment.Project, path string) string {
	var i int
	if _, err := fmt.Sscanf(path, "sites[%d]", &i); err != nil {
		return ""
	}
	if i < 0 || i >= len(p.Sites) {
		return ""
	}
	return p.Sites[i].ID
}

func validateSiteIDs(p *assessment.Project, r *Report) {
	seen := make(map[string]int, len(p.Sites))
	for i, s := range p.Sites {
		if s.ID == "" {
			// Reported by the struct rules.
			continue
		}
		if first, ok := seen[s.ID]; ok {
			r.AddError(Result{
				Level:       LevelSchema,
				SiteID:      s.ID,
				Message:     fmt.Sprintf("site id %q is used by sites %d and %d", s.ID, first, i),
				Path:        fmt.Sprintf("sites[%d].id", i),
				ActualValue: s.ID,
				Expected:    "unique",
				Suggestions: []string{"Give every site its own id"},
			})
			continue
		}
		seen[s.ID] = i
	}
}
