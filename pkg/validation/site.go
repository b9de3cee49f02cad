package validation

import (
	"fmt"
	"sort"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/tables"
)

// ValidateProject runs the schema checks and every per-site check and
// merges them into one report.
func ValidateProject(p *assessment.Project) *Report {
	r := ValidateSchema(p)
	for i := range p.Sites {
		r.Merge(ValidateSite(&p.Sites[i]))
	}
	return r
}

// ValidateSite reports what stops a site from producing a SAIL (missing or
// unknown categories) as errors, and gaps in the audit trail (claims
// without evidence) as warnings.
func ValidateSite(s *assessment.SiteAssessment) *Report {
	r := NewReport()
	v := siteValidator{site: s, r: r}

	v.ground()
	v.air()
	v.osos()
	v.containment()

	return r
}

type siteValidator struct {
	site *assessment.SiteAssessment
	r    *Report
}

func (v *siteValidator) path(field string) string {
	return fmt.Sprintf("sites[%s].%s", v.site.ID, field)
}

func (v *siteValidator) add(sev Severity, res Result) {
	res.SiteID = v.site.ID
	switch sev {
	case SeverityError:
		v.r.AddError(res)
	case SeverityWarning:
		v.r.AddWarning(res)
	default:
		v.r.AddInfo(res)
	}
}

// category checks a required reference-table key. parse returns the error
// for unknown values.
func (v *siteValidator) category(level Level, field, value string, parse func(string) error, options []string) bool {
	if value == "" {
		v.add(SeverityError, Result{
			Level:       level,
			Message:     fmt.Sprintf("%s is required", field),
			Path:        v.path(field),
			Suggestions: options,
		})
		return false
	}
	if err := parse(value); err != nil {
		v.add(SeverityError, Result{
			Level:       level,
			Message:     err.Error(),
			Path:        v.path(field),
			ActualValue: value,
			Expected:    "one of the listed values",
			Suggestions: options,
		})
		return false
	}
	return true
}

func (v *siteValidator) ground() {
	s := v.site

	popOK := v.category(LevelGround, "population", s.Population, func(x string) error {
		_, err := tables.ParsePopulation(x)
		return err
	}, names(tables.Populations()))

	uaOK := v.category(LevelGround, "ua_class", s.UAClass, func(x string) error {
		_, err := tables.ParseUAClass(x)
		return err
	}, names(tables.UAClasses()))

	if popOK && uaOK {
		p, _ := tables.ParsePopulation(s.Population)
		c, _ := tables.ParseUAClass(s.UAClass)
		if _, err := tables.IntrinsicGRC(p, c); err != nil {
			v.add(SeverityError, Result{
				Level:       LevelGround,
				Message:     err.Error(),
				Path:        v.path("ua_class"),
				ActualValue: s.UAClass,
				Suggestions: []string{"Operations of this size over assemblies of people are outside SORA"},
			})
		}
	}

	if uaOK && s.Aircraft != nil {
		c, _ := tables.ParseUAClass(s.UAClass)
		fit, ok := tables.UAClassFor(s.Aircraft.MaxDimensionM, s.Aircraft.MaxSpeedMS)
		switch {
		case !ok:
			v.add(SeverityWarning, Result{
				Level:       LevelGround,
				Message:     fmt.Sprintf("aircraft %q fits no UA characteristic bucket", s.Aircraft.Name),
				Path:        v.path("aircraft"),
				ActualValue: fmt.Sprintf("%g m / %g m/s", s.Aircraft.MaxDimensionM, s.Aircraft.MaxSpeedMS),
			})
		case fit > c:
			v.add(SeverityWarning, Result{
				Level:       LevelGround,
				Message:     fmt.Sprintf("ua_class %s is smaller than the linked aircraft (%s)", c, fit),
				Path:        v.path("ua_class"),
				ActualValue: c.String(),
				Expected:    fit.String(),
			})
		}
	}

	for _, id := range sortedKeys(s.Mitigations) {
		m := s.Mitigations[id]
		field := "mitigations." + id
		gm, err := tables.GroundMitigationByID(id)
		if err != nil {
			v.add(SeverityError, Result{Level: LevelGround, Message: err.Error(), Path: v.path(field), ActualValue: id})
			continue
		}
		if !m.Enabled {
			continue
		}
		r, err := tables.ParseRobustness(m.Robustness)
		if err != nil {
			v.add(SeverityError, Result{Level: LevelGround, Message: err.Error(), Path: v.path(field + ".robustness"), ActualValue: m.Robustness})
			continue
		}
		if _, ok := gm.Reduction(r); !ok {
			v.add(SeverityError, Result{
				Level:       LevelGround,
				Message:     fmt.Sprintf("%s does not define a %s robustness level", id, r),
				Path:        v.path(field + ".robustness"),
				ActualValue: r.String(),
				Suggestions: names(gm.Levels()),
			})
			continue
		}
		if r == tables.RobustnessNone {
			v.add(SeverityInfo, Result{
				Level:   LevelGround,
				Message: fmt.Sprintf("%s is enabled without a robustness level and earns no reduction", id),
				Path:    v.path(field + ".robustness"),
			})
			continue
		}
		if m.Evidence == "" {
			v.add(SeverityWarning, Result{
				Level:   LevelGround,
				Message: fmt.Sprintf("%s claims %s robustness without evidence", id, r),
				Path:    v.path(field + ".evidence"),
			})
		}
	}
}

func (v *siteValidator) air() {
	s := v.site

	v.category(LevelAir, "initial_arc", s.InitialARC, func(x string) error {
		_, err := tables.ParseARC(x)
		return err
	}, names(tables.ARCs()))

	t := s.Tactical
	if !t.Enabled {
		return
	}
	if _, err := tables.ParseTacticalType(t.Type); err != nil {
		v.add(SeverityError, Result{Level: LevelAir, Message: err.Error(), Path: v.path("tactical.type"), ActualValue: t.Type})
	}
	r, err := tables.ParseRobustness(t.Robustness)
	if err != nil {
		v.add(SeverityError, Result{Level: LevelAir, Message: err.Error(), Path: v.path("tactical.robustness"), ActualValue: t.Robustness})
		return
	}
	if r != tables.RobustnessNone && t.Evidence == "" {
		v.add(SeverityWarning, Result{
			Level:   LevelAir,
			Message: fmt.Sprintf("tactical mitigation claims %s robustness without evidence", r),
			Path:    v.path("tactical.evidence"),
		})
	}
}

func (v *siteValidator) osos() {
	s := v.site
	for _, id := range sortedKeys(s.OSOs) {
		d := s.OSOs[id]
		field := "osos." + id
		if _, err := tables.OSOByID(id); err != nil {
			v.add(SeverityError, Result{Level: LevelOSO, Message: err.Error(), Path: v.path(field), ActualValue: id})
			continue
		}
		r, err := tables.ParseRobustness(d.Robustness)
		if err != nil {
			v.add(SeverityError, Result{Level: LevelOSO, Message: err.Error(), Path: v.path(field + ".robustness"), ActualValue: d.Robustness})
			continue
		}
		if r != tables.RobustnessNone && d.Evidence == "" {
			v.add(SeverityWarning, Result{
				Level:   LevelOSO,
				Message: fmt.Sprintf("%s claims %s robustness without evidence", id, r),
				Path:    v.path(field + ".evidence"),
			})
		}
	}
}

func (v *siteValidator) containment() {
	s := v.site

	if s.AdjacentPopulation == "" {
		v.add(SeverityWarning, Result{
			Level:       LevelContainment,
			Message:     "adjacent_population is not set; containment cannot be assessed",
			Path:        v.path("adjacent_population"),
			Suggestions: names(tables.Populations()),
		})
	} else if _, err := tables.ParsePopulation(s.AdjacentPopulation); err != nil {
		v.add(SeverityError, Result{Level: LevelContainment, Message: err.Error(), Path: v.path("adjacent_population"), ActualValue: s.AdjacentPopulation})
	}

	method := s.Containment.Method
	if method == "" {
		return
	}
	cm, err := tables.ContainmentMethodByKey(method)
	if err != nil {
		v.add(SeverityError, Result{Level: LevelContainment, Message: err.Error(), Path: v.path("containment.method"), ActualValue: method})
		return
	}
	if cm.Achievable != tables.RobustnessNone && s.Containment.Evidence == "" {
		v.add(SeverityWarning, Result{
			Level:       LevelContainment,
			Message:     fmt.Sprintf("containment method %s selected without evidence", cm.Key),
			Path:        v.path("containment.evidence"),
			Suggestions: cm.Evidence,
		})
	}
}

func names[T fmt.Stringer](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
