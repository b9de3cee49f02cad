package validation

import "fmt"

// Level indicates which validation stage produced the result.
type Level string

const (
	LevelSchema      Level = "schema"
	LevelGround      Level = "ground"
	LevelAir         Level = "air"
	LevelOSO         Level = "oso"
	LevelContainment Level = "containment"
)

// Severity indicates how critical a validation result is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Result is a single validation finding. Path addresses the offending
// field in the project file, e.g. sites[site-a].population.
type Result struct {
	Level       Level    `json:"level" yaml:"level"`
	Severity    Severity `json:"severity" yaml:"severity"`
	SiteID      string   `json:"site_id,omitempty" yaml:"site_id,omitempty"`
	Message     string   `json:"message" yaml:"message"`
	Path        string   `json:"path" yaml:"path"`
	ActualValue any      `json:"actual_value,omitempty" yaml:"actual_value,omitempty"`
	Expected    string   `json:"expected,omitempty" yaml:"expected,omitempty"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// Report is the complete validation output.
type Report struct {
	Valid    bool     `json:"valid" yaml:"valid"`
	Errors   []Result `json:"errors" yaml:"errors"`
	Warnings []Result `json:"warnings" yaml:"warnings"`
	Info     []Result `json:"info" yaml:"info"`
	Summary  string   `json:"summary" yaml:"summary"`
}

// NewReport creates an empty valid report.
func NewReport() *Report {
	return &Report{
		Valid:    true,
		Errors:   []Result{},
		Warnings: []Result{},
		Info:     []Result{},
	}
}

// AddError adds an error result and marks the report invalid.
func (r *Report) AddError(result Result) {
	result.Severity = SeverityError
	r.Errors = append(r.Errors, result)
	r.Valid = false
	r.updateSummary()
}

// AddWarning adds a warning result.
func (r *Report) AddWarning(result Result) {
	result.Severity = SeverityWarning
	r.Warnings = append(r.Warnings, result)
	r.updateSummary()
}

// AddInfo adds an informational result.
func (r *Report) AddInfo(result Result) {
	result.Severity = SeverityInfo
	r.Info = append(r.Info, result)
	r.updateSummary()
}

// Merge combines another report into this one.
func (r *Report) Merge(other *Report) {
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Info = append(r.Info, other.Info...)
	if !other.Valid {
		r.Valid = false
	}
	r.updateSummary()
}

// ForSite returns the findings that concern one site, in severity order.
func (r *Report) ForSite(siteID string) []Result {
	var out []Result
	for _, group := range [][]Result{r.Errors, r.Warnings, r.Info} {
		for _, res := range group {
			if res.SiteID == siteID {
				out = append(out, res)
			}
		}
	}
	return out
}

func (r *Report) updateSummary() {
	r.Summary = fmt.Sprintf("%d errors, %d warnings, %d info",
		len(r.Errors), len(r.Warnings), len(r.Info))
}
