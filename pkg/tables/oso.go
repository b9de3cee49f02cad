package tables

// OSO is an operational safety objective with its required robustness per
// SAIL.
type OSO struct {
	ID       string
	Title    string
	Category string
	required [SAILVI + 1]Requirement
}

const (
	rO = RequirementOptional
	rL = RequirementLow
	rM = RequirementMedium
	rH = RequirementHigh
)

// req builds the per-SAIL row from the I..VI values.
func req(i, ii, iii, iv, v, vi Requirement) [SAILVI + 1]Requirement {
	return [SAILVI + 1]Requirement{SAILI: i, SAILII: ii, SAILIII: iii, SAILIV: iv, SAILV: v, SAILVI: vi}
}

var osoCatalog = []OSO{
	{ID: "OSO01", Title: "Operator is competent and/or proven", Category: "Technical issue with the UAS", required: req(rO, rL, rM, rH, rH, rH)},
	{ID: "OSO02", Title: "UAS manufactured by competent and/or proven entity", Category: "Technical issue with the UAS", required: req(rO, rO, rL, rM, rH, rH)},
	{ID: "OSO03", Title: "UAS maintained by competent and/or proven entity", Category: "Technical issue with the UAS", required: req(rL, rL, rM, rM, rH, rH)},
	{ID: "OSO04", Title: "UAS components essential to safe operations are designed to an airworthiness design standard", Category: "Technical issue with the UAS", required: req(rO, rO, rO, rL, rM, rH)},
	{ID: "OSO05", Title: "UAS is designed considering system safety and reliability", Category: "Technical issue with the UAS", required: req(rO, rO, rL, rM, rH, rH)},
	{ID: "OSO06", Title: "C3 link characteristics are appropriate for the operation", Category: "Technical issue with the UAS", required: req(rO, rL, rL, rM, rH, rH)},
	{ID: "OSO07", Title: "Conformity check of the UAS configuration", Category: "Technical issue with the UAS", required: req(rL, rL, rM, rM, rH, rH)},
	{ID: "OSO08", Title: "Operational procedures are defined, validated and adhered to", Category: "Operational procedures", required: req(rL, rM, rH, rH, rH, rH)},
	{ID: "OSO09", Title: "Remote crew trained and current", Category: "Remote crew competency", required: req(rL, rL, rM, rM, rH, rH)},
	{ID: "OSO13", Title: "External services supporting UAS operations are adequate", Category: "Deterioration of external systems", required: req(rL, rL, rM, rH, rH, rH)},
	{ID: "OSO16", Title: "Multi crew coordination", Category: "Human error", required: req(rL, rL, rM, rM, rH, rH)},
	{ID: "OSO17", Title: "Remote crew is fit to operate", Category: "Human error", required: req(rL, rL, rM, rM, rH, rH)},
	{ID: "OSO18", Title: "Automatic protection of the flight envelope from human error", Category: "Human error", required: req(rO, rO, rL, rM, rH, rH)},
	{ID: "OSO19", Title: "Safe recovery from human error", Category: "Human error", required: req(rO, rO, rL, rM, rM, rH)},
	{ID: "OSO20", Title: "A human factors evaluation has been performed and the HMI found appropriate", Category: "Human error", required: req(rO, rL, rL, rM, rM, rH)},
	{ID: "OSO23", Title: "Environmental conditions for safe operations defined, measurable and adhered to", Category: "Adverse operating conditions", required: req(rL, rL, rM, rM, rH, rH)},
	{ID: "OSO24", Title: "UAS designed and qualified for adverse environmental conditions", Category: "Adverse operating conditions", required: req(rO, rO, rM, rH, rH, rH)},
}

// Required returns the requirement at s. It is false for an unset SAIL and
// for SAILOutOfScope, which carry no SORA requirement set.
func (x OSO) Required(s SAIL) (Requirement, bool) {
	if !s.Level() {
		return RequirementOptional, false
	}
	return x.required[s], true
}

// OSOs returns the catalog in ID order.
func OSOs() []OSO {
	out := make([]OSO, len(osoCatalog))
	copy(out, osoCatalog)
	return out
}

// OSOByID looks an objective up by ID, e.g. OSO08.
func OSOByID(id string) (OSO, error) {
	for _, x := range osoCatalog {
		if x.ID == id {
			return x, nil
		}
	}
	return OSO{}, invalid("OSO", id)
}
