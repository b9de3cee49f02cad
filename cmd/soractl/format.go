package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin-aeria/muster-sub008/pkg/assessment"
	"github.com/dustin-aeria/muster-sub008/pkg/sora"
	"github.com/dustin-aeria/muster-sub008/pkg/validation"
)

func printValidationReport(w io.Writer, r *validation.Report) {
	if len(r.Errors) > 0 {
		fmt.Fprintf(w, "ERRORS (%d):\n", len(r.Errors))
		for _, e := range r.Errors {
			printResult(w, e)
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "WARNINGS (%d):\n", len(r.Warnings))
		for _, x := range r.Warnings {
			printResult(w, x)
		}
		fmt.Fprintln(w)
	}

	if len(r.Info) > 0 {
		fmt.Fprintf(w, "INFO (%d):\n", len(r.Info))
		for _, i := range r.Info {
			fmt.Fprintf(w, "  [%s] %s\n", i.Level, i.Message)
		}
		fmt.Fprintln(w)
	}

	if r.Valid {
		fmt.Fprintf(w, "Result: VALID (%s)\n", r.Summary)
	} else {
		fmt.Fprintf(w, "Result: INVALID (%s)\n", r.Summary)
	}
}

func printResult(w io.Writer, r validation.Result) {
	fmt.Fprintf(w, "  [%s] %s\n", r.Level, r.Message)
	if r.Path != "" {
		if r.ActualValue != nil {
			fmt.Fprintf(w, "    -> %s = %v\n", r.Path, r.ActualValue)
		} else {
			fmt.Fprintf(w, "    -> %s\n", r.Path)
		}
	}
	if r.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", r.Expected)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printSummary(w io.Writer, p *assessment.Project, sum sora.ProjectSummary) {
	title := fmt.Sprintf("SORA assessment: %s (%s)", p.Name, p.ID)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%-12s %-13s %5s %5s %4s %4s %-13s %5s %-11s\n",
		"Site", "Status", "iGRC", "fGRC", "ARC", "rARC", "SAIL", "OSOs", "Containment")
	fmt.Fprintf(w, "%-12s %-13s %5s %5s %4s %4s %-13s %5s %-11s\n",
		"------------", "-------------", "-----", "-----", "----", "----", "-------------", "-----", "-----------")

	for _, r := range sum.Sites {
		fmt.Fprintf(w, "%-12s %-13s %5s %5s %4s %4s %-13s %5s %-11s\n",
			r.SiteID, r.Status,
			grc(r.IntrinsicGRC, resolved(r)), grc(r.FinalGRC, resolved(r)),
			dash(r.InitialARC.String()), dash(r.ResidualARC.String()), dash(r.SAIL.String()),
			osoCell(r.OSO), containmentCell(r.Containment))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, "-------")
	governing := "-"
	if len(sum.GoverningSites) > 0 {
		governing = strings.Join(sum.GoverningSites, ", ")
	}
	fmt.Fprintf(w, "  Project SAIL:           %s\n", dash(sum.SAIL.String()))
	fmt.Fprintf(w, "  Governing sites:        %s\n", governing)
	fmt.Fprintf(w, "  Within scope:           %s\n", yesNo(sum.WithinScope))
	fmt.Fprintf(w, "  Complete:               %s\n", yesNo(sum.Complete))
	fmt.Fprintf(w, "  OSO compliant:          %s\n", yesNo(sum.OSOCompliant))
	fmt.Fprintf(w, "  Containment compliant:  %s\n", yesNo(sum.ContainmentCompliant))

	for _, r := range sum.Sites {
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "  ! %s: %s\n", r.SiteID, r.Error)
		case len(r.Missing) > 0:
			fmt.Fprintf(w, "  ! %s: missing %s\n", r.SiteID, strings.Join(r.Missing, ", "))
		}
	}
}

func printOSOReport(w io.Writer, siteID string, rep *sora.OSOReport) {
	fmt.Fprintf(w, "OSO compliance for %s at SAIL %s\n\n", siteID, rep.SAIL)
	fmt.Fprintf(w, "%-6s %-9s %-9s %-4s %s\n", "OSO", "Required", "Achieved", "OK", "Title")
	fmt.Fprintf(w, "%-6s %-9s %-9s %-4s %s\n", "------", "---------", "---------", "----", "-----")
	for _, o := range rep.PerOSO {
		fmt.Fprintf(w, "%-6s %-9s %-9s %-4s %s\n", o.ID, o.Required, o.Achieved, yesNo(o.Compliant), o.Title)
	}
	fmt.Fprintf(w, "\n%d of %d required objectives met; overall %s\n",
		rep.Summary.CompliantCount, rep.Summary.TotalRequired, passFail(rep.Summary.OverallCompliant))
}

func printContainmentReport(w io.Writer, siteID string, rep *sora.ContainmentReport) {
	fmt.Fprintf(w, "Containment for %s\n\n", siteID)
	fmt.Fprintf(w, "  Adjacent area riskier:  %s\n", yesNo(rep.AdjacentIsRiskier))
	fmt.Fprintf(w, "  Required robustness:    %s\n", rep.RequiredRobustness)
	fmt.Fprintf(w, "  Method:                 %s (achieves %s)\n", rep.Method, rep.Achievable)
	if rep.AdjacentDistanceM > 0 {
		fmt.Fprintf(w, "  Adjacent area distance: %.0f m\n", rep.AdjacentDistanceM)
	}
	if rep.Evidence != "" {
		fmt.Fprintf(w, "  Evidence:               %s\n", rep.Evidence)
	}
	if len(rep.RequiredEvidence) > 0 {
		fmt.Fprintln(w, "  Evidence expected:")
		for _, e := range rep.RequiredEvidence {
			fmt.Fprintf(w, "    * %s\n", e)
		}
	}
	fmt.Fprintf(w, "\nResult: %s\n", passFail(rep.MeetsRequirement))
}

func resolved(r sora.SiteResult) bool {
	return r.SAIL.Level() || r.SAIL.OutOfScope()
}

// grc hides ground figures for sites that never resolved them.
func grc(v int, resolved bool) string {
	if !resolved {
		return "-"
	}
	return fmt.Sprint(v)
}

func osoCell(r *sora.OSOReport) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d/%d", r.Summary.CompliantCount, r.Summary.TotalRequired)
}

func containmentCell(r *sora.ContainmentReport) string {
	switch {
	case r == nil:
		return "-"
	case !r.AdjacentIsRiskier:
		return "n/a"
	default:
		return passFail(r.MeetsRequirement)
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func passFail(b bool) string {
	if b {
		return "PASS"
	}
	return "FAIL"
}
