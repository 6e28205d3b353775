package contracts

import (
	"fmt"
	"math"
	"strings"
)

// Finding is one paragraph of the derived analysis shown for a contract.
type Finding struct {
	Title string
	Text  string
}

// Analyze derives the financial, deadline and readiness findings.
func Analyze(c Contract, f Formatter) []Finding {
	financial := "No data for financial analysis."
	if c.ActualAmount != nil && c.PlannedAmount != nil && *c.ActualAmount != 0 && *c.PlannedAmount != 0 {
		pct := math.Round(c.ActualAmount.Float() / c.PlannedAmount.Float() * 100)
		financial = fmt.Sprintf("Actual amount is %d%% of planned.", int64(pct))
	}

	deadline := "Execution deadline not set."
	if strings.TrimSpace(c.ExecutionDeadline) != "" {
		deadline = fmt.Sprintf("Execution deadline set to %s.", f.Date(c.ExecutionDeadline))
	}

	readiness := "No readiness information."
	if strings.TrimSpace(c.ReadinessDescription) != "" {
		readiness = "The readiness description reflects the current state of the work."
	}

	return []Finding{
		{Title: "Financial analysis", Text: financial},
		{Title: "Execution terms", Text: deadline},
		{Title: "Completion status", Text: readiness},
	}
}

// Markdown renders the full details document for a contract.
func Markdown(c Contract, f Formatter, keyword string) string {
	var b strings.Builder
	status := StatusOf(c, keyword)

	fmt.Fprintf(&b, "# %s\n\n", escapeMarkdown(c.Title()))
	fmt.Fprintf(&b, "**Status:** %s\n\n", status.Label())

	b.WriteString("## Key parameters\n\n")
	fmt.Fprintf(&b, "- **Number:** %s\n", escapeMarkdown(orDefault(c.Number, "Not set")))
	fmt.Fprintf(&b, "- **Planned amount:** %s\n", f.Amount(c.PlannedAmount))
	fmt.Fprintf(&b, "- **Actual amount:** %s\n", f.Amount(c.ActualAmount))
	fmt.Fprintf(&b, "- **Execution deadline:** %s\n\n", f.Date(c.ExecutionDeadline))

	b.WriteString("## Main information\n\n")
	fmt.Fprintf(&b, "- **Parties:** %s\n", escapeMarkdown(orDefault(c.Parties, "Not set")))
	fmt.Fprintf(&b, "- **Number:** %s\n", escapeMarkdown(orDefault(c.Number, "Not set")))
	fmt.Fprintf(&b, "- **Contract date:** %s\n\n", f.Date(c.ContractDate))

	b.WriteString("## Readiness\n\n")
	fmt.Fprintf(&b, "%s\n\n", escapeMarkdown(orDefault(c.ReadinessDescription, "No description")))

	b.WriteString("## System information\n\n")
	fmt.Fprintf(&b, "- **ID:** %d\n", c.ID)
	fmt.Fprintf(&b, "- **Created:** %s\n\n", f.CreatedAt(c))

	b.WriteString("## Analysis\n\n")
	for _, finding := range Analyze(c, f) {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", finding.Title, finding.Text)
	}

	if len(c.Versions) > 0 {
		b.WriteString("## Versions\n\n")
		for _, v := range c.Versions {
			line := fmt.Sprintf("- **v%d**", v.VersionNumber)
			if desc := strings.TrimSpace(v.ChangesDescription); desc != "" {
				line += " " + escapeMarkdown(desc)
			}
			if summary := strings.TrimSpace(v.AISummary); summary != "" {
				line += " _(" + escapeMarkdown(summary) + ")_"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
