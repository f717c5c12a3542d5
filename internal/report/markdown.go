package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/flow"
)

// MarkdownReporter implements the Reporter interface by saving reports as markdown files.
type MarkdownReporter struct {
	outputDir string
}

// NewMarkdownReporter creates a new MarkdownReporter.
func NewMarkdownReporter(outputDir string) *MarkdownReporter {
	return &MarkdownReporter{
		outputDir: outputDir,
	}
}

// Save writes coverage_<session>.md and returns its path.
func (r *MarkdownReporter) Save(session Session, results []*coverage.MethodCoverage) (string, error) {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	reportPath := filepath.Join(r.outputDir, fmt.Sprintf("coverage_%s.md", session.ID))
	if err := os.WriteFile(reportPath, []byte(Markdown(session, results)), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return reportPath, nil
}

// Markdown renders the session as a markdown document.
func Markdown(session Session, results []*coverage.MethodCoverage) string {
	var b strings.Builder
	s := Summarize(results)

	fmt.Fprintf(&b, "# Coverage Report: %s\n\n", session.Source)
	fmt.Fprintf(&b, "## Session: %s\n\n", session.ID)
	fmt.Fprintf(&b, "Started: %s\n\n", session.Start.Format("2006-01-02 15:04:05"))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Counter | Missed | Covered | Coverage |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, row := range []struct {
		name string
		c    coverage.Counter
	}{
		{"Instructions", s.Instructions},
		{"Branches", s.Branches},
		{"Lines", s.Lines},
		{"Methods", s.Methods},
	} {
		fmt.Fprintf(&b, "| %s | %d | %d | %s |\n", row.name, row.c.Missed, row.c.Covered, percent(row.c))
	}
	b.WriteString("\n## Methods\n\n")

	for _, mc := range WithCode(results) {
		fmt.Fprintf(&b, "### `%s%s`\n\n", mc.Name, mc.Desc)
		if mc.FirstLine() != flow.UnknownLine {
			fmt.Fprintf(&b, "Lines %d-%d, ", mc.FirstLine(), mc.LastLine())
		}
		fmt.Fprintf(&b, "instructions %s, branches %s\n\n", percent(mc.Instructions), percent(mc.Branches))

		lines := mc.Lines()
		if len(lines) == 0 {
			continue
		}
		b.WriteString("| Line | Instructions | Branches | Status |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, lc := range lines {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", lc.Line, lc.Instructions, lc.Branches, lc.Status())
		}
		b.WriteString("\n")
	}
	return b.String()
}
