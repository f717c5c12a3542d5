// Package report renders method coverage results.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/zjy-dev/covcalc/internal/coverage"
)

// Session identifies one analysis run.
type Session struct {
	ID     string
	Source string
	Start  time.Time
}

// NewSession starts a session for the given input.
func NewSession(source string) Session {
	return Session{
		ID:     uuid.NewString(),
		Source: source,
		Start:  time.Now(),
	}
}

// Summary aggregates the counters of several methods.
type Summary struct {
	Instructions coverage.Counter
	Branches     coverage.Counter
	Lines        coverage.Counter
	Methods      coverage.Counter
}

// WithCode drops methods without any reported instruction, such as methods whose
// instructions were all filtered out. Such methods count neither as missed nor as covered.
func WithCode(results []*coverage.MethodCoverage) []*coverage.MethodCoverage {
	out := make([]*coverage.MethodCoverage, 0, len(results))
	for _, mc := range results {
		if mc.Instructions.Total() == 0 {
			continue
		}
		out = append(out, mc)
	}
	return out
}

// Summarize adds up the counters of the methods in results that have code.
func Summarize(results []*coverage.MethodCoverage) Summary {
	var s Summary
	for _, mc := range WithCode(results) {
		s.Instructions = s.Instructions.Add(mc.Instructions)
		s.Branches = s.Branches.Add(mc.Branches)
		s.Lines = s.Lines.Add(mc.LineCoverage())
		s.Methods = s.Methods.Add(mc.Methods)
	}
	return s
}

// Reporter saves the results of a session.
type Reporter interface {
	Save(session Session, results []*coverage.MethodCoverage) (string, error)
}

// WriteText writes one row per method with code and a total row to w.
func WriteText(w io.Writer, results []*coverage.MethodCoverage) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tINSTRUCTIONS\tBRANCHES\tLINES\tMETHOD")
	for _, mc := range WithCode(results) {
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\n", mc.Name, mc.Desc,
			mc.Instructions, mc.Branches, mc.LineCoverage(), mc.Methods)
	}
	s := Summarize(results)
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t%s\t%s\n", s.Instructions, s.Branches, s.Lines, s.Methods)
	return tw.Flush()
}

func percent(c coverage.Counter) string {
	if c.Total() == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", c.Ratio()*100)
}
