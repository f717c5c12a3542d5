package coverage

import (
	"sort"

	"github.com/zjy-dev/covcalc/internal/flow"
)

// Sink receives the per-instruction results of a calculation.
type Sink interface {
	// Increment adds the counters of one reported instruction on the given line.
	Increment(instructions, branches Counter, line int)

	// IncrementMethodCounter records that one method was processed.
	IncrementMethodCounter()
}

// LineCounter holds the counters of one source line.
type LineCounter struct {
	Line         int
	Instructions Counter
	Branches     Counter
}

// Status combines instruction and branch status of the line.
func (l LineCounter) Status() Status {
	return l.Instructions.Status().Or(l.Branches.Status())
}

// MethodCoverage accumulates the results of one method.
type MethodCoverage struct {
	Name string
	Desc string

	Instructions Counter
	Branches     Counter
	Methods      Counter

	lines     map[int]*LineCounter
	firstLine int
	lastLine  int
}

// NewMethodCoverage creates an empty accumulator for the named method.
func NewMethodCoverage(name, desc string) *MethodCoverage {
	return &MethodCoverage{
		Name:      name,
		Desc:      desc,
		lines:     make(map[int]*LineCounter),
		firstLine: flow.UnknownLine,
		lastLine:  flow.UnknownLine,
	}
}

// Increment implements Sink.
func (mc *MethodCoverage) Increment(instructions, branches Counter, line int) {
	mc.Instructions = mc.Instructions.Add(instructions)
	mc.Branches = mc.Branches.Add(branches)

	if line == flow.UnknownLine {
		return
	}

	lc, ok := mc.lines[line]
	if !ok {
		lc = &LineCounter{Line: line}
		mc.lines[line] = lc
	}
	lc.Instructions = lc.Instructions.Add(instructions)
	lc.Branches = lc.Branches.Add(branches)

	if mc.firstLine == flow.UnknownLine || line < mc.firstLine {
		mc.firstLine = line
	}
	if line > mc.lastLine {
		mc.lastLine = line
	}
}

// IncrementMethodCounter implements Sink.
func (mc *MethodCoverage) IncrementMethodCounter() {
	if mc.Instructions.Covered == 0 {
		mc.Methods = mc.Methods.Add(Counter10)
	} else {
		mc.Methods = mc.Methods.Add(Counter01)
	}
}

// Lines returns the line counters ordered by line number.
func (mc *MethodCoverage) Lines() []LineCounter {
	out := make([]LineCounter, 0, len(mc.lines))
	for _, lc := range mc.lines {
		out = append(out, *lc)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Line < out[j].Line
	})
	return out
}

// Line returns the counters of one line, with ok false if nothing was reported on it.
func (mc *MethodCoverage) Line(line int) (LineCounter, bool) {
	lc, ok := mc.lines[line]
	if !ok {
		return LineCounter{Line: line}, false
	}
	return *lc, true
}

// LineCoverage counts lines: a line is covered once any instruction on it is covered.
func (mc *MethodCoverage) LineCoverage() Counter {
	var c Counter
	for _, lc := range mc.lines {
		if lc.Instructions.Covered > 0 {
			c = c.Add(Counter01)
		} else if lc.Instructions.Missed > 0 {
			c = c.Add(Counter10)
		}
	}
	return c
}

// FirstLine returns the smallest reported line, or flow.UnknownLine.
func (mc *MethodCoverage) FirstLine() int {
	return mc.firstLine
}

// LastLine returns the largest reported line, or flow.UnknownLine.
func (mc *MethodCoverage) LastLine() int {
	return mc.lastLine
}
