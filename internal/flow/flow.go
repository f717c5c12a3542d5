// Package flow holds the per-method instruction graph consumed by the coverage calculator.
// Nodes are addressed by InsnID handles into a Method arena; the natural successor of a
// node is the next entry of the arena.
package flow

import "fmt"

// UnknownLine marks an instruction without source line information.
const UnknownLine = -1

// InsnID is the stable handle of an instruction within its Method.
type InsnID int

// Instruction is the mutable coverage state of one instruction.
type Instruction struct {
	Line            int // Source line, or UnknownLine
	Branches        int // Outgoing edges considered for coverage
	CoveredBranches int // Edges that were exercised
}

// Merge adds the branch state of other into i. The line of i is kept.
func (i *Instruction) Merge(other *Instruction) {
	i.Branches += other.Branches
	i.CoveredBranches += other.CoveredBranches
}

// Method is the instruction arena of one method body.
type Method struct {
	Name      string
	Desc      string
	Synthetic bool

	// Directives recorded for this method by earlier filter runs, in issue order.
	Directives []Directive

	insns []*Instruction
}

// NewMethod creates an empty method.
func NewMethod(name, desc string) *Method {
	return &Method{Name: name, Desc: desc}
}

// Add appends an instruction and returns its handle.
func (m *Method) Add(line, branches, covered int) InsnID {
	m.insns = append(m.insns, &Instruction{
		Line:            line,
		Branches:        branches,
		CoveredBranches: covered,
	})
	return InsnID(len(m.insns) - 1)
}

// Insn returns the state of the instruction with the given handle.
func (m *Method) Insn(id InsnID) *Instruction {
	if !m.Valid(id) {
		panic(fmt.Sprintf("flow: instruction %d out of range [0,%d) in %s", id, len(m.insns), m.Name))
	}
	return m.insns[id]
}

// Valid reports whether id addresses an instruction of m.
func (m *Method) Valid(id InsnID) bool {
	return id >= 0 && int(id) < len(m.insns)
}

// Len returns the number of instructions.
func (m *Method) Len() int {
	return len(m.insns)
}

// IDs returns all handles in arena order.
func (m *Method) IDs() []InsnID {
	ids := make([]InsnID, len(m.insns))
	for i := range ids {
		ids[i] = InsnID(i)
	}
	return ids
}

// First returns the first instruction handle. Callers check Len first.
func (m *Method) First() InsnID {
	return 0
}

// Last returns the last instruction handle. Callers check Len first.
func (m *Method) Last() InsnID {
	return InsnID(len(m.insns) - 1)
}

// Next returns the natural successor of id, or false if id is the last instruction.
func (m *Method) Next(id InsnID) (InsnID, bool) {
	next := id + 1
	if !m.Valid(next) {
		return 0, false
	}
	return next, true
}

// String implements fmt.Stringer.
func (m *Method) String() string {
	return m.Name + m.Desc
}
