package coverage

import (
	"fmt"

	"github.com/zjy-dev/covcalc/internal/flow"
)

const noParent flow.InsnID = -1

// Calculator resolves filter directives for one method and reports its counters.
// A Calculator is single-use and not safe for concurrent use.
type Calculator struct {
	method *flow.Method

	ignored []bool

	// Instructions to be merged form disjoint sets, each kept as a singly linked list:
	// parent[i] is the next element of the set, and the element without a parent is the
	// representative that receives the state of the whole set.
	parent []flow.InsnID

	replacements map[flow.InsnID][]flow.InsnID

	done bool
}

var _ FilterOutput = (*Calculator)(nil)

// NewCalculator creates a calculator over the instructions of m. The instruction states
// of m are modified in place by Calculate.
func NewCalculator(m *flow.Method) *Calculator {
	parent := make([]flow.InsnID, m.Len())
	for i := range parent {
		parent[i] = noParent
	}
	return &Calculator{
		method:       m,
		ignored:      make([]bool, m.Len()),
		parent:       parent,
		replacements: make(map[flow.InsnID][]flow.InsnID),
	}
}

// Calculate merges equivalent instructions and reports every remaining instruction to
// sink, followed by one method increment.
func (c *Calculator) Calculate(sink Sink) {
	c.checkOpen("calculate")
	c.done = true

	// Merge every instruction into its representative before anything is reported.
	for _, id := range c.method.IDs() {
		r := c.findRepresentative(id)
		if r != id {
			c.ignored[id] = true
			c.method.Insn(r).Merge(c.method.Insn(id))
		}
	}

	for _, id := range c.method.IDs() {
		if c.ignored[id] {
			continue
		}

		insn := c.method.Insn(id)
		total, covered := insn.Branches, insn.CoveredBranches
		if targets, ok := c.replacements[id]; ok {
			total, covered = len(targets), 0
			for _, t := range targets {
				if c.method.Insn(t).CoveredBranches > 0 {
					covered++
				}
			}
		}

		instrCounter := Counter01
		if covered == 0 {
			instrCounter = Counter10
		}
		branchCounter := Counter00
		if total > 1 {
			branchCounter = NewCounter(total-covered, covered)
		}
		sink.Increment(instrCounter, branchCounter, insn.Line)
	}
	sink.IncrementMethodCounter()
}

// Ignored reports whether id is currently excluded from reporting. After Calculate it also
// covers instructions that were merged into another representative.
func (c *Calculator) Ignored(id flow.InsnID) bool {
	return c.ignored[c.check(id)]
}

// Representative returns the instruction that id is merged into, or id itself.
func (c *Calculator) Representative(id flow.InsnID) flow.InsnID {
	return c.findRepresentative(c.check(id))
}

func (c *Calculator) findRepresentative(id flow.InsnID) flow.InsnID {
	for c.parent[id] != noParent {
		id = c.parent[id]
	}
	return id
}

// Ignore implements FilterOutput.
func (c *Calculator) Ignore(fromInclusive, toInclusive flow.InsnID) {
	c.checkOpen("ignore")
	c.check(fromInclusive)
	c.check(toInclusive)

	for id := fromInclusive; id != toInclusive; {
		c.ignored[id] = true
		next, ok := c.method.Next(id)
		if !ok {
			panic(fmt.Sprintf("coverage: instruction %d is not reachable from %d in %s",
				toInclusive, fromInclusive, c.method))
		}
		id = next
	}
	c.ignored[toInclusive] = true
}

// Merge implements FilterOutput.
func (c *Calculator) Merge(i1, i2 flow.InsnID) {
	c.checkOpen("merge")
	r1 := c.findRepresentative(c.check(i1))
	r2 := c.findRepresentative(c.check(i2))
	if r1 != r2 {
		c.parent[r2] = r1
	}
}

// ReplaceBranches implements FilterOutput. Duplicate targets count once.
func (c *Calculator) ReplaceBranches(source flow.InsnID, newTargets []flow.InsnID) {
	c.checkOpen("replace branches")
	c.check(source)

	seen := make(map[flow.InsnID]struct{}, len(newTargets))
	targets := make([]flow.InsnID, 0, len(newTargets))
	for _, t := range newTargets {
		c.check(t)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		targets = append(targets, t)
	}
	c.replacements[source] = targets
}

func (c *Calculator) check(id flow.InsnID) flow.InsnID {
	if !c.method.Valid(id) {
		panic(fmt.Sprintf("coverage: instruction %d does not belong to %s", id, c.method))
	}
	return id
}

func (c *Calculator) checkOpen(op string) {
	if c.done {
		panic(fmt.Sprintf("coverage: %s after coverage of %s was calculated", op, c.method))
	}
}
