// Package coverage computes instruction, branch and line counters for one method from an
// annotated instruction graph and the directives issued by coverage filters.
package coverage

import "github.com/zjy-dev/covcalc/internal/flow"

// FilterOutput is the directive sink offered to filters. All directives for a method must be
// issued before the method is calculated; they may arrive in any order from any number of
// filters.
type FilterOutput interface {
	// Ignore excludes every instruction from fromInclusive to toInclusive, following
	// successor links. toInclusive must be reachable from fromInclusive.
	Ignore(fromInclusive, toInclusive flow.InsnID)

	// Merge declares two instructions coverage-equivalent. Their states are combined into
	// one representative that is reported on its own line.
	Merge(i1, i2 flow.InsnID)

	// ReplaceBranches makes the branch coverage of source depend on newTargets instead of
	// its own counters. A later call for the same source overwrites the earlier one.
	ReplaceBranches(source flow.InsnID, newTargets []flow.InsnID)
}
