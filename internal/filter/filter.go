// Package filter defines the contract of coverage filters: components that inspect a method
// and tell the calculator which instructions to ignore, merge or re-branch.
package filter

import (
	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/flow"
)

// Filter issues directives for one method.
type Filter interface {
	// Name returns the registry name of the filter.
	Name() string

	// Filter inspects m and records its directives on out.
	Filter(m *flow.Method, out coverage.FilterOutput)
}

// Chain runs filters in order against the same output.
type Chain []Filter

// Filter implements Filter.
func (c Chain) Filter(m *flow.Method, out coverage.FilterOutput) {
	for _, f := range c {
		f.Filter(m, out)
	}
}

// Name implements Filter.
func (c Chain) Name() string {
	return "chain"
}

// Names lists the filters of the chain.
func (c Chain) Names() []string {
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name()
	}
	return names
}
