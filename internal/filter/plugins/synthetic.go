package plugins

import (
	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/filter"
	"github.com/zjy-dev/covcalc/internal/flow"
)

func init() {
	filter.Register("synthetic", NewSyntheticFilter)
}

// NewSyntheticFilter creates a filter that hides compiler-generated methods.
func NewSyntheticFilter(options map[string]interface{}) (filter.Filter, error) {
	return &SyntheticFilter{}, nil
}

// SyntheticFilter ignores every instruction of a method flagged as synthetic.
type SyntheticFilter struct{}

// Name implements filter.Filter.
func (f *SyntheticFilter) Name() string {
	return "synthetic"
}

// Filter implements filter.Filter.
func (f *SyntheticFilter) Filter(m *flow.Method, out coverage.FilterOutput) {
	if !m.Synthetic || m.Len() == 0 {
		return
	}
	out.Ignore(m.First(), m.Last())
}
