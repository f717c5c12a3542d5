package plugins

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/filter"
	"github.com/zjy-dev/covcalc/internal/flow"
	"github.com/zjy-dev/covcalc/internal/logger"
)

func init() {
	filter.Register("directives", NewDirectivesFilter)
}

// NewDirectivesFilter creates a filter that replays directives recorded with a method.
//
// Options:
//   - strict (bool, default false): a malformed directive aborts the analysis of the method
//     instead of being skipped with a warning.
func NewDirectivesFilter(options map[string]interface{}) (filter.Filter, error) {
	f := &DirectivesFilter{}

	if options != nil {
		if v, ok := options["strict"]; ok {
			strict, err := cast.ToBoolE(v)
			if err != nil {
				return nil, fmt.Errorf("directives: invalid strict option: %w", err)
			}
			f.Strict = strict
		}
	}
	return f, nil
}

// DirectivesFilter issues the directives stored in flow.Method.Directives, in order.
type DirectivesFilter struct {
	Strict bool
}

// Name implements filter.Filter.
func (f *DirectivesFilter) Name() string {
	return "directives"
}

// Filter implements filter.Filter. Directives that do not fit m are skipped, or panic in
// strict mode.
func (f *DirectivesFilter) Filter(m *flow.Method, out coverage.FilterOutput) {
	for i, d := range m.Directives {
		if err := d.Validate(m); err != nil {
			if f.Strict {
				panic(fmt.Sprintf("directive %d of %s: %v", i, m, err))
			}
			logger.Warn("Skipping directive %d of %s: %v", i, m, err)
			continue
		}

		switch d.Kind {
		case flow.DirectiveIgnore:
			out.Ignore(d.From, d.To)
		case flow.DirectiveMerge:
			out.Merge(d.A, d.B)
		case flow.DirectiveReplace:
			out.ReplaceBranches(d.Source, d.Targets)
		}
	}
}
