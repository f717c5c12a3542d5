// Package analysis runs filters and the coverage calculator over the methods of a dump.
package analysis

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/filter"
	"github.com/zjy-dev/covcalc/internal/flow"
	"github.com/zjy-dev/covcalc/internal/logger"
)

// ErrContract reports a filter or input that broke the calculator's preconditions, such as
// an ignore range whose end is not reachable from its start.
var ErrContract = errors.New("coverage contract violated")

// Analyzer computes method coverage. It is safe for concurrent use as long as the filters are.
type Analyzer struct {
	filters filter.Filter
	workers int
}

// NewAnalyzer creates an analyzer that runs filters before each calculation and analyzes up
// to workers methods at once.
func NewAnalyzer(filters filter.Filter, workers int) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	if filters == nil {
		filters = filter.Chain{}
	}
	return &Analyzer{filters: filters, workers: workers}
}

// AnalyzeMethod calculates the coverage of m. The instruction states of m are merged in
// place, so m must not be shared with another analysis.
func (a *Analyzer) AnalyzeMethod(m *flow.Method) (mc *coverage.MethodCoverage, err error) {
	defer func() {
		if r := recover(); r != nil {
			mc = nil
			err = fmt.Errorf("%w: %s: %v", ErrContract, m, r)
		}
	}()

	calc := coverage.NewCalculator(m)
	a.filters.Filter(m, calc)

	mc = coverage.NewMethodCoverage(m.Name, m.Desc)
	calc.Calculate(mc)

	logger.Debug("Analyzed %s: instructions %s, branches %s, lines %s",
		m, mc.Instructions, mc.Branches, mc.LineCoverage())
	return mc, nil
}

// AnalyzeAll analyzes methods concurrently. Results keep the order of methods. The first
// failure cancels the methods that have not started yet.
func (a *Analyzer) AnalyzeAll(ctx context.Context, methods []*flow.Method) ([]*coverage.MethodCoverage, error) {
	results := make([]*coverage.MethodCoverage, len(methods))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, m := range methods {
		if gctx.Err() != nil {
			break
		}
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			mc, err := a.AnalyzeMethod(m)
			if err != nil {
				return err
			}
			results[i] = mc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
