package plugins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/filter"
	"github.com/zjy-dev/covcalc/internal/flow"
)

func run(t *testing.T, m *flow.Method, names ...string) *coverage.MethodCoverage {
	t.Helper()
	chain, err := filter.NewChain(names, nil)
	require.NoError(t, err)

	calc := coverage.NewCalculator(m)
	chain.Filter(m, calc)
	mc := coverage.NewMethodCoverage(m.Name, m.Desc)
	calc.Calculate(mc)
	return mc
}

func TestPluginsRegistered(t *testing.T) {
	assert.Subset(t, filter.Registered(), []string{"directives", "synthetic"})
}

func TestSyntheticFilter(t *testing.T) {
	m := flow.NewMethod("access$000", "()V")
	m.Synthetic = true
	m.Add(1, 1, 1)
	m.Add(2, 1, 1)

	mc := run(t, m, "synthetic")

	assert.Equal(t, coverage.Counter00, mc.Instructions)
	assert.Empty(t, mc.Lines())
	assert.Equal(t, coverage.Counter10, mc.Methods)
}

func TestSyntheticFilter_RegularMethod(t *testing.T) {
	m := flow.NewMethod("run", "()V")
	m.Add(1, 1, 1)

	mc := run(t, m, "synthetic")
	assert.Equal(t, coverage.Counter01, mc.Instructions)
}

func TestSyntheticFilter_EmptyMethod(t *testing.T) {
	m := flow.NewMethod("bridge", "()V")
	m.Synthetic = true

	mc := run(t, m, "synthetic")
	assert.Equal(t, coverage.Counter00, mc.Instructions)
}

func TestDirectivesFilter(t *testing.T) {
	m := flow.NewMethod("run", "()V")
	a := m.Add(1, 2, 1)
	b := m.Add(1, 0, 0)
	c := m.Add(2, 1, 1)
	d := m.Add(3, 1, 0)
	e := m.Add(4, 4, 2)
	m.Directives = []flow.Directive{
		{Kind: flow.DirectiveMerge, A: a, B: b},
		{Kind: flow.DirectiveIgnore, From: c, To: c},
		{Kind: flow.DirectiveReplace, Source: e, Targets: []flow.InsnID{c, d}},
	}

	mc := run(t, m, "directives")

	// a+b on line 1, d on line 3, e on line 4 with branches from {c, d}.
	assert.Equal(t, coverage.NewCounter(1, 2), mc.Instructions)
	assert.Equal(t, coverage.NewCounter(2, 2), mc.Branches)

	line4, ok := mc.Line(4)
	require.True(t, ok)
	assert.Equal(t, coverage.NewCounter(1, 1), line4.Branches)

	_, ok = mc.Line(2)
	assert.False(t, ok)
}

func TestNewDirectivesFilter_StrictOption(t *testing.T) {
	tests := []struct {
		name    string
		options map[string]interface{}
		strict  bool
		wantErr bool
	}{
		{"no options", nil, false, false},
		{"bool", map[string]interface{}{"strict": true}, true, false},
		{"string from env", map[string]interface{}{"strict": "true"}, true, false},
		{"off", map[string]interface{}{"strict": false}, false, false},
		{"garbage", map[string]interface{}{"strict": "maybe"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewDirectivesFilter(tt.options)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid strict option")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.strict, f.(*DirectivesFilter).Strict)
		})
	}
}

// badDirectives returns a method whose second directive is out of range and whose third has
// an unknown kind; the first and last are well formed.
func badDirectives() *flow.Method {
	m := flow.NewMethod("run", "()V")
	a := m.Add(1, 1, 1)
	b := m.Add(2, 1, 0)
	m.Directives = []flow.Directive{
		{Kind: flow.DirectiveIgnore, From: b, To: b},
		{Kind: flow.DirectiveMerge, A: a, B: 7},
		{Kind: "inline", From: a, To: a},
		{Kind: flow.DirectiveMerge, A: a, B: a},
	}
	return m
}

func TestDirectivesFilter_SkipsMalformed(t *testing.T) {
	f, err := NewDirectivesFilter(nil)
	require.NoError(t, err)

	m := badDirectives()
	calc := coverage.NewCalculator(m)
	assert.NotPanics(t, func() { f.Filter(m, calc) })

	mc := coverage.NewMethodCoverage(m.Name, m.Desc)
	calc.Calculate(mc)

	// Only the ignore of b took effect.
	assert.Equal(t, coverage.Counter01, mc.Instructions)
	_, ok := mc.Line(2)
	assert.False(t, ok)
}

func TestDirectivesFilter_Strict(t *testing.T) {
	chain, err := filter.NewChain([]string{"directives"}, map[string]map[string]interface{}{
		"directives": {"strict": true},
	})
	require.NoError(t, err)

	m := badDirectives()
	calc := coverage.NewCalculator(m)
	assert.PanicsWithValue(t,
		"directive 1 of run()V: merge directive references instruction 7, method has 2",
		func() { chain.Filter(m, calc) })

	m.Directives = []flow.Directive{m.Directives[0], m.Directives[2]}
	calc = coverage.NewCalculator(m)
	assert.PanicsWithValue(t,
		`directive 1 of run()V: unknown directive kind "inline"`,
		func() { chain.Filter(m, calc) })
}
