package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjy-dev/covcalc/internal/coverage"
	"github.com/zjy-dev/covcalc/internal/flow"
)

type ignoreFirst struct {
	name string
}

func (f *ignoreFirst) Name() string { return f.name }

func (f *ignoreFirst) Filter(m *flow.Method, out coverage.FilterOutput) {
	out.Ignore(m.First(), m.First())
}

func TestRegistry(t *testing.T) {
	Register("test-ignore-first", func(options map[string]interface{}) (Filter, error) {
		name, _ := options["name"].(string)
		return &ignoreFirst{name: name}, nil
	})

	f, err := New("test-ignore-first", map[string]interface{}{"name": "first"})
	require.NoError(t, err)
	assert.Equal(t, "first", f.Name())
	assert.Contains(t, Registered(), "test-ignore-first")

	_, err = New("does-not-exist", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "filter plugin not found")
}

func TestNewChain(t *testing.T) {
	Register("test-chain", func(options map[string]interface{}) (Filter, error) {
		return &ignoreFirst{name: "test-chain"}, nil
	})

	chain, err := NewChain([]string{"test-chain", "test-chain"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"test-chain", "test-chain"}, chain.Names())

	_, err = NewChain([]string{"test-chain", "missing"}, nil)
	assert.Error(t, err)
}

func TestChain_Filter(t *testing.T) {
	m := flow.NewMethod("run", "()V")
	m.Add(1, 1, 1)
	m.Add(2, 1, 0)

	calc := coverage.NewCalculator(m)
	Chain{&ignoreFirst{name: "a"}, &ignoreFirst{name: "b"}}.Filter(m, calc)

	mc := coverage.NewMethodCoverage(m.Name, m.Desc)
	calc.Calculate(mc)

	assert.Equal(t, coverage.Counter10, mc.Instructions)
	assert.Equal(t, coverage.Counter10, mc.Methods)
}
