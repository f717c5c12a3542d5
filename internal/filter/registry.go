package filter

import (
	"fmt"
	"sort"
)

// Factory creates a filter from its configuration options.
type Factory func(options map[string]interface{}) (Filter, error)

var (
	registry = make(map[string]Factory)
)

// Register adds a filter factory to the registry.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New creates a filter instance by name.
func New(name string, options map[string]interface{}) (Filter, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("filter plugin not found: %s", name)
	}
	return factory(options)
}

// NewChain creates the filters named in names, in order.
func NewChain(names []string, options map[string]map[string]interface{}) (Chain, error) {
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		f, err := New(name, options[name])
		if err != nil {
			return nil, err
		}
		chain = append(chain, f)
	}
	return chain, nil
}

// Registered returns the names of all registered filters, sorted.
func Registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
