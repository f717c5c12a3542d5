package flow

import "fmt"

// DirectiveKind names a filter directive.
type DirectiveKind string

const (
	DirectiveIgnore  DirectiveKind = "ignore"
	DirectiveMerge   DirectiveKind = "merge"
	DirectiveReplace DirectiveKind = "replace"
)

// Directive is a filter directive recorded with the method by an upstream filter run.
type Directive struct {
	Kind DirectiveKind

	// ignore: From..To inclusive
	From, To InsnID

	// merge: A and B
	A, B InsnID

	// replace: Source gets Targets
	Source  InsnID
	Targets []InsnID
}

// Validate checks that the directive is well formed for m.
func (d Directive) Validate(m *Method) error {
	var ids []InsnID
	switch d.Kind {
	case DirectiveIgnore:
		if d.To < d.From {
			return fmt.Errorf("ignore range %d..%d is reversed", d.From, d.To)
		}
		ids = []InsnID{d.From, d.To}
	case DirectiveMerge:
		ids = []InsnID{d.A, d.B}
	case DirectiveReplace:
		ids = append([]InsnID{d.Source}, d.Targets...)
	default:
		return fmt.Errorf("unknown directive kind %q", d.Kind)
	}
	for _, id := range ids {
		if !m.Valid(id) {
			return fmt.Errorf("%s directive references instruction %d, method has %d", d.Kind, id, m.Len())
		}
	}
	return nil
}
