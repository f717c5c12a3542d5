// Package dump decodes annotated method dumps: instruction graphs carrying execution results and
// the directives recorded by filters. Dumps are YAML; JSON input is accepted as well.
package dump

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjy-dev/covcalc/internal/flow"
)

// ErrInvalidDump is wrapped by every validation error.
var ErrInvalidDump = errors.New("invalid method dump")

// File is the document layout of a dump.
type File struct {
	Class   string   `yaml:"class"`
	Source  string   `yaml:"source"`
	Methods []Method `yaml:"methods"`
}

// Method is one method entry of a dump.
type Method struct {
	Name         string        `yaml:"name"`
	Desc         string        `yaml:"desc"`
	Synthetic    bool          `yaml:"synthetic"`
	Instructions []Instruction `yaml:"instructions"`
	Directives   []Directive   `yaml:"directives"`
}

// Instruction is the recorded state of one instruction. A missing line means no line info.
type Instruction struct {
	Line     *int `yaml:"line"`
	Branches int  `yaml:"branches"`
	Covered  int  `yaml:"covered"`
}

// Directive is a recorded filter directive.
type Directive struct {
	Kind    string `yaml:"kind"`
	From    int    `yaml:"from"`
	To      int    `yaml:"to"`
	A       int    `yaml:"a"`
	B       int    `yaml:"b"`
	Source  int    `yaml:"source"`
	Targets []int  `yaml:"targets"`
}

// Decode reads a dump document from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDump, err)
	}
	return &f, nil
}

// ReadFile decodes the dump stored at path.
func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	defer fh.Close()

	f, err := Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// FlowMethods converts every method entry into a flow.Method.
func (f *File) FlowMethods() ([]*flow.Method, error) {
	methods := make([]*flow.Method, 0, len(f.Methods))
	for i := range f.Methods {
		m, err := f.Methods[i].ToFlow()
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// ToFlow builds the instruction arena of the method and validates its directives.
func (dm *Method) ToFlow() (*flow.Method, error) {
	m := flow.NewMethod(dm.Name, dm.Desc)
	m.Synthetic = dm.Synthetic

	for i, insn := range dm.Instructions {
		if insn.Branches < 0 || insn.Covered < 0 {
			return nil, fmt.Errorf("%w: %s instruction %d has negative branch counts", ErrInvalidDump, m, i)
		}
		if insn.Covered > insn.Branches {
			return nil, fmt.Errorf("%w: %s instruction %d covers %d of %d branches",
				ErrInvalidDump, m, i, insn.Covered, insn.Branches)
		}
		line := flow.UnknownLine
		if insn.Line != nil {
			if *insn.Line < 1 {
				return nil, fmt.Errorf("%w: %s instruction %d has line %d, lines start at 1",
					ErrInvalidDump, m, i, *insn.Line)
			}
			line = *insn.Line
		}
		m.Add(line, insn.Branches, insn.Covered)
	}

	for i, d := range dm.Directives {
		fd := flow.Directive{
			Kind:   flow.DirectiveKind(d.Kind),
			From:   flow.InsnID(d.From),
			To:     flow.InsnID(d.To),
			A:      flow.InsnID(d.A),
			B:      flow.InsnID(d.B),
			Source: flow.InsnID(d.Source),
		}
		for _, t := range d.Targets {
			fd.Targets = append(fd.Targets, flow.InsnID(t))
		}
		if err := fd.Validate(m); err != nil {
			return nil, fmt.Errorf("%w: %s directive %d: %v", ErrInvalidDump, m, i, err)
		}
		m.Directives = append(m.Directives, fd)
	}
	return m, nil
}
