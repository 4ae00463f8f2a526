package scenario

import (
	"fmt"
	"io"
	"strings"
)

// Entry is the trace of one step.
type Entry struct {
	Step      int
	Op        Op
	Attribute string
	Args      string
	Output    string
}

// Final holds every keyframe left on an attribute after the last step.
type Final struct {
	Attribute string
	Keyframes string
}

type Result struct {
	Name    string
	Entries []Entry
	Final   []Final
}

// Render writes the trace in a stable line format:
//
//	scenario: <name>
//	step <n>: <op> <attribute> <args> = <output>
//	final <attribute>: [<time>:<value> ...]
func (r *Result) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "step %d: %s %s %s = %s\n", e.Step, e.Op, e.Attribute, e.Args, e.Output)
	}
	for _, f := range r.Final {
		fmt.Fprintf(&b, "final %s: %s\n", f.Attribute, f.Keyframes)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
