package scenario

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Kind selects the curve type and value encoding of an attribute.
type Kind string

const (
	KindContinuous Kind = "continuous"
	KindDiscrete   Kind = "discrete"
	KindVec2       Kind = "vec2"
)

// Op is a single timeline operation.
type Op string

const (
	OpInsert     Op = "insert"
	OpDrop       Op = "drop"
	OpEraseAfter Op = "erase_after"
	OpGet        Op = "get"
	OpIterate    Op = "iterate"
	OpCount      Op = "count"
	OpEvents     Op = "events"
)

type Attribute struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
}

// Step applies Op to Attribute. Point operations use At, range operations
// use From and To. Value is decoded according to the attribute kind: a
// number, a string or a [x, y] pair.
type Step struct {
	Op        Op        `yaml:"op"`
	Attribute string    `yaml:"attribute"`
	At        *float64  `yaml:"at,omitempty"`
	From      *float64  `yaml:"from,omitempty"`
	To        *float64  `yaml:"to,omitempty"`
	Value     yaml.Node `yaml:"value,omitempty"`
}

type Scenario struct {
	Name       string      `yaml:"name"`
	Attributes []Attribute `yaml:"attributes"`
	Steps      []Step      `yaml:"steps"`
}

// Load decodes and validates a scenario document. Unknown keys are rejected.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate reports every problem found, joined.
func (sc *Scenario) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidScenario}, args...)...))
	}

	if sc.Name == "" {
		fail("missing name")
	}

	kinds := make(map[string]Kind, len(sc.Attributes))
	for _, a := range sc.Attributes {
		switch {
		case a.Name == "":
			fail("attribute without name")
			continue
		case kinds[a.Name] != "":
			fail("attribute %q declared twice", a.Name)
			continue
		}
		switch a.Kind {
		case KindContinuous, KindDiscrete, KindVec2:
			kinds[a.Name] = a.Kind
		default:
			fail("attribute %q: unknown kind %q", a.Name, a.Kind)
		}
	}

	for i := range sc.Steps {
		st := &sc.Steps[i]
		kind, ok := kinds[st.Attribute]
		if !ok {
			fail("step %d: unknown attribute %q", i+1, st.Attribute)
			continue
		}
		if err := st.validate(kind); err != nil {
			fail("step %d: %v", i+1, err)
		}
	}

	return errors.Join(errs...)
}

func (st *Step) validate(kind Kind) error {
	switch st.Op {
	case OpInsert, OpDrop:
		if st.At == nil || math.IsNaN(*st.At) || math.IsInf(*st.At, 0) {
			return fmt.Errorf("%s needs a finite at", st.Op)
		}
		if st.Value.IsZero() {
			return fmt.Errorf("%s needs a value", st.Op)
		}
		if err := checkValue(kind, &st.Value); err != nil {
			return fmt.Errorf("%s value: %w", st.Op, err)
		}
	case OpEraseAfter, OpGet:
		if st.At == nil || math.IsNaN(*st.At) {
			return fmt.Errorf("%s needs at", st.Op)
		}
	case OpIterate, OpCount, OpEvents:
		if st.From == nil || st.To == nil {
			return fmt.Errorf("%s needs from and to", st.Op)
		}
		if !(*st.From < *st.To) {
			return fmt.Errorf("%s range [%v, %v) is empty", st.Op, *st.From, *st.To)
		}
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}
