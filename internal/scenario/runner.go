package scenario

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/zeusync/curve/internal/core/curve"
	"github.com/zeusync/curve/internal/core/observability/log"
)

// Runner replays scenarios against fresh curves built from one config.
// A Runner holds no per-run state and may be shared between goroutines.
type Runner struct {
	config curve.Config
	logger log.Log
}

func NewRunner(config curve.Config, logger log.Log) *Runner {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Runner{config: config, logger: logger}
}

// Run executes every step in order. The context is checked before each step.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	logger := r.logger.With(log.String("scenario", sc.Name))
	started := time.Now()

	tracks := make(map[string]track, len(sc.Attributes))
	for _, a := range sc.Attributes {
		opts := append(r.config.Options(logger), curve.WithName(a.Name))
		tracks[a.Name] = newTrack(a.Kind, opts)
	}

	res := &Result{Name: sc.Name}
	for i := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", sc.Name, i+1, err)
		}
		st := &sc.Steps[i]
		out, err := runStep(tracks[st.Attribute], st)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", sc.Name, i+1, err)
		}
		res.Entries = append(res.Entries, Entry{
			Step:      i + 1,
			Op:        st.Op,
			Attribute: st.Attribute,
			Args:      st.args(),
			Output:    out,
		})
	}

	for _, a := range sc.Attributes {
		res.Final = append(res.Final, Final{Attribute: a.Name, Keyframes: tracks[a.Name].dump()})
	}

	logger.Info("scenario replayed",
		log.Int("steps", len(sc.Steps)),
		log.Duration("elapsed", time.Since(started)),
	)
	return res, nil
}

// runStep turns curve precondition panics into errors so one bad scenario
// does not take down a batch replay. Runtime errors are bugs and re-panic.
func runStep(tr track, st *Step) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if _, isRuntime := r.(runtime.Error); !ok || isRuntime {
				panic(r)
			}
			err = perr
		}
	}()

	switch st.Op {
	case OpInsert:
		return tr.insert(curve.Time(*st.At), &st.Value)
	case OpDrop:
		v, dropped, err := tr.drop(curve.Time(*st.At), &st.Value)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s (dropped %d)", v, dropped), nil
	case OpEraseAfter:
		return fmt.Sprintf("removed %d", tr.eraseAfter(curve.Time(*st.At))), nil
	case OpGet:
		return tr.get(curve.Time(*st.At)), nil
	case OpIterate:
		return tr.iterate(curve.Time(*st.From), curve.Time(*st.To)), nil
	case OpCount:
		return fmt.Sprint(tr.count(curve.Time(*st.From), curve.Time(*st.To))), nil
	case OpEvents:
		return tr.events(curve.Time(*st.From), curve.Time(*st.To)), nil
	default:
		return "", errors.New("unknown op " + string(st.Op))
	}
}

func (st *Step) args() string {
	if st.At != nil {
		return "@" + formatFloat(*st.At)
	}
	return "[" + formatFloat(*st.From) + ", " + formatFloat(*st.To) + ")"
}
