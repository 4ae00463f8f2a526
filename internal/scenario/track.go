package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/curve/internal/core/curve"
)

// track drives one attribute curve with YAML encoded values and renders
// what it reads back.
type track interface {
	insert(at curve.Time, v *yaml.Node) (string, error)
	drop(at curve.Time, v *yaml.Node) (string, int, error)
	eraseAfter(at curve.Time) int
	get(at curve.Time) string
	iterate(from, to curve.Time) string
	count(from, to curve.Time) int
	events(from, to curve.Time) string
	dump() string
}

type typedTrack[T any] struct {
	curve  curve.Curve[T]
	decode func(*yaml.Node) (T, error)
	format func(T) string
}

func newTrack(kind Kind, opts []curve.Option) track {
	switch kind {
	case KindContinuous:
		return &typedTrack[float64]{
			curve:  curve.NewContinuous[float64](opts...),
			decode: decodeFloat,
			format: formatFloat,
		}
	case KindDiscrete:
		return &typedTrack[string]{
			curve:  curve.NewDiscrete[string](opts...),
			decode: decodeString,
			format: strconv.Quote,
		}
	case KindVec2:
		return &typedTrack[r2.Vec]{
			curve:  curve.NewContinuousFunc[r2.Vec](curve.LerpVec2, opts...),
			decode: decodeVec2,
			format: formatVec2,
		}
	default:
		panic(fmt.Sprintf("scenario: unknown kind %q", kind))
	}
}

func (tr *typedTrack[T]) insert(at curve.Time, n *yaml.Node) (string, error) {
	v, err := tr.decode(n)
	if err != nil {
		return "", err
	}
	tr.curve.SetInsert(at, v)
	return tr.format(v), nil
}

func (tr *typedTrack[T]) drop(at curve.Time, n *yaml.Node) (string, int, error) {
	v, err := tr.decode(n)
	if err != nil {
		return "", 0, err
	}
	before := tr.curve.Store().Len()
	tr.curve.SetDrop(at, v)
	return tr.format(v), before + 1 - tr.curve.Store().Len(), nil
}

// eraseAfter removes everything after the keyframe in effect at at.
func (tr *typedTrack[T]) eraseAfter(at curve.Time) int {
	s := tr.curve.Store()
	p, ok := s.Last(at)
	if !ok {
		return 0
	}
	return s.EraseAfter(p)
}

func (tr *typedTrack[T]) get(at curve.Time) string {
	v, err := tr.curve.Get(at)
	if err != nil {
		return "<no data>"
	}
	return tr.format(v)
}

func (tr *typedTrack[T]) iterate(from, to curve.Time) string {
	return tr.list(tr.curve.Store().Iterate(from, to))
}

func (tr *typedTrack[T]) count(from, to curve.Time) int {
	return tr.curve.Store().Count(from, to)
}

func (tr *typedTrack[T]) events(from, to curve.Time) string {
	return tr.list(tr.curve.Store().Events(from, to))
}

func (tr *typedTrack[T]) dump() string {
	return tr.join(tr.curve.Store().Export(curve.MinTime, curve.MaxTime))
}

func (tr *typedTrack[T]) list(it *curve.Iterator[T]) string {
	var frames []curve.Keyframe[T]
	for kf := range it.All() {
		frames = append(frames, kf)
	}
	return tr.join(frames)
}

func (tr *typedTrack[T]) join(frames []curve.Keyframe[T]) string {
	parts := make([]string, 0, len(frames))
	for _, kf := range frames {
		parts = append(parts, formatTime(kf.Time)+":"+tr.format(kf.Value))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func checkValue(kind Kind, n *yaml.Node) error {
	var err error
	switch kind {
	case KindContinuous:
		_, err = decodeFloat(n)
	case KindDiscrete:
		_, err = decodeString(n)
	case KindVec2:
		_, err = decodeVec2(n)
	}
	return err
}

func decodeFloat(n *yaml.Node) (float64, error) {
	var f float64
	if err := n.Decode(&f); err != nil {
		return 0, err
	}
	return f, nil
}

func decodeString(n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("line %d: want a scalar", n.Line)
	}
	return n.Value, nil
}

func decodeVec2(n *yaml.Node) (r2.Vec, error) {
	var xy []float64
	if err := n.Decode(&xy); err != nil {
		return r2.Vec{}, err
	}
	if len(xy) != 2 {
		return r2.Vec{}, fmt.Errorf("line %d: want [x, y], got %d components", n.Line, len(xy))
	}
	return r2.Vec{X: xy[0], Y: xy[1]}, nil
}

func formatTime(t curve.Time) string {
	return formatFloat(float64(t))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatVec2(v r2.Vec) string {
	return "(" + formatFloat(v.X) + ", " + formatFloat(v.Y) + ")"
}
