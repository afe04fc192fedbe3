// Package state defines the value shapes an interpolation engine can drive:
// a single scalar, an ordered sequence of scalars, or a mapping from string
// key to scalar. The same type also carries velocities, which share the
// shape of the value they describe.
//
// The zero Value has kind KindNone and means "absent". This is how an
// unreported velocity is represented, so callers can pass a Value through
// without a separate presence flag.
package state

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the shape of a Value.
type Kind int

// Value shapes.
const (
	KindNone Kind = iota
	KindScalar
	KindSequence
	KindMap
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is an immutable-by-convention interpolation value. Construct one
// with Scalar, Sequence, or Map; the zero Value is absent (KindNone).
//
// The shape of a Value is fixed by convention across a chain of actions,
// not enforced by the type itself.
type Value struct {
	kind   Kind
	scalar float64
	seq    []float64
	keyed  map[string]float64
}

// Scalar returns a scalar-shaped Value.
func Scalar(v float64) Value {
	return Value{kind: KindScalar, scalar: v}
}

// Sequence returns a sequence-shaped Value. The input slice is copied.
func Sequence(vs ...float64) Value {
	out := make([]float64, len(vs))
	copy(out, vs)

	return Value{kind: KindSequence, seq: out}
}

// Map returns a map-shaped Value. The input map is copied.
func Map(m map[string]float64) Value {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}

	return Value{kind: KindMap, keyed: out}
}

// Kind reports the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero reports whether the value is absent (the zero Value).
func (v Value) IsZero() bool {
	return v.kind == KindNone
}

// Composite reports whether the value is sequence- or map-shaped.
// A one-element sequence is still composite: shape, not size, decides.
func (v Value) Composite() bool {
	return v.kind == KindSequence || v.kind == KindMap
}

// Len returns the number of numeric components: 0 for an absent value,
// 1 for a scalar, and the element count for composites.
func (v Value) Len() int {
	switch v.kind {
	case KindScalar:
		return 1
	case KindSequence:
		return len(v.seq)
	case KindMap:
		return len(v.keyed)
	default:
		return 0
	}
}

// Float returns the scalar component. It is only meaningful for
// scalar-shaped values; other shapes return 0.
func (v Value) Float() float64 {
	return v.scalar
}

// Floats returns a copy of the sequence components. Nil for other shapes.
func (v Value) Floats() []float64 {
	if v.kind != KindSequence {
		return nil
	}

	out := make([]float64, len(v.seq))
	copy(out, v.seq)

	return out
}

// Keyed returns a copy of the map components. Nil for other shapes.
func (v Value) Keyed() map[string]float64 {
	if v.kind != KindMap {
		return nil
	}

	out := make(map[string]float64, len(v.keyed))
	for k, val := range v.keyed {
		out[k] = val
	}

	return out
}

// Keys returns the map keys in sorted order, so element-wise fan-out has a
// stable component ordering. Nil for other shapes.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}

	keys := make([]string, 0, len(v.keyed))
	for k := range v.keyed {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// At returns the component at index i of a sequence-shaped value.
func (v Value) At(i int) float64 {
	if v.kind != KindSequence || i < 0 || i >= len(v.seq) {
		return 0
	}

	return v.seq[i]
}

// Key returns the component stored under k of a map-shaped value.
func (v Value) Key(k string) float64 {
	if v.kind != KindMap {
		return 0
	}

	return v.keyed[k]
}

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	switch v.kind {
	case KindSequence:
		return Sequence(v.seq...)
	case KindMap:
		return Map(v.keyed)
	default:
		return v
	}
}

// Equal reports whether two values have the same shape and components.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}

		for i := range v.seq {
			if v.seq[i] != other.seq[i] {
				return false
			}
		}

		return true
	case KindMap:
		if len(v.keyed) != len(other.keyed) {
			return false
		}

		for k, val := range v.keyed {
			o, ok := other.keyed[k]
			if !ok || o != val {
				return false
			}
		}

		return true
	default:
		return true
	}
}

// Combine applies fn to corresponding components of a and b and returns a
// value of the same shape as a. It is the element-wise workhorse behind
// interpolation and velocity math. Missing components in b read as 0.
func Combine(a, b Value, fn func(a, b float64) float64) Value {
	switch a.kind {
	case KindScalar:
		return Scalar(fn(a.scalar, b.scalar))
	case KindSequence:
		out := make([]float64, len(a.seq))
		for i, av := range a.seq {
			var bv float64
			if i < len(b.seq) {
				bv = b.seq[i]
			}

			out[i] = fn(av, bv)
		}

		return Value{kind: KindSequence, seq: out}
	case KindMap:
		out := make(map[string]float64, len(a.keyed))
		for k, av := range a.keyed {
			out[k] = fn(av, b.keyed[k])
		}

		return Value{kind: KindMap, keyed: out}
	default:
		return Value{}
	}
}

// String renders the value for logs and error messages.
func (v Value) String() string {
	switch v.kind {
	case KindScalar:
		return fmt.Sprintf("%g", v.scalar)
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, f := range v.seq {
			parts[i] = fmt.Sprintf("%g", f)
		}

		return "[" + strings.Join(parts, " ") + "]"
	case KindMap:
		keys := v.Keys()

		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s:%g", k, v.keyed[k])
		}

		return "{" + strings.Join(parts, " ") + "}"
	default:
		return "<none>"
	}
}
