package dyncodec

import "fmt"

// Pair carries a decoded value together with the remainder of its input, and
// doubles as the element type of the pair codec.
type Pair[F, S any] struct {
	First  F
	Second S
}

// NewPair builds a Pair.
func NewPair[F, S any](first F, second S) Pair[F, S] {
	return Pair[F, S]{First: first, Second: second}
}

func (p Pair[F, S]) String() string { return fmt.Sprintf("(%v, %v)", p.First, p.Second) }

// MapEntry is one key/value pair of a record node. Both sides are tree nodes
// owned by the DynamicOps that produced them.
type MapEntry struct {
	Key   any
	Value any
}

// Optional is the presence-aware value used by optional-field codecs:
// an absent field decodes to None and a None value writes no field.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, present: true} }

// None is the absent value.
func None[T any]() Optional[T] { return Optional[T]{} }

// IsPresent reports whether a value is held.
func (o Optional[T]) IsPresent() bool { return o.present }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

// OrElse returns the value when present, def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// Either holds exactly one of two alternatives; the element type of the
// either codec.
type Either[L, R any] struct {
	left   L
	right  R
	isLeft bool
}

// Left builds the left alternative.
func Left[L, R any](v L) Either[L, R] { return Either[L, R]{left: v, isLeft: true} }

// Right builds the right alternative.
func Right[L, R any](v R) Either[L, R] { return Either[L, R]{right: v} }

// Left returns the left value and whether it is the held alternative.
func (e Either[L, R]) Left() (L, bool) { return e.left, e.isLeft }

// Right returns the right value and whether it is the held alternative.
func (e Either[L, R]) Right() (R, bool) { return e.right, !e.isLeft }

func (e Either[L, R]) String() string {
	if e.isLeft {
		return fmt.Sprintf("Left(%v)", e.left)
	}
	return fmt.Sprintf("Right(%v)", e.right)
}

// Unit is the value of the empty codec.
type Unit struct{}
