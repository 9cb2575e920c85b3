package algebra

import (
	"io"
	"math/big"
)

// Element is an immutable value bound to exactly one owning Set.
type Element interface {
	// Set returns the structure the element belongs to.
	Set() Set
	// Value returns a copy of the element's canonical raw value.
	Value() any
	// Equal returns true if both elements belong to equal sets and carry
	// equal raw values.
	Equal(x Element) bool
	// String returns a string representation of the element.
	String() string
}

// Set is the domain of valid values of one algebraic structure.
type Set interface {
	// Key returns the canonical structural key; two sets with equal
	// parameters have equal keys.
	Key() string
	// String returns a human readable name.
	String() string
	// Order returns the number of elements.
	Order() Order
	// Contains reports whether value is a raw value of the set.
	Contains(value any) bool
	// GetElement validates value and wraps it into an element.
	GetElement(value any) (Element, error)
	// RandomElement draws an element using randomness from rnd.
	RandomElement(rnd io.Reader) (Element, error)
	// IsMember reports whether e belongs to the set.
	IsMember(e Element) bool
	// Equal reports whether other has the same structural parameters.
	Equal(other Set) bool
}

// Closed is the capability of combining elements with one associative
// binary operation.
type Closed interface {
	// Apply combines a and b.
	Apply(a, b Element) (Element, error)
	// SelfApply applies e to itself k times.
	SelfApply(e Element, k *big.Int) (Element, error)
	// MultiSelfApply combines SelfApply(es[i], ks[i]) over all i.
	MultiSelfApply(es []Element, ks []*big.Int) (Element, error)
	// IsCommutative reports whether Apply is commutative.
	IsCommutative() bool
}

// HasIdentity is the capability of a distinguished neutral element.
type HasIdentity interface {
	Identity() Element
	IsIdentity(e Element) bool
}

// Invertible is the capability of inverting every element.
type Invertible interface {
	Invert(e Element) (Element, error)
	// ApplyInverse returns Apply(a, Invert(b)).
	ApplyInverse(a, b Element) (Element, error)
}

// Cyclic is the capability of being generated by a single element.
type Cyclic interface {
	// DefaultGenerator returns a fixed, parameter-derived generator.
	DefaultGenerator() Element
	// RandomGenerator searches a random generator. The search has no
	// retry bound.
	RandomGenerator(rnd io.Reader) (Element, error)
	// IsGenerator reports whether e generates the whole group.
	IsGenerator(e Element) (bool, error)
}

// SemiGroup is a set with an associative operation.
type SemiGroup interface {
	Set
	Closed
}

// Monoid is a semigroup with an identity.
type Monoid interface {
	SemiGroup
	HasIdentity
}

// Group is a monoid in which every element is invertible.
type Group interface {
	Monoid
	Invertible
}

// CyclicGroup is a group generated by one element.
type CyclicGroup interface {
	Group
	Cyclic
}

// Dualistic is the capability of carrying an additive and a multiplicative
// structure on the same elements.
type Dualistic interface {
	Zero() Element
	One() Element
	Add(a, b Element) (Element, error)
	Subtract(a, b Element) (Element, error)
	Negate(a Element) (Element, error)
	Multiply(a, b Element) (Element, error)
	// Power multiplies e with itself k times.
	Power(e Element, k *big.Int) (Element, error)
	// MultiplicativeInverse fails with ErrNotInvertible on non-units.
	MultiplicativeInverse(e Element) (Element, error)
	// Multiplicative returns the multiplicative monoid over the same
	// carrier.
	Multiplicative() Monoid
}

// Ring is an additive group with a compatible multiplication. Apply is the
// addition.
type Ring interface {
	Group
	Dualistic
}

// Field is a ring whose non-zero elements form a multiplicative group.
type Field interface {
	Ring
	Divide(a, b Element) (Element, error)
	// MultiplicativeGroup returns the group of non-zero elements.
	MultiplicativeGroup() Group
}

// SameSet reports whether a and b denote the same structure.
func SameSet(a, b Set) bool {
	if a == nil || b == nil {
		return false
	}
	return a == b || a.Key() == b.Key()
}

// Owns reports whether e belongs to s by comparing owning sets.
func Owns(s Set, e Element) bool {
	return e != nil && SameSet(s, e.Set())
}

// ElementKey returns a string identifying e, usable as a map key.
func ElementKey(e Element) string {
	return e.Set().Key() + "|" + e.String()
}
