package algebra

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// MultiplicativeMonoid is the multiplicative structure of a ring, viewed as
// a monoid over the ring's own elements: Apply multiplies and the identity
// is the ring's one. Elements keep the ring as their owning set.
type MultiplicativeMonoid struct {
	ring Ring
}

// NewMultiplicativeMonoid returns the multiplicative view of r.
func NewMultiplicativeMonoid(r Ring) *MultiplicativeMonoid {
	return &MultiplicativeMonoid{ring: r}
}

// Ring returns the underlying ring.
func (m *MultiplicativeMonoid) Ring() Ring { return m.ring }

func (m *MultiplicativeMonoid) Key() string    { return m.ring.Key() + "*" }
func (m *MultiplicativeMonoid) String() string { return m.ring.String() + "*" }
func (m *MultiplicativeMonoid) Order() Order   { return m.ring.Order() }

func (m *MultiplicativeMonoid) Contains(value any) bool { return m.ring.Contains(value) }

func (m *MultiplicativeMonoid) GetElement(value any) (Element, error) {
	return m.ring.GetElement(value)
}

func (m *MultiplicativeMonoid) RandomElement(rnd io.Reader) (Element, error) {
	return m.ring.RandomElement(rnd)
}

func (m *MultiplicativeMonoid) IsMember(e Element) bool { return m.ring.IsMember(e) }

func (m *MultiplicativeMonoid) Equal(other Set) bool {
	o, ok := other.(*MultiplicativeMonoid)
	return ok && SameSet(m.ring, o.ring)
}

func (m *MultiplicativeMonoid) Apply(a, b Element) (Element, error) {
	return m.ring.Multiply(a, b)
}

// SelfApply raises e to k >= 0. Negative amounts fail with
// ErrUnsupportedOperation, units included.
func (m *MultiplicativeMonoid) SelfApply(e Element, k *big.Int) (Element, error) {
	if k != nil && k.Sign() < 0 {
		return nil, errors.Wrapf(ErrUnsupportedOperation, "negative amount in %s without inverses", m)
	}
	return m.ring.Power(e, k)
}

func (m *MultiplicativeMonoid) MultiSelfApply(es []Element, ks []*big.Int) (Element, error) {
	return MultiSelfApply(m, es, ks)
}

func (m *MultiplicativeMonoid) IsCommutative() bool { return true }

func (m *MultiplicativeMonoid) Identity() Element { return m.ring.One() }

func (m *MultiplicativeMonoid) IsIdentity(e Element) bool { return m.ring.One().Equal(e) }

// MultiplicativeGroup is the group of non-zero elements of a field.
type MultiplicativeGroup struct {
	MultiplicativeMonoid
	field Field
}

// NewMultiplicativeGroup returns the multiplicative group of f.
func NewMultiplicativeGroup(f Field) *MultiplicativeGroup {
	return &MultiplicativeGroup{
		MultiplicativeMonoid: MultiplicativeMonoid{ring: f},
		field:                f,
	}
}

func (g *MultiplicativeGroup) Key() string    { return g.field.Key() + "^x" }
func (g *MultiplicativeGroup) String() string { return g.field.String() + "^x" }

// Order is one less than the field order.
func (g *MultiplicativeGroup) Order() Order {
	n := g.field.Order().Int()
	if n == nil {
		return g.field.Order()
	}
	return Finite(n.Sub(n, big.NewInt(1)))
}

func (g *MultiplicativeGroup) Contains(value any) bool {
	if !g.field.Contains(value) {
		return false
	}
	e, err := g.field.GetElement(value)
	return err == nil && !g.field.Zero().Equal(e)
}

func (g *MultiplicativeGroup) GetElement(value any) (Element, error) {
	if !g.Contains(value) {
		return nil, errors.Wrapf(ErrInvalidValue, "%v is not in %s", value, g)
	}
	return g.field.GetElement(value)
}

// RandomElement samples the field until a non-zero element comes up.
func (g *MultiplicativeGroup) RandomElement(rnd io.Reader) (Element, error) {
	for {
		e, err := g.field.RandomElement(rnd)
		if err != nil {
			return nil, err
		}
		if !g.field.Zero().Equal(e) {
			return e, nil
		}
	}
}

func (g *MultiplicativeGroup) IsMember(e Element) bool {
	return g.field.IsMember(e) && !g.field.Zero().Equal(e)
}

func (g *MultiplicativeGroup) Equal(other Set) bool {
	o, ok := other.(*MultiplicativeGroup)
	return ok && SameSet(g.field, o.field)
}

func (g *MultiplicativeGroup) Apply(a, b Element) (Element, error) {
	if err := Check(g, a, b); err != nil {
		return nil, err
	}
	return g.field.Multiply(a, b)
}

func (g *MultiplicativeGroup) SelfApply(e Element, k *big.Int) (Element, error) {
	if err := Check(g, e); err != nil {
		return nil, err
	}
	if k != nil && k.Sign() < 0 {
		inv, err := g.field.MultiplicativeInverse(e)
		if err != nil {
			return nil, err
		}
		return g.field.Power(inv, new(big.Int).Neg(k))
	}
	return g.field.Power(e, k)
}

func (g *MultiplicativeGroup) MultiSelfApply(es []Element, ks []*big.Int) (Element, error) {
	return MultiSelfApply(g, es, ks)
}

func (g *MultiplicativeGroup) Invert(e Element) (Element, error) {
	if err := Check(g, e); err != nil {
		return nil, err
	}
	return g.field.MultiplicativeInverse(e)
}

func (g *MultiplicativeGroup) ApplyInverse(a, b Element) (Element, error) {
	return ApplyInverse(g, a, b)
}
