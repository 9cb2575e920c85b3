package group

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

const zKey = "Z"

// Z is the ring of integers. Under addition it is an infinite cyclic group
// generated by 1 (and -1).
type Z struct {
	base
	zero *algebra.IntElement
	one  *algebra.IntElement
	mul  *algebra.MultiplicativeMonoid
}

// NewZ returns the canonical ring of integers.
func NewZ(opts ...algebra.Option) (*Z, error) {
	o := algebra.NewOptions(opts...)
	return cached(o, zKey, func() (*Z, error) {
		z := &Z{base: base{key: zKey, name: "Z", opts: o}}
		z.zero = algebra.NewIntElement(z, zero)
		z.one = algebra.NewIntElement(z, one)
		z.mul = algebra.NewMultiplicativeMonoid(z)
		return z, nil
	})
}

func (z *Z) Order() algebra.Order { return algebra.Infinite }

func (z *Z) Contains(value any) bool { return algebra.IntValue(value) != nil }

func (z *Z) GetElement(value any) (algebra.Element, error) {
	v := algebra.IntValue(value)
	if v == nil {
		return nil, invalidValue(z, value)
	}
	return algebra.NewIntElement(z, v), nil
}

// ElementOf returns the integer v.
func (z *Z) ElementOf(v int64) *algebra.IntElement {
	return algebra.NewIntElement(z, big.NewInt(v))
}

// RandomElement is not supported: there is no uniform distribution over Z.
func (z *Z) RandomElement(io.Reader) (algebra.Element, error) {
	return nil, errors.Wrap(algebra.ErrUnsupportedOperation, "uniform sampling over Z")
}

func (z *Z) Apply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(z, new(big.Int).Add(x, y)), nil
}

func (z *Z) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, invalidParameter("nil amount")
	}
	return algebra.NewIntElement(z, new(big.Int).Mul(x, k)), nil
}

func (z *Z) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	return algebra.MultiSelfApply(z, es, ks)
}

func (z *Z) IsCommutative() bool { return true }

func (z *Z) Identity() algebra.Element { return z.zero }

func (z *Z) IsIdentity(e algebra.Element) bool { return z.zero.Equal(e) }

func (z *Z) Invert(e algebra.Element) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(z, new(big.Int).Neg(x)), nil
}

func (z *Z) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(z, new(big.Int).Sub(x, y)), nil
}

func (z *Z) DefaultGenerator() algebra.Element { return z.one }

// RandomGenerator returns 1 or -1 with equal probability.
func (z *Z) RandomGenerator(rnd io.Reader) (algebra.Element, error) {
	bit, err := algebra.RandomBit(rnd)
	if err != nil {
		return nil, err
	}
	if bit == 1 {
		return z.ElementOf(-1), nil
	}
	return z.one, nil
}

func (z *Z) IsGenerator(e algebra.Element) (bool, error) {
	x, err := raw(z, e)
	if err != nil {
		return false, err
	}
	return x.CmpAbs(one) == 0, nil
}

func (z *Z) Zero() algebra.Element { return z.zero }

func (z *Z) One() algebra.Element { return z.one }

func (z *Z) Add(a, b algebra.Element) (algebra.Element, error) { return z.Apply(a, b) }

func (z *Z) Subtract(a, b algebra.Element) (algebra.Element, error) { return z.ApplyInverse(a, b) }

func (z *Z) Negate(a algebra.Element) (algebra.Element, error) { return z.Invert(a) }

func (z *Z) Multiply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(z, new(big.Int).Mul(x, y)), nil
}

// Power raises e to k. Negative k are only defined for the units 1 and -1.
func (z *Z) Power(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, invalidParameter("nil amount")
	}
	if k.Sign() < 0 {
		if x.CmpAbs(one) != 0 {
			return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in Z", x)
		}
		k = new(big.Int).Neg(k)
	}
	return algebra.NewIntElement(z, new(big.Int).Exp(x, k, nil)), nil
}

// MultiplicativeInverse is only defined for 1 and -1.
func (z *Z) MultiplicativeInverse(e algebra.Element) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	if x.CmpAbs(one) != 0 {
		return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in Z", x)
	}
	return e, nil
}

func (z *Z) Multiplicative() algebra.Monoid { return z.mul }
