package polynomial

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// BinaryField is the extension field GF(2^m) = GF(2)[x]/(f) for an
// irreducible bit polynomial f of degree m. Elements are bit polynomials of
// degree below m, stored as *big.Int.
//
// The additive group is elementary abelian and therefore only cyclic for
// m = 1; BinaryField implements algebra.Field but not algebra.CyclicGroup.
type BinaryField struct {
	key     string
	modulus *big.Int
	m       int
	bound   *big.Int // 2^m

	zero  *algebra.IntElement
	one   *algebra.IntElement
	mul   *algebra.MultiplicativeMonoid
	units *algebra.MultiplicativeGroup
}

// NewBinaryField returns GF(2^m) reduced by f. f must be irreducible over
// GF(2), which is checked with Rabin's test.
func NewBinaryField(f *big.Int, opts ...algebra.Option) (*BinaryField, error) {
	o := algebra.NewOptions(opts...)
	if f == nil || f.Sign() <= 0 || degree(f) < 1 {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "reduction polynomial %v must have degree at least 1", f)
	}

	key := "GF2m(" + f.Text(16) + ")"
	s, err := o.Registry.GetOrCreate(key, func() (algebra.Set, error) {
		if !isIrreducible(f) {
			return nil, errors.Wrapf(algebra.ErrInvalidParameter, "%s is reducible over GF(2)", f.Text(2))
		}
		m := degree(f)
		F := &BinaryField{
			key:     key,
			modulus: new(big.Int).Set(f),
			m:       m,
			bound:   new(big.Int).Lsh(big.NewInt(1), uint(m)),
		}
		F.zero = algebra.NewIntElement(F, new(big.Int))
		F.one = algebra.NewIntElement(F, big.NewInt(1))
		F.mul = algebra.NewMultiplicativeMonoid(F)
		F.units = algebra.NewMultiplicativeGroup(F)
		return F, nil
	})
	if err != nil {
		return nil, err
	}
	F, ok := s.(*BinaryField)
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "key %s registered as %T", key, s)
	}
	return F, nil
}

// NewBinaryFieldFromExponents builds f = x^e0 + x^e1 + ... from the exponents
// of its non-zero terms, e.g. 163, 7, 6, 3, 0 for the NIST K-163 field.
func NewBinaryFieldFromExponents(exponents []int, opts ...algebra.Option) (*BinaryField, error) {
	f := new(big.Int)
	for _, e := range exponents {
		if e < 0 {
			return nil, errors.Wrapf(algebra.ErrInvalidParameter, "negative exponent %d", e)
		}
		f.SetBit(f, e, f.Bit(e)^1)
	}
	return NewBinaryField(f, opts...)
}

// Degree returns m.
func (F *BinaryField) Degree() int { return F.m }

// Modulus returns a copy of the reduction polynomial.
func (F *BinaryField) Modulus() *big.Int { return new(big.Int).Set(F.modulus) }

func (F *BinaryField) Key() string { return F.key }

func (F *BinaryField) String() string { return fmt.Sprintf("GF(2^%d)", F.m) }

func (F *BinaryField) Order() algebra.Order { return algebra.Finite(F.bound) }

func (F *BinaryField) Contains(value any) bool {
	v := algebra.IntValue(value)
	return v != nil && v.Sign() >= 0 && v.BitLen() <= F.m
}

func (F *BinaryField) GetElement(value any) (algebra.Element, error) {
	e, err := F.Element(algebra.IntValue(value))
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Element returns the field element with bit polynomial v.
func (F *BinaryField) Element(v *big.Int) (*algebra.IntElement, error) {
	if v == nil || !F.Contains(v) {
		return nil, errors.Wrapf(algebra.ErrInvalidValue, "%v is not in %s", v, F)
	}
	return algebra.NewIntElement(F, v), nil
}

func (F *BinaryField) RandomElement(rnd io.Reader) (algebra.Element, error) {
	v, err := algebra.RandomInt(rnd, F.bound)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(F, v), nil
}

func (F *BinaryField) IsMember(e algebra.Element) bool { return algebra.Owns(F, e) }

func (F *BinaryField) Equal(other algebra.Set) bool { return algebra.SameSet(F, other) }

func (F *BinaryField) raw(e algebra.Element) (*big.Int, error) {
	if err := algebra.Check(F, e); err != nil {
		return nil, err
	}
	ie, ok := e.(*algebra.IntElement)
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidElement, "%T is not a bit polynomial", e)
	}
	return ie.Raw(), nil
}

func (F *BinaryField) raw2(a, b algebra.Element) (*big.Int, *big.Int, error) {
	x, err := F.raw(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := F.raw(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (F *BinaryField) wrap(v *big.Int) *algebra.IntElement {
	return algebra.NewIntElement(F, v)
}

// Apply is the field addition, a XOR of bit polynomials.
func (F *BinaryField) Apply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := F.raw2(a, b)
	if err != nil {
		return nil, err
	}
	return F.wrap(new(big.Int).Xor(x, y)), nil
}

// SelfApply adds e to itself k times, which is e for odd k and zero
// otherwise.
func (F *BinaryField) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	if _, err := F.raw(e); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil amount")
	}
	if k.Bit(0) == 1 {
		return e, nil
	}
	return F.zero, nil
}

func (F *BinaryField) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	return algebra.MultiSelfApply(F, es, ks)
}

func (F *BinaryField) IsCommutative() bool { return true }

func (F *BinaryField) Identity() algebra.Element { return F.zero }

func (F *BinaryField) IsIdentity(e algebra.Element) bool { return F.zero.Equal(e) }

// Invert returns e: every element is its own additive inverse.
func (F *BinaryField) Invert(e algebra.Element) (algebra.Element, error) {
	if _, err := F.raw(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (F *BinaryField) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	return F.Apply(a, b)
}

func (F *BinaryField) Zero() algebra.Element { return F.zero }

func (F *BinaryField) One() algebra.Element { return F.one }

func (F *BinaryField) Add(a, b algebra.Element) (algebra.Element, error) { return F.Apply(a, b) }

func (F *BinaryField) Subtract(a, b algebra.Element) (algebra.Element, error) { return F.Apply(a, b) }

func (F *BinaryField) Negate(a algebra.Element) (algebra.Element, error) { return F.Invert(a) }

func (F *BinaryField) Multiply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := F.raw2(a, b)
	if err != nil {
		return nil, err
	}
	return F.wrap(gf2MulMod(x, y, F.modulus, F.m)), nil
}

// Power raises e to k by square-and-multiply. Negative k use the inverse
// of e, which fails for zero.
func (F *BinaryField) Power(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := F.raw(e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil amount")
	}
	if k.Sign() < 0 {
		if x.Sign() == 0 {
			return nil, errors.Wrapf(algebra.ErrNotInvertible, "zero in %s", F)
		}
		x = gf2Inverse(x, F.modulus)
		k = new(big.Int).Neg(k)
	}
	return F.wrap(F.pow(x, k)), nil
}

func (F *BinaryField) pow(x, k *big.Int) *big.Int {
	r := big.NewInt(1)
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = gf2MulMod(r, r, F.modulus, F.m)
		if k.Bit(i) == 1 {
			r = gf2MulMod(r, x, F.modulus, F.m)
		}
	}
	return r
}

func (F *BinaryField) MultiplicativeInverse(e algebra.Element) (algebra.Element, error) {
	x, err := F.raw(e)
	if err != nil {
		return nil, err
	}
	if x.Sign() == 0 {
		return nil, errors.Wrapf(algebra.ErrNotInvertible, "zero in %s", F)
	}
	return F.wrap(gf2Inverse(x, F.modulus)), nil
}

func (F *BinaryField) Multiplicative() algebra.Monoid { return F.mul }

func (F *BinaryField) Divide(a, b algebra.Element) (algebra.Element, error) {
	inv, err := F.MultiplicativeInverse(b)
	if err != nil {
		return nil, err
	}
	return F.Multiply(a, inv)
}

// MultiplicativeGroup returns the cyclic group of the 2^m - 1 non-zero
// elements.
func (F *BinaryField) MultiplicativeGroup() algebra.Group { return F.units }

func (F *BinaryField) Square(e algebra.Element) (algebra.Element, error) {
	x, err := F.raw(e)
	if err != nil {
		return nil, err
	}
	return F.wrap(gf2MulMod(x, x, F.modulus, F.m)), nil
}

// Sqrt returns the unique square root e^(2^(m-1)).
func (F *BinaryField) Sqrt(e algebra.Element) (algebra.Element, error) {
	x, err := F.raw(e)
	if err != nil {
		return nil, err
	}
	return F.wrap(frobenius(x, F.modulus, F.m, F.m-1)), nil
}

// Trace returns e + e^2 + ... + e^(2^(m-1)), which is 0 or 1.
func (F *BinaryField) Trace(e algebra.Element) (uint, error) {
	x, err := F.raw(e)
	if err != nil {
		return 0, err
	}
	t := new(big.Int).Set(x)
	sum := new(big.Int).Set(x)
	for i := 1; i < F.m; i++ {
		t = gf2MulMod(t, t, F.modulus, F.m)
		sum.Xor(sum, t)
	}
	return uint(sum.Bit(0)), nil
}

// HalfTrace returns the sum of e^(2^(2i)) for i in [0, (m-1)/2]. It is
// defined for odd m only.
func (F *BinaryField) HalfTrace(e algebra.Element) (algebra.Element, error) {
	x, err := F.raw(e)
	if err != nil {
		return nil, err
	}
	if F.m%2 == 0 {
		return nil, errors.Wrapf(algebra.ErrUnsupportedOperation, "half-trace in %s of even degree", F)
	}
	t := new(big.Int).Set(x)
	sum := new(big.Int).Set(x)
	for i := 1; i <= (F.m-1)/2; i++ {
		t = frobenius(t, F.modulus, F.m, 2)
		sum.Xor(sum, t)
	}
	return F.wrap(sum), nil
}

// SolveQuadratic returns a solution z of z^2 + z = c; the other one is
// z + 1. It fails with ErrInvalidValue when Tr(c) = 1, where no solution
// exists, and with ErrUnsupportedOperation for even m.
func (F *BinaryField) SolveQuadratic(c algebra.Element) (algebra.Element, error) {
	tr, err := F.Trace(c)
	if err != nil {
		return nil, err
	}
	if F.m%2 == 0 {
		return nil, errors.Wrapf(algebra.ErrUnsupportedOperation, "quadratic solving in %s of even degree", F)
	}
	if tr != 0 {
		return nil, errors.Wrapf(algebra.ErrInvalidValue, "z^2 + z = %s has no solution in %s", c, F)
	}
	return F.HalfTrace(c)
}
