package polynomial

import (
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// Polynomial is an element of a PolynomialRing. Coefficients are stored
// lowest degree first with trailing zeros trimmed, so the zero polynomial
// has no coefficients.
type Polynomial struct {
	ring   *PolynomialRing
	coeffs []algebra.Element
}

func (p *Polynomial) Set() algebra.Set { return p.ring }

// Value returns the raw values of the coefficients, lowest degree first.
func (p *Polynomial) Value() any {
	vs := make([]any, len(p.coeffs))
	for i, c := range p.coeffs {
		vs[i] = c.Value()
	}
	return vs
}

func (p *Polynomial) Equal(x algebra.Element) bool {
	q, ok := x.(*Polynomial)
	if !ok || !algebra.SameSet(p.ring, q.ring) || len(p.coeffs) != len(q.coeffs) {
		return false
	}
	for i := range p.coeffs {
		if !p.coeffs[i].Equal(q.coeffs[i]) {
			return false
		}
	}
	return true
}

// Degree returns the degree, or -1 for the zero polynomial.
func (p *Polynomial) Degree() int { return len(p.coeffs) - 1 }

// Coefficient returns the coefficient of x^i, zero beyond the degree.
func (p *Polynomial) Coefficient(i int) algebra.Element {
	if i < 0 || i >= len(p.coeffs) {
		return p.ring.base.Zero()
	}
	return p.coeffs[i]
}

// Coefficients returns a copy of the coefficient slice.
func (p *Polynomial) Coefficients() []algebra.Element {
	return append([]algebra.Element(nil), p.coeffs...)
}

func (p *Polynomial) String() string {
	if len(p.coeffs) == 0 {
		return "0"
	}
	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if p.ring.base.IsIdentity(c) {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, c.String()+"x")
		default:
			terms = append(terms, c.String()+"x^"+big.NewInt(int64(i)).String())
		}
	}
	return strings.Join(terms, " + ")
}

// PolynomialRing is the ring R[x] of polynomials with coefficients in a
// ring R. It is infinite, so uniform sampling is replaced by
// RandomPolynomial of a bounded degree.
type PolynomialRing struct {
	key  string
	base algebra.Ring
	zero *Polynomial
	one  *Polynomial
	mul  *algebra.MultiplicativeMonoid
}

// NewPolynomialRing returns the canonical ring of polynomials over r.
func NewPolynomialRing(r algebra.Ring, opts ...algebra.Option) (*PolynomialRing, error) {
	if r == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil coefficient ring")
	}
	o := algebra.NewOptions(opts...)
	key := "Poly[" + r.Key() + "]"

	s, err := o.Registry.GetOrCreate(key, func() (algebra.Set, error) {
		P := &PolynomialRing{key: key, base: r}
		P.zero = &Polynomial{ring: P}
		P.one = P.trim([]algebra.Element{r.One()})
		P.mul = algebra.NewMultiplicativeMonoid(P)
		return P, nil
	})
	if err != nil {
		return nil, err
	}
	P, ok := s.(*PolynomialRing)
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "key %s registered as %T", key, s)
	}
	return P, nil
}

// BaseRing returns the coefficient ring.
func (P *PolynomialRing) BaseRing() algebra.Ring { return P.base }

func (P *PolynomialRing) Key() string    { return P.key }
func (P *PolynomialRing) String() string { return P.base.String() + "[x]" }

func (P *PolynomialRing) Order() algebra.Order { return algebra.Infinite }

// Contains accepts a []any of coefficient raw values, lowest degree first.
// The list must be canonical: a zero leading coefficient is rejected, so the
// zero polynomial is the empty list.
func (P *PolynomialRing) Contains(value any) bool {
	vs, ok := value.([]any)
	if !ok {
		return false
	}
	for _, v := range vs {
		if !P.base.Contains(v) {
			return false
		}
	}
	if len(vs) == 0 {
		return true
	}
	lead, err := P.base.GetElement(vs[len(vs)-1])
	return err == nil && !P.base.IsIdentity(lead)
}

func (P *PolynomialRing) GetElement(value any) (algebra.Element, error) {
	if !P.Contains(value) {
		return nil, errors.Wrapf(algebra.ErrInvalidValue, "%v is not in %s", value, P)
	}
	vs := value.([]any)
	cs := make([]algebra.Element, len(vs))
	for i, v := range vs {
		c, err := P.base.GetElement(v)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return P.trim(cs), nil
}

// NewPolynomial builds the polynomial with the given coefficients, lowest
// degree first. Every coefficient must belong to the base ring.
func (P *PolynomialRing) NewPolynomial(coeffs ...algebra.Element) (*Polynomial, error) {
	if err := algebra.Check(P.base, coeffs...); err != nil {
		return nil, err
	}
	return P.trim(append([]algebra.Element(nil), coeffs...)), nil
}

func (P *PolynomialRing) trim(cs []algebra.Element) *Polynomial {
	n := len(cs)
	for n > 0 && P.base.IsIdentity(cs[n-1]) {
		n--
	}
	return &Polynomial{ring: P, coeffs: cs[:n]}
}

// RandomElement is not supported; see RandomPolynomial.
func (P *PolynomialRing) RandomElement(io.Reader) (algebra.Element, error) {
	return nil, errors.Wrapf(algebra.ErrUnsupportedOperation, "uniform sampling over %s", P)
}

// RandomPolynomial draws every coefficient of a polynomial of degree at most
// d uniformly from the base ring.
func (P *PolynomialRing) RandomPolynomial(rnd io.Reader, d int) (*Polynomial, error) {
	if d < 0 {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "degree %d", d)
	}
	cs := make([]algebra.Element, d+1)
	for i := range cs {
		c, err := P.base.RandomElement(rnd)
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return P.trim(cs), nil
}

func (P *PolynomialRing) IsMember(e algebra.Element) bool {
	_, ok := e.(*Polynomial)
	return ok && algebra.Owns(P, e)
}

func (P *PolynomialRing) Equal(other algebra.Set) bool { return algebra.SameSet(P, other) }

func (P *PolynomialRing) poly(e algebra.Element) (*Polynomial, error) {
	if err := algebra.Check(P, e); err != nil {
		return nil, err
	}
	return e.(*Polynomial), nil
}

func (P *PolynomialRing) poly2(a, b algebra.Element) (*Polynomial, *Polynomial, error) {
	x, err := P.poly(a)
	if err != nil {
		return nil, nil, err
	}
	y, err := P.poly(b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

// combine applies op coefficient-wise, padding the shorter operand with
// zeros.
func (P *PolynomialRing) combine(x, y *Polynomial, op func(a, b algebra.Element) (algebra.Element, error)) (algebra.Element, error) {
	n := len(x.coeffs)
	if len(y.coeffs) > n {
		n = len(y.coeffs)
	}
	cs := make([]algebra.Element, n)
	for i := range cs {
		c, err := op(x.Coefficient(i), y.Coefficient(i))
		if err != nil {
			return nil, err
		}
		cs[i] = c
	}
	return P.trim(cs), nil
}

func (P *PolynomialRing) Apply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := P.poly2(a, b)
	if err != nil {
		return nil, err
	}
	return P.combine(x, y, P.base.Add)
}

// SelfApply multiplies every coefficient by the integer k.
func (P *PolynomialRing) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := P.poly(e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil amount")
	}
	cs := make([]algebra.Element, len(x.coeffs))
	for i, c := range x.coeffs {
		if cs[i], err = P.base.SelfApply(c, k); err != nil {
			return nil, err
		}
	}
	return P.trim(cs), nil
}

func (P *PolynomialRing) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	return algebra.MultiSelfApply(P, es, ks)
}

func (P *PolynomialRing) IsCommutative() bool { return true }

func (P *PolynomialRing) Identity() algebra.Element { return P.zero }

func (P *PolynomialRing) IsIdentity(e algebra.Element) bool { return P.zero.Equal(e) }

func (P *PolynomialRing) Invert(e algebra.Element) (algebra.Element, error) {
	x, err := P.poly(e)
	if err != nil {
		return nil, err
	}
	cs := make([]algebra.Element, len(x.coeffs))
	for i, c := range x.coeffs {
		if cs[i], err = P.base.Negate(c); err != nil {
			return nil, err
		}
	}
	return P.trim(cs), nil
}

func (P *PolynomialRing) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := P.poly2(a, b)
	if err != nil {
		return nil, err
	}
	return P.combine(x, y, P.base.Subtract)
}

func (P *PolynomialRing) Zero() algebra.Element { return P.zero }

func (P *PolynomialRing) One() algebra.Element { return P.one }

func (P *PolynomialRing) Add(a, b algebra.Element) (algebra.Element, error) { return P.Apply(a, b) }

func (P *PolynomialRing) Subtract(a, b algebra.Element) (algebra.Element, error) {
	return P.ApplyInverse(a, b)
}

func (P *PolynomialRing) Negate(a algebra.Element) (algebra.Element, error) { return P.Invert(a) }

// Multiply is the schoolbook product.
func (P *PolynomialRing) Multiply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := P.poly2(a, b)
	if err != nil {
		return nil, err
	}
	if len(x.coeffs) == 0 || len(y.coeffs) == 0 {
		return P.zero, nil
	}

	cs := make([]algebra.Element, len(x.coeffs)+len(y.coeffs)-1)
	for i := range cs {
		cs[i] = P.base.Zero()
	}
	for i, c := range x.coeffs {
		for j, d := range y.coeffs {
			t, err := P.base.Multiply(c, d)
			if err != nil {
				return nil, err
			}
			if cs[i+j], err = P.base.Add(cs[i+j], t); err != nil {
				return nil, err
			}
		}
	}
	return P.trim(cs), nil
}

// Power raises e to k >= 0 by square-and-multiply. Negative k are only
// defined for constant units of the base ring.
func (P *PolynomialRing) Power(e algebra.Element, k *big.Int) (algebra.Element, error) {
	if k == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil amount")
	}
	if k.Sign() < 0 {
		inv, err := P.MultiplicativeInverse(e)
		if err != nil {
			return nil, err
		}
		return algebra.SelfApply(P.mul, inv, new(big.Int).Neg(k))
	}
	return algebra.SelfApply(P.mul, e, k)
}

// MultiplicativeInverse is defined for constant polynomials whose
// coefficient is a unit of the base ring.
func (P *PolynomialRing) MultiplicativeInverse(e algebra.Element) (algebra.Element, error) {
	x, err := P.poly(e)
	if err != nil {
		return nil, err
	}
	if len(x.coeffs) != 1 {
		return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in %s", x, P)
	}
	c, err := P.base.MultiplicativeInverse(x.coeffs[0])
	if err != nil {
		return nil, err
	}
	return P.trim([]algebra.Element{c}), nil
}

func (P *PolynomialRing) Multiplicative() algebra.Monoid { return P.mul }

// Evaluate returns e(x) by Horner's rule.
func (P *PolynomialRing) Evaluate(e algebra.Element, x algebra.Element) (algebra.Element, error) {
	p, err := P.poly(e)
	if err != nil {
		return nil, err
	}
	if err := algebra.Check(P.base, x); err != nil {
		return nil, err
	}
	acc := P.base.Zero()
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if acc, err = P.base.Multiply(acc, x); err != nil {
			return nil, err
		}
		if acc, err = P.base.Add(acc, p.coeffs[i]); err != nil {
			return nil, err
		}
	}
	return acc, nil
}
