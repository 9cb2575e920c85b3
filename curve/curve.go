// Package curve implements elliptic-curve point groups over prime fields and
// binary extension fields, a catalog of named curves and circl-backed NIST
// curves, all behind the algebra.CyclicGroup contract.
package curve

import (
	"fmt"
	"io"
	"math/big"

	"github.com/cloudflare/circl/group"
	json "github.com/goccy/go-json"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

var log = logger.GetOrCreate("curve")

// FieldType selects the coordinate field of a curve.
type FieldType string

const (
	// PrimeField curves satisfy y^2 = x^3 + ax + b over Z_p.
	PrimeField FieldType = "prime"
	// BinaryField curves satisfy y^2 + xy = x^3 + ax^2 + b over GF(2^m).
	BinaryField FieldType = "binary"
)

// Params are the domain parameters of a curve. For binary curves Modulus is
// the reduction polynomial of the coordinate field.
type Params struct {
	Name     string
	Field    FieldType
	Modulus  *big.Int
	A, B     *big.Int
	Gx, Gy   *big.Int
	N        *big.Int // prime order of the generator
	Cofactor *big.Int
}

func (p Params) copy() Params {
	c := p
	for _, v := range []**big.Int{&c.Modulus, &c.A, &c.B, &c.Gx, &c.Gy, &c.N, &c.Cofactor} {
		if *v != nil {
			*v = new(big.Int).Set(*v)
		}
	}
	return c
}

func (p Params) key(backend string) string {
	key := backend + "(" + string(p.Field)
	for _, v := range []*big.Int{p.Modulus, p.A, p.B, p.Gx, p.Gy, p.N, p.Cofactor} {
		key += "," + v.Text(16)
	}
	return key + ")"
}

// Curve is the group of points of prime order n generated by G on an
// elliptic curve. The group operation is point addition and the identity is
// the point at infinity.
type Curve struct {
	key    string
	name   string
	params Params
	arith  arithmetic
	hasher func(msg string) (ECPoint, error)

	identity  *Point
	generator *Point
}

// NewCurve validates params and returns the canonical curve for them.
func NewCurve(params Params, opts ...algebra.Option) (*Curve, error) {
	return newCurve(params, nil, opts)
}

// NewPrimeCurve is NewCurve for y^2 = x^3 + ax + b over Z_p.
func NewPrimeCurve(p, a, b, gx, gy, n, h *big.Int, opts ...algebra.Option) (*Curve, error) {
	return NewCurve(Params{Field: PrimeField, Modulus: p, A: a, B: b, Gx: gx, Gy: gy, N: n, Cofactor: h}, opts...)
}

// NewBinaryCurve is NewCurve for y^2 + xy = x^3 + ax^2 + b over GF(2)[x]/(f).
func NewBinaryCurve(f, a, b, gx, gy, n, h *big.Int, opts ...algebra.Option) (*Curve, error) {
	return NewCurve(Params{Field: BinaryField, Modulus: f, A: a, B: b, Gx: gx, Gy: gy, N: n, Cofactor: h}, opts...)
}

func newCurve(params Params, backend group.Group, opts []algebra.Option) (*Curve, error) {
	o := algebra.NewOptions(opts...)
	for _, v := range []*big.Int{params.Modulus, params.A, params.B, params.Gx, params.Gy, params.N, params.Cofactor} {
		if v == nil {
			return nil, errors.Wrap(algebra.ErrInvalidParameter, "missing curve parameter")
		}
	}
	if params.Field != PrimeField && params.Field != BinaryField {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "unknown field type %q", params.Field)
	}
	if backend != nil && params.Field != PrimeField {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "circl curves are prime curves")
	}

	prefix := "EC"
	if backend != nil {
		prefix = "ECCircl"
	}
	key := params.key(prefix)

	s, err := o.Registry.GetOrCreate(key, func() (algebra.Set, error) {
		c, err := buildCurve(key, params.copy(), backend, o)
		if err != nil {
			return nil, err
		}
		log.Debug("curve created", "name", c.name, "field", string(params.Field), "bits", params.N.BitLen())
		return c, nil
	})
	if err != nil {
		return nil, err
	}
	c, ok := s.(*Curve)
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "key %s registered as %T", key, s)
	}
	return c, nil
}

func buildCurve(key string, params Params, backend group.Group, o algebra.Options) (*Curve, error) {
	fieldOpts := o.Apply()

	var arith arithmetic
	switch params.Field {
	case PrimeField:
		if params.Modulus.Cmp(big.NewInt(3)) <= 0 {
			return nil, errors.Wrapf(algebra.ErrInvalidParameter, "modulus %s is too small", params.Modulus)
		}
		prime, err := newPrimeArithmetic(params.Modulus, params.A, params.B, fieldOpts)
		if err != nil {
			return nil, err
		}
		if !prime.inRange(params.A) || !prime.inRange(params.B) {
			return nil, errors.Wrap(algebra.ErrInvalidParameter, "coefficients outside of the field")
		}
		if prime.isSingular() {
			return nil, errors.Wrap(algebra.ErrInvalidParameter, "singular curve: 4a^3 + 27b^2 = 0")
		}
		arith = prime
		if backend != nil {
			arith = newCirclArithmetic(backend, prime)
		}
	case BinaryField:
		bin, err := newBinaryArithmetic(params.Modulus, params.A, params.B, fieldOpts)
		if err != nil {
			return nil, err
		}
		if !bin.field.Contains(params.A) || !bin.field.Contains(params.B) {
			return nil, errors.Wrap(algebra.ErrInvalidParameter, "coefficients outside of the field")
		}
		if params.B.Sign() == 0 {
			return nil, errors.Wrap(algebra.ErrInvalidParameter, "singular curve: b = 0")
		}
		arith = bin
	}

	if !arith.isOnCurve(params.Gx, params.Gy) {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "generator is not on the curve")
	}
	if !params.N.ProbablyPrime(o.PrimalityRounds) {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "order %s is not prime", params.N)
	}
	if params.Cofactor.Sign() <= 0 {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "cofactor %s", params.Cofactor)
	}
	if !withinHasseBound(arith.fieldOrder(), new(big.Int).Mul(params.N, params.Cofactor)) {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "h*n violates the Hasse bound")
	}

	g := ECPoint{X: params.Gx, Y: params.Gy}
	// circl reduces scalars modulo n, so the check is only meaningful for
	// the generic arithmetic.
	if backend == nil && !arith.scalarMult(g, params.N).IsInfinity() {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "n*G is not the point at infinity")
	}

	name := params.Name
	if name == "" {
		name = fmt.Sprintf("EC(%s, %d bits)", params.Field, params.Modulus.BitLen())
	}

	c := &Curve{key: key, name: name, params: params, arith: arith}
	c.identity = &Point{curve: c}
	c.generator = c.wrap(g)
	c.hasher = c.selectHasher(backend)
	return c, nil
}

// withinHasseBound checks (q + 1 - count)^2 <= 4q.
func withinHasseBound(q, count *big.Int) bool {
	t := new(big.Int).Add(q, big.NewInt(1))
	t.Sub(t, count)
	t.Mul(t, t)
	return t.Cmp(new(big.Int).Lsh(q, 2)) <= 0
}

// Name returns the catalog name of the curve.
func (c *Curve) Name() string { return c.name }

// Params returns a copy of the domain parameters.
func (c *Curve) Params() Params { return c.params.copy() }

// P returns the order of the coordinate field.
func (c *Curve) P() *big.Int { return c.arith.fieldOrder() }

// N returns the prime order of the group.
func (c *Curve) N() *big.Int { return new(big.Int).Set(c.params.N) }

// Cofactor returns h, the number of curve points divided by n.
func (c *Curve) Cofactor() *big.Int { return new(big.Int).Set(c.params.Cofactor) }

// CoordinateField returns the field of the coordinates: a group.ZModPrime
// or a polynomial.BinaryField.
func (c *Curve) CoordinateField() algebra.Field { return c.arith.coordinateField() }

// IsCircl reports whether the arithmetic is delegated to circl.
func (c *Curve) IsCircl() bool {
	_, ok := c.arith.(*circlArithmetic)
	return ok
}

func (c *Curve) MarshalJSON() ([]byte, error) {
	return json.Marshal(&GroupId{c.name})
}

func (c *Curve) Key() string    { return c.key }
func (c *Curve) String() string { return c.name }

func (c *Curve) Order() algebra.Order { return algebra.Finite(c.params.N) }

// Contains reports whether value is a point of the subgroup: the point at
// infinity, or a point on the curve that n annihilates when h > 1.
func (c *Curve) Contains(value any) bool {
	p, ok := pointValue(value)
	if !ok {
		return false
	}
	if p.IsInfinity() {
		return true
	}
	if !c.arith.isOnCurve(p.X, p.Y) {
		return false
	}
	if c.params.Cofactor.Cmp(big.NewInt(1)) == 0 {
		return true
	}
	return c.arith.scalarMult(p, c.params.N).IsInfinity()
}

func (c *Curve) GetElement(value any) (algebra.Element, error) {
	if !c.Contains(value) {
		return nil, errors.Wrapf(algebra.ErrInvalidValue, "%v is not in %s", value, c)
	}
	p, _ := pointValue(value)
	return c.wrap(p.copy()), nil
}

// Point returns the element with affine coordinates (x, y).
func (c *Curve) Point(x, y *big.Int) (*Point, error) {
	e, err := c.GetElement(ECPoint{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	return e.(*Point), nil
}

func (c *Curve) wrap(p ECPoint) *Point {
	if p.IsInfinity() {
		return c.identity
	}
	return &Point{curve: c, x: p.X, y: p.Y}
}

// RandomElement returns G*r for r uniform in [0, n).
func (c *Curve) RandomElement(rnd io.Reader) (algebra.Element, error) {
	r, err := algebra.RandomInt(rnd, c.params.N)
	if err != nil {
		return nil, err
	}
	return c.wrap(c.arith.scalarMult(c.generator.raw(), r)), nil
}

// canLift reports whether y-coordinates can be recovered from x. Binary
// curves need the half-trace, which only exists for odd extension degrees.
func (c *Curve) canLift() bool {
	b, ok := c.arith.(*binaryArithmetic)
	return !ok || b.field.Degree()%2 == 1
}

// RandomCurvePoint draws a uniform x-coordinate and a random sign until x
// is the abscissa of a curve point. The result lies on the curve but not
// necessarily in the subgroup of order n.
func (c *Curve) RandomCurvePoint(rnd io.Reader) (ECPoint, error) {
	if !c.canLift() {
		return ECPoint{}, errors.Wrapf(algebra.ErrUnsupportedOperation, "point recovery on %s", c)
	}
	field := c.arith.coordinateField()
	for attempt := 1; ; attempt++ {
		x, err := field.RandomElement(rnd)
		if err != nil {
			return ECPoint{}, err
		}
		sign, err := algebra.RandomBit(rnd)
		if err != nil {
			return ECPoint{}, err
		}
		if p, ok := c.arith.liftX(x.(*algebra.IntElement).Int(), sign); ok {
			return p, nil
		}
		log.Trace("curve point candidate rejected", "curve", c.name, "attempt", attempt)
	}
}

func (c *Curve) IsMember(e algebra.Element) bool {
	_, ok := e.(*Point)
	return ok && algebra.Owns(c, e)
}

func (c *Curve) Equal(other algebra.Set) bool { return algebra.SameSet(c, other) }

func (c *Curve) point(e algebra.Element) (ECPoint, error) {
	if err := algebra.Check(c, e); err != nil {
		return ECPoint{}, err
	}
	return e.(*Point).raw(), nil
}

func (c *Curve) Apply(a, b algebra.Element) (algebra.Element, error) {
	p, err := c.point(a)
	if err != nil {
		return nil, err
	}
	q, err := c.point(b)
	if err != nil {
		return nil, err
	}
	return c.wrap(c.arith.add(p, q)), nil
}

// SelfApply returns k*e. k is reduced modulo n, so negative k yield
// multiples of -e.
func (c *Curve) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	p, err := c.point(e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil amount")
	}
	r := new(big.Int).Mod(k, c.params.N)
	return c.wrap(c.arith.scalarMult(p, r)), nil
}

func (c *Curve) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	return algebra.MultiSelfApply(c, es, ks)
}

func (c *Curve) IsCommutative() bool { return true }

func (c *Curve) Identity() algebra.Element { return c.identity }

func (c *Curve) IsIdentity(e algebra.Element) bool { return c.identity.Equal(e) }

func (c *Curve) Invert(e algebra.Element) (algebra.Element, error) {
	p, err := c.point(e)
	if err != nil {
		return nil, err
	}
	return c.wrap(c.arith.neg(p)), nil
}

func (c *Curve) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	return algebra.ApplyInverse(c, a, b)
}

func (c *Curve) DefaultGenerator() algebra.Element { return c.generator }

// RandomGenerator samples random curve points and multiplies them by the
// cofactor until the result is not the identity. Where points cannot be
// recovered from x it samples G*r instead.
func (c *Curve) RandomGenerator(rnd io.Reader) (algebra.Element, error) {
	if !c.canLift() {
		return algebra.SearchGenerator(c, rnd, c.RandomElement)
	}
	return algebra.SearchGenerator(c, rnd, func(rnd io.Reader) (algebra.Element, error) {
		p, err := c.RandomCurvePoint(rnd)
		if err != nil {
			return nil, err
		}
		return c.wrap(c.arith.scalarMult(p, c.params.Cofactor)), nil
	})
}

// IsGenerator checks that e has order n. Since n is prime, every point of
// the group but the identity is a generator. SelfApply reduces scalars
// modulo n, so n*e is computed with the raw arithmetic. circl curves have
// cofactor 1 and reduce internally; there every curve point has order n.
func (c *Curve) IsGenerator(e algebra.Element) (bool, error) {
	p, err := c.point(e)
	if err != nil {
		return false, err
	}
	if !c.IsCircl() && !c.arith.scalarMult(p, c.params.N).IsInfinity() {
		return false, nil
	}
	return algebra.HasOrder(c, e, c.params.N, []*big.Int{c.params.N})
}

// UnmarshalPoint decodes the JSON form produced by Point.MarshalJSON.
func (c *Curve) UnmarshalPoint(data []byte) (*Point, error) {
	var p ECPoint
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(algebra.ErrInvalidValue, err.Error())
	}
	if p.X == nil || p.Y == nil {
		return nil, errors.Wrap(algebra.ErrInvalidValue, "missing coordinate")
	}
	// The special case encoding of the point at infinity.
	if p.X.Sign() == 0 && p.Y.Sign() == 0 && !c.arith.isOnCurve(p.X, p.Y) {
		return c.identity, nil
	}
	return c.Point(p.X, p.Y)
}
