package curve

import (
	"math/big"

	"github.com/takakv/msc-algebra/algebra"
	"github.com/takakv/msc-algebra/polynomial"
)

// binaryArithmetic implements y^2 + xy = x^3 + ax^2 + b over GF(2^m) in
// affine coordinates. Negation maps (x, y) to (x, x + y).
type binaryArithmetic struct {
	field *polynomial.BinaryField
	a, b  *big.Int
}

func newBinaryArithmetic(f, a, b *big.Int, opts []algebra.Option) (*binaryArithmetic, error) {
	field, err := polynomial.NewBinaryField(f, opts...)
	if err != nil {
		return nil, err
	}
	return &binaryArithmetic{
		field: field,
		a:     new(big.Int).Set(a),
		b:     new(big.Int).Set(b),
	}, nil
}

func (c *binaryArithmetic) el(v *big.Int) algebra.Element {
	return algebra.NewIntElement(c.field, v)
}

func bits(e algebra.Element) *big.Int {
	return e.(*algebra.IntElement).Int()
}

// Field operations on reduced bit polynomials. Operands are always members
// of the field and divisors are non-zero, so errors cannot occur.

func (c *binaryArithmetic) mul(x, y *big.Int) *big.Int {
	r, _ := c.field.Multiply(c.el(x), c.el(y))
	return bits(r)
}

func (c *binaryArithmetic) div(x, y *big.Int) *big.Int {
	r, _ := c.field.Divide(c.el(x), c.el(y))
	return bits(r)
}

func (c *binaryArithmetic) sqr(x *big.Int) *big.Int {
	r, _ := c.field.Square(c.el(x))
	return bits(r)
}

func xor(vs ...*big.Int) *big.Int {
	r := new(big.Int)
	for _, v := range vs {
		r.Xor(r, v)
	}
	return r
}

func (c *binaryArithmetic) isOnCurve(x, y *big.Int) bool {
	if !c.field.Contains(x) || !c.field.Contains(y) {
		return false
	}
	x2 := c.sqr(x)
	lhs := xor(c.sqr(y), c.mul(x, y))
	rhs := xor(c.mul(x2, x), c.mul(c.a, x2), c.b)
	return lhs.Cmp(rhs) == 0
}

func (c *binaryArithmetic) add(p, q ECPoint) ECPoint {
	switch {
	case p.IsInfinity():
		return q
	case q.IsInfinity():
		return p
	}
	if p.X.Cmp(q.X) == 0 {
		if p.Y.Cmp(q.Y) == 0 {
			return c.double(p)
		}
		return Infinity()
	}

	// l = (y1 + y2) / (x1 + x2)
	l := c.div(xor(p.Y, q.Y), xor(p.X, q.X))
	// x3 = l^2 + l + x1 + x2 + a
	x3 := xor(c.sqr(l), l, p.X, q.X, c.a)
	// y3 = l(x1 + x3) + x3 + y1
	y3 := xor(c.mul(l, xor(p.X, x3)), x3, p.Y)
	return ECPoint{X: x3, Y: y3}
}

func (c *binaryArithmetic) double(p ECPoint) ECPoint {
	if p.IsInfinity() || p.X.Sign() == 0 {
		return Infinity()
	}
	// l = x + y/x
	l := xor(p.X, c.div(p.Y, p.X))
	// x3 = l^2 + l + a
	x3 := xor(c.sqr(l), l, c.a)
	// y3 = x1^2 + (l + 1) x3
	y3 := xor(c.sqr(p.X), c.mul(xor(l, big.NewInt(1)), x3))
	return ECPoint{X: x3, Y: y3}
}

func (c *binaryArithmetic) neg(p ECPoint) ECPoint {
	if p.IsInfinity() {
		return p
	}
	return ECPoint{X: new(big.Int).Set(p.X), Y: xor(p.X, p.Y)}
}

func (c *binaryArithmetic) scalarMult(p ECPoint, k *big.Int) ECPoint {
	return doubleAndAdd(c, p, k)
}

// liftX solves for y. For x = 0 the only point is (0, sqrt(b)). Otherwise
// y = xz where z^2 + z = x + a + b/x^2.
func (c *binaryArithmetic) liftX(x *big.Int, sign uint) (ECPoint, bool) {
	if !c.field.Contains(x) {
		return ECPoint{}, false
	}
	if x.Sign() == 0 {
		y, err := c.field.Sqrt(c.el(c.b))
		if err != nil {
			return ECPoint{}, false
		}
		return ECPoint{X: new(big.Int), Y: bits(y)}, true
	}

	rhs := xor(x, c.a, c.div(c.b, c.sqr(x)))
	z, err := c.field.SolveQuadratic(c.el(rhs))
	if err != nil {
		return ECPoint{}, false
	}
	zb := bits(z)
	if zb.Bit(0) != sign {
		zb.Xor(zb, big.NewInt(1))
	}
	return ECPoint{X: new(big.Int).Set(x), Y: c.mul(x, zb)}, true
}

func (c *binaryArithmetic) coordinateField() algebra.Field { return c.field }

func (c *binaryArithmetic) fieldOrder() *big.Int { return c.field.Order().Int() }
