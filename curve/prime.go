package curve

import (
	"math/big"

	"github.com/takakv/msc-algebra/algebra"
	"github.com/takakv/msc-algebra/group"
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// primeArithmetic implements y^2 = x^3 + ax + b over Z_p in affine
// coordinates.
type primeArithmetic struct {
	p, a, b *big.Int
	field   *group.ZModPrime
}

func newPrimeArithmetic(p, a, b *big.Int, opts []algebra.Option) (*primeArithmetic, error) {
	field, err := group.NewZModPrime(p, opts...)
	if err != nil {
		return nil, err
	}
	return &primeArithmetic{
		p:     new(big.Int).Set(p),
		a:     new(big.Int).Set(a),
		b:     new(big.Int).Set(b),
		field: field,
	}, nil
}

func (c *primeArithmetic) mod(v *big.Int) *big.Int { return v.Mod(v, c.p) }

// rhs returns x^3 + ax + b mod p.
func (c *primeArithmetic) rhs(x *big.Int) *big.Int {
	r := new(big.Int).Mul(x, x)
	r.Add(r, c.a)
	r.Mul(r, x)
	r.Add(r, c.b)
	return c.mod(r)
}

func (c *primeArithmetic) inRange(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.p) < 0
}

func (c *primeArithmetic) isOnCurve(x, y *big.Int) bool {
	if !c.inRange(x) || !c.inRange(y) {
		return false
	}
	y2 := c.mod(new(big.Int).Mul(y, y))
	return y2.Cmp(c.rhs(x)) == 0
}

// isSingular reports whether 4a^3 + 27b^2 = 0 mod p.
func (c *primeArithmetic) isSingular() bool {
	d := new(big.Int).Exp(c.a, three, c.p)
	d.Mul(d, big.NewInt(4))
	b2 := new(big.Int).Mul(c.b, c.b)
	d.Add(d, b2.Mul(b2, big.NewInt(27)))
	return c.mod(d).Sign() == 0
}

func (c *primeArithmetic) add(p, q ECPoint) ECPoint {
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

	// l = (y2 - y1) / (x2 - x1)
	num := new(big.Int).Sub(q.Y, p.Y)
	den := c.mod(new(big.Int).Sub(q.X, p.X))
	l := c.mod(num.Mul(num, den.ModInverse(den, c.p)))
	return c.chord(p, q.X, l)
}

// chord returns the third intersection point of slope l through p,
// reflected: x3 = l^2 - x1 - x2, y3 = l(x1 - x3) - y1.
func (c *primeArithmetic) chord(p ECPoint, x2, l *big.Int) ECPoint {
	x3 := new(big.Int).Mul(l, l)
	x3.Sub(x3, p.X)
	x3.Sub(x3, x2)
	c.mod(x3)

	y3 := new(big.Int).Sub(p.X, x3)
	y3.Mul(y3, l)
	y3.Sub(y3, p.Y)
	c.mod(y3)
	return ECPoint{X: x3, Y: y3}
}

func (c *primeArithmetic) double(p ECPoint) ECPoint {
	if p.IsInfinity() || p.Y.Sign() == 0 {
		return Infinity()
	}
	// l = (3x^2 + a) / 2y
	num := new(big.Int).Mul(p.X, p.X)
	num.Mul(num, three)
	num.Add(num, c.a)
	den := c.mod(new(big.Int).Mul(p.Y, two))
	l := c.mod(num.Mul(num, den.ModInverse(den, c.p)))
	return c.chord(p, p.X, l)
}

func (c *primeArithmetic) neg(p ECPoint) ECPoint {
	if p.IsInfinity() {
		return p
	}
	return ECPoint{X: new(big.Int).Set(p.X), Y: c.mod(new(big.Int).Neg(p.Y))}
}

func (c *primeArithmetic) scalarMult(p ECPoint, k *big.Int) ECPoint {
	return doubleAndAdd(c, p, k)
}

func (c *primeArithmetic) liftX(x *big.Int, sign uint) (ECPoint, bool) {
	if !c.inRange(x) {
		return ECPoint{}, false
	}
	y := new(big.Int).ModSqrt(c.rhs(x), c.p)
	if y == nil {
		return ECPoint{}, false
	}
	if y.Bit(0) != sign && y.Sign() != 0 {
		y.Sub(c.p, y)
	}
	return ECPoint{X: new(big.Int).Set(x), Y: y}, true
}

func (c *primeArithmetic) coordinateField() algebra.Field { return c.field }

func (c *primeArithmetic) fieldOrder() *big.Int { return new(big.Int).Set(c.p) }
