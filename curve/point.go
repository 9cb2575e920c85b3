package curve

import (
	"fmt"
	"math/big"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// Point is an element of a Curve. The point at infinity has nil
// coordinates.
type Point struct {
	curve *Curve
	x, y  *big.Int
}

func (p *Point) raw() ECPoint { return ECPoint{X: p.x, Y: p.y} }

func (p *Point) Set() algebra.Set { return p.curve }

// Value returns a copy of the coordinates as an ECPoint.
func (p *Point) Value() any { return p.raw().copy() }

func (p *Point) Equal(x algebra.Element) bool {
	q, ok := x.(*Point)
	return ok && algebra.SameSet(p.curve, q.curve) && p.raw().equal(q.raw())
}

// IsInfinity reports whether p is the identity.
func (p *Point) IsInfinity() bool { return p.x == nil }

// X returns a copy of the x-coordinate, nil at infinity.
func (p *Point) X() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate, nil at infinity.
func (p *Point) Y() *big.Int {
	if p.IsInfinity() {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Coordinates returns x and y as elements of the coordinate field.
func (p *Point) Coordinates() (algebra.Element, algebra.Element, error) {
	if p.IsInfinity() {
		return nil, nil, errors.Wrap(algebra.ErrInvalidValue, "the point at infinity has no coordinates")
	}
	field := p.curve.CoordinateField()
	x, err := field.GetElement(p.x)
	if err != nil {
		return nil, nil, err
	}
	y, err := field.GetElement(p.y)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func (p *Point) String() string {
	if p.IsInfinity() {
		return "O"
	}
	return fmt.Sprintf("(%x, %x)", p.x, p.y)
}

// MarshalJSON encodes the coordinates as an ECPoint. The point at infinity
// is encoded as x = y = 0.
func (p *Point) MarshalJSON() ([]byte, error) {
	point := ECPoint{X: big.NewInt(0), Y: big.NewInt(0)}
	if !p.IsInfinity() {
		point = p.raw().copy()
	}
	return json.Marshal(&point)
}
