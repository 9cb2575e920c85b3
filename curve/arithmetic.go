package curve

import (
	"math/big"

	"github.com/takakv/msc-algebra/algebra"
)

// arithmetic is the coordinate-level point arithmetic of one curve. Inputs
// are always points on the curve; the infinity sentinel is handled by every
// operation.
type arithmetic interface {
	isOnCurve(x, y *big.Int) bool
	add(p, q ECPoint) ECPoint
	double(p ECPoint) ECPoint
	neg(p ECPoint) ECPoint
	// scalarMult returns k*p for k >= 0.
	scalarMult(p ECPoint, k *big.Int) ECPoint
	// liftX returns the point with x-coordinate x whose y-coordinate has
	// low bit sign, if x is the abscissa of a point.
	liftX(x *big.Int, sign uint) (ECPoint, bool)
	coordinateField() algebra.Field
	// fieldOrder is the number of elements of the coordinate field.
	fieldOrder() *big.Int
}

// doubleAndAdd computes k*p from the most significant bit down.
func doubleAndAdd(c arithmetic, p ECPoint, k *big.Int) ECPoint {
	r := Infinity()
	for i := k.BitLen() - 1; i >= 0; i-- {
		r = c.double(r)
		if k.Bit(i) == 1 {
			r = c.add(r, p)
		}
	}
	return r
}
