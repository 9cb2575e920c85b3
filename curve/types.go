package curve

import "math/big"

// ECPoint is needed for JSON marshalling EC points. It is also the raw
// value of curve elements; the point at infinity has both coordinates nil.
type ECPoint struct {
	X *big.Int `json:"x"`
	Y *big.Int `json:"y"`
}

// GroupId is needed for JSON marshalling groups.
type GroupId struct {
	Name string `json:"group"`
}

// Infinity returns the point at infinity.
func Infinity() ECPoint { return ECPoint{} }

// IsInfinity reports whether p is the point at infinity.
func (p ECPoint) IsInfinity() bool { return p.X == nil && p.Y == nil }

func (p ECPoint) copy() ECPoint {
	if p.IsInfinity() {
		return ECPoint{}
	}
	return ECPoint{X: new(big.Int).Set(p.X), Y: new(big.Int).Set(p.Y)}
}

func (p ECPoint) equal(q ECPoint) bool {
	if p.IsInfinity() || q.IsInfinity() {
		return p.IsInfinity() && q.IsInfinity()
	}
	return p.X.Cmp(q.X) == 0 && p.Y.Cmp(q.Y) == 0
}

// pointValue converts the raw value forms accepted by curves.
func pointValue(value any) (ECPoint, bool) {
	switch v := value.(type) {
	case ECPoint:
		if (v.X == nil) != (v.Y == nil) {
			return ECPoint{}, false
		}
		return v, true
	case *ECPoint:
		if v == nil {
			return ECPoint{}, false
		}
		return pointValue(*v)
	default:
		return ECPoint{}, false
	}
}
