package algebra

import "math/big"

type orderKind uint8

const (
	orderUnknown orderKind = iota
	orderFinite
	orderInfinite
)

// Order is the cardinality of a set: a finite non-negative integer, infinite,
// or unknown (e.g. the unit group of a modulus with unknown factorization).
type Order struct {
	kind orderKind
	n    *big.Int
}

// Infinite is the order of sets with infinitely many elements.
var Infinite = Order{kind: orderInfinite}

// Unknown is the order of finite sets whose size cannot be computed.
var Unknown = Order{kind: orderUnknown}

// Finite returns the order n. A nil or negative n yields Unknown.
func Finite(n *big.Int) Order {
	if n == nil || n.Sign() < 0 {
		return Unknown
	}
	return Order{kind: orderFinite, n: new(big.Int).Set(n)}
}

// FiniteInt64 is Finite for small orders.
func FiniteInt64(n int64) Order {
	return Finite(big.NewInt(n))
}

func (o Order) IsFinite() bool   { return o.kind == orderFinite }
func (o Order) IsInfinite() bool { return o.kind == orderInfinite }
func (o Order) IsUnknown() bool  { return o.kind == orderUnknown }

// Int returns a copy of the finite order, or nil.
func (o Order) Int() *big.Int {
	if o.kind != orderFinite {
		return nil
	}
	return new(big.Int).Set(o.n)
}

// Mul returns the order of the product of two sets.
// Infinite dominates Unknown, Unknown dominates finite orders.
func (o Order) Mul(p Order) Order {
	switch {
	case o.kind == orderFinite && p.kind == orderFinite:
		return Order{kind: orderFinite, n: new(big.Int).Mul(o.n, p.n)}
	case o.kind == orderInfinite || p.kind == orderInfinite:
		return Infinite
	default:
		return Unknown
	}
}

func (o Order) Equal(p Order) bool {
	if o.kind != p.kind {
		return false
	}
	return o.kind != orderFinite || o.n.Cmp(p.n) == 0
}

func (o Order) String() string {
	switch o.kind {
	case orderFinite:
		return o.n.String()
	case orderInfinite:
		return "infinite"
	default:
		return "unknown"
	}
}
