package algebra

import "math/big"

// IntElement is an element whose raw value is an arbitrary-precision integer.
// It is shared by every structure over integers or bit polynomials.
type IntElement struct {
	set Set
	val *big.Int
}

// NewIntElement binds v to s without validation. Structures call it after
// checking membership; v is copied.
func NewIntElement(s Set, v *big.Int) *IntElement {
	return &IntElement{set: s, val: new(big.Int).Set(v)}
}

func (e *IntElement) Set() Set { return e.set }

func (e *IntElement) Value() any { return e.Int() }

// Int returns a copy of the raw value.
func (e *IntElement) Int() *big.Int { return new(big.Int).Set(e.val) }

// Raw returns the raw value without copying. Callers must not modify it.
func (e *IntElement) Raw() *big.Int { return e.val }

func (e *IntElement) Equal(x Element) bool {
	ex, ok := x.(*IntElement)
	if !ok {
		return false
	}
	return SameSet(e.set, ex.set) && e.val.Cmp(ex.val) == 0
}

func (e *IntElement) String() string {
	return e.val.String()
}

// IntValue converts the raw value forms accepted by integer structures
// (*big.Int, int, int64, uint64) to a *big.Int. It returns nil for
// anything else.
func IntValue(value any) *big.Int {
	switch v := value.(type) {
	case *big.Int:
		return v
	case int:
		return big.NewInt(int64(v))
	case int64:
		return big.NewInt(v)
	case uint64:
		return new(big.Int).SetUint64(v)
	default:
		return nil
	}
}
