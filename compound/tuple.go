package compound

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// Tuple is an element of a product: one element per component.
type Tuple struct {
	product *ProductSet
	elems   []algebra.Element
}

// Set returns the richest product structure the tuple belongs to.
func (t *Tuple) Set() algebra.Set { return t.product.self }

// Value returns the raw values of the components as a []any. Tuples of
// nested products yield nested slices.
func (t *Tuple) Value() any {
	values := make([]any, len(t.elems))
	for i, e := range t.elems {
		values[i] = e.Value()
	}
	return values
}

func (t *Tuple) Equal(x algebra.Element) bool {
	o, ok := x.(*Tuple)
	if !ok || o == nil || !algebra.SameSet(t.Set(), o.Set()) || len(t.elems) != len(o.elems) {
		return false
	}
	for i, e := range t.elems {
		if !e.Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Arity returns the number of components.
func (t *Tuple) Arity() int { return len(t.elems) }

// At returns the i-th component.
func (t *Tuple) At(i int) (algebra.Element, error) {
	if i < 0 || i >= len(t.elems) {
		return nil, errors.Wrapf(algebra.ErrIndexOutOfRange, "%d for arity %d", i, len(t.elems))
	}
	return t.elems[i], nil
}

// Elements returns the components in order.
func (t *Tuple) Elements() []algebra.Element {
	return append([]algebra.Element(nil), t.elems...)
}

// RemoveAt returns the tuple without its i-th component, as an element of
// the product without the i-th set.
func (t *Tuple) RemoveAt(i int) (*Tuple, error) {
	s, err := t.product.RemoveAt(i)
	if err != nil {
		return nil, err
	}
	elems := t.Elements()
	return productOf(s).Tuple(append(elems[:i], elems[i+1:]...)...)
}

// InsertAt returns the tuple with e inserted before the i-th component. The
// new component set is the one e belongs to.
func (t *Tuple) InsertAt(i int, e algebra.Element) (*Tuple, error) {
	if e == nil || e.Set() == nil {
		return nil, errors.Wrap(algebra.ErrInvalidElement, "nil element")
	}
	s, err := t.product.InsertAt(i, e.Set())
	if err != nil {
		return nil, err
	}
	elems := make([]algebra.Element, 0, len(t.elems)+1)
	elems = append(elems, t.elems[:i]...)
	elems = append(elems, e)
	elems = append(elems, t.elems[i:]...)
	return productOf(s).Tuple(elems...)
}

func productOf(s algebra.Set) *ProductSet {
	return s.(interface{ productSet() *ProductSet }).productSet()
}
