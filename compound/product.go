// Package compound builds direct products of algebraic structures. A
// product offers the richest structure all of its components support and
// operates on tuples component-wise.
package compound

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// ProductSet is the Cartesian product of a sequence of sets.
type ProductSet struct {
	key   string
	name  string
	opts  algebra.Options
	arity int
	order algebra.Order

	// Uniform products keep a single reference in base; the others keep
	// one entry per component in sets.
	base algebra.Set
	sets []algebra.Set

	// self is the richest structure built around this set. Tuples are
	// owned by it.
	self algebra.Set
}

// ProductSemiGroup is a product of semigroups.
type ProductSemiGroup struct {
	*ProductSet
}

// ProductMonoid is a product of monoids.
type ProductMonoid struct {
	*ProductSemiGroup
	identity *Tuple
}

// ProductGroup is a product of groups.
type ProductGroup struct {
	*ProductMonoid
}

// ProductCyclicGroup is a product of cyclic groups of finite, pairwise
// coprime orders, which is itself cyclic.
type ProductCyclicGroup struct {
	*ProductGroup
	generator *Tuple
}

// Product returns the product of sets in the default registry.
func Product(sets ...algebra.Set) (algebra.Set, error) {
	return ProductWithOptions(sets)
}

// ProductWithOptions returns the product of sets. The result is a
// *ProductCyclicGroup, *ProductGroup, *ProductMonoid, *ProductSemiGroup or
// *ProductSet, whichever is the richest structure every component supports.
// The empty product is the trivial group.
func ProductWithOptions(sets []algebra.Set, opts ...algebra.Option) (algebra.Set, error) {
	o := algebra.NewOptions(opts...)
	for i, s := range sets {
		if s == nil {
			return nil, errors.Wrapf(algebra.ErrInvalidParameter, "nil component at %d", i)
		}
	}

	key := productKey(sets)
	components := append([]algebra.Set(nil), sets...)
	return o.Registry.GetOrCreate(key, func() (algebra.Set, error) {
		return build(key, components, o), nil
	})
}

// Power returns the product of arity copies of s.
func Power(s algebra.Set, arity int, opts ...algebra.Option) (algebra.Set, error) {
	if s == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil set")
	}
	if arity < 0 {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "negative arity %d", arity)
	}
	sets := make([]algebra.Set, arity)
	for i := range sets {
		sets[i] = s
	}
	return ProductWithOptions(sets, opts...)
}

// ProductGroupOf returns the product of groups as a group.
func ProductGroupOf(groups ...algebra.Group) (*ProductGroup, error) {
	sets := make([]algebra.Set, len(groups))
	for i, g := range groups {
		if g == nil {
			return nil, errors.Wrapf(algebra.ErrInvalidParameter, "nil component at %d", i)
		}
		sets[i] = g
	}
	s, err := Product(sets...)
	if err != nil {
		return nil, err
	}
	switch p := s.(type) {
	case *ProductGroup:
		return p, nil
	case *ProductCyclicGroup:
		return p.ProductGroup, nil
	default:
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "%s is not a group", s)
	}
}

// ProductCyclicGroupOf returns the product of cyclic groups. It fails with
// ErrInvalidParameter unless the component orders are finite and pairwise
// coprime.
func ProductCyclicGroupOf(groups ...algebra.CyclicGroup) (*ProductCyclicGroup, error) {
	sets := make([]algebra.Set, len(groups))
	for i, g := range groups {
		if g == nil {
			return nil, errors.Wrapf(algebra.ErrInvalidParameter, "nil component at %d", i)
		}
		sets[i] = g
	}
	s, err := Product(sets...)
	if err != nil {
		return nil, err
	}
	p, ok := s.(*ProductCyclicGroup)
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "orders of %s are not pairwise coprime", s)
	}
	return p, nil
}

func isUniform(sets []algebra.Set) bool {
	if len(sets) == 0 {
		return false
	}
	for _, s := range sets[1:] {
		if !algebra.SameSet(sets[0], s) {
			return false
		}
	}
	return true
}

func productKey(sets []algebra.Set) string {
	if isUniform(sets) {
		return fmt.Sprintf("Power(%s,%d)", sets[0].Key(), len(sets))
	}
	keys := make([]string, len(sets))
	for i, s := range sets {
		keys[i] = s.Key()
	}
	return "Product(" + strings.Join(keys, ",") + ")"
}

func productName(sets []algebra.Set) string {
	switch {
	case len(sets) == 0:
		return "{()}"
	case isUniform(sets):
		return fmt.Sprintf("%s^%d", sets[0], len(sets))
	}
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.String()
	}
	return "(" + strings.Join(names, " x ") + ")"
}

// build wraps the components into the richest structure they support.
func build(key string, sets []algebra.Set, o algebra.Options) algebra.Set {
	p := &ProductSet{
		key:   key,
		name:  productName(sets),
		opts:  o,
		arity: len(sets),
		order: algebra.FiniteInt64(1),
	}
	if isUniform(sets) {
		p.base = sets[0]
	} else {
		p.sets = sets
	}
	for _, s := range sets {
		p.order = p.order.Mul(s.Order())
	}
	p.self = p

	for _, s := range sets {
		if _, ok := s.(algebra.SemiGroup); !ok {
			return p
		}
	}
	sg := &ProductSemiGroup{ProductSet: p}
	p.self = sg

	identities := make([]algebra.Element, len(sets))
	for i, s := range sets {
		m, ok := s.(algebra.Monoid)
		if !ok {
			return sg
		}
		identities[i] = m.Identity()
	}
	m := &ProductMonoid{ProductSemiGroup: sg}
	m.identity = p.newTuple(identities)
	p.self = m

	for _, s := range sets {
		if _, ok := s.(algebra.Group); !ok {
			return m
		}
	}
	g := &ProductGroup{ProductMonoid: m}
	p.self = g

	if !coprimeCyclic(sets) {
		return g
	}
	generators := make([]algebra.Element, len(sets))
	for i, s := range sets {
		generators[i] = s.(algebra.CyclicGroup).DefaultGenerator()
	}
	c := &ProductCyclicGroup{ProductGroup: g}
	c.generator = p.newTuple(generators)
	p.self = c
	return c
}

// coprimeCyclic reports whether every component is a cyclic group of
// finite order and the orders are pairwise coprime.
func coprimeCyclic(sets []algebra.Set) bool {
	orders := make([]*big.Int, len(sets))
	for i, s := range sets {
		if _, ok := s.(algebra.CyclicGroup); !ok {
			return false
		}
		if orders[i] = s.Order().Int(); orders[i] == nil {
			return false
		}
	}
	gcd := new(big.Int)
	for i := range orders {
		for j := i + 1; j < len(orders); j++ {
			if gcd.GCD(nil, nil, orders[i], orders[j]).Cmp(big.NewInt(1)) != 0 {
				return false
			}
		}
	}
	return true
}

func (p *ProductSet) productSet() *ProductSet { return p }

func (p *ProductSet) Key() string          { return p.key }
func (p *ProductSet) String() string       { return p.name }
func (p *ProductSet) Order() algebra.Order { return p.order }

// Arity returns the number of components.
func (p *ProductSet) Arity() int { return p.arity }

// IsUniform reports whether all components are the same set.
func (p *ProductSet) IsUniform() bool { return p.base != nil }

func (p *ProductSet) component(i int) algebra.Set {
	if p.base != nil {
		return p.base
	}
	return p.sets[i]
}

// At returns the i-th component.
func (p *ProductSet) At(i int) (algebra.Set, error) {
	if i < 0 || i >= p.arity {
		return nil, errors.Wrapf(algebra.ErrIndexOutOfRange, "%d for arity %d", i, p.arity)
	}
	return p.component(i), nil
}

// Components returns the component sets in order.
func (p *ProductSet) Components() []algebra.Set {
	sets := make([]algebra.Set, p.arity)
	for i := range sets {
		sets[i] = p.component(i)
	}
	return sets
}

// RemoveAt returns the product without the i-th component.
func (p *ProductSet) RemoveAt(i int) (algebra.Set, error) {
	if i < 0 || i >= p.arity {
		return nil, errors.Wrapf(algebra.ErrIndexOutOfRange, "%d for arity %d", i, p.arity)
	}
	sets := p.Components()
	return ProductWithOptions(append(sets[:i], sets[i+1:]...), p.opts.Apply()...)
}

// InsertAt returns the product with s inserted before the i-th component.
// i may equal the arity to append.
func (p *ProductSet) InsertAt(i int, s algebra.Set) (algebra.Set, error) {
	if i < 0 || i > p.arity {
		return nil, errors.Wrapf(algebra.ErrIndexOutOfRange, "%d for arity %d", i, p.arity)
	}
	if s == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil set")
	}
	current := p.Components()
	sets := make([]algebra.Set, 0, p.arity+1)
	sets = append(sets, current[:i]...)
	sets = append(sets, s)
	sets = append(sets, current[i:]...)
	return ProductWithOptions(sets, p.opts.Apply()...)
}

// Contains expects a []any holding one raw value per component.
func (p *ProductSet) Contains(value any) bool {
	values, ok := value.([]any)
	if !ok || len(values) != p.arity {
		return false
	}
	for i, v := range values {
		if !p.component(i).Contains(v) {
			return false
		}
	}
	return true
}

func (p *ProductSet) GetElement(value any) (algebra.Element, error) {
	if !p.Contains(value) {
		return nil, errors.Wrapf(algebra.ErrInvalidValue, "%v is not in %s", value, p)
	}
	values := value.([]any)
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.component(i).GetElement(values[i])
	})
}

// Tuple bundles one element of every component into an element of the
// product.
func (p *ProductSet) Tuple(elems ...algebra.Element) (*Tuple, error) {
	if len(elems) != p.arity {
		return nil, errors.Wrapf(algebra.ErrInvalidElement, "%d elements for arity %d", len(elems), p.arity)
	}
	for i, e := range elems {
		if err := algebra.Check(p.component(i), e); err != nil {
			return nil, err
		}
	}
	return p.newTuple(append([]algebra.Element(nil), elems...)), nil
}

func (p *ProductSet) RandomElement(rnd io.Reader) (algebra.Element, error) {
	if rnd == nil {
		return nil, algebra.ErrNilRandomness
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.component(i).RandomElement(rnd)
	})
}

func (p *ProductSet) IsMember(e algebra.Element) bool {
	return e != nil && e.Set() != nil && e.Set().Key() == p.key
}

func (p *ProductSet) Equal(other algebra.Set) bool {
	return other != nil && other.Key() == p.key
}

func (p *ProductSet) newTuple(elems []algebra.Element) *Tuple {
	return &Tuple{product: p, elems: elems}
}

func (p *ProductSet) mapComponents(f func(i int) (algebra.Element, error)) (algebra.Element, error) {
	elems := make([]algebra.Element, p.arity)
	for i := range elems {
		e, err := f(i)
		if err != nil {
			return nil, err
		}
		elems[i] = e
	}
	return p.newTuple(elems), nil
}

// tuples checks membership of every operand.
func (p *ProductSet) tuples(es ...algebra.Element) ([]*Tuple, error) {
	ts := make([]*Tuple, len(es))
	for i, e := range es {
		if err := algebra.Check(p, e); err != nil {
			return nil, err
		}
		t, ok := e.(*Tuple)
		if !ok {
			return nil, errors.Wrapf(algebra.ErrInvalidElement, "%T is not a tuple", e)
		}
		ts[i] = t
	}
	return ts, nil
}

func (p *ProductSemiGroup) semiGroup(i int) algebra.SemiGroup {
	return p.component(i).(algebra.SemiGroup)
}

func (p *ProductSemiGroup) Apply(a, b algebra.Element) (algebra.Element, error) {
	ts, err := p.tuples(a, b)
	if err != nil {
		return nil, err
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.semiGroup(i).Apply(ts[0].elems[i], ts[1].elems[i])
	})
}

// SelfApply scales every component by k. Capability errors of the
// components, such as a zero amount without identity, are returned as is.
func (p *ProductSemiGroup) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	ts, err := p.tuples(e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.Wrap(algebra.ErrInvalidParameter, "nil amount")
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.semiGroup(i).SelfApply(ts[0].elems[i], k)
	})
}

// MultiSelfApply runs the combination in every component.
func (p *ProductSemiGroup) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	if len(es) != len(ks) {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "%d elements and %d amounts", len(es), len(ks))
	}
	ts, err := p.tuples(es...)
	if err != nil {
		return nil, err
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		column := make([]algebra.Element, len(ts))
		for j, t := range ts {
			column[j] = t.elems[i]
		}
		return p.semiGroup(i).MultiSelfApply(column, ks)
	})
}

func (p *ProductSemiGroup) IsCommutative() bool {
	for i := 0; i < p.arity; i++ {
		if !p.semiGroup(i).IsCommutative() {
			return false
		}
	}
	return true
}

func (p *ProductMonoid) Identity() algebra.Element { return p.identity }

func (p *ProductMonoid) IsIdentity(e algebra.Element) bool { return p.identity.Equal(e) }

func (p *ProductGroup) group(i int) algebra.Group {
	return p.component(i).(algebra.Group)
}

func (p *ProductGroup) Invert(e algebra.Element) (algebra.Element, error) {
	ts, err := p.tuples(e)
	if err != nil {
		return nil, err
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.group(i).Invert(ts[0].elems[i])
	})
}

func (p *ProductGroup) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	ts, err := p.tuples(a, b)
	if err != nil {
		return nil, err
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.group(i).ApplyInverse(ts[0].elems[i], ts[1].elems[i])
	})
}

func (p *ProductCyclicGroup) cyclic(i int) algebra.CyclicGroup {
	return p.component(i).(algebra.CyclicGroup)
}

// DefaultGenerator is the tuple of the component default generators.
func (p *ProductCyclicGroup) DefaultGenerator() algebra.Element { return p.generator }

// RandomGenerator draws a random generator in every component. Since the
// orders are coprime the tuple generates the product.
func (p *ProductCyclicGroup) RandomGenerator(rnd io.Reader) (algebra.Element, error) {
	if rnd == nil {
		return nil, algebra.ErrNilRandomness
	}
	return p.mapComponents(func(i int) (algebra.Element, error) {
		return p.cyclic(i).RandomGenerator(rnd)
	})
}

func (p *ProductCyclicGroup) IsGenerator(e algebra.Element) (bool, error) {
	ts, err := p.tuples(e)
	if err != nil {
		return false, err
	}
	for i := 0; i < p.arity; i++ {
		ok, err := p.cyclic(i).IsGenerator(ts[0].elems[i])
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
