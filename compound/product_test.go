package compound

import (
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takakv/msc-algebra/algebra"
	"github.com/takakv/msc-algebra/group"
	"github.com/takakv/msc-algebra/internal/prng"
)

func mustZMod(t *testing.T, n int64) *group.ZMod {
	z, err := group.NewZModInt64(n)
	require.NoError(t, err)
	return z
}

func mustProduct(t *testing.T, sets ...algebra.Set) algebra.Set {
	s, err := Product(sets...)
	require.NoError(t, err)
	return s
}

// palette is a finite set without any operation.
type palette struct{}

type colour struct {
	name string
}

var colours = []string{"red", "green", "blue"}

func (palette) Key() string          { return "Palette" }
func (palette) String() string       { return "Palette" }
func (palette) Order() algebra.Order { return algebra.FiniteInt64(int64(len(colours))) }

func (palette) Contains(value any) bool {
	name, ok := value.(string)
	if !ok {
		return false
	}
	for _, c := range colours {
		if c == name {
			return true
		}
	}
	return false
}

func (p palette) GetElement(value any) (algebra.Element, error) {
	if !p.Contains(value) {
		return nil, algebra.ErrInvalidValue
	}
	return colour{name: value.(string)}, nil
}

func (palette) RandomElement(rnd io.Reader) (algebra.Element, error) {
	i, err := algebra.RandomInt(rnd, big.NewInt(int64(len(colours))))
	if err != nil {
		return nil, err
	}
	return colour{name: colours[i.Int64()]}, nil
}

func (palette) IsMember(e algebra.Element) bool {
	_, ok := e.(colour)
	return ok
}

func (palette) Equal(other algebra.Set) bool {
	_, ok := other.(palette)
	return ok
}

func (colour) Set() algebra.Set { return palette{} }
func (c colour) Value() any     { return c.name }
func (c colour) String() string { return c.name }

func (c colour) Equal(x algebra.Element) bool {
	o, ok := x.(colour)
	return ok && o == c
}

func TestProductOrder(t *testing.T) {
	a, b := mustZMod(t, 23), mustZMod(t, 11)
	p, ok := mustProduct(t, a, b).(*ProductCyclicGroup)
	require.True(t, ok)
	assert.Equal(t, int64(253), p.Order().Int().Int64())

	rnd := prng.NewString("product/order")
	for i := 0; i < 1000; i++ {
		e, err := p.RandomElement(rnd)
		require.NoError(t, err)
		tup := e.(*Tuple)
		x, err := tup.At(0)
		require.NoError(t, err)
		y, err := tup.At(1)
		require.NoError(t, err)
		assert.True(t, a.IsMember(x))
		assert.True(t, b.IsMember(y))
		assert.True(t, p.Contains(e.Value()))
	}
}

func TestOrderKinds(t *testing.T) {
	z, err := group.NewZ()
	require.NoError(t, err)
	units, err := group.NewZModStar(big.NewInt(35))
	require.NoError(t, err)

	assert.True(t, mustProduct(t, z, mustZMod(t, 5)).Order().IsInfinite())
	assert.True(t, mustProduct(t, units, mustZMod(t, 5)).Order().IsUnknown())
	assert.True(t, mustProduct(t, units, z).Order().IsInfinite())
}

func TestRichestStructure(t *testing.T) {
	z, err := group.NewZ()
	require.NoError(t, err)
	units, err := group.NewZModStar(big.NewInt(35), big.NewInt(5), big.NewInt(7))
	require.NoError(t, err)
	field, err := group.NewZModPrimeInt64(101)
	require.NoError(t, err)

	tests := []struct {
		name string
		sets []algebra.Set
		want any
	}{
		{"coprime cyclic", []algebra.Set{mustZMod(t, 23), mustZMod(t, 11)}, &ProductCyclicGroup{}},
		{"common factor", []algebra.Set{mustZMod(t, 12), mustZMod(t, 18)}, &ProductGroup{}},
		{"uniform", []algebra.Set{mustZMod(t, 23), mustZMod(t, 23)}, &ProductGroup{}},
		{"single cyclic", []algebra.Set{mustZMod(t, 23)}, &ProductCyclicGroup{}},
		{"non-cyclic component", []algebra.Set{units, mustZMod(t, 23)}, &ProductGroup{}},
		{"infinite component", []algebra.Set{z, mustZMod(t, 23)}, &ProductGroup{}},
		{"monoid component", []algebra.Set{field.Multiplicative(), mustZMod(t, 23)}, &ProductMonoid{}},
		{"plain set", []algebra.Set{palette{}, mustZMod(t, 23)}, &ProductSet{}},
		{"empty", nil, &ProductCyclicGroup{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustProduct(t, tt.sets...)
			assert.IsType(t, tt.want, s)
			assert.Equal(t, len(tt.sets), productOf(s).Arity())
		})
	}
}

func TestUniformKey(t *testing.T) {
	z := mustZMod(t, 23)
	p, err := Power(z, 3)
	require.NoError(t, err)
	assert.Equal(t, "Power("+z.Key()+",3)", p.Key())
	assert.Same(t, p, mustProduct(t, z, z, z))
	assert.True(t, productOf(p).IsUniform())
	assert.False(t, productOf(mustProduct(t, z, mustZMod(t, 11))).IsUniform())

	_, err = Power(z, -1)
	assert.ErrorIs(t, err, algebra.ErrInvalidParameter)
	_, err = Product(z, nil)
	assert.ErrorIs(t, err, algebra.ErrInvalidParameter)
}

func TestAt(t *testing.T) {
	a, b := mustZMod(t, 23), mustZMod(t, 11)
	p := productOf(mustProduct(t, a, b))

	s, err := p.At(1)
	require.NoError(t, err)
	assert.Same(t, b, s)
	for _, i := range []int{-1, 2} {
		_, err = p.At(i)
		assert.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
		_, err = p.RemoveAt(i)
		assert.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
	}
	_, err = p.InsertAt(3, a)
	assert.ErrorIs(t, err, algebra.ErrIndexOutOfRange)

	tup, err := p.Tuple(a.ElementOf(1), b.ElementOf(2))
	require.NoError(t, err)
	_, err = tup.At(2)
	assert.ErrorIs(t, err, algebra.ErrIndexOutOfRange)
}

func TestRemoveInsertRoundTrip(t *testing.T) {
	sets := []algebra.Set{mustZMod(t, 23), mustZMod(t, 11), mustZMod(t, 7)}
	p := mustProduct(t, sets...)
	ps := productOf(p)

	rnd := prng.NewString("product/roundtrip")
	for n := 0; n < 16; n++ {
		e, err := p.RandomElement(rnd)
		require.NoError(t, err)
		tup := e.(*Tuple)

		for i := range sets {
			ei, err := tup.At(i)
			require.NoError(t, err)

			removed, err := tup.RemoveAt(i)
			require.NoError(t, err)
			assert.Equal(t, len(sets)-1, removed.Arity())

			restored, err := removed.InsertAt(i, ei)
			require.NoError(t, err)
			assert.True(t, restored.Equal(tup), "%s at %d", tup, i)
		}
	}

	for i, s := range sets {
		removed, err := ps.RemoveAt(i)
		require.NoError(t, err)
		restored, err := productOf(removed).InsertAt(i, s)
		require.NoError(t, err)
		assert.Same(t, p, restored)
	}
}

func TestComponentwise(t *testing.T) {
	a, b := mustZMod(t, 23), mustZMod(t, 11)
	p, ok := mustProduct(t, a, b).(*ProductCyclicGroup)
	require.True(t, ok)

	x, err := p.Tuple(a.ElementOf(5), b.ElementOf(3))
	require.NoError(t, err)
	y, err := p.Tuple(a.ElementOf(20), b.ElementOf(10))
	require.NoError(t, err)

	sum, err := p.Apply(x, y)
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(2), big.NewInt(2)}, sum.Value())

	diff, err := p.ApplyInverse(sum, y)
	require.NoError(t, err)
	assert.True(t, diff.Equal(x))

	neg, err := p.Invert(x)
	require.NoError(t, err)
	zero, err := p.Apply(x, neg)
	require.NoError(t, err)
	assert.True(t, p.IsIdentity(zero))
	assert.True(t, p.IsCommutative())

	k := big.NewInt(7)
	scaled, err := p.SelfApply(x, k)
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(12), big.NewInt(10)}, scaled.Value())
	negScaled, err := p.SelfApply(x, new(big.Int).Neg(k))
	require.NoError(t, err)
	inv, err := p.Invert(scaled)
	require.NoError(t, err)
	assert.True(t, negScaled.Equal(inv))

	combined, err := p.MultiSelfApply([]algebra.Element{x, y}, []*big.Int{big.NewInt(3), big.NewInt(-2)})
	require.NoError(t, err)
	x3, err := p.SelfApply(x, big.NewInt(3))
	require.NoError(t, err)
	y2, err := p.SelfApply(y, big.NewInt(-2))
	require.NoError(t, err)
	want, err := p.Apply(x3, y2)
	require.NoError(t, err)
	assert.True(t, combined.Equal(want))

	empty, err := p.MultiSelfApply(nil, nil)
	require.NoError(t, err)
	assert.True(t, p.IsIdentity(empty))
	_, err = p.MultiSelfApply([]algebra.Element{x}, nil)
	assert.ErrorIs(t, err, algebra.ErrInvalidParameter)
}

func TestGenerators(t *testing.T) {
	a, b := mustZMod(t, 23), mustZMod(t, 11)
	p, err := ProductCyclicGroupOf(a, b)
	require.NoError(t, err)

	g := p.DefaultGenerator()
	ok, err := p.IsGenerator(g)
	require.NoError(t, err)
	assert.True(t, ok)

	for _, d := range []int64{1, 11, 23} {
		gd, err := p.SelfApply(g, big.NewInt(d))
		require.NoError(t, err)
		assert.False(t, p.IsIdentity(gd), "g^%d", d)
	}

	rnd := prng.NewString("product/generators")
	for i := 0; i < 8; i++ {
		r, err := p.RandomGenerator(rnd)
		require.NoError(t, err)
		ok, err := p.IsGenerator(r)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	partial, err := p.Tuple(a.ElementOf(0), b.ElementOf(1))
	require.NoError(t, err)
	ok, err = p.IsGenerator(partial)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTypedHelpers(t *testing.T) {
	a, b := mustZMod(t, 12), mustZMod(t, 18)
	_, err := ProductCyclicGroupOf(a, b)
	assert.ErrorIs(t, err, algebra.ErrInvalidParameter)

	g, err := ProductGroupOf(a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(216), g.Order().Int().Int64())

	c, err := ProductGroupOf(mustZMod(t, 23), mustZMod(t, 11))
	require.NoError(t, err)
	assert.IsType(t, &ProductCyclicGroup{}, c.Identity().Set())
}

func TestTupleValidation(t *testing.T) {
	a, b := mustZMod(t, 23), mustZMod(t, 11)
	p, err := ProductGroupOf(a, b)
	require.NoError(t, err)
	other, err := ProductGroupOf(b, a)
	require.NoError(t, err)

	_, err = p.Tuple(a.ElementOf(1))
	assert.ErrorIs(t, err, algebra.ErrInvalidElement)
	_, err = p.Tuple(b.ElementOf(1), a.ElementOf(1))
	assert.ErrorIs(t, err, algebra.ErrInvalidElement)

	x, err := p.Tuple(a.ElementOf(1), b.ElementOf(1))
	require.NoError(t, err)
	y, err := other.Tuple(b.ElementOf(1), a.ElementOf(1))
	require.NoError(t, err)
	_, err = p.Apply(x, y)
	assert.ErrorIs(t, err, algebra.ErrInvalidElement)
	assert.False(t, x.Equal(y))
	_, err = p.Apply(x, a.ElementOf(1))
	assert.ErrorIs(t, err, algebra.ErrInvalidElement)

	assert.False(t, p.Contains([]any{1}))
	assert.False(t, p.Contains([]any{1, 11}))
	assert.False(t, p.Contains([]int{1, 2}))
	_, err = p.GetElement([]any{23, 0})
	assert.ErrorIs(t, err, algebra.ErrInvalidValue)

	e, err := p.GetElement([]any{22, 10})
	require.NoError(t, err)
	assert.Equal(t, "(22, 10)", e.String())
}

func TestNestedValue(t *testing.T) {
	a, b, c := mustZMod(t, 23), mustZMod(t, 11), mustZMod(t, 7)
	inner := mustProduct(t, a, b)
	outer := mustProduct(t, inner, c)

	value := []any{[]any{big.NewInt(4), big.NewInt(5)}, big.NewInt(6)}
	require.True(t, outer.Contains(value))
	e, err := outer.GetElement(value)
	require.NoError(t, err)
	assert.Equal(t, value, e.Value())

	first, err := e.(*Tuple).At(0)
	require.NoError(t, err)
	assert.Same(t, inner, first.Set())

	rnd := prng.NewString("product/nested")
	for i := 0; i < 32; i++ {
		r, err := outer.RandomElement(rnd)
		require.NoError(t, err)
		back, err := outer.GetElement(r.Value())
		require.NoError(t, err)
		assert.True(t, back.Equal(r))
	}
}

func TestTrivialProduct(t *testing.T) {
	p, ok := mustProduct(t).(*ProductCyclicGroup)
	require.True(t, ok)
	assert.Equal(t, 0, p.Arity())
	assert.Equal(t, int64(1), p.Order().Int().Int64())
	assert.Equal(t, []any{}, p.Identity().Value())

	ok, err := p.IsGenerator(p.Identity())
	require.NoError(t, err)
	assert.True(t, ok)

	z := mustZMod(t, 5)
	q, err := Power(z, 0)
	require.NoError(t, err)
	assert.Same(t, p, q)
}

func TestPlainSetProduct(t *testing.T) {
	z := mustZMod(t, 5)
	s := mustProduct(t, palette{}, z)
	_, isSemiGroup := s.(algebra.SemiGroup)
	assert.False(t, isSemiGroup)

	e, err := s.GetElement([]any{"green", 3})
	require.NoError(t, err)
	assert.Equal(t, []any{"green", big.NewInt(3)}, e.Value())
	assert.False(t, s.Contains([]any{"purple", 3}))

	rnd := prng.NewString("product/palette")
	for i := 0; i < 16; i++ {
		r, err := s.RandomElement(rnd)
		require.NoError(t, err)
		assert.True(t, s.Contains(r.Value()))
	}
	_, err = s.RandomElement(nil)
	assert.ErrorIs(t, err, algebra.ErrNilRandomness)
}

func TestMonoidProduct(t *testing.T) {
	field, err := group.NewZModPrimeInt64(101)
	require.NoError(t, err)
	mul := field.Multiplicative()
	m, ok := mustProduct(t, mul, mustZMod(t, 23)).(*ProductMonoid)
	require.True(t, ok)

	assert.Equal(t, []any{big.NewInt(1), big.NewInt(0)}, m.Identity().Value())

	x, err := m.GetElement([]any{3, 4})
	require.NoError(t, err)
	sq, err := m.SelfApply(x, big.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, []any{big.NewInt(9), big.NewInt(8)}, sq.Value())

	id, err := m.SelfApply(x, big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, m.IsIdentity(id))

	_, err = m.SelfApply(x, big.NewInt(-1))
	assert.ErrorIs(t, err, algebra.ErrUnsupportedOperation)
	_, err = m.MultiSelfApply([]algebra.Element{x}, []*big.Int{big.NewInt(-1)})
	assert.ErrorIs(t, err, algebra.ErrUnsupportedOperation)
}

func TestSeparateRegistry(t *testing.T) {
	reg := algebra.NewRegistry()
	a, err := group.NewZModInt64(23, algebra.WithRegistry(reg))
	require.NoError(t, err)

	p, err := ProductWithOptions([]algebra.Set{a, a}, algebra.WithRegistry(reg))
	require.NoError(t, err)
	q, err := productOf(p).RemoveAt(0)
	require.NoError(t, err)

	s, ok := reg.Lookup(q.Key())
	require.True(t, ok)
	assert.Same(t, q, s)
	assert.Equal(t, 3, reg.Len())
}
