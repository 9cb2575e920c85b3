package algebra

import (
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naturals is the additive semigroup of integers >= min. With min = 0 it
// is a monoid, with min = 1 it has no identity.
type naturals struct {
	min int64
}

func (n *naturals) Key() string    { return big.NewInt(n.min).String() + "+N" }
func (n *naturals) String() string { return n.Key() }
func (n *naturals) Order() Order   { return Infinite }

func (n *naturals) Contains(value any) bool {
	v := IntValue(value)
	return v != nil && v.Cmp(big.NewInt(n.min)) >= 0
}

func (n *naturals) GetElement(value any) (Element, error) {
	if !n.Contains(value) {
		return nil, ErrInvalidValue
	}
	return NewIntElement(n, IntValue(value)), nil
}

func (n *naturals) RandomElement(io.Reader) (Element, error) {
	return nil, ErrUnsupportedOperation
}

func (n *naturals) IsMember(e Element) bool { return Owns(n, e) }
func (n *naturals) Equal(o Set) bool        { return SameSet(n, o) }

func (n *naturals) Apply(a, b Element) (Element, error) {
	if err := Check(n, a, b); err != nil {
		return nil, err
	}
	return NewIntElement(n, new(big.Int).Add(a.(*IntElement).Raw(), b.(*IntElement).Raw())), nil
}

func (n *naturals) SelfApply(e Element, k *big.Int) (Element, error) { return SelfApply(n, e, k) }

func (n *naturals) MultiSelfApply(es []Element, ks []*big.Int) (Element, error) {
	return MultiSelfApply(n, es, ks)
}

func (n *naturals) IsCommutative() bool { return true }

type naturalsWithZero struct {
	naturals
}

func (n *naturalsWithZero) Identity() Element { return NewIntElement(n, big.NewInt(0)) }

func (n *naturalsWithZero) IsIdentity(e Element) bool { return n.Identity().Equal(e) }

func (n *naturalsWithZero) SelfApply(e Element, k *big.Int) (Element, error) {
	return SelfApply(n, e, k)
}

func (n *naturalsWithZero) MultiSelfApply(es []Element, ks []*big.Int) (Element, error) {
	return MultiSelfApply(n, es, ks)
}

func (n *naturalsWithZero) Apply(a, b Element) (Element, error) {
	if err := Check(n, a, b); err != nil {
		return nil, err
	}
	return NewIntElement(n, new(big.Int).Add(a.(*IntElement).Raw(), b.(*IntElement).Raw())), nil
}

func (n *naturalsWithZero) IsMember(e Element) bool { return Owns(n, e) }

func TestSelfApplySquareAndMultiply(t *testing.T) {
	t.Parallel()

	s := &naturals{min: 1}
	e, err := s.GetElement(3)
	require.NoError(t, err)

	for _, k := range []int64{1, 2, 3, 5, 8, 13, 255, 256, 1000} {
		r, err := SelfApply(s, e, big.NewInt(k))
		require.NoError(t, err)
		assert.Equal(t, 3*k, r.(*IntElement).Int().Int64(), "k=%d", k)
	}
}

func TestSelfApplyCapabilities(t *testing.T) {
	t.Parallel()

	semi := &naturals{min: 1}
	e, err := semi.GetElement(2)
	require.NoError(t, err)

	_, err = SelfApply(semi, e, big.NewInt(0))
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	_, err = SelfApply(semi, e, big.NewInt(-1))
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	_, err = SelfApply(semi, e, nil)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	mon := &naturalsWithZero{naturals{min: 0}}
	m, err := mon.GetElement(2)
	require.NoError(t, err)
	// GetElement of the embedded naturals binds to the inner set.
	m = NewIntElement(mon, m.(*IntElement).Raw())

	r, err := SelfApply(mon, m, big.NewInt(0))
	require.NoError(t, err)
	assert.True(t, mon.IsIdentity(r))
	_, err = SelfApply(mon, m, big.NewInt(-3))
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = SelfApply(mon, e, big.NewInt(2))
	assert.ErrorIs(t, err, ErrInvalidElement)
}

func TestMultiSelfApplyMatchesSequential(t *testing.T) {
	t.Parallel()

	s := &naturals{min: 1}
	es := make([]Element, 4)
	for i := range es {
		e, err := s.GetElement(int64(i*7 + 1))
		require.NoError(t, err)
		es[i] = e
	}
	ks := []*big.Int{big.NewInt(3), big.NewInt(100), big.NewInt(1), big.NewInt(77)}

	got, err := MultiSelfApply(s, es, ks)
	require.NoError(t, err)

	want := int64(0)
	for i, e := range es {
		want += e.(*IntElement).Int().Int64() * ks[i].Int64()
	}
	assert.Equal(t, want, got.(*IntElement).Int().Int64())

	_, err = MultiSelfApply(s, es, ks[:2])
	assert.ErrorIs(t, err, ErrInvalidParameter)

	// All amounts zero: a semigroup has nothing to return.
	_, err = MultiSelfApply(s, es[:1], []*big.Int{big.NewInt(0)})
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	mon := &naturalsWithZero{naturals{min: 0}}
	r, err := MultiSelfApply(mon, nil, nil)
	require.NoError(t, err)
	assert.True(t, mon.IsIdentity(r))
}
