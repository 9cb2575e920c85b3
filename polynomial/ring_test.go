package polynomial

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takakv/msc-algebra/algebra"
	"github.com/takakv/msc-algebra/group"
	"github.com/takakv/msc-algebra/internal/prng"
)

func polyOver(t *testing.T, p int64) (*PolynomialRing, *group.ZModPrime) {
	f, err := group.NewZModPrimeInt64(p)
	require.NoError(t, err)
	P, err := NewPolynomialRing(f)
	require.NoError(t, err)
	return P, f
}

func mustPoly(t *testing.T, P *PolynomialRing, coeffs ...int) *Polynomial {
	vs := make([]any, len(coeffs))
	for i, c := range coeffs {
		vs[i] = c
	}
	e, err := P.GetElement(vs)
	require.NoError(t, err)
	return e.(*Polynomial)
}

func TestPolynomialArithmetic(t *testing.T) {
	t.Parallel()

	P, f := polyOver(t, 7)
	a := mustPoly(t, P, 1, 2)    // 1 + 2x
	b := mustPoly(t, P, 6, 0, 3) // 6 + 3x^2

	sum, err := P.Add(a, b)
	require.NoError(t, err)
	assert.True(t, sum.Equal(mustPoly(t, P, 0, 2, 3)))

	prod, err := P.Multiply(a, b)
	require.NoError(t, err)
	// 6 + 12x + 3x^2 + 6x^3 = 6 + 5x + 3x^2 + 6x^3 mod 7
	assert.True(t, prod.Equal(mustPoly(t, P, 6, 5, 3, 6)), "%s", prod)
	assert.Equal(t, 3, prod.(*Polynomial).Degree())

	diff, err := P.Subtract(a, a)
	require.NoError(t, err)
	assert.True(t, P.IsIdentity(diff))
	assert.Equal(t, -1, diff.(*Polynomial).Degree())
	assert.Empty(t, diff.Value())

	sq, err := P.Power(a, big.NewInt(2))
	require.NoError(t, err)
	assert.True(t, sq.Equal(mustPoly(t, P, 1, 4, 4)))

	x, err := f.GetElement(3)
	require.NoError(t, err)
	y, err := P.Evaluate(b, x)
	require.NoError(t, err)
	// 6 + 27 = 33 = 5 mod 7
	assert.True(t, y.Equal(f.ElementOf(5)))

	scaled, err := P.SelfApply(a, big.NewInt(-1))
	require.NoError(t, err)
	assert.True(t, scaled.Equal(mustPoly(t, P, 6, 5)))
}

func TestPolynomialTrimAndValue(t *testing.T) {
	t.Parallel()

	P, f := polyOver(t, 7)
	p, err := P.NewPolynomial(f.ElementOf(3), f.Zero(), f.Zero())
	require.NoError(t, err)
	assert.Equal(t, 0, p.Degree())
	vs := p.Value().([]any)
	require.Len(t, vs, 1)
	assert.Equal(t, int64(3), vs[0].(*big.Int).Int64())

	back, err := P.GetElement(p.Value())
	require.NoError(t, err)
	assert.True(t, back.Equal(p))

	assert.False(t, P.Contains([]any{5, 0}))
	assert.False(t, P.Contains([]any{7}))
	assert.False(t, P.Contains(3))
	_, err = P.GetElement([]any{1, "x"})
	assert.ErrorIs(t, err, algebra.ErrInvalidValue)
	assert.Equal(t, "2x^2 + 1", mustPoly(t, P, 1, 0, 2).String())
}

func TestPolynomialValueRoundTrip(t *testing.T) {
	t.Parallel()

	P, _ := polyOver(t, 7)
	values := [][]any{
		{},
		{big.NewInt(5)},
		{big.NewInt(0), big.NewInt(1)},
		{big.NewInt(1), big.NewInt(0), big.NewInt(6)},
	}
	for _, v := range values {
		require.True(t, P.Contains(v), "%v", v)
		e, err := P.GetElement(v)
		require.NoError(t, err)
		assert.Equal(t, v, e.Value(), "%v", v)
	}

	for _, v := range [][]any{{5, 0}, {0}, {1, 2, 7}} {
		assert.False(t, P.Contains(v), "%v", v)
		_, err := P.GetElement(v)
		assert.ErrorIs(t, err, algebra.ErrInvalidValue, "%v", v)
	}
}

func TestPolynomialUnits(t *testing.T) {
	t.Parallel()

	P, f := polyOver(t, 7)

	c := mustPoly(t, P, 3)
	inv, err := P.MultiplicativeInverse(c)
	require.NoError(t, err)
	assert.True(t, inv.Equal(mustPoly(t, P, 5)))

	_, err = P.MultiplicativeInverse(mustPoly(t, P, 1, 1))
	assert.ErrorIs(t, err, algebra.ErrNotInvertible)
	_, err = P.Power(P.Zero(), big.NewInt(-1))
	assert.ErrorIs(t, err, algebra.ErrNotInvertible)

	r, err := P.Power(c, big.NewInt(-2))
	require.NoError(t, err)
	// 3^-2 = 9^-1 = 2^-1 = 4 mod 7
	assert.True(t, r.Equal(mustPoly(t, P, 4)))

	other, err := group.NewZModInt64(5)
	require.NoError(t, err)
	_, err = P.NewPolynomial(f.ElementOf(1), other.ElementOf(1))
	assert.ErrorIs(t, err, algebra.ErrInvalidElement)
}

func TestPolynomialRandom(t *testing.T) {
	t.Parallel()

	P, _ := polyOver(t, 101)
	rnd := prng.NewString("polynomial")

	_, err := P.RandomElement(rnd)
	assert.ErrorIs(t, err, algebra.ErrUnsupportedOperation)
	_, err = P.RandomPolynomial(rnd, -1)
	assert.ErrorIs(t, err, algebra.ErrInvalidParameter)

	for i := 0; i < 20; i++ {
		a, err := P.RandomPolynomial(rnd, 5)
		require.NoError(t, err)
		b, err := P.RandomPolynomial(rnd, 3)
		require.NoError(t, err)
		c, err := P.RandomPolynomial(rnd, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, a.Degree(), 5)

		// a(b + c) = ab + ac
		bc, err := P.Add(b, c)
		require.NoError(t, err)
		l, err := P.Multiply(a, bc)
		require.NoError(t, err)
		ab, err := P.Multiply(a, b)
		require.NoError(t, err)
		ac, err := P.Multiply(a, c)
		require.NoError(t, err)
		r, err := P.Add(ab, ac)
		require.NoError(t, err)
		assert.True(t, l.Equal(r))

		m, err := P.MultiSelfApply([]algebra.Element{a, b}, []*big.Int{big.NewInt(2), big.NewInt(-1)})
		require.NoError(t, err)
		a2, err := P.Add(a, a)
		require.NoError(t, err)
		want, err := P.Subtract(a2, b)
		require.NoError(t, err)
		assert.True(t, m.Equal(want))
	}
}

func TestPolynomialOverBinaryField(t *testing.T) {
	t.Parallel()

	F, err := NewBinaryField(big.NewInt(0b1011))
	require.NoError(t, err)
	P, err := NewPolynomialRing(F)
	require.NoError(t, err)
	assert.Equal(t, "GF(2^3)[x]", P.String())

	// (x + 1)^2 = x^2 + 1 in characteristic 2.
	p := mustPoly(t, P, 1, 1)
	sq, err := P.Multiply(p, p)
	require.NoError(t, err)
	assert.True(t, sq.Equal(mustPoly(t, P, 1, 0, 1)))
}
