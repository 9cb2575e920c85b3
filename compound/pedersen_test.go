package compound_test

import (
	"io"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takakv/msc-algebra/algebra"
	"github.com/takakv/msc-algebra/compound"
	"github.com/takakv/msc-algebra/group"
	"github.com/takakv/msc-algebra/internal/prng"
)

// pedersenCommit creates a commitment to x using randomness r: g^x * h^r.
func pedersenCommit(G algebra.CyclicGroup, h algebra.Element, x, r *big.Int) (algebra.Element, error) {
	return G.MultiSelfApply([]algebra.Element{G.DefaultGenerator(), h}, []*big.Int{x, r})
}

func randomScalars(t *testing.T, G *group.GStarMod, rnd io.Reader, n int) []*big.Int {
	ks := make([]*big.Int, n)
	for i := range ks {
		k, err := algebra.RandomInt(rnd, G.N())
		require.NoError(t, err)
		ks[i] = k
	}
	return ks
}

func TestPedersenBatch(t *testing.T) {
	const n = 4

	G, err := group.NewGStarModSafePrimeInt64(1019)
	require.NoError(t, err)
	rnd := prng.NewString("pedersen")
	h, err := G.RandomGenerator(rnd)
	require.NoError(t, err)

	s, err := compound.Power(G, n)
	require.NoError(t, err)
	batch, ok := s.(*compound.ProductGroup)
	require.True(t, ok)

	commitAll := func(xs, rs []*big.Int) algebra.Element {
		cs := make([]algebra.Element, n)
		for i := range cs {
			c, err := pedersenCommit(G, h, xs[i], rs[i])
			require.NoError(t, err)
			cs[i] = c
		}
		tup, err := batch.Tuple(cs...)
		require.NoError(t, err)
		return tup
	}
	combine := func(a, b []*big.Int, ka, kb int64) []*big.Int {
		out := make([]*big.Int, n)
		for i := range out {
			x := new(big.Int).Mul(a[i], big.NewInt(ka))
			out[i] = x.Add(x, new(big.Int).Mul(b[i], big.NewInt(kb)))
		}
		return out
	}

	xs1, rs1 := randomScalars(t, G, rnd, n), randomScalars(t, G, rnd, n)
	xs2, rs2 := randomScalars(t, G, rnd, n), randomScalars(t, G, rnd, n)
	c1, c2 := commitAll(xs1, rs1), commitAll(xs2, rs2)

	t.Run("Homomorphic", func(t *testing.T) {
		sum, err := batch.Apply(c1, c2)
		require.NoError(t, err)
		assert.True(t, sum.Equal(commitAll(combine(xs1, xs2, 1, 1), combine(rs1, rs2, 1, 1))))
	})

	t.Run("Combination", func(t *testing.T) {
		lin, err := batch.MultiSelfApply([]algebra.Element{c1, c2}, []*big.Int{big.NewInt(2), big.NewInt(-3)})
		require.NoError(t, err)
		assert.True(t, lin.Equal(commitAll(combine(xs1, xs2, 2, -3), combine(rs1, rs2, 2, -3))))
	})

	t.Run("Binding", func(t *testing.T) {
		xs := append([]*big.Int(nil), xs1...)
		xs[2] = new(big.Int).Add(xs[2], big.NewInt(1))
		assert.False(t, commitAll(xs, rs1).Equal(c1))
	})

	t.Run("Opening", func(t *testing.T) {
		tup := c1.(*compound.Tuple)
		for i := 0; i < n; i++ {
			ci, err := tup.At(i)
			require.NoError(t, err)
			want, err := pedersenCommit(G, h, xs1[i], rs1[i])
			require.NoError(t, err)
			assert.True(t, ci.Equal(want))
		}
	})
}
