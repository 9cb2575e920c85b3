package compound_test

import (
	"math/big"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takakv/msc-algebra/algebra"
	"github.com/takakv/msc-algebra/compound"
	"github.com/takakv/msc-algebra/group"
	"github.com/takakv/msc-algebra/internal/prng"
)

func TestProduct(t *testing.T) {
	spec.Run(t, "Product", func(t *testing.T, when spec.G, it spec.S) {
		var (
			reg     *algebra.Registry
			a, b, c *group.ZMod
			p       algebra.Set
		)

		it.Before(func() {
			var err error
			reg = algebra.NewRegistry()
			opt := algebra.WithRegistry(reg)
			a, err = group.NewZModInt64(23, opt)
			require.NoError(t, err)
			b, err = group.NewZModInt64(11, opt)
			require.NoError(t, err)
			c, err = group.NewZModInt64(9, opt)
			require.NoError(t, err)
			p, err = compound.ProductWithOptions([]algebra.Set{a, b, c}, opt)
			require.NoError(t, err)
		})

		when("component orders are pairwise coprime", func() {
			it("is a cyclic group", func() {
				assert.IsType(t, &compound.ProductCyclicGroup{}, p)
			})

			it("has the product of the orders", func() {
				assert.Equal(t, big.NewInt(23*11*9), p.Order().Int())
			})

			it("is generated by the tuple of generators", func() {
				g := p.(*compound.ProductCyclicGroup).DefaultGenerator()
				assert.Equal(t, []any{big.NewInt(1), big.NewInt(1), big.NewInt(1)}, g.Value())
			})
		})

		when("a component is removed", func() {
			it("keeps the remaining components in order", func() {
				s, err := p.(*compound.ProductCyclicGroup).RemoveAt(1)
				require.NoError(t, err)
				q := s.(*compound.ProductCyclicGroup)
				assert.Equal(t, 2, q.Arity())
				assert.Equal(t, []algebra.Set{a, c}, q.Components())
			})

			it("is restored by inserting it back", func() {
				s, err := p.(*compound.ProductCyclicGroup).RemoveAt(1)
				require.NoError(t, err)
				back, err := s.(*compound.ProductCyclicGroup).InsertAt(1, b)
				require.NoError(t, err)
				assert.Same(t, p, back)
			})
		})

		when("a component repeats", func() {
			it("becomes a uniform power", func() {
				s, err := p.(*compound.ProductCyclicGroup).InsertAt(0, c)
				require.NoError(t, err)
				assert.IsType(t, &compound.ProductGroup{}, s)

				sq, err := compound.Power(a, 2, algebra.WithRegistry(reg))
				require.NoError(t, err)
				assert.True(t, sq.(*compound.ProductGroup).IsUniform())
				assert.Equal(t, "Power("+a.Key()+",2)", sq.Key())
			})
		})

		when("the product is empty", func() {
			it("is the trivial group", func() {
				s, err := compound.ProductWithOptions(nil, algebra.WithRegistry(reg))
				require.NoError(t, err)
				trivial := s.(*compound.ProductCyclicGroup)
				assert.Equal(t, 0, trivial.Arity())
				assert.Equal(t, big.NewInt(1), trivial.Order().Int())

				e, err := trivial.RandomElement(prng.NewString("product/trivial"))
				require.NoError(t, err)
				assert.True(t, trivial.IsIdentity(e))
			})
		})
	}, spec.Report(report.Log{}), spec.Parallel())
}
