package algebra

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderMul(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b Order
		want Order
	}{
		{"finite", FiniteInt64(23), FiniteInt64(11), FiniteInt64(253)},
		{"finite and unknown", FiniteInt64(23), Unknown, Unknown},
		{"unknown and infinite", Unknown, Infinite, Infinite},
		{"infinite and finite", Infinite, FiniteInt64(2), Infinite},
		{"trivial", FiniteInt64(1), FiniteInt64(1), FiniteInt64(1)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.a.Mul(tt.b).Equal(tt.want), "%s * %s = %s", tt.a, tt.b, tt.a.Mul(tt.b))
			assert.True(t, tt.b.Mul(tt.a).Equal(tt.want))
		})
	}
}

func TestOrderAccessors(t *testing.T) {
	t.Parallel()

	n := big.NewInt(7)
	o := Finite(n)
	n.SetInt64(8)
	assert.Equal(t, "7", o.String())

	copied := o.Int()
	copied.SetInt64(9)
	assert.Equal(t, int64(7), o.Int().Int64())

	assert.True(t, o.IsFinite())
	assert.Nil(t, Infinite.Int())
	assert.Equal(t, "infinite", Infinite.String())
	assert.Equal(t, "unknown", Unknown.String())
	assert.True(t, Finite(nil).IsUnknown())
	assert.True(t, Finite(big.NewInt(-1)).IsUnknown())
	assert.False(t, Infinite.Equal(Unknown))
	assert.False(t, FiniteInt64(3).Equal(FiniteInt64(4)))
}
