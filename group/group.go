// Package group implements the algebraic structures over the integers:
// the integers themselves, integers modulo n, their unit groups and
// prime-order subgroups of Z_p^* used for discrete-log cryptography.
package group

import (
	"fmt"
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// base carries what every integer structure shares: its canonical key, its
// display name and the options it was built with.
type base struct {
	key  string
	name string
	opts algebra.Options
}

func (b *base) Key() string    { return b.key }
func (b *base) String() string { return b.name }

func (b *base) IsMember(e algebra.Element) bool {
	return e != nil && e.Set() != nil && e.Set().Key() == b.key
}

func (b *base) Equal(other algebra.Set) bool {
	return other != nil && other.Key() == b.key
}

// raw extracts the integer of an element after a membership check.
func raw(s algebra.Set, e algebra.Element) (*big.Int, error) {
	if err := algebra.Check(s, e); err != nil {
		return nil, err
	}
	ie, ok := e.(*algebra.IntElement)
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidElement, "%T is not an integer element", e)
	}
	return ie.Raw(), nil
}

func raw2(s algebra.Set, a, b algebra.Element) (*big.Int, *big.Int, error) {
	x, err := raw(s, a)
	if err != nil {
		return nil, nil, err
	}
	y, err := raw(s, b)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func invalidValue(s algebra.Set, value any) error {
	return errors.Wrapf(algebra.ErrInvalidValue, "%v is not in %s", value, s)
}

func invalidParameter(format string, args ...any) error {
	return errors.Wrapf(algebra.ErrInvalidParameter, format, args...)
}

func keyOf(kind string, params ...*big.Int) string {
	key := kind + "("
	for i, p := range params {
		if i > 0 {
			key += ","
		}
		key += p.Text(16)
	}
	return key + ")"
}

func isPrime(n *big.Int, rounds int) bool {
	return n.Sign() > 0 && n.ProbablyPrime(rounds)
}

// cached resolves key in the registry of opts, asserting the concrete type.
func cached[T algebra.Set](opts algebra.Options, key string, build func() (T, error)) (T, error) {
	s, err := opts.Registry.GetOrCreate(key, func() (algebra.Set, error) {
		t, err := build()
		if err != nil {
			return nil, err
		}
		return t, nil
	})
	if err != nil {
		var zeroT T
		return zeroT, err
	}
	t, ok := s.(T)
	if !ok {
		var zeroT T
		return zeroT, invalidParameter("key %s registered as %T", key, s)
	}
	return t, nil
}

// sampleUnit draws a uniform unit modulo n by rejection.
func sampleUnit(rnd io.Reader, n *big.Int) (*big.Int, error) {
	g := new(big.Int)
	for {
		v, err := algebra.RandomIntRange(rnd, one, n)
		if err != nil {
			return nil, err
		}
		if g.GCD(nil, nil, v, n).Cmp(one) == 0 {
			return v, nil
		}
	}
}

func describe(kind string, n *big.Int) string {
	if n.BitLen() <= 64 {
		return fmt.Sprintf("%s(%s)", kind, n)
	}
	return fmt.Sprintf("%s(%d bits)", kind, n.BitLen())
}
