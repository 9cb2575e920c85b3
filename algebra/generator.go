package algebra

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// HasOrder reports whether e has exactly order n in g: e^n is the identity
// while e^(n/q) is not for every prime factor q of n. For prime n the only
// factor is n itself, so the test reduces to e^n == 1 and e != 1.
func HasOrder(g Group, e Element, n *big.Int, primeFactors []*big.Int) (bool, error) {
	if err := Check(g, e); err != nil {
		return false, err
	}
	if n == nil || n.Sign() <= 0 {
		return false, errors.Wrapf(ErrUnsupportedOperation, "order of %s is not finite", g)
	}

	r, err := g.SelfApply(e, n)
	if err != nil {
		return false, err
	}
	if !g.IsIdentity(r) {
		return false, nil
	}

	for _, q := range primeFactors {
		cofactor := new(big.Int).Quo(n, q)
		r, err = g.SelfApply(e, cofactor)
		if err != nil {
			return false, err
		}
		if g.IsIdentity(r) {
			return false, nil
		}
	}
	return true, nil
}

// Sampler draws a candidate element from a randomness source.
type Sampler func(rnd io.Reader) (Element, error)

// SearchGenerator draws candidates until one is a generator of g. The loop
// has no retry bound; it terminates almost surely for valid parameters.
func SearchGenerator(g CyclicGroup, rnd io.Reader, sample Sampler) (Element, error) {
	if rnd == nil {
		return nil, ErrNilRandomness
	}
	for attempt := 1; ; attempt++ {
		e, err := sample(rnd)
		if err != nil {
			return nil, err
		}
		ok, err := g.IsGenerator(e)
		if err != nil {
			return nil, err
		}
		if ok {
			return e, nil
		}
		log.Trace("generator candidate rejected", "group", g.String(), "attempt", attempt)
	}
}

// RandomGeneratorFromElements is the default generator search: random
// elements of g raised to cofactor (nil or 1 for none).
func RandomGeneratorFromElements(g CyclicGroup, rnd io.Reader, cofactor *big.Int) (Element, error) {
	return SearchGenerator(g, rnd, func(rnd io.Reader) (Element, error) {
		e, err := g.RandomElement(rnd)
		if err != nil || cofactor == nil || cofactor.Cmp(big.NewInt(1)) == 0 {
			return e, err
		}
		return g.SelfApply(e, cofactor)
	})
}
