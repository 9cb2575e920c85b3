package group

import (
	"io"
	"math/big"
	"sort"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// ZModStar is the multiplicative group of units modulo n. Its order φ(n)
// is known when n is prime or when the prime factorization of n is given.
type ZModStar struct {
	base
	modulus *big.Int
	factors []*big.Int
	order   algebra.Order
	one     *algebra.IntElement
}

// NewZModStar returns the unit group modulo n, n >= 2. primeFactors, when
// given, must be exactly the distinct primes dividing n.
func NewZModStar(n *big.Int, primeFactors ...*big.Int) (*ZModStar, error) {
	return NewZModStarWithOptions(n, primeFactors)
}

// NewZModStarWithOptions is NewZModStar with construction options.
func NewZModStarWithOptions(n *big.Int, primeFactors []*big.Int, opts ...algebra.Option) (*ZModStar, error) {
	o := algebra.NewOptions(opts...)
	if n == nil || n.Cmp(two) < 0 {
		return nil, invalidParameter("modulus %v must be at least 2", n)
	}

	factors, err := distinctFactors(n, primeFactors, o.PrimalityRounds)
	if err != nil {
		return nil, err
	}

	key := keyOf("ZModStar", n)
	if len(factors) > 0 {
		key = keyOf("ZModStar", append([]*big.Int{n}, factors...)...)
	}

	return cached(o, key, func() (*ZModStar, error) {
		z := &ZModStar{
			base:    base{key: key, name: describe("ZModStar", n), opts: o},
			modulus: new(big.Int).Set(n),
			factors: factors,
			order:   algebra.Unknown,
		}
		if len(factors) > 0 {
			z.order = algebra.Finite(totient(n, factors))
		}
		z.one = algebra.NewIntElement(z, one)
		return z, nil
	})
}

// distinctFactors validates a claimed factorization. For a prime n without
// factors it returns {n}; for composite n without factors it returns nil.
func distinctFactors(n *big.Int, claimed []*big.Int, rounds int) ([]*big.Int, error) {
	if len(claimed) == 0 {
		if isPrime(n, rounds) {
			return []*big.Int{new(big.Int).Set(n)}, nil
		}
		return nil, nil
	}

	factors := make([]*big.Int, 0, len(claimed))
	rest := new(big.Int).Set(n)
	mod := new(big.Int)
	for _, p := range claimed {
		if p == nil || !isPrime(p, rounds) {
			return nil, invalidParameter("factor %v is not prime", p)
		}
		if mod.Mod(rest, p).Sign() != 0 {
			return nil, invalidParameter("factor %s does not divide %s", p, n)
		}
		for mod.Mod(rest, p).Sign() == 0 {
			rest.Quo(rest, p)
		}
		factors = append(factors, new(big.Int).Set(p))
	}
	if rest.Cmp(one) != 0 {
		return nil, invalidParameter("factorization of %s is incomplete", n)
	}

	sort.Slice(factors, func(i, j int) bool { return factors[i].Cmp(factors[j]) < 0 })
	return factors, nil
}

// totient computes n * prod (1 - 1/p) over the distinct primes p of n.
func totient(n *big.Int, factors []*big.Int) *big.Int {
	phi := new(big.Int).Set(n)
	for _, p := range factors {
		phi.Quo(phi, p)
		phi.Mul(phi, new(big.Int).Sub(p, one))
	}
	return phi
}

// Modulus returns a copy of n.
func (z *ZModStar) Modulus() *big.Int { return new(big.Int).Set(z.modulus) }

func (z *ZModStar) Order() algebra.Order { return z.order }

func (z *ZModStar) Contains(value any) bool {
	v := algebra.IntValue(value)
	if v == nil || v.Sign() <= 0 || v.Cmp(z.modulus) >= 0 {
		return false
	}
	return new(big.Int).GCD(nil, nil, v, z.modulus).Cmp(one) == 0
}

func (z *ZModStar) GetElement(value any) (algebra.Element, error) {
	if !z.Contains(value) {
		return nil, invalidValue(z, value)
	}
	return algebra.NewIntElement(z, algebra.IntValue(value)), nil
}

// RandomElement draws a uniform unit by rejection sampling.
func (z *ZModStar) RandomElement(rnd io.Reader) (algebra.Element, error) {
	v, err := sampleUnit(rnd, z.modulus)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(z, v), nil
}

func (z *ZModStar) wrap(v *big.Int) *algebra.IntElement {
	return algebra.NewIntElement(z, v.Mod(v, z.modulus))
}

func (z *ZModStar) Apply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return z.wrap(new(big.Int).Mul(x, y)), nil
}

// SelfApply is modular exponentiation; negative k use the inverse.
func (z *ZModStar) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, invalidParameter("nil amount")
	}
	if k.Sign() < 0 {
		inv := new(big.Int).ModInverse(x, z.modulus)
		return z.wrap(inv.Exp(inv, new(big.Int).Neg(k), z.modulus)), nil
	}
	return z.wrap(new(big.Int).Exp(x, k, z.modulus)), nil
}

func (z *ZModStar) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	return algebra.MultiSelfApply(z, es, ks)
}

func (z *ZModStar) IsCommutative() bool { return true }

func (z *ZModStar) Identity() algebra.Element { return z.one }

func (z *ZModStar) IsIdentity(e algebra.Element) bool { return z.one.Equal(e) }

func (z *ZModStar) Invert(e algebra.Element) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	inv := new(big.Int).ModInverse(x, z.modulus)
	if inv == nil {
		return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in %s", x, z)
	}
	return algebra.NewIntElement(z, inv), nil
}

func (z *ZModStar) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	return algebra.ApplyInverse(z, a, b)
}
