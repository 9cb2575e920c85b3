package group

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// GStarMod is the subgroup of prime order q of the multiplicative group
// modulo a prime p. It is the group of choice for discrete-log primitives:
// every element except the identity is a generator.
type GStarMod struct {
	base
	modulus   *big.Int // p
	order     *big.Int // q
	cofactor  *big.Int // (p-1)/q
	safePrime bool

	identity  *algebra.IntElement
	generator *algebra.IntElement
}

// NewGStarMod returns the subgroup of order q of Z_p^*. Both p and q must
// be prime and q must divide p-1.
func NewGStarMod(p, q *big.Int, opts ...algebra.Option) (*GStarMod, error) {
	return newGStarMod(p, q, nil, "", opts)
}

// NewGStarModWithGenerator is NewGStarMod with an explicit default generator.
func NewGStarModWithGenerator(p, q, g *big.Int, opts ...algebra.Option) (*GStarMod, error) {
	if g == nil {
		return nil, invalidParameter("nil generator")
	}
	return newGStarMod(p, q, g, "", opts)
}

func newGStarMod(p, q, g *big.Int, name string, opts []algebra.Option) (*GStarMod, error) {
	o := algebra.NewOptions(opts...)
	if p == nil || q == nil {
		return nil, invalidParameter("nil modulus or order")
	}

	key := keyOf("GStarMod", p, q)
	if g != nil {
		key = keyOf("GStarMod", p, q, g)
	}
	if name == "" {
		name = describe("GStarMod", p)
	}

	return cached(o, key, func() (*GStarMod, error) {
		if !isPrime(p, o.PrimalityRounds) {
			return nil, invalidParameter("modulus %s is not prime", p)
		}
		if !isPrime(q, o.PrimalityRounds) {
			return nil, invalidParameter("order %s is not prime", q)
		}
		pMinusOne := new(big.Int).Sub(p, one)
		cofactor, rem := new(big.Int).QuoRem(pMinusOne, q, new(big.Int))
		if rem.Sign() != 0 {
			return nil, invalidParameter("order %s does not divide %s-1", q, p)
		}

		G := &GStarMod{
			base:      base{key: key, name: name, opts: o},
			modulus:   new(big.Int).Set(p),
			order:     new(big.Int).Set(q),
			cofactor:  cofactor,
			safePrime: cofactor.Cmp(two) == 0,
		}
		G.identity = algebra.NewIntElement(G, one)

		if g == nil {
			G.generator = G.deriveGenerator()
			return G, nil
		}

		if !G.Contains(g) {
			return nil, invalidParameter("generator %s is not in %s", g, name)
		}
		G.generator = algebra.NewIntElement(G, g)
		if ok, _ := G.IsGenerator(G.generator); !ok {
			return nil, invalidParameter("%s does not generate %s", g, name)
		}
		return G, nil
	})
}

// deriveGenerator returns h^cofactor for the smallest h >= 2 that does not
// map to the identity.
func (G *GStarMod) deriveGenerator() *algebra.IntElement {
	h := big.NewInt(2)
	g := new(big.Int)
	for {
		g.Exp(h, G.cofactor, G.modulus)
		if g.Cmp(one) != 0 {
			return algebra.NewIntElement(G, g)
		}
		h.Add(h, one)
	}
}

// P returns the prime modulus.
func (G *GStarMod) P() *big.Int { return new(big.Int).Set(G.modulus) }

// N returns the prime order of the group.
func (G *GStarMod) N() *big.Int { return new(big.Int).Set(G.order) }

// Cofactor returns (p-1)/q.
func (G *GStarMod) Cofactor() *big.Int { return new(big.Int).Set(G.cofactor) }

// IsSafePrime reports whether p = 2q+1.
func (G *GStarMod) IsSafePrime() bool { return G.safePrime }

func (G *GStarMod) Order() algebra.Order { return algebra.Finite(G.order) }

// Contains checks 1 <= v < p and v^q = 1. For safe primes the subgroup is
// the set of quadratic residues, which the Jacobi symbol decides faster.
func (G *GStarMod) Contains(value any) bool {
	v := algebra.IntValue(value)
	if v == nil || v.Sign() <= 0 || v.Cmp(G.modulus) >= 0 {
		return false
	}
	if G.safePrime {
		return big.Jacobi(v, G.modulus) == 1
	}
	return new(big.Int).Exp(v, G.order, G.modulus).Cmp(one) == 0
}

func (G *GStarMod) GetElement(value any) (algebra.Element, error) {
	if !G.Contains(value) {
		return nil, invalidValue(G, value)
	}
	return algebra.NewIntElement(G, algebra.IntValue(value)), nil
}

// RandomElement returns g^r for a uniform exponent r in [0, q).
func (G *GStarMod) RandomElement(rnd io.Reader) (algebra.Element, error) {
	r, err := algebra.RandomInt(rnd, G.order)
	if err != nil {
		return nil, err
	}
	return G.exp(G.generator.Raw(), r), nil
}

func (G *GStarMod) exp(x, k *big.Int) *algebra.IntElement {
	e := new(big.Int).Mod(k, G.order)
	return algebra.NewIntElement(G, e.Exp(x, e, G.modulus))
}

func (G *GStarMod) Apply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(G, a, b)
	if err != nil {
		return nil, err
	}
	v := new(big.Int).Mul(x, y)
	return algebra.NewIntElement(G, v.Mod(v, G.modulus)), nil
}

// SelfApply raises e to k modulo p. The exponent is reduced modulo q, so
// negative k yield inverses.
func (G *GStarMod) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := raw(G, e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, invalidParameter("nil amount")
	}
	return G.exp(x, k), nil
}

func (G *GStarMod) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	return algebra.MultiSelfApply(G, es, ks)
}

func (G *GStarMod) IsCommutative() bool { return true }

func (G *GStarMod) Identity() algebra.Element { return G.identity }

func (G *GStarMod) IsIdentity(e algebra.Element) bool { return G.identity.Equal(e) }

func (G *GStarMod) Invert(e algebra.Element) (algebra.Element, error) {
	x, err := raw(G, e)
	if err != nil {
		return nil, err
	}
	inv := new(big.Int).ModInverse(x, G.modulus)
	if inv == nil {
		return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in %s", x, G)
	}
	return algebra.NewIntElement(G, inv), nil
}

func (G *GStarMod) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	return algebra.ApplyInverse(G, a, b)
}

func (G *GStarMod) DefaultGenerator() algebra.Element { return G.generator }

// RandomGenerator raises random units of Z_p^* to the cofactor until the
// result is a generator.
func (G *GStarMod) RandomGenerator(rnd io.Reader) (algebra.Element, error) {
	return algebra.SearchGenerator(G, rnd, func(rnd io.Reader) (algebra.Element, error) {
		h, err := sampleUnit(rnd, G.modulus)
		if err != nil {
			return nil, err
		}
		return algebra.NewIntElement(G, h.Exp(h, G.cofactor, G.modulus)), nil
	})
}

// IsGenerator checks that e has order q. Since q is prime this holds for
// every element of the subgroup but the identity. SelfApply reduces its
// amount modulo q, so e^q is computed on the raw residue.
func (G *GStarMod) IsGenerator(e algebra.Element) (bool, error) {
	x, err := raw(G, e)
	if err != nil {
		return false, err
	}
	if new(big.Int).Exp(x, G.order, G.modulus).Cmp(one) != 0 {
		return false, nil
	}
	return algebra.HasOrder(G, e, G.order, []*big.Int{G.order})
}
