package group

import (
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// ZMod is the ring of integers modulo n. Its group operation is addition; it
// is cyclic of order n and generated by 1. Multiplication is available
// through the Dualistic methods.
type ZMod struct {
	base
	modulus *big.Int
	prime   bool

	zero *algebra.IntElement
	one  *algebra.IntElement
	mul  *algebra.MultiplicativeMonoid

	fieldOnce sync.Once
	field     *ZModPrime
}

// NewZMod returns the canonical ring of integers modulo n, n >= 2.
func NewZMod(n *big.Int, opts ...algebra.Option) (*ZMod, error) {
	o := algebra.NewOptions(opts...)
	if n == nil || n.Cmp(two) < 0 {
		return nil, invalidParameter("modulus %v must be at least 2", n)
	}

	return cached(o, keyOf("ZMod", n), func() (*ZMod, error) {
		z := &ZMod{
			base: base{
				key:  keyOf("ZMod", n),
				name: describe("ZMod", n),
				opts: o,
			},
			modulus: new(big.Int).Set(n),
			prime:   isPrime(n, o.PrimalityRounds),
		}
		z.zero = algebra.NewIntElement(z, zero)
		z.one = algebra.NewIntElement(z, one)
		z.mul = algebra.NewMultiplicativeMonoid(z)
		return z, nil
	})
}

// NewZModInt64 is NewZMod for small moduli.
func NewZModInt64(n int64, opts ...algebra.Option) (*ZMod, error) {
	return NewZMod(big.NewInt(n), opts...)
}

// Modulus returns a copy of n.
func (z *ZMod) Modulus() *big.Int { return new(big.Int).Set(z.modulus) }

// IsField reports whether the modulus is prime.
func (z *ZMod) IsField() bool { return z.prime }

func (z *ZMod) Order() algebra.Order { return algebra.Finite(z.modulus) }

func (z *ZMod) Contains(value any) bool {
	v := algebra.IntValue(value)
	return v != nil && v.Sign() >= 0 && v.Cmp(z.modulus) < 0
}

func (z *ZMod) GetElement(value any) (algebra.Element, error) {
	e, err := z.Element(algebra.IntValue(value))
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Element returns the element v, which must lie in [0, n).
func (z *ZMod) Element(v *big.Int) (*algebra.IntElement, error) {
	if v == nil || !z.Contains(v) {
		return nil, invalidValue(z, v)
	}
	return algebra.NewIntElement(z, v), nil
}

// ElementOf returns the residue of v, reducing it modulo n.
func (z *ZMod) ElementOf(v int64) *algebra.IntElement {
	return z.wrap(big.NewInt(v))
}

func (z *ZMod) wrap(v *big.Int) *algebra.IntElement {
	return algebra.NewIntElement(z, new(big.Int).Mod(v, z.modulus))
}

func (z *ZMod) RandomElement(rnd io.Reader) (algebra.Element, error) {
	v, err := algebra.RandomInt(rnd, z.modulus)
	if err != nil {
		return nil, err
	}
	return algebra.NewIntElement(z, v), nil
}

func (z *ZMod) Apply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return z.wrap(new(big.Int).Add(x, y)), nil
}

// SelfApply multiplies e by k modulo n. Negative k are allowed.
func (z *ZMod) SelfApply(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, invalidParameter("nil amount")
	}
	return z.wrap(new(big.Int).Mul(x, k)), nil
}

func (z *ZMod) MultiSelfApply(es []algebra.Element, ks []*big.Int) (algebra.Element, error) {
	if len(es) != len(ks) {
		return nil, invalidParameter("%d elements and %d amounts", len(es), len(ks))
	}
	sum := new(big.Int)
	for i, e := range es {
		x, err := raw(z, e)
		if err != nil {
			return nil, err
		}
		if ks[i] == nil {
			return nil, invalidParameter("nil amount at %d", i)
		}
		sum.Add(sum, new(big.Int).Mul(x, ks[i]))
	}
	return z.wrap(sum), nil
}

func (z *ZMod) IsCommutative() bool { return true }

func (z *ZMod) Identity() algebra.Element { return z.zero }

func (z *ZMod) IsIdentity(e algebra.Element) bool { return z.zero.Equal(e) }

func (z *ZMod) Invert(e algebra.Element) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	return z.wrap(new(big.Int).Neg(x)), nil
}

func (z *ZMod) ApplyInverse(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return z.wrap(new(big.Int).Sub(x, y)), nil
}

// DefaultGenerator returns 1.
func (z *ZMod) DefaultGenerator() algebra.Element { return z.one }

// RandomGenerator draws random residues until one is coprime to n.
func (z *ZMod) RandomGenerator(rnd io.Reader) (algebra.Element, error) {
	return algebra.SearchGenerator(z, rnd, z.RandomElement)
}

// IsGenerator reports whether e is coprime to n.
func (z *ZMod) IsGenerator(e algebra.Element) (bool, error) {
	x, err := raw(z, e)
	if err != nil {
		return false, err
	}
	return new(big.Int).GCD(nil, nil, x, z.modulus).Cmp(one) == 0, nil
}

func (z *ZMod) Zero() algebra.Element { return z.zero }

func (z *ZMod) One() algebra.Element { return z.one }

func (z *ZMod) Add(a, b algebra.Element) (algebra.Element, error) { return z.Apply(a, b) }

func (z *ZMod) Subtract(a, b algebra.Element) (algebra.Element, error) {
	return z.ApplyInverse(a, b)
}

func (z *ZMod) Negate(a algebra.Element) (algebra.Element, error) { return z.Invert(a) }

func (z *ZMod) Multiply(a, b algebra.Element) (algebra.Element, error) {
	x, y, err := raw2(z, a, b)
	if err != nil {
		return nil, err
	}
	return z.wrap(new(big.Int).Mul(x, y)), nil
}

// Power raises e to k modulo n. Negative k require e to be a unit.
func (z *ZMod) Power(e algebra.Element, k *big.Int) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	if k == nil {
		return nil, invalidParameter("nil amount")
	}
	if k.Sign() < 0 {
		inv := new(big.Int).ModInverse(x, z.modulus)
		if inv == nil {
			return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in %s", x, z)
		}
		return z.wrap(inv.Exp(inv, new(big.Int).Neg(k), z.modulus)), nil
	}
	return z.wrap(new(big.Int).Exp(x, k, z.modulus)), nil
}

// MultiplicativeInverse returns the inverse of e by the extended Euclidean
// algorithm. Non-units fail with ErrNotInvertible.
func (z *ZMod) MultiplicativeInverse(e algebra.Element) (algebra.Element, error) {
	x, err := raw(z, e)
	if err != nil {
		return nil, err
	}
	inv := new(big.Int).ModInverse(x, z.modulus)
	if inv == nil {
		return nil, errors.Wrapf(algebra.ErrNotInvertible, "%s in %s", x, z)
	}
	return z.wrap(inv), nil
}

func (z *ZMod) Multiplicative() algebra.Monoid { return z.mul }

// ZModPrime is the field of integers modulo a prime. It shares elements and
// key with the ZMod of the same modulus.
type ZModPrime struct {
	*ZMod
	units *algebra.MultiplicativeGroup
}

// NewZModPrime returns the canonical prime field of order p. The field is
// built once per canonical ZMod, so repeated calls return the same instance.
func NewZModPrime(p *big.Int, opts ...algebra.Option) (*ZModPrime, error) {
	z, err := NewZMod(p, opts...)
	if err != nil {
		return nil, err
	}
	if !z.prime {
		return nil, invalidParameter("modulus %s is not prime", p)
	}
	z.fieldOnce.Do(func() {
		f := &ZModPrime{ZMod: z}
		f.units = algebra.NewMultiplicativeGroup(f)
		z.field = f
	})
	return z.field, nil
}

// NewZModPrimeInt64 is NewZModPrime for small primes.
func NewZModPrimeInt64(p int64, opts ...algebra.Option) (*ZModPrime, error) {
	return NewZModPrime(big.NewInt(p), opts...)
}

func (f *ZModPrime) Divide(a, b algebra.Element) (algebra.Element, error) {
	inv, err := f.MultiplicativeInverse(b)
	if err != nil {
		return nil, err
	}
	return f.Multiply(a, inv)
}

func (f *ZModPrime) MultiplicativeGroup() algebra.Group { return f.units }

// Sqrt returns a square root of e, or ErrInvalidValue if e is not a square.
func (f *ZModPrime) Sqrt(e algebra.Element) (algebra.Element, error) {
	x, err := raw(f, e)
	if err != nil {
		return nil, err
	}
	r := new(big.Int).ModSqrt(x, f.modulus)
	if r == nil {
		return nil, errors.Wrapf(algebra.ErrInvalidValue, "%s is not a square in %s", x, f)
	}
	return algebra.NewIntElement(f.ZMod, r), nil
}
