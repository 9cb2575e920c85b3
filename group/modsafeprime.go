package group

import (
	"math/big"
	"strings"

	"github.com/takakv/msc-algebra/algebra"
)

// NewGStarModSafePrime returns the group of quadratic residues modulo the
// safe prime p = 2q+1. Its order is q and its default generator is 4.
func NewGStarModSafePrime(p *big.Int, opts ...algebra.Option) (*GStarMod, error) {
	q, err := safePrimeOrder(p, opts)
	if err != nil {
		return nil, err
	}
	return newGStarMod(p, q, nil, describe("GStarModSafePrime", p), opts)
}

// NewGStarModSafePrimeInt64 is NewGStarModSafePrime for small moduli.
func NewGStarModSafePrimeInt64(p int64, opts ...algebra.Option) (*GStarMod, error) {
	return NewGStarModSafePrime(big.NewInt(p), opts...)
}

func safePrimeOrder(p *big.Int, opts []algebra.Option) (*big.Int, error) {
	o := algebra.NewOptions(opts...)
	if p == nil || p.Cmp(big.NewInt(5)) < 0 {
		return nil, invalidParameter("safe prime %v must be at least 5", p)
	}
	q := new(big.Int).Sub(p, one)
	q.Rsh(q, 1)
	if !isPrime(p, o.PrimalityRounds) || !isPrime(q, o.PrimalityRounds) {
		return nil, invalidParameter("%s is not a safe prime", p)
	}
	return q, nil
}

// NewModPGroup builds a named safe-prime group from a hexadecimal modulus,
// which may contain whitespace, and a hexadecimal generator.
func NewModPGroup(name string, fieldOrder, generator string, opts ...algebra.Option) (*GStarMod, error) {
	repr := strings.Join(strings.Fields(fieldOrder), "")

	p, ok := new(big.Int).SetString(repr, 16)
	if !ok {
		return nil, invalidParameter("invalid modulus for %s", name)
	}
	g, ok := new(big.Int).SetString(generator, 16)
	if !ok {
		return nil, invalidParameter("invalid generator for %s", name)
	}

	q, err := safePrimeOrder(p, opts)
	if err != nil {
		return nil, err
	}
	return newGStarMod(p, q, g, name, opts)
}

// rfc3526Modulus3072 is the 3072-bit MODP prime of RFC 3526, section 4.
const rfc3526Modulus3072 = `FFFFFFFF FFFFFFFF C90FDAA2 2168C234 C4C6628B 80DC1CD1
	29024E08 8A67CC74 020BBEA6 3B139B22 514A0879 8E3404DD
	EF9519B3 CD3A431B 302B0A6D F25F1437 4FE1356D 6D51C245
	E485B576 625E7EC6 F44C42E9 A637ED6B 0BFF5CB6 F406B7ED
	EE386BFB 5A899FA5 AE9F2411 7C4B1FE6 49286651 ECE45B3D
	C2007CB8 A163BF05 98DA4836 1C55D39A 69163FA8 FD24CF5F
	83655D23 DCA3AD96 1C62F356 208552BB 9ED52907 7096966D
	670C354E 4ABC9804 F1746C08 CA18217C 32905E46 2E36CE3B
	E39E772C 180E8603 9B2783A2 EC07A28F B5C55DF0 6F4C52C9
	DE2BCBF6 95581718 3995497C EA956AE5 15D22618 98FA0510
	15728E5A 8AAAC42D AD33170D 04507A33 A85521AB DF1CBA64
	ECFB8504 58DBEF0A 8AEA7157 5D060C7D B3970F85 A6E1E4C7
	ABF5AE8C DB0933D7 1E8C94E0 4A25619D CEE3D226 1AD2EE6B
	F12FFA06 D98A0864 D8760273 3EC86A64 521F2B18 177B200C
	BBE11757 7A615D6C 770988C0 BAD946E2 08E24FA0 74E5AB31
	43DB5BFC E0FD108E 4B82D120 A93AD2CA FFFFFFFF FFFFFFFF`

// RFC3526ModPGroup3072 returns the 3072-bit MODP group of RFC 3526 with
// generator 2.
func RFC3526ModPGroup3072(opts ...algebra.Option) (*GStarMod, error) {
	return NewModPGroup("RFC3526ModPGroup3072", rfc3526Modulus3072, "2", opts...)
}
