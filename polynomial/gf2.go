package polynomial

import "math/big"

// Bit polynomials over GF(2) are stored in *big.Int: bit i is the
// coefficient of x^i. Addition and subtraction are both XOR.

// degree returns the degree of a, or -1 for the zero polynomial.
func degree(a *big.Int) int {
	return a.BitLen() - 1
}

// gf2Mul returns the carry-less product of a and b.
func gf2Mul(a, b *big.Int) *big.Int {
	r := new(big.Int)
	t := new(big.Int)
	for i := 0; i < b.BitLen(); i++ {
		if b.Bit(i) == 1 {
			r.Xor(r, t.Lsh(a, uint(i)))
		}
	}
	return r
}

// gf2Mod reduces a modulo f.
func gf2Mod(a, f *big.Int) *big.Int {
	r := new(big.Int).Set(a)
	df := degree(f)
	t := new(big.Int)
	for d := degree(r); d >= df; d = degree(r) {
		r.Xor(r, t.Lsh(f, uint(d-df)))
	}
	return r
}

// gf2DivMod returns q and r such that a = q*b + r and deg r < deg b.
func gf2DivMod(a, b *big.Int) (*big.Int, *big.Int) {
	q := new(big.Int)
	r := new(big.Int).Set(a)
	db := degree(b)
	t := new(big.Int)
	for d := degree(r); d >= db; d = degree(r) {
		q.SetBit(q, d-db, 1)
		r.Xor(r, t.Lsh(b, uint(d-db)))
	}
	return q, r
}

func gf2GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)
	for y.Sign() != 0 {
		_, r := gf2DivMod(x, y)
		x, y = y, r
	}
	return x
}

// gf2MulMod returns a*b mod f for a, b already reduced modulo f of degree m.
// It interleaves reduction with the shift-and-add product.
func gf2MulMod(a, b, f *big.Int, m int) *big.Int {
	r := new(big.Int)
	for i := degree(b); i >= 0; i-- {
		r.Lsh(r, 1)
		if r.Bit(m) == 1 {
			r.Xor(r, f)
		}
		if b.Bit(i) == 1 {
			r.Xor(r, a)
		}
	}
	return r
}

// gf2Inverse returns the inverse of a non-zero a modulo an irreducible f by
// the binary extended Euclidean algorithm.
func gf2Inverse(a, f *big.Int) *big.Int {
	u := gf2Mod(a, f)
	v := new(big.Int).Set(f)
	g1 := big.NewInt(1)
	g2 := new(big.Int)
	t := new(big.Int)
	for degree(u) > 0 {
		j := degree(u) - degree(v)
		if j < 0 {
			u, v = v, u
			g1, g2 = g2, g1
			j = -j
		}
		u.Xor(u, t.Lsh(v, uint(j)))
		g1.Xor(g1, t.Lsh(g2, uint(j)))
	}
	return gf2Mod(g1, f)
}

// frobenius returns a^(2^k) mod f.
func frobenius(a, f *big.Int, m, k int) *big.Int {
	r := new(big.Int).Set(a)
	for i := 0; i < k; i++ {
		r = gf2MulMod(r, r, f, m)
	}
	return r
}

// isIrreducible runs Rabin's test: f of degree m is irreducible over GF(2)
// iff x^(2^m) = x mod f and gcd(x^(2^(m/r)) - x, f) = 1 for every prime r
// dividing m.
func isIrreducible(f *big.Int) bool {
	m := degree(f)
	if m < 1 {
		return false
	}
	if m == 1 {
		return true
	}

	x := gf2Mod(big.NewInt(2), f)
	if frobenius(x, f, m, m).Cmp(x) != 0 {
		return false
	}
	for _, r := range primeDivisors(m) {
		h := frobenius(x, f, m, m/r)
		h.Xor(h, x)
		if gf2GCD(h, f).Cmp(big.NewInt(1)) != 0 {
			return false
		}
	}
	return true
}

func primeDivisors(m int) []int {
	var ps []int
	for p := 2; p*p <= m; p++ {
		if m%p == 0 {
			ps = append(ps, p)
			for m%p == 0 {
				m /= p
			}
		}
	}
	if m > 1 {
		ps = append(ps, m)
	}
	return ps
}
