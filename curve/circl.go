package curve

import (
	"math/big"

	"github.com/cloudflare/circl/group"
	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

// circlGroups maps catalog names to the prime-order groups of circl.
var circlGroups = map[string]group.Group{
	"secp256r1": group.P256,
	"secp384r1": group.P384,
	"secp521r1": group.P521,
}

// circlArithmetic delegates point arithmetic to circl while keeping the
// affine prime-field view for membership, point recovery and coordinates.
type circlArithmetic struct {
	*primeArithmetic
	g       group.Group
	byteLen int
}

func newCirclArithmetic(g group.Group, prime *primeArithmetic) *circlArithmetic {
	return &circlArithmetic{
		primeArithmetic: prime,
		g:               g,
		byteLen:         (prime.p.BitLen() + 7) / 8,
	}
}

// toElement encodes p in the uncompressed SEC 1 form circl reads.
func (c *circlArithmetic) toElement(p ECPoint) group.Element {
	e := c.g.NewElement()
	if p.IsInfinity() {
		return e
	}
	buf := make([]byte, 1+2*c.byteLen)
	buf[0] = 4
	// Copy while maintaining leading zeroes.
	p.X.FillBytes(buf[1 : 1+c.byteLen])
	p.Y.FillBytes(buf[1+c.byteLen:])
	if err := e.UnmarshalBinary(buf); err != nil {
		// Only reachable for points off the curve, which callers exclude.
		log.Warn("circl rejected point", "error", err.Error())
	}
	return e
}

func (c *circlArithmetic) fromElement(e group.Element) ECPoint {
	if e.IsIdentity() {
		return Infinity()
	}
	buf, err := e.MarshalBinary()
	if err != nil || len(buf) != 1+2*c.byteLen {
		log.Warn("circl point encoding", "length", len(buf))
		return Infinity()
	}
	return ECPoint{
		X: new(big.Int).SetBytes(buf[1 : 1+c.byteLen]),
		Y: new(big.Int).SetBytes(buf[1+c.byteLen:]),
	}
}

func (c *circlArithmetic) add(p, q ECPoint) ECPoint {
	return c.fromElement(c.g.NewElement().Add(c.toElement(p), c.toElement(q)))
}

func (c *circlArithmetic) double(p ECPoint) ECPoint {
	return c.fromElement(c.g.NewElement().Dbl(c.toElement(p)))
}

func (c *circlArithmetic) neg(p ECPoint) ECPoint {
	return c.fromElement(c.g.NewElement().Neg(c.toElement(p)))
}

// scalarMult reduces k modulo the group order before multiplying.
func (c *circlArithmetic) scalarMult(p ECPoint, k *big.Int) ECPoint {
	s := c.g.NewScalar().SetBigInt(k)
	return c.fromElement(c.g.NewElement().Mul(c.toElement(p), s))
}

func (c *circlArithmetic) hash(msg string, dst []byte) ECPoint {
	return c.fromElement(c.g.HashToElement([]byte(msg), dst))
}

// NewCirclCurve returns one of P-256, P-384 or P-521 (or their SEC names)
// with arithmetic delegated to github.com/cloudflare/circl. It is a distinct
// canonical structure from the generic curve of the same name.
func NewCirclCurve(name string, opts ...algebra.Option) (*Curve, error) {
	params, err := NamedParams(name)
	if err != nil {
		return nil, err
	}
	g, ok := circlGroups[params.Name]
	if !ok {
		return nil, errors.Wrapf(algebra.ErrInvalidParameter, "no circl backend for %s", name)
	}
	return newCurve(params, g, opts)
}

// P256 returns the circl-backed NIST P-256 curve.
func P256(opts ...algebra.Option) (*Curve, error) { return NewCirclCurve("P-256", opts...) }

// P384 returns the circl-backed NIST P-384 curve.
func P384(opts ...algebra.Option) (*Curve, error) { return NewCirclCurve("P-384", opts...) }

// P521 returns the circl-backed NIST P-521 curve.
func P521(opts ...algebra.Option) (*Curve, error) { return NewCirclCurve("P-521", opts...) }
