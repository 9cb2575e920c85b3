package curve

import (
	"github.com/cloudflare/circl/group"
	"github.com/ing-bank/zkrp/crypto/p256"
	"github.com/pkg/errors"
	"github.com/takakv/msc-algebra/algebra"
)

const hashDomain = "msc-algebra/curve/"

// selectHasher picks the hash-to-curve implementation available for the
// curve: circl's for circl curves, zkrp's for secp256k1.
func (c *Curve) selectHasher(backend group.Group) func(string) (ECPoint, error) {
	if ca, ok := c.arith.(*circlArithmetic); ok && backend != nil {
		dst := []byte(hashDomain + c.params.Name)
		return func(msg string) (ECPoint, error) {
			return ca.hash(msg, dst), nil
		}
	}

	k1, err := NamedParams("secp256k1")
	if err != nil || c.params.key("EC") != k1.key("EC") {
		return nil
	}
	return func(msg string) (ECPoint, error) {
		p, err := p256.MapToGroup(msg)
		if err != nil {
			return ECPoint{}, errors.Wrap(err, "secp256k1 map to group")
		}
		return ECPoint{X: p.X, Y: p.Y}, nil
	}
}

// MapToGroup hashes msg to a point of the curve.
func (c *Curve) MapToGroup(msg string) (*Point, error) {
	if c.hasher == nil {
		return nil, errors.Wrapf(algebra.ErrUnsupportedOperation, "hashing to %s", c)
	}
	p, err := c.hasher(msg)
	if err != nil {
		return nil, err
	}
	e, err := c.GetElement(p)
	if err != nil {
		return nil, err
	}
	return e.(*Point), nil
}
