package algebra

import (
	"math/big"

	"github.com/pkg/errors"
)

// SelfApply applies e to itself k times in s by square-and-multiply.
//
// k == 0 yields the identity and requires s to be a Monoid; k < 0 requires
// s to be a Group and yields the inverse of SelfApply(e, -k). Groups of
// known finite order reduce k modulo their order first.
func SelfApply(s SemiGroup, e Element, k *big.Int) (Element, error) {
	if err := Check(s, e); err != nil {
		return nil, err
	}
	if k == nil {
		return nil, errors.Wrap(ErrInvalidParameter, "nil amount")
	}

	amount := new(big.Int).Set(k)
	if g, ok := s.(Group); ok {
		if n := g.Order().Int(); n != nil && n.Sign() > 0 {
			amount.Mod(amount, n)
		}
	}

	switch amount.Sign() {
	case 0:
		m, ok := s.(Monoid)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedOperation, "zero amount in %s without identity", s)
		}
		return m.Identity(), nil
	case -1:
		g, ok := s.(Group)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedOperation, "negative amount in %s without inverses", s)
		}
		inv, err := g.Invert(e)
		if err != nil {
			return nil, err
		}
		return squareAndMultiply(s, inv, amount.Neg(amount))
	}

	return squareAndMultiply(s, e, amount)
}

// squareAndMultiply computes e^k for k >= 1, scanning k from the most
// significant bit.
func squareAndMultiply(s SemiGroup, e Element, k *big.Int) (Element, error) {
	var err error
	r := e
	for i := k.BitLen() - 2; i >= 0; i-- {
		if r, err = s.Apply(r, r); err != nil {
			return nil, err
		}
		if k.Bit(i) == 1 {
			if r, err = s.Apply(r, e); err != nil {
				return nil, err
			}
		}
	}
	return r, nil
}

// MultiSelfApply computes the combination of SelfApply(es[i], ks[i]) with
// simultaneous multi-exponentiation: one shared sequence of squarings, one
// application per set bit of every amount.
func MultiSelfApply(s SemiGroup, es []Element, ks []*big.Int) (Element, error) {
	if len(es) != len(ks) {
		return nil, errors.Wrapf(ErrInvalidParameter, "%d elements and %d amounts", len(es), len(ks))
	}
	if err := Check(s, es...); err != nil {
		return nil, err
	}

	bases := make([]Element, len(es))
	amounts := make([]*big.Int, len(ks))
	maxLen := 0
	for i, k := range ks {
		if k == nil {
			return nil, errors.Wrapf(ErrInvalidParameter, "nil amount at %d", i)
		}
		bases[i] = es[i]
		amounts[i] = new(big.Int).Set(k)
		if g, ok := s.(Group); ok {
			if n := g.Order().Int(); n != nil && n.Sign() > 0 {
				amounts[i].Mod(amounts[i], n)
			}
		}
		if amounts[i].Sign() < 0 {
			g, ok := s.(Group)
			if !ok {
				return nil, errors.Wrapf(ErrUnsupportedOperation, "negative amount in %s without inverses", s)
			}
			inv, err := g.Invert(es[i])
			if err != nil {
				return nil, err
			}
			bases[i] = inv
			amounts[i].Neg(amounts[i])
		}
		if l := amounts[i].BitLen(); l > maxLen {
			maxLen = l
		}
	}

	var err error
	var r Element
	for i := maxLen - 1; i >= 0; i-- {
		if r != nil {
			if r, err = s.Apply(r, r); err != nil {
				return nil, err
			}
		}
		for j, k := range amounts {
			if k.Bit(i) == 0 {
				continue
			}
			if r == nil {
				r = bases[j]
				continue
			}
			if r, err = s.Apply(r, bases[j]); err != nil {
				return nil, err
			}
		}
	}

	if r == nil {
		m, ok := s.(Monoid)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedOperation, "empty combination in %s without identity", s)
		}
		return m.Identity(), nil
	}
	return r, nil
}

// ApplyInverse returns a combined with the inverse of b in g.
func ApplyInverse(g Group, a, b Element) (Element, error) {
	inv, err := g.Invert(b)
	if err != nil {
		return nil, err
	}
	return g.Apply(a, inv)
}
