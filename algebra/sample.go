package algebra

import (
	"io"
	"math/big"

	"github.com/pkg/errors"
)

// RandomInt draws an integer uniformly from [0, bound). It reads
// bitlen(bound) bits, the smallest power-of-two superset of the range, and
// rejects draws outside of it until one fits.
func RandomInt(rnd io.Reader, bound *big.Int) (*big.Int, error) {
	if rnd == nil {
		return nil, ErrNilRandomness
	}
	if bound == nil || bound.Sign() <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "sampling bound %v", bound)
	}

	bitLen := bound.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	// Number of bits to keep in the most significant byte.
	top := uint(bitLen % 8)
	if top == 0 {
		top = 8
	}

	n := new(big.Int)
	for {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, errors.Wrap(err, "reading randomness")
		}
		buf[0] &= uint8(int(1<<top) - 1)
		n.SetBytes(buf)
		if n.Cmp(bound) < 0 {
			return n, nil
		}
	}
}

// RandomIntRange draws an integer uniformly from [lo, hi).
func RandomIntRange(rnd io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if lo == nil || hi == nil || lo.Cmp(hi) >= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "sampling range [%v, %v)", lo, hi)
	}
	n, err := RandomInt(rnd, new(big.Int).Sub(hi, lo))
	if err != nil {
		return nil, err
	}
	return n.Add(n, lo), nil
}

// RandomBit draws one uniform bit.
func RandomBit(rnd io.Reader) (uint, error) {
	n, err := RandomInt(rnd, big.NewInt(2))
	if err != nil {
		return 0, err
	}
	return uint(n.Int64()), nil
}
