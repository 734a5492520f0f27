package gcd

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

const (
	// WordBits is the width of the native word the kernel operates on.
	WordBits = 64

	// WindowBits is the width of the leading window handed to the kernel.
	WindowBits = 2 * WordBits

	// NativeLimit is the largest value the kernel accepts as a native word.
	NativeLimit = math.MaxUint64
)

// BitLength returns the number of bits needed to represent n, which must be
// positive.
func BitLength(n *big.Int) (int, error) {
	if n == nil || n.Sign() <= 0 {
		return 0, fmt.Errorf("%w: bit length of non-positive value", ErrDomain)
	}
	return n.BitLen(), nil
}

// bitLengthCache remembers the last bit length it computed. Operands shrink
// slowly during a reduction, so the next length is usually found by looking
// at a single word just below the previous top bit. The cache is owned by a
// single reduction and is never shared.
type bitLengthCache struct {
	prev int
}

func (c *bitLengthCache) estimate(n *big.Int) (int, error) {
	if n != nil && n.Sign() > 0 {
		if c.prev <= WordBits {
			if n.IsUint64() {
				c.prev = bits.Len64(n.Uint64())
				return c.prev, nil
			}
		} else {
			s := c.prev - WordBits
			if w, ok := shiftedWord(n, uint(s)); ok {
				c.prev = s + bits.Len64(w)
				return c.prev, nil
			}
		}
	}
	l, err := BitLength(n)
	if err != nil {
		c.prev = 0
		return 0, err
	}
	c.prev = l
	return l, nil
}
