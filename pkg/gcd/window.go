package gcd

import (
	"math/big"
	"math/bits"
)

// window is the leading WindowBits of an operand pair, split into high and
// low words and aligned on the same shift.
type window struct {
	x, xlo, y, ylo uint64
}

// extractWindow aligns the top WindowBits of a pair whose larger operand has
// n bits. Operands shorter than a window are shifted left, which is only
// sound when they are exact values rather than prefixes.
func extractWindow(a, b *big.Int, n int) window {
	if s := n - WindowBits; s >= 0 {
		lo := uint(s)
		return window{
			x:   wordAt(a, lo+WordBits),
			xlo: wordAt(a, lo),
			y:   wordAt(b, lo+WordBits),
			ylo: wordAt(b, lo),
		}
	}
	t := uint(WindowBits - n)
	var w window
	w.x, w.xlo = lsh128(wordAt(a, WordBits), wordAt(a, 0), t)
	w.y, w.ylo = lsh128(wordAt(b, WordBits), wordAt(b, 0), t)
	return w
}

// wordAt returns bits [s, s+64) of |n| without allocating.
func wordAt(n *big.Int, s uint) uint64 {
	ws := n.Bits()
	var r uint64
	for got := uint(0); got < WordBits; {
		i := (s + got) / bits.UintSize
		if i >= uint(len(ws)) {
			break
		}
		off := (s + got) % bits.UintSize
		r |= uint64(ws[i]>>off) << got
		got += bits.UintSize - off
	}
	return r
}

// shiftedWord returns |n| >> s when that value lies in [1, NativeLimit].
func shiftedWord(n *big.Int, s uint) (uint64, bool) {
	ws := n.Bits()
	top := s + WordBits
	if i := top / bits.UintSize; i < uint(len(ws)) {
		if ws[i]>>(top%bits.UintSize) != 0 {
			return 0, false
		}
		for _, w := range ws[i+1:] {
			if w != 0 {
				return 0, false
			}
		}
	}
	w := wordAt(n, s)
	return w, w != 0
}

func lsh128(hi, lo uint64, t uint) (uint64, uint64) {
	switch {
	case t == 0:
		return hi, lo
	case t >= WordBits:
		return lo << (t - WordBits), 0
	default:
		return hi<<t | lo>>(WordBits-t), lo << t
	}
}
