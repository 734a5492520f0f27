package word

import (
	"math"
	"math/bits"
)

const (
	// Bits is the width of a window word.
	Bits = 64

	// maxWidth bounds the spread of a coordinate range so that every entry
	// converted back into a Matrix64 stays below 2^63 in magnitude.
	maxWidth = 1 << 63
)

// Lehmer64 computes the transformation matrix for a 128-bit window given as
// high and low words of both operands. It returns the identity when y is
// zero. rounds limits how many times fresh low bits are pulled in; zero means
// until the low words are used up.
func Lehmer64(x, xlo, y, ylo uint64, rounds int) Matrix64 {
	return Lehmer(x, xlo, y, ylo, Bits, rounds)
}

// Lehmer computes the product of the Euclidean step matrices [[0 1] [1 -q]]
// that is shared by every pair (x+α, y+β) with 0 <= α, β < 1, where the pair
// is measured in units of the low words. Only the low lobits bits of xlo and
// ylo are meaningful.
//
// A quotient is accepted only when the two extreme corners of the current
// uncertainty box floor to the same value; the matrix from before the first
// rejected quotient is kept. When no more quotients can be accepted, as many
// low bits as the current x range leaves headroom for are shifted in through
// the matrix and the loop resumes.
func Lehmer(x, xlo, y, ylo uint64, lobits uint, rounds int) Matrix64 {
	m := Identity
	if y == 0 || x == math.MaxUint64 || y == math.MaxUint64 || lobits > Bits {
		return m
	}
	if lobits < Bits {
		xlo &= 1<<lobits - 1
		ylo &= 1<<lobits - 1
	}

	odd := false
	for refined := 0; ; refined++ {
		// (x+A, y+C) and (x+B, y+D) are the images of the corners (1, 0) and
		// (0, 1). With an even number of steps A, D >= 0 and B, C <= 0.
		xmin, xmax := x+uint64(m.B), x+uint64(m.A)
		ymin, ymax := y+uint64(m.C), y+uint64(m.D)
		if odd {
			xmin, xmax = xmax, xmin
			ymin, ymax = ymax, ymin
		}

		for {
			q := xmin / ymax
			t := q * ymin
			if xmax < t || xmax-t >= ymin {
				break
			}
			nymin, nymax := xmin-q*ymax, xmax-t
			if nymax-nymin >= maxWidth {
				break
			}
			xmin, xmax, ymin, ymax = ymin, ymax, nymin, nymax
			x, y = y, x-q*y
			odd = !odd
		}

		if odd {
			m = Matrix64{A: int64(xmin - x), B: int64(xmax - x), C: int64(ymax - y), D: int64(ymin - y)}
		} else {
			m = Matrix64{A: int64(xmax - x), B: int64(xmin - x), C: int64(ymin - y), D: int64(ymax - y)}
		}

		if y == 0 || (rounds > 0 && refined == rounds) {
			return m
		}
		shift := uint(bits.LeadingZeros64(xmax))
		if shift > lobits {
			shift = lobits
		}
		if shift == 0 {
			return m
		}
		s := lobits - shift
		xl, yl := xlo>>s, ylo>>s
		xlo -= xl << s
		ylo -= yl << s
		x = uint64(m.A)*xl + uint64(m.B)*yl + x<<shift
		y = uint64(m.C)*xl + uint64(m.D)*yl + y<<shift
		lobits = s
	}
}
