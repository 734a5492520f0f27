//go:build cgo

// Package cgo provides the compiled word kernel used by the GCD engine.
// This package should ONLY be imported by internal/bindings.
// All CGO complexity is isolated here.
package cgo

/*
#cgo CFLAGS: -O2 -fno-strict-aliasing

#include <stdint.h>

typedef struct {
	int64_t a, b, c, d;
} gcd_matrix64;

static const char *gcd_kernel_version(void) {
	return "cbgcd-kernel/1";
}

static uint64_t gcd_native64(uint64_t a, uint64_t b) {
	while (b != 0) {
		uint64_t r = a % b;
		if (b - r < r) {
			r = b - r;
		}
		a = b;
		b = r;
	}
	return a;
}

// Keep in step with internal/word.Lehmer: the two must return the same
// matrix for every input.
static gcd_matrix64 gcd_lehmer(uint64_t x, uint64_t xlo, uint64_t y, uint64_t ylo,
                               unsigned lobits, int rounds) {
	gcd_matrix64 m = {1, 0, 0, 1};
	if (y == 0 || x == UINT64_MAX || y == UINT64_MAX || lobits > 64) {
		return m;
	}
	if (lobits < 64) {
		xlo &= ((uint64_t)1 << lobits) - 1;
		ylo &= ((uint64_t)1 << lobits) - 1;
	}

	int odd = 0;
	for (int refined = 0;; refined++) {
		uint64_t xmin = x + (uint64_t)m.b, xmax = x + (uint64_t)m.a;
		uint64_t ymin = y + (uint64_t)m.c, ymax = y + (uint64_t)m.d;
		if (odd) {
			uint64_t t = xmin; xmin = xmax; xmax = t;
			t = ymin; ymin = ymax; ymax = t;
		}

		for (;;) {
			uint64_t q = xmin / ymax;
			uint64_t t = q * ymin;
			if (xmax < t || xmax - t >= ymin) {
				break;
			}
			uint64_t nymin = xmin - q * ymax, nymax = xmax - t;
			if (nymax - nymin >= ((uint64_t)1 << 63)) {
				break;
			}
			xmin = ymin;
			xmax = ymax;
			ymin = nymin;
			ymax = nymax;
			uint64_t ny = x - q * y;
			x = y;
			y = ny;
			odd = !odd;
		}

		if (odd) {
			m.a = (int64_t)(xmin - x);
			m.b = (int64_t)(xmax - x);
			m.c = (int64_t)(ymax - y);
			m.d = (int64_t)(ymin - y);
		} else {
			m.a = (int64_t)(xmax - x);
			m.b = (int64_t)(xmin - x);
			m.c = (int64_t)(ymin - y);
			m.d = (int64_t)(ymax - y);
		}

		if (y == 0 || (rounds > 0 && refined == rounds)) {
			return m;
		}
		unsigned shift = xmax == 0 ? 64 : (unsigned)__builtin_clzll(xmax);
		if (shift > lobits) {
			shift = lobits;
		}
		if (shift == 0) {
			return m;
		}
		unsigned s = lobits - shift;
		uint64_t xl = s < 64 ? xlo >> s : 0;
		uint64_t yl = s < 64 ? ylo >> s : 0;
		xlo -= xl << s;
		ylo -= yl << s;
		x = (uint64_t)m.a * xl + (uint64_t)m.b * yl + (x << shift);
		y = (uint64_t)m.c * xl + (uint64_t)m.d * yl + (y << shift);
		lobits = s;
	}
}

static gcd_matrix64 gcd_lehmer64(uint64_t x, uint64_t xlo, uint64_t y, uint64_t ylo, int rounds) {
	return gcd_lehmer(x, xlo, y, ylo, 64, rounds);
}
*/
import "C"

import "github.com/coinbase/cb-gcd-go/internal/word"

// GCD64 returns the greatest common divisor of a and b.
func GCD64(a, b uint64) uint64 {
	return uint64(C.gcd_native64(C.uint64_t(a), C.uint64_t(b)))
}

// Lehmer64 returns the transformation matrix for a 128-bit window.
func Lehmer64(x, xlo, y, ylo uint64, rounds int) word.Matrix64 {
	m := C.gcd_lehmer64(C.uint64_t(x), C.uint64_t(xlo), C.uint64_t(y), C.uint64_t(ylo), C.int(rounds))
	return word.Matrix64{A: int64(m.a), B: int64(m.b), C: int64(m.c), D: int64(m.d)}
}

// Version reports the kernel build identifier.
func Version() string {
	return C.GoString(C.gcd_kernel_version())
}
