//go:build cgo && !windows

package bindings

import (
	"sync"

	"github.com/coinbase/cb-gcd-go/internal/cgo"
	"github.com/coinbase/cb-gcd-go/internal/word"
)

// selfTestVectors are windows whose matrices exercise the quotient loop, the
// low-bit refinement and the identity exits.
var selfTestVectors = [][4]uint64{
	{0xd3c21bcecceda100, 0x0123456789abcdef, 0x9a4b1c2d3e4f5061, 0xfedcba9876543210},
	{0x8000000000000000, 0, 0x7fffffffffffffff, 0xffffffffffffffff},
	{0xffffffffffffffff, 1, 0x8000000000000000, 0},
	{0xc000000000000000, 5, 0, 7},
	{0x9e3779b97f4a7c15, 0xf39cc0605cedc834, 0x9e3779b97f4a7c14, 0x1082276bf3a27251},
}

var hostCheck = sync.OnceValue(func() error {
	if !cgo.CPUSupported() {
		return ErrUnsupportedCPU
	}
	if cgo.GCD64(48, 18) != 6 || cgo.GCD64(0, 0) != 0 || cgo.GCD64(7, 0) != 7 {
		return ErrSelfTest
	}
	for _, v := range selfTestVectors {
		for _, rounds := range []int{0, 1} {
			if cgo.Lehmer64(v[0], v[1], v[2], v[3], rounds) != word.Lehmer64(v[0], v[1], v[2], v[3], rounds) {
				return ErrSelfTest
			}
		}
	}
	return nil
})

// Open checks the host once and returns a handle to the compiled kernel, or
// the reason it cannot be used.
func Open(cfg Config) (*Kernel, error) {
	if err := hostCheck(); err != nil {
		return nil, err
	}
	return &Kernel{rounds: cfg.Rounds}, nil
}

// Version returns the version string compiled into the kernel.
func Version() string { return cgo.Version() }

func gcd64(a, b uint64) uint64 { return cgo.GCD64(a, b) }

func lehmer64(x, xlo, y, ylo uint64, rounds int) word.Matrix64 {
	return cgo.Lehmer64(x, xlo, y, ylo, rounds)
}
