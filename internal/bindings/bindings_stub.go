//go:build !cgo || windows

package bindings

import (
	"runtime"

	"github.com/coinbase/cb-gcd-go/internal/word"
)

// Stub implementations for non-CGO builds or Windows.
// These allow the package to compile; Open always reports why the kernel is
// unavailable so no Kernel value can reach the functions below.

// Open reports that the native kernel is unavailable in this build.
func Open(Config) (*Kernel, error) {
	if runtime.GOOS == "windows" {
		return nil, ErrNotBuilt
	}
	return nil, ErrCGONotEnabled
}

// Version returns an empty string when the kernel is not linked.
func Version() string { return "" }

func gcd64(uint64, uint64) uint64 {
	panic(ErrNotBuilt)
}

func lehmer64(uint64, uint64, uint64, uint64, int) word.Matrix64 {
	panic(ErrNotBuilt)
}
