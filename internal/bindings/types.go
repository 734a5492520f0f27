package bindings

import (
	"errors"

	"github.com/coinbase/cb-gcd-go/internal/word"
)

// Config captures the parameters the compiled kernel is opened with.
type Config struct {
	// Rounds bounds the low-bit refinement rounds of Lehmer64; zero means
	// until the low words are used up.
	Rounds int
}

// Kernel is an opened handle to the compiled word kernel. It is immutable and
// safe for concurrent use.
type Kernel struct {
	rounds int
}

// GCD64 returns the greatest common divisor of a and b.
func (k *Kernel) GCD64(a, b uint64) uint64 {
	return gcd64(a, b)
}

// Lehmer64 returns the transformation matrix for the 128-bit window.
func (k *Kernel) Lehmer64(x, xlo, y, ylo uint64) word.Matrix64 {
	return lehmer64(x, xlo, y, ylo, k.rounds)
}

var (
	// ErrNotBuilt reports that the native kernel was not linked into the
	// current binary. Callers fall back to the arithmetic kernel.
	ErrNotBuilt = errors.New("cbgcd/internal/bindings: native kernel not built")

	// ErrCGONotEnabled signals that the package was compiled without cgo and
	// therefore cannot reach the native kernel.
	ErrCGONotEnabled = errors.New("cbgcd/internal/bindings: cgo not enabled")

	// ErrUnsupportedCPU reports that the kernel was built for instructions
	// the running CPU does not have.
	ErrUnsupportedCPU = errors.New("cbgcd/internal/bindings: cpu lacks required instructions")

	// ErrSelfTest reports that the native kernel disagreed with the
	// arithmetic one on the startup vectors.
	ErrSelfTest = errors.New("cbgcd/internal/bindings: kernel self-test failed")
)
