package gcd

import (
	"context"
	"sync"

	"github.com/coinbase/cb-gcd-go/internal/bindings"
	"github.com/coinbase/cb-gcd-go/internal/word"
	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

// Kernel provides the two word-level primitives the engine is built on.
// Implementations must be safe for concurrent use.
type Kernel interface {
	// Name identifies the implementation in logs and metrics.
	Name() string

	// GCD64 returns the greatest common divisor of two native words, with
	// GCD64(0, b) = b.
	GCD64(a, b uint64) uint64

	// Lehmer64 returns the transformation matrix shared by every pair in the
	// 128-bit window (x:xlo, y:ylo), or the identity when no quotient is
	// certain. x:xlo must not be smaller than y:ylo.
	Lehmer64(x, xlo, y, ylo uint64) Matrix64
}

type arithmeticKernel struct {
	rounds int
}

// ArithmeticKernel returns the pure Go kernel. rounds bounds the low-bit
// refinement of Lehmer64; zero means until the low words are used up.
func ArithmeticKernel(rounds int) Kernel {
	return arithmeticKernel{rounds: rounds}
}

func (arithmeticKernel) Name() string { return string(KernelArithmetic) }

func (arithmeticKernel) GCD64(a, b uint64) uint64 { return word.GCD64(a, b) }

func (k arithmeticKernel) Lehmer64(x, xlo, y, ylo uint64) Matrix64 {
	return word.Lehmer64(x, xlo, y, ylo, k.rounds)
}

type nativeKernel struct {
	k *bindings.Kernel
}

// NativeKernel opens the compiled kernel. The error wraps
// ErrKernelUnavailable when the binary was built without it or the CPU
// cannot run it.
func NativeKernel(rounds int) (Kernel, error) {
	return openNative(Config{LehmerRounds: rounds})
}

func openNative(cfg Config) (Kernel, error) {
	k, err := bindings.Open(cfg.toBindings())
	if err != nil {
		return nil, RemapError(err)
	}
	return nativeKernel{k: k}, nil
}

func (nativeKernel) Name() string { return string(KernelNative) }

func (n nativeKernel) GCD64(a, b uint64) uint64 { return n.k.GCD64(a, b) }

func (n nativeKernel) Lehmer64(x, xlo, y, ylo uint64) Matrix64 {
	return n.k.Lehmer64(x, xlo, y, ylo)
}

var defaultKernel = sync.OnceValue(func() Kernel {
	k, err := selectKernel(DefaultConfig().withDefaults())
	if err != nil {
		return ArithmeticKernel(0)
	}
	return k
})

// DefaultKernel returns the kernel chosen for DefaultConfig. The choice is
// made once per process.
func DefaultKernel() Kernel {
	return defaultKernel()
}

func selectKernel(cfg Config) (Kernel, error) {
	if cfg.Kernel != nil {
		return cfg.Kernel, nil
	}
	ctx := context.Background()
	switch cfg.KernelMode {
	case KernelArithmetic:
		return ArithmeticKernel(cfg.LehmerRounds), nil
	case KernelNative:
		return openNative(cfg)
	default:
		k, err := openNative(cfg)
		if err != nil {
			cfg.Logger.Debug(ctx, "native kernel unavailable, using arithmetic kernel", "reason", err)
			return ArithmeticKernel(cfg.LehmerRounds), nil
		}
		return k, nil
	}
}

func kernelLogger(l logging.Logger, k Kernel) logging.Logger {
	return l.With("kernel", k.Name())
}
