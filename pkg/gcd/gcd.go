package gcd

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

// Engine computes greatest common divisors with a fixed configuration and
// word kernel. An Engine is safe for concurrent use; every call keeps its
// scratch state on its own stack.
type Engine struct {
	cfg    Config
	kernel Kernel
	log    logging.Logger
	marks  *watermarks
}

// New validates cfg and builds an Engine. With KernelNative it fails with an
// error wrapping ErrKernelUnavailable when the native kernel cannot be used.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	k, err := selectKernel(cfg)
	if err != nil {
		return nil, err
	}
	log := kernelLogger(cfg.Logger, k)
	log.Debug(context.Background(), "engine ready",
		"half_gcd_threshold", cfg.HalfGCDThreshold,
		"lehmer_threshold", cfg.LehmerThreshold)
	kernelInfo.WithLabelValues(k.Name()).Set(1)
	return &Engine{
		cfg:    cfg,
		kernel: k,
		log:    log,
		marks:  newWatermarks(cfg.Watermarks, log),
	}, nil
}

// Config returns the effective configuration, with defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// Kernel returns the word kernel in use.
func (e *Engine) Kernel() Kernel {
	return e.kernel
}

// GCD returns the non-negative greatest common divisor of a and b. Signs are
// ignored, GCD(0, b) = |b| and GCD(0, 0) = 0. The arguments are not
// modified. A non-nil error is only returned for nil arguments or when an
// internal consistency check fails; the latter wraps ErrInternal.
func (e *Engine) GCD(a, b *big.Int) (*big.Int, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil operand", ErrDomain)
	}
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	if x.Cmp(y) < 0 {
		x, y = y, x
	}
	ctx := context.Background()
	e.marks.observe(ctx, x.BitLen())

	if y.Sign() == 0 {
		return x, nil
	}
	if x.IsUint64() {
		callsTotal.WithLabelValues(pathNative).Inc()
		return new(big.Int).SetUint64(e.kernel.GCD64(x.Uint64(), y.Uint64())), nil
	}
	if y.IsUint64() {
		callsTotal.WithLabelValues(pathMixed).Inc()
		rem := new(big.Int).Rem(x, y).Uint64()
		return new(big.Int).SetUint64(e.kernel.GCD64(y.Uint64(), rem)), nil
	}

	callsTotal.WithLabelValues(pathBig).Inc()
	k := min(x.TrailingZeroBits(), y.TrailingZeroBits())
	x.Rsh(x, x.TrailingZeroBits())
	y.Rsh(y, y.TrailingZeroBits())
	if x.Cmp(y) < 0 {
		x, y = y, x
	}
	r := e.newReducer()
	g, err := r.reduce(x, y)
	r.steps.flush()
	if err != nil {
		e.log.Error(ctx, "reduction failed", logging.Bits("a", a), logging.Bits("b", b), "error", err)
		return nil, err
	}
	return g.Lsh(g, k), nil
}

// HalfGCD reduces a pair a >= b >= 0 once and returns the matrix M together
// with (a', b') = M·(a, b). gcd(a', b') = gcd(a, b), and for operands above
// the configured base size a' has roughly two thirds of the bits of a. The
// identity is returned when no quotient could be certified.
func (e *Engine) HalfGCD(a, b *big.Int) (Matrix, *big.Int, *big.Int, error) {
	if a == nil || b == nil || b.Sign() < 0 || a.Cmp(b) < 0 {
		return Matrix{}, nil, nil, fmt.Errorf("%w: half-GCD needs a >= b >= 0", ErrDomain)
	}
	if b.Sign() == 0 {
		return Identity(), new(big.Int).Set(a), new(big.Int), nil
	}
	r := e.newReducer()
	m, a1, b1, err := r.hgcd(new(big.Int).Set(a), new(big.Int).Set(b), false)
	r.steps.flush()
	if err != nil {
		return Matrix{}, nil, nil, err
	}
	if a1 == nil {
		a1, b1 = m.Apply(a, b)
	}
	return m, a1, b1, nil
}

func (e *Engine) newReducer() *reducer {
	return &reducer{cfg: e.cfg, kernel: e.kernel}
}

var defaultEngine = sync.OnceValue(func() *Engine {
	e, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
})

// Default returns the engine behind the package level helpers.
func Default() *Engine {
	return defaultEngine()
}

// GCD returns the non-negative greatest common divisor of a and b using the
// default engine.
func GCD(a, b *big.Int) (*big.Int, error) {
	return Default().GCD(a, b)
}

// MustGCD is like GCD but panics on error.
func MustGCD(a, b *big.Int) *big.Int {
	g, err := GCD(a, b)
	if err != nil {
		panic(err)
	}
	return g
}

// Uint64 returns the greatest common divisor of two native words.
func Uint64(a, b uint64) uint64 {
	return DefaultKernel().GCD64(a, b)
}

// Int64 returns the greatest common divisor of |a| and |b|. The result is
// unsigned because gcd(math.MinInt64, 0) = 2^63.
func Int64(a, b int64) uint64 {
	return Uint64(abs64(a), abs64(b))
}

func abs64(v int64) uint64 {
	if v < 0 {
		return -uint64(v)
	}
	return uint64(v)
}
