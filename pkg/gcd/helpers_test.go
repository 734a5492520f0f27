package gcd

import (
	"context"
	"math/big"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

// randBits returns a uniformly random value with exactly n bits.
func randBits(rng *rand.Rand, n int) *big.Int {
	v := new(big.Int)
	if n <= 0 {
		return v
	}
	total := (n + 63) / 64 * 64
	for i := 0; i < total; i += 64 {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(rng.Uint64()))
	}
	v.Rsh(v, uint(total-n))
	return v.SetBit(v, n-1, 1)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// inRemainderSequence reports whether (a1, b1) is a pair of consecutive
// remainders of the Euclidean algorithm started at (a, b).
func inRemainderSequence(a, b, a1, b1 *big.Int) bool {
	x, y := new(big.Int).Set(a), new(big.Int).Set(b)
	for {
		if x.Cmp(a1) == 0 && y.Cmp(b1) == 0 {
			return true
		}
		if y.Sign() == 0 || x.Cmp(a1) < 0 {
			return false
		}
		x, y = y, new(big.Int).Rem(x, y)
	}
}

var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool {
	return x.Cmp(y) == 0
})

// smallConfig moves every threshold down so that modest operands exercise
// all three reduction stages.
func smallConfig() Config {
	return Config{
		HalfGCDThreshold: 400,
		HalfGCDBase:      192,
		HalfGCDGuard:     32,
		LehmerThreshold:  64,
		KernelMode:       KernelArithmetic,
		Watermarks:       []int{},
		Logger:           logging.Discard(),
	}
}

func mustEngine(t testing.TB, cfg Config) *Engine {
	t.Helper()
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

// testEngines returns engines for every kernel available in this binary and
// for both the default and the lowered thresholds.
func testEngines(t testing.TB) map[string]*Engine {
	t.Helper()
	arith := DefaultConfig()
	arith.KernelMode = KernelArithmetic
	arith.Logger = logging.Discard()
	engines := map[string]*Engine{
		"arithmetic": mustEngine(t, arith),
		"small":      mustEngine(t, smallConfig()),
	}
	rounds := smallConfig()
	rounds.LehmerRounds = 1
	engines["small-rounds"] = mustEngine(t, rounds)

	if _, err := NativeKernel(0); err == nil {
		native := arith
		native.KernelMode = KernelNative
		engines["native"] = mustEngine(t, native)
		small := smallConfig()
		small.KernelMode = KernelNative
		engines["small-native"] = mustEngine(t, small)
	}
	return engines
}

// recordingLogger counts records per level.
type recordingLogger struct {
	mu     sync.Mutex
	counts map[string]int
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{counts: map[string]int{}}
}

func (l *recordingLogger) add(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[level]++
}

func (l *recordingLogger) count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[level]
}

func (l *recordingLogger) Debug(context.Context, string, ...any) { l.add("debug") }
func (l *recordingLogger) Info(context.Context, string, ...any) { l.add("info") }
func (l *recordingLogger) Warn(context.Context, string, ...any) { l.add("warn") }
func (l *recordingLogger) Error(context.Context, string, ...any) { l.add("error") }
func (l *recordingLogger) With(...any) logging.Logger { return l }
