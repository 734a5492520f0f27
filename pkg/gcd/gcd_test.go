package gcd

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

type GCDCase struct {
	Name    string
	A, B, G string
}

func bigFromString(t testing.TB, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		t.Fatalf("bad literal %q", s)
	}
	return v
}

var gcdCases = []GCDCase{
	{"zero-zero", "0", "0", "0"},
	{"zero-one", "0", "1", "1"},
	{"zero-neg", "0", "-18", "18"},
	{"small", "12", "18", "6"},
	{"negative", "-12", "18", "6"},
	{"both-negative", "-12", "-18", "6"},
	{"coprime", "17", "5", "1"},
	{"equal", "123456789", "123456789", "123456789"},
	{"max-word", "0xffffffffffffffff", "0xffffffffffffffff", "0xffffffffffffffff"},
	{"max-word-coprime", "0xffffffffffffffff", "0xfffffffffffffffe", "1"},
	{"word-boundary", "0x10000000000000000", "0xffffffffffffffff", "1"},
	{"word-boundary-even", "0x10000000000000000", "0x8000000000000000", "0x8000000000000000"},
	{"mixed", "0x10000000000000002", "6", "6"},
	{"powers-of-two", "0x1" + zeros(60), "0x1" + zeros(40), "0x1" + zeros(40)},
	{"shared-power-of-two", "0x3" + zeros(50), "0x9" + zeros(45), "0x3" + zeros(45)},
	{"mersenne", "0x" + ones(89), "0x" + ones(61), "0xf"},
	{"mersenne-divisible", "0x" + ones(120), "0x" + ones(40), "0x" + ones(40)},
}

func zeros(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '0'
	}
	return string(b)
}

func ones(nibbles int) string {
	b := make([]byte, nibbles)
	for i := range b {
		b[i] = 'f'
	}
	return string(b)
}

func init() {
	n := len(gcdCases)
	for i := 0; i < n; i++ {
		c := gcdCases[i]
		gcdCases = append(gcdCases, GCDCase{Name: c.Name + "-swapped", A: c.B, B: c.A, G: c.G})
	}
}

func TestGCDCases(t *testing.T) {
	for name, e := range testEngines(t) {
		for _, c := range gcdCases {
			t.Run(name+"/"+c.Name, func(t *testing.T) {
				g, err := e.GCD(bigFromString(t, c.A), bigFromString(t, c.B))
				require.NoError(t, err)
				assert.Zero(t, g.Cmp(bigFromString(t, c.G)), "got %v", g)
			})
		}
	}
}

func TestGCDScenarios(t *testing.T) {
	pow := func(b, e int64) *big.Int { return new(big.Int).Exp(big.NewInt(b), big.NewInt(e), nil) }
	mul := func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) }
	p67 := pow(2, 67)

	tests := []struct {
		name    string
		a, b, g *big.Int
	}{
		{"small", big.NewInt(48), big.NewInt(18), big.NewInt(6)},
		{"zero", big.NewInt(0), big.NewInt(5), big.NewInt(5)},
		{"twin", new(big.Int).Add(p67, one), new(big.Int).Sub(p67, one), one},
		{"smooth", mul(pow(2, 200), pow(3, 50)), mul(pow(2, 150), pow(3, 80)), mul(pow(2, 150), pow(3, 50))},
		{"negative", big.NewInt(-270), big.NewInt(192), big.NewInt(6)},
	}
	for name, e := range testEngines(t) {
		for _, tt := range tests {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				require.Zero(t, MustGCDWith(t, e, tt.a, tt.b).Cmp(tt.g))
				require.Zero(t, MustGCDWith(t, e, tt.b, tt.a).Cmp(tt.g))
			})
		}
	}
}

func TestGCDMatchesBig(t *testing.T) {
	widths := []int{8, 32, 64, 128, 1024, 5000, 100000}
	for name, e := range testEngines(t) {
		rng := newRand(1)
		for _, w := range widths {
			iters := 40
			if w >= 5000 {
				iters = 4
			}
			if w >= 100000 {
				iters = 1
			}
			t.Run(fmt.Sprintf("%s/%d", name, w), func(t *testing.T) {
				for i := 0; i < iters; i++ {
					a := randBits(rng, w)
					b := randBits(rng, w-rng.IntN(w/4+1))
					if i%2 == 1 {
						f := randBits(rng, w/3+1)
						a.Mul(a, f)
						b.Mul(b, f)
					}
					want := new(big.Int).GCD(nil, nil, a, b)
					got, err := e.GCD(a, b)
					require.NoError(t, err)
					require.Zero(t, got.Cmp(want), "width %d iteration %d", w, i)
				}
			})
		}
	}
}

func TestGCDProperties(t *testing.T) {
	e := mustEngine(t, smallConfig())
	rng := newRand(2)
	for i := 0; i < 30; i++ {
		a := randBits(rng, 1+rng.IntN(3000))
		b := randBits(rng, 1+rng.IntN(3000))
		g := MustGCDWith(t, e, a, b)

		assert.Zero(t, g.Cmp(MustGCDWith(t, e, b, a)), "commutative")
		assert.Zero(t, g.Cmp(MustGCDWith(t, e, new(big.Int).Neg(a), b)), "sign of a")
		assert.Zero(t, g.Cmp(MustGCDWith(t, e, a, new(big.Int).Neg(b))), "sign of b")
		assert.Zero(t, a.Cmp(MustGCDWith(t, e, a, a)), "gcd(a, a)")
		assert.Zero(t, a.Cmp(MustGCDWith(t, e, a, new(big.Int))), "gcd(a, 0)")
		assert.Zero(t, one.Cmp(MustGCDWith(t, e, a, one)), "gcd(a, 1)")

		assert.Zero(t, new(big.Int).Rem(a, g).Sign(), "divides a")
		assert.Zero(t, new(big.Int).Rem(b, g).Sign(), "divides b")
		ca, cb := new(big.Int).Quo(a, g), new(big.Int).Quo(b, g)
		assert.Zero(t, one.Cmp(MustGCDWith(t, e, ca, cb)), "cofactors coprime")

		k := randBits(rng, 1+rng.IntN(500))
		kg := MustGCDWith(t, e, new(big.Int).Mul(k, a), new(big.Int).Mul(k, b))
		assert.Zero(t, kg.Cmp(new(big.Int).Mul(k, g)), "homogeneous")
	}
}

func MustGCDWith(t testing.TB, e *Engine, a, b *big.Int) *big.Int {
	t.Helper()
	g, err := e.GCD(a, b)
	require.NoError(t, err)
	return g
}

func TestGCDDoesNotModifyArguments(t *testing.T) {
	e := mustEngine(t, smallConfig())
	rng := newRand(3)
	a := new(big.Int).Neg(randBits(rng, 2000))
	a.Lsh(a, 17)
	b := randBits(rng, 1900)
	b.Lsh(b, 5)
	a0, b0 := new(big.Int).Set(a), new(big.Int).Set(b)

	g, err := e.GCD(a, b)
	require.NoError(t, err)
	require.Zero(t, a.Cmp(a0))
	require.Zero(t, b.Cmp(b0))
	require.True(t, g != a && g != b, "result aliases an argument")
}

func TestGCDNil(t *testing.T) {
	_, err := GCD(nil, big.NewInt(1))
	require.ErrorIs(t, err, ErrDomain)
}

func TestGCDPowersOfTwo(t *testing.T) {
	e := mustEngine(t, smallConfig())
	for _, p := range [][2]uint{{0, 0}, {1, 300}, {64, 65}, {500, 1000}, {1000, 999}} {
		a := new(big.Int).Lsh(one, p[0])
		b := new(big.Int).Lsh(one, p[1])
		g := MustGCDWith(t, e, a, b)
		assert.Equal(t, int(min(p[0], p[1])), int(g.TrailingZeroBits()))
		assert.Equal(t, 1, g.BitLen()-int(g.TrailingZeroBits()))
	}
}

// Consecutive Fibonacci numbers have every quotient equal to one, the
// slowest case for every stage.
func TestGCDFibonacci(t *testing.T) {
	a, b := big.NewInt(1), big.NewInt(1)
	for i := 0; i < 20000; i++ {
		a.Add(a, b)
		a, b = b, a
	}
	for name, e := range testEngines(t) {
		t.Run(name, func(t *testing.T) {
			g := MustGCDWith(t, e, b, a)
			require.Zero(t, g.Cmp(one))
			g = MustGCDWith(t, e, new(big.Int).Mul(b, big.NewInt(91)), new(big.Int).Mul(a, big.NewInt(91)))
			require.Zero(t, g.Cmp(big.NewInt(91)))
		})
	}
}

func TestGCDCurveParameters(t *testing.T) {
	curve := btcec.S256()
	n, p := curve.N, curve.P
	e := mustEngine(t, smallConfig())
	require.Zero(t, one.Cmp(MustGCDWith(t, e, p, n)))

	rng := newRand(4)
	for i := 0; i < 10; i++ {
		u := randBits(rng, 2000)
		v := randBits(rng, 1500)
		want := new(big.Int).GCD(nil, nil, u, v)
		want.Mul(want, n)
		got := MustGCDWith(t, e, new(big.Int).Mul(u, n), new(big.Int).Mul(v, n))
		require.Zero(t, got.Cmp(want))
	}
}

func TestGCDConcurrent(t *testing.T) {
	e := mustEngine(t, smallConfig())
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		seed := uint64(100 + i)
		g.Go(func() error {
			rng := newRand(seed)
			for j := 0; j < 10; j++ {
				a, b := randBits(rng, 3000), randBits(rng, 2900)
				got, err := e.GCD(a, b)
				if err != nil {
					return err
				}
				if want := new(big.Int).GCD(nil, nil, a, b); got.Cmp(want) != 0 {
					return fmt.Errorf("seed %d: got %v want %v", seed, got, want)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestUint64AndInt64(t *testing.T) {
	assert.Equal(t, uint64(0), Uint64(0, 0))
	assert.Equal(t, uint64(7), Uint64(0, 7))
	assert.Equal(t, uint64(6), Uint64(270, 192))
	assert.Equal(t, uint64(math.MaxUint64), Uint64(math.MaxUint64, 0))
	assert.Equal(t, uint64(6), Int64(-12, 18))
	assert.Equal(t, uint64(1)<<63, Int64(math.MinInt64, 0))
	assert.Equal(t, uint64(1)<<62, Int64(math.MinInt64, 1<<62))
}

func TestMustGCDPanicsOnNil(t *testing.T) {
	require.Panics(t, func() { MustGCD(big.NewInt(1), nil) })
	require.Zero(t, MustGCD(big.NewInt(12), big.NewInt(-8)).Cmp(big.NewInt(4)))
}

// brokenKernel returns matrices that are not products of Euclidean steps.
type brokenKernel struct {
	Kernel
	m Matrix64
}

func (k brokenKernel) Lehmer64(x, xlo, y, ylo uint64) Matrix64 {
	return k.m
}

func TestGCDRejectsBadKernelMatrix(t *testing.T) {
	rng := newRand(5)
	a, b := randBits(rng, 300), randBits(rng, 300)
	a.SetBit(a, 0, 1)
	b.SetBit(b, 0, 1)

	for name, m := range map[string]Matrix64{
		"determinant": {A: 2, D: 1},
		"signs":       {A: 1, B: 1, C: 0, D: 1},
	} {
		t.Run(name, func(t *testing.T) {
			log := newRecordingLogger()
			e := mustEngine(t, Config{
				Kernel:     brokenKernel{Kernel: ArithmeticKernel(0), m: m},
				Watermarks: []int{},
				Logger:     log,
			})
			_, err := e.GCD(a, b)
			require.ErrorIs(t, err, ErrInternal)
			var ie *InternalError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, "lehmer", ie.Op)
			assert.Equal(t, 1, log.count("error"))
		})
	}
}

func TestWatermarksWarnOnce(t *testing.T) {
	log := newRecordingLogger()
	cfg := smallConfig()
	cfg.Watermarks = []int{200, 100}
	cfg.Logger = log
	e := mustEngine(t, cfg)

	rng := newRand(6)
	_ = MustGCDWith(t, e, randBits(rng, 50), randBits(rng, 40))
	assert.Equal(t, 0, log.count("warn"))
	_ = MustGCDWith(t, e, randBits(rng, 150), randBits(rng, 40))
	assert.Equal(t, 1, log.count("warn"))
	_ = MustGCDWith(t, e, randBits(rng, 250), randBits(rng, 240))
	_ = MustGCDWith(t, e, randBits(rng, 260), randBits(rng, 240))
	assert.Equal(t, 2, log.count("warn"))
	assert.Equal(t, 2, e.marks.crossed())
}

func TestWatermarksDoNotChangeResults(t *testing.T) {
	quiet := smallConfig()
	loud := smallConfig()
	loud.Watermarks = []int{1}
	loud.Logger = logging.Discard()
	eq, el := mustEngine(t, quiet), mustEngine(t, loud)

	rng := newRand(7)
	for i := 0; i < 10; i++ {
		a, b := randBits(rng, 700), randBits(rng, 650)
		require.Zero(t, MustGCDWith(t, eq, a, b).Cmp(MustGCDWith(t, el, a, b)))
	}
}

func TestMetricsCountPaths(t *testing.T) {
	e := mustEngine(t, smallConfig())
	before := counterValue(t, "cbgcd_calls_total", "path", pathBig)
	rng := newRand(8)
	_ = MustGCDWith(t, e, randBits(rng, 1000), randBits(rng, 1000))
	assert.Equal(t, before+1, counterValue(t, "cbgcd_calls_total", "path", pathBig))
	assert.Positive(t, counterValue(t, "cbgcd_steps_total", "stage", "halfgcd"))
}

// counterValue sums the counters of a family whose label matches.
func counterValue(t *testing.T, family, label, value string) float64 {
	t.Helper()
	mfs, err := Registry.Gather()
	require.NoError(t, err)
	var sum float64
	for _, mf := range mfs {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					sum += m.GetCounter().GetValue()
				}
			}
		}
	}
	return sum
}

func TestEngineLogsKernelChoice(t *testing.T) {
	log := newRecordingLogger()
	e := mustEngine(t, Config{KernelMode: KernelAuto, Logger: log})
	require.NotNil(t, e.Kernel())
	assert.GreaterOrEqual(t, log.count("debug"), 1)
}
