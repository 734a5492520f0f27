package command

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coinbase/cb-gcd-go/pkg/gcd"
)

var (
	benchMinBits int
	benchMaxBits int
	benchRuns    int
	benchSeed    uint64
	benchMetrics bool

	Bench = &cobra.Command{
		Use:   "bench",
		Short: "Times the engine against math/big on random operands of doubling size.",
		Args:  cobra.NoArgs,
		RunE:  commandBench,
	}
)

type benchResult struct {
	bits          int
	engine, ref   time.Duration
	engineResults []*big.Int
	refResults    []*big.Int
}

func commandBench(cmd *cobra.Command, args []string) error {
	if benchMinBits < 1 || benchMaxBits < benchMinBits {
		return fmt.Errorf("need 1 <= --min-bits <= --max-bits, got %d and %d", benchMinBits, benchMaxBits)
	}
	if benchRuns < 1 {
		return fmt.Errorf("--runs must be positive, got %d", benchRuns)
	}

	rng := rand.New(rand.NewPCG(benchSeed, benchSeed+1))
	var results []benchResult
	for bits := benchMinBits; bits <= benchMaxBits; bits *= 2 {
		r, err := benchSize(rng, bits)
		if err != nil {
			return err
		}
		results = append(results, r)
	}

	if err := checkResults(results); err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "bits\tengine\tmath/big\tratio\t")
	for _, r := range results {
		engineAvg := r.engine / time.Duration(benchRuns)
		refAvg := r.ref / time.Duration(benchRuns)
		ratio := float64(r.ref) / float64(max(r.engine, 1))
		fmt.Fprintf(w, "%d\t%v\t%v\t%.2fx\t\n", r.bits, engineAvg, refAvg, ratio)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if benchMetrics {
		mfs, err := gcd.Registry.Gather()
		if err != nil {
			return err
		}
		for _, mf := range mfs {
			if _, err := expfmt.MetricFamilyToText(cmd.OutOrStdout(), mf); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkResults compares every engine result with the math/big reference.
func checkResults(results []benchResult) error {
	for _, r := range results {
		for i := range r.engineResults {
			if r.engineResults[i].Cmp(r.refResults[i]) != 0 {
				return fmt.Errorf("mismatch at %d bits, run %d", r.bits, i)
			}
		}
	}
	return nil
}

func benchSize(rng *rand.Rand, bits int) (benchResult, error) {
	r := benchResult{bits: bits}
	as := make([]*big.Int, benchRuns)
	bs := make([]*big.Int, benchRuns)
	for i := range as {
		as[i], bs[i] = randomOperand(rng, bits), randomOperand(rng, bits)
	}

	start := time.Now()
	for i := range as {
		g, err := engine.GCD(as[i], bs[i])
		if err != nil {
			return r, err
		}
		r.engineResults = append(r.engineResults, g)
	}
	r.engine = time.Since(start)

	start = time.Now()
	for i := range as {
		r.refResults = append(r.refResults, new(big.Int).GCD(nil, nil, as[i], bs[i]))
	}
	r.ref = time.Since(start)
	return r, nil
}

func randomOperand(rng *rand.Rand, bits int) *big.Int {
	v := new(big.Int)
	for v.BitLen() < bits {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(rng.Uint64()))
	}
	v.Rsh(v, uint(v.BitLen()-bits))
	return v
}

func registerBenchFlags(fs *pflag.FlagSet) {
	fs.IntVar(&benchMinBits, "min-bits", 64, "smallest operand size")
	fs.IntVar(&benchMaxBits, "max-bits", 1<<16, "largest operand size")
	fs.IntVar(&benchRuns, "runs", 20, "operand pairs per size")
	fs.Uint64Var(&benchSeed, "seed", 1, "random seed")
	fs.BoolVar(&benchMetrics, "metrics", false, "print the engine's metrics after the run")
}

func init() {
	registerBenchFlags(Bench.Flags())
	Root.AddCommand(Bench)
}
