package gcd

import (
	"context"
	"slices"
	"sync/atomic"

	"github.com/coinbase/cb-gcd-go/pkg/gcd/logging"
)

// watermarks warns once per mark when an operand is at least that many bits
// long. Results are unaffected.
type watermarks struct {
	marks []int
	seen  []atomic.Bool
	log   logging.Logger
}

func newWatermarks(marks []int, log logging.Logger) *watermarks {
	marks = slices.Clone(marks)
	slices.Sort(marks)
	return &watermarks{marks: marks, seen: make([]atomic.Bool, len(marks)), log: log}
}

func (w *watermarks) observe(ctx context.Context, n int) {
	for i, mark := range w.marks {
		if n < mark {
			return
		}
		if w.seen[i].CompareAndSwap(false, true) {
			watermarkCrossings.Inc()
			w.log.Warn(ctx, "operand size beyond watermark", "watermark_bits", mark, "operand_bits", n)
		}
	}
}

// crossed reports how many watermarks have fired so far.
func (w *watermarks) crossed() int {
	c := 0
	for i := range w.seen {
		if w.seen[i].Load() {
			c++
		}
	}
	return c
}
