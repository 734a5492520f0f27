package gcd

import (
	"math/big"
)

// reducer carries the per-call state of one reduction. It is never shared
// between goroutines.
type reducer struct {
	cfg    Config
	kernel Kernel
	bits   bitLengthCache
	steps  stepCounts
}

type stepCounts struct {
	halfGCD          int
	halfGCDClassical int
	halfGCDFallback  int
	lehmer           int
	lehmerFallback   int
	euclid           int
}

// reduce returns gcd(a, b) for a >= b >= 0.
func (r *reducer) reduce(a, b *big.Int) (*big.Int, error) {
	for b.BitLen() > r.cfg.HalfGCDThreshold {
		if a.BitLen()-b.BitLen() > WordBits {
			a, b = classicalStep(a, b)
			r.steps.halfGCDFallback++
			continue
		}
		m, a1, b1, err := r.hgcd(a, b, false)
		if err != nil {
			return nil, err
		}
		if m.IsIdentity() {
			a, b = classicalStep(a, b)
			r.steps.halfGCDFallback++
			continue
		}
		if a1 == nil {
			a1, b1 = m.Apply(a, b)
		}
		if err := checkPair("reduce", a1, b1); err != nil {
			return nil, err
		}
		a, b = a1, b1
	}

	for b.BitLen() > r.cfg.LehmerThreshold {
		n, err := r.bits.estimate(a)
		if err != nil {
			return nil, err
		}
		if n-b.BitLen() > WordBits {
			a, b = classicalStep(a, b)
			r.steps.lehmerFallback++
			continue
		}
		m, err := r.lehmerMatrix("lehmer", extractWindow(a, b, n))
		if err != nil {
			return nil, err
		}
		if m.IsIdentity() {
			a, b = classicalStep(a, b)
			r.steps.lehmerFallback++
			continue
		}
		a1, b1 := applyWord(m, a, b)
		if err := checkPair("lehmer", a1, b1); err != nil {
			return nil, err
		}
		a, b = a1, b1
		r.steps.lehmer++
	}

	return r.euclid(a, b), nil
}

// euclid finishes a reduction with classical steps until b is a native word,
// one modulo to bring a down as well, and the kernel's native GCD.
func (r *reducer) euclid(a, b *big.Int) *big.Int {
	for !b.IsUint64() {
		a, b = classicalStep(a, b)
		r.steps.euclid++
	}
	bw := b.Uint64()
	if bw == 0 {
		return a
	}
	var aw uint64
	if a.IsUint64() {
		aw = a.Uint64()
	} else {
		aw = new(big.Int).Rem(a, b).Uint64()
	}
	return new(big.Int).SetUint64(r.kernel.GCD64(aw, bw))
}

// classicalStep returns (b, a mod b).
func classicalStep(a, b *big.Int) (*big.Int, *big.Int) {
	return b, new(big.Int).Rem(a, b)
}

// checkPair guards the invariant a > b >= 0 between reduction steps.
func checkPair(op string, a, b *big.Int) error {
	if a.Sign() <= 0 || b.Sign() < 0 {
		return internalf(op, "reduced pair has signs (%d, %d)", a.Sign(), b.Sign())
	}
	if a.Cmp(b) <= 0 {
		return internalf(op, "reduced pair out of order: %d bits <= %d bits", a.BitLen(), b.BitLen())
	}
	return nil
}
