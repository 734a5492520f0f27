package gcd

import (
	"math/big"
)

// hgcd reduces the prefix pair a >= b >= 0 to roughly a third of its bit
// length. The returned matrix is valid for every pair in [a, a+1) × [b, b+1):
// applied to any of them it yields the same quotient sequence the Euclidean
// algorithm would, so callers can use a prefix of their operands and apply
// the matrix to the full values.
//
// When the matrix came from more than one step the reduced pair M·(a, b) is
// returned with it; otherwise the remainders are nil and the caller applies
// the matrix itself. small forces a single word step.
func (r *reducer) hgcd(a, b *big.Int, small bool) (Matrix, *big.Int, *big.Int, error) {
	n, err := r.bits.estimate(a)
	if err != nil {
		return Matrix{}, nil, nil, err
	}
	if small || n <= r.cfg.HalfGCDBase {
		m, err := r.hgcdLeaf(a, b, n)
		return m, nil, nil, err
	}

	stop := int(float64(n) * r.cfg.HalfGCDStop)
	m := Identity()
	for b.Sign() > 0 {
		na := a.BitLen()
		if na <= stop {
			break
		}
		shift := na - n/2
		sub := false
		if n <= 2*r.cfg.HalfGCDBase {
			shift = na - r.cfg.HalfGCDBase
			sub = true
		}
		shift = max(shift, m.BitLen()+r.cfg.HalfGCDGuard)
		if na-shift < WindowBits || !boxAgrees(m, a, b, uint(shift)) {
			break
		}

		ah := new(big.Int).Rsh(a, uint(shift))
		bh := new(big.Int).Rsh(b, uint(shift))
		m1, ah1, bh1, err := r.hgcd(ah, bh, sub)
		if err != nil {
			return Matrix{}, nil, nil, err
		}
		if m1.IsIdentity() {
			next, a1, b1, ok := sameQuotient(m, a, b)
			if !ok {
				break
			}
			m, a, b = next, a1, b1
			r.steps.halfGCDClassical++
			continue
		}

		if ah1 != nil {
			x, y := m1.Apply(lowBits(a, uint(shift)), lowBits(b, uint(shift)))
			a = x.Add(x, ah1.Lsh(ah1, uint(shift)))
			b = y.Add(y, bh1.Lsh(bh1, uint(shift)))
		} else {
			a, b = m1.Apply(a, b)
		}
		if err := checkPair("halfgcd", a, b); err != nil {
			return Matrix{}, nil, nil, err
		}
		if m.IsIdentity() {
			m = m1
		} else {
			m = m1.Mul(m)
		}
		r.steps.halfGCD++
	}
	return m, a, b, nil
}

// hgcdLeaf answers a half-GCD call with one word step on the top window.
func (r *reducer) hgcdLeaf(a, b *big.Int, n int) (Matrix, error) {
	if n < WindowBits || b.Sign() == 0 {
		return Identity(), nil
	}
	m, err := r.lehmerMatrix("halfgcd", extractWindow(a, b, n))
	if err != nil {
		return Matrix{}, err
	}
	return fromWord(m), nil
}

// boxAgrees reports whether the parallelogram with corners (a+A, b+C) and
// (a+B, b+D) around (a, b) lies inside the single box of width 2^shift that
// holds (a, b). A matrix valid for that box is then valid for every pair in
// the parallelogram.
func boxAgrees(m Matrix, a, b *big.Int, shift uint) bool {
	return sameBlock(a, m.A, m.B, shift) && sameBlock(b, m.C, m.D, shift)
}

func sameBlock(v, d1, d2 *big.Int, shift uint) bool {
	hi := new(big.Int).Rsh(v, shift)
	t := new(big.Int)
	for _, d := range []*big.Int{d1, d2} {
		t.Add(v, d)
		if t.Sign() < 0 || t.Rsh(t, shift).Cmp(hi) != 0 {
			return false
		}
	}
	return true
}

// lowBits returns v mod 2^s.
func lowBits(v *big.Int, s uint) *big.Int {
	mask := new(big.Int).Lsh(one, s)
	mask.Sub(mask, one)
	return mask.And(mask, v)
}
