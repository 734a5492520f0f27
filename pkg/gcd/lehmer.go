package gcd

import (
	"fmt"
	"math/big"
)

// lehmerMatrix runs the kernel on w and checks what comes back. A window
// whose first operand is smaller than its second is a domain error; a matrix
// that is not a product of Euclidean steps is an internal error.
func (r *reducer) lehmerMatrix(op string, w window) (Matrix64, error) {
	if w.x < w.y || (w.x == w.y && w.xlo < w.ylo) {
		return Matrix64{}, fmt.Errorf("%w: window first operand below second", ErrDomain)
	}
	m := r.kernel.Lehmer64(w.x, w.xlo, w.y, w.ylo)
	if !m.SignPatternOK() {
		return Matrix64{}, internalf(op, "kernel %s returned matrix %+v with mixed signs", r.kernel.Name(), m)
	}
	if !m.Unimodular() {
		return Matrix64{}, internalf(op, "kernel %s returned matrix %+v with |det| != 1", r.kernel.Name(), m)
	}
	return m, nil
}

// sameQuotient tries to extend m, which maps some box of pairs onto the box
// with corners (a+A, b+C) and (a+B, b+D) around (a, b), by one Euclidean
// step. The step is accepted only when the quotient of a by b is also the
// quotient at both corners, so the extended matrix stays valid for the whole
// box. It returns the extended matrix and the new pair.
func sameQuotient(m Matrix, a, b *big.Int) (Matrix, *big.Int, *big.Int, bool) {
	if b.Sign() <= 0 {
		return Matrix{}, nil, nil, false
	}
	q, y := new(big.Int).QuoRem(a, b, new(big.Int))
	c := new(big.Int).Sub(m.A, new(big.Int).Mul(q, m.C))
	d := new(big.Int).Sub(m.B, new(big.Int).Mul(q, m.D))
	if !inRange(y, c, b, m.C) || !inRange(y, d, b, m.D) {
		return Matrix{}, nil, nil, false
	}
	return Matrix{A: m.C, B: m.D, C: c, D: d}, b, y, true
}

// inRange reports whether 0 <= y+dy < b+db.
func inRange(y, dy, b, db *big.Int) bool {
	lo := new(big.Int).Add(y, dy)
	if lo.Sign() < 0 {
		return false
	}
	return lo.Cmp(new(big.Int).Add(b, db)) < 0
}
