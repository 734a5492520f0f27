package word

import "math/bits"

// Matrix64 is a 2x2 transformation matrix with entries that fit a signed
// machine word. It maps a pair (x, y) to (A*x + B*y, C*x + D*y).
type Matrix64 struct {
	A, B, C, D int64
}

// Identity is the matrix of an empty quotient sequence.
var Identity = Matrix64{A: 1, D: 1}

// IsIdentity reports whether m carries no Euclidean steps.
func (m Matrix64) IsIdentity() bool {
	return m == Identity
}

// SignPatternOK reports whether sign(A) = -sign(B) = -sign(C) = sign(D),
// ignoring zero entries.
func (m Matrix64) SignPatternOK() bool {
	pos := m.A > 0 || m.D > 0 || m.B < 0 || m.C < 0
	neg := m.A < 0 || m.D < 0 || m.B > 0 || m.C > 0
	return !(pos && neg)
}

// Unimodular reports whether |AD - BC| = 1, which holds for every product of
// Euclidean step matrices. The products are formed in 128 bits so a wrapped
// entry is caught instead of cancelling out.
func (m Matrix64) Unimodular() bool {
	if !m.SignPatternOK() {
		return false
	}
	// Under the sign pattern AD >= 0 and BC >= 0.
	adHi, adLo := mulAbs(m.A, m.D)
	bcHi, bcLo := mulAbs(m.B, m.C)
	if adHi < bcHi || (adHi == bcHi && adLo < bcLo) {
		adHi, adLo, bcHi, bcLo = bcHi, bcLo, adHi, adLo
	}
	lo, borrow := bits.Sub64(adLo, bcLo, 0)
	hi, _ := bits.Sub64(adHi, bcHi, borrow)
	return hi == 0 && lo == 1
}

func mulAbs(x, y int64) (hi, lo uint64) {
	ux, uy := uint64(x), uint64(y)
	if x < 0 {
		ux = -ux
	}
	if y < 0 {
		uy = -uy
	}
	return bits.Mul64(ux, uy)
}
