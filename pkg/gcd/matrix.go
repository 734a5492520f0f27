package gcd

import (
	"math/big"

	"github.com/coinbase/cb-gcd-go/internal/word"
)

// Matrix64 is the word-sized transformation matrix produced by a Kernel.
type Matrix64 = word.Matrix64

// Matrix is a 2x2 matrix of arbitrary-precision entries mapping a pair
// (a, b) to (A*a + B*b, C*a + D*b). The matrices the engine builds are
// products of Euclidean step matrices [[0 1] [1 -q]], so their determinant is
// ±1 and their entries follow the sign pattern of Matrix64.
//
// A Matrix is a value: methods never modify the receiver's entries.
type Matrix struct {
	A, B, C, D *big.Int
}

// Identity returns the matrix of an empty quotient sequence.
func Identity() Matrix {
	return Matrix{A: big.NewInt(1), B: new(big.Int), C: new(big.Int), D: big.NewInt(1)}
}

func fromWord(m Matrix64) Matrix {
	return Matrix{A: big.NewInt(m.A), B: big.NewInt(m.B), C: big.NewInt(m.C), D: big.NewInt(m.D)}
}

// IsIdentity reports whether m carries no Euclidean steps.
func (m Matrix) IsIdentity() bool {
	return m.A.Cmp(one) == 0 && m.B.Sign() == 0 && m.C.Sign() == 0 && m.D.Cmp(one) == 0
}

// Mul returns the product m·n, which applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: dot(m.A, n.A, m.B, n.C),
		B: dot(m.A, n.B, m.B, n.D),
		C: dot(m.C, n.A, m.D, n.C),
		D: dot(m.C, n.B, m.D, n.D),
	}
}

// Apply returns m·(a, b).
func (m Matrix) Apply(a, b *big.Int) (*big.Int, *big.Int) {
	return dot(m.A, a, m.B, b), dot(m.C, a, m.D, b)
}

// Det returns AD - BC.
func (m Matrix) Det() *big.Int {
	return new(big.Int).Sub(new(big.Int).Mul(m.A, m.D), new(big.Int).Mul(m.B, m.C))
}

// BitLen returns the bit length of the largest entry magnitude.
func (m Matrix) BitLen() int {
	n := 0
	for _, e := range []*big.Int{m.A, m.B, m.C, m.D} {
		if l := e.BitLen(); l > n {
			n = l
		}
	}
	return n
}

// SignPatternOK reports whether sign(A) = -sign(B) = -sign(C) = sign(D),
// ignoring zero entries.
func (m Matrix) SignPatternOK() bool {
	pos := m.A.Sign() > 0 || m.D.Sign() > 0 || m.B.Sign() < 0 || m.C.Sign() < 0
	neg := m.A.Sign() < 0 || m.D.Sign() < 0 || m.B.Sign() > 0 || m.C.Sign() > 0
	return !(pos && neg)
}

var one = big.NewInt(1)

// dot returns x1*y1 + x2*y2.
func dot(x1, y1, x2, y2 *big.Int) *big.Int {
	r := new(big.Int).Mul(x1, y1)
	return r.Add(r, new(big.Int).Mul(x2, y2))
}

// applyWord returns m·(a, b) for a word-sized matrix.
func applyWord(m Matrix64, a, b *big.Int) (*big.Int, *big.Int) {
	var ca, cb big.Int
	ca.SetInt64(m.A)
	cb.SetInt64(m.B)
	x := dot(&ca, a, &cb, b)
	ca.SetInt64(m.C)
	cb.SetInt64(m.D)
	y := dot(&ca, a, &cb, b)
	return x, y
}
