package word

// GCD64 returns the greatest common divisor of a and b. GCD64(0, 0) is 0 and
// GCD64(a, 0) is a.
//
// It runs Euclid's algorithm with least absolute remainders, which takes
// fewer iterations than plain remainders on average.
func GCD64(a, b uint64) uint64 {
	for b != 0 {
		r := a % b
		if b-r < r {
			r = b - r
		}
		a, b = b, r
	}
	return a
}
