// Package gcd computes greatest common divisors of arbitrary-precision
// integers.
//
// Small operands are handled directly by a word kernel. Large operands are
// reduced in three stages, each taking over when the smaller operand drops
// below the previous stage's threshold:
//
//   - a recursive half-GCD that works on operand prefixes and combines the
//     resulting transformation matrices,
//   - a Lehmer loop that reads a 128-bit window off the top of the operands
//     and lets the kernel compute a matrix of certain quotients,
//   - the classical Euclidean loop, finished with one native GCD.
//
// Every matrix is checked to be a product of Euclidean steps before it is
// applied, and every reduced pair must stay positive and ordered. A failed
// check is reported as an error wrapping ErrInternal; results are never
// silently wrong.
//
// # Word Kernels
//
// The kernel is either the pure Go implementation or a compiled C version of
// it linked through cgo. The native kernel is checked once per process and
// used only when it agrees with the Go version on a set of startup vectors:
//
//	fmt.Println(gcd.DefaultKernel().Name()) // "native" or "arithmetic"
//
// # Basic Usage
//
//	g, err := gcd.GCD(a, b)
//
//	engine, err := gcd.New(gcd.Config{KernelMode: gcd.KernelArithmetic})
//	g, err := engine.GCD(a, b)
//
// Engines are safe for concurrent use. Tuning knobs only change speed and may
// be read from a TOML file with LoadConfig.
package gcd
