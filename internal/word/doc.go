// Package word holds the single-word arithmetic shared by the pure Go kernel
// and the tests of the native one.
//
// Everything here works on uint64 values with wrapping arithmetic. Callers
// outside the engine should go through gcd.Kernel instead of importing this
// package directly.
package word
