// Package cgo contains the compiled word kernel of the GCD engine.
//
// # Design Principles
//
// 1. Isolation: ALL CGO code lives in this package. No other package should
//    import "C". internal/bindings is the only importer.
//
// 2. Minimal Surface: two arithmetic entry points (GCD64 and Lehmer64) plus a
//    version string. Big integers never cross the boundary.
//
// 3. Parity: every function returns exactly what its internal/word
//    counterpart returns. The engine may pick either one at startup.
//
// 4. No Callbacks: the kernel is pure arithmetic on words passed by value.
//
// # Build
//
// The default build uses only flags on the cgo allowlist and runs on any CPU
// of the target architecture. Building with -tags bmi2 on amd64 adds -mbmi2,
// which the go command accepts only with CGO_CFLAGS_ALLOW=-mbmi2; such a
// kernel must not run on a CPU without BMI2. CPUSupported reports whether
// the running CPU can execute the kernel as built, and internal/bindings
// checks it once before the first call.
//
// # Threading
//
// The kernel holds no state and is safe to call from any goroutine.
package cgo
