package gcd

import "github.com/coinbase/cb-gcd-go/internal/bindings"

var (
	Version = "v0.0.0-in-progress"
)

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// KernelVersion returns the version string reported by the native kernel if
// it is linked in; otherwise it names the arithmetic kernel.
func KernelVersion() string {
	if v := bindings.Version(); v != "" {
		return v
	}
	return string(KernelArithmetic)
}
