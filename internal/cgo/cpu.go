//go:build cgo && !(amd64 && bmi2)

package cgo

// CPUSupported reports whether the running CPU can execute the kernel. The
// default build uses no optional instructions.
func CPUSupported() bool { return true }
