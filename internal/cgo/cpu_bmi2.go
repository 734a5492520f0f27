//go:build cgo && amd64 && bmi2

package cgo

// Opt-in build for hosts known to have BMI2. The go command only accepts
// the flag with CGO_CFLAGS_ALLOW=-mbmi2.

/*
#cgo CFLAGS: -mbmi2
*/
import "C"

import "golang.org/x/sys/cpu"

// CPUSupported reports whether the running CPU can execute the kernel, which
// this build compiles with -mbmi2.
func CPUSupported() bool { return cpu.X86.HasBMI2 }
