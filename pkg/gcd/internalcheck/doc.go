// Package internalcheck holds static policy tests for the module.
//
// The tests load the module's packages with golang.org/x/tools/go/packages
// and walk their syntax trees. They check that only internal/cgo links
// against C and that the engine never formats or logs operand values.
//
// # Internal Use Only
//
// This package has no API. Applications should use pkg/gcd.
package internalcheck
