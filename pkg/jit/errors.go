package jit

import (
	"errors"
	"fmt"
)

var (
	// ErrRegisterPressure is returned by Generate when an expression nests
	// deeper than the XMM register file can hold live values for.
	ErrRegisterPressure = errors.New("expression nests too deeply for the register file")

	// ErrUnsupportedExponent is returned when the right-hand side of ^ reads
	// x or does not fold to ±0.5 or a small integral constant. We refuse
	// rather than approximate: there is no libm call in the generated code.
	ErrUnsupportedExponent = errors.New("unsupported exponent: want a constant folding to ±0.5 or an integer with magnitude <= 1024")

	// ErrUnsupported is returned by Compile on hosts where we cannot map
	// and execute x86-64 code. Parsing and Eval still work there.
	ErrUnsupported = errors.New("jit compilation requires a unix-like amd64 host")
)

// AllocationError reports that the platform refused to hand out a memory
// region for the generated code.
type AllocationError struct {
	Size int
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocating %d executable bytes: %v", e.Size, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// ProtectionError reports that the platform refused to flip the region from
// writable to executable. The region has already been released.
type ProtectionError struct {
	Err error
}

func (e *ProtectionError) Error() string {
	return fmt.Sprintf("marking code region executable: %v", e.Err)
}

func (e *ProtectionError) Unwrap() error { return e.Err }
