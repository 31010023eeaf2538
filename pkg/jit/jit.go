// Package jit compiles arithmetic expressions over a single variable x to
// directly callable x86-64 machine code: text is parsed to an AST
// (pkg/expr), the AST is lowered to SSE2 instructions (pkg/amd64), and the
// bytes are copied into an anonymous mapping that is flipped read-execute
// and bound as a Go func. No external toolchain, no cgo.
package jit

import "github.com/aschmolck/trivial-jit/pkg/expr"

// Function is a compiled expression bound to its own executable region.
// Distinct Functions own disjoint regions, so independent compilations never
// interfere. Call is safe to use from multiple goroutines concurrently: the
// code bytes are immutable once mapped executable. Call after Close is the
// caller's error; callers must also not Close while a Call is in flight.
type Function struct {
	mem  []byte // the executable mapping; nil after Close
	call func(float64) float64
}

// Call invokes the compiled code on x.
func (f *Function) Call(x float64) float64 {
	return f.call(x)
}

// Code returns a copy of the machine code, pool included, for inspection.
func (f *Function) Code() []byte {
	return append([]byte(nil), f.mem...)
}

// Close releases the executable region. Closing twice is a no-op.
func (f *Function) Close() error {
	if f.mem == nil {
		return nil
	}
	err := f.release()
	f.mem = nil
	f.call = nil
	return err
}

// Compile turns a one-line expression over x into a callable Function by
// running Parse, Generate and load in order, propagating each stage's error
// unchanged. The caller owns the result and should Close it when done.
func Compile(src string) (*Function, error) {
	root, err := expr.Parse(src)
	if err != nil {
		return nil, err
	}
	code, err := Generate(root)
	if err != nil {
		return nil, err
	}
	return load(code)
}
