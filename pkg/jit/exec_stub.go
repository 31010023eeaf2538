//go:build !((darwin || freebsd || linux) && amd64)

package jit

// load refuses on hosts where we cannot map and run x86-64 code. Parsing,
// Generate and Eval still work; only the final loading step is gated.
func load(code []byte) (*Function, error) {
	return nil, ErrUnsupported
}

func (f *Function) release() error { return nil }
