//go:build (darwin || freebsd || linux) && amd64

package jit

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"
)

// load places generated code into executable memory and binds it as a Go
// func. The region is mapped read-write, populated, then flipped to
// read-execute; it is never written again once protected, and never invoked
// before the protection change commits.
func load(code []byte) (*Function, error) {
	mem, err := unix.Mmap(-1, 0, len(code),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, &AllocationError{Size: len(code), Err: err}
	}
	copy(mem, code)
	if err := unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC); err != nil {
		_ = unix.Munmap(mem)
		return nil, &ProtectionError{Err: err}
	}

	f := &Function{mem: mem}
	// purego marshals the float64 argument and result through XMM0 per the
	// System V convention, which is exactly the generated code's contract.
	purego.RegisterFunc(&f.call, uintptr(unsafe.Pointer(&mem[0])))
	return f, nil
}

func (f *Function) release() error {
	return unix.Munmap(f.mem)
}
