// Package amd64 encodes the small subset of x86-64 SSE2 needed to evaluate
// scalar double-precision expressions: register-to-register moves, the four
// arithmetic ops, square root, XOR (for sign flips) and RIP-relative loads of
// 64-bit literals from a constant pool appended after the code.
package amd64

import (
	"encoding/binary"
	"math"
)

// Reg is an XMM register. X0 carries the argument and the return value under
// the System V AMD64 calling convention; all sixteen are caller-saved, so
// generated code needs no prologue.
type Reg uint8

const (
	X0 Reg = iota
	X1
	X2
	X3
	X4
	X5
	X6
	X7
	X8
	X9
	X10
	X11
	X12
	X13
	X14
	X15
)

// fixup records a 4-byte RIP-relative displacement that must be patched to
// point at a pool literal once the code length is known.
type fixup struct {
	off int    // byte offset of the disp32 field inside code
	val uint64 // IEEE-754 bit pattern of the literal it refers to
}

// Builder accumulates an instruction stream append-only. Finalize freezes it:
// the literal pool is laid out after the code and every recorded displacement
// is patched, so the returned bytes are position-independent and need no
// relocation when copied into executable memory.
type Builder struct {
	code   []byte
	fixups []fixup
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) emit(bs ...byte) {
	b.code = append(b.code, bs...)
}

// Len returns the number of code bytes emitted so far, excluding the pool.
func (b *Builder) Len() int {
	return len(b.code)
}

// rr emits a two-operand SSE instruction in register-register form:
// prefix [REX] 0F opcode ModRM(11, dst, src). The mandatory prefix comes
// before REX; REX.R/REX.B extend dst/src to X8..X15 and are omitted when
// both operands fit in three bits.
func (b *Builder) rr(prefix, opcode byte, dst, src Reg) {
	b.emit(prefix)
	if rex := rexRB(dst, src); rex != 0 {
		b.emit(rex)
	}
	b.emit(0x0F, opcode, modRM(3, byte(dst)&7, byte(src)&7))
}

func rexRB(reg, rm Reg) byte {
	var rex byte
	if reg >= X8 {
		rex |= 1 << 2 // REX.R
	}
	if rm >= X8 {
		rex |= 1 // REX.B
	}
	if rex != 0 {
		rex |= 0x40
	}
	return rex
}

func modRM(mod, reg, rm byte) byte {
	return mod<<6 | reg<<3 | rm
}

// Movsd copies src to dst (MOVSD xmm, xmm).
func (b *Builder) Movsd(dst, src Reg) { b.rr(0xF2, 0x10, dst, src) }

// Addsd computes dst += src.
func (b *Builder) Addsd(dst, src Reg) { b.rr(0xF2, 0x58, dst, src) }

// Subsd computes dst -= src.
func (b *Builder) Subsd(dst, src Reg) { b.rr(0xF2, 0x5C, dst, src) }

// Mulsd computes dst *= src.
func (b *Builder) Mulsd(dst, src Reg) { b.rr(0xF2, 0x59, dst, src) }

// Divsd computes dst /= src.
func (b *Builder) Divsd(dst, src Reg) { b.rr(0xF2, 0x5E, dst, src) }

// Sqrtsd computes dst = √src.
func (b *Builder) Sqrtsd(dst, src Reg) { b.rr(0xF2, 0x51, dst, src) }

// Xorpd computes dst ^= src bitwise. XOR against -0.0 flips the sign bit.
func (b *Builder) Xorpd(dst, src Reg) { b.rr(0x66, 0x57, dst, src) }

// MovsdConst loads the 64-bit literal v into dst from the constant pool:
// MOVSD xmm, [RIP+disp32]. The displacement is patched in Finalize.
func (b *Builder) MovsdConst(dst Reg, v float64) {
	b.emit(0xF2)
	if rex := rexRB(dst, X0); rex != 0 {
		b.emit(rex)
	}
	// mod=00 rm=101 selects RIP-relative addressing.
	b.emit(0x0F, 0x10, modRM(0, byte(dst)&7, 5))
	b.fixups = append(b.fixups, fixup{off: len(b.code), val: math.Float64bits(v)})
	b.emit(0, 0, 0, 0)
}

// Ret emits the near return.
func (b *Builder) Ret() { b.emit(0xC3) }

// Finalize appends the 8-byte-aligned literal pool (deduplicated, in first-use
// order, padded with INT3) and patches every RIP-relative displacement. The
// result must not be appended to afterwards.
func (b *Builder) Finalize() []byte {
	if len(b.fixups) == 0 {
		return b.code
	}
	out := b.code
	for len(out)%8 != 0 {
		out = append(out, 0xCC)
	}

	poolOff := make(map[uint64]int)
	for _, f := range b.fixups {
		if _, ok := poolOff[f.val]; ok {
			continue
		}
		poolOff[f.val] = len(out)
		out = binary.LittleEndian.AppendUint64(out, f.val)
	}

	// disp32 counts from the end of the displacement field, which on these
	// loads is also the end of the instruction.
	for _, f := range b.fixups {
		disp := poolOff[f.val] - (f.off + 4)
		binary.LittleEndian.PutUint32(out[f.off:], uint32(int32(disp)))
	}
	return out
}
