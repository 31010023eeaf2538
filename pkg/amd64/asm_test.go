package amd64

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestEncodings(t *testing.T) {
	tests := []struct {
		name string
		emit func(b *Builder)
		want []byte
	}{
		{
			name: "MovsdX1X0",
			emit: func(b *Builder) { b.Movsd(X1, X0) },
			want: []byte{0xF2, 0x0F, 0x10, 0xC8},
		},
		{
			name: "MovsdX0X1",
			emit: func(b *Builder) { b.Movsd(X0, X1) },
			want: []byte{0xF2, 0x0F, 0x10, 0xC1},
		},
		{
			name: "AddsdX1X2",
			emit: func(b *Builder) { b.Addsd(X1, X2) },
			want: []byte{0xF2, 0x0F, 0x58, 0xCA},
		},
		{
			name: "SubsdX3X4",
			emit: func(b *Builder) { b.Subsd(X3, X4) },
			want: []byte{0xF2, 0x0F, 0x5C, 0xDC},
		},
		{
			name: "MulsdX1X1",
			emit: func(b *Builder) { b.Mulsd(X1, X1) },
			want: []byte{0xF2, 0x0F, 0x59, 0xC9},
		},
		{
			name: "DivsdX2X1",
			emit: func(b *Builder) { b.Divsd(X2, X1) },
			want: []byte{0xF2, 0x0F, 0x5E, 0xD1},
		},
		{
			name: "SqrtsdX1X1",
			emit: func(b *Builder) { b.Sqrtsd(X1, X1) },
			want: []byte{0xF2, 0x0F, 0x51, 0xC9},
		},
		{
			name: "XorpdX1X2",
			emit: func(b *Builder) { b.Xorpd(X1, X2) },
			want: []byte{0x66, 0x0F, 0x57, 0xCA},
		},
		{
			name: "RexRHighDst",
			emit: func(b *Builder) { b.Movsd(X8, X0) },
			want: []byte{0xF2, 0x44, 0x0F, 0x10, 0xC0},
		},
		{
			name: "RexBHighSrc",
			emit: func(b *Builder) { b.Movsd(X0, X9) },
			want: []byte{0xF2, 0x41, 0x0F, 0x10, 0xC1},
		},
		{
			name: "RexRBBoth",
			emit: func(b *Builder) { b.Addsd(X15, X12) },
			want: []byte{0xF2, 0x45, 0x0F, 0x58, 0xFC},
		},
		{
			name: "Ret",
			emit: func(b *Builder) { b.Ret() },
			want: []byte{0xC3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.emit(b)
			got := b.Finalize()
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encoded % X, want % X", got, tt.want)
			}
		})
	}
}

func TestMovsdConstPoolPatching(t *testing.T) {
	b := NewBuilder()
	b.MovsdConst(X1, 1.5) // 8 bytes: F2 0F 10 0D disp32
	b.Ret()               // 1 byte
	out := b.Finalize()

	// Code is 9 bytes, padded to 16 with INT3, then one pool entry.
	if len(out) != 24 {
		t.Fatalf("len = %d, want 24", len(out))
	}
	wantHead := []byte{0xF2, 0x0F, 0x10, 0x0D}
	if !bytes.Equal(out[:4], wantHead) {
		t.Fatalf("opcode bytes % X, want % X", out[:4], wantHead)
	}
	disp := int32(binary.LittleEndian.Uint32(out[4:8]))
	// The load ends at offset 8; the literal sits at 16.
	if disp != 8 {
		t.Errorf("disp32 = %d, want 8", disp)
	}
	for _, pad := range out[9:16] {
		if pad != 0xCC {
			t.Errorf("padding byte %#02x, want 0xCC", pad)
		}
	}
	if got := binary.LittleEndian.Uint64(out[16:]); got != math.Float64bits(1.5) {
		t.Errorf("pool literal bits %#x, want %#x", got, math.Float64bits(1.5))
	}
}

func TestConstPoolDedup(t *testing.T) {
	b := NewBuilder()
	b.MovsdConst(X1, math.Copysign(0, -1))
	b.MovsdConst(X2, 2.5)
	b.MovsdConst(X3, math.Copysign(0, -1))
	b.Ret()
	out := b.Finalize()

	// Three 8-byte loads plus RET is 25 bytes, padded to 32; two distinct
	// literals follow.
	if len(out) != 48 {
		t.Fatalf("len = %d, want 48", len(out))
	}
	first := binary.LittleEndian.Uint64(out[32:])
	second := binary.LittleEndian.Uint64(out[40:])
	if first != math.Float64bits(math.Copysign(0, -1)) {
		t.Errorf("first pool entry %#x, want sign mask", first)
	}
	if second != math.Float64bits(2.5) {
		t.Errorf("second pool entry %#x, want 2.5", second)
	}

	// Both -0.0 loads must point at the same pool slot.
	disp1 := int32(binary.LittleEndian.Uint32(out[4:8]))
	disp3 := int32(binary.LittleEndian.Uint32(out[20:24]))
	if 8+int(disp1) != 32 {
		t.Errorf("first load resolves to %d, want 32", 8+int(disp1))
	}
	if 24+int(disp3) != 32 {
		t.Errorf("third load resolves to %d, want 32", 24+int(disp3))
	}
}
