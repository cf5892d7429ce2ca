package asm_test

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"regscan/internal/asm"
)

func TestInstrString(t *testing.T) {
	tests := []struct {
		in   asm.Instr
		want string
	}{
		{asm.Instr{Op: asm.OpMove, Dst: asm.RegisterTarget(5), Src: asm.Immediate(42)}, "move r5, #42"},
		{asm.Instr{Op: asm.OpAdd, Dst: asm.RegisterTarget(4), Src: asm.MemorySource(0)}, "add r4, [0]"},
		{asm.Instr{Op: asm.OpDiv, Dst: asm.MemoryTarget(2), Src: asm.RegisterSource(3)}, "divide [2], r3"},
		{asm.Instr{Op: asm.OpSub, Dst: asm.RegisterTarget(0), Src: asm.Immediate(-7)}, "subtract r0, #-7"},
		{asm.Instr{Op: asm.OpMul, Dst: asm.RegisterTarget(1), Src: asm.RegisterSource(1)}, "multiply r1, r1"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestTargetSame(t *testing.T) {
	if !asm.RegisterTarget(3).Same(asm.RegisterSource(3)) {
		t.Error("r3 not same as r3")
	}
	if asm.RegisterTarget(3).Same(asm.MemorySource(3)) {
		t.Error("r3 same as [3]")
	}
	if !asm.MemoryTarget(1).Same(asm.MemorySource(1)) {
		t.Error("[1] not same as [1]")
	}
	if asm.RegisterTarget(0).Same(asm.Immediate(0)) {
		t.Error("register same as immediate")
	}
	if !asm.MemoryTarget(4).Same(asm.MemoryTarget(4).AsSource()) {
		t.Error("AsSource changed the location")
	}
}

func TestRegAt(t *testing.T) {
	if r, err := asm.RegAt(5); err != nil || r != 5 {
		t.Errorf("RegAt(5) = %v, %v", r, err)
	}
	if _, err := asm.RegAt(-1); err == nil {
		t.Error("negative register accepted")
	}
}

func TestEncodeDecode(t *testing.T) {
	p := asm.NewProgram()
	p.Append(
		asm.Instr{Op: asm.OpMove, Dst: asm.RegisterTarget(5), Src: asm.Immediate(2)},
		asm.Instr{Op: asm.OpMove, Dst: asm.MemoryTarget(0), Src: asm.RegisterSource(5)},
		asm.Instr{Op: asm.OpDiv, Dst: asm.MemoryTarget(0), Src: asm.Immediate(-3)},
	)
	data, err := asm.Encode(p)
	if err != nil {
		t.Fatal(err)
	}
	got, err := asm.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got.Instrs, p.Instrs) {
		t.Errorf("decoded %v, want %v", got.Instrs, p.Instrs)
	}

	var buf bytes.Buffer
	if err := got.Dump(&buf); err != nil {
		t.Fatal(err)
	}
	if want := "move r5, #2\nmove [0], r5\ndivide [0], #-3\n"; buf.String() != want {
		t.Errorf("Dump = %q", buf.String())
	}
}

func TestDecodeRejectsOtherSchema(t *testing.T) {
	data, err := msgpack.Marshal(&asm.Program{Schema: asm.Schema + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := asm.Decode(data); !errors.Is(err, asm.ErrSchemaMismatch) {
		t.Errorf("err = %v, want ErrSchemaMismatch", err)
	}
	if _, err := asm.Decode([]byte{0xc1}); err == nil {
		t.Error("garbage decoded without error")
	}
	if _, err := asm.Encode(nil); err == nil {
		t.Error("nil program encoded")
	}
}
