// Package asm is the instruction encoding of the target virtual machine.
package asm

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
)

// Reg is a general-purpose register id.
type Reg uint32

func (r Reg) String() string {
	return "r" + strconv.FormatUint(uint64(r), 10)
}

// RegAt converts a configured register number to a Reg.
func RegAt(n int) (Reg, error) {
	r, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, fmt.Errorf("asm: register %d: %w", n, err)
	}
	return Reg(r), nil
}

// Op is a machine opcode.
type Op uint8

const (
	// OpMove copies Src into Dst.
	OpMove Op = iota + 1
	// OpAdd is Dst += Src.
	OpAdd
	// OpSub is Dst -= Src.
	OpSub
	// OpMul is Dst *= Src.
	OpMul
	// OpDiv is Dst /= Src, truncating toward zero.
	OpDiv
)

func (op Op) String() string {
	switch op {
	case OpMove:
		return "move"
	case OpAdd:
		return "add"
	case OpSub:
		return "subtract"
	case OpMul:
		return "multiply"
	case OpDiv:
		return "divide"
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// TargetKind distinguishes destination operands.
type TargetKind uint8

const (
	TargetRegister TargetKind = iota + 1
	TargetMemory
)

// Target is a destination: a register or a memory slot.
type Target struct {
	Kind TargetKind `msgpack:"k"`
	Reg  Reg        `msgpack:"r,omitempty"`
	Slot uint32     `msgpack:"s,omitempty"`
}

// SourceKind distinguishes source operands.
type SourceKind uint8

const (
	SourceImmediate SourceKind = iota + 1
	SourceRegister
	SourceMemory
)

// Source is an immediate integer, a register or a memory slot.
type Source struct {
	Kind SourceKind `msgpack:"k"`
	Imm  int64      `msgpack:"i,omitempty"`
	Reg  Reg        `msgpack:"r,omitempty"`
	Slot uint32     `msgpack:"s,omitempty"`
}

// RegisterTarget returns a register destination.
func RegisterTarget(r Reg) Target { return Target{Kind: TargetRegister, Reg: r} }

// MemoryTarget returns a memory destination.
func MemoryTarget(slot uint32) Target { return Target{Kind: TargetMemory, Slot: slot} }

// Immediate returns an immediate source.
func Immediate(v int64) Source { return Source{Kind: SourceImmediate, Imm: v} }

// RegisterSource returns a register source.
func RegisterSource(r Reg) Source { return Source{Kind: SourceRegister, Reg: r} }

// MemorySource returns a memory source.
func MemorySource(slot uint32) Source { return Source{Kind: SourceMemory, Slot: slot} }

// Same reports whether t and s name the same storage location.
func (t Target) Same(s Source) bool {
	switch {
	case t.Kind == TargetRegister && s.Kind == SourceRegister:
		return t.Reg == s.Reg
	case t.Kind == TargetMemory && s.Kind == SourceMemory:
		return t.Slot == s.Slot
	}
	return false
}

// AsSource reads the target location as a source operand.
func (t Target) AsSource() Source {
	if t.Kind == TargetMemory {
		return MemorySource(t.Slot)
	}
	return RegisterSource(t.Reg)
}

func (t Target) String() string {
	if t.Kind == TargetMemory {
		return "[" + strconv.FormatUint(uint64(t.Slot), 10) + "]"
	}
	return t.Reg.String()
}

func (s Source) String() string {
	switch s.Kind {
	case SourceImmediate:
		return "#" + strconv.FormatInt(s.Imm, 10)
	case SourceMemory:
		return "[" + strconv.FormatUint(uint64(s.Slot), 10) + "]"
	}
	return s.Reg.String()
}

// Instr is a two-address instruction `Op Dst, Src`.
type Instr struct {
	Op  Op     `msgpack:"o"`
	Dst Target `msgpack:"d"`
	Src Source `msgpack:"s"`
}

func (in Instr) String() string {
	return in.Op.String() + " " + in.Dst.String() + ", " + in.Src.String()
}
