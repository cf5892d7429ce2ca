package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"regscan/internal/asm"
	"regscan/internal/regalloc"
)

// Machine executes emitted programs. Unwritten cells read as zero.
type Machine struct {
	Regs map[asm.Reg]int64
	Mem  map[uint32]int64
}

// NewMachine returns a machine with empty register file and memory.
func NewMachine() *Machine {
	return &Machine{Regs: map[asm.Reg]int64{}, Mem: map[uint32]int64{}}
}

// Exec runs every instruction of p. Division by zero returns an error.
func (m *Machine) Exec(p *asm.Program) error {
	for i, in := range p.Instrs {
		src := m.Read(in.Src)
		cur := m.Read(in.Dst.AsSource())
		var v int64
		switch in.Op {
		case asm.OpMove:
			v = src
		case asm.OpAdd:
			v = cur + src
		case asm.OpSub:
			v = cur - src
		case asm.OpMul:
			v = cur * src
		case asm.OpDiv:
			if src == 0 {
				return fmt.Errorf("instr %d (%s): division by zero", i, in)
			}
			v = cur / src
		default:
			return fmt.Errorf("instr %d: unknown opcode %d", i, in.Op)
		}
		if in.Dst.Kind == asm.TargetMemory {
			m.Mem[in.Dst.Slot] = v
		} else {
			m.Regs[in.Dst.Reg] = v
		}
	}
	return nil
}

// Read returns the value of an operand.
func (m *Machine) Read(s asm.Source) int64 {
	switch s.Kind {
	case asm.SourceImmediate:
		return s.Imm
	case asm.SourceMemory:
		return m.Mem[s.Slot]
	}
	return m.Regs[s.Reg]
}

// Load returns the value held at an allocator location.
func (m *Machine) Load(loc regalloc.Location) int64 {
	if loc.Kind == regalloc.LocRegister {
		return m.Regs[loc.Reg]
	}
	slot, err := safecast.Conv[uint32](loc.Slot)
	if err != nil {
		panic(fmt.Errorf("testkit: spill slot %d: %w", loc.Slot, err))
	}
	return m.Mem[slot]
}
