// Package emit converts three-address SSA into two-address machine instructions.
package emit

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"regscan/internal/asm"
	"regscan/internal/ice"
	"regscan/internal/regalloc"
	"regscan/internal/source"
	"regscan/internal/ssa"
)

// Locator resolves a variable to its allocated location.
type Locator interface {
	Lookup(v ssa.Var) (regalloc.Location, bool)
}

// Emitter lowers SSA instructions using a finished allocation.
type Emitter struct {
	locs    Locator
	resolve source.Resolver
}

// New returns an emitter over locs; resolve is used for numeric literals.
func New(locs Locator, resolve source.Resolver) *Emitter {
	return &Emitter{locs: locs, resolve: resolve}
}

// Emit translates instrs in order.
func (e *Emitter) Emit(instrs []ssa.Instr) *asm.Program {
	p := asm.NewProgram()
	for i := range instrs {
		p.Append(e.lower(&instrs[i])...)
	}
	return p
}

func (e *Emitter) lower(in *ssa.Instr) []asm.Instr {
	dst := e.target(in.Dst)
	left := e.source(in.Left)
	if !in.HasRHS {
		return []asm.Instr{{Op: asm.OpMove, Dst: dst, Src: left}}
	}

	out := make([]asm.Instr, 0, 2)
	if !dst.Same(left) {
		out = append(out, asm.Instr{Op: asm.OpMove, Dst: dst, Src: left})
	}
	return append(out, asm.Instr{Op: opcode(in.Op), Dst: dst, Src: e.source(in.Right)})
}

func (e *Emitter) locate(v ssa.Var) regalloc.Location {
	loc, ok := e.locs.Lookup(v)
	if !ok {
		ice.Panicf(ice.UnallocatedReference, "emit", "%s has no register or spill slot", ssa.VarName(v, e.resolve))
	}
	return loc
}

func (e *Emitter) target(v ssa.Var) asm.Target {
	loc := e.locate(v)
	if loc.Kind == regalloc.LocSpilled {
		return asm.MemoryTarget(slotOf(loc))
	}
	return asm.RegisterTarget(loc.Reg)
}

func (e *Emitter) source(val ssa.Value) asm.Source {
	if val.Kind == ssa.ValueNumber {
		text := e.resolve(val.Handle)
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			ice.Panicf(ice.MalformedLiteral, "emit", "literal %q at handle %d: %v", text, val.Handle, err)
		}
		return asm.Immediate(n)
	}
	return e.target(val.Var).AsSource()
}

func slotOf(loc regalloc.Location) uint32 {
	slot, err := safecast.Conv[uint32](loc.Slot)
	if err != nil {
		panic(fmt.Errorf("emit: spill slot overflow: %w", err))
	}
	return slot
}

func opcode(op ssa.Operator) asm.Op {
	switch op {
	case ssa.OpAdd:
		return asm.OpAdd
	case ssa.OpSub:
		return asm.OpSub
	case ssa.OpMul:
		return asm.OpMul
	case ssa.OpDiv:
		return asm.OpDiv
	}
	panic(fmt.Errorf("emit: unknown operator %d", op))
}
