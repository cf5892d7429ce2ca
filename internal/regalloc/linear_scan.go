// Package regalloc assigns registers by linear scan over live ranges.
package regalloc

import (
	"slices"

	"github.com/google/btree"

	"regscan/internal/asm"
	"regscan/internal/liveness"
	"regscan/internal/ssa"
)

// active is a register-resident interval.
type active struct {
	reg   asm.Reg
	rng   liveness.Range
	v     ssa.Var
	order uint64 // insertion counter
}

// byEnd orders the active set by ascending end; among equal ends the most
// recently inserted entry comes first.
func byEnd(a, b active) bool {
	if a.rng.End != b.rng.End {
		return a.rng.End < b.rng.End
	}
	return a.order > b.order
}

// LinearScan is one allocation run. It is not reusable.
type LinearScan struct {
	intervals []liveness.Interval
	registers int

	free    []asm.Reg // stack: allocation pops the last element
	active  *btree.BTreeG[active]
	inserts uint64

	alloc *Allocation
}

// New prepares a run over info with the given registers. The free pool keeps
// the order of registers; the last register is handed out first.
func New(info *liveness.Info, registers []asm.Reg) *LinearScan {
	return &LinearScan{
		intervals: info.Intervals(),
		registers: len(registers),
		free:      slices.Clone(registers),
		active:    btree.NewG[active](8, byEnd),
		alloc: &Allocation{
			regs:  make(map[ssa.Var]asm.Reg),
			slots: make(map[ssa.Var]int),
		},
	}
}

// Run processes intervals in start order and returns the allocation.
func (s *LinearScan) Run() *Allocation {
	for _, iv := range s.intervals {
		s.expire(iv.Range.Start)
		if s.active.Len() < s.registers {
			s.assign(iv, s.pop())
			continue
		}
		s.spillAt(iv)
	}
	return s.alloc
}

// expire frees the registers of intervals that ended before start. A register
// read at start is still busy there.
func (s *LinearScan) expire(start int) {
	for {
		first, ok := s.active.Min()
		if !ok || first.rng.End >= start {
			return
		}
		s.active.DeleteMin()
		s.free = append(s.free, first.reg)
	}
}

// spillAt handles iv when every register is taken: the active interval that
// ends last gives up its register if it outlives iv, otherwise iv is spilled.
func (s *LinearScan) spillAt(iv liveness.Interval) {
	last, ok := s.active.Max()
	if ok && last.rng.End > iv.Range.End {
		s.active.DeleteMax()
		delete(s.alloc.regs, last.v)
		s.alloc.slots[last.v] = s.nextSlot()
		s.assign(iv, last.reg)
		return
	}
	s.alloc.slots[iv.Var] = s.nextSlot()
}

func (s *LinearScan) assign(iv liveness.Interval, reg asm.Reg) {
	s.alloc.regs[iv.Var] = reg
	s.inserts++
	s.active.ReplaceOrInsert(active{reg: reg, rng: iv.Range, v: iv.Var, order: s.inserts})
}

func (s *LinearScan) pop() asm.Reg {
	r := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]
	return r
}

func (s *LinearScan) nextSlot() int {
	slot := s.alloc.spill
	s.alloc.spill++
	return slot
}
