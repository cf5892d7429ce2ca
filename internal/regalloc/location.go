package regalloc

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/fatih/color"

	"regscan/internal/asm"
	"regscan/internal/source"
	"regscan/internal/ssa"
)

// LocKind distinguishes register and spill assignments.
type LocKind uint8

const (
	// LocRegister: the variable lives in Reg for its whole range.
	LocRegister LocKind = iota + 1
	// LocSpilled: the variable lives in spill slot Slot.
	LocSpilled
)

// Location is the final assignment of one variable.
type Location struct {
	Kind LocKind
	Reg  asm.Reg
	Slot int
}

// InRegister returns a register location.
func InRegister(r asm.Reg) Location { return Location{Kind: LocRegister, Reg: r} }

// Spilled returns a spill location.
func Spilled(slot int) Location { return Location{Kind: LocSpilled, Slot: slot} }

func (l Location) String() string {
	if l.Kind == LocSpilled {
		return "spilled(" + strconv.Itoa(l.Slot) + ")"
	}
	return l.Reg.String()
}

// Assignment pairs a variable with its location.
type Assignment struct {
	Var ssa.Var
	Loc Location
}

// Allocation is the result of a linear-scan run. Every variable that had a
// live range has exactly one location.
type Allocation struct {
	regs  map[ssa.Var]asm.Reg
	slots map[ssa.Var]int
	spill int // number of spill slots handed out
}

// Lookup returns the location of v; false means v never had a live range.
func (a *Allocation) Lookup(v ssa.Var) (Location, bool) {
	if r, ok := a.regs[v]; ok {
		return InRegister(r), true
	}
	if s, ok := a.slots[v]; ok {
		return Spilled(s), true
	}
	return Location{}, false
}

// Len is the number of assigned variables.
func (a *Allocation) Len() int {
	return len(a.regs) + len(a.slots)
}

// SpillSlots is the number of distinct spill slots used.
func (a *Allocation) SpillSlots() int {
	return a.spill
}

// Assignments lists every assignment in Var order.
func (a *Allocation) Assignments() []Assignment {
	vars := slices.AppendSeq(slices.Collect(maps.Keys(a.regs)), maps.Keys(a.slots))
	slices.SortFunc(vars, ssa.Var.Compare)
	out := make([]Assignment, 0, len(vars))
	for _, v := range vars {
		loc, _ := a.Lookup(v)
		out = append(out, Assignment{Var: v, Loc: loc})
	}
	return out
}

// DumpOptions configures Dump.
type DumpOptions struct {
	Color bool
}

var spillColor = color.New(color.FgYellow)

// Dump writes `name: location` lines in Var order.
func (a *Allocation) Dump(w io.Writer, resolve source.Resolver, opts DumpOptions) error {
	c := *spillColor
	if opts.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	for _, as := range a.Assignments() {
		loc := as.Loc.String()
		if as.Loc.Kind == LocSpilled {
			loc = c.Sprint(loc)
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", ssa.VarName(as.Var, resolve), loc); err != nil {
			return err
		}
	}
	return nil
}
