package testkit

import (
	"fmt"

	"regscan/internal/liveness"
	"regscan/internal/regalloc"
)

// CheckAllocation verifies a register allocation against its live ranges:
// 1) every variable with a range has a location (totality)
// 2) no two overlapping ranges share a register
// 3) no two variables share a spill slot
func CheckAllocation(info *liveness.Info, alloc *regalloc.Allocation) error {
	if info == nil || alloc == nil {
		return fmt.Errorf("nil liveness or allocation")
	}
	ivs := info.Intervals()
	if alloc.Len() != len(ivs) {
		return fmt.Errorf("allocation has %d entries, liveness has %d", alloc.Len(), len(ivs))
	}

	locs := make([]regalloc.Location, len(ivs))
	slots := make(map[int]int)
	for i, iv := range ivs {
		loc, ok := alloc.Lookup(iv.Var)
		if !ok {
			return fmt.Errorf("variable %+v has no location", iv.Var)
		}
		locs[i] = loc
		if loc.Kind == regalloc.LocSpilled {
			if prev, dup := slots[loc.Slot]; dup {
				return fmt.Errorf("spill slot %d shared by %+v and %+v", loc.Slot, ivs[prev].Var, iv.Var)
			}
			slots[loc.Slot] = i
		}
	}

	for i := range ivs {
		for j := i + 1; j < len(ivs); j++ {
			if locs[i].Kind != regalloc.LocRegister || locs[j].Kind != regalloc.LocRegister {
				continue
			}
			if locs[i].Reg == locs[j].Reg && ivs[i].Range.Overlaps(ivs[j].Range) {
				return fmt.Errorf("%+v %v and %+v %v overlap in %s",
					ivs[i].Var, ivs[i].Range, ivs[j].Var, ivs[j].Range, locs[i].Reg)
			}
		}
	}
	return nil
}
