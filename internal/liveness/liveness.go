// Package liveness computes one live range per SSA variable over a straight-line
// instruction sequence.
package liveness

import (
	"maps"
	"slices"

	"regscan/internal/ssa"
)

// Range is the half-open span [Start, End) of instruction positions over which
// a variable is live. Start is the first position touching the variable; End
// is the last touching position, or Start+1 for a variable touched once.
type Range struct {
	Start int
	End   int
}

// Overlaps reports half-open intersection.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Len is End-Start.
func (r Range) Len() int {
	return r.End - r.Start
}

// Interval pairs a variable with its range.
type Interval struct {
	Var   ssa.Var
	Range Range
}

// Info is the result of Analyze.
type Info struct {
	ranges map[ssa.Var]Range
	order  []ssa.Var // first-touch order
}

// Analyze walks instrs once, front to back.
func Analyze(instrs []ssa.Instr) *Info {
	info := &Info{ranges: make(map[ssa.Var]Range)}
	for i := range instrs {
		for _, v := range instrs[i].Vars() {
			info.touch(v, i)
		}
	}
	return info
}

// FromRanges wraps precomputed ranges; ties in Intervals are broken by Var order.
func FromRanges(ranges map[ssa.Var]Range) *Info {
	info := &Info{ranges: maps.Clone(ranges)}
	info.order = slices.SortedFunc(maps.Keys(ranges), ssa.Var.Compare)
	return info
}

func (in *Info) touch(v ssa.Var, pos int) {
	r, ok := in.ranges[v]
	if !ok {
		in.ranges[v] = Range{Start: pos, End: pos + 1}
		in.order = append(in.order, v)
		return
	}
	if r.End < pos {
		r.End = pos
		in.ranges[v] = r
	}
}

// Range returns the live range of v.
func (in *Info) Range(v ssa.Var) (Range, bool) {
	r, ok := in.ranges[v]
	return r, ok
}

// Len is the number of variables with a range.
func (in *Info) Len() int {
	return len(in.ranges)
}

// Ranges returns a copy of the variable -> range map.
func (in *Info) Ranges() map[ssa.Var]Range {
	return maps.Clone(in.ranges)
}

// Intervals returns all ranges sorted by start; equal starts keep first-touch order.
func (in *Info) Intervals() []Interval {
	out := make([]Interval, 0, len(in.order))
	for _, v := range in.order {
		out = append(out, Interval{Var: v, Range: in.ranges[v]})
	}
	slices.SortStableFunc(out, func(a, b Interval) int {
		return a.Range.Start - b.Range.Start
	})
	return out
}
