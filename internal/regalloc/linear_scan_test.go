package regalloc_test

import (
	"bytes"
	"testing"

	"regscan/internal/asm"
	"regscan/internal/liveness"
	"regscan/internal/regalloc"
	"regscan/internal/source"
	"regscan/internal/ssa"
	"regscan/internal/testkit"
)

type program struct {
	info    *liveness.Info
	resolve source.Resolver
	byName  map[string]ssa.Var
}

func build(t *testing.T, words ...string) program {
	t.Helper()
	nodes, resolve := testkit.Prefix(words...)
	instrs := ssa.NewBuilder(nodes, resolve).LowerAll()
	info := liveness.Analyze(instrs)
	byName := make(map[string]ssa.Var)
	for _, iv := range info.Intervals() {
		byName[ssa.VarName(iv.Var, resolve)] = iv.Var
	}
	return program{info: info, resolve: resolve, byName: byName}
}

func regs(ids ...asm.Reg) []asm.Reg { return ids }

func checkAssignments(t *testing.T, p program, alloc *regalloc.Allocation, want map[string]regalloc.Location) {
	t.Helper()
	for name, loc := range want {
		v, ok := p.byName[name]
		if !ok {
			t.Fatalf("no variable %s", name)
		}
		got, ok := alloc.Lookup(v)
		if !ok {
			t.Errorf("%s: not allocated", name)
			continue
		}
		if got != loc {
			t.Errorf("%s: got %v, want %v", name, got, loc)
		}
	}
	if err := testkit.CheckAllocation(p.info, alloc); err != nil {
		t.Error(err)
	}
}

var chain = []string{
	"=", "a", "1",
	"=", "b", "2",
	"=", "c", "+", "a", "b",
	"=", "d", "c",
	"=", "e", "d",
}

func TestLinearScan(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		regs  []asm.Reg
		want  map[string]regalloc.Location
		slots int
	}{
		{
			name:  "independent_statements_two_registers",
			words: []string{"=", "a", "42", "=", "b", "6", "=", "c", "69"},
			regs:  regs(4, 5),
			want: map[string]regalloc.Location{
				"a1": regalloc.InRegister(5),
				"b1": regalloc.InRegister(4),
				"c1": regalloc.InRegister(5),
			},
		},
		{
			name:  "chain_three_registers",
			words: chain,
			regs:  regs(3, 4, 5),
			want: map[string]regalloc.Location{
				"a1": regalloc.InRegister(5),
				"b1": regalloc.InRegister(4),
				"c1": regalloc.InRegister(3),
				"d1": regalloc.InRegister(5),
				"e1": regalloc.InRegister(3),
			},
		},
		{
			name:  "chain_two_registers_spills_once",
			words: chain,
			regs:  regs(4, 5),
			want: map[string]regalloc.Location{
				"a1": regalloc.InRegister(5),
				"b1": regalloc.InRegister(4),
				"c1": regalloc.Spilled(0),
				"d1": regalloc.InRegister(5),
				"e1": regalloc.InRegister(4),
			},
			slots: 1,
		},
		{
			name:  "no_registers_spills_everything",
			words: []string{"=", "a", "1", "=", "b", "a"},
			regs:  nil,
			want: map[string]regalloc.Location{
				"a1": regalloc.Spilled(0),
				"b1": regalloc.Spilled(1),
			},
			slots: 2,
		},
		{
			name: "long_range_is_evicted",
			// a lives until the last statement; c and d are short
			words: []string{
				"=", "a", "1",
				"=", "b", "2",
				"=", "c", "+", "b", "3",
				"=", "d", "c",
				"=", "e", "a",
			},
			regs: regs(0, 1),
			want: map[string]regalloc.Location{
				"a1": regalloc.Spilled(0),
				"b1": regalloc.InRegister(0),
				"c1": regalloc.InRegister(1),
				"d1": regalloc.InRegister(0),
				"e1": regalloc.InRegister(1),
			},
			slots: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := build(t, tt.words...)
			alloc := regalloc.New(p.info, tt.regs).Run()
			checkAssignments(t, p, alloc, tt.want)
			if alloc.SpillSlots() != tt.slots {
				t.Errorf("SpillSlots = %d, want %d", alloc.SpillSlots(), tt.slots)
			}
		})
	}
}

func TestLookupIsIdempotent(t *testing.T) {
	p := build(t, chain...)
	alloc := regalloc.New(p.info, regs(4, 5)).Run()
	for _, iv := range p.info.Intervals() {
		first, ok1 := alloc.Lookup(iv.Var)
		second, ok2 := alloc.Lookup(iv.Var)
		if !ok1 || !ok2 || first != second {
			t.Errorf("%v: %v/%v then %v/%v", iv.Var, first, ok1, second, ok2)
		}
	}
	if _, ok := alloc.Lookup(ssa.Temp(99)); ok {
		t.Error("unknown variable has a location")
	}
}

func TestAllocationInvariantsUnderPressure(t *testing.T) {
	p := build(t,
		"=", "a", "+", "2", "*", "3", "-", "4", "1",
		"=", "b", "*", "a", "a",
		"=", "c", "-", "b", "/", "a", "2",
		"=", "d", "+", "+", "a", "b", "c",
		"=", "e", "*", "d", "-", "c", "a",
	)
	for n := 0; n <= 4; n++ {
		pool := make([]asm.Reg, n)
		for i := range pool {
			pool[i] = asm.Reg(i)
		}
		alloc := regalloc.New(p.info, pool).Run()
		if err := testkit.CheckAllocation(p.info, alloc); err != nil {
			t.Errorf("%d registers: %v", n, err)
		}
	}
}

func TestInterleavedRangeStarts(t *testing.T) {
	const x, y, z = 0, 1, 2
	info := liveness.FromRanges(map[ssa.Var]liveness.Range{
		ssa.Named(x, 1): {Start: 0, End: 10},
		ssa.Named(y, 1): {Start: 1, End: 3},
		ssa.Named(z, 1): {Start: 2, End: 4},
	})
	alloc := regalloc.New(info, regs(7)).Run()
	want := map[ssa.Var]regalloc.Location{
		ssa.Named(x, 1): regalloc.Spilled(0),
		ssa.Named(y, 1): regalloc.InRegister(7),
		ssa.Named(z, 1): regalloc.Spilled(1),
	}
	for v, loc := range want {
		if got, _ := alloc.Lookup(v); got != loc {
			t.Errorf("%v: got %v, want %v", v, got, loc)
		}
	}
	if err := testkit.CheckAllocation(info, alloc); err != nil {
		t.Error(err)
	}
}

func TestDump(t *testing.T) {
	p := build(t, chain...)
	alloc := regalloc.New(p.info, regs(4, 5)).Run()
	var buf bytes.Buffer
	if err := alloc.Dump(&buf, p.resolve, regalloc.DumpOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "a1: r5\nb1: r4\nc1: spilled(0)\nd1: r5\ne1: r4\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}
