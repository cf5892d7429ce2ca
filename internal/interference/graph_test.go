package interference_test

import (
	"slices"
	"testing"

	"regscan/internal/interference"
	"regscan/internal/liveness"
	"regscan/internal/ssa"
)

func TestBuildFiveVariables(t *testing.T) {
	const a = 0
	t1, t2, t3, t4 := ssa.Temp(1), ssa.Temp(2), ssa.Temp(3), ssa.Temp(4)
	a1 := ssa.Named(a, 1)

	g := interference.Build(map[ssa.Var]liveness.Range{
		t1: {Start: 0, End: 5},
		t2: {Start: 1, End: 4},
		t3: {Start: 2, End: 3},
		t4: {Start: 3, End: 4},
		a1: {Start: 4, End: 5},
	})

	sorted := func(vs ...ssa.Var) []ssa.Var {
		slices.SortFunc(vs, ssa.Var.Compare)
		return vs
	}
	want := map[ssa.Var][]ssa.Var{
		t1: sorted(t2, t3, t4, a1),
		t2: sorted(t1, t3, t4),
		t3: sorted(t1, t2),
		t4: sorted(t1, t2),
		a1: sorted(t1),
	}

	if g.Len() != 5 {
		t.Fatalf("Len = %d", g.Len())
	}
	for v, neighbors := range want {
		n, ok := g.Node(v)
		if !ok {
			t.Fatalf("missing node %v", v)
		}
		if got := n.Neighbors(); !slices.Equal(got, neighbors) {
			t.Errorf("%v: neighbors %v, want %v", v, got, neighbors)
		}
	}
	if g.EdgeCount() != 6 {
		t.Errorf("EdgeCount = %d, want 6", g.EdgeCount())
	}
}

func TestBuildIsSymmetricWithoutSelfEdges(t *testing.T) {
	ranges := map[ssa.Var]liveness.Range{
		ssa.Temp(1):     {Start: 0, End: 3},
		ssa.Temp(2):     {Start: 0, End: 3},
		ssa.Named(4, 1): {Start: 2, End: 6},
		ssa.Named(7, 1): {Start: 6, End: 7},
	}
	g := interference.Build(ranges)
	for _, u := range g.Vars() {
		if g.Adjacent(u, u) {
			t.Errorf("self edge on %v", u)
		}
		for _, v := range g.Vars() {
			if g.Adjacent(u, v) != g.Adjacent(v, u) {
				t.Errorf("asymmetric edge %v-%v", u, v)
			}
			if u != v && g.Adjacent(u, v) != ranges[u].Overlaps(ranges[v]) {
				t.Errorf("edge %v-%v disagrees with overlap", u, v)
			}
		}
	}
	if g.Adjacent(ssa.Temp(9), ssa.Temp(1)) {
		t.Error("unknown variable reported adjacent")
	}
}

func TestBuildEmpty(t *testing.T) {
	g := interference.Build(nil)
	if g.Len() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph has %d nodes, %d edges", g.Len(), g.EdgeCount())
	}
}
