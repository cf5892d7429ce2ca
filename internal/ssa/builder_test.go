package ssa_test

import (
	"strings"
	"testing"

	"regscan/internal/ice"
	"regscan/internal/node"
	"regscan/internal/source"
	"regscan/internal/ssa"
	"regscan/internal/testkit"
)

func render(instrs []ssa.Instr, resolve source.Resolver) string {
	lines := make([]string, len(instrs))
	for i, in := range instrs {
		lines[i] = ssa.Format(in, resolve)
	}
	return strings.Join(lines, "\n")
}

func expectICE(t *testing.T, kind ice.Kind, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		e, ok := ice.FromRecovered(recover())
		if !ok {
			t.Fatalf("expected internal error %q", kind)
		}
		if e.Kind != kind {
			t.Fatalf("got %q (%s), want %q", e.Kind, e.Msg, kind)
		}
	}()
	fn()
}

// a = 2 + 3 * (4 - 1);
func TestLowerNestedExpression(t *testing.T) {
	nodes, resolve := testkit.Prefix("=", "a", "+", "2", "*", "3", "-", "4", "1")
	b := ssa.NewBuilder(nodes, resolve)

	got := render(b.LowerNextStatement(), resolve)
	want := "T1 = 4 minus 1\nT2 = 3 times T1\na1 = 2 plus T2"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
	if b.Cursor() != len(nodes) || !b.Done() {
		t.Errorf("cursor = %d, want %d", b.Cursor(), len(nodes))
	}
	if rest := b.LowerNextStatement(); len(rest) != 0 {
		t.Errorf("expected nothing past the end, got %v", rest)
	}
}

func TestLowerStatements(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{
			name:  "reuse_without_read",
			words: []string{"=", "a", "10", "=", "b", "11", "=", "a", "12", "=", "c", "13"},
			want:  "a1 = 10\nb1 = 11\na1 = 12\nc1 = 13",
		},
		{
			name:  "new_version_after_read",
			words: []string{"=", "a", "1", "=", "b", "a", "=", "a", "2"},
			want:  "a1 = 1\nb1 = a1\na2 = 2",
		},
		{
			name:  "read_before_write",
			words: []string{"=", "b", "a", "=", "a", "1"},
			want:  "b1 = a0\na1 = 1",
		},
		{
			name:  "self_reference",
			words: []string{"=", "a", "1", "=", "a", "+", "a", "1"},
			want:  "a1 = 1\na2 = a1 plus 1",
		},
		{
			name:  "operator_on_the_left",
			words: []string{"=", "a", "-", "*", "2", "3", "1"},
			want:  "T1 = 2 times 3\na1 = T1 minus 1",
		},
		{
			name:  "operators_on_both_sides",
			words: []string{"=", "a", "*", "+", "1", "2", "/", "3", "4"},
			want:  "T1 = 1 plus 2\nT2 = 3 div 4\na1 = T1 times T2",
		},
		{
			name:  "temp_given_back",
			words: []string{"=", "a", "+", "1", "2", "=", "b", "*", "3", "4", "+", "5", "6"},
			want:  "a1 = 1 plus 2\nb1 = 3 times 4\nT1 = 5 plus 6",
		},
		{
			name:  "temps_keep_counting",
			words: []string{"=", "a", "+", "+", "1", "2", "3", "=", "b", "+", "+", "4", "5", "6"},
			want:  "T1 = 1 plus 2\na1 = T1 plus 3\nT2 = 4 plus 5\nb1 = T2 plus 6",
		},
		{
			name:  "scopes_are_skipped",
			words: []string{"{", "=", "a", "1", "}", "=", "b", "2"},
			want:  "a1 = 1\nb1 = 2",
		},
		{
			name:  "bare_leaf_emits_nothing",
			words: []string{"a", "=", "a", "1"},
			want:  "a1 = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, resolve := testkit.Prefix(tt.words...)
			b := ssa.NewBuilder(nodes, resolve)
			if got := render(b.LowerAll(), resolve); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestSameNameSharesIdentity(t *testing.T) {
	nodes, resolve := testkit.Prefix("=", "a", "10", "=", "b", "a", "=", "c", "a")
	b := ssa.NewBuilder(nodes, resolve)
	instrs := b.LowerAll()
	if len(instrs) != 3 {
		t.Fatalf("got %d instructions", len(instrs))
	}
	def := instrs[0].Dst
	for _, in := range instrs[1:] {
		use, ok := in.Left.AsVar()
		if !ok || use != def {
			t.Errorf("use %+v does not match definition %+v", in.Left, def)
		}
	}
	if v, ok := b.Version("a"); !ok || v != 1 {
		t.Errorf("Version(a) = %d, %v", v, ok)
	}
	if _, ok := b.Version("zzz"); ok {
		t.Error("unknown name reported a version")
	}
}

func TestSessionPersistsAcrossCalls(t *testing.T) {
	nodes, resolve := testkit.Prefix("=", "a", "+", "1", "2", "=", "a", "+", "a", "3")
	b := ssa.NewBuilder(nodes, resolve)

	first := render(b.LowerNextStatement(), resolve)
	second := render(b.LowerNextStatement(), resolve)
	if first != "a1 = 1 plus 2" || second != "a2 = a1 plus 3" {
		t.Errorf("got %q then %q", first, second)
	}

	b.Reset(nodes)
	if again := render(b.LowerNextStatement(), resolve); again != "a1 = 1 plus 2" {
		t.Errorf("after Reset got %q", again)
	}
}

func TestLowerRejectsMalformedStreams(t *testing.T) {
	t.Run("declaration_in_expression", func(t *testing.T) {
		nodes := []node.Node{node.NewAssignment(), node.NewIdent(0), {Kind: node.VarDecl}}
		b := ssa.NewBuilder(nodes, source.WordsResolver([]string{"a"}))
		expectICE(t, ice.StructuralMismatch, func() { b.LowerNextStatement() })
	})
	t.Run("declaration_at_statement_start", func(t *testing.T) {
		nodes := []node.Node{{Kind: node.StructDecl}, node.NewIdent(0)}
		b := ssa.NewBuilder(nodes, source.WordsResolver([]string{"S"}))
		expectICE(t, ice.StructuralMismatch, func() { b.LowerNextStatement() })
	})
	t.Run("number_target", func(t *testing.T) {
		nodes, resolve := testkit.Prefix("=", "1", "2")
		b := ssa.NewBuilder(nodes, resolve)
		expectICE(t, ice.StructuralMismatch, func() { b.LowerNextStatement() })
	})
	t.Run("missing_operand", func(t *testing.T) {
		nodes, resolve := testkit.Prefix("=", "a", "+", "1")
		b := ssa.NewBuilder(nodes, resolve)
		expectICE(t, ice.StructuralMismatch, func() { b.LowerNextStatement() })
	})
	t.Run("scope_in_expression", func(t *testing.T) {
		nodes, resolve := testkit.Prefix("=", "a", "{")
		b := ssa.NewBuilder(nodes, resolve)
		expectICE(t, ice.StructuralMismatch, func() { b.LowerNextStatement() })
	})
}

func TestInstrVars(t *testing.T) {
	in := ssa.Instr{
		Dst:    ssa.Named(0, 1),
		Left:   ssa.NumberValue(2),
		HasRHS: true,
		Op:     ssa.OpAdd,
		Right:  ssa.VarValue(ssa.Temp(2)),
	}
	vars := in.Vars()
	if len(vars) != 2 || vars[0] != ssa.Named(0, 1) || vars[1] != ssa.Temp(2) {
		t.Errorf("Vars = %v", vars)
	}
}
