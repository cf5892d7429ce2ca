package ssa

import (
	"regscan/internal/ice"
	"regscan/internal/node"
	"regscan/internal/source"
)

// nameState is the session's view of one source variable.
type nameState struct {
	handle  source.Handle // first handle seen for the name
	version int
	read    bool // current version has been read since it was written
}

// Builder lowers a node stream into SSA one statement at a time.
//
// A Builder is one lowering session: its version table and temp counter persist
// across LowerNextStatement calls and are never shared. Calls must not overlap.
type Builder struct {
	nodes   []node.Node
	pos     int
	resolve source.Resolver

	names *source.Interner
	vars  map[source.NameID]*nameState
	temps int
}

// NewBuilder starts a session over nodes. nodes must be declaration-free (see node.Strip).
func NewBuilder(nodes []node.Node, resolve source.Resolver) *Builder {
	b := &Builder{resolve: resolve}
	b.Reset(nodes)
	return b
}

// Reset discards the session state and starts over on nodes.
func (b *Builder) Reset(nodes []node.Node) {
	b.nodes = nodes
	b.pos = 0
	b.names = source.NewInterner()
	b.vars = make(map[source.NameID]*nameState)
	b.temps = 0
}

// Done reports whether the whole stream has been consumed.
func (b *Builder) Done() bool {
	return b.pos >= len(b.nodes)
}

// Cursor is the index of the next unconsumed node.
func (b *Builder) Cursor() int {
	return b.pos
}

// Version returns the latest version recorded for name.
func (b *Builder) Version(name string) (int, bool) {
	id, ok := b.names.Find(name)
	if !ok {
		return 0, false
	}
	st, ok := b.vars[id]
	if !ok {
		return 0, false
	}
	return st.version, true
}

// LowerNextStatement lowers the next assignment or bare expression. Scope
// markers between statements are skipped. Past the end it returns nothing.
func (b *Builder) LowerNextStatement() []Instr {
	for !b.Done() {
		n := b.nodes[b.pos]
		switch {
		case n.Kind == node.ScopeOpen, n.Kind == node.ScopeEnd:
			b.pos++
		case n.Kind == node.Assignment:
			b.pos++
			return b.lowerAssignment()
		case n.Kind.IsOperator(), n.Kind.IsLeaf():
			res := b.lowerExpr()
			if res.kind == loweredEmitted {
				return res.instrs
			}
			return nil
		default:
			ice.Panicf(ice.StructuralMismatch, "ssa", "unexpected %s at statement start (node %d)", n.Kind, b.pos)
		}
	}
	return nil
}

// LowerAll lowers every remaining statement.
func (b *Builder) LowerAll() []Instr {
	var out []Instr
	for !b.Done() {
		out = append(out, b.LowerNextStatement()...)
	}
	return out
}

func (b *Builder) lowerAssignment() []Instr {
	target, ok := b.next()
	if !ok || target.Kind != node.Identifier {
		ice.Panicf(ice.StructuralMismatch, "ssa", "assignment target must be an identifier, got %s", describe(target, ok))
	}

	rhs := b.lowerExpr()
	switch rhs.kind {
	case loweredEmitted:
		// the final temp becomes the variable itself; its number goes back to the counter
		instrs := rhs.instrs
		instrs[len(instrs)-1].Dst = b.write(target.Handle)
		b.temps--
		return instrs
	case loweredValue:
		return []Instr{{Dst: b.write(target.Handle), Left: rhs.value}}
	}
	ice.Panicf(ice.StructuralMismatch, "ssa", "assignment without value")
	return nil
}

func (b *Builder) next() (node.Node, bool) {
	if b.Done() {
		return node.Node{}, false
	}
	n := b.nodes[b.pos]
	b.pos++
	return n, true
}

func (b *Builder) nextTemp() Var {
	b.temps++
	return Temp(b.temps)
}

func (b *Builder) state(h source.Handle) (*nameState, bool) {
	id := b.names.Intern(b.resolve(h))
	st, ok := b.vars[id]
	if !ok {
		st = &nameState{handle: h}
		b.vars[id] = st
	}
	return st, ok
}

// read returns the current version of the variable at h and marks it read.
func (b *Builder) read(h source.Handle) Var {
	st, _ := b.state(h)
	st.read = true
	return Named(st.handle, st.version)
}

// write returns the version a new definition of h gets. A version that was
// never read is reused.
func (b *Builder) write(h source.Handle) Var {
	st, seen := b.state(h)
	switch {
	case !seen:
		st.version = 1
	case st.read:
		st.version++
	}
	st.read = false
	return Named(st.handle, st.version)
}

func describe(n node.Node, ok bool) string {
	if !ok {
		return "end of stream"
	}
	return n.String()
}
