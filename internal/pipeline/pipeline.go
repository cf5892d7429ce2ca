// Package pipeline runs the five back-end stages over one node stream.
package pipeline

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"regscan/internal/asm"
	"regscan/internal/emit"
	"regscan/internal/interference"
	"regscan/internal/liveness"
	"regscan/internal/node"
	"regscan/internal/observ"
	"regscan/internal/regalloc"
	"regscan/internal/source"
	"regscan/internal/ssa"
	"regscan/internal/trace"
)

// Options configures a run.
type Options struct {
	Registers []asm.Reg

	// Timer, when set, receives one stage per pipeline step.
	Timer *observ.Timer
}

// Result holds every artifact of a run.
type Result struct {
	RunID      uuid.UUID
	SSA        []ssa.Instr
	Liveness   *liveness.Info
	Graph      *interference.Graph
	Allocation *regalloc.Allocation
	Program    *asm.Program
}

type run struct {
	tracer trace.Tracer
	timer  *observ.Timer
	root   uint64
}

// stage opens a trace span and a timer stage; the returned func closes both.
func (r *run) stage(name string) (*trace.Span, func(note string)) {
	span := trace.Begin(r.tracer, trace.ScopeStage, name, r.root)
	idx := -1
	if r.timer != nil {
		idx = r.timer.Begin(name)
	}
	return span, func(note string) {
		span.End(note)
		if r.timer != nil {
			r.timer.End(idx, note)
		}
	}
}

// Compile lowers nodes to machine instructions. Declarations are stripped
// first. Internal compiler errors propagate as *ice.Error panics.
func Compile(ctx context.Context, nodes []node.Node, resolve source.Resolver, opts Options) *Result {
	r := &run{tracer: trace.FromContext(ctx), timer: opts.Timer}
	res := &Result{RunID: uuid.New()}

	root := trace.Begin(r.tracer, trace.ScopePipeline, "compile", 0)
	root.WithExtra("run", res.RunID.String())
	r.root = root.ID()

	span, done := r.stage("ssa")
	b := ssa.NewBuilder(node.Strip(nodes), resolve)
	for !b.Done() {
		for _, in := range b.LowerNextStatement() {
			res.SSA = append(res.SSA, in)
			trace.Point(r.tracer, trace.ScopeStatement, "instr", span.ID(), ssa.Format(in, resolve), nil)
		}
	}
	done(strconv.Itoa(len(res.SSA)) + " instrs")

	_, done = r.stage("liveness")
	res.Liveness = liveness.Analyze(res.SSA)
	done(strconv.Itoa(res.Liveness.Len()) + " ranges")

	_, done = r.stage("interference")
	res.Graph = interference.Build(res.Liveness.Ranges())
	done(strconv.Itoa(res.Graph.EdgeCount()) + " edges")

	span, done = r.stage("regalloc")
	res.Allocation = regalloc.New(res.Liveness, opts.Registers).Run()
	span.WithExtra("registers", strconv.Itoa(len(opts.Registers)))
	done(strconv.Itoa(res.Allocation.SpillSlots()) + " spilled")

	_, done = r.stage("emit")
	res.Program = emit.New(res.Allocation, resolve).Emit(res.SSA)
	done(strconv.Itoa(res.Program.Len()) + " instrs")

	root.End("")
	return res
}
