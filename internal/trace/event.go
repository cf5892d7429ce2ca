package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end
	KindPoint                     // instant event
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopePipeline  Scope = iota + 1 // one compilation run
	ScopeStage                      // ssa, liveness, interference, regalloc, emit
	ScopeStatement                  // one lowered statement
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopePipeline:
		return "pipeline"
	case ScopeStage:
		return "stage"
	case ScopeStatement:
		return "statement"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // per-tracer sequence number
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for roots
	Name     string // "compile", "regalloc", ...
	Detail   string
	Extra    map[string]string
}
