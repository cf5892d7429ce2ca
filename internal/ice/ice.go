// Package ice describes internal compiler errors.
//
// Every condition reported here means an upstream stage broke its contract: the
// parser produced a malformed node stream, the lexer produced a bad literal, or the
// allocator lost track of a variable. None of them is a user diagnostic, and the
// pipeline never recovers them; the compilation unit is abandoned.
package ice

import "fmt"

// Kind classifies an internal compiler error.
type Kind uint8

const (
	// StructuralMismatch means an expected node kind is absent or of the wrong variant.
	StructuralMismatch Kind = iota + 1
	// UnallocatedReference means the emitter needs a variable the allocator never saw.
	UnallocatedReference
	// MalformedLiteral means a number handle does not resolve to an integer.
	MalformedLiteral
)

func (k Kind) String() string {
	switch k {
	case StructuralMismatch:
		return "structural mismatch"
	case UnallocatedReference:
		return "unallocated reference"
	case MalformedLiteral:
		return "malformed literal"
	}
	return "unknown"
}

// Error is the panic value raised by Panicf.
type Error struct {
	Kind  Kind
	Stage string // "ssa", "emit", ...
	Msg   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: internal error (%s): %s", e.Stage, e.Kind, e.Msg)
}

// Panicf aborts the current compilation unit.
func Panicf(kind Kind, stage, format string, args ...any) {
	panic(&Error{Kind: kind, Stage: stage, Msg: fmt.Sprintf(format, args...)})
}

// FromRecovered reports whether a value returned by recover() is an internal error.
func FromRecovered(r any) (*Error, bool) {
	if r == nil {
		return nil, false
	}
	e, ok := r.(*Error)
	return e, ok
}
