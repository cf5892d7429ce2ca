package ssa

import (
	"cmp"

	"regscan/internal/source"
)

// VarKind distinguishes compiler temporaries from source variables.
type VarKind uint8

const (
	// VarTemp is a compiler-generated temporary.
	VarTemp VarKind = iota + 1
	// VarNamed is a version of a source-level variable.
	VarNamed
)

// Var is an SSA variable. Identity is kind + handle + version; Handle is zero for temps.
type Var struct {
	Kind    VarKind
	Handle  source.Handle
	Version int
}

// Temp returns the temporary with the given version.
func Temp(version int) Var {
	return Var{Kind: VarTemp, Version: version}
}

// Named returns version `version` of the variable identified by h.
func Named(h source.Handle, version int) Var {
	return Var{Kind: VarNamed, Handle: h, Version: version}
}

// Compare orders variables by kind, handle, then version.
func (v Var) Compare(o Var) int {
	if c := cmp.Compare(v.Kind, o.Kind); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Handle, o.Handle); c != 0 {
		return c
	}
	return cmp.Compare(v.Version, o.Version)
}

// ValueKind distinguishes variable operands from literals.
type ValueKind uint8

const (
	// ValueVar refers to an SSA variable.
	ValueVar ValueKind = iota + 1
	// ValueNumber is a numeric literal identified by its handle.
	ValueNumber
)

// Value is an instruction operand.
type Value struct {
	Kind   ValueKind
	Var    Var           // ValueVar
	Handle source.Handle // ValueNumber
}

// VarValue wraps v as an operand.
func VarValue(v Var) Value {
	return Value{Kind: ValueVar, Var: v}
}

// NumberValue wraps a literal handle as an operand.
func NumberValue(h source.Handle) Value {
	return Value{Kind: ValueNumber, Handle: h}
}

// AsVar returns the variable of a ValueVar operand.
func (v Value) AsVar() (Var, bool) {
	if v.Kind != ValueVar {
		return Var{}, false
	}
	return v.Var, true
}

// Operator is a binary arithmetic operator.
type Operator uint8

const (
	OpAdd Operator = iota + 1
	OpSub
	OpMul
	OpDiv
)

func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "plus"
	case OpSub:
		return "minus"
	case OpMul:
		return "times"
	case OpDiv:
		return "div"
	}
	return "?"
}

// Instr is a three-address instruction `Dst = Left [Op Right]`.
// Without a right-hand side it is a plain definition of Dst from Left.
type Instr struct {
	Dst    Var
	Left   Value
	HasRHS bool
	Op     Operator
	Right  Value
}

// Vars returns the variables the instruction touches: destination first, then
// the left and right operands when they are variables.
func (in Instr) Vars() []Var {
	vars := make([]Var, 0, 3)
	vars = append(vars, in.Dst)
	if v, ok := in.Left.AsVar(); ok {
		vars = append(vars, v)
	}
	if in.HasRHS {
		if v, ok := in.Right.AsVar(); ok {
			vars = append(vars, v)
		}
	}
	return vars
}
