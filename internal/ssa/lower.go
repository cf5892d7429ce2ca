package ssa

import (
	"regscan/internal/ice"
	"regscan/internal/node"
)

type loweredKind uint8

const (
	// loweredEmitted: the expression produced instructions; the last one holds the result.
	loweredEmitted loweredKind = iota + 1
	// loweredValue: the expression is a leaf and produced no instructions.
	loweredValue
)

type lowered struct {
	kind   loweredKind
	instrs []Instr
	value  Value
}

// lowerExpr consumes one prefix-ordered expression subtree.
func (b *Builder) lowerExpr() lowered {
	n, ok := b.next()
	if !ok {
		ice.Panicf(ice.StructuralMismatch, "ssa", "expression expected, found end of stream")
	}

	switch {
	case n.Kind == node.Number:
		return lowered{kind: loweredValue, value: NumberValue(n.Handle)}
	case n.Kind == node.Identifier:
		return lowered{kind: loweredValue, value: VarValue(b.read(n.Handle))}
	case n.Kind.IsOperator():
		var out []Instr
		left := b.operand(&out)
		right := b.operand(&out)
		out = append(out, Instr{
			Dst:    b.nextTemp(),
			Left:   left,
			HasRHS: true,
			Op:     operatorFor(n.Kind),
			Right:  right,
		})
		return lowered{kind: loweredEmitted, instrs: out}
	}

	ice.Panicf(ice.StructuralMismatch, "ssa", "%s is not valid in expression position (node %d)", n.Kind, b.pos-1)
	return lowered{}
}

// operand lowers one operand subtree, appending its instructions to out.
func (b *Builder) operand(out *[]Instr) Value {
	res := b.lowerExpr()
	switch res.kind {
	case loweredEmitted:
		*out = append(*out, res.instrs...)
		return VarValue(res.instrs[len(res.instrs)-1].Dst)
	case loweredValue:
		return res.value
	}
	ice.Panicf(ice.StructuralMismatch, "ssa", "operand produced nothing")
	return Value{}
}

func operatorFor(k node.Kind) Operator {
	switch k {
	case node.Add:
		return OpAdd
	case node.Sub:
		return OpSub
	case node.Mul:
		return OpMul
	case node.Div:
		return OpDiv
	}
	ice.Panicf(ice.StructuralMismatch, "ssa", "%s is not an operator", k)
	return 0
}
