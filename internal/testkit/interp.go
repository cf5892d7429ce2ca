package testkit

import (
	"fmt"
	"strconv"

	"regscan/internal/source"
	"regscan/internal/ssa"
)

// Interp evaluates SSA directly; it is the reference the emitted code is
// checked against. Never-written variables read as zero.
type Interp struct {
	resolve source.Resolver
	env     map[ssa.Var]int64
}

// NewInterp returns an interpreter with an empty environment.
func NewInterp(resolve source.Resolver) *Interp {
	return &Interp{resolve: resolve, env: make(map[ssa.Var]int64)}
}

// Step executes in and returns the value stored into its destination.
func (p *Interp) Step(in ssa.Instr) (int64, error) {
	left, err := p.value(in.Left)
	if err != nil {
		return 0, err
	}
	v := left
	if in.HasRHS {
		right, err := p.value(in.Right)
		if err != nil {
			return 0, err
		}
		switch in.Op {
		case ssa.OpAdd:
			v = left + right
		case ssa.OpSub:
			v = left - right
		case ssa.OpMul:
			v = left * right
		case ssa.OpDiv:
			if right == 0 {
				return 0, fmt.Errorf("%s: division by zero", ssa.Format(in, p.resolve))
			}
			v = left / right
		}
	}
	p.env[in.Dst] = v
	return v, nil
}

// Value returns the last value stored into v.
func (p *Interp) Value(v ssa.Var) int64 { return p.env[v] }

func (p *Interp) value(val ssa.Value) (int64, error) {
	if val.Kind == ssa.ValueVar {
		return p.env[val.Var], nil
	}
	text := p.resolve(val.Handle)
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("literal %q: %w", text, err)
	}
	return n, nil
}
