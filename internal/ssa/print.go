package ssa

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"regscan/internal/source"
)

// VarName renders v as `T3` or `a2`.
func VarName(v Var, resolve source.Resolver) string {
	if v.Kind == VarTemp {
		return "T" + strconv.Itoa(v.Version)
	}
	return resolve(v.Handle) + strconv.Itoa(v.Version)
}

// ValueString renders an operand; literals print their source text.
func ValueString(v Value, resolve source.Resolver) string {
	if v.Kind == ValueNumber {
		return resolve(v.Handle)
	}
	return VarName(v.Var, resolve)
}

// Format renders one instruction, e.g. `T2 = 3 times T1`.
func Format(in Instr, resolve source.Resolver) string {
	var sb strings.Builder
	sb.WriteString(VarName(in.Dst, resolve))
	sb.WriteString(" = ")
	sb.WriteString(ValueString(in.Left, resolve))
	if in.HasRHS {
		sb.WriteByte(' ')
		sb.WriteString(in.Op.String())
		sb.WriteByte(' ')
		sb.WriteString(ValueString(in.Right, resolve))
	}
	return sb.String()
}

// Dump writes one instruction per line.
func Dump(w io.Writer, instrs []Instr, resolve source.Resolver) error {
	for _, in := range instrs {
		if _, err := fmt.Fprintln(w, Format(in, resolve)); err != nil {
			return err
		}
	}
	return nil
}
