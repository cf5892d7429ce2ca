package asm

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema is bumped whenever the encoded layout of Program changes.
const Schema uint16 = 1

// ErrSchemaMismatch is returned by Decode for programs of another schema.
var ErrSchemaMismatch = errors.New("asm: schema mismatch")

// Program is an emitted instruction sequence.
type Program struct {
	Schema uint16  `msgpack:"schema"`
	Instrs []Instr `msgpack:"instrs"`
}

// NewProgram returns an empty program of the current schema.
func NewProgram() *Program {
	return &Program{Schema: Schema}
}

// Append adds instructions.
func (p *Program) Append(ins ...Instr) {
	p.Instrs = append(p.Instrs, ins...)
}

// Len is the number of instructions.
func (p *Program) Len() int {
	return len(p.Instrs)
}

// Dump writes one instruction per line.
func (p *Program) Dump(w io.Writer) error {
	for _, in := range p.Instrs {
		if _, err := fmt.Fprintln(w, in.String()); err != nil {
			return err
		}
	}
	return nil
}

// Encode serialises p with msgpack.
func Encode(p *Program) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("asm: encode: nil program")
	}
	data, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("asm: encode: %w", err)
	}
	return data, nil
}

// Decode parses a program produced by Encode.
func Decode(data []byte) (*Program, error) {
	var p Program
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("asm: decode: %w", err)
	}
	if p.Schema != Schema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, p.Schema, Schema)
	}
	return &p, nil
}
