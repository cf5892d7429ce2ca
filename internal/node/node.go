package node

import (
	"fmt"

	"regscan/internal/source"
)

// Kind enumerates node kinds produced by the parser.
type Kind uint8

const (
	// Assignment is followed by the target identifier and the value expression.
	Assignment Kind = iota + 1
	// Add is followed by its two operand subtrees.
	Add
	// Sub is followed by its two operand subtrees.
	Sub
	// Mul is followed by its two operand subtrees.
	Mul
	// Div is followed by its two operand subtrees.
	Div
	// Number is a literal leaf.
	Number
	// Identifier is a name leaf.
	Identifier
	// ScopeOpen marks '{'.
	ScopeOpen
	// ScopeEnd marks '}'.
	ScopeEnd
	// VarDecl is followed by the variable and type identifiers.
	VarDecl
	// StructDecl is followed by the struct name identifier.
	StructDecl
	// StructMemberDecl is followed by the member and type identifiers.
	StructMemberDecl
)

func (k Kind) String() string {
	switch k {
	case Assignment:
		return "assignment"
	case Add:
		return "add"
	case Sub:
		return "sub"
	case Mul:
		return "mul"
	case Div:
		return "div"
	case Number:
		return "number"
	case Identifier:
		return "identifier"
	case ScopeOpen:
		return "scope"
	case ScopeEnd:
		return "scope-end"
	case VarDecl:
		return "var-decl"
	case StructDecl:
		return "struct-decl"
	case StructMemberDecl:
		return "struct-member-decl"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsOperator reports binary arithmetic kinds.
func (k Kind) IsOperator() bool {
	return k >= Add && k <= Div
}

// IsLeaf reports Number and Identifier.
func (k Kind) IsLeaf() bool {
	return k == Number || k == Identifier
}

// IsDeclaration reports kinds that must be stripped before lowering.
func (k Kind) IsDeclaration() bool {
	return k == VarDecl || k == StructDecl || k == StructMemberDecl
}

// declOperands is the number of identifier nodes that follow a declaration header.
func (k Kind) declOperands() int {
	switch k {
	case VarDecl, StructMemberDecl:
		return 2
	case StructDecl:
		return 1
	}
	return 0
}

// Node is one element of the prefix-ordered stream.
// Handle is meaningful only for Number and Identifier.
type Node struct {
	Kind   Kind
	Handle source.Handle
}

func (n Node) String() string {
	if n.Kind.IsLeaf() {
		return fmt.Sprintf("%s(%d)", n.Kind, n.Handle)
	}
	return n.Kind.String()
}

// Simple constructors, handy for hand-built streams.
func NewAssignment() Node { return Node{Kind: Assignment} }
func NewOp(k Kind) Node { return Node{Kind: k} }
func NewNumber(h source.Handle) Node { return Node{Kind: Number, Handle: h} }
func NewIdent(h source.Handle) Node { return Node{Kind: Identifier, Handle: h} }
func NewScopeOpen() Node { return Node{Kind: ScopeOpen} }
func NewScopeEnd() Node { return Node{Kind: ScopeEnd} }
