package testkit

import (
	"regscan/internal/node"
	"regscan/internal/source"
)

// Prefix builds a node stream from prefix-ordered words, the way the parser
// would emit it. Word i gets handle i, and the returned resolver maps handles
// back to the words.
//
//	"="              assignment
//	"+" "-" "*" "/"  operators
//	"{" "}"          scope markers
//	digits or "#..." number literal
//	anything else    identifier
func Prefix(words ...string) ([]node.Node, source.Resolver) {
	nodes := make([]node.Node, 0, len(words))
	for i, w := range words {
		h := source.HandleAt(i)
		switch {
		case w == "=":
			nodes = append(nodes, node.NewAssignment())
		case w == "+":
			nodes = append(nodes, node.NewOp(node.Add))
		case w == "-":
			nodes = append(nodes, node.NewOp(node.Sub))
		case w == "*":
			nodes = append(nodes, node.NewOp(node.Mul))
		case w == "/":
			nodes = append(nodes, node.NewOp(node.Div))
		case w == "{":
			nodes = append(nodes, node.NewScopeOpen())
		case w == "}":
			nodes = append(nodes, node.NewScopeEnd())
		case isNumber(w):
			nodes = append(nodes, node.NewNumber(h))
		default:
			nodes = append(nodes, node.NewIdent(h))
		}
	}
	return nodes, source.WordsResolver(words)
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	if w[0] == '#' {
		return true
	}
	for i := 0; i < len(w); i++ {
		if w[i] < '0' || w[i] > '9' {
			return false
		}
	}
	return true
}
