package node

// Strip returns a copy of nodes without declarations. A declaration header is
// removed together with the identifier operands that belong to it, so an
// initialised declaration `int a = 1;` leaves only its assignment behind.
func Strip(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		if !n.Kind.IsDeclaration() {
			out = append(out, n)
			continue
		}
		skip := n.Kind.declOperands()
		for skip > 0 && i+1 < len(nodes) && nodes[i+1].Kind == Identifier {
			i++
			skip--
		}
	}
	return out
}
