package fuzztests

import (
	"strconv"
	"testing"

	"regscan/internal/asm"
)

const (
	maxStatements = 48
	maxDepth      = 3
	names         = "abcde"
)

func addCorpusSeeds(f *testing.F) {
	seeds := [][]byte{
		{},
		{0, 3, 7, 7, 7},
		{1, 4, 2, 4, 6, 3, 8, 1, 9},
		{2, 5, 11, 12, 13, 14, 15, 16, 3, 3, 3, 3},
		{3, 6, 1, 0, 2, 255, 254, 253, 7, 6, 5, 4, 3, 2},
		{4, 7, 9, 1, 7, 10, 4, 4, 7, 22, 1, 3, 7, 33, 5, 5},
	}
	for _, s := range seeds {
		f.Add(s)
	}
}

// generator turns fuzz bytes into prefix words. Identifiers are only read
// after they were assigned and divisors are non-zero literals, so every
// stream it produces compiles and evaluates.
type generator struct {
	data    []byte
	pos     int
	defined []string
	words   []string
}

// generate returns the register file and the statement words encoded by data.
func generate(data []byte) ([]asm.Reg, []string) {
	g := &generator{data: data}
	regs := make([]asm.Reg, int(g.next()%5))
	for i := range regs {
		regs[i] = asm.Reg(i)
	}
	for n := 0; g.more() && n < maxStatements; n++ {
		g.statement()
	}
	return regs, g.words
}

func (g *generator) more() bool { return g.pos < len(g.data) }

func (g *generator) next() byte {
	if !g.more() {
		return 0
	}
	b := g.data[g.pos]
	g.pos++
	return b
}

func (g *generator) statement() {
	b := g.next()
	switch b % 8 {
	case 0:
		g.words = append(g.words, "{")
	case 1:
		g.words = append(g.words, "}")
	case 2:
		g.expr(maxDepth - 1)
	default:
		target := string(names[int(b/8)%len(names)])
		g.words = append(g.words, "=", target)
		g.expr(maxDepth)
		if !contains(g.defined, target) {
			g.defined = append(g.defined, target)
		}
	}
}

func (g *generator) expr(depth int) {
	b := g.next()
	if depth == 0 || b%3 == 0 {
		g.leaf()
		return
	}
	switch (b / 3) % 4 {
	case 0:
		g.words = append(g.words, "+")
	case 1:
		g.words = append(g.words, "-")
	case 2:
		g.words = append(g.words, "*")
	case 3:
		g.words = append(g.words, "/")
		g.expr(depth - 1)
		g.words = append(g.words, strconv.Itoa(int(g.next()%9)+1))
		return
	}
	g.expr(depth - 1)
	g.expr(depth - 1)
}

func (g *generator) leaf() {
	b := g.next()
	if len(g.defined) > 0 && b%2 == 1 {
		g.words = append(g.words, g.defined[int(b/2)%len(g.defined)])
		return
	}
	g.words = append(g.words, strconv.Itoa(int(b%10)))
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
