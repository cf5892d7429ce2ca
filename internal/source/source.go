package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Handle is an opaque position in the token stream. It never carries text.
type Handle uint32

// Resolver maps a handle to the source text it denotes. Implementations must be
// deterministic and side-effect free; the compiler only asks for text to parse
// numeric literals and to print names.
type Resolver func(Handle) string

// StaticResolver resolves handles from a fixed table. Unknown handles resolve to "".
func StaticResolver(table map[Handle]string) Resolver {
	return func(h Handle) string {
		return table[h]
	}
}

// WordsResolver resolves handle i to words[i].
func WordsResolver(words []string) Resolver {
	return func(h Handle) string {
		if int(h) >= len(words) {
			return ""
		}
		return words[h]
	}
}

// HandleAt converts a token index into a Handle.
func HandleAt(index int) Handle {
	h, err := safecast.Conv[uint32](index)
	if err != nil {
		panic(fmt.Errorf("source: handle overflow: %w", err))
	}
	return Handle(h)
}
