package engine

import (
	"sort"
	"strings"
)

// Resolver maps user-facing format names to an engine's tokens.
//
// The alias table is consulted first; names without an alias are matched
// case-insensitively against the engine's native tokens. Each engine owns
// exactly one Resolver, and every availability check goes through it.
type Resolver struct {
	aliases map[string]Token
	native  map[string]Token
}

// NewResolver builds a resolver. Alias keys are matched case-insensitively.
func NewResolver(aliases map[string]Token, native []Token) *Resolver {
	r := &Resolver{
		aliases: make(map[string]Token, len(aliases)),
		native:  make(map[string]Token, len(native)),
	}
	for name, tok := range aliases {
		r.aliases[fold(name)] = tok
	}
	for _, tok := range native {
		r.native[fold(string(tok))] = tok
	}
	return r
}

func fold(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Resolve returns the token for name, or false when the engine cannot
// produce it.
func (r *Resolver) Resolve(name string) (Token, bool) {
	key := fold(name)
	if key == "" {
		return "", false
	}
	if tok, ok := r.aliases[key]; ok {
		return tok, true
	}
	tok, ok := r.native[key]
	return tok, ok
}

// Available reports whether name resolves.
func (r *Resolver) Available(name string) bool {
	_, ok := r.Resolve(name)
	return ok
}

// Tokens returns the native tokens, sorted.
func (r *Resolver) Tokens() []Token {
	out := make([]Token, 0, len(r.native))
	for _, tok := range r.native {
		out = append(out, tok)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
