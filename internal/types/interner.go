// Package types models the built-in type registry as an explicit value
// rather than the process-wide singleton the teacher's type system uses
// (internal/types in the teacher repo). Downstream semantic analysis is
// out of scope here (spec §1); this package exists only to hand the
// parser an opaque Handle for each built-in type keyword so type-annotated
// leaves (§3 "Type handle") have something concrete to carry.
package types

import "github.com/aolang/ao/pkg/token"

// Handle is an opaque identity for a built-in type. Two handles compare
// equal iff they name the same built-in type; callers outside this
// package must not depend on the underlying representation.
type Handle struct {
	name string
}

// String returns the type's canonical name, e.g. "u32".
func (h Handle) String() string { return h.name }

// IsZero reports whether h is the zero Handle (no type).
func (h Handle) IsZero() bool { return h.name == "" }

// Interner hands out Handles for the built-in type keywords. It is
// constructed once by the driver and passed into the parser explicitly,
// per the "Global type registry" design note: no package-level mutable
// state, so two parses never share or race over type identity.
type Interner struct {
	byKind map[token.Kind]Handle
}

// NewInterner builds an Interner preloaded with every built-in type name
// from the reserved-token table.
func NewInterner() *Interner {
	in := &Interner{byKind: make(map[token.Kind]Handle, 12)}
	for _, k := range []token.Kind{
		token.TypeAddress, token.TypeBool, token.TypeNum, token.TypeStr,
		token.TypeI8, token.TypeI16, token.TypeI32, token.TypeI64,
		token.TypeU8, token.TypeU16, token.TypeU32, token.TypeU64,
	} {
		in.byKind[k] = Handle{name: k.String()}
	}
	return in
}

// Lookup returns the Handle for a built-in type keyword and true, or the
// zero Handle and false if k does not name a built-in type.
func (in *Interner) Lookup(k token.Kind) (Handle, bool) {
	h, ok := in.byKind[k]
	return h, ok
}
