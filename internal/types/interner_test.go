package types

import (
	"testing"

	"github.com/aolang/ao/pkg/token"
)

func TestInternerLookupKnownTypes(t *testing.T) {
	in := NewInterner()
	for _, k := range []token.Kind{token.TypeU32, token.TypeAddress, token.TypeBool, token.TypeStr} {
		h, ok := in.Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%v) not found", k)
		}
		if h.String() != k.String() {
			t.Errorf("Lookup(%v).String() = %q, want %q", k, h.String(), k.String())
		}
	}
}

func TestInternerLookupUnknown(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup(token.If); ok {
		t.Error("Lookup(If) should fail: not a type keyword")
	}
}

func TestInternerStableIdentity(t *testing.T) {
	in := NewInterner()
	a, _ := in.Lookup(token.TypeI64)
	b, _ := in.Lookup(token.TypeI64)
	if a != b {
		t.Error("two lookups of the same type keyword should yield equal handles")
	}
}
