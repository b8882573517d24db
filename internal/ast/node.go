// Package ast defines the AST node model described in spec §3: a single
// tagged node type, either a leaf (literal, identifier, or type handle) or
// an internal node carrying a NodeKind and an ordered list of children.
// This is deliberately not an interface hierarchy (contrast the teacher's
// internal/ast, one Go struct per node kind implementing a shared Node
// interface) — spec §9 calls out "heterogeneous token and AST node
// values" as a pattern to re-architect as a tagged sum type, not open
// polymorphism, so every node, leaf or internal, is this one struct.
package ast

import (
	"fmt"
	"strings"

	"github.com/aolang/ao/internal/types"
	"github.com/aolang/ao/pkg/token"
)

// LeafKind discriminates the payload of a leaf Node.
type LeafKind int

const (
	LeafNone LeafKind = iota
	LeafNumber
	LeafString
	LeafBool
	LeafIdentifier
	LeafType
)

// Node is the single AST node type. IsLeaf distinguishes which half of the
// struct is meaningful: a leaf carries a literal/identifier/type-handle
// payload and no children; an internal node carries a Kind and Children
// and none of the leaf payload fields.
type Node struct {
	Pos Position

	// Internal-node fields.
	Kind     NodeKind
	Children []*Node

	// Leaf fields.
	Leaf        LeafKind
	NumIsFloat  bool
	IntValue    int64
	FloatValue  float64
	StringValue string
	BoolValue   bool
	Ident       string
	TypeHandle  types.Handle
}

// Position is a re-export of token.Position so callers of this package
// don't need to import pkg/token just to read a node's location.
type Position = token.Position

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool { return n.Leaf != LeafNone }

// NewIntLeaf builds a leaf node for an integer literal.
func NewIntLeaf(pos Position, v int64) *Node {
	return &Node{Pos: pos, Leaf: LeafNumber, IntValue: v}
}

// NewFloatLeaf builds a leaf node for a floating-point literal.
func NewFloatLeaf(pos Position, v float64) *Node {
	return &Node{Pos: pos, Leaf: LeafNumber, NumIsFloat: true, FloatValue: v}
}

// NewStringLeaf builds a leaf node for a decoded string literal.
func NewStringLeaf(pos Position, v string) *Node {
	return &Node{Pos: pos, Leaf: LeafString, StringValue: v}
}

// NewBoolLeaf builds a leaf node for True/False.
func NewBoolLeaf(pos Position, v bool) *Node {
	return &Node{Pos: pos, Leaf: LeafBool, BoolValue: v}
}

// NewIdentLeaf builds a leaf node for an identifier reference.
func NewIdentLeaf(pos Position, name string) *Node {
	return &Node{Pos: pos, Leaf: LeafIdentifier, Ident: name}
}

// NewTypeLeaf builds a leaf node carrying an interned built-in type handle.
func NewTypeLeaf(pos Position, h types.Handle) *Node {
	return &Node{Pos: pos, Leaf: LeafType, TypeHandle: h}
}

// New builds an internal node of the given kind with the given children,
// validating arity per the table in arity.go. It panics on an arity
// violation: arity is a structural invariant the parser must never
// violate, not a user-facing error (malformed input such as an empty
// block is rejected by the parser with a ParserError *before* it would
// ever call New with the wrong count — see internal/parser).
func New(kind NodeKind, pos Position, children ...*Node) *Node {
	if err := ValidateArity(kind, len(children)); err != nil {
		panic(fmt.Sprintf("ast.New(%v): %v", kind, err))
	}
	return &Node{Pos: pos, Kind: kind, Children: children}
}

// String renders a compact, deterministic debug form of the tree: leaves
// print their value, internal nodes print "Kind(child, child, ...)". This
// is the representation used by golden/snapshot tests (see
// internal/driver fixture tests) — it intentionally omits positions so
// snapshots aren't line-number-fragile.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	switch n.Leaf {
	case LeafNumber:
		if n.NumIsFloat {
			fmt.Fprintf(sb, "%v", n.FloatValue)
		} else {
			fmt.Fprintf(sb, "%d", n.IntValue)
		}
		return
	case LeafString:
		fmt.Fprintf(sb, "%q", n.StringValue)
		return
	case LeafBool:
		fmt.Fprintf(sb, "%v", n.BoolValue)
		return
	case LeafIdentifier:
		sb.WriteString(n.Ident)
		return
	case LeafType:
		sb.WriteString(n.TypeHandle.String())
		return
	}

	sb.WriteString(n.Kind.String())
	sb.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			sb.WriteString(", ")
		}
		c.write(sb)
	}
	sb.WriteByte(')')
}
