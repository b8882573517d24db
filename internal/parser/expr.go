package parser

import (
	"github.com/aolang/ao/internal/ast"
	"github.com/aolang/ao/pkg/token"
)

// binaryOperators maps a reserved operator/keyword token to the AST kind
// it builds when used infix, per spec §4.3's precedence table. is/in/not
// combinations are handled separately in matchInfixOperator since they
// span more than one token.
var binaryOperators = map[token.Kind]ast.NodeKind{
	token.StarStar:     ast.Exponent,
	token.Star:         ast.Multiplication,
	token.Slash:        ast.Division,
	token.SlashSlash:   ast.FloorDivision,
	token.Percent:      ast.Modulus,
	token.Plus:         ast.Addition,
	token.Minus:        ast.Subtraction,
	token.LShift:       ast.BitwiseLeftShift,
	token.RShift:       ast.BitwiseRightShift,
	token.Amp:          ast.BitwiseAnd,
	token.Caret:        ast.BitwiseXor,
	token.Pipe:         ast.BitwiseOr,
	token.EqEq:         ast.Equality,
	token.NotEq:        ast.Inequality,
	token.Gt:           ast.GreaterThan,
	token.GtEq:         ast.GreaterThanEqual,
	token.Lt:           ast.LessThan,
	token.LtEq:         ast.LessThanEqual,
	token.And:          ast.LogicalAnd,
	token.Or:           ast.LogicalOr,
	token.Assign:       ast.Assign,
	token.PlusEq:       ast.AssignAdd,
	token.MinusEq:      ast.AssignSubtract,
	token.StarEq:       ast.AssignMultiply,
	token.SlashEq:      ast.AssignDivide,
	token.SlashSlashEq: ast.AssignFloorDivide,
	token.PercentEq:    ast.AssignModulus,
	token.StarStarEq:   ast.AssignExponent,
	token.AmpEq:        ast.AssignBitwiseAnd,
	token.PipeEq:       ast.AssignBitwiseOr,
	token.CaretEq:      ast.AssignBitwiseXor,
	token.LShiftEq:     ast.AssignBitwiseLeftShift,
	token.RShiftEq:     ast.AssignBitwiseRightShift,
}

// bindingPower converts a precedence group (§4.3, 1 = tightest) into a
// Pratt minimum-binding-power value (higher = binds tighter). This is an
// order-preserving inversion of ast.PrecedenceGroup, not a new precedence
// policy: the table it is derived from is the single source of truth.
func bindingPower(kind ast.NodeKind) int {
	return 100 - ast.PrecedenceGroup(kind)
}

// bpPostfix is the binding power of Call, Index and member access/call:
// all three are postfix and bind tighter than any operator in the
// precedence table, so they always fire regardless of the enclosing
// minimum binding power.
const bpPostfix = 1000

// parseExpression is the Pratt primitive named in spec §9: parse a
// prefix operand, then repeatedly fold in infix/postfix operators whose
// binding power is at least minBP.
func (p *Parser) parseExpression(minBP int) (*ast.Node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	return p.parseInfix(left, minBP)
}

func (p *Parser) parsePrefix() (*ast.Node, error) {
	tok := p.cursor.Current()

	switch tok.Category {
	case token.CatNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if tok.IsFloat {
			return ast.NewFloatLeaf(tok.Pos, tok.FloatValue), nil
		}
		return ast.NewIntLeaf(tok.Pos, tok.IntValue), nil
	case token.CatString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringLeaf(tok.Pos, tok.StringValue), nil
	case token.CatIdent:
		return p.parseIdentOrCall()
	}

	if tok.Category != token.CatReserved {
		return nil, errExpectingOperand(tok.Pos)
	}

	switch tok.Kind {
	case token.True:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLeaf(tok.Pos, true), nil
	case token.False:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLeaf(tok.Pos, false), nil
	case token.LParen:
		return p.parseParentheses()
	case token.Plus:
		return p.parseUnary(ast.UnaryPlus)
	case token.Minus:
		return p.parseUnary(ast.UnaryMinus)
	case token.Tilde:
		return p.parseUnary(ast.BitwiseNot)
	case token.Not:
		return p.parseUnary(ast.LogicalNot)
	}

	if tok.IsTypeName() {
		return p.parseTypeLeaf()
	}

	return nil, errExpectingOperand(tok.Pos)
}

func (p *Parser) parseUnary(kind ast.NodeKind) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(bindingPower(kind))
	if err != nil {
		return nil, err
	}
	return ast.New(kind, pos, operand), nil
}

func (p *Parser) parseParentheses() (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	inner, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if !p.cursor.Is(token.RParen) {
		return nil, errExpectedLexeme(p.cursor.Current().Pos, ")")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.New(ast.Parentheses, pos, inner), nil
}

// parseIdentOrCall implements spec §4.5's call reinterpretation: an
// identifier immediately followed by "(" is a Call rather than a plain
// identifier reference. The probe uses the cursor's lightweight Mark/
// ResetTo per spec §9's "single-step token rewind" design note.
func (p *Parser) parseIdentOrCall() (*ast.Node, error) {
	tok := p.cursor.Current()
	mark := p.cursor.Mark()
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cursor.Is(token.LParen) {
		return p.finishCall(tok.Pos, tok.Literal)
	}
	p.cursor = p.cursor.ResetTo(mark)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewIdentLeaf(tok.Pos, tok.Literal), nil
}

// parseArgList parses a comma-separated argument list; the cursor must
// already be positioned just past the opening "(".
func (p *Parser) parseArgList() ([]*ast.Node, error) {
	var args []*ast.Node
	if p.cursor.Is(token.RParen) {
		return args, nil
	}
	for {
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cursor.Is(token.Comma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return args, nil
}

func (p *Parser) finishCall(pos token.Position, name string) (*ast.Node, error) {
	if err := p.advance(); err != nil { // consume "("
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	if !p.cursor.Is(token.RParen) {
		return nil, errExpectedLexeme(p.cursor.Current().Pos, ")")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	children := append([]*ast.Node{ast.NewIdentLeaf(pos, name)}, args...)
	return ast.New(ast.Call, pos, children...), nil
}

// parseMemberAccess handles the postfix "." operator: a bare attribute
// reference becomes a two-child MemberCall (object, name); one followed
// by "(" additionally carries the call arguments as further children.
func (p *Parser) parseMemberAccess(left *ast.Node, pos token.Position) (*ast.Node, error) {
	if err := p.advance(); err != nil { // consume "."
		return nil, err
	}
	nameTok := p.cursor.Current()
	if nameTok.Category != token.CatIdent {
		return nil, errExpectingOperand(nameTok.Pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	children := []*ast.Node{left, ast.NewIdentLeaf(nameTok.Pos, nameTok.Literal)}
	if p.cursor.Is(token.LParen) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		args, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		if !p.cursor.Is(token.RParen) {
			return nil, errExpectedLexeme(p.cursor.Current().Pos, ")")
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		children = append(children, args...)
	}
	return ast.New(ast.MemberCall, pos, children...), nil
}

// matchedOp describes one infix-operator match: how many tokens it spans
// (1 for most, 2 for "is not" / "not in") and the AST kind it builds.
type matchedOp struct {
	kind   ast.NodeKind
	tokens int
}

// matchInfixOperator inspects the current (and possibly next) token to
// decide whether an infix operator starts here. is/in/not need a second
// token of lookahead to distinguish IsIdentical/IsNotIdentical and
// IsMemberOf/IsNotMemberOf; every other operator is a single reserved
// token found directly in binaryOperators.
func (p *Parser) matchInfixOperator() (matchedOp, bool, error) {
	tok := p.cursor.Current()
	if tok.Category != token.CatReserved {
		return matchedOp{}, false, nil
	}
	switch tok.Kind {
	case token.Is:
		nxt, err := p.cursor.Peek(1)
		if err != nil {
			return matchedOp{}, false, err
		}
		if nxt.Is(token.Not) {
			return matchedOp{kind: ast.IsNotIdentical, tokens: 2}, true, nil
		}
		return matchedOp{kind: ast.IsIdentical, tokens: 1}, true, nil
	case token.Not:
		nxt, err := p.cursor.Peek(1)
		if err != nil {
			return matchedOp{}, false, err
		}
		if nxt.Is(token.In) {
			return matchedOp{kind: ast.IsNotMemberOf, tokens: 2}, true, nil
		}
		return matchedOp{}, false, nil
	case token.In:
		return matchedOp{kind: ast.IsMemberOf, tokens: 1}, true, nil
	}
	if kind, ok := binaryOperators[tok.Kind]; ok {
		return matchedOp{kind: kind, tokens: 1}, true, nil
	}
	return matchedOp{}, false, nil
}

// parseInfix is the Pratt continuation loop: fold in postfix Index/
// member-access operators (always, since they outrank every table
// entry) and table-driven infix binary operators whose binding power is
// at least minBP, building a left-deep tree that respects associativity
// (right-associative only for Exponent, per spec §4.3).
func (p *Parser) parseInfix(left *ast.Node, minBP int) (*ast.Node, error) {
	for {
		tok := p.cursor.Current()

		if tok.Is(token.LBracket) {
			pos := tok.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			sub, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			if !p.cursor.Is(token.RBracket) {
				return nil, errExpectedLexeme(p.cursor.Current().Pos, "]")
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
			left = ast.New(ast.Index, pos, left, sub)
			continue
		}

		if tok.Is(token.Dot) {
			pos := tok.Pos
			member, err := p.parseMemberAccess(left, pos)
			if err != nil {
				return nil, err
			}
			left = member
			continue
		}

		match, ok, err := p.matchInfixOperator()
		if err != nil {
			return nil, err
		}
		if !ok {
			return left, nil
		}
		bp := bindingPower(match.kind)
		if bp < minBP {
			return left, nil
		}

		pos := tok.Pos
		for i := 0; i < match.tokens; i++ {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		nextBP := bp + 1
		if ast.RightAssociative(match.kind) {
			nextBP = bp
		}
		right, err := p.parseExpression(nextBP)
		if err != nil {
			return nil, err
		}
		left = ast.New(match.kind, pos, left, right)
	}
}
