package parser

import (
	"github.com/aolang/ao/internal/ast"
	"github.com/aolang/ao/internal/lexer"
	"github.com/aolang/ao/internal/types"
	"github.com/aolang/ao/pkg/token"
)

// Parser is the precedence-climbing parser of spec §4.5, rewritten per
// spec §9 as a classic Pratt parser: an explicit value owning a token
// cursor, exposing parseExpression(minBindingPower) as its core
// primitive plus one recursive-descent handler per statement/definition
// kind. This replaces the source's two-stack shunting-yard engine, which
// the spec explicitly names as an acceptable, often cleaner alternative.
type Parser struct {
	cursor *TokenCursor
	types  *types.Interner
}

// New wraps an already-positioned cursor in a Parser.
func New(cursor *TokenCursor, interner *types.Interner) *Parser {
	return &Parser{cursor: cursor, types: interner}
}

// Parse tokenizes src via tz and parses it to a module root, per the
// public `parse(tokenIterator) -> AstNode` / `tokenize(charStream) ->
// tokenIterator` interfaces named in spec §6.
func Parse(tz *lexer.Tokenizer, interner *types.Interner) (*ast.Node, error) {
	cursor, err := NewTokenCursor(tz)
	if err != nil {
		return nil, err
	}
	return New(cursor, interner).parseModule()
}

func (p *Parser) advance() error {
	nc, err := p.cursor.Advance()
	if err != nil {
		return err
	}
	p.cursor = nc
	return nil
}

func (p *Parser) expect(k token.Kind) error {
	if !p.cursor.Is(k) {
		return errExpectedLexeme(p.cursor.Current().Pos, k.String())
	}
	return p.advance()
}

func (p *Parser) expectNewline() error {
	if p.cursor.IsEOF() {
		return nil
	}
	if !p.cursor.IsCategory(token.CatNewline) {
		return errExpectedLexeme(p.cursor.Current().Pos, "\n")
	}
	return p.advance()
}

// consumeIndent implements spec §4.6's "consume indentation markers to
// reach the requested level": it consumes every contiguous CatIndent
// token at the cursor. If fewer than level were available, none are
// consumed (the cursor is rewound) and false is returned — signalling a
// dedent, i.e. end of the enclosing body.
func (p *Parser) consumeIndent(level int) (bool, error) {
	mark := p.cursor.Mark()
	count := 0
	for p.cursor.IsCategory(token.CatIndent) {
		if err := p.advance(); err != nil {
			return false, err
		}
		count++
	}
	if count < level {
		p.cursor = p.cursor.ResetTo(mark)
		return false, nil
	}
	return true, nil
}

// requireNonEmptyBody guards the variadic-minimum arity of StatementIf/
// StatementElif/StatementWhile (each requires at least one body
// statement beyond its condition, per arity.go): an empty block would
// otherwise reach ast.New below its declared minimum and panic, but an
// empty block is a malformed-input condition, not a structural bug, so
// it must surface as an ordinary ParserError instead.
func (p *Parser) requireNonEmptyBody(body []*ast.Node) error {
	if len(body) == 0 {
		return errExpectingOperand(p.cursor.Current().Pos)
	}
	return nil
}

func (p *Parser) skipBlankLines() error {
	for p.cursor.IsCategory(token.CatNewline) {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// parseModule is the entry point named in spec §4.5: seed a module node
// and repeatedly parse top-level statements until end-of-file.
func (p *Parser) parseModule() (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	stmts, err := p.parseBody(0)
	if err != nil {
		return nil, err
	}
	if !p.cursor.IsEOF() {
		return nil, errExpectedLexeme(p.cursor.Current().Pos, "<end of file>")
	}
	return ast.New(ast.ModuleDefinition, pos, stmts...), nil
}

// parseBody implements spec §4.6: repeatedly parse one statement at
// indent level, reading the following line's indentation markers (and
// any blank lines) to decide whether the body continues or has dedented.
func (p *Parser) parseBody(level int) ([]*ast.Node, error) {
	var stmts []*ast.Node
	for {
		if err := p.skipBlankLines(); err != nil {
			return nil, err
		}
		if p.cursor.IsEOF() {
			return stmts, nil
		}
		ok, err := p.consumeIndent(level)
		if err != nil {
			return nil, err
		}
		if !ok {
			return stmts, nil
		}
		stmt, err := p.parseStatement(level)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) parseStatement(level int) (*ast.Node, error) {
	tok := p.cursor.Current()
	if tok.Category == token.CatReserved {
		switch tok.Kind {
		case token.If:
			return p.parseIf(level)
		case token.While:
			return p.parseWhile(level)
		case token.Def:
			return p.parseDef(level)
		case token.Let:
			return p.parseLet()
		case token.Contract:
			return p.parseContract(level)
		case token.Pass:
			pos := tok.Pos
			if err := p.advance(); err != nil {
				return nil, err
			}
			if err := p.expectNewline(); err != nil {
				return nil, err
			}
			return ast.New(ast.StatementPass, pos), nil
		case token.Return:
			return p.parseReturn()
		case token.Import:
			return p.parseImport()
		case token.Assert:
			return p.parseAssert()
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (*ast.Node, error) {
	expr, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseElifOrElseTail speculatively checks whether the line at level
// continues an if/elif chain; on a miss it rewinds so the caller's own
// parseBody sees the line untouched.
func (p *Parser) parseElifOrElseTail(level int) ([]*ast.Node, error) {
	mark := p.cursor.Mark()
	ok, err := p.consumeIndent(level)
	if err != nil {
		return nil, err
	}
	if !ok {
		p.cursor = p.cursor.ResetTo(mark)
		return nil, nil
	}
	switch {
	case p.cursor.Is(token.Elif):
		branch, err := p.parseElif(level)
		if err != nil {
			return nil, err
		}
		return []*ast.Node{branch}, nil
	case p.cursor.Is(token.Else):
		branch, err := p.parseElse(level)
		if err != nil {
			return nil, err
		}
		return []*ast.Node{branch}, nil
	default:
		p.cursor = p.cursor.ResetTo(mark)
		return nil, nil
	}
}

func (p *Parser) parseIf(level int) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBody(level + 1)
	if err != nil {
		return nil, err
	}
	if err := p.requireNonEmptyBody(body); err != nil {
		return nil, err
	}
	children := append([]*ast.Node{cond}, body...)
	tail, err := p.parseElifOrElseTail(level)
	if err != nil {
		return nil, err
	}
	children = append(children, tail...)
	return ast.New(ast.StatementIf, pos, children...), nil
}

func (p *Parser) parseElif(level int) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBody(level + 1)
	if err != nil {
		return nil, err
	}
	if err := p.requireNonEmptyBody(body); err != nil {
		return nil, err
	}
	children := append([]*ast.Node{cond}, body...)
	tail, err := p.parseElifOrElseTail(level)
	if err != nil {
		return nil, err
	}
	children = append(children, tail...)
	return ast.New(ast.StatementElif, pos, children...), nil
}

func (p *Parser) parseElse(level int) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBody(level + 1)
	if err != nil {
		return nil, err
	}
	if err := p.requireNonEmptyBody(body); err != nil {
		return nil, err
	}
	return ast.New(ast.StatementElse, pos, body...), nil
}

func (p *Parser) parseWhile(level int) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBody(level + 1)
	if err != nil {
		return nil, err
	}
	if err := p.requireNonEmptyBody(body); err != nil {
		return nil, err
	}
	children := append([]*ast.Node{cond}, body...)
	return ast.New(ast.StatementWhile, pos, children...), nil
}

// parseTypeLeaf parses a single built-in type-keyword token into a leaf
// carrying its interned Handle.
func (p *Parser) parseTypeLeaf() (*ast.Node, error) {
	tok := p.cursor.Current()
	if !tok.IsTypeName() {
		return nil, errExpectingOperand(tok.Pos)
	}
	h, _ := p.types.Lookup(tok.Kind)
	if err := p.advance(); err != nil {
		return nil, err
	}
	return ast.NewTypeLeaf(tok.Pos, h), nil
}

func (p *Parser) parseDef(level int) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok := p.cursor.Current()
	if nameTok.Category != token.CatIdent {
		return nil, errExpectingOperand(nameTok.Pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var params []*ast.Node
	if p.cursor.IsCategory(token.CatIdent) && p.cursor.Current().Literal == "self" {
		selfTok := p.cursor.Current()
		if err := p.advance(); err != nil {
			return nil, err
		}
		// self carries no type annotation; the empty identifier leaf is a
		// placeholder second child satisfying FunctionParameterDefinition's
		// fixed (name, type) arity.
		params = append(params, ast.New(ast.FunctionParameterDefinition, selfTok.Pos,
			ast.NewIdentLeaf(selfTok.Pos, "self"), ast.NewIdentLeaf(selfTok.Pos, "")))
		if p.cursor.Is(token.Comma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	for p.cursor.IsCategory(token.CatIdent) {
		paramTok := p.cursor.Current()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(token.Colon); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeLeaf()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.New(ast.FunctionParameterDefinition, paramTok.Pos,
			ast.NewIdentLeaf(paramTok.Pos, paramTok.Literal), typ))
		if p.cursor.Is(token.Comma) {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	if err := p.expect(token.RParen); err != nil {
		return nil, err
	}

	var retType *ast.Node
	if p.cursor.Is(token.Arrow) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rt, err := p.parseTypeLeaf()
		if err != nil {
			return nil, err
		}
		retType = rt
	}

	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBody(level + 1)
	if err != nil {
		return nil, err
	}

	children := []*ast.Node{ast.NewIdentLeaf(nameTok.Pos, nameTok.Literal)}
	children = append(children, params...)
	if retType != nil {
		children = append(children, retType)
	}
	children = append(children, body...)
	return ast.New(ast.FunctionDefinition, pos, children...), nil
}

// parseLet implements spec §4.5's Let handler. At least one of the type
// annotation and the initializer must be present: the spec leaves
// whether a bare `let x` is syntactically valid as an open question
// (§9), and this parser takes the conservative reading and rejects it.
func (p *Parser) parseLet() (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok := p.cursor.Current()
	if nameTok.Category != token.CatIdent {
		return nil, errExpectingOperand(nameTok.Pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	children := []*ast.Node{ast.NewIdentLeaf(nameTok.Pos, nameTok.Literal)}

	if p.cursor.Is(token.Colon) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		typ, err := p.parseTypeLeaf()
		if err != nil {
			return nil, err
		}
		children = append(children, typ)
	}
	if p.cursor.Is(token.Assign) {
		if err := p.advance(); err != nil {
			return nil, err
		}
		init, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		children = append(children, init)
	}
	if len(children) == 1 {
		return nil, errExpectingOperand(p.cursor.Current().Pos)
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.New(ast.VariableDefinition, pos, children...), nil
}

func (p *Parser) parseContract(level int) (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	nameTok := p.cursor.Current()
	if nameTok.Category != token.CatIdent {
		return nil, errExpectingOperand(nameTok.Pos)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	body, err := p.parseBody(level + 1)
	if err != nil {
		return nil, err
	}
	children := append([]*ast.Node{ast.NewIdentLeaf(nameTok.Pos, nameTok.Literal)}, body...)
	return ast.New(ast.ContractDefinition, pos, children...), nil
}

// parseReturn treats a bare `return` (nothing before the line end) as
// returning a synthetic None leaf, since spec §3 fixes StatementReturn's
// arity at exactly one operand with no valueless variant.
func (p *Parser) parseReturn() (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	var val *ast.Node
	if p.cursor.IsCategory(token.CatNewline) || p.cursor.IsEOF() {
		val = ast.NewIdentLeaf(pos, "None")
	} else {
		v, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		val = v
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.New(ast.StatementReturn, pos, val), nil
}

// parseImport and parseAssert accept zero or one trailing expression:
// spec §9 leaves their syntax beyond the leading keyword unspecified, so
// both are modeled as variadic-minimum-0 per arity.go.
func (p *Parser) parseImport() (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	var children []*ast.Node
	if !p.cursor.IsCategory(token.CatNewline) && !p.cursor.IsEOF() {
		v, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		children = append(children, v)
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.New(ast.StatementImport, pos, children...), nil
}

func (p *Parser) parseAssert() (*ast.Node, error) {
	pos := p.cursor.Current().Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	var children []*ast.Node
	if !p.cursor.IsCategory(token.CatNewline) && !p.cursor.IsEOF() {
		cond, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		children = append(children, cond)
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}
	return ast.New(ast.StatementAssert, pos, children...), nil
}
