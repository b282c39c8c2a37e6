// Package parser implements a pure recursive-descent parser over the
// fixed expression grammar described by the language's precedence chain
// (or_expr -> and_expr -> rel_expr -> sum_expr -> mult_expr -> exp_expr ->
// term_expr -> term). Each grammar level gets its own method, unlike the
// teacher's Pratt-style expression parser, because the grammar is small
// and fixed rather than driven by a precedence table.
package parser

import (
	"fmt"

	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/lexer"
	"github.com/cwbudde/numl/internal/parseerr"
	"github.com/cwbudde/numl/internal/token"
)

// Parser consumes tokens from a Lexer and builds ast.Stmt/ast.Expr trees,
// recovering from syntax errors by synchronizing to the next EOL and
// substituting an *ast.Stub so callers never need a nil check.
type Parser struct {
	lex    *lexer.Lexer
	cur    token.Token
	peek   token.Token
	source string
	file   string
	errors []*parseerr.Error
}

// New creates a Parser reading from lex. source is the full program text
// (used only to render caret-pointed error messages) and file is an
// optional display name.
func New(lex *lexer.Lexer, source, file string) *Parser {
	p := &Parser{lex: lex, source: source, file: file}
	p.advance()
	p.advance()
	return p
}

// Errors returns every error accumulated so far, in encounter order.
func (p *Parser) Errors() []*parseerr.Error { return p.errors }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, parseerr.New(pos, fmt.Sprintf(format, args...), p.source, p.file))
}

// expect consumes cur if it matches kind, else records an error and
// leaves cur untouched so synchronize() can still find an EOL.
func (p *Parser) expect(kind token.Kind) bool {
	if p.cur.Kind == kind {
		p.advance()
		return true
	}
	p.errorf(p.cur.Pos, "expected %s, got %s", kind, p.cur.Kind)
	return false
}

// synchronize advances past tokens until it reaches an EOL or EOF, the
// panic-mode recovery point for a broken statement.
func (p *Parser) synchronize() {
	for p.cur.Kind != token.EOL && p.cur.Kind != token.EOF {
		p.advance()
	}
}

func (p *Parser) atStmtEnd() bool {
	return p.cur.Kind == token.EOL || p.cur.Kind == token.EOF
}

// stub builds an *ast.Stub at pos and synchronizes the token stream.
func (p *Parser) stub(pos token.Position) *ast.Stub {
	p.synchronize()
	s := &ast.Stub{}
	s.SetPos(pos)
	return s
}

// AtEOF reports whether the parser has consumed the entire input.
func (p *Parser) AtEOF() bool { return p.cur.Kind == token.EOF }

// skipBlank consumes any run of leading EOL tokens (blank lines between
// statements).
func (p *Parser) skipBlank() {
	for p.cur.Kind == token.EOL {
		p.advance()
	}
}

// ParseStatement parses exactly one top-level statement, matching the
// driver's one-statement-per-iteration granularity. It returns nil at
// EOF. A trailing EOL (or EOF) terminating the statement is consumed.
func (p *Parser) ParseStatement() ast.Stmt {
	p.skipBlank()
	if p.cur.Kind == token.EOF {
		return nil
	}

	stmt := p.parseStmt()

	if !p.atStmtEnd() {
		p.errorf(p.cur.Pos, "unexpected %s at end of statement", p.cur.Kind)
		p.synchronize()
	}
	if p.cur.Kind == token.EOL {
		p.advance()
	}
	return stmt
}

// ParseProgram parses every top-level statement up to EOF and returns
// them together as one Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for {
		stmt := p.ParseStatement()
		if stmt == nil && p.cur.Kind == token.EOF {
			break
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

// parseStmt implements the `stmt` production.
func (p *Parser) parseStmt() ast.Stmt {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case token.FUNCTION:
		return p.parseFunctionDecl(pos)
	case token.LOCAL:
		return p.parseLocal(pos)
	case token.IF:
		return p.parseIf(pos)
	case token.FOR:
		return p.parseFor(pos)
	case token.WHILE:
		return p.parseWhile(pos)
	case token.BREAK:
		p.advance()
		return &ast.BreakStmt{}
	case token.CONTINUE:
		p.advance()
		return &ast.ContinueStmt{}
	case token.RETURN:
		return p.parseReturn(pos)
	case token.INCLUDE:
		return p.parseInclude(pos)
	case token.LBRACE:
		return p.parseBlock()
	default:
		expr := p.parseExpr()
		return &ast.ExprStmt{X: expr}
	}
}

func (p *Parser) parseFunctionDecl(pos token.Position) ast.Stmt {
	p.advance() // 'function'
	if p.cur.Kind != token.ID {
		p.errorf(p.cur.Pos, "expected function name, got %s", p.cur.Kind)
		return p.stub(pos)
	}
	name := p.cur.Lexeme
	p.advance()

	if !p.expect(token.LPARENTH) {
		return p.stub(pos)
	}
	var params []string
	for p.cur.Kind != token.RPARENTH {
		if p.cur.Kind != token.ID {
			p.errorf(p.cur.Pos, "expected parameter name, got %s", p.cur.Kind)
			return p.stub(pos)
		}
		params = append(params, p.cur.Lexeme)
		p.advance()
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RPARENTH) {
		return p.stub(pos)
	}
	if p.cur.Kind != token.LBRACE {
		p.errorf(p.cur.Pos, "expected '{' to start function body, got %s", p.cur.Kind)
		return p.stub(pos)
	}
	body := p.parseBlock()
	return &ast.FunctionDecl{Name: name, Params: params, Body: body}
}

func (p *Parser) parseLocal(pos token.Position) ast.Stmt {
	p.advance() // 'local'
	var names []string
	for {
		if p.cur.Kind != token.ID {
			p.errorf(p.cur.Pos, "expected identifier after local, got %s", p.cur.Kind)
			return p.stub(pos)
		}
		names = append(names, p.cur.Lexeme)
		p.advance()
		if p.cur.Kind != token.COMMA {
			break
		}
		p.advance()
	}
	return &ast.LocalStmt{Names: names}
}

func (p *Parser) parseIf(pos token.Position) ast.Stmt {
	p.advance() // 'if'
	if !p.expect(token.LPARENTH) {
		return p.stub(pos)
	}
	cond := p.parseOrExpr()
	if !p.expect(token.RPARENTH) {
		return p.stub(pos)
	}
	then := p.parseStmt()
	var elseStmt ast.Stmt
	if p.cur.Kind == token.ELSE {
		p.advance()
		elseStmt = p.parseStmt()
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt}
}

func (p *Parser) parseFor(pos token.Position) ast.Stmt {
	p.advance() // 'for'
	if !p.expect(token.LPARENTH) {
		return p.stub(pos)
	}
	var init ast.Expr
	if p.cur.Kind != token.SEMICOLON {
		init = p.parseExpr()
	}
	if !p.expect(token.SEMICOLON) {
		return p.stub(pos)
	}
	var cond ast.Expr
	if p.cur.Kind != token.SEMICOLON {
		cond = p.parseOrExpr()
	}
	if !p.expect(token.SEMICOLON) {
		return p.stub(pos)
	}
	var post ast.Expr
	if p.cur.Kind != token.RPARENTH {
		post = p.parseExpr()
	}
	if !p.expect(token.RPARENTH) {
		return p.stub(pos)
	}
	body := p.parseStmt()
	return &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseWhile(pos token.Position) ast.Stmt {
	p.advance() // 'while'
	if !p.expect(token.LPARENTH) {
		return p.stub(pos)
	}
	cond := p.parseOrExpr()
	if !p.expect(token.RPARENTH) {
		return p.stub(pos)
	}
	body := p.parseStmt()
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) parseReturn(pos token.Position) ast.Stmt {
	p.advance() // 'return'
	if p.atStmtEnd() {
		return &ast.ReturnStmt{}
	}
	return &ast.ReturnStmt{Value: p.parseSumExpr()}
}

func (p *Parser) parseInclude(pos token.Position) ast.Stmt {
	p.advance() // 'include'
	if p.cur.Kind != token.STRING {
		p.errorf(p.cur.Pos, "expected a string path after include, got %s", p.cur.Kind)
		return p.stub(pos)
	}
	path := p.cur.Str
	p.advance()
	return &ast.IncludeStmt{Path: path}
}

// parseBlock implements `'{' stmts '}'`, chaining each nested statement
// via Next and terminating the list with an *ast.EndScope sentinel. An
// EOL between statements is optional and skipped like blank space (the
// original grammar does not require one before a closing brace), so
// `{ x = 1 }` and `{ x = 1\ny = 2 }` both parse.
func (p *Parser) parseBlock() *ast.Block {
	p.advance() // '{'

	block := &ast.Block{}
	var last ast.Stmt
	for p.cur.Kind != token.RBRACE && p.cur.Kind != token.EOF {
		if p.cur.Kind == token.EOL {
			p.advance()
			continue
		}
		stmt := p.parseStmt()
		if last == nil {
			block.First = stmt
		} else {
			last.SetNext(stmt)
		}
		last = stmt
	}
	end := &ast.EndScope{}
	if last == nil {
		block.First = end
	} else {
		last.SetNext(end)
	}
	if !p.expect(token.RBRACE) {
		p.synchronize()
	}
	return block
}
