package parser

import (
	"github.com/cwbudde/numl/internal/ast"
	"github.com/cwbudde/numl/internal/token"
)

// parseExpr implements `expr := or_expr [ '=' or_expr ]`. Assignment
// requires its left side to be an identifier or an indexed access; any
// other left side is reported as an rvalue assignment and the left side
// is returned unchanged, dropping the assignment rather than the operand.
func (p *Parser) parseExpr() ast.Expr {
	left := p.parseOrExpr()
	if p.cur.Kind != token.EQUALITY {
		return left
	}
	pos := p.cur.Pos
	p.advance()
	right := p.parseOrExpr()

	switch left.(type) {
	case *ast.Identifier, *ast.IndexExpr:
		assign := &ast.AssignExpr{Target: left, Value: right}
		assign.SetPos(left.Pos())
		return assign
	default:
		p.errorf(pos, "rvalue assignment")
		return left
	}
}

// parseOrExpr implements `or_expr := and_expr { '||' and_expr }`.
func (p *Parser) parseOrExpr() ast.Expr {
	left := p.parseAndExpr()
	for p.cur.Kind == token.OR {
		p.advance()
		right := p.parseAndExpr()
		left = p.binary(left.Pos(), ast.OpOr, left, right)
	}
	return left
}

// parseAndExpr implements `and_expr := rel_expr { '&&' rel_expr }`.
func (p *Parser) parseAndExpr() ast.Expr {
	left := p.parseRelExpr()
	for p.cur.Kind == token.AND {
		p.advance()
		right := p.parseRelExpr()
		left = p.binary(left.Pos(), ast.OpAnd, left, right)
	}
	return left
}

var relOps = map[token.Kind]ast.Op{
	token.LT: ast.OpLt,
	token.LE: ast.OpLe,
	token.GT: ast.OpGt,
	token.GE: ast.OpGe,
	token.EQ: ast.OpEq,
	token.NE: ast.OpNe,
}

// parseRelExpr implements `rel_expr := sum_expr [ relop sum_expr ]`. A
// single comparison only: relational operators do not chain.
func (p *Parser) parseRelExpr() ast.Expr {
	left := p.parseSumExpr()
	op, ok := relOps[p.cur.Kind]
	if !ok {
		return left
	}
	p.advance()
	right := p.parseSumExpr()
	return p.binary(left.Pos(), op, left, right)
}

// parseSumExpr implements `sum_expr := mult_expr { (+|-) mult_expr }`.
func (p *Parser) parseSumExpr() ast.Expr {
	left := p.parseMultExpr()
	for p.cur.Kind == token.PLUS || p.cur.Kind == token.MINUS {
		op := ast.OpAdd
		if p.cur.Kind == token.MINUS {
			op = ast.OpSub
		}
		p.advance()
		right := p.parseMultExpr()
		left = p.binary(left.Pos(), op, left, right)
	}
	return left
}

// parseMultExpr implements `mult_expr := exp_expr { (*|/) exp_expr }`.
func (p *Parser) parseMultExpr() ast.Expr {
	left := p.parseExpExpr()
	for p.cur.Kind == token.ASTERIK || p.cur.Kind == token.SLASH {
		op := ast.OpMul
		if p.cur.Kind == token.SLASH {
			op = ast.OpDiv
		}
		p.advance()
		right := p.parseExpExpr()
		left = p.binary(left.Pos(), op, left, right)
	}
	return left
}

// parseExpExpr implements `exp_expr := term_expr { '^' term_expr }`,
// left-folding repeated '^' chains per the source's associativity.
func (p *Parser) parseExpExpr() ast.Expr {
	left := p.parseTermExpr()
	for p.cur.Kind == token.CARET {
		p.advance()
		right := p.parseTermExpr()
		left = p.binary(left.Pos(), ast.OpExp, left, right)
	}
	return left
}

// binary builds a BinaryExpr and stamps its position.
func (p *Parser) binary(pos token.Position, op ast.Op, left, right ast.Expr) ast.Expr {
	b := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	b.SetPos(pos)
	return b
}

// parseTermExpr implements `term_expr := '(' or_expr ')' | term`.
func (p *Parser) parseTermExpr() ast.Expr {
	if p.cur.Kind == token.LPARENTH {
		p.advance()
		expr := p.parseOrExpr()
		p.expect(token.RPARENTH)
		return expr
	}
	return p.parseTerm()
}

// parseTerm implements
// `term := ID | ID '(' args ')' | ID '[' idx ']'{'[' idx ']'} | NUMBER |
//          STRING | '[' matrix-literal ']'`.
func (p *Parser) parseTerm() ast.Expr {
	pos := p.cur.Pos
	switch p.cur.Kind {
	case token.DOUBLE:
		v := p.cur.Num
		p.advance()
		lit := &ast.NumberLit{Value: v}
		lit.SetPos(pos)
		return lit
	case token.STRING:
		s := p.cur.Str
		p.advance()
		lit := &ast.StringLit{Value: s}
		lit.SetPos(pos)
		return lit
	case token.ID:
		name := p.cur.Lexeme
		p.advance()
		switch p.cur.Kind {
		case token.LPARENTH:
			return p.parseCall(pos, name)
		case token.LBRACKET:
			return p.parseIndex(pos, name)
		default:
			return ast.NewIdentifier(pos, name)
		}
	case token.LBRACKET:
		return p.parseMatrixLiteral(pos)
	default:
		p.errorf(pos, "unexpected %s in expression", p.cur.Kind)
		p.synchronize()
		return ast.NewIdentifier(pos, "")
	}
}

func (p *Parser) parseCall(pos token.Position, name string) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	for p.cur.Kind != token.RPARENTH && p.cur.Kind != token.EOF {
		args = append(args, p.parseOrExpr())
		if p.cur.Kind == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPARENTH)
	call := &ast.CallExpr{Name: name, Args: args}
	call.SetPos(pos)
	return call
}

func (p *Parser) parseIndex(pos token.Position, name string) ast.Expr {
	var indices []ast.Expr
	for p.cur.Kind == token.LBRACKET {
		p.advance()
		indices = append(indices, p.parseOrExpr())
		p.expect(token.RBRACKET)
	}
	idx := &ast.IndexExpr{Name: name, Indices: indices}
	idx.SetPos(pos)
	return idx
}

// parseMatrixLiteral implements `'[' matrix ']'` where
// `matrix := or_expr { ',' or_expr | ';' or_expr }`. Commas separate
// elements within a row; semicolons start a new row, which must match
// the first row's width. A single row or single column collapses to a
// vector; anything else yields a matrix.
func (p *Parser) parseMatrixLiteral(pos token.Position) ast.Expr {
	p.advance() // '['

	var elems []ast.Expr
	rows := 1
	firstRowWidth := 0
	curRowWidth := 0

	if p.cur.Kind != token.RBRACKET {
		elems = append(elems, p.parseOrExpr())
		curRowWidth++

		for p.cur.Kind == token.COMMA || p.cur.Kind == token.SEMICOLON {
			if p.cur.Kind == token.SEMICOLON {
				if firstRowWidth == 0 {
					firstRowWidth = curRowWidth
				} else if curRowWidth != firstRowWidth {
					p.errorf(p.cur.Pos, "incompatible column count")
					p.synchronize()
					return &ast.MatrixLit{}
				}
				rows++
				curRowWidth = 0
			}
			p.advance()
			elems = append(elems, p.parseOrExpr())
			curRowWidth++
		}
	}
	if firstRowWidth == 0 {
		firstRowWidth = curRowWidth
	} else if curRowWidth != firstRowWidth {
		p.errorf(p.cur.Pos, "incompatible column count")
		p.synchronize()
		return &ast.MatrixLit{}
	}
	p.expect(token.RBRACKET)

	if rows == 1 || firstRowWidth == 1 {
		v := &ast.VectorLit{Elems: elems}
		v.SetPos(pos)
		return v
	}
	m := &ast.MatrixLit{Rows: rows, Cols: firstRowWidth, Elems: elems}
	m.SetPos(pos)
	return m
}
