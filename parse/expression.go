// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package parse

import (
	"strings"

	"go.starlark.net/syntax"

	"github.com/ezrec/jcasm/expr"
)

// EQUATE_DEPTH limits how deeply equates may refer to other equates.
const EQUATE_DEPTH = 16

var binaryOps = map[syntax.Token]expr.Op{
	syntax.PLUS:  expr.OP_PLUS,
	syntax.MINUS: expr.OP_MINUS,
	syntax.STAR:  expr.OP_MUL,
	syntax.EQL:   expr.OP_EQUALS,
	syntax.NEQ:   expr.OP_NOTEQUAL,
	syntax.LT:    expr.OP_LT,
	syntax.AND:   expr.OP_LAND,
	syntax.OR:    expr.OP_LOR,
}

// Expression parses operand text into an expression. Names that are
// equates are replaced by the equate's expression.
func (p *Parser) Expression(text string) (e expr.Expr, err error) {
	return p.expression(text, 0)
}

func (p *Parser) expression(text string, depth int) (e expr.Expr, err error) {
	if depth > EQUATE_DEPTH {
		err = ErrEquateRecursion
		return
	}

	text = strings.TrimSpace(text)
	if len(text) == 0 {
		err = ErrValueMissing
		return
	}

	opts := syntax.FileOptions{}
	node, err := opts.ParseExpr(p.file, strings.TrimSpace(logicalOps(text)), 0)
	if err != nil {
		err = &ErrExpression{Text: text, Err: err}
		return
	}

	e, err = p.convert(node, depth)
	if err != nil {
		err = &ErrExpression{Text: text, Err: err}
	}

	return
}

// dotted joins a chain of selectors, so 'main.loop' names a label.
func dotted(node syntax.Expr) (name string, ok bool) {
	switch node := node.(type) {
	case *syntax.Ident:
		return node.Name, true
	case *syntax.DotExpr:
		name, ok = dotted(node.X)
		if ok {
			name += "." + node.Name.Name
		}
	}
	return
}

func (p *Parser) name(name string, depth int) (e expr.Expr, err error) {
	equate, ok := p.Equate[name]
	if ok {
		return p.expression(equate, depth+1)
	}
	return &expr.Label{Name: name}, nil
}

// convert turns a Starlark expression into an assembler expression.
func (p *Parser) convert(node syntax.Expr, depth int) (e expr.Expr, err error) {
	switch node := node.(type) {
	case *syntax.Literal:
		switch value := node.Value.(type) {
		case int64:
			return expr.IntLit(value), nil
		case string:
			return expr.StringLit(value), nil
		}
	case *syntax.Ident:
		return p.name(node.Name, depth)
	case *syntax.DotExpr:
		name, ok := dotted(node)
		if ok {
			return p.name(name, depth)
		}
	case *syntax.ParenExpr:
		return p.convert(node.X, depth)
	case *syntax.UnaryExpr:
		var a expr.Expr
		a, err = p.convert(node.X, depth)
		if err != nil {
			return
		}
		switch node.Op {
		case syntax.PLUS:
			return a, nil
		case syntax.MINUS:
			return &expr.Unary{Op: expr.OP_MINUS, A: a}, nil
		case syntax.TILDE:
			return &expr.Unary{Op: expr.OP_NOT, A: a}, nil
		case syntax.NOT:
			return &expr.Unary{Op: expr.OP_LNOT, A: a}, nil
		}
	case *syntax.BinaryExpr:
		var a, b expr.Expr
		a, err = p.convert(node.X, depth)
		if err != nil {
			return
		}
		b, err = p.convert(node.Y, depth)
		if err != nil {
			return
		}
		op, ok := binaryOps[node.Op]
		if ok {
			return &expr.Binary{Op: op, A: a, B: b}, nil
		}
		switch node.Op {
		case syntax.GT:
			return &expr.Binary{Op: expr.OP_LT, A: b, B: a}, nil
		case syntax.LE:
			return &expr.Unary{Op: expr.OP_LNOT, A: &expr.Binary{Op: expr.OP_LT, A: b, B: a}}, nil
		case syntax.GE:
			return &expr.Unary{Op: expr.OP_LNOT, A: &expr.Binary{Op: expr.OP_LT, A: a, B: b}}, nil
		}
	}

	err = ErrExpressionUnsupported
	return
}
