// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ezrec/jcasm/object"
)

// Op is an expression operator.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOT      = Op(0) // ~
	OP_LNOT     = Op(1) // !
	OP_LAND     = Op(2) // &&
	OP_LOR      = Op(3) // ||
	OP_PLUS     = Op(4) // +
	OP_MINUS    = Op(5) // -
	OP_MUL      = Op(6) // *
	OP_EQUALS   = Op(7) // ==
	OP_NOTEQUAL = Op(8) // !=
	OP_LT       = Op(9) // <
)

// PCREL_BIAS is added to the addend of a PC-relative reference; the program
// counter has advanced past the instruction when the operand is applied.
const PCREL_BIAS = -4

// Expr is an operand expression.
type Expr interface {
	Evaluate(state *State) (Value, error)
	String() string
}

// IntLit is an integer literal.
type IntLit int64

// StringLit is a string literal.
type StringLit string

// Label is a reference to a register or label by name.
type Label struct {
	Name string
}

// Unary is a unary operator: OP_NOT, OP_LNOT or OP_MINUS.
type Unary struct {
	Op Op
	A  Expr
}

// Binary is a binary operator.
type Binary struct {
	Op   Op
	A, B Expr
}

// Const is an already evaluated value.
type Const struct {
	Value Value
}

// PCRel makes a relocation relative to the instruction it is used in.
// Integers are already relative and pass through.
type PCRel struct {
	Expr Expr
}

func (lit IntLit) Evaluate(state *State) (Value, error) {
	return Int(lit), nil
}

func (lit IntLit) String() string {
	return strconv.FormatInt(int64(lit), 10)
}

func (lit StringLit) Evaluate(state *State) (Value, error) {
	return String(lit), nil
}

func (lit StringLit) String() string {
	return strconv.Quote(string(lit))
}

// Evaluate returns the register with the label's name, or a relocation to
// the label. Undefined labels are external.
func (label *Label) Evaluate(state *State) (value Value, err error) {
	reg, ok := state.register(label.Name)
	if ok {
		return reg, nil
	}

	rel := object.Relocation{
		SourceSection: state.section(),
		TargetName:    label.Name,
	}
	lo, ok := state.label(label.Name)
	if ok {
		rel.TargetSection = lo.Section
	}

	return Reloc{Relocation: rel}, nil
}

func (label *Label) String() string {
	return label.Name
}

func (c *Const) Evaluate(state *State) (Value, error) {
	return c.Value, nil
}

func (c *Const) String() string {
	return c.Value.String()
}

func (pc *PCRel) Evaluate(state *State) (value Value, err error) {
	value, err = pc.Expr.Evaluate(state)
	if err != nil {
		return
	}

	switch v := value.(type) {
	case Int:
		return v, nil
	case Reloc:
		v.IsPCRel = true
		v.Addend += PCREL_BIAS
		return v, nil
	}

	return nil, &ErrRelative{Value: value}
}

func (pc *PCRel) String() string {
	return fmt.Sprintf("%v-.", pc.Expr)
}

func (un *Unary) Evaluate(state *State) (value Value, err error) {
	a, err := un.A.Evaluate(state)
	if err != nil {
		return
	}

	if un.Op == OP_MINUS {
		switch a := a.(type) {
		case Void:
			return a, nil
		case Int:
			return -a, nil
		}
		return nil, &ErrTypeMismatch{Op: un.Op, Kinds: kinds(a)}
	}

	n, ok := Integer(a)
	if !ok {
		return nil, &ErrTypeMismatch{Op: un.Op, Kinds: kinds(a)}
	}

	switch un.Op {
	case OP_NOT:
		return Int(^n), nil
	case OP_LNOT:
		return boolean(n == 0), nil
	}

	return nil, &ErrTypeMismatch{Op: un.Op, Kinds: kinds(a)}
}

func (un *Unary) String() string {
	return fmt.Sprintf("%v%v", un.Op, un.A)
}

func (bin *Binary) Evaluate(state *State) (value Value, err error) {
	a, err := bin.A.Evaluate(state)
	if err != nil {
		return
	}

	// Short circuit.
	switch bin.Op {
	case OP_LAND, OP_LOR:
		n, ok := Integer(a)
		if !ok {
			return nil, &ErrTypeMismatch{Op: bin.Op, Kinds: kinds(a)}
		}
		if bin.Op == OP_LAND && n == 0 {
			return Int(0), nil
		}
		if bin.Op == OP_LOR && n != 0 {
			return Int(1), nil
		}
	}

	b, err := bin.B.Evaluate(state)
	if err != nil {
		return
	}

	switch bin.Op {
	case OP_PLUS:
		return plus(a, b)
	case OP_MINUS:
		return minus(state, a, b)
	case OP_EQUALS, OP_NOTEQUAL:
		sa, oka := a.(String)
		sb, okb := b.(String)
		if oka && okb {
			return boolean((sa == sb) == (bin.Op == OP_EQUALS)), nil
		}
	}

	na, oka := Integer(a)
	nb, okb := Integer(b)
	if !oka || !okb {
		return nil, &ErrTypeMismatch{Op: bin.Op, Kinds: kinds(a, b)}
	}

	switch bin.Op {
	case OP_LAND, OP_LOR:
		return boolean(nb != 0), nil
	case OP_MUL:
		return Int(na * nb), nil
	case OP_EQUALS:
		return boolean(na == nb), nil
	case OP_NOTEQUAL:
		return boolean(na != nb), nil
	case OP_LT:
		return boolean(na < nb), nil
	}

	return nil, &ErrTypeMismatch{Op: bin.Op, Kinds: kinds(a, b)}
}

func (bin *Binary) String() string {
	return fmt.Sprintf("(%v %v %v)", bin.A, bin.Op, bin.B)
}

func boolean(b bool) Int {
	if b {
		return 1
	}
	return 0
}

func plus(a, b Value) (Value, error) {
	switch a := a.(type) {
	case Int:
		switch b := b.(type) {
		case Int:
			return a + b, nil
		case Reloc:
			b.Addend += int64(a)
			return b, nil
		}
	case String:
		if b, ok := b.(String); ok {
			return a + b, nil
		}
	case Void:
		if b, ok := b.(Void); ok {
			return b, nil
		}
	case Reloc:
		if b, ok := b.(Int); ok {
			a.Addend += int64(b)
			return a, nil
		}
	}

	return nil, &ErrTypeMismatch{Op: OP_PLUS, Kinds: kinds(a, b)}
}

func minus(state *State, a, b Value) (Value, error) {
	switch a := a.(type) {
	case Int:
		if b, ok := b.(Int); ok {
			return a - b, nil
		}
	case String:
		switch b := b.(type) {
		case String:
			if !strings.HasSuffix(string(a), string(b)) {
				return nil, &ErrSuffix{Value: string(a), Suffix: string(b)}
			}
			return a[:len(a)-len(b)], nil
		case Int, Void:
			n, _ := Integer(b)
			n = min(max(n, 0), int64(len(a)))
			return a[:int64(len(a))-n], nil
		}
	case Void:
		if b, ok := b.(Void); ok {
			return b, nil
		}
	case Reloc:
		switch b := b.(type) {
		case Int:
			a.Addend -= int64(b)
			return a, nil
		case Reloc:
			return difference(state, a, b)
		}
	}

	return nil, &ErrTypeMismatch{Op: OP_MINUS, Kinds: kinds(a, b)}
}

// difference is the distance between two relocations into the same section.
func difference(state *State, a, b Reloc) (Value, error) {
	if a.TargetSection == nil || a.TargetSection != b.TargetSection {
		return nil, &ErrRelocDifference{A: a.TargetName, B: b.TargetName}
	}

	loa, oka := state.label(a.TargetName)
	lob, okb := state.label(b.TargetName)
	if !oka || !okb {
		return nil, &ErrRelocDifference{A: a.TargetName, B: b.TargetName}
	}

	return Int(int64(loa.Offset) + a.Addend - int64(lob.Offset) - b.Addend), nil
}
