package asm

import (
	"strconv"

	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

// Operand is an instruction operand resolved against a layout: one of
// RegOperand, ImmOperand or RelocOperand.
type Operand interface {
	String() string
	operand()
}

// RegOperand is a register.
type RegOperand struct {
	Name string
	ID   int
}

// ImmOperand is an immediate.
type ImmOperand int64

// RelocOperand is a relocation, encoded as a zero immediate.
type RelocOperand struct {
	object.Relocation
}

func (RegOperand) operand()   {}
func (ImmOperand) operand()   {}
func (RelocOperand) operand() {}

func (op RegOperand) String() string {
	return op.Name
}

func (op ImmOperand) String() string {
	return strconv.FormatInt(int64(op), 10)
}

// Lower evaluates an operand expression. A nil expression is a nil operand.
func Lower(e expr.Expr, state *expr.State) (op Operand, err error) {
	if e == nil {
		return
	}

	value, err := e.Evaluate(state)
	if err != nil {
		return
	}

	switch value := value.(type) {
	case expr.Register:
		op = RegOperand{Name: value.Name, ID: value.ID}
	case expr.Int:
		op = ImmOperand(value)
	case expr.Reloc:
		op = RelocOperand{Relocation: value.Relocation}
	default:
		err = &ErrOperand{Value: value}
	}

	return
}
