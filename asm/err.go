package asm

import (
	"errors"

	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
	"github.com/ezrec/jcasm/translate"
)

var f = translate.From

var (
	ErrRangeOverflow      = errors.New(f("operand out of range"))
	ErrUnknownOpcode      = errors.New(f("unknown opcode"))
	ErrInvalidDestination = errors.New(f("invalid destination register"))
	ErrInvalidLiteral     = errors.New(f("invalid literal"))
	ErrUndefinedLabel     = errors.New(f("undefined label"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrDataType           = errors.New(f("unsupported type in data directive"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOperandType        = errors.New(f("operand is not a register, integer or label"))
)

// ErrStatement reports the statement a failure was found in.
type ErrStatement struct {
	Pos       Pos
	Statement Statement
	Err       error
}

func (err *ErrStatement) Error() string {
	return f("%v: '%v' %v", err.Pos, err.Statement, err.Err)
}

func (err *ErrStatement) Unwrap() error {
	return err.Err
}

// ErrOverflow reports an immediate that does not fit its instruction field.
type ErrOverflow struct {
	Field object.Field
	Value int64
}

func (err *ErrOverflow) Error() string {
	min, max := err.Field.Range()
	return f("%v does not fit %v [%v, %v]", err.Value, err.Field, min, max)
}

func (err *ErrOverflow) Is(target error) bool {
	return target == ErrRangeOverflow
}

// ErrOperand reports a value that cannot be used as an operand.
type ErrOperand struct {
	Value expr.Value
}

func (err *ErrOperand) Error() string {
	return f("%v (%v) is not a valid operand", err.Value, err.Value.Kind())
}

func (err *ErrOperand) Is(target error) bool {
	return target == ErrOperandType || target == expr.ErrEvaluation
}

// ErrSymbol reports a symbol declaration that could not be evaluated.
type ErrSymbol struct {
	Name string
	Err  error
}

func (err *ErrSymbol) Error() string {
	return f("symbol %v: %v", err.Name, err.Err)
}

func (err *ErrSymbol) Unwrap() error {
	return err.Err
}
