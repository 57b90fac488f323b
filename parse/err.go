package parse

import (
	"errors"

	"github.com/ezrec/jcasm/translate"
)

var f = translate.From

var (
	ErrEquateSyntax     = errors.New(f(".equ syntax"))
	ErrEquateDuplicate  = errors.New(f(".equ duplicated"))
	ErrEquateRecursion  = errors.New(f(".equ recursion"))
	ErrDirectiveUnknown = errors.New(f("directive unknown"))
	ErrDirectiveSyntax  = errors.New(f("directive syntax"))
	ErrOpcodeMissing    = errors.New(f("opcode missing"))
	ErrOpcodeExtraArgs  = errors.New(f("excessive arguments"))
	ErrConditionInvalid = errors.New(f("condition invalid"))
	ErrRegisterInvalid  = errors.New(f("register invalid"))
	ErrTargetMissing    = errors.New(f("target missing"))
	ErrValueMissing     = errors.New(f("value missing"))

	ErrExpressionUnsupported = errors.New(f("unsupported expression"))
)

// ErrSyntax reports the source line a parse failure was found on.
type ErrSyntax struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("%v:%d '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrExpression reports an operand that is not a valid expression.
type ErrExpression struct {
	Text string
	Err  error
}

func (err *ErrExpression) Error() string {
	return f("'%v' is not a valid expression: %v", err.Text, err.Err)
}

func (err *ErrExpression) Unwrap() error {
	return err.Err
}
