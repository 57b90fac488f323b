package expr

import (
	"errors"

	"github.com/ezrec/jcasm/translate"
)

var f = translate.From

var (
	ErrEvaluation = errors.New(f("evaluation failed"))
)

// ErrTypeMismatch reports operand types an operator does not accept.
type ErrTypeMismatch struct {
	Op    Op
	Kinds []Kind
}

func (err *ErrTypeMismatch) Error() string {
	return f("mismatched arguments to %v: %v", err.Op, err.Kinds)
}

func (err *ErrTypeMismatch) Is(target error) bool {
	return target == ErrEvaluation
}

// ErrSuffix reports a string subtraction whose suffix does not match.
type ErrSuffix struct {
	Value  string
	Suffix string
}

func (err *ErrSuffix) Error() string {
	return f("%q does not end with %q", err.Value, err.Suffix)
}

func (err *ErrSuffix) Is(target error) bool {
	return target == ErrEvaluation
}

// ErrRelocDifference reports a difference between relocations that do not
// target the same defined section.
type ErrRelocDifference struct {
	A, B string
}

func (err *ErrRelocDifference) Error() string {
	return f("%v and %v are not in the same section", err.A, err.B)
}

func (err *ErrRelocDifference) Is(target error) bool {
	return target == ErrEvaluation
}

// ErrRelative reports a value that cannot be made PC-relative.
type ErrRelative struct {
	Value Value
}

func (err *ErrRelative) Error() string {
	return f("%v (%v) cannot be PC-relative", err.Value, err.Value.Kind())
}

func (err *ErrRelative) Is(target error) bool {
	return target == ErrEvaluation
}
