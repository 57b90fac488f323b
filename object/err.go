package object

import (
	"errors"

	"github.com/ezrec/jcasm/translate"
)

var f = translate.From

var (
	ErrRelocSection = errors.New(f("relocation source section not emitted"))
	ErrRelocTarget  = errors.New(f("relocation target missing"))
)

// ErrReloc reports a relocation that cannot be placed in the object file.
type ErrReloc struct {
	Relocation
	Err error
}

func (err *ErrReloc) Error() string {
	return f("relocation %v: %v", err.Relocation.String(), err.Err)
}

func (err *ErrReloc) Unwrap() error {
	return err.Err
}
