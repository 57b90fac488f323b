package arch

import (
	"errors"

	"github.com/ezrec/jcasm/translate"
)

var f = translate.From

var (
	ErrRegisterRange  = errors.New(f("register id out of range"))
	ErrOpcodeRange    = errors.New(f("opcode out of range"))
	ErrConditionRange = errors.New(f("condition code out of range"))
)

// ErrTable reports a bad entry in a name table.
type ErrTable struct {
	Table string
	Name  string
	Err   error
}

func (err *ErrTable) Error() string {
	return f("%v %v: %v", err.Table, err.Name, err.Err)
}

func (err *ErrTable) Unwrap() error {
	return err.Err
}
