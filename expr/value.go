// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package expr

import (
	"strconv"

	"github.com/ezrec/jcasm/object"
)

// Kind is the type of a Value.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_INT      = Kind(0) // int
	KIND_STRING   = Kind(1) // string
	KIND_VOID     = Kind(2) // void
	KIND_REGISTER = Kind(3) // register
	KIND_RELOC    = Kind(4) // reloc
)

// Value is the result of evaluating an expression. It is one of Int, String,
// Void, Register or Reloc.
type Value interface {
	Kind() Kind
	String() string
	value()
}

// Int is an integer value.
type Int int64

// String is a string value.
type String string

// Void is the empty value.
type Void struct{}

// Register is an architectural register.
type Register struct {
	Name string
	ID   int
}

// Reloc is a reference to a label, resolved by the linker.
type Reloc struct {
	object.Relocation
}

func (Int) Kind() Kind      { return KIND_INT }
func (String) Kind() Kind   { return KIND_STRING }
func (Void) Kind() Kind     { return KIND_VOID }
func (Register) Kind() Kind { return KIND_REGISTER }
func (Reloc) Kind() Kind    { return KIND_RELOC }

func (Int) value()      {}
func (String) value()   {}
func (Void) value()     {}
func (Register) value() {}
func (Reloc) value()    {}

func (v Int) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v String) String() string {
	return strconv.Quote(string(v))
}

func (Void) String() string {
	return "{void}"
}

func (v Register) String() string {
	return v.Name
}

// Integer coerces a value to an integer. Strings are 1 unless empty, void is
// 0 and registers are their id. Relocations have no integer value.
func Integer(v Value) (n int64, ok bool) {
	switch v := v.(type) {
	case Int:
		return int64(v), true
	case String:
		if len(v) != 0 {
			n = 1
		}
		return n, true
	case Void:
		return 0, true
	case Register:
		return int64(v.ID), true
	}
	return
}

func kinds(values ...Value) (list []Kind) {
	for _, v := range values {
		list = append(list, v.Kind())
	}
	return
}
