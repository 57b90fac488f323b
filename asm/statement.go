// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"strings"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

// Pos is a source position.
type Pos struct {
	File string
	Line int
}

func (pos Pos) String() string {
	if len(pos.File) == 0 {
		return fmt.Sprintf("line %d", pos.Line)
	}
	return fmt.Sprintf("%v:%d", pos.File, pos.Line)
}

// Location is where a statement came from and, once laid out, where it
// was placed.
type Location struct {
	Pos
	Section *object.Section
	Offset  int
}

func (loc *Location) location() *Location {
	return loc
}

// Statement is one of *Instruction, *DataDirective, *LineLabel or
// *SectionHeader.
type Statement interface {
	location() *Location
	String() string
}

// Instruction is a machine or pseudo instruction.
//
//	op(cond Rn) a, b -> dest
type Instruction struct {
	Location
	Op   string
	Cond arch.Condition
	A    expr.Expr // First source, or nil.
	B    expr.Expr // Second source, or nil.
	Dest expr.Expr // Destination, or nil.

	// Operands lowered against the latest layout.
	srcA, srcB, dest Operand
	lowerErr         error
}

func (inst *Instruction) String() string {
	var buf strings.Builder
	buf.WriteString(inst.Op)
	buf.WriteString(inst.Cond.String())
	if inst.A != nil {
		fmt.Fprintf(&buf, " %v", inst.A)
	}
	if inst.B != nil {
		fmt.Fprintf(&buf, ", %v", inst.B)
	}
	if inst.Dest != nil {
		fmt.Fprintf(&buf, " -> %v", inst.Dest)
	}
	return buf.String()
}

// Data directive element widths.
const (
	DATA_BYTE  = 1
	DATA_WORD  = 2
	DATA_DWORD = 4
)

// DataDirective emits each element of Data as a little endian integer of
// Width bytes. Strings emit one element per byte.
type DataDirective struct {
	Location
	Width int
	Data  []expr.Expr
}

func (dd *DataDirective) String() string {
	var name string
	switch dd.Width {
	case DATA_BYTE:
		name = ".byte"
	case DATA_WORD:
		name = ".word"
	case DATA_DWORD:
		name = ".dword"
	default:
		name = fmt.Sprintf(".data%d", dd.Width)
	}

	items := make([]string, len(dd.Data))
	for n, item := range dd.Data {
		items[n] = item.String()
	}

	return name + " " + strings.Join(items, ", ")
}

// LineLabel defines a label at the current offset.
type LineLabel struct {
	Location
	Name string
}

func (ll *LineLabel) String() string {
	return ll.Name + ":"
}

// SectionHeader switches the active section, registering it on first use.
type SectionHeader struct {
	Location
	Name  string
	Flags string // Any of 'a', 'w', 'x'.
	Type  string // "progbits", "nobits" or "note".
}

func (sh *SectionHeader) String() string {
	if len(sh.Flags) == 0 && len(sh.Type) == 0 {
		return ".section " + sh.Name
	}
	return fmt.Sprintf(".section %v, %q, %v", sh.Name, sh.Flags, sh.Type)
}

// Common declares an uninitialized symbol of a size and alignment.
type Common struct {
	Pos
	Name  string
	Size  expr.Expr
	Align expr.Expr
}

// Program is the front end output: statements in source order plus the
// symbol declarations.
type Program struct {
	Statements []Statement
	Globals    map[string]bool              // .global
	Weak       map[string]bool              // .weak
	Commons    []Common                     // .comm
	Types      map[string]object.SymbolType // .type
	Sizes      map[string]expr.Expr         // .size
}

// NewProgram returns an empty program.
func NewProgram() *Program {
	return &Program{
		Globals: make(map[string]bool),
		Weak:    make(map[string]bool),
		Types:   make(map[string]object.SymbolType),
		Sizes:   make(map[string]expr.Expr),
	}
}
