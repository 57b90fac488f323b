// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"encoding/binary"
	"log"
	"slices"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

// Assembler is the context of a single assembler run.
type Assembler struct {
	Verbose  bool             // If set, verbosely logs the assembler actions.
	Tables   *arch.Tables     // Register, opcode and condition names.
	Sections *object.Sections // Sections of the object being built.
}

// NewAssembler creates an assembler using the given tables, or the default
// tables if nil.
func NewAssembler(tables *arch.Tables) *Assembler {
	if tables == nil {
		tables = arch.Default()
	}

	return &Assembler{
		Tables:   tables,
		Sections: object.NewSections(),
	}
}

// checkLabels rejects a label defined more than once.
func checkLabels(stmts []Statement) (err error) {
	seen := make(map[string]bool)
	for _, stmt := range stmts {
		ll, ok := stmt.(*LineLabel)
		if !ok {
			continue
		}
		if seen[ll.Name] {
			return &ErrStatement{Pos: ll.Pos, Statement: ll, Err: ErrLabelDuplicate}
		}
		seen[ll.Name] = true
	}
	return
}

// Assemble builds the object file of a program.
func (asm *Assembler) Assemble(prog *Program) (file *object.File, err error) {
	err = checkLabels(prog.Statements)
	if err != nil {
		return
	}

	stmts, err := asm.expandAll(prog.Statements)
	if err != nil {
		return
	}

	stmts, labels := asm.Converge(stmts)

	var relocs []object.Relocation
	for sect := range asm.Sections.All() {
		sect.Data = sect.Data[:0]
	}

	for _, stmt := range stmts {
		var data []byte
		switch stmt := stmt.(type) {
		case *Instruction:
			var word uint32
			var rels []object.Relocation
			word, rels, err = asm.Encode(stmt)
			if err != nil {
				err = &ErrStatement{Pos: stmt.Pos, Statement: stmt, Err: err}
				return
			}
			if asm.Verbose {
				log.Printf("%v: %v+%#x %08x %v", stmt.Pos, stmt.Section, stmt.Offset, word, stmt)
			}
			data = binary.LittleEndian.AppendUint32(nil, word)
			relocs = append(relocs, rels...)
		case *DataDirective:
			data, err = asm.EncodeData(stmt, labels)
			if err != nil {
				err = &ErrStatement{Pos: stmt.Pos, Statement: stmt, Err: err}
				return
			}
		default:
			continue
		}

		loc := stmt.location()
		if loc.Section.Type != object.SECTION_NOBITS {
			loc.Section.Data = append(loc.Section.Data, data...)
		}
	}

	file = &object.File{
		Sections:    asm.Sections,
		Labels:      labels,
		Relocations: relocs,
		Globals:     prog.Globals,
		Weak:        prog.Weak,
		Types:       prog.Types,
		Sizes:       make(map[string]int),
	}

	for _, common := range prog.Commons {
		var size, align int64
		size, err = integer(common.Size, &expr.State{})
		if err == nil {
			align, err = integer(common.Align, &expr.State{})
		}
		if err != nil {
			err = &ErrSymbol{Name: common.Name, Err: err}
			return
		}
		file.Commons = append(file.Commons, object.Common{
			Name:  common.Name,
			Size:  int(size),
			Align: int(align),
		})
	}

	state := asm.state(labels, nil)
	for name, size := range prog.Sizes {
		_, isLabel := labels.Lookup(name)
		if !isLabel && !slices.ContainsFunc(file.Commons, func(c object.Common) bool { return c.Name == name }) {
			err = &ErrSymbol{Name: name, Err: ErrUndefinedLabel}
			return
		}

		var n int64
		n, err = integer(size, state)
		if err != nil {
			err = &ErrSymbol{Name: name, Err: err}
			return
		}
		file.Sizes[name] = int(n)
	}

	return
}

// integer evaluates an expression to an integer.
func integer(e expr.Expr, state *expr.State) (n int64, err error) {
	if e == nil {
		return
	}

	value, err := e.Evaluate(state)
	if err != nil {
		return
	}

	n, ok := expr.Integer(value)
	if !ok {
		err = &ErrOperand{Value: value}
	}

	return
}
