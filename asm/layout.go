// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"log"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

// INSTRUCTION_SIZE is the byte length of every encoded instruction.
const INSTRUCTION_SIZE = 4

// size is the number of bytes a data directive occupies. Elements are
// sized without any labels; those that cannot be evaluated count as one.
func (dd *DataDirective) size() (length int) {
	for _, item := range dd.Data {
		count := 1
		value, err := item.Evaluate(&expr.State{})
		if err == nil {
			if str, ok := value.(expr.String); ok {
				count = len(str)
			}
		}
		length += count * dd.Width
	}
	return
}

// Layout places every statement and returns the resulting label table.
// Section cursors are left at the end of each section.
func (asm *Assembler) Layout(stmts []Statement) (labels *object.LabelTable) {
	asm.Sections.Reset()
	labels = object.NewLabelTable()

	sect, _ := asm.Sections.Get(".text")
	for _, stmt := range stmts {
		if sh, ok := stmt.(*SectionHeader); ok {
			sect = asm.Sections.Register(sh.Name, sh.Flags, sh.Type)
		}

		loc := stmt.location()
		loc.Section = sect
		loc.Offset = sect.Offset

		switch stmt := stmt.(type) {
		case *Instruction:
			sect.Offset += INSTRUCTION_SIZE
		case *DataDirective:
			sect.Offset += stmt.size()
		case *LineLabel:
			labels.Define(stmt.Name, sect, loc.Offset)
		}
	}

	return
}

// state is the evaluation context of a statement.
func (asm *Assembler) state(labels *object.LabelTable, sect *object.Section) *expr.State {
	return &expr.State{
		Labels:    labels,
		Section:   sect,
		Registers: asm.Tables,
	}
}

// Lower resolves the operands of every instruction against a label table.
// Failures are kept on the instruction for the encoder to report.
func (asm *Assembler) Lower(stmts []Statement, labels *object.LabelTable) {
	for _, stmt := range stmts {
		inst, ok := stmt.(*Instruction)
		if !ok {
			continue
		}

		state := asm.state(labels, inst.Section)
		var errs [3]error
		inst.srcA, errs[0] = Lower(inst.A, state)
		inst.srcB, errs[1] = Lower(inst.B, state)
		inst.dest, errs[2] = Lower(inst.Dest, state)

		inst.lowerErr = nil
		for _, err := range errs {
			if err != nil {
				inst.lowerErr = err
				break
			}
		}
	}
}

// jumpTarget returns the relocation of a conditional move to PC whose
// target is in the same section.
func (asm *Assembler) jumpTarget(inst *Instruction) (rel object.Relocation, ok bool) {
	if inst.Cond.IsAlways() || inst.lowerErr != nil {
		return
	}

	opcode, found := asm.Tables.Opcode(inst.Op)
	if !found || opcode != arch.OPCODE_MOVE {
		return
	}

	if !forcesPC(inst.Op) {
		dest, isReg := inst.dest.(RegOperand)
		if !isReg || dest.ID != arch.REG_PC {
			return
		}
	}

	src, isReloc := inst.srcA.(RelocOperand)
	if !isReloc || src.TargetSection == nil || src.TargetSection != inst.Section {
		return
	}

	return src.Relocation, true
}

// Relax replaces each conditional jump whose same-section displacement
// cannot be encoded in its instruction by a literal load of the target
// into R1 followed by a conditional move of R1 to PC. It returns a new
// statement list.
func (asm *Assembler) Relax(stmts []Statement, labels *object.LabelTable) (out []Statement, changed int) {
	out = make([]Statement, 0, len(stmts))
	for _, stmt := range stmts {
		inst, ok := stmt.(*Instruction)
		if !ok {
			out = append(out, stmt)
			continue
		}

		rel, ok := asm.jumpTarget(inst)
		if ok {
			lo, _ := labels.Lookup(rel.TargetName)
			disp := int64(lo.Offset) + rel.Addend - int64(inst.Offset)
			ok = !object.FIELD_SRCAB.Fits(disp)
		}
		if !ok {
			out = append(out, stmt)
			continue
		}

		if asm.Verbose {
			log.Printf("%v: relaxing '%v'", inst.Pos, inst)
		}

		if rel.IsPCRel {
			rel.IsPCRel = false
			rel.Addend -= expr.PCREL_BIAS
		}

		lit := &Instruction{
			Location: Location{Pos: inst.Pos},
			Op:       "lit",
			Cond:     arch.Always,
			A:        &expr.Const{Value: expr.Reloc{Relocation: rel}},
			Dest:     regScratch,
		}
		mov := derive(inst, "mov", regScratch, nil, regPC)

		out = append(out, lit, mov)
		changed++
	}

	return
}

// Converge lays out and relaxes the statements until a fixed point. The
// returned statements are laid out and lowered against the returned label
// table.
func (asm *Assembler) Converge(stmts []Statement) (out []Statement, labels *object.LabelTable) {
	out = stmts
	for pass := 1; ; pass++ {
		labels = asm.Layout(out)
		asm.Lower(out, labels)

		var changed int
		out, changed = asm.Relax(out, labels)
		if asm.Verbose {
			log.Printf("relaxation pass %d: %d relaxed", pass, changed)
		}
		if changed == 0 {
			return
		}
	}
}
