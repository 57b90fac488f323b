package asm

import (
	"encoding/binary"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
)

func lbl(name string) expr.Expr {
	return &expr.Label{Name: name}
}

func imm(n int64) expr.Expr {
	return expr.IntLit(n)
}

func ins(op string, a, b, dest expr.Expr) *Instruction {
	return &Instruction{Op: op, Cond: arch.Always, A: a, B: b, Dest: dest}
}

func when(inst *Instruction, cond arch.Cond, reg int) *Instruction {
	inst.Cond = arch.Condition{Type: cond, Reg: reg}
	return inst
}

func label(name string) *LineLabel {
	return &LineLabel{Name: name}
}

func section(name string) *SectionHeader {
	return &SectionHeader{Name: name}
}

func nops(n int) (stmts []Statement) {
	for range n {
		stmts = append(stmts, ins("or", lbl("R1"), lbl("R1"), lbl("R1")))
	}
	return
}

func program(stmts ...any) *Program {
	prog := NewProgram()
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case Statement:
			prog.Statements = append(prog.Statements, stmt)
		case []Statement:
			prog.Statements = append(prog.Statements, stmt...)
		}
	}
	return prog
}

func words(data []byte) (list []uint32) {
	for i := 0; i+4 <= len(data); i += 4 {
		list = append(list, binary.LittleEndian.Uint32(data[i:]))
	}
	return
}

func instructions(stmts []Statement) (list []*Instruction) {
	for _, stmt := range stmts {
		if inst, ok := stmt.(*Instruction); ok {
			list = append(list, inst)
		}
	}
	return
}
