// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"strings"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
)

var (
	regPC      = &expr.Const{Value: expr.Register{Name: "PC", ID: arch.REG_PC}}
	regScratch = &expr.Const{Value: expr.Register{Name: "R1", ID: arch.REG_SCRATCH}}
	regLR      = &expr.Const{Value: expr.Register{Name: "LR", ID: arch.REG_LR}}
	regSP      = &expr.Const{Value: expr.Register{Name: "SP", ID: arch.REG_SP}}
	immWord    = expr.IntLit(4)
)

// derive creates a new instruction at the same source position and under
// the same condition.
func derive(inst *Instruction, op string, a, b, dest expr.Expr) *Instruction {
	return &Instruction{
		Location: Location{Pos: inst.Pos},
		Op:       op,
		Cond:     inst.Cond,
		A:        a,
		B:        b,
		Dest:     dest,
	}
}

// Expand rewrites a pseudo instruction into primitive instructions. Other
// instructions are returned as a lowercased copy.
func (asm *Assembler) Expand(inst *Instruction) (out []*Instruction, err error) {
	op := strings.ToLower(inst.Op)

	switch op {
	case "jl", "push":
		if inst.A == nil {
			err = ErrOperandType
			return
		}
	case "pop":
		if inst.A == nil && inst.Dest == nil {
			err = ErrOperandType
			return
		}
	}

	switch op {
	case "jl":
		out = []*Instruction{
			derive(inst, "add", regPC, immWord, regLR),
			derive(inst, "j", inst.A, nil, nil),
		}
	case "jrel", "jlrel":
		var target expr.Expr
		target, err = asm.relative(inst.A)
		if err != nil {
			return
		}
		if op == "jlrel" {
			out = append(out, derive(inst, "add", regPC, immWord, regLR))
		}
		out = append(out, derive(inst, "mov", target, nil, regPC))
	case "ret":
		out = []*Instruction{
			derive(inst, "j", regLR, nil, nil),
		}
	case "push":
		out = []*Instruction{
			derive(inst, "sub", regSP, immWord, regSP),
			derive(inst, "store", inst.A, immWord, regSP),
		}
	case "pop":
		// pop takes its destination either way round: 'pop R3' or 'pop -> R3'.
		dest := inst.Dest
		if dest == nil {
			dest = inst.A
		}
		out = []*Instruction{
			derive(inst, "load", regSP, immWord, dest),
			derive(inst, "add", regSP, immWord, regSP),
		}
	default:
		out = []*Instruction{
			derive(inst, op, inst.A, inst.B, inst.Dest),
		}
	}

	return
}

// relative makes a jump target PC-relative. Registers cannot be.
func (asm *Assembler) relative(target expr.Expr) (rel expr.Expr, err error) {
	if target == nil {
		err = ErrOperandType
		return
	}
	if label, ok := target.(*expr.Label); ok {
		if id, ok := asm.Tables.Register(label.Name); ok {
			err = &expr.ErrRelative{Value: expr.Register{Name: strings.ToUpper(label.Name), ID: id}}
			return
		}
	}
	if c, ok := target.(*expr.Const); ok {
		if _, ok := c.Value.(expr.Register); ok {
			err = &expr.ErrRelative{Value: c.Value}
			return
		}
	}

	rel = &expr.PCRel{Expr: target}
	return
}

// expandAll expands every instruction of a statement list.
func (asm *Assembler) expandAll(stmts []Statement) (out []Statement, err error) {
	out = make([]Statement, 0, len(stmts))
	for _, stmt := range stmts {
		inst, ok := stmt.(*Instruction)
		if !ok {
			out = append(out, stmt)
			continue
		}

		var insts []*Instruction
		insts, err = asm.Expand(inst)
		if err != nil {
			err = &ErrStatement{Pos: inst.Pos, Statement: inst, Err: err}
			return
		}
		for _, inst := range insts {
			out = append(out, inst)
		}
	}
	return
}
