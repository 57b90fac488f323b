package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

func converge(t *testing.T, prog *Program) (asm *Assembler, stmts []Statement, labels *object.LabelTable) {
	t.Helper()
	asm = NewAssembler(nil)
	stmts, err := asm.expandAll(prog.Statements)
	assert.NoError(t, err)
	stmts, labels = asm.Converge(stmts)
	return
}

func TestLayout(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler(nil)
	stmts := program(
		label("start"),
		ins("mov", imm(1), nil, lbl("R2")),
		section(".data"),
		label("msg"),
		&DataDirective{Width: DATA_BYTE, Data: []expr.Expr{expr.StringLit("hello"), imm(0)}},
		&DataDirective{Width: DATA_WORD, Data: []expr.Expr{lbl("msg"), imm(2)}},
		label("end"),
		section(".text"),
		label("next"),
		&SectionHeader{Name: ".stack", Flags: "w", Type: "nobits"},
		label("stack"),
	).Statements

	labels := asm.Layout(stmts)

	var names []string
	for name := range labels.All() {
		names = append(names, name)
	}
	assert.Equal([]string{"start", "msg", "end", "next", "stack"}, names)

	lo, _ := labels.Lookup("end")
	assert.Equal(".data", lo.Section.Name)
	assert.Equal(10, lo.Offset)

	lo, _ = labels.Lookup("next")
	assert.Equal(".text", lo.Section.Name)
	assert.Equal(4, lo.Offset)

	stack, ok := asm.Sections.Get(".stack")
	assert.True(ok)
	assert.Equal(object.SECTION_NOBITS, stack.Type)

	mov := stmts[1].(*Instruction)
	assert.Equal(".text", mov.Section.Name)
	assert.Equal(0, mov.Offset)

	// Layout is repeatable.
	again := asm.Layout(stmts)
	assert.Equal(labels, again)
}

func TestRelax_InRange(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		when(ins("mov", lbl("far"), nil, lbl("PC")), arch.COND_EQ, 2),
		nops(10),
		label("far"),
	)

	asm, stmts, _ := converge(t, prog)
	assert.Len(instructions(stmts), 11)

	text, _ := asm.Sections.Get(".text")
	assert.Equal(44, text.Offset)
}

func TestRelax_Forward(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		when(ins("mov", lbl("far"), nil, lbl("PC")), arch.COND_EQ, 2),
		nops(300),
		label("far"),
	)

	asm, stmts, labels := converge(t, prog)
	insts := instructions(stmts)
	assert.Len(insts, 302)

	lo, _ := labels.Lookup("far")
	assert.Equal(302*4, lo.Offset)

	lit := insts[0]
	assert.Equal("lit", lit.Op)
	assert.True(lit.Cond.IsAlways())
	assert.Equal(0, lit.Offset)

	mov := insts[1]
	assert.Equal("mov", mov.Op)
	assert.Equal(arch.Condition{Type: arch.COND_EQ, Reg: 2}, mov.Cond)
	assert.Equal(4, mov.Offset)
	assert.Equal("mov(z R2) R1 -> PC", mov.String())

	text, _ := asm.Sections.Get(".text")
	assert.Equal(302*4, text.Offset)

	word, relocs, err := asm.Encode(lit)
	assert.NoError(err)
	assert.Equal(uint32(0x80000000), word)
	if assert.Len(relocs, 1) {
		assert.Equal(object.R_JCA_LITR1, relocs[0].Kind)
		assert.Equal("far", relocs[0].TargetName)
		assert.False(relocs[0].IsPCRel)
	}
}

func TestRelax_Backward(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		label("top"),
		nops(256),
		when(ins("jrel", lbl("top"), nil, nil), arch.COND_NE, 3),
		when(ins("jrel", lbl("top"), nil, nil), arch.COND_NE, 3),
	)

	asm, stmts, _ := converge(t, prog)
	insts := instructions(stmts)

	// Both jumps are out of range: -4-1024 and -4-1028.
	assert.Len(insts, 256+4)

	lit := insts[256]
	assert.Equal("lit", lit.Op)
	_, relocs, err := asm.Encode(lit)
	assert.NoError(err)
	if assert.Len(relocs, 1) {
		assert.False(relocs[0].IsPCRel)
		assert.Equal(int64(0), relocs[0].Addend)
		assert.Equal(object.R_JCA_LITR1, relocs[0].Kind)
	}
}

func TestRelax_Cascade(t *testing.T) {
	assert := assert.New(t)

	// The forward jump at 800 reaches far at 1820 (1020 bytes) until the
	// backward jump at 1028 between them is relaxed and pushes far out to
	// 1824.
	prog := program(
		label("top"),
		nops(200),
		when(ins("mov", lbl("far"), nil, lbl("PC")), arch.COND_EQ, 2),
		nops(56),
		when(ins("mov", lbl("top"), nil, lbl("PC")), arch.COND_NE, 3),
		nops(197),
		label("far"),
	)

	asm := NewAssembler(nil)
	stmts, err := asm.expandAll(prog.Statements)
	if !assert.NoError(err) {
		return
	}

	labels := asm.Layout(stmts)
	asm.Lower(stmts, labels)
	lo, _ := labels.Lookup("far")
	assert.Equal(1820, lo.Offset)

	first, changed := asm.Relax(stmts, labels)
	assert.Equal(1, changed)
	insts := instructions(first)
	assert.Equal("mov(z R2) far -> PC", insts[200].String())
	assert.Equal("lit", insts[257].Op)

	labels = asm.Layout(first)
	asm.Lower(first, labels)
	_, changed = asm.Relax(first, labels)
	assert.Equal(1, changed)

	out, labels := asm.Converge(stmts)
	insts = instructions(out)
	assert.Len(insts, 455+2)

	assert.Equal("lit", insts[200].Op)
	assert.Equal("mov(z R2) R1 -> PC", insts[201].String())
	assert.Equal("lit", insts[258].Op)
	assert.Equal("mov(nz R3) R1 -> PC", insts[259].String())

	lo, _ = labels.Lookup("far")
	assert.Equal(457*4, lo.Offset)
}

func TestRelax_Boundary(t *testing.T) {
	assert := assert.New(t)

	// far is at 1024, a displacement of 1020 after the bias.
	fits := program(
		when(ins("jrel", lbl("far"), nil, nil), arch.COND_EQ, 1),
		nops(255),
		label("far"),
	)
	_, stmts, _ := converge(t, fits)
	assert.Len(instructions(stmts), 256)

	overflows := program(
		when(ins("jrel", lbl("far"), nil, nil), arch.COND_EQ, 1),
		nops(257),
		label("far"),
	)
	_, stmts, _ = converge(t, overflows)
	assert.Len(instructions(stmts), 259)
}

func TestRelax_Idempotent(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		when(ins("mov", lbl("far"), nil, lbl("PC")), arch.COND_EQ, 2),
		nops(300),
		label("far"),
		when(ins("j", lbl("far"), nil, nil), arch.COND_NE, 2),
	)

	asm, stmts, labels := converge(t, prog)

	labels2 := asm.Layout(stmts)
	assert.Equal(labels, labels2)
	asm.Lower(stmts, labels2)
	out, changed := asm.Relax(stmts, labels2)
	assert.Zero(changed)
	assert.Equal(stmts, out)
}

func TestRelax_NotCandidates(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		// Unconditional.
		ins("mov", lbl("far"), nil, lbl("PC")),
		// Not to PC.
		when(ins("mov", lbl("far"), nil, lbl("R3")), arch.COND_EQ, 2),
		// Another section.
		when(ins("mov", lbl("data"), nil, lbl("PC")), arch.COND_EQ, 2),
		// External.
		when(ins("mov", lbl("puts"), nil, lbl("PC")), arch.COND_EQ, 2),
		// Not a move.
		when(ins("add", lbl("far"), imm(0), lbl("PC")), arch.COND_EQ, 2),
		nops(300),
		label("far"),
		section(".data"),
		label("data"),
	)

	_, stmts, _ := converge(t, prog)
	assert.Len(instructions(stmts), 305)
}
