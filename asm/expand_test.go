package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
)

func expandStrings(t *testing.T, inst *Instruction) (list []string) {
	t.Helper()
	asm := NewAssembler(nil)
	out, err := asm.Expand(inst)
	assert.NoError(t, err)
	for _, inst := range out {
		list = append(list, inst.String())
	}
	return
}

func TestExpand_PushPop(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{
		"sub SP, 4 -> SP",
		"store R3, 4 -> SP",
	}, expandStrings(t, ins("push", lbl("R3"), nil, nil)))

	assert.Equal([]string{
		"load SP, 4 -> R3",
		"add SP, 4 -> SP",
	}, expandStrings(t, ins("pop", lbl("R3"), nil, nil)))

	assert.Equal([]string{
		"load SP, 4 -> R4",
		"add SP, 4 -> SP",
	}, expandStrings(t, ins("POP", nil, nil, lbl("R4"))))

	asm := NewAssembler(nil)
	out, err := asm.Expand(ins("push", lbl("R3"), nil, nil))
	assert.NoError(err)
	for _, inst := range out {
		assert.True(inst.Cond.IsAlways())
	}
}

func TestExpand_Jumps(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{
		"add(z R2) PC, 4 -> LR",
		"j(z R2) func",
	}, expandStrings(t, when(ins("jl", lbl("func"), nil, nil), arch.COND_EQ, 2)))

	assert.Equal([]string{
		"j LR",
	}, expandStrings(t, ins("ret", nil, nil, nil)))

	assert.Equal([]string{
		"mov loop-. -> PC",
	}, expandStrings(t, ins("jrel", lbl("loop"), nil, nil)))

	assert.Equal([]string{
		"add(nz R5) PC, 4 -> LR",
		"mov(nz R5) func-. -> PC",
	}, expandStrings(t, when(ins("jlrel", lbl("func"), nil, nil), arch.COND_NE, 5)))
}

func TestExpand_RelativeRegister(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler(nil)

	_, err := asm.Expand(ins("jrel", lbl("lr"), nil, nil))
	assert.ErrorIs(err, expr.ErrEvaluation)

	_, err = asm.Expand(ins("jlrel", lbl("R3"), nil, nil))
	assert.ErrorIs(err, expr.ErrEvaluation)

	_, err = asm.Expand(ins("jrel", nil, nil, nil))
	assert.ErrorIs(err, ErrOperandType)

	out, err := asm.Expand(ins("jrel", imm(8), nil, nil))
	assert.NoError(err)
	assert.Len(out, 1)
}

func TestExpand_PassThrough(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler(nil)

	src := when(ins("MOV", imm(5), nil, lbl("R2")), arch.COND_NEG, 1)
	src.Pos = Pos{File: "test.s", Line: 3}

	out, err := asm.Expand(src)
	assert.NoError(err)
	assert.Len(out, 1)
	assert.NotSame(src, out[0])
	assert.Equal("mov", out[0].Op)
	assert.Equal("MOV", src.Op)
	assert.Equal(src.Cond, out[0].Cond)
	assert.Equal(src.Pos, out[0].Pos)
}

func TestExpand_MissingOperand(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler(nil)
	for _, inst := range []*Instruction{
		ins("push", nil, nil, nil),
		ins("pop", nil, nil, nil),
		ins("jl", nil, nil, nil),
		when(ins("jl", nil, nil, nil), arch.COND_EQ, 2),
	} {
		out, err := asm.Expand(inst)
		assert.ErrorIs(err, ErrOperandType, inst.String())
		assert.Nil(out, inst.String())
	}

	prog := program(
		ins("push", nil, nil, nil),
		ins("pop", nil, nil, nil),
	)
	file, err := asm.Assemble(prog)
	assert.Nil(file)
	assert.ErrorIs(err, ErrOperandType)

	var serr *ErrStatement
	if assert.ErrorAs(err, &serr) {
		assert.Equal("push", serr.Statement.String())
	}
}
