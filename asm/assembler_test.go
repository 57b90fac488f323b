package asm

import (
	"bytes"
	"debug/elf"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

func TestAssemble_SymbolOrder(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		label("main"),
		ins("mov", lbl("local"), nil, lbl("R2")),
		label("local"),
		ins("ret", nil, nil, nil),
		section(".data"),
		&DataDirective{Width: DATA_DWORD, Data: []expr.Expr{imm(1)}},
		section(".rodata"),
		&DataDirective{Width: DATA_BYTE, Data: []expr.Expr{expr.StringLit("ro")}},
		section(".bss"),
		&DataDirective{Width: DATA_DWORD, Data: []expr.Expr{imm(0)}},
	)
	prog.Globals["main"] = true

	asm := NewAssembler(nil)
	file, err := asm.Assemble(prog)
	assert.NoError(err)

	table, err := file.Build()
	assert.NoError(err)

	var names []string
	for _, sym := range table.Symbols[1:] {
		names = append(names, sym.Name)
	}
	assert.Empty(cmp.Diff([]string{".text", ".data", ".rodata", ".bss", "local", "main"}, names))
	assert.Equal(6, table.FirstGlobal)

	for _, sym := range table.Symbols[1:5] {
		assert.Equal(object.SYM_SECTION, sym.Type)
	}
}

func TestAssemble_Common(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		ins("lit", lbl("buf"), nil, nil),
		ins("lit", lbl("buf"), nil, lbl("R2")),
	)
	prog.Commons = append(prog.Commons, Common{Name: "buf", Size: imm(64), Align: imm(8)})

	asm := NewAssembler(nil)
	file, err := asm.Assemble(prog)
	assert.NoError(err)
	assert.Equal([]object.Common{{Name: "buf", Size: 64, Align: 8}}, file.Commons)

	table, err := file.Build()
	assert.NoError(err)

	count := 0
	for _, sym := range table.Symbols[1:] {
		if sym.Name == "buf" {
			count++
			assert.True(sym.Common)
			assert.Equal(8, sym.Offset)
			assert.Equal(64, sym.Size)
		}
	}
	assert.Equal(1, count)
}

func TestAssemble_CommonLabel(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		ins("lit", lbl("buf"), nil, nil),
		section(".bss"),
		label("buf"),
		&DataDirective{Width: DATA_DWORD, Data: []expr.Expr{imm(0)}},
	)
	prog.Commons = append(prog.Commons, Common{
		Name:  "buf",
		Size:  &expr.Binary{Op: expr.OP_MUL, A: imm(4), B: imm(4)},
		Align: imm(4),
	})

	asm := NewAssembler(nil)
	file, err := asm.Assemble(prog)
	assert.NoError(err)

	table, err := file.Build()
	assert.NoError(err)

	buf, ok := table.Symbol("buf")
	assert.True(ok)
	assert.True(buf.Common)
	assert.Equal(16, buf.Size)
	assert.Equal(4, buf.Offset)
	assert.Equal(len(table.Symbols)-1, buf.Index)
}

func TestAssemble_Declarations(t *testing.T) {
	assert := assert.New(t)

	prog := program(
		label("func"),
		ins("add", lbl("R1"), imm(1), lbl("R1")),
		ins("ret", nil, nil, nil),
		label("func_end"),
		ins("jl", lbl("hook"), nil, nil),
	)
	prog.Globals["func"] = true
	prog.Weak["hook"] = true
	prog.Types["func"] = object.SYM_FUNC
	prog.Sizes["func"] = &expr.Binary{Op: expr.OP_MINUS, A: lbl("func_end"), B: lbl("func")}

	asm := NewAssembler(nil)
	file, err := asm.Assemble(prog)
	assert.NoError(err)
	assert.Equal(8, file.Sizes["func"])

	var buf bytes.Buffer
	_, err = file.WriteTo(&buf)
	assert.NoError(err)

	ef, err := elf.NewFile(bytes.NewReader(buf.Bytes()))
	if !assert.NoError(err) {
		return
	}
	defer ef.Close()

	syms, err := ef.Symbols()
	assert.NoError(err)

	found := map[string]elf.Symbol{}
	for _, sym := range syms {
		found[sym.Name] = sym
	}

	fn := found["func"]
	assert.Equal(elf.STT_FUNC, elf.ST_TYPE(fn.Info))
	assert.Equal(elf.STB_GLOBAL, elf.ST_BIND(fn.Info))
	assert.Equal(uint64(8), fn.Size)

	hook := found["hook"]
	assert.Equal(elf.STB_WEAK, elf.ST_BIND(hook.Info))
	assert.Equal(elf.SHN_UNDEF, hook.Section)

	text := ef.Section(".text")
	if assert.NotNil(text) {
		assert.Equal(uint64(16), text.Size)
	}
	assert.NotNil(ef.Section(".text.rela"))
}

func TestAssemble_SizeUndefined(t *testing.T) {
	assert := assert.New(t)

	prog := program(ins("ret", nil, nil, nil))
	prog.Sizes["ghost"] = imm(4)

	asm := NewAssembler(nil)
	_, err := asm.Assemble(prog)
	assert.ErrorIs(err, ErrUndefinedLabel)

	var serr *ErrSymbol
	assert.ErrorAs(err, &serr)
	assert.Equal("ghost", serr.Name)
}

func TestAssemble_LabelDuplicate(t *testing.T) {
	assert := assert.New(t)

	dup := label("start")
	dup.Pos = Pos{File: "dup.s", Line: 7}

	asm := NewAssembler(nil)
	_, err := asm.Assemble(program(label("start"), ins("ret", nil, nil, nil), dup))
	assert.ErrorIs(err, ErrLabelDuplicate)

	var serr *ErrStatement
	if assert.ErrorAs(err, &serr) {
		assert.Equal(7, serr.Pos.Line)
		assert.Contains(serr.Error(), "dup.s:7")
	}
}

func TestAssemble_Tables(t *testing.T) {
	assert := assert.New(t)

	tables := arch.Default()
	tables.Registers["ACC"] = 9
	tables.Opcodes["move"] = arch.OPCODE_MOVE
	delete(tables.Opcodes, "mov")

	asm := NewAssembler(tables)
	file, err := asm.Assemble(program(ins("move", imm(1), nil, lbl("acc"))))
	assert.NoError(err)

	text, _ := file.Sections.Get(".text")
	assert.Equal([]uint32{0x0bd30001}, words(text.Data))

	asm = NewAssembler(tables)
	_, err = asm.Assemble(program(ins("mov", imm(1), nil, lbl("acc"))))
	assert.ErrorIs(err, ErrUnknownOpcode)
}

func TestAssemble_Push(t *testing.T) {
	assert := assert.New(t)

	asm := NewAssembler(nil)
	file, err := asm.Assemble(program(
		ins("push", lbl("R3"), nil, nil),
		ins("pop", lbl("R3"), nil, nil),
	))
	assert.NoError(err)

	text, _ := file.Sections.Get(".text")
	assert.Equal([]uint32{
		0x13cf0107, // sub SP, 4 -> SP
		0x07cf0103, // store R3, 4 -> SP
		0x03c70107, // load SP, 4 -> R3
		0x0fcf0107, // add SP, 4 -> SP
	}, words(text.Data))
}
