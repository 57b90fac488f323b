package object

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// testFile is a small object: two words of text with three relocations,
// a bss region and a mix of local, global, weak and common symbols.
func testFile() *File {
	ss := NewSections()
	text, _ := ss.Get(".text")
	bss, _ := ss.Get(".bss")

	text.Data = le.AppendUint32(text.Data, 0x80000000)
	text.Data = le.AppendUint32(text.Data, 0x0bc10000)
	text.Offset = len(text.Data)
	bss.Offset = 16

	lt := NewLabelTable()
	lt.Define("start", text, 0)
	lt.Define("main", text, 4)
	lt.Define("buf", bss, 0)
	lt.Define("counter", bss, 8)

	return &File{
		Sections: ss,
		Labels:   lt,
		Relocations: []Relocation{
			{SourceSection: text, SourceOffset: 0, TargetName: "puts", Kind: R_JCA_LITR1},
			{SourceSection: text, SourceOffset: 4, TargetName: "start", TargetSection: text, Addend: -4, IsPCRel: true, Kind: R_JCA_SRCABCONDREL},
			{SourceSection: text, SourceOffset: 4, TargetName: "hook", Kind: R_JCA_SRCB},
		},
		Globals: map[string]bool{"main": true},
		Weak:    map[string]bool{"hook": true},
		Commons: []Common{
			{Name: "buf", Size: 16, Align: 8},
			{Name: "pool", Size: 64, Align: 4},
			{Name: "buf", Size: 32, Align: 16},
		},
		Types: map[string]SymbolType{"main": SYM_FUNC, "counter": SYM_OBJECT},
		Sizes: map[string]int{"main": 4, "counter": 8},
	}
}

func TestFile_Build_Sections(t *testing.T) {
	assert := assert.New(t)

	table, err := testFile().Build()
	assert.NoError(err)

	var names []string
	for _, sect := range table.Sections[1:] {
		names = append(names, sect.Name)
	}
	assert.Nil(table.Sections[0])
	assert.Empty(cmp.Diff([]string{".text", ".text.rela", ".bss", ".symtab", ".strtab", ".shstrtab"}, names))

	text := table.Sections[1]
	rela := table.Sections[2]
	assert.Equal(2, text.RelaIndex)
	assert.Equal(1, rela.RelaIndex)
	assert.Equal(SECTION_RELA, rela.Type)
	assert.Len(table.Relocations(rela), 3)
	assert.Equal(4, table.SymTab.Index)
	assert.Equal(5, table.StrTab.Index)
	assert.Equal(6, table.ShStrTab.Index)
}

func TestFile_Build_Symbols(t *testing.T) {
	assert := assert.New(t)

	table, err := testFile().Build()
	assert.NoError(err)

	var names []string
	for _, sym := range table.Symbols[1:] {
		names = append(names, sym.Name)
	}
	assert.Nil(table.Symbols[0])
	assert.Empty(cmp.Diff([]string{
		".text", ".bss",
		"start", "buf", "counter", "pool",
		"main", "puts", "hook",
	}, names))
	assert.Equal(7, table.FirstGlobal)

	for i, sym := range table.Symbols[1:] {
		assert.Equal(i+1, sym.Index, sym.Name)
		assert.Equal(i+1 < table.FirstGlobal, sym.Local(), sym.Name)
	}

	text := table.Symbols[1]
	assert.Equal(SYM_SECTION, text.Type)
	assert.Equal(8, text.Size)
	assert.Equal(0, text.Offset)

	buf, ok := table.Symbol("buf")
	assert.True(ok)
	assert.True(buf.Common)
	assert.Equal(8, buf.Offset)
	assert.Equal(16, buf.Size)

	main, _ := table.Symbol("main")
	assert.Equal(SYM_FUNC, main.Type)
	assert.Equal(4, main.Size)
	assert.Equal(4, main.Offset)

	puts, _ := table.Symbol("puts")
	assert.True(puts.Global)
	assert.Nil(puts.Section)

	hook, _ := table.Symbol("hook")
	assert.True(hook.Weak)

	_, ok = table.Symbol(".text")
	assert.False(ok)
}

func TestFile_Build_Empty(t *testing.T) {
	assert := assert.New(t)

	file := &File{
		Sections: NewSections(),
		Labels:   NewLabelTable(),
	}
	table, err := file.Build()
	assert.NoError(err)
	assert.Len(table.Sections, 4)
	assert.Len(table.Symbols, 1)
	assert.Equal(1, table.FirstGlobal)
}

func TestFile_Build_RelocSection(t *testing.T) {
	assert := assert.New(t)

	file := testFile()
	data, _ := file.Sections.Get(".data")
	file.Relocations = append(file.Relocations, Relocation{SourceSection: data, TargetName: "puts", Kind: R_JCA_LIT})

	_, err := file.Build()
	assert.ErrorIs(err, ErrRelocSection)

	var rerr *ErrReloc
	assert.ErrorAs(err, &rerr)
	assert.Equal(data, rerr.SourceSection)
}

func TestFile_Build_Rebuild(t *testing.T) {
	assert := assert.New(t)

	file := testFile()
	first, err := file.Build()
	assert.NoError(err)
	second, err := file.Build()
	assert.NoError(err)

	assert.Equal(first.Bytes(), second.Bytes())
}

func TestFile_Build_LabelInEmptySection(t *testing.T) {
	assert := assert.New(t)

	file := testFile()
	data, _ := file.Sections.Get(".data")
	file.Labels.Define("tail", data, 0)
	file.Relocations = append(file.Relocations, Relocation{SourceSection: file.Relocations[0].SourceSection, SourceOffset: 0, TargetName: "tail", TargetSection: data, Kind: R_JCA_SRCA})

	table, err := file.Build()
	if !assert.NoError(err) {
		return
	}

	var names []string
	for _, sect := range table.Sections[1:] {
		names = append(names, sect.Name)
	}
	assert.Empty(cmp.Diff([]string{".text", ".text.rela", ".data", ".bss", ".symtab", ".strtab", ".shstrtab"}, names))

	tail, ok := table.Symbol("tail")
	if assert.True(ok) {
		assert.Same(data, tail.Section)
		assert.Equal(uint16(data.Index), tail.SectionIndex())
		assert.NotZero(tail.SectionIndex())
		assert.True(tail.Local())
	}

	// .rodata has neither bytes nor labels.
	rodata, _ := file.Sections.Get(".rodata")
	assert.Zero(rodata.Index)
}
