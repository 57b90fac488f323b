// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package object

import (
	"io"
	"slices"

	"github.com/ezrec/jcasm/internal"
)

// Common is an uninitialized, size and alignment declared symbol.
type Common struct {
	Name  string
	Size  int
	Align int
}

// File is the assembled contents of an object file, before ordering.
type File struct {
	Sections    *Sections
	Labels      *LabelTable
	Relocations []Relocation

	Globals map[string]bool       // Names declared public.
	Weak    map[string]bool       // Names declared weak.
	Commons []Common              // Common declarations, in source order.
	Types   map[string]SymbolType // Declared symbol types.
	Sizes   map[string]int        // Declared symbol sizes.
}

// Table is a File ordered for serialization.
type Table struct {
	Sections    []*Section // Section header table; [0] is the null entry.
	Symbols     []*Symbol  // Symbol table; [0] is the null entry.
	FirstGlobal int        // Index of the first non-local symbol.

	SymTab   *Section
	StrTab   *Section
	ShStrTab *Section

	relocs map[*Section][]Relocation // Entries of each rela section.
	names  map[*Section]int          // Section name offsets in ShStrTab.
	index  map[string]*Symbol
}

// Build orders the sections, symbols and relocations of the file.
func (file *File) Build() (table *Table, err error) {
	table = &Table{
		Sections: []*Section{nil},
		Symbols:  []*Symbol{nil},
		relocs:   make(map[*Section][]Relocation),
		names:    make(map[*Section]int),
		index:    make(map[string]*Symbol),
	}

	// Sections that define a label are emitted even when empty, so the
	// label's symbol has a defining section.
	labeled := make(map[*Section]bool)
	if file.Labels != nil {
		for _, lo := range file.Labels.All() {
			labeled[lo.Section] = true
		}
	}

	// Content sections, each followed by its relocations.
	var content []*Section
	for sect := range file.Sections.All() {
		sect.Index = 0
		sect.RelaIndex = 0
		if sect.Type == SECTION_UNKNOWN || (sect.Len() == 0 && !labeled[sect]) {
			continue
		}

		sect.Index = len(table.Sections)
		table.Sections = append(table.Sections, sect)
		content = append(content, sect)

		var relocs []Relocation
		for _, rel := range file.Relocations {
			if rel.SourceSection == sect {
				relocs = append(relocs, rel)
			}
		}
		if len(relocs) == 0 {
			continue
		}

		rela := &Section{
			Name:      sect.Name + ".rela",
			Type:      SECTION_RELA,
			Index:     len(table.Sections),
			RelaIndex: sect.Index,
		}
		sect.RelaIndex = rela.Index
		table.Sections = append(table.Sections, rela)
		table.relocs[rela] = relocs
	}

	for _, rel := range file.Relocations {
		if !slices.Contains(content, rel.SourceSection) {
			err = &ErrReloc{Relocation: rel, Err: ErrRelocSection}
			return
		}
	}

	table.SymTab = &Section{Name: ".symtab", Type: SECTION_SYMTAB}
	table.StrTab = &Section{Name: ".strtab", Type: SECTION_STRTAB}
	table.ShStrTab = &Section{Name: ".shstrtab", Type: SECTION_STRTAB}
	for _, sect := range []*Section{table.SymTab, table.StrTab, table.ShStrTab} {
		sect.Index = len(table.Sections)
		table.Sections = append(table.Sections, sect)
	}

	shstrtab := &StringTable{}
	for _, sect := range table.Sections[1:] {
		table.names[sect] = shstrtab.Intern(sect.Name)
	}
	table.ShStrTab.Data = shstrtab.Data

	syms := file.discover()

	var sectSyms []*Symbol
	for _, sect := range content {
		sectSyms = append(sectSyms, &Symbol{
			Name:    sect.Name,
			Section: sect,
			Size:    sect.Len(),
			Type:    SYM_SECTION,
		})
	}

	locals := internal.IterSeqFilter(slices.Values(syms), (*Symbol).Local)
	globals := internal.IterSeqFilter(slices.Values(syms), func(sym *Symbol) bool { return !sym.Local() })

	strtab := &StringTable{}
	table.FirstGlobal = 1 + len(sectSyms)
	for sym := range internal.IterSeqConcat(slices.Values(sectSyms), locals, globals) {
		sym.Index = len(table.Symbols)
		sym.NameIndex = strtab.Intern(sym.Name)
		table.Symbols = append(table.Symbols, sym)
		if sym.Local() {
			table.FirstGlobal = len(table.Symbols)
		}
		if sym.Type != SYM_SECTION {
			table.index[sym.Name] = sym
		}
	}
	table.StrTab.Data = strtab.Data

	for _, rel := range file.Relocations {
		_, ok := table.index[rel.TargetName]
		if !ok {
			err = &ErrReloc{Relocation: rel, Err: ErrRelocTarget}
			return
		}
	}

	return
}

// discover collects the non-section symbols: labels in layout order, then
// commons, then relocation targets.
func (file *File) discover() (syms []*Symbol) {
	seen := make(map[string]bool)
	commons := make(map[string]Common)
	for _, common := range file.Commons {
		if _, ok := commons[common.Name]; !ok {
			commons[common.Name] = common
		}
	}

	add := func(sym *Symbol) {
		if size, ok := file.Sizes[sym.Name]; ok {
			sym.Size = size
		}
		if typ, ok := file.Types[sym.Name]; ok {
			sym.Type = typ
		}
		if file.Globals[sym.Name] {
			sym.Global = true
		}
		if file.Weak[sym.Name] {
			sym.Weak = true
		}
		seen[sym.Name] = true
		syms = append(syms, sym)
	}

	for name, lo := range file.Labels.All() {
		sym := &Symbol{
			Name:    name,
			Section: lo.Section,
			Offset:  lo.Offset,
		}
		if common, ok := commons[name]; ok {
			sym.Common = true
			sym.Offset = common.Align
			sym.Size = common.Size
		}
		add(sym)
	}

	for _, common := range file.Commons {
		if seen[common.Name] {
			continue
		}
		add(&Symbol{
			Name:   common.Name,
			Common: true,
			Offset: common.Align,
			Size:   common.Size,
		})
	}

	for _, rel := range file.Relocations {
		if seen[rel.TargetName] {
			continue
		}
		add(&Symbol{
			Name:   rel.TargetName,
			Global: true,
		})
	}

	return
}

// Symbol returns the table entry for a name.
func (table *Table) Symbol(name string) (sym *Symbol, ok bool) {
	sym, ok = table.index[name]
	return
}

// Relocations returns the entries of a rela section.
func (table *Table) Relocations(rela *Section) []Relocation {
	return table.relocs[rela]
}

// WriteTo builds the file and writes it as an ELF32 object.
func (file *File) WriteTo(w io.Writer) (n int64, err error) {
	table, err := file.Build()
	if err != nil {
		return
	}

	return table.WriteTo(w)
}
