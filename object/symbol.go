package object

import (
	"debug/elf"
)

// SymbolType is the type of a symbol table entry.
type SymbolType int

//go:generate go tool stringer -linecomment -type=SymbolType
const (
	SYM_NOTYPE  = SymbolType(0) // notype
	SYM_OBJECT  = SymbolType(1) // object
	SYM_FUNC    = SymbolType(2) // function
	SYM_SECTION = SymbolType(3) // section
)

// Symbol is an entry of the object's symbol table.
type Symbol struct {
	Name    string
	Offset  int      // Value. For common symbols, the alignment.
	Size    int
	Section *Section // Defining section, or nil if external or common.
	Global  bool
	Common  bool
	Weak    bool
	Type    SymbolType

	Index     int // Symbol table index.
	NameIndex int // Offset of the name in the string table.
}

// Local is true for symbols that sort before the globals.
func (sym *Symbol) Local() bool {
	return !sym.Global && !sym.Weak
}

// Info is the ELF st_info byte.
func (sym *Symbol) Info() byte {
	bind := elf.STB_LOCAL
	if sym.Weak {
		bind = elf.STB_WEAK
	} else if sym.Global {
		bind = elf.STB_GLOBAL
	}
	return elf.ST_INFO(bind, elf.SymType(sym.Type))
}

// SectionIndex is the ELF st_shndx value.
func (sym *Symbol) SectionIndex() uint16 {
	switch {
	case sym.Common:
		return uint16(elf.SHN_COMMON)
	case sym.Section == nil:
		return uint16(elf.SHN_UNDEF)
	}
	return uint16(sym.Section.Index)
}
