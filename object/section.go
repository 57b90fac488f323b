// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package object

import (
	"debug/elf"
	"iter"
	"slices"
	"strings"
)

// SectionType is the kind of contents of a section.
type SectionType int

//go:generate go tool stringer -linecomment -type=SectionType
const (
	SECTION_PROGBITS = SectionType(0) // progbits
	SECTION_NOBITS   = SectionType(1) // nobits
	SECTION_NOTE     = SectionType(2) // note
	SECTION_RELA     = SectionType(3) // rela
	SECTION_SYMTAB   = SectionType(4) // symtab
	SECTION_STRTAB   = SectionType(5) // strtab
	SECTION_UNKNOWN  = SectionType(6) // unknown
)

// elfType maps a section type to its ELF header value.
func (typ SectionType) elfType() elf.SectionType {
	switch typ {
	case SECTION_PROGBITS:
		return elf.SHT_PROGBITS
	case SECTION_NOBITS:
		return elf.SHT_NOBITS
	case SECTION_NOTE:
		return elf.SHT_NOTE
	case SECTION_RELA:
		return elf.SHT_RELA
	case SECTION_SYMTAB:
		return elf.SHT_SYMTAB
	case SECTION_STRTAB:
		return elf.SHT_STRTAB
	}
	return elf.SHT_NULL
}

// SectionFlags are the section attributes. The values match ELF's SHF_*.
type SectionFlags int

const (
	FLAG_WRITE = SectionFlags(elf.SHF_WRITE)
	FLAG_ALLOC = SectionFlags(elf.SHF_ALLOC)
	FLAG_EXEC  = SectionFlags(elf.SHF_EXECINSTR)
)

// Section is a named, typed, contiguous byte region.
type Section struct {
	Name      string
	Type      SectionType
	Flags     SectionFlags
	Data      []byte // Encoded contents.
	Offset    int    // Layout cursor.
	Index     int    // Section header index, once built.
	RelaIndex int    // For content sections, the index of its rela section. For rela sections, the index of the content section.
}

// Reset rewinds the layout cursor and discards the contents.
func (sect *Section) Reset() {
	sect.Offset = 0
	sect.Data = sect.Data[:0]
}

// Len is the byte length of the section.
func (sect *Section) Len() int {
	if sect.Type == SECTION_NOBITS {
		return sect.Offset
	}
	return len(sect.Data)
}

func (sect *Section) String() string {
	if sect == nil {
		return "*UND*"
	}
	return sect.Name
}

// Sections is the registry of sections in an assembler run, in
// registration order.
type Sections struct {
	list  []*Section
	index map[string]*Section
}

// NewSections creates a registry holding the four well-known sections.
func NewSections() (ss *Sections) {
	ss = &Sections{
		index: make(map[string]*Section),
	}

	ss.add(&Section{Name: ".text", Type: SECTION_PROGBITS, Flags: FLAG_ALLOC | FLAG_EXEC})
	ss.add(&Section{Name: ".data", Type: SECTION_PROGBITS, Flags: FLAG_ALLOC | FLAG_WRITE})
	ss.add(&Section{Name: ".rodata", Type: SECTION_PROGBITS, Flags: FLAG_ALLOC})
	ss.add(&Section{Name: ".bss", Type: SECTION_NOBITS, Flags: FLAG_ALLOC | FLAG_WRITE})

	return
}

func (ss *Sections) add(sect *Section) {
	ss.list = append(ss.list, sect)
	ss.index[sect.Name] = sect
}

// Get returns a registered section.
func (ss *Sections) Get(name string) (sect *Section, ok bool) {
	sect, ok = ss.index[name]
	return
}

// Register returns the named section, creating it on first use.
//
// flags is any combination of 'a' (alloc), 'w' (write) and 'x' (exec); the
// latter two imply alloc. typ is one of "progbits" (the default), "nobits"
// or "note". Sections named ".note.*" default to an unallocated note.
func (ss *Sections) Register(name string, flags string, typ string) (sect *Section) {
	sect, ok := ss.index[name]
	if ok {
		return
	}

	if strings.HasPrefix(name, ".note.") && len(typ) == 0 {
		typ = "note"
	}

	sect = &Section{Name: name}
	for _, c := range flags {
		switch c {
		case 'a':
			sect.Flags |= FLAG_ALLOC
		case 'w':
			sect.Flags |= FLAG_WRITE | FLAG_ALLOC
		case 'x':
			sect.Flags |= FLAG_EXEC | FLAG_ALLOC
		}
	}

	switch strings.TrimPrefix(typ, "@") {
	case "", "progbits":
		sect.Type = SECTION_PROGBITS
	case "nobits":
		sect.Type = SECTION_NOBITS
	case "note":
		sect.Type = SECTION_NOTE
	default:
		sect.Type = SECTION_UNKNOWN
	}

	ss.add(sect)

	return
}

// All iterates over the sections in registration order.
func (ss *Sections) All() iter.Seq[*Section] {
	return slices.Values(ss.list)
}

// Reset rewinds every section.
func (ss *Sections) Reset() {
	for _, sect := range ss.list {
		sect.Reset()
	}
}
