// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package object

import (
	"debug/elf"
	"encoding/binary"
	"io"
)

// EM_JCA is the ELF machine of JCA objects, the bytes 'J' 'C'.
const EM_JCA = elf.Machine('J' | 'C'<<8)

const (
	elfHeaderSize    = 52
	elfSectionSize   = 40
	elfSymbolSize    = 16
	elfRelaSize      = 12
	elfSectionAlign  = 16
	elfAddrAlign     = 4
	elfShOffPosition = 32
)

var le = binary.LittleEndian

type elfWriter struct {
	buf []byte
}

func (w *elfWriter) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *elfWriter) u16(v uint16) {
	w.buf = le.AppendUint16(w.buf, v)
}

func (w *elfWriter) u32(v uint32) {
	w.buf = le.AppendUint32(w.buf, v)
}

func (w *elfWriter) align(n int) {
	for len(w.buf)%n != 0 {
		w.buf = append(w.buf, 0)
	}
}

// Bytes serializes the table as a little endian ELF32 relocatable object.
func (table *Table) Bytes() []byte {
	w := &elfWriter{}

	// File header; e_shoff is patched once the contents are placed.
	w.buf = append(w.buf, elf.ELFMAG...)
	w.u8(uint8(elf.ELFCLASS32))
	w.u8(uint8(elf.ELFDATA2LSB))
	w.u8(uint8(elf.EV_CURRENT))
	w.buf = append(w.buf, make([]byte, elf.EI_NIDENT-elf.EI_OSABI)...)
	w.u16(uint16(elf.ET_REL))
	w.u16(uint16(EM_JCA))
	w.u32(uint32(elf.EV_CURRENT))
	w.u32(0) // e_entry
	w.u32(0) // e_phoff
	w.u32(0) // e_shoff
	w.u32(0) // e_flags
	w.u16(elfHeaderSize)
	w.u16(0) // e_phentsize
	w.u16(0) // e_phnum
	w.u16(elfSectionSize)
	w.u16(uint16(len(table.Sections)))
	w.u16(uint16(table.ShStrTab.Index))

	offsets := make([]int, len(table.Sections))
	sizes := make([]int, len(table.Sections))
	for i, sect := range table.Sections {
		if i == 0 {
			continue
		}

		w.align(elfSectionAlign)
		offsets[i] = len(w.buf)

		switch sect.Type {
		case SECTION_NOBITS:
			sizes[i] = sect.Offset
			continue
		case SECTION_SYMTAB:
			table.appendSymbols(w)
		case SECTION_RELA:
			table.appendRelocations(w, sect)
		default:
			w.buf = append(w.buf, sect.Data...)
		}

		sizes[i] = len(w.buf) - offsets[i]
	}

	w.align(elfSectionAlign)
	le.PutUint32(w.buf[elfShOffPosition:], uint32(len(w.buf)))

	for i, sect := range table.Sections {
		if i == 0 {
			w.buf = append(w.buf, make([]byte, elfSectionSize)...)
			continue
		}

		var flags elf.SectionFlag
		var link, info, entsize int
		switch sect.Type {
		case SECTION_RELA:
			link = table.SymTab.Index
			info = sect.RelaIndex
			entsize = elfRelaSize
		case SECTION_SYMTAB:
			link = table.StrTab.Index
			info = table.FirstGlobal
			entsize = elfSymbolSize
		case SECTION_STRTAB:
		default:
			flags = elf.SectionFlag(sect.Flags)
		}

		w.u32(uint32(table.names[sect]))
		w.u32(uint32(sect.Type.elfType()))
		w.u32(uint32(flags))
		w.u32(0) // sh_addr
		w.u32(uint32(offsets[i]))
		w.u32(uint32(sizes[i]))
		w.u32(uint32(link))
		w.u32(uint32(info))
		w.u32(elfAddrAlign)
		w.u32(uint32(entsize))
	}

	return w.buf
}

func (table *Table) appendSymbols(w *elfWriter) {
	for _, sym := range table.Symbols {
		if sym == nil {
			w.buf = append(w.buf, make([]byte, elfSymbolSize)...)
			continue
		}
		w.u32(uint32(sym.NameIndex))
		w.u32(uint32(sym.Offset))
		w.u32(uint32(sym.Size))
		w.u8(sym.Info())
		w.u8(0)
		w.u16(sym.SectionIndex())
	}
}

func (table *Table) appendRelocations(w *elfWriter, rela *Section) {
	for _, rel := range table.relocs[rela] {
		sym := table.index[rel.TargetName]
		w.u32(uint32(rel.SourceOffset))
		w.u32(elf.R_INFO32(uint32(sym.Index), uint32(rel.Kind)))
		w.u32(uint32(int32(rel.Addend)))
	}
}

// WriteTo writes the serialized object in a single write.
func (table *Table) WriteTo(w io.Writer) (n int64, err error) {
	count, err := w.Write(table.Bytes())
	n = int64(count)
	return
}
