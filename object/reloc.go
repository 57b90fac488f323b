// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package object

import (
	"fmt"
)

// Field is an operand field of a JCA instruction word.
type Field int

//go:generate go tool stringer -linecomment -type=Field
const (
	FIELD_LITR1     = Field(1) // litr1
	FIELD_LIT       = Field(2) // lit
	FIELD_SRCA      = Field(3) // srca
	FIELD_SRCB      = Field(4) // srcb
	FIELD_SRCAB     = Field(5) // srcab
	FIELD_SRCBCOND  = Field(6) // srcbcond
	FIELD_SRCABCOND = Field(7) // srcabcond
)

// Width is the number of bits the field occupies.
func (field Field) Width() int {
	switch field {
	case FIELD_LITR1:
		return 31
	case FIELD_LIT:
		return 25
	case FIELD_SRCA, FIELD_SRCB:
		return 6
	case FIELD_SRCAB:
		return 12
	case FIELD_SRCBCOND:
		return 11
	case FIELD_SRCABCOND:
		return 17
	}
	return 0
}

// Shift is the bit position of the field's least significant bit.
func (field Field) Shift() int {
	switch field {
	case FIELD_SRCB, FIELD_SRCBCOND:
		return 6
	}
	return 0
}

// Literal is true for the literal load fields, which have no immediate flag
// and hold unsigned values.
func (field Field) Literal() bool {
	return field == FIELD_LITR1 || field == FIELD_LIT
}

// Mask covers the value bits of the field, excluding any immediate flag.
func (field Field) Mask() uint32 {
	width := field.Width()
	if !field.Literal() {
		width--
	}
	return uint32(1)<<width - 1
}

// Range is the inclusive range of immediates the field can encode.
//
// Operand fields spend their top bit on the immediate flag and sign extend
// from the next, leaving width-2 magnitude bits. Literal fields are unsigned.
func (field Field) Range() (min, max int64) {
	width := field.Width()
	if field.Literal() {
		return 0, int64(1)<<width - 1
	}
	max = int64(1)<<(width-2) - 1
	min = -max - 1
	return
}

// Fits is true if the immediate can be encoded in the field.
func (field Field) Fits(value int64) bool {
	min, max := field.Range()
	return value >= min && value <= max
}

// Immediate encodes an immediate into the field, unshifted.
func (field Field) Immediate(value int64) (bits uint32, ok bool) {
	if !field.Fits(value) {
		return
	}

	bits = uint32(value) & field.Mask()
	if !field.Literal() {
		bits |= uint32(1) << (field.Width() - 1)
	}

	return bits, true
}

// Register encodes a register id into the field, unshifted.
func (field Field) Register(id int) uint32 {
	return uint32(id) & 0x1f
}

// Kind is the relocation kind for a relocation packed into this field.
func (field Field) Kind(pcrel bool) (kind RelocKind) {
	kind = RelocKind(field)
	if pcrel {
		kind += R_JCA_LITR1REL - R_JCA_LITR1
	}
	return
}

// RelocKind is a JCA ELF relocation type.
type RelocKind int

//go:generate go tool stringer -type=RelocKind
const (
	R_JCA_NONE         = RelocKind(0)
	R_JCA_LITR1        = RelocKind(1)  // S + A into the 31-bit literal.
	R_JCA_LIT          = RelocKind(2)  // S + A into the 25-bit literal.
	R_JCA_SRCA         = RelocKind(3)  // S + A into srca.
	R_JCA_SRCB         = RelocKind(4)  // S + A into srcb.
	R_JCA_SRCAB        = RelocKind(5)  // S + A into srcab.
	R_JCA_SRCBCOND     = RelocKind(6)  // S + A into srcbcond.
	R_JCA_SRCABCOND    = RelocKind(7)  // S + A into srcabcond.
	R_JCA_LITR1REL     = RelocKind(8)  // S + A - P into the 31-bit literal.
	R_JCA_LITREL       = RelocKind(9)  // S + A - P into the 25-bit literal.
	R_JCA_SRCAREL      = RelocKind(10) // S + A - P into srca.
	R_JCA_SRCBREL      = RelocKind(11) // S + A - P into srcb.
	R_JCA_SRCABREL     = RelocKind(12) // S + A - P into srcab.
	R_JCA_SRCBCONDREL  = RelocKind(13) // S + A - P into srcbcond.
	R_JCA_SRCABCONDREL = RelocKind(14) // S + A - P into srcabcond.
)

// Field is the instruction field the relocation is deposited into.
func (kind RelocKind) Field() Field {
	if kind >= R_JCA_LITR1REL {
		kind -= R_JCA_LITR1REL - R_JCA_LITR1
	}
	return Field(kind)
}

// PCRel is true for kinds that subtract the instruction address.
func (kind RelocKind) PCRel() bool {
	return kind >= R_JCA_LITR1REL && kind <= R_JCA_SRCABCONDREL
}

// Relocation is a deferred reference to a symbol, resolved by the linker.
type Relocation struct {
	SourceSection *Section // Section holding the instruction.
	SourceOffset  int      // Offset of the instruction word.
	TargetName    string   // Referenced symbol.
	TargetSection *Section // Section defining the symbol, or nil if external.
	Addend        int64
	IsPCRel       bool
	Kind          RelocKind
}

// External is true when the target is not defined in this object.
func (rel *Relocation) External() bool {
	return rel.TargetSection == nil
}

func (rel Relocation) String() string {
	pcrel := ""
	if rel.IsPCRel {
		pcrel = "-."
	}
	return fmt.Sprintf("%v+%#x %v %v(%v)%+d%v", rel.SourceSection, rel.SourceOffset, rel.Kind, rel.TargetName, rel.TargetSection, rel.Addend, pcrel)
}
