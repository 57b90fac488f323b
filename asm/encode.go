// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"encoding/binary"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

// Instruction word layout.
const (
	SHIFT_OPCODE   = 26
	SHIFT_COND     = 22
	SHIFT_DEST     = 17
	SHIFT_COND_REG = 12
	SHIFT_LIT_DEST = 25

	WORD_LITR1 = uint32(1) << 31 // Literal into R1.
	WORD_LIT   = uint32(1) << 30 // Literal into dest.
)

// forcesPC is true for the jump mnemonics, which always write PC.
func forcesPC(op string) bool {
	return op == "j" || op == "jmp"
}

// pack encodes an operand into a field, returning the shifted bits and
// any relocation against the instruction.
func pack(field object.Field, op Operand, inst *Instruction) (bits uint32, rel *object.Relocation, err error) {
	switch op := op.(type) {
	case nil:
	case RegOperand:
		bits = field.Register(op.ID)
	case ImmOperand:
		var ok bool
		bits, ok = field.Immediate(int64(op))
		if !ok {
			err = &ErrOverflow{Field: field, Value: int64(op)}
			return
		}
	case RelocOperand:
		bits, _ = field.Immediate(0)
		rel = &object.Relocation{}
		*rel = op.Relocation
		rel.SourceSection = inst.Section
		rel.SourceOffset = inst.Offset
		rel.Kind = field.Kind(rel.IsPCRel)
	}

	bits <<= field.Shift()
	return
}

// Encode packs a laid out and lowered instruction into its word, with the
// relocations its operands need.
func (asm *Assembler) Encode(inst *Instruction) (word uint32, relocs []object.Relocation, err error) {
	if inst.lowerErr != nil {
		err = inst.lowerErr
		return
	}

	destID := 0
	hasDest := false
	switch dest := inst.dest.(type) {
	case nil:
	case RegOperand:
		if dest.ID < 0 || dest.ID >= arch.REG_LIMIT {
			err = ErrInvalidDestination
			return
		}
		destID = dest.ID
		hasDest = true
	default:
		err = ErrInvalidDestination
		return
	}

	var fieldA, fieldB object.Field
	srcB := inst.srcB

	if inst.Op == "lit" {
		if !inst.Cond.IsAlways() {
			err = ErrInvalidLiteral
			return
		}
		if srcB != nil {
			err = ErrOpcodeExtraArgs
			return
		}
		switch inst.srcA.(type) {
		case ImmOperand, RelocOperand:
		default:
			err = ErrInvalidLiteral
			return
		}
		if !hasDest {
			destID = arch.REG_SCRATCH
		}

		if destID == arch.REG_SCRATCH {
			word = WORD_LITR1
			fieldA = object.FIELD_LITR1
		} else {
			word = WORD_LIT | uint32(destID)<<SHIFT_LIT_DEST
			fieldA = object.FIELD_LIT
		}
	} else {
		opcode, ok := asm.Tables.Opcode(inst.Op)
		if !ok {
			err = ErrUnknownOpcode
			return
		}

		if forcesPC(inst.Op) {
			destID = arch.REG_PC
		}

		if srcB == nil && (opcode == arch.OPCODE_LOAD || opcode == arch.OPCODE_STORE) {
			srcB = ImmOperand(INSTRUCTION_SIZE)
		}

		always := inst.Cond.IsAlways()
		if opcode == arch.OPCODE_MOVE {
			if srcB != nil {
				err = ErrOpcodeExtraArgs
				return
			}
			fieldA = object.FIELD_SRCAB
			if always {
				fieldA = object.FIELD_SRCABCOND
			}
		} else {
			fieldA = object.FIELD_SRCA
			fieldB = object.FIELD_SRCB
			if always {
				fieldB = object.FIELD_SRCBCOND
			}
		}

		word = uint32(opcode)<<SHIFT_OPCODE |
			uint32(inst.Cond.Type)<<SHIFT_COND |
			uint32(destID)<<SHIFT_DEST
		if !always {
			word |= uint32(inst.Cond.Reg&0x1f) << SHIFT_COND_REG
		}
	}

	bits, rel, err := pack(fieldA, inst.srcA, inst)
	if err != nil {
		return
	}
	word |= bits
	if rel != nil {
		relocs = append(relocs, *rel)
	}

	if fieldB != 0 {
		bits, rel, err = pack(fieldB, srcB, inst)
		if err != nil {
			return
		}
		word |= bits
		if rel != nil {
			relocs = append(relocs, *rel)
		}
	}

	return
}

// EncodeData evaluates the elements of a data directive into bytes.
func (asm *Assembler) EncodeData(dd *DataDirective, labels *object.LabelTable) (data []byte, err error) {
	state := asm.state(labels, dd.Section)

	var items []int64
	for _, item := range dd.Data {
		var value expr.Value
		value, err = item.Evaluate(state)
		if err != nil {
			return
		}
		switch value := value.(type) {
		case expr.String:
			for _, c := range []byte(value) {
				items = append(items, int64(c))
			}
		case expr.Int:
			items = append(items, int64(value))
		default:
			err = ErrDataType
			return
		}
	}

	var buf [8]byte
	for _, item := range items {
		binary.LittleEndian.PutUint64(buf[:], uint64(item))
		data = append(data, buf[:dd.Width]...)
	}

	return
}
