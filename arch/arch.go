// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package arch

import (
	"fmt"
	"io"
	"maps"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	REG_PC      = 0  // Program counter, shares the id of R0.
	REG_SCRATCH = 1  // Implicit literal target.
	REG_LR      = 6  // Link register.
	REG_SP      = 7  // Stack pointer.
	REG_LIMIT   = 32 // Register ids must fit five bits.

	OPCODE_LOAD  = 0
	OPCODE_STORE = 1
	OPCODE_MOVE  = 2
	OPCODE_LIMIT = 16
)

// Cond is a condition code.
type Cond int

const (
	COND_NEVER  = Cond(0)
	COND_EQ     = Cond(1)
	COND_NE     = Cond(2)
	COND_POS    = Cond(3)
	COND_NEG    = Cond(4)
	COND_POSEQ  = Cond(5)
	COND_NEGEQ  = Cond(6)
	COND_SO     = Cond(7)
	COND_NSO    = Cond(8)
	COND_UO     = Cond(9)
	COND_NUO    = Cond(10)
	COND_ALWAYS = Cond(15)
	COND_LIMIT  = Cond(16)
)

var condNames = map[Cond]string{
	COND_NEVER:  "never",
	COND_EQ:     "z",
	COND_NE:     "nz",
	COND_POS:    "p",
	COND_NEG:    "neg",
	COND_POSEQ:  "poseq",
	COND_NEGEQ:  "negeq",
	COND_SO:     "so",
	COND_NSO:    "nso",
	COND_UO:     "uo",
	COND_NUO:    "nuo",
	COND_ALWAYS: "always",
}

func (cond Cond) String() string {
	name, ok := condNames[cond]
	if !ok {
		return fmt.Sprintf("Cond(%d)", int(cond))
	}
	return name
}

// Condition is the predicate attached to every instruction: a condition
// code tested against a register.
type Condition struct {
	Type Cond
	Reg  int
}

// Always is the unconditional predicate.
var Always = Condition{Type: COND_ALWAYS}

// IsAlways returns true if the condition is unconditional.
func (cond Condition) IsAlways() bool {
	return cond.Type == COND_ALWAYS
}

func (cond Condition) String() string {
	if cond.IsAlways() {
		return ""
	}
	return fmt.Sprintf("(%v R%d)", cond.Type, cond.Reg)
}

// Tables are the register, opcode and condition name tables.
type Tables struct {
	Registers  map[string]int  `yaml:"registers"`  // Upper case register names to ids.
	Opcodes    map[string]int  `yaml:"opcodes"`    // Lower case mnemonics to opcodes.
	Conditions map[string]Cond `yaml:"conditions"` // Lower case condition names to codes.
}

var defaultRegisters = map[string]int{
	"PC":  REG_PC,
	"R0":  0,
	"R1":  1,
	"R2":  2,
	"R3":  3,
	"R4":  4,
	"R5":  5,
	"R6":  6,
	"R7":  7,
	"R8":  8,
	"R9":  9,
	"R10": 10,
	"R11": 11,
	"R12": 12,
	"R13": 13,
	"R14": 14,
	"R15": 15,
	"LR":  REG_LR,
	"SP":  REG_SP,
}

var defaultOpcodes = map[string]int{
	"load":  OPCODE_LOAD,
	"store": OPCODE_STORE,
	"move":  OPCODE_MOVE,
	"mov":   OPCODE_MOVE,
	"m":     OPCODE_MOVE,
	"jmp":   OPCODE_MOVE,
	"j":     OPCODE_MOVE,
	"add":   3,
	"sub":   4,
	"sext":  5,
	"mul":   6,
	"iret":  7,
	"not":   8,
	"and":   9,
	"or":    10,
	"xor":   11,
	"xnor":  12,
	"lsh":   13,
	"shl":   13,
	"rsh":   14,
	"shr":   14,
	"dbg":   15,
}

var defaultConditions = map[string]Cond{
	"a":      COND_ALWAYS,
	"always": COND_ALWAYS,
	"never":  COND_NEVER,
	"e":      COND_EQ,
	"eq":     COND_EQ,
	"z":      COND_EQ,
	"ne":     COND_NE,
	"neq":    COND_NE,
	"nz":     COND_NE,
	"p":      COND_POS,
	"pos":    COND_POS,
	"n":      COND_NEG,
	"neg":    COND_NEG,
	"poseq":  COND_POSEQ,
	"negeq":  COND_NEGEQ,
	"so":     COND_SO,
	"nso":    COND_NSO,
	"uo":     COND_UO,
	"c":      COND_UO,
	"nuo":    COND_NUO,
	"nc":     COND_NUO,
}

// Default returns a fresh copy of the standard JCA tables.
func Default() *Tables {
	return &Tables{
		Registers:  maps.Clone(defaultRegisters),
		Opcodes:    maps.Clone(defaultOpcodes),
		Conditions: maps.Clone(defaultConditions),
	}
}

// Load reads tables from YAML. Any table missing from the input keeps its
// default contents.
func Load(input io.Reader) (tables *Tables, err error) {
	tables = &Tables{}
	err = yaml.NewDecoder(input).Decode(tables)
	if err != nil && err != io.EOF {
		return
	}
	err = nil

	def := Default()
	if tables.Registers == nil {
		tables.Registers = def.Registers
	}
	if tables.Opcodes == nil {
		tables.Opcodes = def.Opcodes
	}
	if tables.Conditions == nil {
		tables.Conditions = def.Conditions
	}

	tables.normalize()

	err = tables.Validate()
	if err != nil {
		tables = nil
	}

	return
}

// normalize folds the table keys to their lookup case.
func (tables *Tables) normalize() {
	regs := make(map[string]int, len(tables.Registers))
	for name, id := range tables.Registers {
		regs[strings.ToUpper(name)] = id
	}
	tables.Registers = regs

	ops := make(map[string]int, len(tables.Opcodes))
	for name, op := range tables.Opcodes {
		ops[strings.ToLower(name)] = op
	}
	tables.Opcodes = ops

	conds := make(map[string]Cond, len(tables.Conditions))
	for name, cond := range tables.Conditions {
		conds[strings.ToLower(name)] = cond
	}
	tables.Conditions = conds
}

// Validate checks that every table entry is encodable.
func (tables *Tables) Validate() (err error) {
	for name, id := range tables.Registers {
		if id < 0 || id >= REG_LIMIT {
			return &ErrTable{Table: "registers", Name: name, Err: ErrRegisterRange}
		}
	}
	for name, op := range tables.Opcodes {
		if op < 0 || op >= OPCODE_LIMIT {
			return &ErrTable{Table: "opcodes", Name: name, Err: ErrOpcodeRange}
		}
	}
	for name, cond := range tables.Conditions {
		if cond < 0 || cond >= COND_LIMIT {
			return &ErrTable{Table: "conditions", Name: name, Err: ErrConditionRange}
		}
	}
	return
}

// Register returns the id of a register name, case-insensitively.
func (tables *Tables) Register(name string) (id int, ok bool) {
	id, ok = tables.Registers[strings.ToUpper(name)]
	return
}

// Opcode returns the opcode of a mnemonic.
func (tables *Tables) Opcode(mnemonic string) (op int, ok bool) {
	op, ok = tables.Opcodes[strings.ToLower(mnemonic)]
	return
}

// Condition returns the condition code of a condition name.
func (tables *Tables) Condition(name string) (cond Cond, ok bool) {
	cond, ok = tables.Conditions[strings.ToLower(name)]
	return
}
