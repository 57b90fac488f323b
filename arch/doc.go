// Package arch holds the name tables of the JCA 32-bit CPU.
//
// The JCA has sixteen general purpose registers (R0-R15), of which R0 is
// also the program counter (PC), R6 the link register (LR) and R7 the stack
// pointer (SP). Every instruction carries a four bit condition code and a
// condition register; the "always" condition frees the condition register
// field for wider operands.
//
// Tables are passed explicitly to the assembler so that alternate register
// sets can be supplied, either programmatically or from a YAML file.
package arch
