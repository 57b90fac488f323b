// Package expr evaluates assembler operand expressions.
//
// An expression evaluates to a Value: an integer, a string, void, an
// architectural register, or a relocation against a label. Labels never
// evaluate to their offset; a label defined in the object yields a
// relocation against its section, and an undefined one an external
// relocation.
package expr
