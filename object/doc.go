// Package object models the contents of a JCA relocatable object file and
// serializes them as ELF32.
//
// An assembler run fills in a File: the sections with their bytes, the final
// label table, the relocations, and the symbol declarations. Build orders the
// sections and symbols into a Table, which WriteTo turns into bytes.
package object
