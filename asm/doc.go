// Package asm is the JCA assembler back end.
//
// An Assembler turns a Program, the statement list produced by a front end,
// into an object.File. The pipeline expands pseudo instructions, lays out
// the sections until branch relaxation reaches a fixed point, then encodes
// every instruction and data directive into its section.
package asm
