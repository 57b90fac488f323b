// Package parse reads JCA assembly source into an asm.Program.
//
// Each line holds optional labels followed by a directive or an
// instruction:
//
//	[label:] op[(cond [Rn])] [a [, b]] [-> dest]   ; comment
//
// Operands are expressions over integers, strings, labels and registers.
// $(...) is evaluated while reading the line, using the integer equates.
package parse
