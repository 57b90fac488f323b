// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package parse

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/asm"
	"github.com/ezrec/jcasm/expr"
	"github.com/ezrec/jcasm/object"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":           "0",
	"INSTRUCTION_SIZE": fmt.Sprintf("%#v", asm.INSTRUCTION_SIZE),
}

var (
	reCharacter   = regexp.MustCompile(`'\\?[^']'`)
	reParenEval   = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel       = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*):`)
	reInstruction = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\(([^)]*)\))?(?:\s+(.*))?$`)
)

// Parser reads JCA assembly source into a program.
type Parser struct {
	Verbose bool              // If set, verbosely logs the parser actions.
	Tables  *arch.Tables      // Condition and register names.
	Equate  map[string]string // Map of equates.

	predefine map[string]string // Predefines
	file      string            // Name of the file being parsed.
	prog      *asm.Program      // Program being built.
	pos       asm.Pos           // Position of the current line.
}

// NewParser returns a parser using the given tables, or the default tables
// if nil.
func NewParser(tables *arch.Tables) *Parser {
	if tables == nil {
		tables = arch.Default()
	}
	return &Parser{Tables: tables}
}

// Predefine defines a new equate or redefines an existing equate.
func (p *Parser) Predefine(equ string, value string) {
	if p.predefine == nil {
		p.predefine = map[string]string{equ: value}
	} else {
		p.predefine[equ] = value
	}
}

// Parse parses an input stream into a program. The name is used for
// source positions.
func (p *Parser) Parse(name string, input io.Reader) (prog *asm.Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{File: name, LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	if p.Tables == nil {
		p.Tables = arch.Default()
	}

	p.file = name
	p.prog = asm.NewProgram()
	p.Equate = maps.Clone(sysEquate)
	for attr, val := range p.predefine {
		p.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if p.Verbose {
			log.Printf("%v:%v: %v\n", name, lineno, text)
		}

		line = strings.TrimSpace(stripComment(text))
		p.pos = asm.Pos{File: name, Line: lineno}

		err = p.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	prog = p.prog

	return
}

// parenEval does compile-time $(...) evaluations
func (p *Parser) parenEval(text string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range p.Equate {
		v64, _err := strconv.ParseInt(str, 0, 64)
		if _err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + text + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(text)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(text)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(text)
		return
	}
	return
}

// substitute performs the 'x' and $(...) textual substitutions.
func (p *Parser) substitute(line string) (out string, err error) {
	// Do 'x' evaluations, outside of string literals
	line = charLiterals(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "0":
				str = "\000"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	out = reParenEval.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := p.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})

	return
}

// parseLine parses a single line of source.
func (p *Parser) parseLine(line string, lineno int) (err error) {
	// Set line number.
	p.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	if len(line) == 0 {
		return
	}

	line, err = p.substitute(line)
	if err != nil {
		return
	}

	for {
		match := reLabel.FindStringSubmatch(line)
		if match == nil {
			break
		}
		p.prog.Statements = append(p.prog.Statements, &asm.LineLabel{
			Location: asm.Location{Pos: p.pos},
			Name:     match[1],
		})
		line = strings.TrimSpace(line[len(match[0]):])
	}

	if len(line) == 0 {
		return
	}

	if line[0] == '.' {
		return p.parseDirective(line)
	}

	return p.parseInstruction(line)
}

// args splits directive arguments on top level commas.
func args(text string) (list []string) {
	text = strings.TrimSpace(text)
	if len(text) == 0 {
		return
	}
	for _, item := range splitTop(text, ",") {
		list = append(list, strings.TrimSpace(item))
	}
	return
}

// names splits a list of symbol names separated by commas or spaces.
func names(text string) []string {
	return words(strings.ReplaceAll(text, ",", " "))
}

// bareType strips the '@' or '%' that may prefix a type argument.
func bareType(text string) string {
	return strings.TrimLeft(strings.TrimSpace(text), "@%")
}

var symbolTypes = map[string]object.SymbolType{
	"function": object.SYM_FUNC,
	"object":   object.SYM_OBJECT,
	"notype":   object.SYM_NOTYPE,
}

var dataWidths = map[string]int{
	".byte":  asm.DATA_BYTE,
	".ascii": asm.DATA_BYTE,
	".word":  asm.DATA_WORD,
	".dword": asm.DATA_DWORD,
}

// parseDirective handles a line starting with '.'.
func (p *Parser) parseDirective(line string) (err error) {
	directive, rest := line, ""
	if space := strings.IndexAny(line, " \t"); space >= 0 {
		directive, rest = line[:space], strings.TrimSpace(line[space+1:])
	}

	if p.Verbose {
		log.Printf("%v: directive %v %v\n", p.pos, directive, rest)
	}

	loc := asm.Location{Pos: p.pos}
	prog := p.prog

	switch directive {
	case ".text", ".data", ".rodata", ".bss":
		if len(rest) != 0 {
			err = ErrDirectiveSyntax
			return
		}
		prog.Statements = append(prog.Statements, &asm.SectionHeader{Location: loc, Name: directive})
	case ".section":
		list := args(rest)
		if len(list) == 0 || len(list) > 3 || len(list[0]) == 0 {
			err = ErrDirectiveSyntax
			return
		}
		header := &asm.SectionHeader{Location: loc, Name: list[0]}
		if len(list) > 1 {
			header.Flags = unquote(list[1])
		}
		if len(list) > 2 {
			header.Type = bareType(list[2])
		}
		prog.Statements = append(prog.Statements, header)
	case ".byte", ".ascii", ".word", ".dword":
		list := args(rest)
		if len(list) == 0 {
			err = ErrValueMissing
			return
		}
		dd := &asm.DataDirective{Location: loc, Width: dataWidths[directive]}
		for _, item := range list {
			var e expr.Expr
			e, err = p.Expression(item)
			if err != nil {
				return
			}
			dd.Data = append(dd.Data, e)
		}
		prog.Statements = append(prog.Statements, dd)
	case ".global", ".globl":
		list := names(rest)
		if len(list) == 0 {
			err = ErrDirectiveSyntax
			return
		}
		for _, name := range list {
			prog.Globals[name] = true
		}
	case ".weak":
		list := names(rest)
		if len(list) == 0 {
			err = ErrDirectiveSyntax
			return
		}
		for _, name := range list {
			prog.Weak[name] = true
		}
	case ".extern":
		// Undefined names are external already.
	case ".comm":
		list := args(rest)
		if len(list) < 2 || len(list) > 3 {
			err = ErrDirectiveSyntax
			return
		}
		common := asm.Common{Pos: p.pos, Name: list[0], Align: expr.IntLit(1)}
		common.Size, err = p.Expression(list[1])
		if err != nil {
			return
		}
		if len(list) > 2 {
			common.Align, err = p.Expression(list[2])
			if err != nil {
				return
			}
		}
		prog.Commons = append(prog.Commons, common)
	case ".type":
		list := args(rest)
		if len(list) != 2 {
			err = ErrDirectiveSyntax
			return
		}
		symType, ok := symbolTypes[bareType(list[1])]
		if !ok {
			err = ErrDirectiveSyntax
			return
		}
		prog.Types[list[0]] = symType
	case ".size":
		list := args(rest)
		if len(list) != 2 {
			err = ErrDirectiveSyntax
			return
		}
		prog.Sizes[list[0]], err = p.Expression(list[1])
		if err != nil {
			delete(prog.Sizes, list[0])
			return
		}
	case ".equ", ".set":
		name, value, ok := strings.Cut(rest, ",")
		if !ok {
			fields := words(rest)
			if len(fields) != 2 {
				err = ErrEquateSyntax
				return
			}
			name, value = fields[0], fields[1]
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if len(name) == 0 || len(value) == 0 {
			err = ErrEquateSyntax
			return
		}
		_, ok = p.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		p.Equate[name] = value
	default:
		err = ErrDirectiveUnknown
	}

	return
}

// condition parses the '(cond [Rn])' instruction suffix.
func (p *Parser) condition(text string) (cond arch.Condition, err error) {
	var ok bool

	fields := words(text)
	if len(fields) == 0 || len(fields) > 2 {
		err = ErrConditionInvalid
		return
	}

	cond.Type, ok = p.Tables.Condition(fields[0])
	if !ok {
		err = ErrConditionInvalid
		return
	}

	if len(fields) == 2 {
		cond.Reg, ok = p.Tables.Register(fields[1])
		if !ok {
			err = ErrRegisterInvalid
			return
		}
	}

	return
}

// parseInstruction handles 'op[(cond [Rn])] [a [, b]] [-> dest]'.
func (p *Parser) parseInstruction(line string) (err error) {
	match := reInstruction.FindStringSubmatch(line)
	if match == nil {
		err = ErrOpcodeMissing
		return
	}

	inst := &asm.Instruction{
		Location: asm.Location{Pos: p.pos},
		Op:       match[1],
		Cond:     arch.Always,
	}

	if len(match[2]) != 0 {
		inst.Cond, err = p.condition(match[2])
		if err != nil {
			return
		}
	}

	operands := strings.TrimSpace(match[3])
	if len(operands) != 0 {
		parts := splitTop(operands, "->")
		if len(parts) > 2 {
			err = ErrOpcodeExtraArgs
			return
		}

		if len(parts) == 2 {
			target := strings.TrimSpace(parts[1])
			if len(target) == 0 {
				err = ErrTargetMissing
				return
			}
			inst.Dest, err = p.Expression(target)
			if err != nil {
				return
			}
		}

		sources := strings.TrimSpace(parts[0])
		if len(sources) != 0 {
			list := args(sources)
			if len(list) > 2 {
				err = ErrOpcodeExtraArgs
				return
			}
			out := [2]*expr.Expr{&inst.A, &inst.B}
			for n, item := range list {
				*out[n], err = p.Expression(item)
				if err != nil {
					return
				}
			}
		}
	}

	if p.Verbose {
		log.Printf("%v: %v\n", p.pos, inst)
	}

	p.prog.Statements = append(p.prog.Statements, inst)

	return
}
