// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/jcasm/arch"
	"github.com/ezrec/jcasm/asm"
	"github.com/ezrec/jcasm/parse"
	"github.com/ezrec/jcasm/translate"
)

var f = translate.From

// defines collects repeated -D NAME=VALUE flags.
type defines map[string]string

func (d defines) String() string {
	var list []string
	for name, value := range d {
		list = append(list, name+"="+value)
	}
	return strings.Join(list, ",")
}

func (d defines) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok {
		value = "1"
	}
	d[name] = value
	return nil
}

// options for a single assembly run.
type options struct {
	input   string
	output  string
	tables  string
	verbose bool
	defines defines
}

// objectName is the default output for an input: its basename with '.o'.
func objectName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".o"
}

// run assembles opts.input into opts.output.
func run(opts *options) (err error) {
	tables := arch.Default()
	if len(opts.tables) != 0 {
		var inf *os.File
		inf, err = os.Open(opts.tables)
		if err != nil {
			return
		}
		defer inf.Close()

		tables, err = arch.Load(inf)
		if err != nil {
			return
		}
	}

	inf, err := os.Open(opts.input)
	if err != nil {
		return
	}
	defer inf.Close()

	parser := parse.NewParser(tables)
	parser.Verbose = opts.verbose
	for name, value := range opts.defines {
		parser.Predefine(name, value)
	}

	prog, err := parser.Parse(opts.input, inf)
	if err != nil {
		return
	}

	assembler := asm.NewAssembler(tables)
	assembler.Verbose = opts.verbose

	file, err := assembler.Assemble(prog)
	if err != nil {
		return
	}

	output := opts.output
	if len(output) == 0 {
		output = objectName(opts.input)
	}

	// Temp file in the target directory, renamed into place once written.
	ouf, err := os.CreateTemp(filepath.Dir(output), "."+filepath.Base(output)+".*")
	if err != nil {
		return
	}
	defer func() {
		if err != nil {
			ouf.Close()
			os.Remove(ouf.Name())
		}
	}()

	_, err = file.WriteTo(ouf)
	if err != nil {
		return
	}

	err = ouf.Close()
	if err != nil {
		return
	}

	err = os.Rename(ouf.Name(), output)
	if err != nil {
		return
	}

	if opts.verbose {
		translate.Logf("%v: wrote %v", opts.input, output)
	}

	return
}

func main() {
	opts := &options{defines: defines{}}

	flag.StringVar(&opts.output, "o", "", f("Object file to write (default: input basename with .o)"))
	flag.StringVar(&opts.tables, "t", "", f("YAML file of register, opcode and condition tables"))
	flag.BoolVar(&opts.verbose, "v", false, f("Verbose mode"))
	flag.Var(opts.defines, "D", f("Predefine an equate as NAME=VALUE (repeatable)"))

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal(f("%v: expected one input file, got: %v", os.Args[0], flag.Args()))
	}

	opts.input = flag.Arg(0)

	err := run(opts)
	if err != nil {
		log.Fatalf("%v: %v", opts.input, err)
	}
}
