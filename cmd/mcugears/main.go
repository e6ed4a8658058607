// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"

	"github.com/ezrec/mcugears/avr"
	"github.com/ezrec/mcugears/emulator"
)

var reTraceTag = regexp.MustCompile(`^\[[A-Z]+\]`)

// highlight colors the instruction tag of a trace line.
func highlight(trace string) string {
	return reTraceTag.ReplaceAllStringFunc(trace, func(tag string) string {
		return "\x1b[1;36m" + tag + "\x1b[0m"
	})
}

func main() {
	var compile string
	var limit int
	var verbose bool
	var dump bool
	var quiet bool

	predefine := map[string]string{}

	flag.StringVar(&compile, "c", "", ".asm file to assemble and run")
	flag.IntVar(&limit, "n", 10000, "Maximum instructions to execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump the register file after the run")
	flag.BoolVar(&quiet, "q", false, "Quiet mode, no trace lines")
	flag.Func("D", "Predefine an equate, as NAME=VALUE", func(arg string) error {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || len(name) == 0 {
			return avr.ErrEquateSyntax
		}
		predefine[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: No program given, use -c", os.Args[0])
	}

	colored := term.IsTerminal(int(os.Stdout.Fd()))

	emu, err := emulator.NewEmulator()
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = verbose

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	asm := &avr.Assembler{Verbose: verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}
	for name, value := range predefine {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Load(prog)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	for trace, err := range emu.Run(limit) {
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		if quiet {
			continue
		}
		if colored {
			trace = highlight(trace)
		}
		fmt.Println(trace)
	}

	if !quiet {
		fmt.Printf("%d instructions, pc %04x\n", emu.Steps(), emu.Pc())
	}

	if dump {
		pp.Default.SetColoringEnabled(colored)
		pp.Println(emu.Registers)
	}
}
