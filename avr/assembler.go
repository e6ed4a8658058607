// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package avr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/mcugears/register"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	RJMP_MIN = -2048 // Smallest relative jump offset.
	RJMP_MAX = 2047  // Largest relative jump offset.
)

// Assembler is a single pass assembler for the family.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of jump labels to program addresses.
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate, before
// parsing.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// rangeOf returns a numeric word checked against [lo, hi].
func (asm *Assembler) rangeOf(word string, lo, hi int64) (value int64, err error) {
	value, err = asm.valueOf(word)
	if err != nil {
		return
	}

	if value < lo || value > hi {
		err = ErrImmediateRange
		return
	}

	return
}

var reRegister = regexp.MustCompile(`^[rR]([0-9]+)$`)

// registerOf returns the general purpose register named by word.
func (asm *Assembler) registerOf(word string) (id int, err error) {
	match := reRegister.FindStringSubmatch(word)
	if match == nil {
		err = ErrRegisterInvalid
		return
	}

	id, err = strconv.Atoi(match[1])
	if err != nil || id >= GENERAL_COUNT {
		err = ErrRegisterInvalid
		return
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value64 int64
		value64, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(value64)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

var reParen = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine splits a line into words, handling .equ, labels and
// expressions.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	if len(words) == 0 {
		return
	}

	// .equ NAME VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		asm.Label[label] = asm.currentIp()
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// currentIp gets the address of the next program word.
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = asm.Opcode[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(_avr_defines)
	asm.Equate["LINENO"] = "0"
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.Split(text, ";")[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of jump labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		lineno = op.LineNo
		line = strings.Join(op.Words, " ")

		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		linked := &op.Codes[0]
		switch linked.Op {
		case OP_RJMP:
			offset := int64(ip - (op.Ip + 1))
			if offset < RJMP_MIN || offset > RJMP_MAX {
				err = ErrImmediateRange
				return
			}
			linked.Offset = offset
		default:
			linked.K = register.Value(ip)
		}
	}

	prog = &Program{
		Opcodes: append([]Opcode(nil), asm.Opcode...),
	}

	return
}

// argCount checks the operand count of an instruction.
func argCount(words []string, count int) (err error) {
	switch {
	case len(words)-1 < count:
		err = ErrOpcodeValueMissing
	case len(words)-1 > count:
		err = ErrOpcodeExtraArgs
	}

	return
}

// target resolves a jump target, returning either a value or a label to
// link.
func (asm *Assembler) target(word string, lo, hi int64) (value int64, label string, err error) {
	value, err = asm.rangeOf(word, lo, hi)
	if err == nil {
		return
	}
	if errors.Is(err, ErrImmediateRange) {
		return
	}

	err = nil
	value = 0
	label = word
	return
}

var _alu_ops = map[string]func(rd, rr int) Instruction{
	"mov": Mov,
	"add": Add,
	"sub": Sub,
}

// parseWords assembles the words of a line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var inst Instruction
	var label string

	// no-op
	if len(words) == 0 {
		return
	}

	var args [2]int64
	var regs [2]int

	switch strings.ToLower(words[0]) {
	case "nop":
		err = argCount(words, 0)
		inst = Nop()
	case "ret":
		err = argCount(words, 0)
		inst = Ret(nil)
	case "ldi":
		err = argCount(words, 2)
		if err == nil {
			regs[0], err = asm.registerOf(words[1])
		}
		if err == nil {
			args[0], err = asm.rangeOf(words[2], -128, 255)
		}
		inst = Ldi(regs[0], uint8(args[0]))
	case "mov", "add", "sub":
		err = argCount(words, 2)
		for n := range 2 {
			if err == nil {
				regs[n], err = asm.registerOf(words[1+n])
			}
		}
		inst = _alu_ops[strings.ToLower(words[0])](regs[0], regs[1])
	case "jmp", "call":
		err = argCount(words, 1)
		if err == nil {
			args[0], label, err = asm.target(words[1], 0, 0xffff)
		}
		if strings.ToLower(words[0]) == "jmp" {
			inst = Jmp(uint16(args[0]))
		} else {
			inst = Call(nil, uint16(args[0]))
		}
	case "rjmp":
		err = argCount(words, 1)
		if err == nil {
			args[0], label, err = asm.target(words[1], RJMP_MIN, RJMP_MAX)
		}
		inst = Rjmp(args[0])
	case "push":
		err = argCount(words, 1)
		if err == nil {
			regs[0], err = asm.registerOf(words[1])
		}
		inst = Push(nil, regs[0])
	case "pop":
		err = argCount(words, 1)
		if err == nil {
			regs[0], err = asm.registerOf(words[1])
		}
		inst = Pop(nil, regs[0])
	case "in":
		err = argCount(words, 2)
		if err == nil {
			regs[0], err = asm.registerOf(words[1])
		}
		if err == nil {
			args[0], err = asm.rangeOf(words[2], 0, IO_COUNT-1)
		}
		inst = In(regs[0], uint8(args[0]))
	case "out":
		err = argCount(words, 2)
		if err == nil {
			args[0], err = asm.rangeOf(words[1], 0, IO_COUNT-1)
		}
		if err == nil {
			regs[0], err = asm.registerOf(words[2])
		}
		inst = Out(uint8(args[0]), regs[0])
	default:
		err = ErrInstructionInvalid
	}

	if err != nil {
		return
	}

	opcode := Opcode{
		LineNo:    lineno,
		Ip:        asm.currentIp(),
		Words:     words,
		Codes:     inst.Padded(),
		LinkLabel: label,
	}
	if asm.Verbose {
		log.Printf("%04x: %v", opcode.Ip, inst)
	}
	asm.Opcode = append(asm.Opcode, opcode)

	return
}
