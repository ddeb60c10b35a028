package isa

import (
	"comp16/alu"
	"comp16/word"
)

// Arity describes how many operands a mnemonic takes and what form
// they may take, per the parser's statement grammar.
type Arity int

const (
	// ZeroAddress mnemonics (shutdown, reset, return) take no operands
	// and emit exactly one word.
	ZeroAddress Arity = iota
	// TwoAddress mnemonics (move, arithmetic, logic, compare, hddread,
	// hddwrite) take a target and a source operand; the two may not
	// both be plain (unbracketed) constants.
	TwoAddress
	// OneTarget mnemonics (inc, dec, neg, not, pop) take a single
	// target operand; a constant is not a legal target.
	OneTarget
	// OneSource mnemonics (the jump family, push, call, hddsector)
	// take a single source operand, which may be a constant.
	OneSource
)

// Mnemonic is one row of the opcode table: everything the parser
// needs to encode a statement, and everything the disassembler needs
// to recognize it again.
type Mnemonic struct {
	Name  string
	Class Class
	Sub   word.Word
	Arity Arity
}

// Table maps every reserved mnemonic to its encoding. Both the parser
// and the disassembler read from this single table, per the "global
// opcode symbol table" design: there is exactly one place instruction
// encodings are listed.
var Table = map[string]Mnemonic{
	"shutdown": {"shutdown", ClassShutdown, 0, ZeroAddress},
	"reset":    {"reset", ClassReset, 0, ZeroAddress},
	"return":   {"return", ClassJump, SubReturn, ZeroAddress},

	"move":     {"move", ClassMoveHDD, SubMove, TwoAddress},
	"hddread":  {"hddread", ClassMoveHDD, SubHDDRead, TwoAddress},
	"hddwrite": {"hddwrite", ClassMoveHDD, SubHDDWrite, TwoAddress},

	"add":     {"add", ClassALUMove, word.Word(alu.Add), TwoAddress},
	"sub":     {"sub", ClassALUMove, word.Word(alu.Sub), TwoAddress},
	"and":     {"and", ClassALUMove, word.Word(alu.And), TwoAddress},
	"or":      {"or", ClassALUMove, word.Word(alu.Or), TwoAddress},
	"xor":     {"xor", ClassALUMove, word.Word(alu.Xor), TwoAddress},
	"compare": {"compare", ClassALUCmp, word.Word(alu.Sub), TwoAddress},

	"inc": {"inc", ClassALUMove, word.Word(alu.Inc), OneTarget},
	"dec": {"dec", ClassALUMove, word.Word(alu.Dec), OneTarget},
	"neg": {"neg", ClassALUMove, word.Word(alu.Negate), OneTarget},
	"not": {"not", ClassALUMove, word.Word(alu.Not), OneTarget},
	"pop": {"pop", ClassStack, SubPop, OneTarget},

	"jump":           {"jump", ClassJump, SubJump, OneSource},
	"jump_zero":      {"jump_zero", ClassJumpZero, 0, OneSource},
	"jump_neg":       {"jump_neg", ClassJumpNeg, 0, OneSource},
	"jump_overflow":  {"jump_overflow", ClassJumpOvf, 0, OneSource},
	"call":           {"call", ClassJump, SubCall, OneSource},
	"push":           {"push", ClassStack, SubPush, OneSource},
	"hddsector":      {"hddsector", ClassMoveHDD, SubHDDSector, OneSource},
}

// ByEncoding is the disassembler's reverse lookup: (class, sub) to
// mnemonic name. Built once from Table.
var ByEncoding = func() map[[2]word.Word]string {
	m := make(map[[2]word.Word]string, len(Table))
	for name, mn := range Table {
		m[[2]word.Word{word.Word(mn.Class), mn.Sub}] = name
	}
	return m
}()

// BuiltinNames maps the assembler's reserved address names to their
// absolute addresses. These resolve at parse time to literal
// constants, never to relocatable references.
var BuiltinNames = map[string]word.Word{
	"KEYBOARD": 40960,
	"SCREEN":   32768,
	"BP":       32767,
}

// Registers maps register keywords to their operand selector.
var Registers = map[string]Selector{
	"a":  SelA,
	"b":  SelB,
	"c":  SelC,
	"d":  SelD,
	"sp": SelSP,
}
