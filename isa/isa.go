// Package isa is the machine's single source of truth for instruction
// encoding: the primary opcode classes, the ALU sub-opcodes, operand
// specifiers, and the mnemonic table that both the assembler (as an
// encoder) and the disassembler (as a decoder) consume.
package isa

import "comp16/word"

// Class is the 4-bit primary opcode (the instruction word's top nibble).
type Class word.Word

const (
	ClassReset    Class = 0x0
	ClassShutdown Class = 0x1
	ClassMoveHDD  Class = 0x2
	ClassStack    Class = 0x3
	ClassJump     Class = 0x4
	ClassJumpNeg  Class = 0x5
	ClassJumpZero Class = 0x6
	ClassJumpOvf  Class = 0x7
	ClassALUCmp   Class = 0x8
	ClassALUMove  Class = 0xA
)

// Sub-opcode values within ClassMoveHDD.
const (
	SubMove      word.Word = 0x0
	SubHDDRead   word.Word = 0x8
	SubHDDWrite  word.Word = 0xA
	SubHDDSector word.Word = 0xC
)

// Sub-opcode values within ClassStack: the top bit of the sub-opcode
// distinguishes push from pop.
const (
	SubPop  word.Word = 0x0
	SubPush word.Word = 0x8
)

// Sub-opcode values within ClassJump.
const (
	SubJump   word.Word = 0x0
	SubReturn word.Word = 0x2
	SubCall   word.Word = 0x4
)

// Selector names one of the six operand sources: four general
// registers, the stack pointer, or the word immediately following
// the instruction (a constant).
type Selector word.Word

const (
	SelA Selector = iota
	SelB
	SelC
	SelD
	SelSP
	SelConst
)

var selectorNames = map[Selector]string{
	SelA: "a", SelB: "b", SelC: "c", SelD: "d", SelSP: "sp", SelConst: "<const>",
}

func (s Selector) String() string {
	if n, ok := selectorNames[s]; ok {
		return n
	}
	return "?"
}

// Specifier is a decoded 4-bit operand specifier: a selector plus the
// pointer bit that says "dereference the named word as a RAM address".
type Specifier struct {
	Selector Selector
	Pointer  bool
}

// Encode packs a Specifier into its 4-bit field value.
func (s Specifier) Encode() word.Word {
	v := word.Word(s.Selector) & 0x7
	if s.Pointer {
		v |= 0x8
	}
	return v
}

// DecodeSpecifier unpacks a 4-bit field into a Specifier.
func DecodeSpecifier(v word.Word) Specifier {
	return Specifier{
		Selector: Selector(v & 0x7),
		Pointer:  v&0x8 != 0,
	}
}

// Encode assembles a full instruction word from its four nibble
// fields: primary class, sub-opcode, and the two operand specifiers.
func Encode(class Class, sub word.Word, a, b Specifier) word.Word {
	return word.PackNibbles(word.Word(class), sub, a.Encode(), b.Encode())
}

// Decoded is the nibble-level breakdown of a raw instruction word,
// shared by the CPU decoder and the disassembler.
type Decoded struct {
	Class Class
	Sub   word.Word
	A, B  Specifier
}

// Decode splits a raw instruction word into its four nibble fields.
func Decode(instr word.Word) Decoded {
	return Decoded{
		Class: Class(word.Nibble(instr, 0)),
		Sub:   word.Nibble(instr, 1),
		A:     DecodeSpecifier(word.Nibble(instr, 2)),
		B:     DecodeSpecifier(word.Nibble(instr, 3)),
	}
}
