// Package disasm renders raw instruction words as assembly text,
// sharing the isa package's single opcode table so the assembler's
// encoder and this decoder can never drift apart.
package disasm

import (
	"fmt"

	"comp16/isa"
	"comp16/word"
)

// Decode renders one instruction as assembly text. instr is the
// instruction word itself; constant is the word immediately following
// it in memory, used only when one of the operand specifiers selects
// isa.SelConst (callers that don't know the following word can pass 0
// and ignore it for instructions with no constant operand).
func Decode(instr, constant word.Word) string {
	dec := isa.Decode(instr)
	name, ok := isa.ByEncoding[[2]word.Word{word.Word(dec.Class), dec.Sub}]
	if !ok {
		return fmt.Sprintf("??? 0x%04x", uint16(instr))
	}

	mn := isa.Table[name]
	switch mn.Arity {
	case isa.ZeroAddress:
		return name
	case isa.TwoAddress:
		return fmt.Sprintf("%s %s %s", name, operand(dec.A, constant), operand(dec.B, constant))
	case isa.OneTarget:
		return fmt.Sprintf("%s %s", name, operand(dec.A, constant))
	case isa.OneSource:
		return fmt.Sprintf("%s %s", name, operand(dec.B, constant))
	default:
		return name
	}
}

func operand(spec isa.Specifier, constant word.Word) string {
	var s string
	if spec.Selector == isa.SelConst {
		s = fmt.Sprintf("%d", constant)
	} else {
		s = spec.Selector.String()
	}
	if spec.Pointer {
		return "[" + s + "]"
	}
	return s
}
