package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comp16/isa"
	"comp16/word"
)

func spec(sel isa.Selector, pointer bool) isa.Specifier {
	return isa.Specifier{Selector: sel, Pointer: pointer}
}

func TestDecodeZeroAddress(t *testing.T) {
	instr := isa.Encode(isa.ClassShutdown, 0, spec(isa.SelA, false), spec(isa.SelA, false))
	assert.Equal(t, "shutdown", Decode(instr, 0))
}

func TestDecodeTwoAddressRegisterToConstant(t *testing.T) {
	instr := isa.Encode(isa.ClassMoveHDD, isa.SubMove, spec(isa.SelA, false), spec(isa.SelConst, false))
	assert.Equal(t, "move a 7", Decode(instr, 7))
}

func TestDecodeOneTargetPointer(t *testing.T) {
	instr := isa.Encode(isa.ClassALUMove, isa.Table["inc"].Sub, spec(isa.SelB, true), spec(isa.SelA, false))
	assert.Equal(t, "inc [b]", Decode(instr, 0))
}

func TestDecodeOneSourceConstant(t *testing.T) {
	instr := isa.Encode(isa.ClassStack, isa.SubPush, spec(isa.SelA, false), spec(isa.SelConst, false))
	assert.Equal(t, "push 42", Decode(instr, 42))
}

func TestDecodeUnknownEncodingDoesNotPanic(t *testing.T) {
	// Class 0x9 has no row in isa.Table.
	instr := word.PackNibbles(0x9, 0, 0, 0)
	assert.Contains(t, Decode(instr, 0), "???")
}

func TestDecodeCompareDistinguishedFromSub(t *testing.T) {
	sub := isa.Encode(isa.ClassALUMove, isa.Table["sub"].Sub, spec(isa.SelA, false), spec(isa.SelB, false))
	cmp := isa.Encode(isa.ClassALUCmp, isa.Table["compare"].Sub, spec(isa.SelA, false), spec(isa.SelB, false))
	assert.Equal(t, "sub a b", Decode(sub, 0))
	assert.Equal(t, "compare a b", Decode(cmp, 0))
}
