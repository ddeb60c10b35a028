// Package boot embeds the bootloader's own assembly source and
// assembles it once, via the same lexer/parser/linker pipeline user
// programs go through, into the word image cmd/gemu burns into RAM at
// power-on. The bootloader is not a black box: it's ordinary assembly
// exercising the same fetch/disk/jump paths any program does.
package boot

import (
	_ "embed"

	"comp16/lexer"
	"comp16/linker"
	"comp16/parser"
	"comp16/word"
)

//go:embed bootloader.eas
var source string

// ProgramStart is the fixed RAM address the bootloader copies the
// linked image to, starting from its second header word (the length
// word itself is consumed, not copied). Entry is the resulting
// address of the image's first executable word: the loader's entry
// point if the image carries one, otherwise its first instruction.
// Both must match the literals written into bootloader.eas.
const (
	ProgramStart = 256
	Entry        = ProgramStart + 1
)

var image []word.Word

func init() {
	toks, err := lexer.Lex(source)
	if err != nil {
		panic("boot: " + err.Error())
	}
	res, err := parser.Parse(toks)
	if err != nil {
		panic("boot: " + err.Error())
	}
	image, err = linker.Link(res, linker.Boot)
	if err != nil {
		panic("boot: " + err.Error())
	}
}

// Image returns the assembled bootloader word stream, ready to be
// written to RAM starting at address 0.
func Image() []word.Word {
	out := make([]word.Word, len(image))
	copy(out, image)
	return out
}
