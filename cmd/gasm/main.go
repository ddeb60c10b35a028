// Command gasm assembles a .eas source file into a flat binary image.
package main

import (
	"flag"
	"fmt"
	"os"

	"comp16/disasm"
	"comp16/isa"
	"comp16/lexer"
	"comp16/linker"
	"comp16/parser"
	"comp16/word"
)

func main() {
	mode := flag.String("mode", "boot", "assembly mode: boot or loadable")
	out := flag.String("o", "", "output binary path")
	showDisasm := flag.Bool("disasm", false, "print a disassembly of the linked image to stderr")
	flag.Parse()

	if flag.NArg() != 1 || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: gasm -mode=boot|loadable -o out.bin in.eas")
		os.Exit(2)
	}

	var linkMode linker.Mode
	switch *mode {
	case "boot":
		linkMode = linker.Boot
	case "loadable":
		linkMode = linker.Loadable
	default:
		fmt.Fprintf(os.Stderr, "gasm: unknown mode %q\n", *mode)
		os.Exit(2)
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "gasm:", err)
		os.Exit(1)
	}

	toks, err := lexer.Lex(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, "gasm:", err)
		os.Exit(1)
	}

	res, err := parser.Parse(toks)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gasm:", err)
		os.Exit(1)
	}

	image, err := linker.Link(res, linkMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gasm:", err)
		os.Exit(1)
	}

	if *showDisasm {
		printDisasm(image)
	}

	if err := writeImage(*out, image); err != nil {
		fmt.Fprintln(os.Stderr, "gasm:", err)
		os.Exit(1)
	}
}

func writeImage(path string, image []word.Word) error {
	buf := make([]byte, len(image)*2)
	for i, w := range image {
		buf[2*i] = byte(w >> 8)
		buf[2*i+1] = byte(w)
	}
	return os.WriteFile(path, buf, 0o644)
}

func printDisasm(image []word.Word) {
	for i := 0; i < len(image); i++ {
		var constant word.Word
		if i+1 < len(image) {
			constant = image[i+1]
		}
		dec := isa.Decode(image[i])
		fmt.Fprintf(os.Stderr, "%04x: %s\n", i, disasm.Decode(image[i], constant))
		if dec.A.Selector == isa.SelConst || dec.B.Selector == isa.SelConst {
			i++
		}
	}
}
