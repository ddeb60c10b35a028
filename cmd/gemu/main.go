// Command gemu boots a disk image through the embedded bootloader and
// either runs it to completion or drops into the interactive debugger.
package main

import (
	"flag"
	"fmt"
	"os"

	"comp16/boot"
	"comp16/disk"
	"comp16/machine"
	"comp16/word"
)

func main() {
	diskPath := flag.String("disk", "", "disk image path (word-addressed, big-endian)")
	debug := flag.Bool("debug", false, "launch the interactive single-step debugger")
	flag.Parse()

	if *diskPath == "" {
		fmt.Fprintln(os.Stderr, "usage: gemu -disk disk.img [-debug]")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*diskPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gemu:", err)
		os.Exit(1)
	}

	words := bytesToWords(raw)
	sectors := (len(words) + disk.WordsPerSector - 1) / disk.WordsPerSector
	padded := make([]word.Word, sectors*disk.WordsPerSector)
	copy(padded, words)

	m := machine.NewWithDisk(disk.NewFromWords(padded))
	m.LoadImage(boot.Image())

	if *debug {
		if err := machine.Debug(m); err != nil {
			fmt.Fprintln(os.Stderr, "gemu:", err)
			os.Exit(1)
		}
		return
	}

	if err := m.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "gemu:", err)
		os.Exit(1)
	}
}

func bytesToWords(b []byte) []word.Word {
	n := len(b) / 2
	out := make([]word.Word, n)
	for i := 0; i < n; i++ {
		out[i] = word.Word(b[2*i])<<8 | word.Word(b[2*i+1])
	}
	return out
}
