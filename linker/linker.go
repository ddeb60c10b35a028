// Package linker resolves a parser.Result into a flat word stream,
// either in place (boot mode) or as a relocatable image carrying its
// own loader (loadable mode).
package linker

import (
	"fmt"

	"comp16/alu"
	"comp16/isa"
	"comp16/parser"
	"comp16/word"
)

// Mode selects how sentinels are resolved and whether a header and
// loader are prepended.
type Mode int

const (
	// Boot places the program at address 0 and resolves every
	// sentinel directly; no header, no loader.
	Boot Mode = iota
	// Loadable produces a relocatable image: a two-word header, a
	// generated loader, then code with base-relative addresses that
	// the loader patches at boot.
	Loadable
)

// headerSize is the fixed length, in words, of the loadable-mode
// header: [program_length, total_variable_words].
const headerSize = 2

// Error reports a sentinel left unresolved after parsing — a parser
// bug, since the parser itself validates every reference.
type Error struct {
	Name string
	Line int
}

func (e *Error) Error() string {
	return fmt.Sprintf("linker: unresolved reference %q at line %d", e.Name, e.Line)
}

// Link resolves r into a flat word stream under mode.
func Link(r *parser.Result, mode Mode) ([]word.Word, error) {
	if mode == Boot {
		return linkBoot(r)
	}
	return linkLoadable(r)
}

func linkBoot(r *parser.Result) ([]word.Word, error) {
	varOffset, _ := variableOffsets(r.Variables, len(r.Code))

	out := make([]word.Word, len(r.Code))
	for i, item := range r.Code {
		if item.IsWord() {
			out[i] = item.Value
			continue
		}
		loc, err := resolve(item, r.Labels, varOffset, 0)
		if err != nil {
			return nil, err
		}
		out[i] = loc
	}
	return out, nil
}

func linkLoadable(r *parser.Result) ([]word.Word, error) {
	sentinelCount := 0
	for _, item := range r.Code {
		if !item.IsWord() {
			sentinelCount++
		}
	}

	loaderSize := 0
	if sentinelCount > 0 {
		loaderSize = 1 + 4*sentinelCount
	}

	varOffset, totalVarWords := variableOffsets(r.Variables, loaderSize+len(r.Code))

	resolved := make([]word.Word, len(r.Code))
	var siteOffsets []int
	for i, item := range r.Code {
		if item.IsWord() {
			resolved[i] = item.Value
			continue
		}
		loc, err := resolve(item, r.Labels, varOffset, loaderSize)
		if err != nil {
			return nil, err
		}
		resolved[i] = loc
		siteOffsets = append(siteOffsets, loaderSize+i)
	}

	var loader []word.Word
	if sentinelCount > 0 {
		loader = buildLoader(siteOffsets)
	}

	programLength := headerSize + len(loader) + len(resolved)
	header := []word.Word{word.Word(programLength), word.Word(totalVarWords)}

	out := make([]word.Word, 0, len(header)+len(loader)+len(resolved))
	out = append(out, header...)
	out = append(out, loader...)
	out = append(out, resolved...)
	return out, nil
}

// resolve maps one sentinel to its address. labelBase is added only
// to label references in loadable mode (loaderSize); it is 0 for
// boot mode, where labels and variables already share the code's own
// coordinate space.
func resolve(item parser.Item, labels map[string]int, varOffset map[string]int, labelBase int) (word.Word, error) {
	if loc, ok := labels[item.Unresolved]; ok {
		return word.Word(labelBase + loc), nil
	}
	if loc, ok := varOffset[item.Unresolved]; ok {
		return word.Word(loc), nil
	}
	return 0, &Error{Name: item.Unresolved, Line: item.Line}
}

func variableOffsets(vars []parser.Variable, base int) (map[string]int, int) {
	offsets := make(map[string]int, len(vars))
	total := 0
	next := base
	for _, v := range vars {
		offsets[v.Name] = next
		next += v.Size
		total += v.Size
	}
	return offsets, total
}

func spec(sel isa.Selector, pointer bool) isa.Specifier {
	return isa.Specifier{Selector: sel, Pointer: pointer}
}

// buildLoader emits the relocation stub: a single `pop a` that reads
// the load base off the stack, then four words per site that add the
// base into the word at that site.
//
// The base the bootloader pushes is the RAM address of this loader's
// own first word (i.e. just past the header): siteOffsets already
// share that coordinate system (they, like every patched data value,
// are offsets from the start of the loader+code region), so the
// site's own "move b <site>" operand needs no further adjustment.
func buildLoader(siteOffsets []int) []word.Word {
	loader := []word.Word{
		isa.Encode(isa.ClassStack, isa.SubPop, spec(isa.SelA, false), spec(isa.SelSP, true)),
	}
	for _, site := range siteOffsets {
		loader = append(loader,
			isa.Encode(isa.ClassMoveHDD, isa.SubMove, spec(isa.SelB, false), spec(isa.SelConst, false)),
			word.Word(site),
			isa.Encode(isa.ClassALUMove, word.Word(alu.Add), spec(isa.SelB, false), spec(isa.SelA, false)),
			isa.Encode(isa.ClassALUMove, word.Word(alu.Add), spec(isa.SelB, true), spec(isa.SelA, false)),
		)
	}
	return loader
}
