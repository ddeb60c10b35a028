package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comp16/cpu"
	"comp16/disk"
	"comp16/lexer"
	"comp16/linker"
	"comp16/memory"
	"comp16/parser"
	"comp16/register"
	"comp16/word"
)

func TestImageAssemblesWithoutError(t *testing.T) {
	img := Image()
	assert.NotEmpty(t, img)
}

// TestBootThenLoaderComposition exercises scenario 6: the bootloader,
// burned into RAM at 0, boots a trivial loadable-mode program from
// disk sector 0 with no intervention beyond power-on.
func TestBootThenLoaderComposition(t *testing.T) {
	toks, err := lexer.Lex("move a 9\nshutdown")
	require.NoError(t, err)
	res, err := parser.Parse(toks)
	require.NoError(t, err)
	linked, err := linker.Link(res, linker.Loadable)
	require.NoError(t, err)

	sector := make([]word.Word, disk.WordsPerSector)
	copy(sector, linked)
	d := disk.NewFromWords(sector)

	regs := &register.File{}
	pc := &register.PC{}
	mem := &memory.Map{}
	mem.LoadImage(Image())
	dec := cpu.NewDecoder(regs, pc, mem, d)

	for i := 0; i < 10000; i++ {
		done, err := dec.Step()
		require.NoError(t, err)
		regs.Tick()
		pc.Tick()
		mem.Tick()
		d.Tick()
		if done {
			break
		}
	}
	require.True(t, dec.Shutdown())
	assert.Equal(t, word.Word(9), regs.A.Read())
}
