package disk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comp16/word"
)

func TestWriteThenReadSameSector(t *testing.T) {
	d := New(2)
	v, err := d.Access(3, false, 99, true)
	require.NoError(t, err)
	assert.Equal(t, word.Word(99), v)

	v, err = d.Access(3, false, 0, false)
	require.NoError(t, err)
	assert.Equal(t, word.Word(99), v)
}

func TestSectorSelectIsEdgeTriggered(t *testing.T) {
	d := New(3)
	d.Access(0, false, 111, true) // sector 0, address 0

	_, err := d.Access(1, true, 0, false) // select sector 1 for next cycle
	require.NoError(t, err)

	// same cycle, sector register has not ticked yet: still sector 0
	v, _ := d.Access(0, false, 0, false)
	assert.Equal(t, word.Word(111), v)

	d.Tick()
	// now the read targets sector 1
	v, _ = d.Access(0, false, 0, false)
	assert.Equal(t, word.Word(0), v)
}

func TestOutOfRangeIsReported(t *testing.T) {
	d := New(1)
	_, err := d.Access(WordsPerSector, false, 0, false)
	assert.Error(t, err)
	var rangeErr *RangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestNewFromWords(t *testing.T) {
	d := NewFromWords([]word.Word{1, 2, 3})
	assert.Equal(t, []word.Word{1, 2, 3}, d.Words())
}
