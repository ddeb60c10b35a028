package register

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comp16/word"
)

func TestReadBeforeTickReturnsPreWriteValue(t *testing.T) {
	var r Register
	r.Write(5, true)
	r.Tick()
	assert.Equal(t, word.Word(5), r.Read())

	r.Write(9, true)
	assert.Equal(t, word.Word(5), r.Read(), "read before tick must see the pre-write value")
	r.Tick()
	assert.Equal(t, word.Word(9), r.Read())
}

func TestWriteWithoutLoadIsIgnored(t *testing.T) {
	var r Register
	r.Write(1, true)
	r.Tick()
	r.Write(99, false)
	r.Tick()
	assert.Equal(t, word.Word(1), r.Read())
}

func TestLastLoadingWriteWins(t *testing.T) {
	var r Register
	r.Write(1, true)
	r.Write(2, true)
	r.Tick()
	assert.Equal(t, word.Word(2), r.Read())
}

func TestPCPriorityResetOverLoadOverInc(t *testing.T) {
	var pc PC
	pc.Write(100, true, false, false)
	pc.Tick()
	assert.Equal(t, word.Word(100), pc.Read())

	pc.Write(200, true, true, true) // reset wins
	pc.Tick()
	assert.Equal(t, word.Word(0), pc.Read())

	pc.Write(50, true, true, false) // load wins over inc
	pc.Tick()
	assert.Equal(t, word.Word(50), pc.Read())

	pc.Write(0, false, true, false) // plain increment
	pc.Tick()
	assert.Equal(t, word.Word(51), pc.Read())
}

func TestPCInitialValueIsZero(t *testing.T) {
	var pc PC
	assert.Equal(t, word.Word(0), pc.Read())
}
