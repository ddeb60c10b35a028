package alu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"comp16/word"
)

func TestIncrementOfMinusOneWraps(t *testing.T) {
	r := Compute(word.Word(0xFFFF), 0, Inc)
	assert.Equal(t, word.Word(0), r.Out)
	assert.True(t, r.Zero)
	assert.False(t, r.Negative)
	assert.True(t, r.Overflow)
}

func TestDecrementOfZeroWraps(t *testing.T) {
	r := Compute(word.Word(0), 0, Dec)
	assert.Equal(t, word.Word(0xFFFF), r.Out)
	assert.False(t, r.Zero)
	assert.True(t, r.Negative)
	assert.True(t, r.Overflow)
}

func TestAddXAndNegateX(t *testing.T) {
	for _, x := range []word.Word{1, 2, 0x7FFF, 0x8000, 0xFFFF} {
		negX := Compute(x, 0, Negate).Out
		r := Compute(negX, x, Add)
		assert.Equal(t, word.Word(0), r.Out, "x=%x", x)
		assert.True(t, r.Zero, "x=%x", x)
		assert.True(t, r.Overflow, "x=%x", x)
	}
}

func TestNegateIsNotPlusOne(t *testing.T) {
	for x := 0; x < 65536; x += 997 {
		xw := word.Word(x)
		notPlusOne := Compute(Compute(xw, 0, Not).Out, 1, Add).Out
		assert.Equal(t, notPlusOne, Compute(xw, 0, Negate).Out)
	}
	assert.Equal(t, word.Word(0), Compute(0, 0, Negate).Out)
}

func TestCompareIsOrderInsensitiveOnEquality(t *testing.T) {
	for _, pair := range [][2]word.Word{{5, 5}, {0, 0}, {0xFFFF, 0xFFFF}} {
		r := Compute(pair[0], pair[1], Sub)
		assert.True(t, r.Zero)
	}
}

func TestSubtractConvention(t *testing.T) {
	// Sub(a, b) = b - a.
	r := Compute(word.Word(3), word.Word(10), Sub)
	assert.Equal(t, word.Word(7), r.Out)
}

func TestPassThroughNeverSetsOverflow(t *testing.T) {
	for _, x := range []word.Word{0, 1, 0x7FFF, 0x8000, 0xFFFF} {
		r := Compute(x, 0, Pass)
		assert.False(t, r.Overflow)
		assert.Equal(t, x == 0, r.Zero)
		assert.Equal(t, x&0x8000 != 0, r.Negative)
	}
}

func TestZeroFlagMatchesResult(t *testing.T) {
	ops := []Op{Pass, Negate, Inc, Dec, Add, Sub, Not, And, Or, Xor}
	for _, op := range ops {
		for a := word.Word(0); a < 0xFFFF; a += 4111 {
			for b := word.Word(0); b < 0xFFFF; b += 5003 {
				r := Compute(a, b, op)
				assert.Equal(t, r.Out == 0, r.Zero, "op=%v a=%x b=%x", op, a, b)
			}
		}
	}
}

func TestReferenceMatchesFastPath(t *testing.T) {
	ops := []Op{Pass, Negate, Inc, Dec, Add, Sub, Not, And, Or, Xor}
	for _, op := range ops {
		for a := word.Word(0); a < 0xFFFF; a += 3001 {
			for b := word.Word(0); b < 0xFFFF; b += 2999 {
				fast := Compute(a, b, op)
				ref := ReferenceCompute(a, b, op)
				assert.Equal(t, fast, ref, "op=%v a=%x b=%x", op, a, b)
			}
		}
	}
}
