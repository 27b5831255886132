package gutter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberWidthMatchesLog10(t *testing.T) {
	for _, n := range []int{1, 2, 9, 10, 11, 99, 100, 999, 1000, 123456} {
		want := int(math.Floor(math.Log10(float64(n)))) + 2
		assert.Equal(t, want, NumberWidth(n), "line count %d", n)
	}
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 3, Width(1))
	assert.Equal(t, 4, Width(20))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, " 1 ", Format(0, 5))
	assert.Equal(t, "  7 ", Format(6, 20))
	assert.Equal(t, " 20 ", Format(19, 20))
	assert.Equal(t, "    ", Blank(20))
}

func TestPadLeft(t *testing.T) {
	assert.Equal(t, "  ab", PadLeft("ab", 4))
	assert.Equal(t, "abcd", PadLeft("abcd", 2))
}
