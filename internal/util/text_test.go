package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimASCII(t *testing.T) {
	assert.Equal(t, "ACME", TrimASCII([]byte("ACME            ")))
	assert.Equal(t, "ACME", TrimASCII([]byte("ACME\x00\x00")))
	assert.Equal(t, "", TrimASCII(make([]byte, 16)))

	// Non-printable bytes poison the whole span.
	assert.Equal(t, "", TrimASCII([]byte{'A', 0x01, 'B'}))
}

func TestIsTextData(t *testing.T) {
	assert.True(t, IsTextData([]byte("hello\nworld\t")))
	assert.False(t, IsTextData([]byte{0xFF, 0x00}))
}

func TestHexDump(t *testing.T) {
	out := HexDump([]byte("0123456789abcdefXY"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "0000  "))
	assert.True(t, strings.HasPrefix(lines[1], "0010  "))
	assert.Contains(t, lines[0], "|0123456789abcdef|")
	assert.Contains(t, lines[1], "|XY|")
}
