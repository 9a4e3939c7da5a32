package cmis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	m := make(Memory, ExtendedLen)

	off, err := m.Resolve(Page0Lower, 0x55)
	require.NoError(t, err)
	assert.Equal(t, 0x55, off)

	off, err = m.Resolve(Page0Upper, 0x01)
	require.NoError(t, err)
	assert.Equal(t, 0x81, off)

	off, err = m.Resolve(Page2, 0x00)
	require.NoError(t, err)
	assert.Equal(t, 0x180, off)

	off, err = m.Resolve(Page17, 0x0B)
	require.NoError(t, err)
	assert.Equal(t, 0x28B, off)
}

func TestResolveOffsetOutOfRange(t *testing.T) {
	m := make(Memory, ExtendedLen)
	_, err := m.Resolve(Page0Lower, PageSize)
	assert.Error(t, err)
}

func TestResolvePageNotPresent(t *testing.T) {
	m := make(Memory, BaseLen)

	_, err := m.Resolve(Page0Upper, 0x7F)
	assert.NoError(t, err)

	_, err = m.Resolve(Page1, 0x00)
	assert.ErrorIs(t, err, ErrPageNotPresent)

	_, err = m.Resolve(Page17, 0x0B)
	assert.ErrorIs(t, err, ErrPageNotPresent)
}

func TestHasPage(t *testing.T) {
	base := make(Memory, BaseLen)
	assert.True(t, base.HasPage(Page0Lower))
	assert.True(t, base.HasPage(Page0Upper))
	assert.False(t, base.HasPage(Page1))

	ext := make(Memory, ExtendedLen)
	assert.True(t, ext.HasPage(Page17))
}

func TestPageString(t *testing.T) {
	assert.Equal(t, "00h (lower)", Page0Lower.String())
	assert.Equal(t, "11h", Page17.String())
}
