package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImage builds a minimal decodable 256-byte module image.
func testImage(serial string) []byte {
	m := make([]byte, 256)
	m[0x00] = 0x18 // QSFP-DD
	m[0x01] = 0x40
	m[0x55] = 0x02 // SMF
	copy(m[0x81:], "ACME PHOTONICS  ")
	copy(m[0x94:], "QDD-400G-LR4    ")
	copy(m[0xA6:], serial+"        ")
	m[0xC8] = 0x40
	m[0xC9] = 0x38
	m[0xCB] = 0x07
	m[0xD4] = 0x05
	return m
}

func TestContentHash(t *testing.T) {
	_, err := ContentHash(make([]byte, 128))
	assert.Error(t, err)

	h1, err := ContentHash(testImage("SN001"))
	require.NoError(t, err)
	assert.Contains(t, h1, "sha256:")

	// Different serial numbers produce different hashes.
	h2, err := ContentHash(testImage("SN002"))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	// Volatile monitor readings do not change the identity.
	warm := testImage("SN001")
	warm[0x0E], warm[0x0F] = 0x2A, 0x00
	h3, err := ContentHash(warm)
	require.NoError(t, err)
	assert.Equal(t, h1, h3)
}

func TestShortHash(t *testing.T) {
	h, err := ContentHash(testImage("SN001"))
	require.NoError(t, err)
	short := ShortHash(h)
	assert.Len(t, short, 12)
	assert.Equal(t, h[7:19], short)

	// Already-short strings pass through.
	assert.Equal(t, "abc", ShortHash("abc"))
}

func TestExtractMetadata(t *testing.T) {
	data := testImage("SN001")
	hash, err := ContentHash(data)
	require.NoError(t, err)

	meta := ExtractMetadata(data, hash)
	require.NotNil(t, meta)
	assert.Equal(t, hash, meta.ContentHash)
	assert.Equal(t, "QSFP-DD", meta.ModuleType)
	assert.Equal(t, "ACME PHOTONICS", meta.Identity.VendorName)
	assert.Equal(t, "QDD-400G-LR4", meta.Identity.PartNumber)
	assert.Equal(t, "SN001", meta.Identity.SerialNumber)
	assert.Equal(t, 256, meta.Size)

	// Undecodable buffers yield no metadata.
	assert.Nil(t, ExtractMetadata(make([]byte, 100), "sha256:x"))
}

func TestStoreImportAndGet(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	data := testImage("SN001")
	hash, isNew, err := s.Import(data, Source{Timestamp: time.Now(), Method: "import"})
	require.NoError(t, err)
	assert.True(t, isNew)

	got, err := s.Get(hash)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	meta, err := s.GetMetadata(hash)
	require.NoError(t, err)
	assert.Equal(t, "SN001", meta.Identity.SerialNumber)
	require.Len(t, meta.Sources, 1)
	assert.Equal(t, "import", meta.Sources[0].Method)
}

func TestStoreReimportAppendsSource(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	data := testImage("SN001")
	hash1, isNew, err := s.Import(data, Source{Timestamp: time.Now(), Method: "import"})
	require.NoError(t, err)
	assert.True(t, isNew)

	hash2, isNew, err := s.Import(data, Source{Timestamp: time.Now(), Method: "module_read"})
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, hash1, hash2)

	meta, err := s.GetMetadata(hash1)
	require.NoError(t, err)
	assert.Len(t, meta.Sources, 2)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreListAndResolve(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	hashA, _, err := s.Import(testImage("SN00A"), Source{Timestamp: time.Now(), Method: "import"})
	require.NoError(t, err)
	hashB, _, err := s.Import(testImage("SN00B"), Source{Timestamp: time.Now(), Method: "import"})
	require.NoError(t, err)

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "ACME PHOTONICS", e.VendorName)
	}

	full, err := s.Resolve(ShortHash(hashA))
	require.NoError(t, err)
	assert.Equal(t, hashA, full)

	full, err = s.Resolve(hashB)
	require.NoError(t, err)
	assert.Equal(t, hashB, full)

	_, err = s.Resolve("nope")
	assert.Error(t, err)
}

func TestStoreExport(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	data := testImage("SN001")
	hash, _, err := s.Import(data, Source{Timestamp: time.Now(), Method: "import"})
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "module.bin")
	require.NoError(t, s.Export(hash, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}
