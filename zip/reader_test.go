package zip

import (
	"bytes"
	"encoding/binary"
	"testing"

	kzip "github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openReader(t *testing.T, data []byte) *Reader {
	t.Helper()
	zr, err := NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	return zr
}

func TestReaderRoundTrip(t *testing.T) {
	t.Parallel()

	entries := []FileEntry{
		{Path: "a.txt", Content: []byte("hello")},
		{Path: "b/b.txt"},
		{Path: "c.bin", Content: bytes.Repeat([]byte{1, 2, 3}, 1000)},
	}
	data, err := Build(entries)
	require.NoError(t, err)

	zr := openReader(t, data)
	require.Len(t, zr.Files, len(entries))
	for i, f := range zr.Files {
		assert.Equal(t, entries[i].Path, f.Name)
		assert.Equal(t, Checksum(entries[i].Content), f.CRC32)
		assert.Equal(t, f.CompressedSize, f.UncompressedSize)

		content, err := f.ReadAll()
		require.NoError(t, err)
		assert.Equal(t, entries[i].Content, content)
	}
}

func TestReaderEmptyArchive(t *testing.T) {
	t.Parallel()

	data, err := Build(nil)
	require.NoError(t, err)

	zr := openReader(t, data)
	assert.Empty(t, zr.Files)
	assert.Zero(t, zr.EOCD.TotalEntries)
}

func TestReaderDeflateAndComment(t *testing.T) {
	t.Parallel()

	content := bytes.Repeat([]byte("class CfgWeapons {};\n"), 200)

	var buf bytes.Buffer
	zw := kzip.NewWriter(&buf)
	w, err := zw.CreateHeader(&kzip.FileHeader{Name: "config.cpp", Method: kzip.Deflate})
	require.NoError(t, err)
	_, err = w.Write(content)
	require.NoError(t, err)
	w, err = zw.CreateHeader(&kzip.FileHeader{Name: "model.cfg", Method: kzip.Store})
	require.NoError(t, err)
	_, err = w.Write([]byte("class CfgModels {};"))
	require.NoError(t, err)
	require.NoError(t, zw.SetComment("packed by test"))
	require.NoError(t, zw.Close())

	zr := openReader(t, buf.Bytes())
	assert.Equal(t, "packed by test", zr.EOCD.Comment)
	require.Len(t, zr.Files, 2)

	assert.Equal(t, uint16(MethodDeflate), zr.Files[0].CompressionMethod)
	got, err := zr.Files[0].ReadAll()
	require.NoError(t, err)
	assert.Equal(t, content, got)

	got, err = zr.Files[1].ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "class CfgModels {};", string(got))
}

func TestReaderChecksumMismatch(t *testing.T) {
	t.Parallel()

	data, err := Build([]FileEntry{{Path: "a.txt", Content: []byte("hello")}})
	require.NoError(t, err)

	// Flip one byte of the stored data.
	data[LocalFileHeaderSize+len("a.txt")] ^= 0xFF

	zr := openReader(t, data)
	_, err = zr.Files[0].ReadAll()
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestReaderUnsupportedMethod(t *testing.T) {
	t.Parallel()

	data, err := Build([]FileEntry{{Path: "a.txt", Content: []byte("hello")}})
	require.NoError(t, err)

	directory := LocalFileHeaderSize + len("a.txt") + len("hello")
	binary.LittleEndian.PutUint16(data[8:], 12)
	binary.LittleEndian.PutUint16(data[directory+10:], 12)

	zr := openReader(t, data)
	_, err = zr.Files[0].ReadAll()
	assert.ErrorIs(t, err, ErrAlgorithm)
}

func TestReaderRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	valid, err := Build([]FileEntry{{Path: "a.txt", Content: []byte("hello")}})
	require.NoError(t, err)

	badDirectory := bytes.Clone(valid)
	badDirectory[LocalFileHeaderSize+len("a.txt")+len("hello")] = 0

	tests := map[string][]byte{
		"empty":         {},
		"too small":     []byte("PK\x05\x06"),
		"no end record": bytes.Repeat([]byte("not a zip "), 10),
		"truncated":     valid[len(valid)-EOCDMinSize-10:],
		"bad directory": badDirectory,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewReader(bytes.NewReader(data), int64(len(data)))
			assert.ErrorIs(t, err, ErrFormat)
		})
	}
}

func TestReaderBadLocalHeader(t *testing.T) {
	t.Parallel()

	data, err := Build([]FileEntry{{Path: "a.txt", Content: []byte("hello")}})
	require.NoError(t, err)
	data[0] = 0

	zr := openReader(t, data)
	_, err = zr.Files[0].ReadAll()
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReaderRejectsDataPastEnd(t *testing.T) {
	t.Parallel()

	data, err := Build([]FileEntry{{Path: "a.txt", Content: []byte("hello")}})
	require.NoError(t, err)

	directory := LocalFileHeaderSize + len("a.txt") + len("hello")
	binary.LittleEndian.PutUint32(data[directory+20:], 0xFFFFFFFF)

	zr := openReader(t, data)
	_, err = zr.Files[0].ReadAll()
	assert.ErrorIs(t, err, ErrFormat)
}

func TestReaderBoundsInflatedSize(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := kzip.NewWriter(&buf)
	w, err := zw.CreateHeader(&kzip.FileHeader{Name: "zeros.bin", Method: kzip.Deflate})
	require.NoError(t, err)
	_, err = w.Write(make([]byte, 1<<20))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	data := buf.Bytes()

	// Declare a much smaller uncompressed size than the stream inflates to.
	zr := openReader(t, data)
	binary.LittleEndian.PutUint32(data[zr.EOCD.CentralDirOffset+24:], 16)

	zr = openReader(t, data)
	require.Equal(t, uint32(16), zr.Files[0].UncompressedSize)
	got, err := zr.Files[0].ReadAll()
	assert.ErrorIs(t, err, ErrChecksum)
	assert.ErrorContains(t, err, "is 17 bytes, expected 16")
	assert.Nil(t, got)
}
