package zip

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutLittleEndian(t *testing.T) {
	buf := make([]byte, 8)
	putU16(buf, 1, 0xBEEF)
	putU32(buf, 3, 0x04034b50)

	assert.Equal(t, []byte{0x00, 0xEF, 0xBE, 0x50, 0x4b, 0x03, 0x04, 0x00}, buf)
}

func TestStoredLocalHeaderEncode(t *testing.T) {
	t.Parallel()

	h := storedLocalHeader("b/b.txt", 0xCBF43926, 9)
	buf := h.Encode()
	require.Len(t, buf, LocalFileHeaderSize+len("b/b.txt"))

	le := binary.LittleEndian
	assert.Equal(t, uint32(LocalFileHeaderSignature), le.Uint32(buf[0:]))
	assert.Equal(t, uint16(20), le.Uint16(buf[4:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[6:]), "flags")
	assert.Equal(t, uint16(MethodStore), le.Uint16(buf[8:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[10:]), "mod time")
	assert.Equal(t, uint16(0), le.Uint16(buf[12:]), "mod date")
	assert.Equal(t, uint32(0xCBF43926), le.Uint32(buf[14:]))
	assert.Equal(t, uint32(9), le.Uint32(buf[18:]))
	assert.Equal(t, uint32(9), le.Uint32(buf[22:]))
	assert.Equal(t, uint16(7), le.Uint16(buf[26:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[28:]), "extra length")
	assert.Equal(t, "b/b.txt", string(buf[30:]))
}

func TestStoredDirectoryHeaderEncode(t *testing.T) {
	t.Parallel()

	local := storedLocalHeader("a.txt", 0x3610A686, 5)
	buf := storedDirectoryHeader(local, 0x01020304).Encode()
	require.Len(t, buf, CentralDirectoryHeaderSize+len("a.txt"))

	le := binary.LittleEndian
	assert.Equal(t, uint32(CentralDirectorySignature), le.Uint32(buf[0:]))
	assert.Equal(t, uint16(20), le.Uint16(buf[4:]), "version made by")
	assert.Equal(t, uint16(20), le.Uint16(buf[6:]), "version needed")
	assert.Equal(t, uint16(0), le.Uint16(buf[8:]), "flags")
	assert.Equal(t, uint16(MethodStore), le.Uint16(buf[10:]))
	assert.Equal(t, uint32(0x3610A686), le.Uint32(buf[16:]))
	assert.Equal(t, uint32(5), le.Uint32(buf[20:]))
	assert.Equal(t, uint32(5), le.Uint32(buf[24:]))
	assert.Equal(t, uint16(5), le.Uint16(buf[28:]))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, buf[30:42], "extra, comment, disk, attributes")
	assert.Equal(t, uint32(0x01020304), le.Uint32(buf[42:]))
	assert.Equal(t, "a.txt", string(buf[46:]))

	// Local and directory copies of the same entry agree.
	lbuf := local.Encode()
	assert.Equal(t, lbuf[14:26], buf[16:28])
	assert.Equal(t, lbuf[30:], buf[46:])
}

func TestEndOfCentralDirectoryEncode(t *testing.T) {
	t.Parallel()

	eocd := EndOfCentralDirectory{EntriesOnDisk: 3, TotalEntries: 3, CentralDirSize: 141, CentralDirOffset: 103}
	buf := eocd.Encode()
	require.Len(t, buf, EOCDMinSize)

	le := binary.LittleEndian
	assert.Equal(t, uint32(EndOfCentralDirectorySignature), le.Uint32(buf[0:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[4:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[6:]))
	assert.Equal(t, uint16(3), le.Uint16(buf[8:]))
	assert.Equal(t, uint16(3), le.Uint16(buf[10:]))
	assert.Equal(t, uint32(141), le.Uint32(buf[12:]))
	assert.Equal(t, uint32(103), le.Uint32(buf[16:]))
	assert.Equal(t, uint16(0), le.Uint16(buf[20:]))
}
