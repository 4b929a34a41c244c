package zip

const (
	LocalFileHeaderSignature       = 0x04034b50
	CentralDirectorySignature      = 0x02014b50
	EndOfCentralDirectorySignature = 0x06054b50

	LocalFileHeaderSize        = 30
	CentralDirectoryHeaderSize = 46
	EOCDMinSize                = 22

	MethodStore   = 0
	MethodDeflate = 8

	// versionStore is "2.0", the lowest version that knows about directories.
	versionStore = 20

	maxUint16 = 0xFFFF
	maxUint32 = 0xFFFFFFFF
)

// LocalFileHeader precedes each entry's data.
type LocalFileHeader struct {
	VersionNeeded     uint16
	Flags             uint16
	CompressionMethod uint16
	LastModTime       uint16
	LastModDate       uint16
	CRC32             uint32
	CompressedSize    uint32
	UncompressedSize  uint32
	FilenameLength    uint16
	ExtraFieldLength  uint16
	Filename          string
	ExtraField        []byte
}

// Encode returns the signature, fixed fields, name and extra field.
// The length fields are taken from Filename and ExtraField.
func (h *LocalFileHeader) Encode() []byte {
	buf := make([]byte, LocalFileHeaderSize+len(h.Filename)+len(h.ExtraField))
	putU32(buf, 0, LocalFileHeaderSignature)
	putU16(buf, 4, h.VersionNeeded)
	putU16(buf, 6, h.Flags)
	putU16(buf, 8, h.CompressionMethod)
	putU16(buf, 10, h.LastModTime)
	putU16(buf, 12, h.LastModDate)
	putU32(buf, 14, h.CRC32)
	putU32(buf, 18, h.CompressedSize)
	putU32(buf, 22, h.UncompressedSize)
	putU16(buf, 26, uint16(len(h.Filename)))
	putU16(buf, 28, uint16(len(h.ExtraField)))
	n := copy(buf[LocalFileHeaderSize:], h.Filename)
	copy(buf[LocalFileHeaderSize+n:], h.ExtraField)
	return buf
}

// EndOfCentralDirectory is the summary record that ends an archive.
type EndOfCentralDirectory struct {
	DiskNumber       uint16
	DiskWithCDStart  uint16
	EntriesOnDisk    uint16
	TotalEntries     uint16
	CentralDirSize   uint32
	CentralDirOffset uint32
	CommentLength    uint16
	Comment          string
}

// Encode returns the summary record including any comment.
func (e *EndOfCentralDirectory) Encode() []byte {
	buf := make([]byte, EOCDMinSize+len(e.Comment))
	putU32(buf, 0, EndOfCentralDirectorySignature)
	putU16(buf, 4, e.DiskNumber)
	putU16(buf, 6, e.DiskWithCDStart)
	putU16(buf, 8, e.EntriesOnDisk)
	putU16(buf, 10, e.TotalEntries)
	putU32(buf, 12, e.CentralDirSize)
	putU32(buf, 16, e.CentralDirOffset)
	putU16(buf, 20, uint16(len(e.Comment)))
	copy(buf[EOCDMinSize:], e.Comment)
	return buf
}

// CentralDirectoryHeader describes one entry in the central directory.
type CentralDirectoryHeader struct {
	VersionMadeBy      uint16
	VersionNeeded      uint16
	Flags              uint16
	CompressionMethod  uint16
	LastModTime        uint16
	LastModDate        uint16
	CRC32              uint32
	CompressedSize     uint32
	UncompressedSize   uint32
	FilenameLength     uint16
	ExtraFieldLength   uint16
	CommentLength      uint16
	DiskNumberStart    uint16
	InternalAttributes uint16
	ExternalAttributes uint32
	LocalHeaderOffset  uint32
	Filename           string
	ExtraField         []byte
	Comment            string
}

// Encode returns the signature, fixed fields, name, extra field and comment.
func (h *CentralDirectoryHeader) Encode() []byte {
	buf := make([]byte, CentralDirectoryHeaderSize+len(h.Filename)+len(h.ExtraField)+len(h.Comment))
	putU32(buf, 0, CentralDirectorySignature)
	putU16(buf, 4, h.VersionMadeBy)
	putU16(buf, 6, h.VersionNeeded)
	putU16(buf, 8, h.Flags)
	putU16(buf, 10, h.CompressionMethod)
	putU16(buf, 12, h.LastModTime)
	putU16(buf, 14, h.LastModDate)
	putU32(buf, 16, h.CRC32)
	putU32(buf, 20, h.CompressedSize)
	putU32(buf, 24, h.UncompressedSize)
	putU16(buf, 28, uint16(len(h.Filename)))
	putU16(buf, 30, uint16(len(h.ExtraField)))
	putU16(buf, 32, uint16(len(h.Comment)))
	putU16(buf, 34, h.DiskNumberStart)
	putU16(buf, 36, h.InternalAttributes)
	putU32(buf, 38, h.ExternalAttributes)
	putU32(buf, 42, h.LocalHeaderOffset)
	n := CentralDirectoryHeaderSize
	n += copy(buf[n:], h.Filename)
	n += copy(buf[n:], h.ExtraField)
	copy(buf[n:], h.Comment)
	return buf
}

// storedLocalHeader describes a store-method entry with no timestamp.
func storedLocalHeader(name string, crc, size uint32) *LocalFileHeader {
	return &LocalFileHeader{
		VersionNeeded:    versionStore,
		CRC32:            crc,
		CompressedSize:   size,
		UncompressedSize: size,
		FilenameLength:   uint16(len(name)),
		Filename:         name,
	}
}

// storedDirectoryHeader mirrors local for the central directory.
func storedDirectoryHeader(local *LocalFileHeader, offset uint32) *CentralDirectoryHeader {
	return &CentralDirectoryHeader{
		VersionMadeBy:     versionStore,
		VersionNeeded:     local.VersionNeeded,
		Flags:             local.Flags,
		CompressionMethod: local.CompressionMethod,
		LastModTime:       local.LastModTime,
		LastModDate:       local.LastModDate,
		CRC32:             local.CRC32,
		CompressedSize:    local.CompressedSize,
		UncompressedSize:  local.UncompressedSize,
		FilenameLength:    local.FilenameLength,
		LocalHeaderOffset: offset,
		Filename:          local.Filename,
	}
}
