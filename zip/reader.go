package zip

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// maxCommentSize bounds the backwards search for the end record.
const maxCommentSize = 65535

// Reader gives access to the entries of an archive, in directory order.
type Reader struct {
	EOCD  *EndOfCentralDirectory
	Files []*File
}

// File is one central directory entry. Its data is read on demand.
type File struct {
	CentralDirectoryHeader
	Name string

	r    io.ReaderAt
	size int64
}

// NewReader reads the end record and central directory of the size bytes in r.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	eocd, err := readEOCD(r, size)
	if err != nil {
		return nil, err
	}

	zr := &Reader{EOCD: eocd, Files: make([]*File, 0, eocd.TotalEntries)}
	offset := int64(eocd.CentralDirOffset)
	for i := 0; i < int(eocd.TotalEntries); i++ {
		cd, next, err := readCentralDirectoryEntry(r, size, offset)
		if err != nil {
			return nil, err
		}
		zr.Files = append(zr.Files, &File{CentralDirectoryHeader: *cd, Name: cd.Filename, r: r, size: size})
		offset = next
	}
	return zr, nil
}

func readEOCD(r io.ReaderAt, size int64) (*EndOfCentralDirectory, error) {
	if size < EOCDMinSize {
		return nil, fmt.Errorf("%w: %d bytes is too small", ErrFormat, size)
	}

	searchStart := size - EOCDMinSize - maxCommentSize
	if searchStart < 0 {
		searchStart = 0
	}
	buf := make([]byte, size-searchStart)
	if err := readFullAt(r, buf, searchStart); err != nil {
		return nil, err
	}

	signature := []byte{0x50, 0x4b, 0x05, 0x06}
	sigPos := bytes.LastIndex(buf, signature)
	if sigPos < 0 || len(buf)-sigPos < EOCDMinSize {
		return nil, fmt.Errorf("%w: end of central directory not found", ErrFormat)
	}

	var fixed struct {
		DiskNumber       uint16
		DiskWithCDStart  uint16
		EntriesOnDisk    uint16
		TotalEntries     uint16
		CentralDirSize   uint32
		CentralDirOffset uint32
		CommentLength    uint16
	}
	if err := binary.Read(bytes.NewReader(buf[sigPos+4:]), binary.LittleEndian, &fixed); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	eocd := &EndOfCentralDirectory{
		DiskNumber:       fixed.DiskNumber,
		DiskWithCDStart:  fixed.DiskWithCDStart,
		EntriesOnDisk:    fixed.EntriesOnDisk,
		TotalEntries:     fixed.TotalEntries,
		CentralDirSize:   fixed.CentralDirSize,
		CentralDirOffset: fixed.CentralDirOffset,
		CommentLength:    fixed.CommentLength,
	}
	commentStart := sigPos + EOCDMinSize
	if commentStart+int(eocd.CommentLength) > len(buf) {
		return nil, fmt.Errorf("%w: truncated archive comment", ErrFormat)
	}
	eocd.Comment = string(buf[commentStart : commentStart+int(eocd.CommentLength)])

	if int64(eocd.CentralDirOffset)+int64(eocd.CentralDirSize) > searchStart+int64(sigPos) {
		return nil, fmt.Errorf("%w: central directory overlaps end record", ErrFormat)
	}
	return eocd, nil
}

func readCentralDirectoryEntry(r io.ReaderAt, size, offset int64) (*CentralDirectoryHeader, int64, error) {
	sr := io.NewSectionReader(r, offset, size-offset)

	var signature uint32
	if err := binary.Read(sr, binary.LittleEndian, &signature); err != nil {
		return nil, 0, fmt.Errorf("%w: central directory entry at %d: %w", ErrFormat, offset, err)
	}
	if signature != CentralDirectorySignature {
		return nil, 0, fmt.Errorf("%w: invalid central directory signature %#x at %d", ErrFormat, signature, offset)
	}

	var fixed struct {
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
	}
	if err := binary.Read(sr, binary.LittleEndian, &fixed); err != nil {
		return nil, 0, fmt.Errorf("%w: central directory entry at %d: %w", ErrFormat, offset, err)
	}

	variable := make([]byte, int(fixed.FilenameLength)+int(fixed.ExtraFieldLength)+int(fixed.CommentLength))
	if _, err := io.ReadFull(sr, variable); err != nil {
		return nil, 0, fmt.Errorf("%w: central directory entry at %d: %w", ErrFormat, offset, err)
	}
	nameEnd := int(fixed.FilenameLength)
	extraEnd := nameEnd + int(fixed.ExtraFieldLength)

	cd := &CentralDirectoryHeader{
		VersionMadeBy:      fixed.VersionMadeBy,
		VersionNeeded:      fixed.VersionNeeded,
		Flags:              fixed.Flags,
		CompressionMethod:  fixed.CompressionMethod,
		LastModTime:        fixed.LastModTime,
		LastModDate:        fixed.LastModDate,
		CRC32:              fixed.CRC32,
		CompressedSize:     fixed.CompressedSize,
		UncompressedSize:   fixed.UncompressedSize,
		FilenameLength:     fixed.FilenameLength,
		ExtraFieldLength:   fixed.ExtraFieldLength,
		CommentLength:      fixed.CommentLength,
		DiskNumberStart:    fixed.DiskNumberStart,
		InternalAttributes: fixed.InternalAttributes,
		ExternalAttributes: fixed.ExternalAttributes,
		LocalHeaderOffset:  fixed.LocalHeaderOffset,
		Filename:           string(variable[:nameEnd]),
		ExtraField:         variable[nameEnd:extraEnd],
		Comment:            string(variable[extraEnd:]),
	}

	next := offset + CentralDirectoryHeaderSize + int64(len(variable))
	return cd, next, nil
}

// readLocalFileHeader returns the header at offset and the offset of the
// entry data that follows it.
func readLocalFileHeader(r io.ReaderAt, offset int64) (*LocalFileHeader, int64, error) {
	fixedBuf := make([]byte, LocalFileHeaderSize)
	if err := readFullAt(r, fixedBuf, offset); err != nil {
		return nil, 0, fmt.Errorf("%w: local header at %d: %w", ErrFormat, offset, err)
	}
	sr := bytes.NewReader(fixedBuf)

	var signature uint32
	if err := binary.Read(sr, binary.LittleEndian, &signature); err != nil {
		return nil, 0, err
	}
	if signature != LocalFileHeaderSignature {
		return nil, 0, fmt.Errorf("%w: invalid local header signature %#x at %d", ErrFormat, signature, offset)
	}

	var fixed struct {
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
	}
	if err := binary.Read(sr, binary.LittleEndian, &fixed); err != nil {
		return nil, 0, err
	}

	variable := make([]byte, int(fixed.FilenameLength)+int(fixed.ExtraFieldLength))
	if err := readFullAt(r, variable, offset+LocalFileHeaderSize); err != nil {
		return nil, 0, fmt.Errorf("%w: local header at %d: %w", ErrFormat, offset, err)
	}

	lh := &LocalFileHeader{
		VersionNeeded:     fixed.VersionNeeded,
		Flags:             fixed.Flags,
		CompressionMethod: fixed.CompressionMethod,
		LastModTime:       fixed.LastModTime,
		LastModDate:       fixed.LastModDate,
		CRC32:             fixed.CRC32,
		CompressedSize:    fixed.CompressedSize,
		UncompressedSize:  fixed.UncompressedSize,
		FilenameLength:    fixed.FilenameLength,
		ExtraFieldLength:  fixed.ExtraFieldLength,
		Filename:          string(variable[:fixed.FilenameLength]),
		ExtraField:        variable[fixed.FilenameLength:],
	}
	return lh, offset + LocalFileHeaderSize + int64(len(variable)), nil
}

// ReadAll returns the entry content after checking its size and CRC-32
// against the central directory.
func (f *File) ReadAll() ([]byte, error) {
	local, dataOffset, err := readLocalFileHeader(f.r, int64(f.LocalHeaderOffset))
	if err != nil {
		return nil, err
	}
	if local.Filename != f.Name {
		return nil, fmt.Errorf("%w: local header name %q does not match %q", ErrFormat, local.Filename, f.Name)
	}

	// Sizes come from the central directory; the local copy may be zero
	// when a data descriptor follows the data.
	if dataOffset+int64(f.CompressedSize) > f.size {
		return nil, fmt.Errorf("%w: data of %q runs past the end of the archive", ErrFormat, f.Name)
	}
	stored := make([]byte, f.CompressedSize)
	if err := readFullAt(f.r, stored, dataOffset); err != nil {
		return nil, fmt.Errorf("%w: data of %q: %w", ErrFormat, f.Name, err)
	}

	var content []byte
	switch f.CompressionMethod {
	case MethodStore:
		content = stored
	case MethodDeflate:
		fr := flate.NewReader(bytes.NewReader(stored))
		// One byte past the declared size is enough to detect a mismatch.
		content, err = io.ReadAll(io.LimitReader(fr, int64(f.UncompressedSize)+1))
		fr.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: inflating %q: %w", ErrFormat, f.Name, err)
		}
	default:
		return nil, fmt.Errorf("%w: method %d for %q", ErrAlgorithm, f.CompressionMethod, f.Name)
	}

	if uint64(len(content)) != uint64(f.UncompressedSize) {
		return nil, fmt.Errorf("%w: %q is %d bytes, expected %d", ErrChecksum, f.Name, len(content), f.UncompressedSize)
	}
	if crc := Checksum(content); crc != f.CRC32 {
		return nil, fmt.Errorf("%w: %q has crc %08x, expected %08x", ErrChecksum, f.Name, crc, f.CRC32)
	}
	return content, nil
}

// readFullAt fills buf from r at off. A short read is io.ErrUnexpectedEOF.
func readFullAt(r io.ReaderAt, buf []byte, off int64) error {
	n, err := r.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
