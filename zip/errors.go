package zip

import "errors"

var (
	// ErrCapacityExceeded is returned when an archive would overflow a
	// 16-bit count or 32-bit size/offset field of the classic format.
	ErrCapacityExceeded = errors.New("zip: capacity exceeded")

	// ErrClosed is returned when writing to a ZipWriter after Close.
	ErrClosed = errors.New("zip: writer closed")

	// ErrFormat is returned when input is not a readable zip archive.
	ErrFormat = errors.New("zip: not a valid zip file")

	// ErrChecksum is returned when entry data does not match its CRC-32 or size.
	ErrChecksum = errors.New("zip: checksum error")

	// ErrAlgorithm is returned for entries using an unsupported compression method.
	ErrAlgorithm = errors.New("zip: unsupported compression algorithm")
)
