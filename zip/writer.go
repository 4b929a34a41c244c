package zip

import (
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

// FileEntry is one named blob to store. Content is only read.
type FileEntry struct {
	Path    string
	Content []byte
}

// preparedEntry holds everything about an entry that does not depend on
// its position in the archive.
type preparedEntry struct {
	header *LocalFileHeader
	local  []byte
	data   []byte
}

// Build returns a complete store-only archive holding entries in the given
// order. Paths are used verbatim; duplicates are kept.
//
// Build fails with ErrCapacityExceeded instead of truncating when a count,
// size or offset does not fit the classic format.
func Build(entries []FileEntry, opts ...Option) ([]byte, error) {
	cfg := newConfig(opts)
	if uint64(len(entries)) > cfg.limits.entries {
		return nil, fmt.Errorf("%w: %d entries, limit is %d", ErrCapacityExceeded, len(entries), cfg.limits.entries)
	}
	cfg.log().Debug("building archive", "entries", len(entries), "concurrency", cfg.concurrency)

	prepared, err := cfg.prepareAll(entries)
	if err != nil {
		return nil, err
	}

	// Offsets are a running sum over the preceding entries, so this pass
	// stays sequential even when preparation ran in parallel.
	directory := make([][]byte, len(prepared))
	var offset, directorySize uint64
	for i, p := range prepared {
		if offset > cfg.limits.offset {
			return nil, fmt.Errorf("%w: %q would start at offset %d, limit is %d",
				ErrCapacityExceeded, p.header.Filename, offset, cfg.limits.offset)
		}
		directory[i] = storedDirectoryHeader(p.header, uint32(offset)).Encode()
		offset += uint64(len(p.local) + len(p.data))
		directorySize += uint64(len(directory[i]))
	}

	summary, err := cfg.summary(len(prepared), offset, directorySize)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, offset+directorySize+uint64(len(summary)))
	for _, p := range prepared {
		out = append(out, p.local...)
		out = append(out, p.data...)
	}
	for _, d := range directory {
		out = append(out, d...)
	}
	out = append(out, summary...)

	cfg.log().Debug("archive built", "bytes", len(out), "directory_offset", offset, "directory_size", directorySize)
	return out, nil
}

func (c *config) prepareAll(entries []FileEntry) ([]preparedEntry, error) {
	prepared := make([]preparedEntry, len(entries))
	if c.concurrency < 2 {
		for i, e := range entries {
			p, err := c.prepare(e)
			if err != nil {
				return nil, err
			}
			prepared[i] = p
		}
		return prepared, nil
	}

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i := range entries {
		g.Go(func() error {
			p, err := c.prepare(entries[i])
			if err != nil {
				return err
			}
			prepared[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return prepared, nil
}

func (c *config) prepare(e FileEntry) (preparedEntry, error) {
	if uint64(len(e.Path)) > c.limits.name {
		return preparedEntry{}, fmt.Errorf("%w: name of %d bytes, limit is %d", ErrCapacityExceeded, len(e.Path), c.limits.name)
	}
	if uint64(len(e.Content)) > c.limits.size {
		return preparedEntry{}, fmt.Errorf("%w: %q is %d bytes, limit is %d", ErrCapacityExceeded, e.Path, len(e.Content), c.limits.size)
	}
	header := storedLocalHeader(e.Path, Checksum(e.Content), uint32(len(e.Content)))
	return preparedEntry{header: header, local: header.Encode(), data: e.Content}, nil
}

// summary encodes the end of central directory record.
func (c *config) summary(count int, directoryOffset, directorySize uint64) ([]byte, error) {
	if directoryOffset > c.limits.offset {
		return nil, fmt.Errorf("%w: central directory at offset %d, limit is %d", ErrCapacityExceeded, directoryOffset, c.limits.offset)
	}
	if directorySize > c.limits.size {
		return nil, fmt.Errorf("%w: central directory of %d bytes, limit is %d", ErrCapacityExceeded, directorySize, c.limits.size)
	}
	eocd := EndOfCentralDirectory{
		EntriesOnDisk:    uint16(count),
		TotalEntries:     uint16(count),
		CentralDirSize:   uint32(directorySize),
		CentralDirOffset: uint32(directoryOffset),
	}
	return eocd.Encode(), nil
}

// ZipWriter streams the same archive Build produces to an io.Writer.
// Local headers and data are written by AddFile; Close writes the central
// directory. A ZipWriter is not safe for concurrent use.
type ZipWriter struct {
	w      io.Writer
	cfg    config
	files  []*CentralDirectoryHeader
	offset uint64
	closed bool
	err    error // first write error; the archive is unusable after it
}

// NewZipWriter returns a ZipWriter writing to w.
func NewZipWriter(w io.Writer, opts ...Option) *ZipWriter {
	return &ZipWriter{
		w:     w,
		cfg:   newConfig(opts),
		files: make([]*CentralDirectoryHeader, 0),
	}
}

// AddFile writes the local header and content of one stored entry.
// After a failed write every later call returns that error.
func (zw *ZipWriter) AddFile(name string, data []byte) error {
	if zw.closed {
		return ErrClosed
	}
	if zw.err != nil {
		return zw.err
	}
	if uint64(len(zw.files)) >= zw.cfg.limits.entries {
		return fmt.Errorf("%w: more than %d entries", ErrCapacityExceeded, zw.cfg.limits.entries)
	}
	if zw.offset > zw.cfg.limits.offset {
		return fmt.Errorf("%w: %q would start at offset %d, limit is %d", ErrCapacityExceeded, name, zw.offset, zw.cfg.limits.offset)
	}

	p, err := zw.cfg.prepare(FileEntry{Path: name, Content: data})
	if err != nil {
		return err
	}
	if err := zw.write(p.local, p.data); err != nil {
		return err
	}

	zw.files = append(zw.files, storedDirectoryHeader(p.header, uint32(zw.offset)))
	zw.cfg.log().Debug("entry written", "name", name, "offset", zw.offset, "size", len(data))
	zw.offset += uint64(len(p.local) + len(p.data))
	return nil
}

// Close writes the central directory and end record. It does not close
// the underlying writer.
func (zw *ZipWriter) Close() error {
	if zw.closed {
		return ErrClosed
	}
	zw.closed = true
	if zw.err != nil {
		return zw.err
	}

	directory := make([][]byte, len(zw.files))
	var directorySize uint64
	for i, file := range zw.files {
		directory[i] = file.Encode()
		directorySize += uint64(len(directory[i]))
	}

	summary, err := zw.cfg.summary(len(zw.files), zw.offset, directorySize)
	if err != nil {
		return err
	}
	return zw.write(append(directory, summary)...)
}

func (zw *ZipWriter) write(chunks ...[]byte) error {
	for _, chunk := range chunks {
		if _, err := zw.w.Write(chunk); err != nil {
			zw.err = err
			return err
		}
	}
	return nil
}
