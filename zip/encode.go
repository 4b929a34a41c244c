package zip

import "encoding/binary"

// putU16 writes v little-endian at buf[off:off+2].
func putU16(buf []byte, off int, v uint16) {
	binary.LittleEndian.PutUint16(buf[off:off+2], v)
}

// putU32 writes v little-endian at buf[off:off+4].
func putU32(buf []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(buf[off:off+4], v)
}
