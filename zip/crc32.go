package zip

// crcPolynomial is the reversed IEEE 802.3 polynomial used by ZIP.
const crcPolynomial = 0xEDB88320

// crcTable is filled during package initialization and only read afterwards.
var crcTable = func() [256]uint32 {
	var table [256]uint32
	for i := 0; i < 256; i++ {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = (c >> 1) ^ crcPolynomial
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
	return table
}()

// Checksum returns the CRC-32 of data as stored in ZIP headers.
// It is safe to call from multiple goroutines.
func Checksum(data []byte) uint32 {
	crc := uint32(0xFFFFFFFF)
	for _, b := range data {
		crc = crcTable[(crc^uint32(b))&0xFF] ^ (crc >> 8)
	}
	return ^crc
}
