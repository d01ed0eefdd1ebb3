package ipf

// crc32Table is the standard CRC-32 table for polynomial 0xEDB88320,
// built the same way as the sibling archive-format codecs in this corpus
// (e.g. an MPQ reader's crc32 table): reflected polynomial, 256 entries,
// 8 shifts per byte.
var crc32Table = func() [256]uint32 {
	const poly = 0xEDB88320

	var table [256]uint32
	for i := range table {
		crc := uint32(i)
		for range 8 {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		table[i] = crc
	}

	return table
}()

// crc32Step advances crc by one byte using the raw table lookup, with no
// initial or final complement. This is the inner transform the PKWARE key
// schedule depends on: it is NOT the same value as crc32 of a single byte,
// which additionally complements before and after.
func crc32Step(crc uint32, b byte) uint32 {
	return crc32Table[byte(crc)^b] ^ (crc >> 8)
}

// crc32Checksum computes the one-shot CRC-32 of data starting from init,
// with the standard initial/final complement. init is normally 0.
func crc32Checksum(init uint32, data []byte) uint32 {
	crc := init ^ 0xFFFFFFFF
	for _, b := range data {
		crc = crc32Step(crc, b)
	}

	return crc ^ 0xFFFFFFFF
}
