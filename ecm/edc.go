package ecm

// edcUpdate folds bytes into a running EDC checksum. Passing seed 0 starts a
// fresh checksum; because the fold is associative over byte order, the
// result of edcUpdate(edcUpdate(0, a), b) equals edcUpdate(0, append(a, b...))
// for any split of the input.
func edcUpdate(seed uint32, data []byte) uint32 {
	for _, b := range data {
		seed = (seed >> 8) ^ edcTable[byte(seed)^b]
	}
	return seed
}

// edcBytes returns the little-endian 4-byte encoding of an EDC value.
func edcBytes(edc uint32) [4]byte {
	return [4]byte{
		byte(edc),
		byte(edc >> 8),
		byte(edc >> 16),
		byte(edc >> 24),
	}
}
