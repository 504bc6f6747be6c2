package ecm

// eccLayout parameterizes one interleaved Reed-Solomon-style P/Q pass over a
// sector body: majorCount output bytes, each folding minorCount source bytes
// spaced majorMult/minorInc apart (and wrapping within the region).
type eccLayout struct {
	majorCount uint32
	minorCount uint32
	majorMult  uint32
	minorInc   uint32
}

var (
	eccP = eccLayout{majorCount: 86, minorCount: 24, majorMult: 2, minorInc: 86}
	eccQ = eccLayout{majorCount: 52, minorCount: 43, majorMult: 86, minorInc: 88}
)

// Sector byte offsets for the address, P-ECC, and Q-ECC regions, used by
// both the generate and verify passes below.
const (
	offAddress = 0x00C
	offPECC    = 0x81C
	offQECC    = 0x8C8
	lenPECC    = 172
	lenQECC    = 104
)

// eccCompute runs one P or Q pass over src (which must have at least
// layout.majorCount*layout.minorCount bytes available) and writes the
// majorCount parity bytes plus majorCount "ecc_a XOR ecc_b" bytes into dest.
func eccCompute(src []byte, layout eccLayout, dest []byte) {
	size := layout.majorCount * layout.minorCount
	for major := uint32(0); major < layout.majorCount; major++ {
		index := (major>>1)*layout.majorMult + (major & 1)
		var a, b byte
		for minor := uint32(0); minor < layout.minorCount; minor++ {
			v := src[index]
			index += layout.minorInc
			if index >= size {
				index -= size
			}
			a ^= v
			b ^= v
			a = eccForward[a]
		}
		a = eccBackward[eccForward[a]^b]
		dest[major] = a
		dest[major+layout.majorCount] = a ^ b
	}
}

// eccVerifyLayout is eccCompute but compares against existing bytes instead
// of writing, returning false as soon as any byte disagrees.
func eccVerifyLayout(src []byte, layout eccLayout, want []byte) bool {
	size := layout.majorCount * layout.minorCount
	for major := uint32(0); major < layout.majorCount; major++ {
		index := (major>>1)*layout.majorMult + (major & 1)
		var a, b byte
		for minor := uint32(0); minor < layout.minorCount; minor++ {
			v := src[index]
			index += layout.minorInc
			if index >= size {
				index -= size
			}
			a ^= v
			b ^= v
			a = eccForward[a]
		}
		a = eccBackward[eccForward[a]^b]
		if want[major] != a {
			return false
		}
		if want[major+layout.majorCount] != a^b {
			return false
		}
	}
	return true
}

// withZeroedAddress runs fn with sector[12:16] temporarily zeroed (for Mode 2
// Form 1's ECC, which treats the address region as absent), restoring the
// original bytes afterward regardless of what fn does.
func withZeroedAddress(sector []byte, zero bool, fn func()) {
	if !zero {
		fn()
		return
	}
	var saved [4]byte
	copy(saved[:], sector[12:16])
	for i := 12; i < 16; i++ {
		sector[i] = 0
	}
	fn()
	copy(sector[12:16], saved[:])
}

// eccGenerate computes P and Q ECC bytes for a full 2352-byte sector and
// writes them into sector[offPECC:offPECC+lenPECC] and
// sector[offQECC:offQECC+lenQECC]. zeroAddress selects the Mode 2 Form 1
// variant where the address bytes are excluded from the computation.
func eccGenerate(sector []byte, zeroAddress bool) {
	withZeroedAddress(sector, zeroAddress, func() {
		eccCompute(sector[offAddress:], eccP, sector[offPECC:offPECC+lenPECC])
		eccCompute(sector[offAddress:], eccQ, sector[offQECC:offQECC+lenQECC])
	})
}

// eccVerify checks the P and Q ECC bytes already present in a full
// 2352-byte sector, returning false on the first mismatch.
func eccVerify(sector []byte, zeroAddress bool) bool {
	ok := false
	withZeroedAddress(sector, zeroAddress, func() {
		ok = eccVerifyLayout(sector[offAddress:], eccP, sector[offPECC:offPECC+lenPECC]) &&
			eccVerifyLayout(sector[offAddress:], eccQ, sector[offQECC:offQECC+lenQECC])
	})
	return ok
}
