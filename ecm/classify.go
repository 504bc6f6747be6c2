package ecm

// Window-relative byte offsets used by the EDC gates below. A Mode 1
// window starts at sector offset 0; a Mode 2 window starts at sector
// offset 16, just past the sync/address/mode header.
const (
	offMode2Form1EDC = 0x808 // 2056: end of Mode 2 Form 1's EDC'd region
	offMode1EDCEnd   = 0x808 + 8
	offMode1EDC      = 0x810 // 2064: end of Mode 1's EDC'd region
	offMode2Form2End = 0x810 + 0x10C
	offMode2Form2EDC = 0x91C // 2332: end of Mode 2 Form 2's EDC'd region
)

// classify decides which (if any) of the three known CD-ROM sector shapes
// the window matches, anchored at the caller's current encode position. A
// window shorter than XASectorSize is always literal. Gates run short to
// long: the sync/sub-header byte comparisons and EDC checks reject almost
// every non-matching window before the costlier ECC verification runs.
// Candidates are tried in Mode 1 -> Mode 2 Form 1 -> Mode 2 Form 2 order, so
// the three shapes are always mutually exclusive on one window.
func classify(window []byte) RecordType {
	if len(window) < XASectorSize {
		return TypeLiteral
	}

	canMode1 := len(window) >= SectorSize && isMode1Candidate(window)
	canMode2 := window[0] == window[4] && window[1] == window[5] &&
		window[2] == window[6] && window[3] == window[7]
	canForm1 := canMode2
	canForm2 := canMode2
	if !canMode1 && !canMode2 {
		return TypeLiteral
	}

	edc := edcUpdate(0, window[0:offMode2Form1EDC])
	if canForm1 && !edcMatches(edc, window[offMode2Form1EDC:offMode2Form1EDC+4]) {
		canForm1 = false
	}

	edc = edcUpdate(edc, window[offMode2Form1EDC:offMode1EDCEnd])
	if canMode1 && !edcMatches(edc, window[offMode1EDC:offMode1EDC+4]) {
		canMode1 = false
	}

	edc = edcUpdate(edc, window[offMode1EDC:offMode2Form2End])
	if canForm2 && !edcMatches(edc, window[offMode2Form2EDC:offMode2Form2EDC+4]) {
		canForm2 = false
	}

	if canMode1 && !eccVerify(window[0:SectorSize], false) {
		canMode1 = false
	}
	if canForm1 && !verifyMode2ECC(window) {
		canForm1 = false
	}

	switch {
	case canMode1:
		return TypeMode1
	case canForm1:
		return TypeMode2Form1
	case canForm2:
		return TypeMode2Form2
	default:
		return TypeLiteral
	}
}

func edcMatches(edc uint32, want []byte) bool {
	got := edcBytes(edc)
	return got[0] == want[0] && got[1] == want[1] && got[2] == want[2] && got[3] == want[3]
}

func isMode1Candidate(window []byte) bool {
	if window[0] != 0x00 {
		return false
	}
	for i := 1; i <= 10; i++ {
		if window[i] != 0xFF {
			return false
		}
	}
	if window[11] != 0x00 || window[15] != 0x01 {
		return false
	}
	for i := 0x814; i < 0x81C; i++ {
		if window[i] != 0x00 {
			return false
		}
	}
	return true
}

// verifyMode2ECC checks P/Q ECC for a 2336-byte Mode 2 window as if it were
// a full 2352-byte sector starting 0x10 bytes earlier, matching Mode 2
// Form 1's zeroed-address ECC semantics.
func verifyMode2ECC(window []byte) bool {
	var scratch [SectorSize]byte
	copy(scratch[0x10:], window[:XASectorSize])
	return eccVerify(scratch[:], true)
}
