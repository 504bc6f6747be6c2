package ecm

import "testing"

// zeroMode1Sector builds a synthesized Mode 1 sector over all-zero user
// data and address.
func zeroMode1Sector() []byte {
	sector := make([]byte, SectorSize)
	payload := make([]byte, Mode1PayloadSize) // {0,0,0} address + 2048 zero bytes
	synthesizeMode1(sector, payload)
	return sector
}

// mode1SectorWithAddress builds a synthesized Mode 1 sector over the given
// 3-byte address and all-zero user data. Unlike zeroMode1Sector, addr here
// differs from the sync pattern's own leading bytes ({0x00, 0xFF, 0xFF}),
// so it catches a regression where the address payload is accidentally
// read back from the sync prefix at sector offset 0 instead of the real
// address at offset 12.
func mode1SectorWithAddress(addr [3]byte) []byte {
	sector := make([]byte, SectorSize)
	payload := make([]byte, Mode1PayloadSize)
	copy(payload[0:3], addr[:])
	synthesizeMode1(sector, payload)
	return sector
}

func TestSynthesizeMode1RoundTripsThroughClassify(t *testing.T) {
	sector := zeroMode1Sector()

	if got := classify(sector); got != TypeMode1 {
		t.Fatalf("classify(synthesized Mode 1 sector) = %v, want %v", got, TypeMode1)
	}
	if !eccVerify(sector, false) {
		t.Error("eccVerify on synthesized Mode 1 sector = false, want true")
	}
}

func TestSynthesizeMode2Form1RoundTripsThroughClassify(t *testing.T) {
	sector := make([]byte, SectorSize)
	payload := make([]byte, Mode2Form1PayloadSize)
	for i := range payload {
		payload[i] = byte(i)
	}
	synthesizeMode2Form1(sector, payload)

	// classify sees Mode 2 sectors as the 2336-byte window starting at the
	// sub-header, the same bytes the decoder emits for one Form 1 sector.
	if got := classify(sector[16:]); got != TypeMode2Form1 {
		t.Fatalf("classify(synthesized Mode 2 Form 1 window) = %v, want %v", got, TypeMode2Form1)
	}
}

func TestSynthesizeMode2Form2RoundTripsThroughClassify(t *testing.T) {
	sector := make([]byte, SectorSize)
	payload := make([]byte, Mode2Form2PayloadSize)
	for i := range payload {
		payload[i] = byte(i * 3)
	}
	synthesizeMode2Form2(sector, payload)

	if got := classify(sector[16:]); got != TypeMode2Form2 {
		t.Fatalf("classify(synthesized Mode 2 Form 2 window) = %v, want %v", got, TypeMode2Form2)
	}
}

func TestClassifyRejectsShortWindow(t *testing.T) {
	if got := classify(make([]byte, 100)); got != TypeLiteral {
		t.Errorf("classify(100-byte window) = %v, want %v", got, TypeLiteral)
	}
}

func TestClassifyRejectsTamperedSector(t *testing.T) {
	sector := zeroMode1Sector()
	sector[100] ^= 0xFF // corrupt a user-data byte without fixing up EDC/ECC

	if got := classify(sector); got != TypeLiteral {
		t.Errorf("classify(tampered Mode 1 sector) = %v, want %v", got, TypeLiteral)
	}
}
