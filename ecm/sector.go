package ecm

// Fixed CD-ROM sector sizes and sub-regions this codec recognizes. A full
// sector is 2352 bytes; an XA (Mode 2) sector's logical payload, minus the
// 16-byte sync/address/mode header, is 2336 bytes.
const (
	SectorSize   = 2352
	XASectorSize = 2336
)

// Stripped-payload sizes per record type, as read from / written to an ECM
// stream for one sector of that shape.
const (
	Mode1PayloadSize      = 3 + 2048 // address + user data
	Mode2Form1PayloadSize = 2052     // duplicate sub-header + user data
	Mode2Form2PayloadSize = 2328     // duplicate sub-header + user data
)

// syncPattern is the fixed 12-byte sync mark at the start of every CD-ROM
// sector.
var syncPattern = [12]byte{
	0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00,
}

func fillSync(sector []byte) {
	copy(sector[0:12], syncPattern[:])
}

// synthesizeMode1 reconstructs a full 2352-byte Mode 1 sector into sector
// (sector[:SectorSize] is entirely overwritten) given its stripped payload:
// 3 address bytes followed by 2048 user bytes.
func synthesizeMode1(sector []byte, payload []byte) {
	fillSync(sector)
	copy(sector[12:15], payload[0:3])
	sector[15] = 0x01
	copy(sector[16:2064], payload[3:3+2048])

	edc := edcBytes(edcUpdate(0, sector[0:2064]))
	copy(sector[2064:2068], edc[:])
	for i := 2068; i < 2076; i++ {
		sector[i] = 0
	}
	eccGenerate(sector, false)
}

// synthesizeMode2Form1 reconstructs a full 2352-byte Mode 2 Form 1 sector
// given its stripped payload: the sub-header's second copy followed by 2048
// user bytes. The caller emits sector[16:SectorSize] (2336 bytes).
func synthesizeMode2Form1(sector []byte, payload []byte) {
	fillSync(sector)
	sector[15] = 0x02
	copy(sector[20:2072], payload[0:Mode2Form1PayloadSize])
	copy(sector[16:20], sector[20:24])

	edc := edcBytes(edcUpdate(0, sector[16:2072]))
	copy(sector[2072:2076], edc[:])
	eccGenerate(sector, true)
}

// synthesizeMode2Form2 reconstructs a full 2352-byte Mode 2 Form 2 sector
// given its stripped payload: the sub-header's second copy followed by user
// data. Form 2 has no ECC. The caller emits sector[16:SectorSize] (2336
// bytes).
func synthesizeMode2Form2(sector []byte, payload []byte) {
	fillSync(sector)
	sector[15] = 0x02
	copy(sector[20:2348], payload[0:Mode2Form2PayloadSize])
	copy(sector[16:20], sector[20:24])

	edc := edcBytes(edcUpdate(0, sector[16:2348]))
	copy(sector[2348:2352], edc[:])
}
