package ecm

// RecordType identifies the shape of one run in an ECM stream: a span of
// literal bytes, or a run of sectors of one of the three recognized CD-ROM
// shapes.
type RecordType uint8

const (
	TypeLiteral    RecordType = 0
	TypeMode1      RecordType = 1
	TypeMode2Form1 RecordType = 2
	TypeMode2Form2 RecordType = 3
)

// String returns a short human-readable label, used in verbose CLI output.
func (t RecordType) String() string {
	switch t {
	case TypeLiteral:
		return "literal"
	case TypeMode1:
		return "mode1"
	case TypeMode2Form1:
		return "mode2form1"
	case TypeMode2Form2:
		return "mode2form2"
	default:
		return "unknown"
	}
}

// stride returns the number of input bytes one unit of this record type
// consumes from the source stream.
func (t RecordType) stride() int {
	switch t {
	case TypeMode1:
		return SectorSize
	case TypeMode2Form1, TypeMode2Form2:
		return XASectorSize
	default:
		return 1
	}
}
