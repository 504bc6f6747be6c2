package ecm

import (
	"bytes"
	"testing"
)

func TestWriteHeaderConcreteEncodings(t *testing.T) {
	tests := []struct {
		name  string
		typ   RecordType
		count uint32
		want  []byte
	}{
		{"one literal byte", TypeLiteral, 1, []byte{0x00}},
		{"32 literal bytes", TypeLiteral, 32, []byte{0x7C}},
		{"33 literal bytes", TypeLiteral, 33, []byte{0x80, 0x01}},
		{"one mode1 sector", TypeMode1, 1, []byte{0x01}},
		{"terminator", TypeLiteral, 0, []byte{0xFC, 0xFF, 0xFF, 0xFF, 0x3F}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeHeader(&buf, tt.typ, tt.count); err != nil {
				t.Fatalf("writeHeader: %v", err)
			}
			if !bytes.Equal(buf.Bytes(), tt.want) {
				t.Errorf("writeHeader(%v, %d) = % X, want % X", tt.typ, tt.count, buf.Bytes(), tt.want)
			}
		})
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	counts := []uint32{1, 2, 31, 32, 33, 1000, 1 << 20, 1 << 27}
	types := []RecordType{TypeLiteral, TypeMode1, TypeMode2Form1, TypeMode2Form2}

	for _, typ := range types {
		for _, count := range counts {
			var buf bytes.Buffer
			if err := writeHeader(&buf, typ, count); err != nil {
				t.Fatalf("writeHeader(%v, %d): %v", typ, count, err)
			}
			gotType, gotCount, ok, err := readHeader(&buf)
			if err != nil {
				t.Fatalf("readHeader after writeHeader(%v, %d): %v", typ, count, err)
			}
			if !ok {
				t.Fatalf("readHeader after writeHeader(%v, %d) reported terminator", typ, count)
			}
			if gotType != typ || gotCount != count {
				t.Errorf("round trip (%v, %d) = (%v, %d)", typ, count, gotType, gotCount)
			}
		}
	}
}

func TestReadHeaderDetectsTerminator(t *testing.T) {
	var buf bytes.Buffer
	if err := writeHeader(&buf, TypeLiteral, 0); err != nil {
		t.Fatalf("writeHeader: %v", err)
	}
	_, _, ok, err := readHeader(&buf)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if ok {
		t.Error("readHeader on a terminator record reported ok = true")
	}
}
