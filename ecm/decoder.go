package ecm

import (
	"bufio"
	"encoding/binary"
	"io"
)

// DecodeStats summarizes one Decode call.
type DecodeStats struct {
	BytesIn  int64
	BytesOut int64
}

// Decoder reverses Encoder: given an ECM container, it reconstructs the
// original byte stream exactly.
type Decoder struct {
	// Progress, if non-nil, is invoked periodically with the number of
	// container bytes consumed so far.
	Progress ProgressFunc

	// InputSize is the total size of the encoded container when known, or
	// -1. Passed through verbatim to Progress.
	InputSize int64
}

const literalChunk = 32 * 1024

// Decode reads an ECM container from r, writes the reconstructed original
// bytes to w, and returns summary statistics. The trailing whole-stream
// EDC is verified against the bytes actually reconstructed; a mismatch is
// reported as *EDCMismatchError and nothing past the bad trailer is
// trusted.
func (d *Decoder) Decode(r io.Reader, w io.Writer) (DecodeStats, error) {
	var stats DecodeStats

	cr := &countingReader{r: r}
	br := bufio.NewReaderSize(cr, literalChunk)
	cw := &countingWriter{w: w}

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return stats, ErrBadMagic
		}
		return stats, err
	}
	if magic != Magic {
		return stats, ErrBadMagic
	}

	var streamEDC uint32
	var sector [SectorSize]byte
	chunk := make([]byte, literalChunk)

	reportProgress := func() {
		if d.Progress != nil {
			d.Progress(cr.n, d.InputSize)
		}
	}

	for {
		t, count, ok, err := readHeader(br)
		if err != nil {
			if err == io.EOF {
				return stats, io.ErrUnexpectedEOF
			}
			return stats, err
		}
		if !ok {
			break
		}

		switch t {
		case TypeLiteral:
			remaining := count
			for remaining > 0 {
				n := uint32(len(chunk))
				if remaining < n {
					n = remaining
				}
				if _, err := io.ReadFull(br, chunk[:n]); err != nil {
					return stats, wrapShortRead(err)
				}
				streamEDC = edcUpdate(streamEDC, chunk[:n])
				if _, err := cw.Write(chunk[:n]); err != nil {
					return stats, err
				}
				remaining -= n
			}
		case TypeMode1:
			for i := uint32(0); i < count; i++ {
				var tmp [Mode1PayloadSize]byte
				if _, err := io.ReadFull(br, tmp[:]); err != nil {
					return stats, wrapShortRead(err)
				}
				synthesizeMode1(sector[:], tmp[:])
				streamEDC = edcUpdate(streamEDC, sector[:])
				if _, err := cw.Write(sector[:]); err != nil {
					return stats, err
				}
			}
		case TypeMode2Form1:
			for i := uint32(0); i < count; i++ {
				var tmp [Mode2Form1PayloadSize]byte
				if _, err := io.ReadFull(br, tmp[:]); err != nil {
					return stats, wrapShortRead(err)
				}
				synthesizeMode2Form1(sector[:], tmp[:])
				streamEDC = edcUpdate(streamEDC, sector[16:SectorSize])
				if _, err := cw.Write(sector[16:SectorSize]); err != nil {
					return stats, err
				}
			}
		case TypeMode2Form2:
			for i := uint32(0); i < count; i++ {
				var tmp [Mode2Form2PayloadSize]byte
				if _, err := io.ReadFull(br, tmp[:]); err != nil {
					return stats, wrapShortRead(err)
				}
				synthesizeMode2Form2(sector[:], tmp[:])
				streamEDC = edcUpdate(streamEDC, sector[16:SectorSize])
				if _, err := cw.Write(sector[16:SectorSize]); err != nil {
					return stats, err
				}
			}
		default:
			return stats, ErrCorruptStream
		}
		reportProgress()
	}

	var trailer [4]byte
	if _, err := io.ReadFull(br, trailer[:]); err != nil {
		return stats, wrapShortRead(err)
	}
	want := binary.LittleEndian.Uint32(trailer[:])
	if want != streamEDC {
		return stats, &EDCMismatchError{Want: want, Got: streamEDC}
	}

	stats.BytesIn = cr.n
	stats.BytesOut = cw.n
	return stats, nil
}

func wrapShortRead(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// countingReader tallies bytes read from an underlying io.Reader.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
