package ecm

import (
	"bufio"
	"context"
	"io"

	"golang.org/x/sync/errgroup"
)

// refillChunk bounds how much new input is pulled into the lookahead
// buffer per refill; it also sets the granularity of progress reporting.
const refillChunk = 1 << 18

// maxRunSpan caps how many raw input bytes an open run may hold in the
// lookahead buffer before it is flushed. A run that grows past this is
// split into consecutive records of the same type, which decode to the
// same bytes, so an arbitrarily long sector run never pins the whole
// input in memory.
//
// One Encode call's working set is one refillChunk held by the prefetch
// goroutine, at most maxRunSpan plus one appended refillChunk in the
// lookahead buffer, and outBufSize in the output buffer. The constants
// are sized so that sum stays under 1 MiB.
const maxRunSpan = 1 << 18

// outBufSize is the size of the buffered writer in front of the output
// stream.
const outBufSize = 1 << 16

// chunk is one refillChunk-sized (or shorter, at EOF) slab of input bytes
// read ahead of the consumer that classifies and flushes them.
type chunk struct {
	data []byte
	eof  bool
}

// prefetchChunks starts a single background reader that pulls refillChunk
// bytes at a time from r and hands them to the consumer over an
// unbuffered channel, so at most one chunk is read ahead of the consumer.
// This lets the next disk/pipe read run concurrently
// with the consumer classifying and flushing the run it already has
// buffered. It only overlaps I/O: the classifier and run coalescer still
// see every byte strictly in input order, so run boundaries stay
// sector-aligned.
func prefetchChunks(ctx context.Context, r io.Reader, g *errgroup.Group) <-chan chunk {
	out := make(chan chunk)
	g.Go(func() error {
		defer close(out)
		for {
			buf := make([]byte, refillChunk)
			n, err := io.ReadFull(r, buf)
			eof := err == io.ErrUnexpectedEOF || err == io.EOF
			if err != nil && !eof {
				return err
			}
			select {
			case out <- chunk{data: buf[:n], eof: eof}:
			case <-ctx.Done():
				return ctx.Err()
			}
			if eof {
				return nil
			}
		}
	})
	return out
}

// EncodeStats summarizes one Encode call.
type EncodeStats struct {
	BytesIn  int64
	BytesOut int64

	LiteralBytes      int64
	Mode1Sectors      int64
	Mode2Form1Sectors int64
	Mode2Form2Sectors int64
}

// Encoder converts a raw byte stream into an ECM container. A zero-value
// Encoder is ready to use.
type Encoder struct {
	// Progress, if non-nil, is invoked after each lookahead-buffer refill
	// with the number of input bytes consumed so far.
	Progress ProgressFunc

	// InputSize is the total size of the input when known, or -1. Passed
	// through verbatim to Progress.
	InputSize int64
}

// Encode reads all of r, writes its ECM encoding to w, and returns summary
// statistics. The lookahead buffer is allocated fresh for this call and
// shared by no other goroutine or invocation.
func (e *Encoder) Encode(r io.Reader, w io.Writer) (EncodeStats, error) {
	var stats EncodeStats

	cw := &countingWriter{w: w}
	bw := bufio.NewWriterSize(cw, outBufSize)

	if _, err := bw.Write(Magic[:]); err != nil {
		return stats, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	chunks := prefetchChunks(gctx, r, g)

	buf := make([]byte, 0, SectorSize+refillChunk)
	eof := false
	consumed := int64(0)
	pos := 0
	runStart := 0
	runType := TypeLiteral
	runCount := uint32(0)
	var streamEDC uint32

	refill := func() error {
		if eof {
			return nil
		}
		if runStart > 0 {
			copy(buf, buf[runStart:])
			buf = buf[:len(buf)-runStart]
			pos -= runStart
			runStart = 0
		}
		c, ok := <-chunks
		if !ok {
			// The channel only closes without a final chunk when the
			// prefetch goroutine hit a real read error; g.Wait() returns
			// it immediately since the goroutine has already exited.
			if err := g.Wait(); err != nil {
				return err
			}
			eof = true
			return nil
		}
		if cap(buf)-len(buf) < len(c.data) {
			grown := make([]byte, len(buf), len(buf)+len(c.data))
			copy(grown, buf)
			buf = grown
		}
		buf = append(buf, c.data...)
		streamEDC = edcUpdate(streamEDC, c.data)
		consumed += int64(len(c.data))
		if c.eof {
			eof = true
		}
		if e.Progress != nil {
			e.Progress(consumed, e.InputSize)
		}
		return nil
	}

	flush := func(end int) error {
		if runCount == 0 {
			return nil
		}
		if err := writeHeader(bw, runType, runCount); err != nil {
			return err
		}
		run := buf[runStart:end]
		switch runType {
		case TypeLiteral:
			if _, err := bw.Write(run); err != nil {
				return err
			}
			stats.LiteralBytes += int64(len(run))
		case TypeMode1:
			for i := 0; i < len(run); i += SectorSize {
				sector := run[i : i+SectorSize]
				if _, err := bw.Write(sector[12:15]); err != nil {
					return err
				}
				if _, err := bw.Write(sector[16 : 16+2048]); err != nil {
					return err
				}
				stats.Mode1Sectors++
			}
		case TypeMode2Form1:
			for i := 0; i < len(run); i += XASectorSize {
				window := run[i : i+XASectorSize]
				if _, err := bw.Write(window[4 : 4+Mode2Form1PayloadSize]); err != nil {
					return err
				}
				stats.Mode2Form1Sectors++
			}
		case TypeMode2Form2:
			for i := 0; i < len(run); i += XASectorSize {
				window := run[i : i+XASectorSize]
				if _, err := bw.Write(window[4 : 4+Mode2Form2PayloadSize]); err != nil {
					return err
				}
				stats.Mode2Form2Sectors++
			}
		}
		runCount = 0
		runStart = end
		return nil
	}

	for {
		for pos+SectorSize > len(buf) && !eof {
			if err := refill(); err != nil {
				return stats, err
			}
		}
		if pos >= len(buf) {
			break
		}
		end := pos + SectorSize
		if end > len(buf) {
			end = len(buf)
		}
		t := classify(buf[pos:end])
		if runCount > 0 && t == runType {
			runCount++
		} else {
			if err := flush(pos); err != nil {
				return stats, err
			}
			runType = t
			runCount = 1
			runStart = pos
		}
		pos += t.stride()
		if pos-runStart >= maxRunSpan {
			if err := flush(pos); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(pos); err != nil {
		return stats, err
	}

	if err := writeHeader(bw, TypeLiteral, 0); err != nil {
		return stats, err
	}
	trailer := edcBytes(streamEDC)
	if _, err := bw.Write(trailer[:]); err != nil {
		return stats, err
	}
	if err := bw.Flush(); err != nil {
		return stats, err
	}
	cancel()
	if err := g.Wait(); err != nil && err != context.Canceled {
		return stats, err
	}

	stats.BytesIn = consumed
	stats.BytesOut = cw.n
	return stats, nil
}
