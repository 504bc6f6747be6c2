package ecm

import "io"

// countingWriter tallies bytes successfully written to an underlying
// io.Writer, so a driver can report exact output sizes without recomputing
// them from the record stream it just emitted.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
