// Package codec defines the interface and registry shared by stream codecs
// in this module. A codec reads an input stream and writes an output
// stream, optionally reporting progress.
package codec

import "io"

// ProgressFunc reports processed/total byte counts during a long-running
// Encode or Decode call. total is -1 when the size of the input is unknown
// (e.g. a non-seekable stream). Implementations must tolerate a nil
// ProgressFunc.
type ProgressFunc func(processed, total int64)

// Codec is the universal interface for all stream codecs in this module.
type Codec interface {
	// Encode reads raw bytes from r and writes the encoded container to w.
	Encode(r io.Reader, w io.Writer, opts EncodeParams) (Stats, error)

	// Decode reads an encoded container from r and writes the original
	// bytes to w.
	Decode(r io.Reader, w io.Writer, opts DecodeParams) (Stats, error)

	// UID returns the unique identifier for this codec.
	UID() string

	// Name returns a human-readable name.
	Name() string
}

// EncodeParams contains parameters for encoding.
type EncodeParams struct {
	// InputSize is the total number of bytes available from the input
	// stream, when known, or -1 otherwise. Used only to compute progress.
	InputSize int64

	// Progress, if non-nil, is invoked periodically during Encode.
	Progress ProgressFunc

	// Options holds codec-specific encoding options.
	Options Options
}

// DecodeParams contains parameters for decoding.
type DecodeParams struct {
	// InputSize is the total number of bytes available from the input
	// stream, when known, or -1 otherwise.
	InputSize int64

	// Progress, if non-nil, is invoked periodically during Decode.
	Progress ProgressFunc
}

// Options is an interface for codec-specific encoding options.
type Options interface {
	// Validate checks if the options are valid.
	Validate() error
}

// Stats carries summary counters a codec may report after a run.
type Stats struct {
	// BytesIn is the number of bytes read from the input stream.
	BytesIn int64

	// BytesOut is the number of bytes written to the output stream.
	BytesOut int64
}
