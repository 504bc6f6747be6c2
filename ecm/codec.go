// Package ecm implements the ECM (Error Code Modeler) CD-ROM sector
// container: a lossless codec that strips the EDC/ECC fields CD-ROM
// sectors carry whenever those fields are fully derivable from the rest of
// the sector, and reconstructs them bit-for-bit on decode.
package ecm

import (
	"io"

	"github.com/ecmcodec/ecm/codec"
)

// UID is this codec's registry identifier.
const UID = "ECM/1"

// Options holds ecm-specific encoding options. There are none beyond the
// codec-wide defaults; it exists to satisfy codec.Options.
type Options struct{}

// Validate always succeeds: ecm encoding has no tunable parameters.
func (Options) Validate() error { return nil }

// Codec adapts Encoder/Decoder to the codec.Codec interface used by the
// registry.
type Codec struct{}

func (Codec) UID() string  { return UID }
func (Codec) Name() string { return "ecm" }

func (Codec) Encode(r io.Reader, w io.Writer, opts codec.EncodeParams) (codec.Stats, error) {
	if err := codec.ValidateOptions(opts.Options); err != nil {
		return codec.Stats{}, err
	}
	enc := &Encoder{
		Progress:  ProgressFunc(opts.Progress),
		InputSize: opts.InputSize,
	}
	stats, err := enc.Encode(r, w)
	return codec.Stats{BytesIn: stats.BytesIn, BytesOut: stats.BytesOut}, err
}

func (Codec) Decode(r io.Reader, w io.Writer, opts codec.DecodeParams) (codec.Stats, error) {
	dec := &Decoder{
		Progress:  ProgressFunc(opts.Progress),
		InputSize: opts.InputSize,
	}
	stats, err := dec.Decode(r, w)
	return codec.Stats{BytesIn: stats.BytesIn, BytesOut: stats.BytesOut}, err
}

func init() {
	codec.Register(Codec{})
}
