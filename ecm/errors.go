package ecm

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by Decoder.
// ErrUnexpectedEOF is not redefined here: Decoder reports a short read
// after the magic as the standard library's io.ErrUnexpectedEOF, and
// callers can compare against that directly.
var (
	// ErrBadMagic is returned when the stream does not start with the
	// 4-byte ECM magic.
	ErrBadMagic = errors.New("ecm: header not found")

	// ErrCorruptStream is returned for a malformed record header or a
	// decoded run length at or beyond 2^31.
	ErrCorruptStream = errors.New("ecm: corrupt ECM file")
)

// EDCMismatchError is returned when the trailing whole-stream EDC does not
// match the EDC accumulated while decoding.
type EDCMismatchError struct {
	Want uint32
	Got  uint32
}

func (e *EDCMismatchError) Error() string {
	return fmt.Sprintf("ecm: EDC mismatch: stream says %08X, computed %08X", e.Want, e.Got)
}

func (e *EDCMismatchError) Is(target error) bool {
	_, ok := target.(*EDCMismatchError)
	return ok
}
