package ingest

import (
	"errors"
	"fmt"
)

// ErrNoProfiles means the device negotiation returned an empty
// profile list, so there is nothing to select from.
var ErrNoProfiles = errors.New("ingest: device reports no profiles")

// ProfileNotFoundError means the configured profile index points
// outside the device's profile list. The index is never clamped.
type ProfileNotFoundError struct {
	Index int
	Count int
}

func (e *ProfileNotFoundError) Error() string {
	return fmt.Sprintf("ingest: profile index %d out of range, device reports %d profiles", e.Index, e.Count)
}

// StreamNotFoundError means no video stream matched the selector.
type StreamNotFoundError struct {
	Index int
}

func (e *StreamNotFoundError) Error() string {
	return fmt.Sprintf("ingest: no video stream with index %d", e.Index)
}

// UnsupportedCodecError means the negotiated codec is outside the
// supported set.
type UnsupportedCodecError struct {
	Codec string
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("ingest: unsupported codec: %s", e.Codec)
}

// UnsupportedFramingError means the first packet of a start-code
// codec does not begin with an Annex-B start code.
type UnsupportedFramingError struct {
	Codec  string
	Prefix []byte
}

func (e *UnsupportedFramingError) Error() string {
	return fmt.Sprintf("ingest: %s stream is not Annex-B framed, starts with % 02X", e.Codec, e.Prefix)
}
