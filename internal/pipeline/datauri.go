package pipeline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for data URI handling.
var (
	ErrMalformedDataURI = errors.New("malformed data URI")
	ErrDecodePayload    = errors.New("failed to decode data URI payload")
)

// DataURI is the split form of a "data:<type>/<format>;base64,<payload>" value.
type DataURI struct {
	MediaType string // "image/png", "image/svg+xml"
	Format    string // "png", "svg+xml"
	Payload   string // base64 text, undecoded
}

// ParseDataURI splits a data URI into media type, format tag, and payload.
// The format tag is the media type segment between the first "/" and the
// first ";". The payload is everything after the first comma.
func ParseDataURI(uri string) (DataURI, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: missing data: scheme", ErrMalformedDataURI)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURI{}, fmt.Errorf("%w: no comma separator", ErrMalformedDataURI)
	}

	mediaType, _, _ := strings.Cut(header, ";")
	parts := strings.Split(mediaType, "/")
	if len(parts) < 2 {
		return DataURI{}, fmt.Errorf("%w: media type %q has no format", ErrMalformedDataURI, mediaType)
	}

	return DataURI{
		MediaType: mediaType,
		Format:    parts[1],
		Payload:   payload,
	}, nil
}

// Decode returns the raw bytes of the base64 payload.
// ASCII whitespace inside the payload is skipped; Payload itself is left as is.
func (d DataURI) Decode() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(stripSpace(d.Payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodePayload, err)
	}
	return data, nil
}

// stripSpace removes ASCII whitespace, which saved pages sometimes wrap
// long payloads with.
func stripSpace(s string) string {
	if !strings.ContainsAny(s, asciiSpace) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(asciiSpace, r) {
			return -1
		}
		return r
	}, s)
}

const asciiSpace = " \t\n\r\f\v"
