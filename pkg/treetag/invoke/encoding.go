package invoke

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/cognicore/treetag/pkg/treetag/internalerr"
)

// Encoding names a text codec used on the tagger's stdin and stdout.
// The zero value is UTF8.
type Encoding string

const (
	UTF8   Encoding = "utf8"
	Latin1 Encoding = "latin-1"
)

// Variant returns the parameter-file variant suffix this encoding
// corresponds to in a TreeTagger installation.
func (e Encoding) Variant() string {
	if e == Latin1 {
		return "latin1"
	}
	return "utf8"
}

// Encode converts text to the byte form the tagger expects on stdin.
func (e Encoding) Encode(text string) ([]byte, error) {
	switch e {
	case Latin1:
		b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode latin-1: %w", internalerr.ErrEncoding)
		}
		return b, nil
	case UTF8, "":
		return []byte(text), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q: %w", e, internalerr.ErrEncoding)
	}
}

// Decode converts tagger output bytes to a string. Undecodable input is
// an error; replacement characters are never substituted silently.
func (e Encoding) Decode(data []byte) (string, error) {
	switch e {
	case Latin1:
		b, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode latin-1: %w", internalerr.ErrEncoding)
		}
		return string(b), nil
	case UTF8, "":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("output is not valid UTF-8: %w", internalerr.ErrEncoding)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q: %w", e, internalerr.ErrEncoding)
	}
}
