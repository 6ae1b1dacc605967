// Package input turns pasted or loaded text into the bytes handed to the
// decoder. Text is PEM-stripped, then read as hex, then as base64.
package input

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

var (
	// ErrEmpty is returned when nothing but whitespace or PEM armor remains.
	ErrEmpty = errors.New("input: empty")
	// ErrUndecodable is returned when the text is neither hex nor base64.
	ErrUndecodable = errors.New("input: not valid hex or base64")
)

// Source records where an input came from.
type Source string

const (
	SourcePaste Source = "paste"
	SourceFile  Source = "file"
	SourceStdin Source = "stdin"
)

// Clean drops PEM boundary lines and all whitespace.
func Clean(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "-----") {
			continue
		}
		for _, r := range line {
			if !unicode.IsSpace(r) {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// Decode interprets text as hex, falling back to base64. Text that decodes
// to no bytes, such as a lone ":" or "=", is ErrEmpty.
func Decode(text string) ([]byte, error) {
	b, err := decode(Clean(text))
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrEmpty
	}
	return b, nil
}

func decode(cleaned string) ([]byte, error) {
	if cleaned == "" {
		return nil, ErrEmpty
	}

	if b, err := hex.DecodeString(strings.ReplaceAll(cleaned, ":", "")); err == nil {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(cleaned); err == nil {
		return b, nil
	}
	if b, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "=")); err == nil {
		return b, nil
	}
	return nil, ErrUndecodable
}

// Normalize handles file or stdin contents. Printable text goes through
// Decode; anything else is taken as raw DER.
func Normalize(data []byte) ([]byte, error) {
	if !IsText(data) {
		return data, nil
	}
	return Decode(string(data))
}

// IsText reports whether data is printable ASCII plus whitespace.
func IsText(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	for _, c := range data {
		switch {
		case c == '\n' || c == '\r' || c == '\t':
		case c < 0x20 || c > 0x7E:
			return false
		}
	}
	return true
}
