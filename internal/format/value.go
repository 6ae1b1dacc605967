package format

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strconv"
	"time"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/Mr-Dark-debug/derlens/internal/der"
	"github.com/Mr-Dark-debug/derlens/internal/tree"
	"github.com/Mr-Dark-debug/derlens/pkg/hexutil"
	"github.com/Mr-Dark-debug/derlens/pkg/timeutil"
)

// Value interprets the content of a primitive node. Constructed nodes have
// no value text. preview bounds string and hex output; zero means no limit.
// Content that does not match its universal type falls back to hex.
func Value(n *tree.Node, preview int) string {
	if n == nil || n.Constructed() {
		return ""
	}
	b := n.Bytes
	if n.Tag.Class != der.ClassUniversal {
		return hexutil.Preview(b, preview)
	}

	switch n.Tag.Number {
	case der.TagBoolean:
		if len(b) != 1 {
			break
		}
		return strconv.FormatBool(b[0] != 0)

	case der.TagInteger, der.TagEnumerated:
		if s, ok := Integer(b); ok {
			return s
		}

	case der.TagBitString:
		if len(b) == 0 || b[0] > 7 || (len(b) == 1 && b[0] != 0) {
			break
		}
		bits := (len(b)-1)*8 - int(b[0])
		return fmt.Sprintf("(%d bits, %d unused) %s", bits, b[0], hexutil.Preview(b[1:], preview))

	case der.TagOctetString:
		return fmt.Sprintf("(%d bytes) %s", len(b), hexutil.Preview(b, preview))

	case der.TagNull:
		if len(b) == 0 {
			return ""
		}

	case der.TagOID:
		if s, err := DecodeOID(b); err == nil {
			if name, ok := OIDName(s); ok {
				return fmt.Sprintf("%s (%s)", s, name)
			}
			return s
		}

	case der.TagRelativeOID:
		if s, err := DecodeRelativeOID(b); err == nil {
			return s
		}

	case der.TagUTF8String, der.TagNumericString, der.TagPrintableString,
		der.TagT61String, der.TagVideotexString, der.TagIA5String,
		der.TagGraphicString, der.TagVisibleString, der.TagGeneralString,
		der.TagObjectDesc:
		if utf8.Valid(b) {
			return quote(string(b), preview)
		}

	case der.TagBMPString:
		if s, ok := bmpString(b); ok {
			return quote(s, preview)
		}

	case der.TagUniversalString:
		if s, ok := universalString(b); ok {
			return quote(s, preview)
		}

	case der.TagUTCTime:
		if t, err := timeutil.ParseUTCTime(string(b)); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
		if utf8.Valid(b) {
			return quote(string(b), preview)
		}

	case der.TagGeneralizedTime:
		if t, err := timeutil.ParseGeneralizedTime(string(b)); err == nil {
			return t.UTC().Format(time.RFC3339Nano)
		}
		if utf8.Valid(b) {
			return quote(string(b), preview)
		}
	}
	return hexutil.Preview(b, preview)
}

// Integer renders two's-complement content octets as a decimal number.
func Integer(b []byte) (string, bool) {
	if len(b) == 0 {
		return "", false
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return v.String(), true
}

func quote(s string, preview int) string {
	if preview > 0 {
		s = hexutil.TruncateString(s, preview)
	}
	return strconv.Quote(s)
}

func bmpString(b []byte) (string, bool) {
	if len(b)%2 != 0 {
		return "", false
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return string(utf16.Decode(units)), true
}

func universalString(b []byte) (string, bool) {
	if len(b)%4 != 0 {
		return "", false
	}
	runes := make([]rune, len(b)/4)
	for i := range runes {
		r := rune(binary.BigEndian.Uint32(b[4*i:]))
		if !utf8.ValidRune(r) {
			return "", false
		}
		runes[i] = r
	}
	return string(runes), true
}
