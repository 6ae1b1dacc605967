// Package format turns decoded nodes into human-readable text: tag names,
// interpreted values, tree labels and the full-tree dump.
package format

import (
	"fmt"

	"github.com/Mr-Dark-debug/derlens/internal/der"
)

var universalNames = map[uint64]string{
	der.TagBoolean:         "BOOLEAN",
	der.TagInteger:         "INTEGER",
	der.TagBitString:       "BIT STRING",
	der.TagOctetString:     "OCTET STRING",
	der.TagNull:            "NULL",
	der.TagOID:             "OBJECT IDENTIFIER",
	der.TagObjectDesc:      "ObjectDescriptor",
	der.TagExternal:        "EXTERNAL",
	der.TagReal:            "REAL",
	der.TagEnumerated:      "ENUMERATED",
	der.TagEmbeddedPDV:     "EMBEDDED PDV",
	der.TagUTF8String:      "UTF8String",
	der.TagRelativeOID:     "RELATIVE-OID",
	der.TagSequence:        "SEQUENCE",
	der.TagSet:             "SET",
	der.TagNumericString:   "NumericString",
	der.TagPrintableString: "PrintableString",
	der.TagT61String:       "T61String",
	der.TagVideotexString:  "VideotexString",
	der.TagIA5String:       "IA5String",
	der.TagUTCTime:         "UTCTime",
	der.TagGeneralizedTime: "GeneralizedTime",
	der.TagGraphicString:   "GraphicString",
	der.TagVisibleString:   "VisibleString",
	der.TagGeneralString:   "GeneralString",
	der.TagUniversalString: "UniversalString",
	der.TagBMPString:       "BMPString",
}

// TagName returns the display name of t. Unknown universal tags print as
// "UNIVERSAL n"; other classes use the bracketed ASN.1 notation.
func TagName(t der.Tag) string {
	switch t.Class {
	case der.ClassUniversal:
		if name, ok := universalNames[t.Number]; ok {
			return name
		}
		return fmt.Sprintf("UNIVERSAL %d", t.Number)
	case der.ClassApplication:
		return fmt.Sprintf("[APPLICATION %d]", t.Number)
	case der.ClassPrivate:
		return fmt.Sprintf("[PRIVATE %d]", t.Number)
	default:
		return fmt.Sprintf("[%d]", t.Number)
	}
}
