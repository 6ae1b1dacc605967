package der

import "fmt"

// Class is the tag class held in the top two bits of the identifier octet.
type Class uint8

const (
	ClassUniversal Class = iota
	ClassApplication
	ClassContextSpecific
	ClassPrivate
)

// Identifier octet layout.
const (
	classShift      = 6
	constructedBit  = 0x20
	shortNumberMask = 0x1F
	continuationBit = 0x80
	base128Mask     = 0x7F

	// longFormLengthBit marks a long-form length octet.
	longFormLengthBit = 0x80
	// MaxShortFormLength is the largest length encodable in a single octet.
	MaxShortFormLength = 127
)

func (c Class) String() string {
	switch c {
	case ClassUniversal:
		return "Universal"
	case ClassApplication:
		return "Application"
	case ClassContextSpecific:
		return "ContextSpecific"
	case ClassPrivate:
		return "Private"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Tag identifies the type of an encoded object.
type Tag struct {
	Class       Class
	Constructed bool
	Number      uint64
}

// Universal tag numbers used across the module.
const (
	TagBoolean         = 1
	TagInteger         = 2
	TagBitString       = 3
	TagOctetString     = 4
	TagNull            = 5
	TagOID             = 6
	TagObjectDesc      = 7
	TagExternal        = 8
	TagReal            = 9
	TagEnumerated      = 10
	TagEmbeddedPDV     = 11
	TagUTF8String      = 12
	TagRelativeOID     = 13
	TagSequence        = 16
	TagSet             = 17
	TagNumericString   = 18
	TagPrintableString = 19
	TagT61String       = 20
	TagVideotexString  = 21
	TagIA5String       = 22
	TagUTCTime         = 23
	TagGeneralizedTime = 24
	TagGraphicString   = 25
	TagVisibleString   = 26
	TagGeneralString   = 27
	TagUniversalString = 28
	TagBMPString       = 30
)

// Is reports whether t is the universal tag with the given number.
func (t Tag) Is(number uint64) bool {
	return t.Class == ClassUniversal && t.Number == number
}

func (t Tag) String() string {
	form := "primitive"
	if t.Constructed {
		form = "constructed"
	}
	return fmt.Sprintf("class=%s, %s, number=%d", t.Class, form, t.Number)
}
