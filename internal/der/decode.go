package der

import "math"

// Object is one decoded TLV. Primitive objects hold their value in Bytes;
// constructed objects hold their decoded content in Children. Bytes borrows
// from the buffer passed to the decoder.
type Object struct {
	Tag Tag
	// Length is the declared length of the value.
	Length int
	// Offset is the absolute position of the identifier octet.
	Offset int
	// HeaderLen counts the identifier and length octets.
	HeaderLen int

	// Bytes is the value slice. Constructed objects keep it too and decode
	// Children from it.
	Bytes    []byte
	Children []Object
}

// Decoder reads consecutive TLVs from a byte slice.
type Decoder struct {
	data   []byte
	offset int
	// base is the absolute offset of data[0] in the outermost buffer.
	base int
}

// NewDecoder creates a decoder positioned at the start of data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Offset returns the current absolute read position.
func (d *Decoder) Offset() int {
	return d.base + d.offset
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.offset
}

// EOF reports whether all input has been consumed.
func (d *Decoder) EOF() bool {
	return d.offset >= len(d.data)
}

func (d *Decoder) fail(at int, message string, err, reason error) *DecodeError {
	return &DecodeError{Offset: d.base + at, Message: message, Err: err, Reason: reason}
}

// ReadTag reads identifier octets from the current position.
func (d *Decoder) ReadTag() (Tag, error) {
	start := d.offset
	if d.EOF() {
		return Tag{}, d.fail(start, "cannot read tag", ErrInvalidTag, nil)
	}

	first := d.data[d.offset]
	d.offset++

	tag := Tag{
		Class:       Class(first >> classShift),
		Constructed: first&constructedBit != 0,
		Number:      uint64(first & shortNumberMask),
	}
	if tag.Number != shortNumberMask {
		return tag, nil
	}

	var number uint64
	for {
		if d.EOF() {
			return Tag{}, d.fail(start, "long form tag number cut short", ErrInvalidTag, nil)
		}
		b := d.data[d.offset]
		d.offset++

		if number > math.MaxUint64>>7 {
			return Tag{}, d.fail(start, "long form tag number", ErrInvalidTag, ErrTagOverflow)
		}
		number = number<<7 | uint64(b&base128Mask)

		if b&continuationBit == 0 {
			break
		}
	}
	tag.Number = number
	return tag, nil
}

// ReadLength reads length octets from the current position.
func (d *Decoder) ReadLength() (int, error) {
	start := d.offset
	if d.EOF() {
		return 0, d.fail(start, "cannot read length", ErrInvalidLength, nil)
	}

	first := d.data[d.offset]
	d.offset++

	if first&longFormLengthBit == 0 {
		return int(first), nil
	}

	count := int(first & base128Mask)
	if count == 0 {
		return 0, d.fail(start, "length", ErrInvalidLength, ErrIndefiniteLength)
	}
	if count > d.Remaining() {
		return 0, d.fail(start, "truncated long form length", ErrInvalidLength, nil)
	}

	var length uint64
	for i := 0; i < count; i++ {
		if length > math.MaxInt>>8 {
			return 0, d.fail(start, "long form length", ErrInvalidLength, ErrLengthOverflow)
		}
		length = length<<8 | uint64(d.data[d.offset])
		d.offset++
	}
	return int(length), nil
}

// ReadObject decodes one complete TLV, recursing into constructed values.
func (d *Decoder) ReadObject() (Object, error) {
	start := d.offset

	tag, err := d.ReadTag()
	if err != nil {
		return Object{}, err
	}
	length, err := d.ReadLength()
	if err != nil {
		return Object{}, err
	}
	if length > d.Remaining() {
		return Object{}, d.fail(d.offset, "value shorter than declared length", ErrUnexpectedEOF, nil)
	}

	valueStart := d.offset
	value := d.data[valueStart : valueStart+length : valueStart+length]
	d.offset += length

	obj := Object{
		Tag:       tag,
		Length:    length,
		Offset:    d.base + start,
		HeaderLen: valueStart - start,
		Bytes:     value,
	}

	if !tag.Constructed {
		return obj, nil
	}

	// Children come only from this object's own content, never from the
	// remainder of the outer buffer.
	inner := &Decoder{data: value, base: d.base + valueStart}
	children, err := inner.ReadAll()
	if err != nil {
		return Object{}, err
	}
	obj.Children = children
	return obj, nil
}

// ReadAll decodes TLVs until the input is exhausted. The first error aborts
// the whole decode.
func (d *Decoder) ReadAll() ([]Object, error) {
	var objects []Object
	for !d.EOF() {
		obj, err := d.ReadObject()
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// DecodeAll decodes data as a sequence of top-level objects.
func DecodeAll(data []byte) ([]Object, error) {
	return NewDecoder(data).ReadAll()
}
