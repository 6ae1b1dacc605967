// Package der decodes DER (Distinguished Encoding Rules) byte streams into a
// tree of tag/length/value objects.
//
// The decoder is strict about the parts of X.690 that make DER canonical at
// the framing level: indefinite lengths are rejected, and a constructed
// object's children are decoded only from its own declared-length content.
// It does not interpret the contents of primitive values; see package format
// for that.
//
// Decoding:
//
//	objects, err := der.DecodeAll(data)
//	if err != nil {
//	    // errors.Is(err, der.ErrUnexpectedEOF), der.ErrInvalidLength, ...
//	}
//
// Objects borrow from the input buffer. Use tree.FromObjects to obtain a copy
// that outlives it.
package der
