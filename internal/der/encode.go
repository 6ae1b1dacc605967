package der

// AppendTag appends the identifier octets for tag to dst.
func AppendTag(dst []byte, tag Tag) []byte {
	first := byte(tag.Class) << classShift
	if tag.Constructed {
		first |= constructedBit
	}

	if tag.Number < shortNumberMask {
		return append(dst, first|byte(tag.Number))
	}

	dst = append(dst, first|shortNumberMask)
	return appendBase128(dst, tag.Number)
}

func appendBase128(dst []byte, v uint64) []byte {
	var buf [10]byte
	i := len(buf) - 1
	buf[i] = byte(v & base128Mask)
	for v >>= 7; v > 0; v >>= 7 {
		i--
		buf[i] = byte(v&base128Mask) | continuationBit
	}
	return append(dst, buf[i:]...)
}

// AppendLength appends the minimal length octets for n to dst.
// n must not be negative.
func AppendLength(dst []byte, n int) []byte {
	if n <= MaxShortFormLength {
		return append(dst, byte(n))
	}

	count := 0
	for v := n; v > 0; v >>= 8 {
		count++
	}
	dst = append(dst, longFormLengthBit|byte(count))
	for i := count - 1; i >= 0; i-- {
		dst = append(dst, byte(n>>(8*i)))
	}
	return dst
}

// Header returns the identifier and length octets for a value of the given
// length.
func Header(tag Tag, length int) []byte {
	return AppendLength(AppendTag(make([]byte, 0, 8), tag), length)
}
