package mark

import (
	"errors"
	"unicode/utf8"
)

// Terminator is the byte that marks the end of a hidden message.
// It never occurs in valid UTF-8, so it cannot collide with message text.
const Terminator byte = 0xff

var (
	// ErrDecodeTruncated is returned together with the decoded text when the
	// bit sequence ran out before a terminator was found. The text may be
	// incomplete or followed by noise.
	ErrDecodeTruncated = errors.New("no terminator found, message may be truncated")
)

// Encode converts message to its UTF-8 bytes and returns their bits,
// most significant bit first. An empty message yields an empty sequence.
func Encode(message string) *Bits {
	return FromBytes([]byte(message))
}

// DecodeBytes groups bits into bytes and returns those preceding the first
// Terminator. A trailing partial byte is ignored.
// If no Terminator is found, all bytes are returned with ErrDecodeTruncated.
func DecodeBytes(bits *Bits) ([]byte, error) {
	chunks := bits.Len() / 8
	out := make([]byte, 0, chunks)
	for i := range chunks {
		v := bits.byteAt(i)
		if v == Terminator {
			return out, nil
		}
		out = append(out, v)
	}
	return out, ErrDecodeTruncated
}

// Decode is DecodeBytes returning text.
// Bytes forming valid UTF-8 are returned as is, so multi-byte characters
// round-trip. Otherwise every byte is read as the Latin-1 character of the
// same value.
func Decode(bits *Bits) (string, error) {
	b, err := DecodeBytes(bits)
	return bytesToString(b), err
}

func bytesToString(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	runes := make([]rune, len(b))
	for i, v := range b {
		runes[i] = rune(v)
	}
	return string(runes)
}
