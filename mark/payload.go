package mark

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrInvalidMessage = errors.New("message is not valid UTF-8")
)

// NewPayload returns the bits to embed for message: the encoded message,
// one Terminator byte, and the error correction selected by opts.
//
// An empty message is rejected since it cannot be told apart from an image
// without a message. Messages must be valid UTF-8, which guarantees that
// the Terminator byte does not occur inside the message.
func NewPayload(message string, opts ...Option) (*Bits, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if !utf8.ValidString(message) {
		return nil, ErrInvalidMessage
	}
	mf := newMarkFactory(opts...)
	bits := Encode(message).Append(FromBytes([]byte{Terminator}))
	return mf.f.encode(bits), nil
}

// ParsePayload reverses the error correction selected by opts and decodes
// the message. See Decode for the meaning of ErrDecodeTruncated.
func ParsePayload(bits *Bits, opts ...Option) (string, error) {
	mf := newMarkFactory(opts...)
	return Decode(mf.f.decode(bits))
}

// EncodedLen returns the number of bits NewPayload produces for a message
// of messageBytes UTF-8 bytes.
func EncodedLen(messageBytes int, opts ...Option) int {
	mf := newMarkFactory(opts...)
	return mf.f.encodedLen((messageBytes + 1) * 8)
}
