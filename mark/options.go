package mark

var (
	DefaultShuffleSeed int64 = 1234567890
)

type (
	// Option is a function for selecting how a payload is protected before it
	// is embedded. It chooses whether to use error correction codes (ECC).
	Option      func(*markFactory)
	markFactory struct {
		f factory
	}
	factory interface {
		encode(bits *Bits) *Bits
		decode(bits *Bits) *Bits
		encodedLen(size int) int
	}
)

// WithoutECC is an option that does not use error correction codes.
// The payload bits are embedded as-is. This is the default.
func WithoutECC() Option {
	return func(mf *markFactory) {
		mf.f = withoutecc{}
	}
}

// WithGolay is an option that uses Golay code for error correction.
// seed is the seed value for shuffling the encoded bits.
// Bits are shuffled within fixed-size frames so that a run of damaged
// pixels is spread over several codewords.
func WithGolay(seed int64) Option {
	return func(mf *markFactory) {
		mf.f = shuffledgolay(seed)
	}
}

func newMarkFactory(opts ...Option) markFactory {
	var mf markFactory
	for _, opt := range opts {
		opt(&mf)
	}
	if mf.f == nil {
		mf.f = withoutecc{}
	}
	return mf
}
