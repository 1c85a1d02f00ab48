package mark

import (
	"math/rand"

	"github.com/yyyoichi/golay"
)

const (
	// Golay(23,12): every 12 data bits become a 23-bit codeword.
	dataBits     = 12
	codewordBits = 23
	// frameBits is the unit the Golay stream is padded to and shuffled in.
	frameBits = 8 * codewordBits
)

var _ factory = (*shuffledgolay)(nil)

type shuffledgolay int64

func (sg shuffledgolay) encode(bits *Bits) *Bits {
	if bits.Len() == 0 {
		return bits
	}
	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	_ = enc.Encode(bits.data, bits.Len())
	src := newBits(encoded, enc.Bits())

	index := sg.generatePermutation(frameBits)
	out := make([]bool, sg.encodedLen(bits.Len()))
	for base := 0; base < len(out); base += frameBits {
		for i := range frameBits {
			if at := base + index[i]; at < src.Len() {
				out[base+i] = src.Bit(at)
			}
		}
	}
	return FromBools(out)
}

// decode un-shuffles and decodes every whole frame of bits.
// Bits after the last whole frame are dropped.
func (sg shuffledgolay) decode(bits *Bits) *Bits {
	frames := bits.Len() / frameBits
	if frames == 0 {
		return FromBools(nil)
	}
	index := sg.generatePermutation(frameBits)
	unshuffled := make([]bool, frames*frameBits)
	for base := 0; base < len(unshuffled); base += frameBits {
		for i := range frameBits {
			unshuffled[base+index[i]] = bits.Bit(base + i)
		}
	}
	src := FromBools(unshuffled)

	var decoded []uint64
	dec := golay.NewDecoder(src.data, src.Len())
	// Uncorrectable codewords are left as decoded; the terminator scan
	// reports a missing end of message.
	_ = dec.Decode(&decoded)
	return newBits(decoded, frames*frameBits/codewordBits*dataBits)
}

func (sg shuffledgolay) encodedLen(size int) int {
	if size == 0 {
		return 0
	}
	n := golay.EncodedBits(size)
	return (n + frameBits - 1) / frameBits * frameBits
}

func (sg shuffledgolay) generatePermutation(length int) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	seed := int64(sg)
	rd := rand.New(rand.NewSource(seed))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}

var _ factory = (*withoutecc)(nil)

type withoutecc struct{}

func (we withoutecc) encode(bits *Bits) *Bits {
	return bits
}

func (we withoutecc) decode(bits *Bits) *Bits {
	return bits
}

func (we withoutecc) encodedLen(size int) int {
	return size
}
