package mark

import (
	"fmt"

	"github.com/yyyoichi/bitstream-go"
)

// Bits is an immutable, ordered sequence of single-bit values.
// Bits are packed most-significant-bit first into uint64 words.
type Bits struct {
	data   []uint64
	size   int
	reader *bitstream.BitReader[uint64]
}

func newBits(data []uint64, size int) *Bits {
	if max := len(data) * 64; max < size {
		size = max
	}
	reader := bitstream.NewBitReader(data, 0, 0)
	reader.SetBits(size)
	return &Bits{
		data:   data,
		size:   size,
		reader: reader,
	}
}

// FromBools packs v into a Bits, true being 1.
func FromBools(v []bool) *Bits {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, b := range v {
		w.WriteBool(b)
	}
	return newBits(w.Data(), w.Bits())
}

// FromBytes returns the bits of data, eight per byte, most significant bit first.
func FromBytes(data []byte) *Bits {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range data {
		for i := 7; i >= 0; i-- {
			w.WriteBool((v>>uint(i))&1 == 1)
		}
	}
	return newBits(w.Data(), w.Bits())
}

// Len returns the number of bits.
func (b *Bits) Len() int {
	return b.size
}

// Bit returns the bit at the given position.
// It panics if at is out of range.
func (b *Bits) Bit(at int) bool {
	if at < 0 || at >= b.size {
		panic(fmt.Sprintf("mark: bit index %d out of range [0:%d]", at, b.size))
	}
	bit, _ := b.reader.ReadBitAt(at)
	return bit
}

// Bools returns a copy of the sequence as a bool slice.
func (b *Bits) Bools() []bool {
	out := make([]bool, b.size)
	for i := range out {
		out[i] = b.Bit(i)
	}
	return out
}

// Append returns a new sequence holding b followed by each of others.
func (b *Bits) Append(others ...*Bits) *Bits {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, src := range append([]*Bits{b}, others...) {
		for i := range src.size {
			w.WriteBool(src.Bit(i))
		}
	}
	return newBits(w.Data(), w.Bits())
}

// byteAt assembles the chunk-th 8-bit group, most significant bit first.
func (b *Bits) byteAt(chunk int) byte {
	var v byte
	for j := range 8 {
		if b.Bit(chunk*8 + j) {
			v |= 1 << uint(7-j)
		}
	}
	return v
}
