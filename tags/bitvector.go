package tags

import (
	"fmt"
	"math"
	"math/bits"
	"math/rand"
	"strings"
)

const wordBits = 64

// BitVector is an unsigned integer of a fixed bit width.
// The zero value is unusable; construct with New, FromUint64, or Parse.
type BitVector struct {
	width int
	words []uint64
}

// New returns the all-zero vector of the given width.
// It panics if width is not positive.
func New(width int) BitVector {
	if width <= 0 {
		panic(fmt.Sprintf("tags: invalid bit-vector width %d", width))
	}
	return BitVector{
		width: width,
		words: make([]uint64, numWords(width)),
	}
}

// FromUint64 returns the vector of the given width holding v modulo 2^width.
func FromUint64(width int, v uint64) BitVector {
	bv := New(width)
	bv.words[0] = v
	bv.mask()
	return bv
}

// Parse interprets s as a binary literal, most significant bit first
// (e.g. "0011" is the 4-bit vector with value 3). The width of the result
// is len(s).
func Parse(s string) (BitVector, error) {
	if len(s) == 0 {
		return BitVector{}, fmt.Errorf("tags: empty bit-vector literal")
	}
	bv := New(len(s))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			bv = bv.WithBit(len(s)-1-i, true)
		default:
			return BitVector{}, fmt.Errorf("tags: invalid character %q in bit-vector literal", c)
		}
	}
	return bv, nil
}

// MustParse is Parse that panics on malformed input. Intended for constants
// and tests.
func MustParse(s string) BitVector {
	bv, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return bv
}

// Rand returns a uniformly random vector of the given width.
func Rand(width int, rng *rand.Rand) BitVector {
	bv := New(width)
	for i := range bv.words {
		bv.words[i] = rng.Uint64()
	}
	bv.mask()
	return bv
}

// Width returns the fixed bit width.
func (bv BitVector) Width() int { return bv.width }

// Bit reports whether bit i (0 = least significant) is set.
func (bv BitVector) Bit(i int) bool {
	bv.checkBit(i)
	return bv.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

// WithBit returns a copy of bv with bit i set to v.
func (bv BitVector) WithBit(i int, v bool) BitVector {
	bv.checkBit(i)
	out := bv.clone()
	if v {
		out.words[i/wordBits] |= 1 << (uint(i) % wordBits)
	} else {
		out.words[i/wordBits] &^= 1 << (uint(i) % wordBits)
	}
	return out
}

// Xor returns bv XOR o.
func (bv BitVector) Xor(o BitVector) BitVector {
	bv.checkWidth(o)
	out := bv.clone()
	for i := range out.words {
		out.words[i] ^= o.words[i]
	}
	return out
}

// Not returns the bitwise complement within the width.
func (bv BitVector) Not() BitVector {
	out := bv.clone()
	for i := range out.words {
		out.words[i] = ^out.words[i]
	}
	out.mask()
	return out
}

// OnesCount returns the number of set bits.
func (bv BitVector) OnesCount() int {
	n := 0
	for _, w := range bv.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// RotL returns bv rotated left by k positions within the width.
func (bv BitVector) RotL(k int) BitVector {
	k %= bv.width
	if k < 0 {
		k += bv.width
	}
	if k == 0 {
		return bv.clone()
	}
	out := New(bv.width)
	for i := 0; i < bv.width; i++ {
		if bv.Bit(i) {
			j := (i + k) % bv.width
			out.words[j/wordBits] |= 1 << (uint(j) % wordBits)
		}
	}
	return out
}

// Add returns (bv + o) modulo 2^width.
func (bv BitVector) Add(o BitVector) BitVector {
	bv.checkWidth(o)
	out := bv.clone()
	var carry uint64
	for i := range out.words {
		s, c1 := bits.Add64(out.words[i], o.words[i], carry)
		out.words[i] = s
		carry = c1
	}
	out.mask()
	return out
}

// Sub returns (bv - o) modulo 2^width.
func (bv BitVector) Sub(o BitVector) BitVector {
	bv.checkWidth(o)
	out := bv.clone()
	var borrow uint64
	for i := range out.words {
		d, b1 := bits.Sub64(out.words[i], o.words[i], borrow)
		out.words[i] = d
		borrow = b1
	}
	out.mask()
	return out
}

// Cmp compares bv and o as unsigned integers, returning -1, 0, or +1.
func (bv BitVector) Cmp(o BitVector) int {
	bv.checkWidth(o)
	for i := len(bv.words) - 1; i >= 0; i-- {
		switch {
		case bv.words[i] < o.words[i]:
			return -1
		case bv.words[i] > o.words[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether bv and o have the same width and bits.
func (bv BitVector) Equal(o BitVector) bool {
	if bv.width != o.width {
		return false
	}
	for i := range bv.words {
		if bv.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Float64 returns the unsigned integer value as a float64.
// Widths above 53 bits lose precision, same as any float conversion.
func (bv BitVector) Float64() float64 {
	v := 0.0
	for i, w := range bv.words {
		v += math.Ldexp(float64(w), i*wordBits)
	}
	return v
}

// MaxFloat64 returns 2^width - 1 as a float64, the largest value a vector
// of the given width can hold.
func MaxFloat64(width int) float64 {
	return math.Ldexp(1, width) - 1
}

// LongestRunOnes returns the length of the longest run of consecutive set
// bits. Runs do not wrap around the width boundary.
func (bv BitVector) LongestRunOnes() int {
	best, run := 0, 0
	for i := 0; i < bv.width; i++ {
		if bv.Bit(i) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// String renders the vector as a binary literal, most significant bit first.
func (bv BitVector) String() string {
	var sb strings.Builder
	sb.Grow(bv.width)
	for i := bv.width - 1; i >= 0; i-- {
		if bv.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func (bv BitVector) clone() BitVector {
	out := BitVector{width: bv.width, words: make([]uint64, len(bv.words))}
	copy(out.words, bv.words)
	return out
}

// mask clears any bits above the width in the top word.
func (bv *BitVector) mask() {
	if rem := bv.width % wordBits; rem != 0 {
		bv.words[len(bv.words)-1] &= (1 << uint(rem)) - 1
	}
}

func (bv BitVector) checkWidth(o BitVector) {
	if bv.width != o.width {
		panic(fmt.Sprintf("tags: width mismatch: %d vs %d", bv.width, o.width))
	}
}

func (bv BitVector) checkBit(i int) {
	if i < 0 || i >= bv.width {
		panic(fmt.Sprintf("tags: bit index %d out of range for width %d", i, bv.width))
	}
}

func numWords(width int) int {
	return (width + wordBits - 1) / wordBits
}
