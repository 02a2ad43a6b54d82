package huffcode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// BitPath represents an immutable sequence of bits: the path from the root of
// a Huffman tree to one of its leaves.
//
// BitPath values are comparable with == and may be used as map keys.  Two
// BitPaths are equal iff they hold the same bits in the same order.  The zero
// value is the empty path.
type BitPath struct {
	// bits holds one '0' or '1' byte per bit, first bit first.
	bits string
}

// MakeBitPath constructs a BitPath from a list of booleans, where true is a
// 1 bit and false is a 0 bit.
func MakeBitPath(bits ...bool) BitPath {
	buf := make([]byte, len(bits))
	for i, bit := range bits {
		buf[i] = bitChar(bit)
	}
	return BitPath{bits: string(buf)}
}

// ParseBitPath constructs a BitPath from a string of '0' and '1' characters.
// Any other characters are silently skipped, so "01 10" and "0110" parse to
// the same BitPath.
func ParseBitPath(str string) BitPath {
	if isBitString(str) {
		return BitPath{bits: str}
	}
	var sb strings.Builder
	sb.Grow(len(str))
	for i := 0; i < len(str); i++ {
		if ch := str[i]; ch == '0' || ch == '1' {
			sb.WriteByte(ch)
		}
	}
	return BitPath{bits: sb.String()}
}

// Len returns the number of bits in this BitPath.
func (p BitPath) Len() int {
	return len(p.bits)
}

// IsEmpty returns true iff this BitPath holds no bits.
func (p BitPath) IsEmpty() bool {
	return len(p.bits) == 0
}

// Bit returns the i'th bit, counting from the first bit at index 0.  It
// panics if i is out of range.
func (p BitPath) Bit(i int) bool {
	return p.bits[i] == '1'
}

// Bools returns the bits of this BitPath as a freshly allocated slice.
func (p BitPath) Bools() []bool {
	out := make([]bool, len(p.bits))
	for i := 0; i < len(p.bits); i++ {
		out[i] = p.bits[i] == '1'
	}
	return out
}

// Bits returns the bits of this BitPath as an unquoted string of '0' and '1'
// characters.
func (p BitPath) Bits() string {
	return p.bits
}

// Append returns a new BitPath consisting of this BitPath followed by bit.
func (p BitPath) Append(bit bool) BitPath {
	return BitPath{bits: p.bits + string(bitChar(bit))}
}

// HasPrefix returns true iff prefix is a (not necessarily proper) prefix of
// this BitPath.
func (p BitPath) HasPrefix(prefix BitPath) bool {
	return strings.HasPrefix(p.bits, prefix.bits)
}

// Less orders BitPaths by their string-of-bits representations.  It exists
// for sorting; equality is always structural.
func (p BitPath) Less(other BitPath) bool {
	return p.bits < other.bits
}

// String returns the quoted string representation of this BitPath.
func (p BitPath) String() string {
	return strconv.Quote(p.bits)
}

// GoString returns a Go expression that reconstructs this BitPath.
func (p BitPath) GoString() string {
	return "huffcode.ParseBitPath(" + strconv.Quote(p.bits) + ")"
}

var (
	_ fmt.Stringer   = BitPath{}
	_ fmt.GoStringer = BitPath{}
)

// Join concatenates a sequence of BitPaths into one unquoted string of '0'
// and '1' characters, suitable for Codec.DecodeBits.
func Join(paths []BitPath) string {
	var n int
	for _, p := range paths {
		n += len(p.bits)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, p := range paths {
		sb.WriteString(p.bits)
	}
	return sb.String()
}

func bitChar(bit bool) byte {
	if bit {
		return '1'
	}
	return '0'
}

func isBitString(str string) bool {
	for i := 0; i < len(str); i++ {
		if ch := str[i]; ch != '0' && ch != '1' {
			return false
		}
	}
	return true
}

// type byPath {{{

// byPath sorts BitPaths shortest first, then by bits.
type byPath []BitPath

func (list byPath) Sort() {
	sort.Sort(list)
}

func (list byPath) Len() int {
	return len(list)
}

func (list byPath) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byPath) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Len() != b.Len() {
		return a.Len() < b.Len()
	}
	return a.Less(b)
}

var _ sort.Interface = byPath(nil)

// }}}
