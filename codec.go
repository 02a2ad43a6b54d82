package huffcode

import (
	"github.com/chronos-tachyon/assert"
)

// Codec encodes and decodes symbol sequences using a shared Table.
//
// Every operation is all-or-nothing: on error, no partial output is
// returned.  A Codec is safe for concurrent use by multiple goroutines.
type Codec[K comparable] struct {
	table *Table[K]
}

// NewCodec returns a Codec for the given Table.  The Table is shared, not
// copied.
func NewCodec[K comparable](t *Table[K]) *Codec[K] {
	assert.Assertf(t != nil, "NewCodec called with a nil *Table")
	return &Codec[K]{table: t}
}

// Table returns the Table used by this Codec.
func (c *Codec[K]) Table() *Table[K] {
	return c.table
}

// Encode returns the code for each symbol in seq, in order.
//
// If any symbol is not in the Table's alphabet, Encode returns a
// *SymbolError that identifies the first such symbol and its index.
//
func (c *Codec[K]) Encode(seq []K) ([]BitPath, error) {
	out := make([]BitPath, len(seq))
	for index, sym := range seq {
		p, found := c.table.forward[sym]
		if !found {
			return nil, c.table.symbolError(sym, index)
		}
		out[index] = p
	}
	return out, nil
}

// EncodeBits is like Encode, but concatenates the codes into a single string
// of '0' and '1' characters.
func (c *Codec[K]) EncodeBits(seq []K) (string, error) {
	paths, err := c.Encode(seq)
	if err != nil {
		return "", err
	}
	return Join(paths), nil
}

// Decode returns the symbol for each code in paths, in order.
//
// If any code is not in the Table, Decode returns a *CodeError that
// identifies the first such code and its index.
//
func (c *Codec[K]) Decode(paths []BitPath) ([]K, error) {
	out := make([]K, len(paths))
	for index, p := range paths {
		sym, found := c.table.inverse[p]
		if !found {
			return nil, &CodeError{Code: p, Index: index}
		}
		out[index] = sym
	}
	return out, nil
}

// DecodeBits decodes a concatenated string of codes, such as one returned by
// EncodeBits.  Characters other than '0' and '1' are skipped.
//
// Bits are read one at a time into a candidate code, and the candidate is
// emitted as soon as it matches a complete code.  Because the code is
// prefix-free, the first match is always the symbol that was encoded.
//
// If the input ends partway through a code, DecodeBits returns a
// *TruncatedError.  Trailing characters other than '0' and '1' are skipped
// like any others, so "0 " decodes the same as "0".  If the candidate stops
// being a prefix of any code, which can only happen for an incomplete code
// passed to NewTable, DecodeBits returns a *CodeError.
//
func (c *Codec[K]) DecodeBits(raw string) ([]K, error) {
	t := c.table

	var out []K
	if t.minSize > 0 {
		out = make([]K, 0, len(raw)/t.minSize)
	}

	candidate := make([]byte, 0, t.maxSize)
	var pd prefixData[K]
	var start int
	for index := 0; index < len(raw); index++ {
		ch := raw[index]
		if ch != '0' && ch != '1' {
			continue
		}
		if len(candidate) == 0 {
			start = index
		}
		candidate = append(candidate, ch)

		var found bool
		pd, found = t.prefixes[string(candidate)]
		if !found {
			return nil, &CodeError{Code: BitPath{bits: string(candidate)}, Index: start}
		}
		if pd.leaf {
			out = append(out, pd.symbol)
			candidate = candidate[:0]
		}
	}

	if len(candidate) != 0 {
		return nil, &TruncatedError{
			Residual: BitPath{bits: string(candidate)},
			Offset:   start,
			Needed:   pd.minSize - len(candidate),
		}
	}
	return out, nil
}
