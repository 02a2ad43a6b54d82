package huffcode

import (
	"bytes"
	"cmp"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Table is an immutable, bidirectional mapping between symbols and the
// BitPaths of a prefix-free code.
//
// A Table is safe for concurrent use by multiple goroutines.
type Table[K comparable] struct {
	symbols  []K
	forward  map[K]BitPath
	inverse  map[BitPath]K
	weights  map[K]uint64
	prefixes map[string]prefixData[K]
	format   func(K) string
	minSize  int
	maxSize  int
}

// Build constructs the Huffman code for the given seed sequence.  Each
// distinct symbol in seed becomes one entry of the Table, weighted by the
// number of times it occurs.
//
// Symbols of equal weight are ordered by the tie-break given in opts (see
// WithCompare and WithRank), so that building twice from the same seed
// always yields the same Table.
//
// Build fails with ErrEmptyAlphabet if seed is empty, and with
// ErrDegenerateAlphabet if seed contains only one distinct symbol.
//
func Build[K comparable](seed []K, opts ...Option[K]) (*Table[K], error) {
	cfg := makeConfig(opts)

	if len(seed) == 0 {
		return nil, ErrEmptyAlphabet
	}

	freq := make(map[K]uint64)
	var distinct []K
	for _, sym := range seed {
		if _, seen := freq[sym]; !seen {
			distinct = append(distinct, sym)
		}
		freq[sym]++
	}

	if len(distinct) == 1 {
		return nil, fmt.Errorf("%w: %s", ErrDegenerateAlphabet, cfg.format(distinct[0]))
	}

	// Order the leaves lightest first.  Among equal weights the symbol that
	// sorts later goes first, so it is merged first and takes the 0 branch.
	// The stable sort leaves first-occurrence order as the final tie-break.

	compare := cfg.comparator(distinct)
	slices.SortStableFunc(distinct, func(a, b K) int {
		if c := cmp.Compare(freq[a], freq[b]); c != 0 {
			return c
		}
		return compare(b, a)
	})

	weights := make([]uint64, len(distinct))
	for index, sym := range distinct {
		weights[index] = freq[sym]
	}

	t := buildTree(weights)
	t.checkWeights()
	rootWeight := t.nodes[t.root].weight
	assert.Assertf(rootWeight == uint64(len(seed)), "root weight %d != seed length %d", rootWeight, len(seed))

	forward := make(map[K]BitPath, len(distinct))
	t.walk(func(leaf int32, path []byte) {
		forward[distinct[leaf]] = BitPath{bits: string(path)}
	})

	// Most frequent first, then in symbol order.
	slices.Reverse(distinct)

	return newTable(distinct, forward, freq, cfg.format), nil
}

// BuildOrdered is like Build, but breaks ties between symbols of equal
// weight using the natural order of K.  Options in opts take precedence.
func BuildOrdered[K cmp.Ordered](seed []K, opts ...Option[K]) (*Table[K], error) {
	all := make([]Option[K], 0, len(opts)+1)
	all = append(all, WithCompare(cmp.Compare[K]))
	all = append(all, opts...)
	return Build(seed, all...)
}

// BuildRunes builds a Table over the runes of text.  Ties are broken by code
// point, and symbols are rendered as quoted rune literals.
func BuildRunes(text string, opts ...Option[rune]) (*Table[rune], error) {
	all := make([]Option[rune], 0, len(opts)+1)
	all = append(all, WithFormatter(formatRune))
	all = append(all, opts...)
	return BuildOrdered([]rune(text), all...)
}

// NewTable constructs a Table from an existing symbol-to-code mapping, such
// as one produced by an earlier Table's Lookup method.  The mapping is
// copied.
//
// The codes must be non-empty, distinct, and prefix-free.  Unlike Build,
// NewTable accepts a single symbol, provided its code is not empty.
//
func NewTable[K comparable](codes map[K]BitPath, opts ...Option[K]) (*Table[K], error) {
	cfg := makeConfig(opts)

	if len(codes) == 0 {
		return nil, ErrEmptyAlphabet
	}

	forward := make(map[K]BitPath, len(codes))
	inverse := make(map[BitPath]K, len(codes))
	paths := make([]BitPath, 0, len(codes))
	for sym, p := range codes {
		if p.IsEmpty() {
			return nil, &TableError{Err: ErrEmptyCode, Code: p}
		}
		if _, found := inverse[p]; found {
			return nil, &TableError{Err: ErrDuplicateCode, Code: p, Other: p}
		}
		forward[sym] = p
		inverse[p] = sym
		paths = append(paths, p)
	}

	// In lexicographic order, any code that is a prefix of another code is
	// also a prefix of its immediate successor.
	sort.Slice(paths, func(i, j int) bool {
		return paths[i].Less(paths[j])
	})
	for index := 1; index < len(paths); index++ {
		prev, next := paths[index-1], paths[index]
		if next.HasPrefix(prev) {
			return nil, &TableError{Err: ErrNotPrefixFree, Code: prev, Other: next}
		}
	}

	byPath(paths).Sort()
	symbols := make([]K, len(paths))
	for index, p := range paths {
		symbols[index] = inverse[p]
	}

	return newTable(symbols, forward, nil, cfg.format), nil
}

func newTable[K comparable](symbols []K, forward map[K]BitPath, weights map[K]uint64, format func(K) string) *Table[K] {
	t := &Table[K]{
		symbols:  symbols,
		forward:  forward,
		inverse:  make(map[BitPath]K, len(forward)),
		weights:  weights,
		prefixes: make(map[string]prefixData[K], 2*len(forward)),
		format:   format,
	}

	first := true
	for _, sym := range symbols {
		p := forward[sym]
		t.inverse[p] = sym
		fillPrefixes(t.prefixes, sym, p.bits)

		size := p.Len()
		if first {
			first = false
			t.minSize = size
			t.maxSize = size
		} else if t.minSize > size {
			t.minSize = size
		} else if t.maxSize < size {
			t.maxSize = size
		}
	}

	assert.Assertf(len(t.inverse) == len(t.forward), "%d codes for %d symbols", len(t.inverse), len(t.forward))
	return t
}

// Len returns the number of distinct symbols in the Table's alphabet.
func (t *Table[K]) Len() int {
	return len(t.symbols)
}

// Symbols returns the Table's alphabet.  For a Table made by Build, the
// symbols are listed most frequent first; for one made by NewTable, they are
// listed in order of their codes, shortest first.
func (t *Table[K]) Symbols() []K {
	return slices.Clone(t.symbols)
}

// Codes returns every code in the Table, shortest first, with codes of equal
// length in lexicographic order.
func (t *Table[K]) Codes() []BitPath {
	out := make(byPath, 0, len(t.inverse))
	for p := range t.inverse {
		out = append(out, p)
	}
	out.Sort()
	return out
}

// Lookup returns the code assigned to sym.
func (t *Table[K]) Lookup(sym K) (BitPath, bool) {
	p, found := t.forward[sym]
	return p, found
}

// Symbol returns the symbol assigned to code p.
func (t *Table[K]) Symbol(p BitPath) (K, bool) {
	sym, found := t.inverse[p]
	return sym, found
}

// Contains returns true iff sym is in the Table's alphabet.
func (t *Table[K]) Contains(sym K) bool {
	_, found := t.forward[sym]
	return found
}

// IsCode returns true iff p is a complete code in the Table.
func (t *Table[K]) IsCode(p BitPath) bool {
	_, found := t.inverse[p]
	return found
}

// Match looks up a complete or partial code.
//
// If p is a complete code, Match returns its symbol with complete == true,
// and minSize == maxSize == p.Len().
//
// If p is a proper prefix of one or more codes, complete is false and at
// least (minSize - p.Len()) additional bits are required to finish the code.
// No more than (maxSize - p.Len()) additional bits will be required.
//
// If no code begins with p, complete is false and minSize == maxSize == 0.
//
func (t *Table[K]) Match(p BitPath) (sym K, complete bool, minSize int, maxSize int) {
	pd, found := t.prefixes[p.bits]
	if !found {
		return sym, false, 0, 0
	}
	return pd.symbol, pd.leaf, pd.minSize, pd.maxSize
}

// Weight returns the number of times sym occurred in the seed that built the
// Table.  It returns false if sym is not in the alphabet, or if the Table was
// made by NewTable and has no weights.
func (t *Table[K]) Weight(sym K) (uint64, bool) {
	w, found := t.weights[sym]
	return w, found
}

// MinSize is the bit length of the shortest code.
func (t *Table[K]) MinSize() int {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *Table[K]) MaxSize() int {
	return t.maxSize
}

// EncodedLen returns the number of bits needed to encode seq.
func (t *Table[K]) EncodedLen(seq []K) (int, error) {
	var n int
	for index, sym := range seq {
		p, found := t.forward[sym]
		if !found {
			return 0, t.symbolError(sym, index)
		}
		n += p.Len()
	}
	return n, nil
}

// Dump writes a programmer-readable listing of the Table to the given
// writer: first each symbol with its code, then each code with its symbol.
func (t *Table[K]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Table{\n")
	fmt.Fprintf(&buf, "\tLen() = %d\n", len(t.symbols))
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for _, sym := range t.symbols {
		p := t.forward[sym]
		if weight, found := t.weights[sym]; found {
			fmt.Fprintf(&buf, "\tEncode(%s) = %s (weight %d)\n", t.format(sym), p, weight)
		} else {
			fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", t.format(sym), p)
		}
	}
	for _, p := range t.Codes() {
		fmt.Fprintf(&buf, "\tDecode(%s) = %s\n", p, t.format(t.inverse[p]))
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (t *Table[K]) DebugString() string {
	var buf bytes.Buffer
	_, _ = t.Dump(&buf)
	return buf.String()
}

// String returns a brief description of the Table.
func (t *Table[K]) String() string {
	return fmt.Sprintf("(Huffman table with %d symbols, with code lengths of %d .. %d bits)", len(t.symbols), t.minSize, t.maxSize)
}

var _ fmt.Stringer = (*Table[int])(nil)

func (t *Table[K]) symbolError(sym K, index int) error {
	return &SymbolError[K]{Symbol: sym, Index: index, format: t.format}
}

// prefixData describes one prefix of the code.  For a complete code, leaf is
// true and symbol is the decoded symbol.  minSize and maxSize bound the
// lengths of the complete codes that begin with this prefix.
type prefixData[K comparable] struct {
	symbol  K
	leaf    bool
	minSize int
	maxSize int
}

func fillPrefixes[K comparable](table map[string]prefixData[K], sym K, code string) {
	pd := prefixData[K]{symbol: sym, leaf: true, minSize: len(code), maxSize: len(code)}
	table[code] = pd

	for len(code) != 0 {
		// For each code "xxx...a", look up the sibling "xxx...A" where
		// A = NOT a, and merge the two into their parent "xxx...".

		last := len(code) - 1
		sibling := code[:last] + string(flipBit(code[last]))

		var parent prefixData[K]
		parent.minSize, parent.maxSize = pd.minSize, pd.maxSize
		if sd, found := table[sibling]; found {
			if parent.minSize > sd.minSize {
				parent.minSize = sd.minSize
			}
			if parent.maxSize < sd.maxSize {
				parent.maxSize = sd.maxSize
			}
		}

		code = code[:last]

		// If the parent is already up to date, so are its ancestors.

		if old, found := table[code]; found && old == parent {
			break
		}

		table[code] = parent
		pd = parent
	}
}

func flipBit(ch byte) byte {
	if ch == '0' {
		return '1'
	}
	return '0'
}
