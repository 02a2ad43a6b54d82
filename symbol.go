package huffcode

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Option configures how a Table orders and formats its symbols.
type Option[K comparable] func(*config[K])

// WithCompare sets the total order used to break ties between symbols of
// equal frequency.  The function must return a negative number when a sorts
// before b, a positive number when a sorts after b, and zero only when a and
// b are the same symbol.
//
// Of two symbols with equal frequency, the one that sorts later is merged
// first and receives the 0 branch.
func WithCompare[K comparable](compare func(a, b K) int) Option[K] {
	return func(c *config[K]) {
		c.compare = compare
	}
}

// WithRank breaks ties between symbols of equal frequency by comparing the
// integer rank of each symbol: the higher rank is merged first and receives
// the 0 branch.  Symbols with equal rank keep the order in which they first
// appear in the seed.
func WithRank[K comparable](rank func(K) int64) Option[K] {
	return func(c *config[K]) {
		c.compare = func(a, b K) int {
			return cmp.Compare(rank(a), rank(b))
		}
	}
}

// WithFormatter sets the function used to render symbols in Dump and in
// error messages.  The default is fmt's %v verb.
func WithFormatter[K comparable](format func(K) string) Option[K] {
	return func(c *config[K]) {
		c.format = format
	}
}

type config[K comparable] struct {
	compare func(a, b K) int
	format  func(K) string
}

func makeConfig[K comparable](opts []Option[K]) config[K] {
	var c config[K]
	for _, opt := range opts {
		opt(&c)
	}
	if c.format == nil {
		c.format = formatDefault[K]
	}
	return c
}

// comparator returns the tie-break order for the given distinct symbols.
// Without a caller-supplied order, symbols are ranked by the xxHash64 of
// their %#v representation, which is stable across runs for any symbol type
// that doesn't contain pointers.
func (c config[K]) comparator(symbols []K) func(a, b K) int {
	if c.compare != nil {
		return c.compare
	}
	hashes := make(map[K]uint64, len(symbols))
	for _, sym := range symbols {
		hashes[sym] = hashSymbol(sym)
	}
	return func(a, b K) int {
		return cmp.Compare(hashes[a], hashes[b])
	}
}

func hashSymbol[K comparable](sym K) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%#v", sym))
}

func formatDefault[K comparable](sym K) string {
	return fmt.Sprint(sym)
}

func formatRune(r rune) string {
	return strconv.QuoteRune(r)
}
