// Package huffcode implements static Huffman codes over an arbitrary
// alphabet of comparable symbols.
//
// A Table is built once from a seed sequence, where repetitions of a symbol
// give its frequency, and is never modified afterward.  A Codec wraps a
// Table and translates between symbol sequences and BitPath sequences, or a
// single concatenated string of '0' and '1' characters.
//
// Tables and Codecs are safe for concurrent use by multiple goroutines.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffcode
