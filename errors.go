package huffcode

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when a Table is built from no symbols.
	ErrEmptyAlphabet = errors.New("huffcode: empty alphabet")

	// ErrDegenerateAlphabet is returned when a Table is built from a seed
	// containing only one distinct symbol.  Such a seed has no meaningful
	// Huffman code: the sole symbol would need the empty BitPath, which
	// cannot be told apart from the end of a concatenated bit string.
	ErrDegenerateAlphabet = errors.New("huffcode: alphabet has only one distinct symbol")

	// ErrSymbolNotInAlphabet is returned when encoding a symbol that the
	// Table has no code for.
	ErrSymbolNotInAlphabet = errors.New("huffcode: symbol not in alphabet")

	// ErrUnknownCode is returned when decoding a BitPath that the Table has
	// no symbol for.
	ErrUnknownCode = errors.New("huffcode: unknown code")

	// ErrTruncatedInput is returned when a concatenated bit string ends in
	// the middle of a code.
	ErrTruncatedInput = errors.New("huffcode: truncated input")

	// ErrEmptyCode is returned by NewTable when a symbol maps to the empty
	// BitPath.
	ErrEmptyCode = errors.New("huffcode: empty code")

	// ErrDuplicateCode is returned by NewTable when two symbols map to the
	// same BitPath.
	ErrDuplicateCode = errors.New("huffcode: duplicate code")

	// ErrNotPrefixFree is returned by NewTable when one code is a prefix of
	// another.
	ErrNotPrefixFree = errors.New("huffcode: code is not prefix-free")
)

// SymbolError reports a symbol that could not be encoded.
type SymbolError[K comparable] struct {
	// Symbol is the offending symbol.
	Symbol K

	// Index is the position of Symbol in the input sequence.
	Index int

	format func(K) string
}

// Error fulfills the error interface.
func (err *SymbolError[K]) Error() string {
	format := err.format
	if format == nil {
		format = formatDefault[K]
	}
	return fmt.Sprintf("%v: symbol %s at index %d", ErrSymbolNotInAlphabet, format(err.Symbol), err.Index)
}

// Unwrap returns ErrSymbolNotInAlphabet.
func (err *SymbolError[K]) Unwrap() error {
	return ErrSymbolNotInAlphabet
}

// CodeError reports a BitPath that could not be decoded.
type CodeError struct {
	// Code is the offending BitPath.
	Code BitPath

	// Index is the position of Code in the input sequence, or the offset of
	// its first bit in a concatenated bit string.
	Index int
}

// Error fulfills the error interface.
func (err *CodeError) Error() string {
	return fmt.Sprintf("%v: %s at index %d", ErrUnknownCode, err.Code, err.Index)
}

// Unwrap returns ErrUnknownCode.
func (err *CodeError) Unwrap() error {
	return ErrUnknownCode
}

// TruncatedError reports trailing bits that do not form a complete code.
type TruncatedError struct {
	// Residual holds the unmatched trailing bits.
	Residual BitPath

	// Offset is the position in the input string at which Residual starts.
	Offset int

	// Needed is the minimum number of additional bits that would complete
	// a code.
	Needed int
}

// Error fulfills the error interface.
func (err *TruncatedError) Error() string {
	return fmt.Sprintf("%v: %d trailing bits %s at offset %d, need at least %d more", ErrTruncatedInput, err.Residual.Len(), err.Residual, err.Offset, err.Needed)
}

// Unwrap returns ErrTruncatedInput.
func (err *TruncatedError) Unwrap() error {
	return ErrTruncatedInput
}

// TableError reports a problem with the codes passed to NewTable.
type TableError struct {
	// Err is one of ErrEmptyCode, ErrDuplicateCode, or ErrNotPrefixFree.
	Err error

	// Code is the offending BitPath.
	Code BitPath

	// Other is the BitPath that Code collides with, if any.
	Other BitPath
}

// Error fulfills the error interface.
func (err *TableError) Error() string {
	if err.Err == ErrEmptyCode {
		return err.Err.Error()
	}
	return fmt.Sprintf("%v: %s conflicts with %s", err.Err, err.Code, err.Other)
}

// Unwrap returns the underlying sentinel error.
func (err *TableError) Unwrap() error {
	return err.Err
}

var (
	_ error = (*SymbolError[int])(nil)
	_ error = (*CodeError)(nil)
	_ error = (*TruncatedError)(nil)
	_ error = (*TableError)(nil)
)
