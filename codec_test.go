package huffcode

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func makeTestCodec(t *testing.T, text string) *Codec[rune] {
	t.Helper()

	tbl, err := BuildRunes(text)
	require.NoError(t, err)
	return NewCodec(tbl)
}

func TestCodec_Scenario(t *testing.T) {
	c := makeTestCodec(t, "aaabbc")
	input := []rune("aaabbc")

	paths, err := c.Encode(input)
	require.NoError(t, err)
	require.Len(t, paths, len(input))
	assert.Equal(t, "000111110", Join(paths))

	decoded, err := c.Decode(paths)
	require.NoError(t, err)
	assert.Equal(t, "aaabbc", string(decoded))

	bits, err := c.EncodeBits(input)
	require.NoError(t, err)
	assert.Equal(t, "000111110", bits)

	decoded, err = c.DecodeBits(bits)
	require.NoError(t, err)
	assert.Equal(t, "aaabbc", string(decoded))
}

func TestCodec_Empty(t *testing.T) {
	c := makeTestCodec(t, "ab")

	paths, err := c.Encode(nil)
	require.NoError(t, err)
	assert.Empty(t, paths)

	syms, err := c.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, syms)

	syms, err = c.DecodeBits("")
	require.NoError(t, err)
	assert.Empty(t, syms)
}

func TestCodec_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789 .,;"

	for round := 0; round < 25; round++ {
		n := 2 + rng.Intn(500)
		var sb strings.Builder
		for i := 0; i < n; i++ {
			// Skew the distribution so codes differ in length.
			limit := 1 + rng.Intn(len(alphabet))
			sb.WriteByte(alphabet[rng.Intn(limit)])
		}
		text := sb.String()
		if strings.Count(text, text[:1]) == len(text) {
			text += "!"
		}

		c := makeTestCodec(t, text)
		input := []rune(text)

		paths, err := c.Encode(input)
		require.NoError(t, err)
		decoded, err := c.Decode(paths)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)

		bits, err := c.EncodeBits(input)
		require.NoError(t, err)
		n2, err := c.Table().EncodedLen(input)
		require.NoError(t, err)
		assert.Len(t, bits, n2)

		decoded, err = c.DecodeBits(bits)
		require.NoError(t, err)
		assert.Equal(t, input, decoded)

		// A subsequence of the seed round-trips too.
		sub := input[:len(input)/2]
		bits, err = c.EncodeBits(sub)
		require.NoError(t, err)
		decoded, err = c.DecodeBits(bits)
		require.NoError(t, err)
		assert.Equal(t, sub, decoded)
	}
}

func TestCodec_RoundTripGeneric(t *testing.T) {
	type token struct {
		Kind  string
		Value int
	}

	seed := []token{
		{"num", 1}, {"op", '+'}, {"num", 2}, {"op", '*'}, {"num", 1},
		{"paren", '('}, {"num", 3}, {"paren", ')'}, {"num", 1}, {"op", '+'},
	}
	tbl, err := Build(seed)
	require.NoError(t, err)
	c := NewCodec(tbl)

	bits, err := c.EncodeBits(seed)
	require.NoError(t, err)
	decoded, err := c.DecodeBits(bits)
	require.NoError(t, err)
	assert.Equal(t, seed, decoded)
}

func TestCodec_EncodeUnknownSymbol(t *testing.T) {
	c := makeTestCodec(t, "aaabbc")

	paths, err := c.Encode([]rune("abzc"))
	assert.Nil(t, paths)
	require.ErrorIs(t, err, ErrSymbolNotInAlphabet)

	var symErr *SymbolError[rune]
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, 'z', symErr.Symbol)
	assert.Equal(t, 2, symErr.Index)
	assert.EqualError(t, err, "huffcode: symbol not in alphabet: symbol 'z' at index 2")

	bits, err := c.EncodeBits([]rune("zz"))
	assert.Equal(t, "", bits)
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)

	_, err = c.Table().EncodedLen([]rune("q"))
	assert.ErrorIs(t, err, ErrSymbolNotInAlphabet)
}

func TestCodec_DecodeUnknownCode(t *testing.T) {
	c := makeTestCodec(t, "aaabbc")

	paths := []BitPath{ParseBitPath("0"), ParseBitPath("1"), ParseBitPath("10")}
	syms, err := c.Decode(paths)
	assert.Nil(t, syms)
	require.ErrorIs(t, err, ErrUnknownCode)

	var codeErr *CodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, ParseBitPath("1"), codeErr.Code)
	assert.Equal(t, 1, codeErr.Index)
	assert.EqualError(t, err, `huffcode: unknown code: "1" at index 1`)
}

func TestCodec_DecodeBitsTruncated(t *testing.T) {
	c := makeTestCodec(t, "aaabbc")

	syms, err := c.DecodeBits("00011111")
	assert.Nil(t, syms)
	require.ErrorIs(t, err, ErrTruncatedInput)

	var truncErr *TruncatedError
	require.True(t, errors.As(err, &truncErr))
	assert.Equal(t, ParseBitPath("1"), truncErr.Residual)
	assert.Equal(t, 7, truncErr.Offset)
	assert.Equal(t, 1, truncErr.Needed)
	assert.EqualError(t, err, `huffcode: truncated input: 1 trailing bits "1" at offset 7, need at least 1 more`)
}

func TestCodec_DecodeBitsHandBuilt(t *testing.T) {
	tbl, err := NewTable(map[string]BitPath{
		"X": ParseBitPath("0"),
		"Y": ParseBitPath("10"),
		"Z": ParseBitPath("11"),
	})
	require.NoError(t, err)
	c := NewCodec(tbl)

	type testRow struct {
		input  string
		expect []string
	}

	testData := [...]testRow{
		{"0", []string{"X"}},
		{"00", []string{"X", "X"}},
		{"0100", []string{"X", "Y", "X"}},
		{"1110", []string{"Z", "Y"}},
		{"0 10 11\n0", []string{"X", "Y", "Z", "X"}},
		{"0 ", []string{"X"}},
		{"10\n\n", []string{"Y"}},
		{" \t", []string{}},
	}
	for _, row := range testData {
		t.Run(fmt.Sprintf("%q", row.input), func(t *testing.T) {
			actual, err := c.DecodeBits(row.input)
			require.NoError(t, err)
			assert.Equal(t, row.expect, actual)
		})
	}

	_, err = c.DecodeBits("0101")
	var truncErr *TruncatedError
	require.True(t, errors.As(err, &truncErr))
	assert.Equal(t, ParseBitPath("1"), truncErr.Residual)
	assert.Equal(t, 3, truncErr.Offset)
	assert.Equal(t, 1, truncErr.Needed)
}

func TestCodec_DecodeBitsTruncatedNeeded(t *testing.T) {
	c := NewCodec(makeTestTable())

	// "110" is one bit short of both "1100" and "1101".
	_, err := c.DecodeBits("0 110")
	var truncErr *TruncatedError
	require.True(t, errors.As(err, &truncErr))
	assert.Equal(t, ParseBitPath("110"), truncErr.Residual)
	assert.Equal(t, 2, truncErr.Offset)
	assert.Equal(t, 1, truncErr.Needed)

	// Under "1" the shortest code is "100", two bits away.
	_, err = c.DecodeBits("01")
	require.True(t, errors.As(err, &truncErr))
	assert.Equal(t, 2, truncErr.Needed)
}

func TestCodec_DecodeBitsIncompleteCode(t *testing.T) {
	tbl, err := NewTable(map[string]BitPath{
		"X": ParseBitPath("0"),
		"Y": ParseBitPath("10"),
	})
	require.NoError(t, err)
	c := NewCodec(tbl)

	syms, err := c.DecodeBits("0110")
	assert.Nil(t, syms)
	require.ErrorIs(t, err, ErrUnknownCode)

	var codeErr *CodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, ParseBitPath("11"), codeErr.Code)
	assert.Equal(t, 1, codeErr.Index)
}

func TestCodec_SingleSymbolTable(t *testing.T) {
	tbl, err := NewTable(map[rune]BitPath{'a': ParseBitPath("1")})
	require.NoError(t, err)
	c := NewCodec(tbl)

	bits, err := c.EncodeBits([]rune("aaa"))
	require.NoError(t, err)
	assert.Equal(t, "111", bits)

	decoded, err := c.DecodeBits(bits)
	require.NoError(t, err)
	assert.Equal(t, "aaa", string(decoded))
}

func TestCodec_NilTable(t *testing.T) {
	assert.Panics(t, func() {
		NewCodec[int](nil)
	})
}

func TestCodec_Concurrent(t *testing.T) {
	text := "it was the best of times, it was the worst of times, it was the age of wisdom"
	c := makeTestCodec(t, text)
	input := []rune(text)

	expectBits, err := c.EncodeBits(input)
	require.NoError(t, err)

	var g errgroup.Group
	for worker := 0; worker < 8; worker++ {
		worker := worker
		g.Go(func() error {
			for i := 0; i < 100; i++ {
				sub := input[(worker+i)%len(input):]
				bits, err := c.EncodeBits(sub)
				if err != nil {
					return err
				}
				decoded, err := c.DecodeBits(bits)
				if err != nil {
					return err
				}
				if string(decoded) != string(sub) {
					return fmt.Errorf("worker %d: round trip mismatch: %q != %q", worker, string(decoded), string(sub))
				}
				if bits != expectBits[len(expectBits)-len(bits):] {
					return fmt.Errorf("worker %d: encoding of a suffix is not a suffix of the encoding", worker)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
