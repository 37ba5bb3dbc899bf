package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/encoding"
)

func readAll(t *testing.T, input []byte) (string, string) {
	t.Helper()

	r, charset, err := encoding.ToUTF8(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got), charset
}

func TestToUTF8_Passthrough(t *testing.T) {
	input := "date,type,amount,reason\n2024-01-01,expense,12.50,Café ₹\n"

	got, charset := readAll(t, []byte(input))
	assert.Equal(t, input, got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestToUTF8_StripsUTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("reason\nCafé\n")...)

	got, charset := readAll(t, input)
	assert.Equal(t, "reason\nCafé\n", got)
	assert.Equal(t, encoding.CharsetUTF8, charset)
}

func TestToUTF8_UTF16LE(t *testing.T) {
	input := []byte{0xFF, 0xFE, 'o', 0x00, 'k', 0x00}

	got, charset := readAll(t, input)
	assert.Equal(t, "ok", got)
	assert.Equal(t, encoding.CharsetUTF16LE, charset)
}

func TestToUTF8_Latin1(t *testing.T) {
	// "Café;Crème\n" in Windows-1252.
	input := []byte{'C', 'a', 'f', 0xE9, ';', 'C', 'r', 0xE8, 'm', 'e', '\n'}

	got, _ := readAll(t, input)
	assert.Equal(t, "Café;Crème\n", got)
}
