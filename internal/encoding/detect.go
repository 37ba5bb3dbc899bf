// Package encoding normalizes uploaded text files to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const sniffSize = 4096

// Charset names reported by ToUTF8.
const (
	CharsetUTF8        = "UTF-8"
	CharsetUTF16LE     = "UTF-16LE"
	CharsetUTF16BE     = "UTF-16BE"
	CharsetWindows1252 = "windows-1252"
	CharsetISO88591    = "ISO-8859-1"
	CharsetISO885915   = "ISO-8859-15"
)

var boms = []struct {
	prefix  []byte
	charset string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, CharsetUTF8},
	{[]byte{0xFF, 0xFE}, CharsetUTF16LE},
	{[]byte{0xFE, 0xFF}, CharsetUTF16BE},
}

var decoders = map[string]encoding.Encoding{
	CharsetUTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	CharsetUTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	CharsetWindows1252: charmap.Windows1252,
	CharsetISO88591:    charmap.ISO8859_1,
	CharsetISO885915:   charmap.ISO8859_15,
}

// ToUTF8 wraps r in a reader that yields UTF-8 and reports the charset it
// decided on. A byte order mark wins, then valid UTF-8, then the chardet
// guess, and finally Windows-1252.
func ToUTF8(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, bom := range boms {
		if !bytes.HasPrefix(head, bom.prefix) {
			continue
		}

		if bom.charset == CharsetUTF8 {
			_, _ = br.Discard(len(bom.prefix))
			return br, CharsetUTF8, nil
		}

		return decode(br, bom.charset), bom.charset, nil
	}

	if utf8.Valid(head) {
		return br, CharsetUTF8, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(head)
	if err == nil {
		switch result.Charset {
		case CharsetUTF8:
			return br, CharsetUTF8, nil
		case CharsetISO88591, CharsetWindows1252, CharsetISO885915:
			return decode(br, result.Charset), result.Charset, nil
		}
	}

	return decode(br, CharsetWindows1252), CharsetWindows1252, nil
}

func decode(r io.Reader, charset string) io.Reader {
	return transform.NewReader(r, decoders[charset].NewDecoder())
}
