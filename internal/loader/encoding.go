package loader

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/huangsam/lifespan/schema"
	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts raw input bytes into UTF-8 according to the requested encoding.
// Auto keeps valid UTF-8 as-is and treats anything else as Latin-1, which maps
// every byte to a rune and so can never fail.
func decode(data []byte, enc schema.Encoding) ([]byte, schema.Encoding, error) {
	switch enc {
	case schema.UTF8Encoding:
		return bytes.TrimPrefix(data, utf8BOM), schema.UTF8Encoding, nil
	case schema.Latin1Encoding:
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, "", fmt.Errorf("decode latin1: %w", err)
		}
		return out, schema.Latin1Encoding, nil
	default:
		if utf8.Valid(data) {
			return bytes.TrimPrefix(data, utf8BOM), schema.UTF8Encoding, nil
		}
		return decode(data, schema.Latin1Encoding)
	}
}

// skipLines drops the first n physical lines. Blank lines count.
// ok is false when the input ends before n line breaks were seen.
func skipLines(data []byte, n int) (rest []byte, ok bool) {
	for range n {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			return nil, false
		}
		data = data[idx+1:]
	}
	return data, true
}
