package document

import (
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// DecodeText converts raw bytes to UTF-8, sniffing the source charset.
// Returns the decoded text and the detected encoding name. Decoding is
// best-effort: on failure the bytes are passed through unchanged.
func DecodeText(b []byte) (string, string) {
	if utf8.Valid(b) {
		return string(stripBOM(b)), "utf-8"
	}
	enc, name, certain := charset.DetermineEncoding(b, "text/plain")
	if !certain {
		// The sniffer falls back to windows-1252 for unlabeled bytes; legacy
		// Russian scripts are overwhelmingly windows-1251.
		enc, name = charmap.Windows1251, "windows-1251"
	}
	decoded, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return string(b), name
	}
	return string(decoded), name
}

func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
