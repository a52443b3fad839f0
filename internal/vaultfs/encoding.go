package vaultfs

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// legacyEncodings is the ordered fallback cascade tried after UTF-8.
var legacyEncodings = []*charmap.Charmap{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// DecodeText decodes raw note bytes into a string, never failing.
//
// Valid UTF-8 (with or without BOM) passes through. Otherwise the legacy
// encodings are tried in order; a candidate is accepted only when it decodes
// every byte (no replacement runes). The last resort keeps the bytes and
// substitutes replacement characters for the undecodable ones.
func DecodeText(data []byte) string {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data)
	}

	for _, enc := range legacyEncodings {
		out, err := enc.NewDecoder().Bytes(data)
		if err == nil && !bytes.ContainsRune(out, utf8.RuneError) {
			return string(out)
		}
	}

	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
