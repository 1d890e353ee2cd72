// Package devtools implements the text-oriented developer utilities: encoders,
// formatters, digests and token/identifier helpers.
package devtools

import (
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/bobmcallan/abacus/internal/calc"
)

// Directions accepted by the encoders.
const (
	Encode = "encode"
	Decode = "decode"
)

// Base64Result is the output of the Base64 tool.
type Base64Result struct {
	Mode      string `json:"mode"`
	Output    string `json:"output"`
	URLSafe   bool   `json:"url_safe"`
	ValidUTF8 bool   `json:"valid_utf8"`
	Bytes     int    `json:"bytes"`
}

// Base64 encodes text as UTF-8 bytes or decodes Base64 back to text. Decoding
// accepts the standard and URL-safe alphabets with or without padding.
func Base64(mode, input string, urlSafe bool) (*Base64Result, error) {
	enc := base64.StdEncoding
	if urlSafe {
		enc = base64.URLEncoding
	}
	res := &Base64Result{Mode: mode, URLSafe: urlSafe}
	switch mode {
	case Encode:
		res.Output = enc.EncodeToString([]byte(input))
		res.Bytes = len(input)
		res.ValidUTF8 = utf8.ValidString(input)
	case Decode:
		raw, err := decodeBase64(input)
		if err != nil {
			return nil, calc.Invalid("input", "is not valid Base64")
		}
		res.Output = string(raw)
		res.Bytes = len(raw)
		res.ValidUTF8 = utf8.Valid(raw)
	default:
		return nil, calc.Invalid("mode", "must be encode or decode")
	}
	return res, nil
}

func decodeBase64(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimRight(s, "=")
	if strings.ContainsAny(s, "-_") {
		return base64.RawURLEncoding.DecodeString(s)
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// URLResult is the output of the URL encoder.
type URLResult struct {
	Mode   string `json:"mode"`
	Output string `json:"output"`
}

// componentSafe holds the bytes encodeURIComponent leaves as-is.
const componentSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_.!~*'()"

// EncodeURIComponent percent-encodes every UTF-8 byte outside componentSafe.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(componentSafe, c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

// URLEncode applies component encoding or decoding. '+' is not treated as a
// space when decoding.
func URLEncode(mode, input string) (*URLResult, error) {
	switch mode {
	case Encode:
		return &URLResult{Mode: mode, Output: EncodeURIComponent(input)}, nil
	case Decode:
		out, err := url.PathUnescape(input)
		if err != nil {
			return nil, calc.Invalid("input", "contains a malformed %%-escape")
		}
		if !utf8.ValidString(out) {
			return nil, calc.Invalid("input", "does not decode to valid UTF-8")
		}
		return &URLResult{Mode: mode, Output: out}, nil
	}
	return nil, calc.Invalid("mode", "must be encode or decode")
}
