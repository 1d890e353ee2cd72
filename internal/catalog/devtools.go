package catalog

import (
	"context"

	"github.com/bobmcallan/abacus/internal/devtools"
	"github.com/bobmcallan/abacus/internal/models"
)

func (r *Registry) registerDevTools() {
	dev := models.CategoryDevTools
	mode := func(desc string) models.ParamDefinition {
		return def(oneOf(str("mode", desc), devtools.Encode, devtools.Decode), devtools.Encode)
	}

	r.add(models.CalculatorDefinition{
		Name:        "base64",
		Title:       "Base64 Encoder / Decoder",
		Category:    dev,
		Description: "Encodes UTF-8 text to Base64 or decodes it back; supports the URL-safe alphabet.",
		Formula:     "RFC 4648",
		Params: []models.ParamDefinition{
			mode("encode or decode"),
			required(str("input", "Text to encode, or Base64 to decode")),
			def(boolean("url_safe", "Use the URL-safe alphabet when encoding"), false),
		},
	}, Args{"mode": "encode", "input": "hello, wörld"}, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.Base64(a.String("mode"), a.String("input"), a.Bool("url_safe"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "url_encode",
		Title:       "URL Encoder / Decoder",
		Category:    dev,
		Description: "Percent-encodes text as a URI component, or decodes it.",
		Formula:     "encodeURIComponent: all bytes except A-Z a-z 0-9 - _ . ! ~ * ' ( ) become %XX",
		Params: []models.ParamDefinition{
			mode("encode or decode"),
			required(str("input", "Text to encode or decode")),
		},
	}, Args{"mode": "encode", "input": "a b&c=d/é"}, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.URLEncode(a.String("mode"), a.String("input"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "json_format",
		Title:       "JSON Formatter",
		Category:    dev,
		Description: "Pretty-prints, minifies or validates JSON with line and column of errors, or converts it to YAML.",
		Params: []models.ParamDefinition{
			def(oneOf(str("action", "What to do"), devtools.JSONFormat, devtools.JSONMinify, devtools.JSONValidate, devtools.JSONToYAML), devtools.JSONFormat),
			required(str("input", "JSON document")),
			def(integer("indent", "Spaces per level (0 for tabs)"), 2),
		},
	}, Args{"action": "format", "input": `{"name":"abacus","tags":["calc","tools"]}`}, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.FormatJSON(a.String("action"), a.String("input"), a.Int("indent"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "hash",
		Title:       "Hash Generator",
		Category:    dev,
		Description: "MD5, SHA-1, SHA-2, SHA-3 and BLAKE2b digests of text, or an HMAC when a key is given.",
		Params: []models.ParamDefinition{
			def(oneOf(str("algorithm", "Digest algorithm"), append(devtools.HashAlgorithms(), devtools.HashAll)...), "sha256"),
			required(str("input", "Text to hash")),
			str("key", "HMAC key (optional)"),
		},
	}, Args{"algorithm": "sha256", "input": "hello"}, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.Hash(a.String("algorithm"), a.String("input"), a.String("key"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "bcrypt",
		Title:       "Bcrypt Generator",
		Category:    dev,
		Description: "Hashes a password with bcrypt, or verifies a password against a bcrypt hash.",
		Params: []models.ParamDefinition{
			def(oneOf(str("mode", "hash or verify"), "hash", "verify"), "hash"),
			required(str("password", "Password (at most 72 bytes)")),
			str("hash", "Existing hash to verify against"),
			def(integer("cost", "Work factor 4-14"), 10),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.Bcrypt(a.String("mode"), a.String("password"), a.String("hash"), a.Int("cost"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "word_count",
		Title:       "Word Counter",
		Category:    dev,
		Description: "Words, characters, sentences, paragraphs, reading and speaking time, and the most frequent words.",
		Formula:     "reading time = words/200 wpm; speaking = words/130 wpm",
		Params: []models.ParamDefinition{
			required(str("text", "Text to analyse")),
			def(integer("top", "Number of frequent words to list"), 10),
		},
	}, Args{"text": "The quick brown fox jumps over the lazy dog. The dog sleeps."}, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.WordCount(a.String("text"), a.Int("top")), nil
	})

	r.add(models.CalculatorDefinition{
		Name:        "jwt_decode",
		Title:       "JWT Decoder",
		Category:    dev,
		Description: "Decodes a JSON Web Token's header and claims and reports expiry. The signature is not verified.",
		Params: []models.ParamDefinition{
			required(str("token", "Encoded JWT")),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.DecodeJWT(a.String("token"), r.now())
	})

	r.add(models.CalculatorDefinition{
		Name:        "uuid",
		Title:       "UUID Generator",
		Category:    dev,
		Description: "Random (v4) or time-ordered (v7) UUIDs, or inspects an existing UUID.",
		Params: []models.ParamDefinition{
			def(oneOf(integer("version", "4 or 7"), "4", "7"), 4),
			def(integer("count", "How many"), 1),
			def(boolean("uppercase", "Upper-case hex"), false),
			str("inspect", "UUID to parse instead of generating"),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		if s := a.String("inspect"); s != "" {
			return devtools.InspectUUID(s)
		}
		return devtools.GenerateUUIDs(a.Int("version"), a.Int("count"), a.Bool("uppercase"))
	})

	r.add(models.CalculatorDefinition{
		Name:        "password",
		Title:       "Password Generator",
		Category:    dev,
		Description: "Cryptographically random password with at least one character from each chosen class, and its entropy.",
		Formula:     "entropy = length × log2(pool size)",
		Params: []models.ParamDefinition{
			def(integer("length", "Length 4-256"), 16),
			def(boolean("lowercase", "Include a-z"), true),
			def(boolean("uppercase", "Include A-Z"), true),
			def(boolean("digits", "Include 0-9"), true),
			def(boolean("symbols", "Include symbols"), true),
			def(boolean("exclude_ambiguous", "Leave out I, l, 1, O, 0, o"), false),
		},
	}, nil, func(_ context.Context, a Args) (interface{}, error) {
		return devtools.GeneratePassword(devtools.PasswordOptions{
			Length:           a.Int("length"),
			Lowercase:        a.Bool("lowercase"),
			Uppercase:        a.Bool("uppercase"),
			Digits:           a.Bool("digits"),
			Symbols:          a.Bool("symbols"),
			ExcludeAmbiguous: a.Bool("exclude_ambiguous"),
		})
	})
}
