package devtools

import (
	"crypto/rand"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bobmcallan/abacus/internal/calc"
)

// JWTResult is a decoded, unverified JSON Web Token.
type JWTResult struct {
	Header    map[string]interface{} `json:"header"`
	Claims    map[string]interface{} `json:"claims"`
	Algorithm string                 `json:"algorithm"`
	IssuedAt  string                 `json:"issued_at,omitempty"`
	ExpiresAt string                 `json:"expires_at,omitempty"`
	Expired   *bool                  `json:"expired,omitempty"`
	Signature string                 `json:"signature"`
	Verified  bool                   `json:"verified"`
}

// DecodeJWT parses a token without checking its signature.
func DecodeJWT(token string, now time.Time) (*JWTResult, error) {
	token = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "Bearer "))
	claims := jwt.MapClaims{}
	parsed, parts, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return nil, calc.Invalid("token", "is not a well-formed JWT: %v", err)
	}
	res := &JWTResult{
		Header:    parsed.Header,
		Claims:    claims,
		Algorithm: parsed.Method.Alg(),
	}
	if len(parts) == 3 {
		res.Signature = parts[2]
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		res.IssuedAt = iat.UTC().Format(time.RFC3339)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		res.ExpiresAt = exp.UTC().Format(time.RFC3339)
		expired := now.After(exp.Time)
		res.Expired = &expired
	}
	return res, nil
}

// UUIDResult is the output of the UUID tool.
type UUIDResult struct {
	Version int      `json:"version"`
	UUIDs   []string `json:"uuids"`
}

// GenerateUUIDs returns count random (v4) or time-ordered (v7) UUIDs.
func GenerateUUIDs(version, count int, upper bool) (*UUIDResult, error) {
	if count < 1 || count > 500 {
		return nil, calc.Invalid("count", "must be between 1 and 500")
	}
	gen := uuid.NewRandom
	switch version {
	case 4:
	case 7:
		gen = uuid.NewV7
	default:
		return nil, calc.Invalid("version", "must be 4 or 7")
	}
	res := &UUIDResult{Version: version, UUIDs: make([]string, 0, count)}
	for range count {
		id, err := gen()
		if err != nil {
			return nil, err
		}
		s := id.String()
		if upper {
			s = strings.ToUpper(s)
		}
		res.UUIDs = append(res.UUIDs, s)
	}
	return res, nil
}

// UUIDInfo describes a parsed UUID.
type UUIDInfo struct {
	UUID    string `json:"uuid"`
	Version int    `json:"version"`
	Variant string `json:"variant"`
	Time    string `json:"time,omitempty"`
}

// InspectUUID parses s and reports its version, variant and embedded time.
func InspectUUID(s string) (*UUIDInfo, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, calc.Invalid("uuid", "is not a valid UUID")
	}
	info := &UUIDInfo{UUID: id.String(), Version: int(id.Version()), Variant: id.Variant().String()}
	switch id.Version() {
	case 1, 2, 6, 7:
		sec, nsec := id.Time().UnixTime()
		info.Time = time.Unix(sec, nsec).UTC().Format(time.RFC3339Nano)
	}
	return info, nil
}

// Password character classes.
const (
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{};:,.<>?/"
	ambiguous   = "Il1O0o"
)

// PasswordOptions selects the password alphabet.
type PasswordOptions struct {
	Length           int
	Lowercase        bool
	Uppercase        bool
	Digits           bool
	Symbols          bool
	ExcludeAmbiguous bool
}

// PasswordResult is the output of the password generator.
type PasswordResult struct {
	Password    string  `json:"password"`
	Length      int     `json:"length"`
	PoolSize    int     `json:"pool_size"`
	EntropyBits float64 `json:"entropy_bits"`
	Strength    string  `json:"strength"`
}

// GeneratePassword draws from crypto/rand and guarantees one character from
// every selected class.
func GeneratePassword(opts PasswordOptions) (*PasswordResult, error) {
	if opts.Length < 4 || opts.Length > 256 {
		return nil, calc.Invalid("length", "must be between 4 and 256")
	}
	var classes []string
	for _, c := range []struct {
		on    bool
		chars string
	}{
		{opts.Lowercase, lowerChars},
		{opts.Uppercase, upperChars},
		{opts.Digits, digitChars},
		{opts.Symbols, symbolChars},
	} {
		if !c.on {
			continue
		}
		chars := c.chars
		if opts.ExcludeAmbiguous {
			chars = strings.Map(func(r rune) rune {
				if strings.ContainsRune(ambiguous, r) {
					return -1
				}
				return r
			}, chars)
		}
		classes = append(classes, chars)
	}
	if len(classes) == 0 {
		return nil, calc.Invalid("classes", "at least one character class must be selected")
	}
	pool := strings.Join(classes, "")

	out := make([]byte, 0, opts.Length)
	for _, c := range classes {
		ch, err := pick(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	for len(out) < opts.Length {
		ch, err := pick(pool)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	// shuffle so the guaranteed characters are not always first
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return nil, err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}

	bits := float64(opts.Length) * math.Log2(float64(len(pool)))
	return &PasswordResult{
		Password:    string(out),
		Length:      opts.Length,
		PoolSize:    len(pool),
		EntropyBits: bits,
		Strength:    strength(bits),
	}, nil
}

func pick(chars string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
	if err != nil {
		return 0, err
	}
	return chars[n.Int64()], nil
}

func strength(bits float64) string {
	switch {
	case bits < 40:
		return "weak"
	case bits < 60:
		return "fair"
	case bits < 80:
		return "strong"
	}
	return "very strong"
}
