package devtools

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/bobmcallan/abacus/internal/calc"
)

// HashAll selects every supported algorithm.
const HashAll = "all"

var hashers = []struct {
	name string
	new  func() hash.Hash
}{
	{"md5", md5.New},
	{"sha1", sha1.New},
	{"sha256", sha256.New},
	{"sha384", sha512.New384},
	{"sha512", sha512.New},
	{"sha3-256", sha3.New256},
	{"sha3-512", sha3.New512},
	{"blake2b-256", func() hash.Hash { h, _ := blake2b.New256(nil); return h }},
	{"blake2b-512", func() hash.Hash { h, _ := blake2b.New512(nil); return h }},
}

// HashAlgorithms lists the supported digest names.
func HashAlgorithms() []string {
	names := make([]string, len(hashers))
	for i, h := range hashers {
		names[i] = h.name
	}
	return names
}

// Digest is one algorithm's output.
type Digest struct {
	Algorithm string `json:"algorithm"`
	Hex       string `json:"hex"`
	Base64    string `json:"base64"`
	Bits      int    `json:"bits"`
}

// HashResult is the output of the hash generator.
type HashResult struct {
	HMAC    bool     `json:"hmac"`
	Digests []Digest `json:"digests"`
}

// Hash digests input with one algorithm or all of them. A non-empty key
// produces an HMAC instead of a plain digest.
func Hash(algorithm, input, key string) (*HashResult, error) {
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))
	res := &HashResult{HMAC: key != ""}
	for _, h := range hashers {
		if algorithm != HashAll && algorithm != h.name {
			continue
		}
		var d hash.Hash
		if key != "" {
			d = hmac.New(h.new, []byte(key))
		} else {
			d = h.new()
		}
		d.Write([]byte(input))
		sum := d.Sum(nil)
		res.Digests = append(res.Digests, Digest{
			Algorithm: h.name,
			Hex:       hex.EncodeToString(sum),
			Base64:    base64.StdEncoding.EncodeToString(sum),
			Bits:      len(sum) * 8,
		})
	}
	if len(res.Digests) == 0 {
		return nil, calc.Invalid("algorithm", "must be one of %s or all", strings.Join(HashAlgorithms(), ", "))
	}
	return res, nil
}

// BcryptResult is the output of the bcrypt tool.
type BcryptResult struct {
	Mode  string `json:"mode"`
	Hash  string `json:"hash,omitempty"`
	Cost  int    `json:"cost"`
	Match *bool  `json:"match,omitempty"`
}

// Bcrypt hashes password at cost, or verifies it against an existing hash.
func Bcrypt(mode, password, existing string, cost int) (*BcryptResult, error) {
	if password == "" {
		return nil, calc.Invalid("password", "is required")
	}
	if len(password) > 72 {
		return nil, calc.Invalid("password", "must be at most 72 bytes")
	}
	switch mode {
	case "hash":
		if cost < bcrypt.MinCost || cost > 14 {
			return nil, calc.Invalid("cost", "must be between %d and 14", bcrypt.MinCost)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return nil, calc.Invalid("password", "%v", err)
		}
		return &BcryptResult{Mode: mode, Hash: string(h), Cost: cost}, nil
	case "verify":
		c, err := bcrypt.Cost([]byte(existing))
		if err != nil {
			return nil, calc.Invalid("hash", "is not a bcrypt hash")
		}
		ok := bcrypt.CompareHashAndPassword([]byte(existing), []byte(password)) == nil
		return &BcryptResult{Mode: mode, Cost: c, Match: &ok}, nil
	}
	return nil, calc.Invalid("mode", "must be hash or verify")
}
