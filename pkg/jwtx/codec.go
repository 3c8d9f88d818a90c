package jwtx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrDecode reports a wire string that failed signature verification or is
// structurally malformed. Decode never returns claims alongside this error.
var ErrDecode = errors.New("jwtx: token decode failed")

// base64url alphabet for the structural pre-check in LooksLikeToken.
const b64urlAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// Codec signs and verifies grant token claim sets with a process-wide
// symmetric secret. HS256 only: the method allow-list is pinned so a crafted
// header can never downgrade verification.
type Codec struct {
	secret []byte
	parser *jwt.Parser
}

// NewCodec builds a codec around the signing secret. Claim time validation
// is disabled at parse time on purpose: expiry and not-before belong to the
// record validation step, which must run its checks in a fixed order after
// the scope comparison.
func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: signing secret must not be empty")
	}

	return &Codec{
		secret: secret,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Encode serializes and signs a claim set into the compact three-segment
// wire form.
func (c *Codec) Encode(claims Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign failed: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature of raw and returns the claim set. Any
// failure, signature mismatch, wrong algorithm, truncated or binary
// garbage input, yields an error wrapping ErrDecode and no claims.
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := c.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !token.Valid {
		return nil, ErrDecode
	}

	return claims, nil
}

// LooksLikeToken reports whether s has the shape of a compact JWS: exactly
// three non-empty dot-separated base64url segments. It is a cheap structural
// pre-check to skip the cryptographic path for obvious non-tokens, not a
// security boundary.
func LooksLikeToken(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}

	for _, part := range parts {
		if part == "" {
			return false
		}
		for _, r := range part {
			if !strings.ContainsRune(b64urlAlphabet, r) {
				return false
			}
		}
	}

	return true
}
