// Package token reads the claims carried by a console credential.
//
// Decoding never verifies the signature. The result is only a display hint;
// the remote API is the one that authorizes requests.
package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"qrmenu/internal/model"
)

var ErrMalformed = errors.New("malformed credential")

type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode credential: %s: %v", e.Reason, e.Err)
	}
	return "decode credential: " + e.Reason
}

func (e *DecodeError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformed, e.Err}
	}
	return []error{ErrMalformed}
}

// Decode parses the payload segment of a three-part credential.
func Decode(credential string) (*model.Claims, error) {
	parts := strings.Split(credential, ".")
	if len(parts) < 2 {
		return nil, &DecodeError{Reason: "missing payload segment"}
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}
	if !utf8.Valid(raw) {
		return nil, &DecodeError{Reason: "payload is not utf-8"}
	}

	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{")) {
		return nil, &DecodeError{Reason: "payload is not a json object"}
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, &DecodeError{Reason: "invalid json payload", Err: err}
	}
	return claimsFrom(payload), nil
}

// claimsFrom picks the known claims out of a payload. Numbers are formatted
// as strings; values of any other unexpected type are left empty.
func claimsFrom(payload map[string]any) *model.Claims {
	c := &model.Claims{
		AccountType:    model.Role(stringClaim(payload["accountType"])),
		FirstName:      stringClaim(payload["firstName"]),
		LastName:       stringClaim(payload["lastName"]),
		ProfilePicture: stringClaim(payload["profilePicture"]),
	}
	c.Subject = stringClaim(payload["sub"])
	c.ID = stringClaim(payload["jti"])
	c.Issuer = stringClaim(payload["iss"])
	c.ExpiresAt = dateClaim(payload["exp"])
	c.IssuedAt = dateClaim(payload["iat"])
	return c
}

func stringClaim(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func dateClaim(v any) *jwt.NumericDate {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return jwt.NewNumericDate(time.UnixMilli(int64(f * 1000)))
}

func decodeSegment(seg string) ([]byte, error) {
	seg = strings.NewReplacer("-", "+", "_", "/").Replace(seg)
	seg = strings.TrimRight(seg, "=")
	if seg == "" {
		return nil, errors.New("empty segment")
	}
	return base64.RawStdEncoding.DecodeString(seg)
}
