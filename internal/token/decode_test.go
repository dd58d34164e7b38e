package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrmenu/internal/model"
)

func sign(t *testing.T, claims model.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestDecodeSignedToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	cred := sign(t, model.Claims{
		AccountType: model.RoleAdmin,
		FirstName:   "Ada",
		LastName:    "Lovelace",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ada@example.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := Decode(cred)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.AccountType)
	assert.Equal(t, "Ada", claims.FirstName)
	assert.Equal(t, "Lovelace", claims.LastName)
	assert.Equal(t, "ada@example.com", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(exp))
}

func TestDecodeIgnoresSignature(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"accountType":"ROLE_WAITER"}`))

	claims, err := Decode("header." + payload + ".not-a-signature")
	require.NoError(t, err)
	assert.Equal(t, model.RoleWaiter, claims.AccountType)
}

func TestDecodeAcceptsBothAlphabetsAndPadding(t *testing.T) {
	// "?>" encodes to characters that differ between the two alphabets.
	raw := []byte(`{"firstName":"?>?>","accountType":"ROLE_USER"}`)
	for _, seg := range []string{
		base64.URLEncoding.EncodeToString(raw),
		base64.RawURLEncoding.EncodeToString(raw),
		base64.StdEncoding.EncodeToString(raw),
	} {
		claims, err := Decode("h." + seg + ".s")
		require.NoError(t, err, seg)
		assert.Equal(t, "?>?>", claims.FirstName)
		assert.Equal(t, model.RoleUser, claims.AccountType)
	}
}

func TestDecodeMalformed(t *testing.T) {
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("hello"))
	array := base64.RawURLEncoding.EncodeToString([]byte(`["ROLE_ADMIN"]`))
	badUTF8 := base64.RawURLEncoding.EncodeToString([]byte{'{', 0xff, '}'})
	truncated := base64.RawURLEncoding.EncodeToString([]byte(`{"accountType":"ROLE_ADMIN"`))

	tests := map[string]string{
		"empty":            "",
		"single segment":   "abc",
		"empty payload":    "abc..def",
		"not base64":       "abc.!!!.def",
		"not json":         "abc." + notJSON + ".def",
		"json array":       "abc." + array + ".def",
		"invalid utf8":     "abc." + badUTF8 + ".def",
		"truncated json":   "abc." + truncated + ".def",
	}
	for name, cred := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := Decode(cred)
			assert.Nil(t, claims)
			require.Error(t, err)

			var de *DecodeError
			assert.True(t, errors.As(err, &de))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeToleratesClaimTypes(t *testing.T) {
	tests := map[string]string{
		"numeric sub":     `{"accountType":"ROLE_ADMIN","sub":42}`,
		"numeric jti":     `{"accountType":"ROLE_ADMIN","jti":7}`,
		"string exp":      `{"accountType":"ROLE_ADMIN","exp":"never"}`,
		"audience object": `{"accountType":"ROLE_ADMIN","aud":{"x":1}}`,
		"extra claims":    `{"accountType":"ROLE_ADMIN","scopes":["a","b"],"nbf":null}`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			claims, err := Decode("h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s")
			require.NoError(t, err)
			assert.Equal(t, model.RoleAdmin, claims.AccountType)
		})
	}
}

func TestDecodeClaimValues(t *testing.T) {
	payload := `{"accountType":"ROLE_USER","firstName":42,"lastName":"Roe","sub":42,"exp":1700000000,"iat":"yesterday"}`

	claims, err := Decode("h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, claims.AccountType)
	assert.Equal(t, "42", claims.FirstName)
	assert.Equal(t, "Roe", claims.LastName)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, int64(1700000000), claims.ExpiresAt.Unix())
	assert.Nil(t, claims.IssuedAt)
}

func TestDecodeNonStringRoleIsEmpty(t *testing.T) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"accountType":1,"firstName":"Ann"}`))

	claims, err := Decode("h." + payload + ".s")
	require.NoError(t, err)
	assert.Empty(t, claims.AccountType)
	assert.Equal(t, "Ann", claims.FirstName)
}
