package auth

import (
	"encoding/base64"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestDecodeCredential(t *testing.T) {
	t.Run("employee token", func(t *testing.T) {
		raw := signedToken(t, jwt.MapClaims{"role": "EMPLOYEE", "employee_id": "42"})

		cred, err := DecodeCredential(raw)
		require.NoError(t, err)
		assert.Equal(t, RoleEmployee, cred.Role)
		assert.Equal(t, "42", cred.EmployeeID)
		assert.Equal(t, raw, cred.Token)
	})

	t.Run("numeric employee_id claim", func(t *testing.T) {
		raw := signedToken(t, jwt.MapClaims{"role": "EMPLOYEE", "employee_id": 7})

		cred, err := DecodeCredential(raw)
		require.NoError(t, err)
		assert.Equal(t, "7", cred.EmployeeID)
	})

	t.Run("admin token without employee_id", func(t *testing.T) {
		raw := signedToken(t, jwt.MapClaims{"role": "ADMIN"})

		cred, err := DecodeCredential(raw)
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, cred.Role)
		assert.Empty(t, cred.EmployeeID)
	})
}

func TestDecodeCredentialMalformed(t *testing.T) {
	badPayload := "eyJhbGciOiJIUzI1NiJ9." +
		base64.RawURLEncoding.EncodeToString([]byte("{not json")) +
		".sig"

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"not a token", "hello"},
		{"wrong segment count", "a.b"},
		{"invalid encoding", "a.!!!.c"},
		{"invalid payload JSON", badPayload},
		{"missing role claim", signedToken(t, jwt.MapClaims{"employee_id": "42"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := DecodeCredential(tt.raw)
			require.Error(t, err)
			assert.Nil(t, cred)

			var decodeErr *DecodeError
			assert.ErrorAs(t, err, &decodeErr)
		})
	}
}
