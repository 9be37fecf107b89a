package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func issueToken(t *testing.T, creds Credentials, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	TokenHandler(creds)(rec, req)
	return rec
}

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestTokenHandler_IssuesValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	creds := Credentials{Email: "admin@example.com", Password: "s3cret"}

	rec := issueToken(t, creds, "admin@example.com", "s3cret")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	tok, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@example.com", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
}

func TestTokenHandler_RejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	creds := Credentials{Email: "admin@example.com", Password: "s3cret"}

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "admin@example.com", "wrong"},
		{"wrong email", "intruder@example.com", "s3cret"},
		{"both wrong", "intruder@example.com", "wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := issueToken(t, creds, tt.email, tt.password)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestTokenHandler_UnconfiguredCredentialsDisabled(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	rec := issueToken(t, Credentials{}, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenHandler_MalformedBody(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	creds := Credentials{Email: "admin@example.com", Password: "s3cret"}

	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	TokenHandler(creds)(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	protected := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UserFromContext(r.Context())))
	}))

	validClaims := jwt.MapClaims{
		"sub":  "admin@example.com",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"valid admin token", "Bearer " + signToken(t, validClaims, testSecret), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, validClaims, "other-secret"), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, jwt.MapClaims{
			"sub": "admin@example.com", "role": "admin",
			"exp": time.Now().Add(-time.Minute).Unix(),
		}, testSecret), http.StatusUnauthorized},
		{"non-admin role", "Bearer " + signToken(t, jwt.MapClaims{
			"sub": "reader@example.com", "role": "reader",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, testSecret), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/ingest/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				assert.Equal(t, "admin@example.com", rec.Body.String())
			}
		})
	}
}
