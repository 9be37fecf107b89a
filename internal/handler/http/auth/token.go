// Package auth issues and validates the JWT bearer tokens guarding the
// mutating API endpoints (on-demand scraping, manual ingestion runs).
// Read endpoints stay public.
package auth

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"newshub/internal/handler/http/requestid"
)

const tokenTTL = 1 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Credentials holds the single admin identity, loaded from ADMIN_EMAIL and
// ADMIN_PASSWORD. When either variable is unset, token issuance is disabled.
type Credentials struct {
	Email    string
	Password string
}

// CredentialsFromEnv loads the admin credentials from the environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		Email:    os.Getenv("ADMIN_EMAIL"),
		Password: os.Getenv("ADMIN_PASSWORD"),
	}
}

// Configured reports whether both credential fields are set.
func (c Credentials) Configured() bool {
	return c.Email != "" && c.Password != ""
}

func (c Credentials) match(email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(c.Email), []byte(email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	return emailOK && passOK
}

// TokenHandler authenticates the admin identity and issues a short-lived
// HS256 JWT with the admin role.
func TokenHandler(creds Credentials) http.HandlerFunc {
	secret := []byte(os.Getenv("JWT_SECRET"))
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		if !creds.Configured() || len(secret) == 0 {
			logger.Warn("authentication rejected: admin credentials not configured")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if !creds.match(req.Email, req.Password) {
			logger.Warn("authentication failed",
				slog.String("reason", "invalid_credentials"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  req.Email,
			"role": "admin",
			"exp":  time.Now().Add(tokenTTL).Unix(),
		})

		signed, err := token.SignedString(secret)
		if err != nil {
			logger.Error("token generation failed",
				slog.Any("error", err),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			http.Error(w, "token generation failed", http.StatusInternalServerError)
			return
		}

		logger.Info("authentication successful",
			slog.String("user_email", req.Email),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tokenResponse{Token: signed}); err != nil {
			logger.Error("failed to encode token response", slog.Any("error", err))
		}
	}
}
