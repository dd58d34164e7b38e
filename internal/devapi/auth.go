package devapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"qrmenu/internal/model"
)

var (
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type account struct {
	Email          string
	PasswordHash   []byte
	FirstName      string
	LastName       string
	ProfilePicture string
	Role           model.Role
}

type contextKey string

const claimsCtxKey contextKey = "claims"

// AddAccount registers an account with a bcrypt-hashed password.
func (s *Server) AddAccount(reg model.Registration, role model.Role) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(reg.Email))

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[email]; ok {
		return ErrAccountExists
	}
	s.accounts[email] = &account{
		Email:        email,
		PasswordHash: hash,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Role:         role,
	}
	return nil
}

func (s *Server) authenticate(email, password string) (*account, error) {
	s.mu.RLock()
	acc, ok := s.accounts[strings.ToLower(strings.TrimSpace(email))]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

// issueToken signs an HS256 credential carrying the account's display claims.
func (s *Server) issueToken(acc *account) (string, error) {
	now := s.now()
	claims := model.Claims{
		AccountType:    acc.Role,
		FirstName:      acc.FirstName,
		LastName:       acc.LastName,
		ProfilePicture: acc.ProfilePicture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "firstName, lastName, email and password required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}

	// Self-registration always creates a regular user.
	if err := s.AddAccount(req, model.RoleUser); err != nil {
		if errors.Is(err, ErrAccountExists) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	acc, err := s.authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeToken(w, acc)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	acc, err := s.authenticate(req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	s.writeToken(w, acc)
}

func (s *Server) writeToken(w http.ResponseWriter, acc *account) {
	tok, err := s.issueToken(acc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token generation failed")
		return
	}
	w.Header().Set("Authorization", "Bearer "+tok)
	writeJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// authMiddleware verifies the credential signature. This is the check the
// console deliberately does not perform.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		var claims model.Claims
		token, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		}, jwt.WithTimeFunc(s.now))
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsCtxKey, &claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func requireRoles(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(claimsCtxKey).(*model.Claims)
			if !ok || !slices.Contains(roles, claims.AccountType) {
				writeError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
