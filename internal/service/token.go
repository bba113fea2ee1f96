package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/autofix-digital/template-base/config"
	apperrors "github.com/autofix-digital/template-base/internal/errors"
	"github.com/autofix-digital/template-base/internal/model"
)

const passwordHashCost = 12

// TokenClaims is the payload carried by both access and refresh tokens.
type TokenClaims struct {
	UserID uint       `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies JWTs and hashes passwords. Access and
// refresh tokens use distinct secrets so one class of token can never be
// presented as the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.JWT.AccessSecret),
		refreshSecret: []byte(cfg.JWT.RefreshSecret),
		accessTTL:     cfg.JWT.AccessTTL,
		refreshTTL:    cfg.JWT.RefreshTTL,
		now:           time.Now,
	}
}

func (s *TokenService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *TokenService) RefreshTTL() time.Duration { return s.refreshTTL }

// GenerateAccessToken issues a short-lived token used on every request.
func (s *TokenService) GenerateAccessToken(user *model.User) (string, time.Time, error) {
	return s.generate(user, s.accessSecret, s.accessTTL)
}

// GenerateRefreshToken issues the long-lived token stored in the ledger.
func (s *TokenService) GenerateRefreshToken(user *model.User) (string, time.Time, error) {
	return s.generate(user, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) generate(user *model.User, secret []byte, ttl time.Duration) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyAccessToken validates signature and expiry of an access token.
func (s *TokenService) VerifyAccessToken(tokenString string) (*TokenClaims, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefreshToken checks the cryptographic validity of a refresh
// token. Callers must still consult the ledger before honoring it.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*TokenClaims, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *TokenService) verify(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

// GenerateResetToken returns a 64 character random hex string.
func (s *TokenService) GenerateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword hashes with bcrypt at cost 12.
func (s *TokenService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (s *TokenService) CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
