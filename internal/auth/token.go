package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// TokenKind distinguishes access from refresh tokens. Each kind is signed
// with its own secret so one can never be replayed as the other.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// ErrInvalidToken is returned when a token fails signature, expiry or kind checks.
var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues and validates JWT access/refresh tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(accessSecret, refreshSecret string, accessTTLMinutes, refreshTTLHours int) *TokenManager {
	if accessTTLMinutes <= 0 {
		accessTTLMinutes = 15
	}
	if refreshTTLHours <= 0 {
		refreshTTLHours = 168
	}
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessTTLMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshTTLHours) * time.Hour,
	}
}

// Claims describes the JWT payload.
type Claims struct {
	UserID string       `json:"uid"`
	Role   *domain.Role `json:"role,omitempty"`
	Kind   TokenKind    `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateAccess signs a short-lived role-bearing access token.
func (tm *TokenManager) GenerateAccess(userID string, role domain.Role) (string, time.Time, error) {
	return tm.generate(userID, &role, TokenKindAccess, tm.accessSecret, tm.accessTTL)
}

// GenerateRefresh signs a long-lived refresh token. Callers must deliver it
// only via an HTTP-only cookie, never in a response body.
func (tm *TokenManager) GenerateRefresh(userID string) (string, time.Time, error) {
	return tm.generate(userID, nil, TokenKindRefresh, tm.refreshSecret, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID string, role *domain.Role, kind TokenKind, secret []byte, ttl time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(ttl)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseAccess validates an access token and returns its claims.
func (tm *TokenManager) ParseAccess(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, TokenKindAccess, tm.accessSecret)
}

// ParseRefresh validates a refresh token and returns its claims.
func (tm *TokenManager) ParseRefresh(tokenStr string) (*Claims, error) {
	return tm.parse(tokenStr, TokenKindRefresh, tm.refreshSecret)
}

func (tm *TokenManager) parse(tokenStr string, kind TokenKind, secret []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Kind != kind {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
