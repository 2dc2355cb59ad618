package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// BearerPrefix is stripped from the Authorization header before verification
	BearerPrefix = "Bearer "

	issuer = "hackernews"
)

// Error is an authentication failure
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrMissingToken       = &Error{Message: "missing token"}
	ErrInvalidToken       = &Error{Message: "invalid token"}
	ErrExpiredToken       = &Error{Message: "token has expired"}
	ErrNotAuthenticated   = &Error{Message: "not authenticated"}
	ErrInvalidCredentials = &Error{Message: "invalid credentials"}
)

// Claims represents the JWT claims
type Claims struct {
	UserID uint `json:"userId"`
	jwt.RegisteredClaims
}

// Decoder issues and verifies tokens signed with a shared HMAC secret
type Decoder struct {
	secret []byte
	ttl    time.Duration
}

// NewDecoder creates a Decoder. Tokens it issues are valid for ttl.
func NewDecoder(secret []byte, ttl time.Duration) *Decoder {
	return &Decoder{secret: secret, ttl: ttl}
}

// DecodeAuthHeader extracts the token from an Authorization header value and
// verifies it. A header without the bearer prefix is treated as a bare token.
func (d *Decoder) DecodeAuthHeader(header string) (*Claims, error) {
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return nil, ErrMissingToken
	}
	return d.ValidateToken(token)
}

// GenerateToken creates a new JWT token for a user
func (d *Decoder) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(d.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(d.secret)
}

// ValidateToken validates a JWT token and returns the claims
func (d *Decoder) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return d.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
