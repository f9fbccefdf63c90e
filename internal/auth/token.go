package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"knoxtech-api/internal/domain"
)

var (
	// ErrMissingToken indicates no token was supplied at all.
	ErrMissingToken = errors.New("token missing")
	// ErrMalformedToken indicates the token does not parse as a JWT.
	ErrMalformedToken = errors.New("token malformed")
	// ErrInvalidSignature indicates the signature does not match the server secret.
	ErrInvalidSignature = errors.New("token signature invalid")
	// ErrExpiredToken indicates the token is past its validity window.
	ErrExpiredToken = errors.New("token expired")
)

// Identity is the verified subject carried by a token.
type Identity struct {
	UserID int64
	Email  string
	Role   domain.Role
}

// Claims embeds the registered claims plus the role and email the gate needs.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 signed tokens. The secret and validity
// interval are fixed at construction; verification is stateless and there is
// no refresh or server-side revocation.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret []byte, ttl time.Duration) *Tokens {
	return &Tokens{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity, valid for the configured
// interval from now.
func (t *Tokens) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: id.Email,
		Role:  string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a token string and returns the embedded
// identity. Failures are reported through the closed taxonomy above; no
// leeway is applied, expiry is an exact cutoff.
func (t *Tokens) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, ErrMalformedToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrInvalidSignature
		default:
			return Identity{}, ErrMalformedToken
		}
	}
	if !token.Valid {
		return Identity{}, ErrMalformedToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrMalformedToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		role = domain.RoleUser
	}

	return Identity{UserID: userID, Email: claims.Email, Role: role}, nil
}
