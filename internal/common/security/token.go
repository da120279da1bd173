package security

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidClaims = errors.New("token claims are missing or malformed")

// Identity is what a session token asserts about its bearer.
type Identity struct {
	UserID    int64
	Username  string
	Role      string
	ExpiresAt time.Time
}

// TokenService mints and verifies HS256 bearer tokens.
type TokenService struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
		now:  time.Now,
	}
}

// JWTAuth exposes the underlying verifier for the router middleware.
func (s *TokenService) JWTAuth() *jwtauth.JWTAuth {
	return s.auth
}

func (s *TokenService) GenerateToken(userID int64, username, role string) (string, error) {
	return s.generateTokenAt(userID, username, role, s.now())
}

func (s *TokenService) generateTokenAt(userID int64, username, role string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(userID, 10),
		"username": username,
		"role":     role,
	}
	jwtauth.SetIssuedAt(claims, issuedAt)
	jwtauth.SetExpiry(claims, issuedAt.Add(s.ttl))

	_, tokenString, err := s.auth.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the asserted identity.
func (s *TokenService) VerifyToken(tokenString string) (*Identity, error) {
	token, err := jwtauth.VerifyToken(s.auth, tokenString)
	if err != nil {
		return nil, err
	}
	claims, err := token.AsMap(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}
	return IdentityFromClaims(claims)
}

// IdentityFromClaims reads the identity out of decoded token claims.
func IdentityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: sub", ErrInvalidClaims)
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: sub", ErrInvalidClaims)
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: username", ErrInvalidClaims)
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: role", ErrInvalidClaims)
	}

	identity := &Identity{UserID: userID, Username: username, Role: role}
	switch exp := claims["exp"].(type) {
	case time.Time:
		identity.ExpiresAt = exp
	case float64:
		identity.ExpiresAt = time.Unix(int64(exp), 0)
	case int64:
		identity.ExpiresAt = time.Unix(exp, 0)
	default:
		return nil, fmt.Errorf("%w: exp", ErrInvalidClaims)
	}
	return identity, nil
}
