// Package service provides infrastructure-backed implementations of the
// service ports: JWT tokens, bcrypt hashing, and Redis rate limiting.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// JWTTokenService implements TokenService with HS256-signed JWTs
type JWTTokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTTokenService creates a new JWT token service
func NewJWTTokenService(secret string, expiration time.Duration) *JWTTokenService {
	return &JWTTokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateAccessToken creates a signed token for a user. The tenant ID
// in the claims is what every subsequent request is scoped by.
func (s *JWTTokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"tenant_id": string(user.TenantID),
		"role":      string(user.Role),
		"exp":       now.Add(s.expiration).Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies a token and returns its claims
func (s *JWTTokenService) ValidateAccessToken(tokenString string) (*ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	tenantID, _ := claims["tenant_id"].(string)
	role, _ := claims["role"].(string)
	if userID == "" || tenantID == "" {
		return nil, ErrInvalidToken
	}

	return &ports.TokenClaims{
		UserID:   userID,
		TenantID: domain.TenantID(tenantID),
		Role:     domain.UserRole(role),
	}, nil
}
