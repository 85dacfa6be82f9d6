package service

import (
	"testing"
	"time"

	"github.com/genestial/miniqms/internal/domain"
)

func TestJWTTokenService(t *testing.T) {
	service := NewJWTTokenService("test-secret", time.Hour)
	user := &domain.User{
		ID:       "user-123",
		TenantID: "tenant-abc",
		Role:     domain.UserRoleOwner,
	}

	t.Run("GenerateAccessToken", func(t *testing.T) {
		token, err := service.GenerateAccessToken(user)
		if err != nil {
			t.Errorf("Failed to generate access token: %v", err)
		}
		if token == "" {
			t.Error("Access token should not be empty")
		}
	})

	t.Run("ValidateAccessToken", func(t *testing.T) {
		tokenString, err := service.GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		claims, err := service.ValidateAccessToken(tokenString)
		if err != nil {
			t.Fatalf("Failed to validate token: %v", err)
		}
		if claims.UserID != "user-123" {
			t.Errorf("Expected user ID 'user-123', got '%s'", claims.UserID)
		}
		if claims.TenantID != "tenant-abc" {
			t.Errorf("Expected tenant ID 'tenant-abc', got '%s'", claims.TenantID)
		}
		if claims.Role != domain.UserRoleOwner {
			t.Errorf("Expected role %s, got %s", domain.UserRoleOwner, claims.Role)
		}
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid-token")
		if err != ErrInvalidToken {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateExpiredToken", func(t *testing.T) {
		expired := NewJWTTokenService("test-secret", -time.Minute)
		tokenString, err := expired.GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		_, err = service.ValidateAccessToken(tokenString)
		if err != ErrTokenExpired {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("ValidateTokenSignedWithOtherSecret", func(t *testing.T) {
		other := NewJWTTokenService("other-secret", time.Hour)
		tokenString, err := other.GenerateAccessToken(user)
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		_, err = service.ValidateAccessToken(tokenString)
		if err != ErrInvalidToken {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})
}
