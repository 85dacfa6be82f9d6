package ports

import (
	"context"
	"io"
	"time"

	"github.com/genestial/miniqms/internal/domain"
)

// TokenClaims represents the validated claims of an access token
type TokenClaims struct {
	UserID   string
	TenantID domain.TenantID
	Role     domain.UserRole
}

// TokenService defines the interface for access token handling
type TokenService interface {
	// GenerateAccessToken creates a signed token for a user
	GenerateAccessToken(user *domain.User) (string, error)

	// ValidateAccessToken verifies a token and returns its claims
	ValidateAccessToken(token string) (*TokenClaims, error)
}

// PasswordService defines the interface for password hashing
type PasswordService interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// RateLimiter defines the interface for request rate limiting
type RateLimiter interface {
	// Allow records an attempt for the key and reports whether it is
	// within limit for the window
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// FileStore defines the interface for evidence file storage
type FileStore interface {
	// Save writes the file content under the tenant's directory and
	// returns the stored path
	Save(ctx context.Context, tenantID domain.TenantID, filename string, content io.Reader) (string, error)

	// Open reads a previously stored file
	Open(ctx context.Context, tenantID domain.TenantID, path string) (io.ReadCloser, error)

	// Remove deletes a stored file
	Remove(ctx context.Context, tenantID domain.TenantID, path string) error
}
