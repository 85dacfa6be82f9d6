package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/genestial/miniqms/internal/domain"
	"github.com/genestial/miniqms/internal/ports"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
}

// RegisterRequest represents a new tenant signup
type RegisterRequest struct {
	TenantName string `json:"tenant_name"`
	TenantSlug string `json:"tenant_slug"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Password   string `json:"password"`
}

// AuthUseCase handles authentication and tenant signup
type AuthUseCase struct {
	tenants   ports.TenantRepository
	users     ports.UserRepository
	tokens    ports.TokenService
	passwords ports.PasswordService
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(
	tenants ports.TenantRepository,
	users ports.UserRepository,
	tokens ports.TokenService,
	passwords ports.PasswordService,
) *AuthUseCase {
	return &AuthUseCase{
		tenants:   tenants,
		users:     users,
		tokens:    tokens,
		passwords: passwords,
	}
}

// Login verifies credentials and issues an access token
func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := uc.passwords.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginResponse{AccessToken: token, User: user}, nil
}

// Register creates a new tenant with an owner user and issues a token
func (uc *AuthUseCase) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	if err := uc.validateRegister(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if err != domain.ErrUserNotFound {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := uc.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tenant := domain.NewTenant(req.TenantName, req.TenantSlug)
	if err := uc.tenants.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	user := domain.NewUser(tenant.ID, email, req.Name, hash, domain.UserRoleOwner)
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &LoginResponse{AccessToken: token, User: user}, nil
}

// Me returns the authenticated user's profile
func (uc *AuthUseCase) Me(ctx context.Context, tenantID domain.TenantID, userID string) (*domain.User, error) {
	user, err := uc.users.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *AuthUseCase) validateRegister(req RegisterRequest) error {
	if strings.TrimSpace(req.TenantName) == "" {
		return fmt.Errorf("tenant name is required")
	}
	if strings.TrimSpace(req.TenantSlug) == "" {
		return fmt.Errorf("tenant slug is required")
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}
