package domain

import (
	"time"

	"github.com/google/uuid"
)

// TenantID identifies a tenant. Every tenant-owned record and every
// store query carries one; the only place a TenantID is minted from
// untrusted input is the auth layer, after token validation.
type TenantID string

func (t TenantID) String() string {
	return string(t)
}

// Tenant represents a customer organization using the QMS
type Tenant struct {
	ID        TenantID  `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTenant creates a new tenant
func NewTenant(name, slug string) *Tenant {
	now := time.Now()
	return &Tenant{
		ID:        TenantID(uuid.NewString()),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UserRole represents the role of a user within a tenant
type UserRole string

const (
	UserRoleOwner  UserRole = "OWNER"
	UserRoleAdmin  UserRole = "ADMIN"
	UserRoleMember UserRole = "MEMBER"
)

// User represents a user account belonging to a tenant
type User struct {
	ID           string    `json:"id"`
	TenantID     TenantID  `json:"tenant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user
func NewUser(tenantID TenantID, email, name, passwordHash string, role UserRole) *User {
	now := time.Now()
	return &User{
		ID:           uuid.NewString(),
		TenantID:     tenantID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
