package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/gestock/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents a user's role in the system
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleController Role = "controller"
	RoleCourier    Role = "courier"
)

// IsValid checks if the role is a known value
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleController, RoleCourier:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents an operator of the system
// It is the aggregate root for user-related operations
type User struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(120);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         Role   `gorm:"type:varchar(20);not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	IsDeleted    bool   `gorm:"not null;default:false;index"`
	DeletedAt    *time.Time
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user with a hashed password
func NewUser(name, email, password string, role Role) (*User, error) {
	if name == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewValidationError("Invalid email address")
	}
	if len(password) < 8 {
		return nil, shared.NewValidationError("Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Unknown role: " + role.String())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		IsActive:          true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (u *User) ChangePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
}

// Deactivate blocks the user from logging in
func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Activate re-enables a deactivated user
func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// SoftDelete marks the user as deleted
func (u *User) SoftDelete() {
	if u.IsDeleted {
		return
	}
	now := time.Now()
	u.IsDeleted = true
	u.DeletedAt = &now
	u.IsActive = false
	u.UpdatedAt = now
	u.IncrementVersion()
}

// CanLogin returns true if the user may authenticate
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsDeleted
}

// IsCourier returns true if the user can be assigned deliveries
func (u *User) IsCourier() bool {
	return u.Role == RoleCourier
}
