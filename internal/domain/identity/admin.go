package identity

import (
	"strings"
	"time"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Role is the admin's rank inside the admin namespace
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole normalizes the historical role spellings ("superAdmin",
// "super-admin", "SuperAdmin") into the canonical enum.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), "-", "")) {
	case "admin":
		return RoleAdmin, nil
	case "superadmin":
		return RoleSuperAdmin, nil
	}
	return "", shared.NewDomainError("INVALID_ROLE", "Unknown admin role: "+raw)
}

// Admin is an account in the admin namespace. Every admin record can sign in
// to the dashboard; what it can touch there is governed by Role and
// Capabilities.
type Admin struct {
	shared.BaseAggregateRoot
	Name         string        `json:"name"`
	Email        string        `json:"email" gorm:"uniqueIndex"`
	PasswordHash string        `json:"-"`
	Role         Role          `json:"role" gorm:"index"`
	Capabilities CapabilitySet `json:"capabilities" gorm:"type:text"`
	GrantedBy    *uuid.UUID    `json:"granted_by,omitempty" gorm:"type:uuid"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty"`
}

// NewAdmin creates an admin-namespace account. Self-service signups start as
// plain admins with no capabilities; a super admin grants access afterwards.
func NewAdmin(name, email, passwordHash string) (*Admin, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &Admin{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(email),
		PasswordHash:      passwordHash,
		Role:              RoleAdmin,
		Capabilities:      CapabilitySet{},
	}, nil
}

// IsSuperAdmin reports whether the account carries super-admin authority,
// either through rank or through the manageAdmins capability.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin || a.Capabilities.Contains(CapabilityManageAdmins)
}

// HasCapability checks a single capability. Super admins pass every check.
func (a *Admin) HasCapability(c Capability) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.Capabilities.Contains(c)
}

// Promote raises the account to super admin with the full capability set
func (a *Admin) Promote() {
	a.Role = RoleSuperAdmin
	a.Capabilities = CapabilitySet(AllCapabilities())
	a.Touch()
}

// Grant applies a role and capability set chosen by another admin and
// records who granted it. A zero role defaults to plain admin.
func (a *Admin) Grant(role Role, caps CapabilitySet, by uuid.UUID) error {
	if role == "" {
		role = RoleAdmin
	}
	for _, c := range caps {
		if !c.IsValid() {
			return shared.NewDomainError("INVALID_CAPABILITY", "Unknown capability: "+string(c))
		}
	}
	a.Role = role
	a.Capabilities = caps
	a.GrantedBy = &by
	a.Touch()
	return nil
}

// Demote strips super-admin rank and all capabilities in one move
func (a *Admin) Demote() {
	a.Role = RoleAdmin
	a.Capabilities = CapabilitySet{}
	a.GrantedBy = nil
	a.Touch()
}

// SetCapabilities replaces the capability list after validating each tag
func (a *Admin) SetCapabilities(caps CapabilitySet) error {
	for _, c := range caps {
		if !c.IsValid() {
			return shared.NewDomainError("INVALID_CAPABILITY", "Unknown capability: "+string(c))
		}
	}
	a.Capabilities = caps
	a.Touch()
	return nil
}

// RecordLogin stamps the last successful sign-in time
func (a *Admin) RecordLogin(at time.Time) {
	a.LastLoginAt = &at
	a.UpdatedAt = at
}
