package identity

import (
	"time"

	"github.com/chickenviken/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// SignUpRequest creates an account in either namespace
type SignUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignInRequest authenticates an account
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a fresh token and the signed-in account
type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	Admin     *AdminResponse    `json:"admin,omitempty"`
	Customer  *CustomerResponse `json:"customer,omitempty"`
}

// AdminResponse is the API shape of an admin account
type AdminResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Capabilities []string   `json:"capabilities"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ToAdminResponse maps an admin aggregate to its API shape
func ToAdminResponse(a *identity.Admin) AdminResponse {
	caps := make([]string, len(a.Capabilities))
	for i, c := range a.Capabilities {
		caps[i] = string(c)
	}
	return AdminResponse{
		ID:           a.ID,
		Name:         a.Name,
		Email:        a.Email,
		Role:         string(a.Role),
		Capabilities: caps,
		LastLoginAt:  a.LastLoginAt,
		CreatedAt:    a.CreatedAt,
	}
}

// ToAdminResponses maps a slice of admins
func ToAdminResponses(admins []identity.Admin) []AdminResponse {
	out := make([]AdminResponse, len(admins))
	for i := range admins {
		out[i] = ToAdminResponse(&admins[i])
	}
	return out
}

// SetCapabilitiesRequest replaces an admin's capability grants
type SetCapabilitiesRequest struct {
	Capabilities []string `json:"capabilities" binding:"required"`
}

// PromoteAdminRequest is the payload of the promote function. Role and
// permissions are optional; an omitted role means plain admin.
type PromoteAdminRequest struct {
	TargetUserID string   `json:"targetUserId" binding:"required,uuid"`
	AdminRole    string   `json:"adminRole"`
	Permissions  []string `json:"permissions"`
}

// RevokeAdminRequest is the payload of the revoke function
type RevokeAdminRequest struct {
	TargetUserID string `json:"targetUserId" binding:"required,uuid"`
}

// FunctionResponse is the result envelope the promotion functions return
type FunctionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CustomerResponse is the API shape of a storefront account
type CustomerResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone,omitempty"`
	Addresses   []identity.Address `json:"addresses"`
	LastLoginAt *time.Time         `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToCustomerResponse maps a customer aggregate to its API shape
func ToCustomerResponse(c *identity.Customer) CustomerResponse {
	addresses := c.Addresses
	if addresses == nil {
		addresses = identity.AddressBook{}
	}
	return CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Addresses:   addresses,
		LastLoginAt: c.LastLoginAt,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCustomerResponses maps a slice of customers
func ToCustomerResponses(customers []identity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i := range customers {
		out[i] = ToCustomerResponse(&customers[i])
	}
	return out
}

// UpdateProfileRequest edits the customer's display fields
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// AddressRequest adds or replaces a saved address
type AddressRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Street string `json:"street" binding:"required"`
	City   string `json:"city" binding:"required"`
	State  string `json:"state"`
	Zip    string `json:"zipCode"`
}
