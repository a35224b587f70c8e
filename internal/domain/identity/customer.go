package identity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Address is one entry in a customer's saved address book
type Address struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zipCode"`
}

// AddressBook is embedded in the customer record as a JSON document rather
// than normalized into its own table.
type AddressBook []Address

// Value implements driver.Valuer
func (b AddressBook) Value() (driver.Value, error) {
	if b == nil {
		b = AddressBook{}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (b *AddressBook) Scan(value any) error {
	if value == nil {
		*b = AddressBook{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into AddressBook", value)
	}
	return json.Unmarshal(data, b)
}

// Customer is a storefront account in the user namespace
type Customer struct {
	shared.BaseAggregateRoot
	Name         string      `json:"name"`
	Email        string      `json:"email" gorm:"uniqueIndex"`
	Phone        string      `json:"phone"`
	PasswordHash string      `json:"-"`
	Addresses    AddressBook `json:"addresses" gorm:"type:text"`
	LastLoginAt  *time.Time  `json:"last_login_at,omitempty"`
}

// NewCustomer creates a storefront account
func NewCustomer(name, email, passwordHash string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(email),
		PasswordHash:      passwordHash,
		Addresses:         AddressBook{},
	}, nil
}

// UpdateProfile edits the customer's display fields
func (c *Customer) UpdateProfile(name, phone string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Touch()
	return nil
}

// AddAddress appends a saved address and returns its generated id
func (c *Customer) AddAddress(addr Address) (string, error) {
	if addr.Street == "" || addr.City == "" {
		return "", shared.NewDomainError("INVALID_ADDRESS", "Address requires street and city")
	}
	addr.ID = uuid.NewString()
	c.Addresses = append(c.Addresses, addr)
	c.Touch()
	return addr.ID, nil
}

// UpdateAddress replaces a saved address in place, keeping its id
func (c *Customer) UpdateAddress(id string, addr Address) error {
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			addr.ID = id
			c.Addresses[i] = addr
			c.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveAddress deletes a saved address by id
func (c *Customer) RemoveAddress(id string) error {
	for i := range c.Addresses {
		if c.Addresses[i].ID == id {
			c.Addresses = append(c.Addresses[:i], c.Addresses[i+1:]...)
			c.Touch()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RecordLogin stamps the last successful sign-in time
func (c *Customer) RecordLogin(at time.Time) {
	c.LastLoginAt = &at
	c.UpdatedAt = at
}
