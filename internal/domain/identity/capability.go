package identity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Capability is a named area of the admin dashboard an admin may operate on
type Capability string

const (
	CapabilityUsers        Capability = "users"
	CapabilityProducts     Capability = "products"
	CapabilityOrders       Capability = "orders"
	CapabilityInventory    Capability = "inventory"
	CapabilitySettings     Capability = "settings"
	CapabilityManageAdmins Capability = "manageAdmins"
)

// AllCapabilities lists every recognized capability tag
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityUsers,
		CapabilityProducts,
		CapabilityOrders,
		CapabilityInventory,
		CapabilitySettings,
		CapabilityManageAdmins,
	}
}

// IsValid checks whether the capability is a recognized tag
func (c Capability) IsValid() bool {
	switch c {
	case CapabilityUsers, CapabilityProducts, CapabilityOrders,
		CapabilityInventory, CapabilitySettings, CapabilityManageAdmins:
		return true
	}
	return false
}

// CapabilitySet is the list of capabilities granted to an admin. Stored as a
// JSON array so the column survives schema-free reads from older tooling.
type CapabilitySet []Capability

// Contains reports whether the set grants the given capability
func (s CapabilitySet) Contains(c Capability) bool {
	for _, have := range s {
		if have == c {
			return true
		}
	}
	return false
}

// Add grants a capability if not already present
func (s CapabilitySet) Add(c Capability) CapabilitySet {
	if s.Contains(c) {
		return s
	}
	return append(s, c)
}

// Remove revokes a capability
func (s CapabilitySet) Remove(c Capability) CapabilitySet {
	out := make(CapabilitySet, 0, len(s))
	for _, have := range s {
		if have != c {
			out = append(out, have)
		}
	}
	return out
}

// Value implements driver.Valuer
func (s CapabilitySet) Value() (driver.Value, error) {
	if s == nil {
		s = CapabilitySet{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (s *CapabilitySet) Scan(value any) error {
	if value == nil {
		*s = CapabilitySet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CapabilitySet", value)
	}
	return json.Unmarshal(data, s)
}
