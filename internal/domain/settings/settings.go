package settings

import (
	"context"

	"github.com/chickenviken/backend/internal/domain/shared"
)

// StoreSettings is the single storefront configuration document. There is at
// most one row; reads return defaults when nothing has been saved yet.
type StoreSettings struct {
	shared.BaseEntity
	StoreName    string `json:"store_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	StoreAddress string `json:"store_address"`
	// AcceptingOrders gates checkout for the whole storefront
	AcceptingOrders bool `json:"accepting_orders"`
	OpeningHours    string `json:"opening_hours"`
}

// DefaultSettings is what the storefront sees before anyone saves settings
func DefaultSettings() *StoreSettings {
	return &StoreSettings{
		BaseEntity:      shared.NewBaseEntity(),
		StoreName:       "ChickenViken",
		AcceptingOrders: true,
	}
}

// Update replaces the editable fields
func (s *StoreSettings) Update(storeName, contactEmail, contactPhone, storeAddress, openingHours string, acceptingOrders bool) error {
	if storeName == "" {
		return shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	s.StoreName = storeName
	s.ContactEmail = contactEmail
	s.ContactPhone = contactPhone
	s.StoreAddress = storeAddress
	s.OpeningHours = openingHours
	s.AcceptingOrders = acceptingOrders
	s.Touch()
	return nil
}

// Repository is the persistence port for the settings singleton
// (admin namespace)
type Repository interface {
	// Get returns the saved settings, or nil when none have been saved
	Get(ctx context.Context) (*StoreSettings, error)
	Save(ctx context.Context, settings *StoreSettings) error
}
