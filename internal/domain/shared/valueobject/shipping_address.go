package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// ShippingAddress is an immutable snapshot of the destination captured at
// order time. It is deliberately decoupled from the customer's live address
// book: editing a saved address later must not rewrite historical orders.
//
// Every field is stored as a string. Checkout payloads arrive from clients
// that send zip codes and phone numbers as either strings or numbers, so the
// snapshot coerces all values to strings (empty string when absent).
type ShippingAddress struct {
	name   string
	phone  string
	street string
	city   string
	state  string
	zip    string
}

// NewShippingAddress builds a snapshot from raw field values of any type.
// Numbers are rendered without an exponent; nil becomes the empty string.
func NewShippingAddress(name, phone, street, city, state, zip any) ShippingAddress {
	return ShippingAddress{
		name:   coerceString(name),
		phone:  coerceString(phone),
		street: coerceString(street),
		city:   coerceString(city),
		state:  coerceString(state),
		zip:    coerceString(zip),
	}
}

// coerceString renders an arbitrary JSON-decoded value as a string
func coerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		// JSON numbers decode as float64; integral values must not
		// pick up a trailing ".000000"
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Name returns the recipient name
func (a ShippingAddress) Name() string { return a.name }

// Phone returns the contact phone number
func (a ShippingAddress) Phone() string { return a.phone }

// Street returns the street line
func (a ShippingAddress) Street() string { return a.street }

// City returns the city
func (a ShippingAddress) City() string { return a.city }

// State returns the state or province
func (a ShippingAddress) State() string { return a.state }

// Zip returns the postal code
func (a ShippingAddress) Zip() string { return a.zip }

// IsEmpty returns true when no field carries a value
func (a ShippingAddress) IsEmpty() bool {
	return a.name == "" && a.phone == "" && a.street == "" &&
		a.city == "" && a.state == "" && a.zip == ""
}

// Equals returns true if all fields match
func (a ShippingAddress) Equals(other ShippingAddress) bool {
	return a == other
}

type shippingAddressJSON struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// MarshalJSON implements json.Marshaler
func (a ShippingAddress) MarshalJSON() ([]byte, error) {
	return json.Marshal(shippingAddressJSON{
		Name:    a.name,
		Phone:   a.phone,
		Street:  a.street,
		City:    a.city,
		State:   a.state,
		ZipCode: a.zip,
	})
}

// UnmarshalJSON implements json.Unmarshaler. Non-string field values are
// coerced, so a numeric zip code in a stored document reads back as a string.
func (a *ShippingAddress) UnmarshalJSON(data []byte) error {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = NewShippingAddress(v["name"], v["phone"], v["street"], v["city"], v["state"], v["zipCode"])
	return nil
}

// Value implements driver.Valuer for storage as a JSON column
func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *ShippingAddress) Scan(value any) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into ShippingAddress", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*a = ShippingAddress{}
		return nil
	}
	return json.Unmarshal(data, a)
}
