package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingAddress_CoercesFields(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string passes through", "123456", "123456"},
		{"nil becomes empty", nil, ""},
		{"integral float", float64(123456), "123456"},
		{"fractional float", 12.5, "12.5"},
		{"int", 42, "42"},
		{"int64", int64(9999999999), "9999999999"},
		{"json.Number", json.Number("560001"), "560001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr := NewShippingAddress("A", "9999999999", "S", "C", "ST", tt.in)
			assert.Equal(t, tt.want, addr.Zip())
		})
	}
}

func TestShippingAddress_JSONRoundTrip(t *testing.T) {
	t.Run("numeric zip reads back as string", func(t *testing.T) {
		var addr ShippingAddress
		err := json.Unmarshal([]byte(`{"name":"A","phone":9999999999,"street":"S","city":"C","state":"ST","zipCode":123456}`), &addr)
		require.NoError(t, err)

		assert.Equal(t, "123456", addr.Zip())
		assert.Equal(t, "9999999999", addr.Phone())
	})

	t.Run("missing fields become empty strings", func(t *testing.T) {
		var addr ShippingAddress
		err := json.Unmarshal([]byte(`{"name":"A"}`), &addr)
		require.NoError(t, err)

		assert.Equal(t, "A", addr.Name())
		assert.Equal(t, "", addr.Street())
		assert.Equal(t, "", addr.Zip())
	})

	t.Run("marshal then unmarshal preserves all fields", func(t *testing.T) {
		addr := NewShippingAddress("A", "9999999999", "S", "C", "ST", "123456")
		data, err := json.Marshal(addr)
		require.NoError(t, err)

		var got ShippingAddress
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, addr.Equals(got))
	})
}

func TestShippingAddress_Scan(t *testing.T) {
	t.Run("nil value yields empty address", func(t *testing.T) {
		var addr ShippingAddress
		require.NoError(t, addr.Scan(nil))
		assert.True(t, addr.IsEmpty())
	})

	t.Run("round trip through Value", func(t *testing.T) {
		addr := NewShippingAddress("A", "1", "S", "C", "ST", "Z")
		v, err := addr.Value()
		require.NoError(t, err)

		var got ShippingAddress
		require.NoError(t, got.Scan(v))
		assert.True(t, addr.Equals(got))
	})
}
