package ordering

import (
	"regexp"
	"testing"
	"time"

	"github.com/chickenviken/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() valueobject.ShippingAddress {
	return valueobject.NewShippingAddress("A", "9999999999", "S", "C", "ST", "123456")
}

func testItems() []OrderItem {
	return []OrderItem{
		{ProductID: uuid.New(), Name: "Wings", UnitPrice: decimal.NewFromInt(160), Quantity: 2},
	}
}

func createTestOrder(t *testing.T) *Order {
	order, err := NewOrder(uuid.New(), testItems(), decimal.NewFromInt(320), testAddress(), "UPI")
	require.NoError(t, err)
	return order
}

// ============================================
// OrderStatus Tests
// ============================================

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
		ok   bool
	}{
		{"pending", OrderStatusPending, true},
		{"processing", OrderStatusProcessing, true},
		{"delivered", OrderStatusDelivered, true},
		{"completed", OrderStatusDelivered, true},
		{"cancelled", OrderStatusCancelled, true},
		{"canceled", OrderStatusCancelled, true},
		{"shipped", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOrderStatus(tt.raw)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusDelivered, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusProcessing.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

// ============================================
// NewOrder Tests
// ============================================

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("creates order with valid inputs", func(t *testing.T) {
		order, err := NewOrder(userID, testItems(), decimal.NewFromInt(320), testAddress(), "UPI")
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.Equal(t, userID, order.UserID)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, PaymentStatusPaid, order.PaymentStatus)
		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(320)))
		assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(40)))
		assert.True(t, order.FinalAmount.Equal(decimal.NewFromInt(360)))
		assert.Len(t, order.Items, 1)
		assert.Equal(t, order.ID, order.Items[0].OrderID)
		assert.Len(t, order.GetDomainEvents(), 1)
	})

	t.Run("final amount is always subtotal plus flat fee", func(t *testing.T) {
		for _, subtotal := range []int64{1, 40, 499, 100000} {
			order, err := NewOrder(userID, testItems(), decimal.NewFromInt(subtotal), testAddress(), "UPI")
			require.NoError(t, err)
			assert.True(t, order.FinalAmount.Equal(decimal.NewFromInt(subtotal+40)))
		}
	})

	t.Run("rejects missing user", func(t *testing.T) {
		_, err := NewOrder(uuid.Nil, testItems(), decimal.NewFromInt(320), testAddress(), "UPI")
		assert.Error(t, err)
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		_, err := NewOrder(userID, nil, decimal.NewFromInt(320), testAddress(), "UPI")
		assert.Error(t, err)
	})

	t.Run("rejects non-positive total", func(t *testing.T) {
		_, err := NewOrder(userID, testItems(), decimal.Zero, testAddress(), "UPI")
		assert.Error(t, err)
	})

	t.Run("rejects empty address", func(t *testing.T) {
		_, err := NewOrder(userID, testItems(), decimal.NewFromInt(320), valueobject.ShippingAddress{}, "UPI")
		assert.Error(t, err)
	})

	t.Run("rejects missing payment method", func(t *testing.T) {
		_, err := NewOrder(userID, testItems(), decimal.NewFromInt(320), testAddress(), "")
		assert.Error(t, err)
	})

	t.Run("rejects item without quantity", func(t *testing.T) {
		items := []OrderItem{{ProductID: uuid.New(), Name: "Wings", UnitPrice: decimal.NewFromInt(160)}}
		_, err := NewOrder(userID, items, decimal.NewFromInt(160), testAddress(), "UPI")
		assert.Error(t, err)
	})
}

func TestGenerateOrderCode(t *testing.T) {
	t.Run("matches ORD<digits>", func(t *testing.T) {
		code := GenerateOrderCode(time.Now())
		assert.Regexp(t, regexp.MustCompile(`^ORD\d+$`), code)
	})

	t.Run("non-decreasing for increasing timestamps", func(t *testing.T) {
		base := time.Now()
		prev := GenerateOrderCode(base)
		for i := 1; i <= 5; i++ {
			next := GenerateOrderCode(base.Add(time.Duration(i) * time.Millisecond))
			assert.GreaterOrEqual(t, len(next), len(prev))
			assert.True(t, next >= prev)
			prev = next
		}
	})
}

// ============================================
// Transition Tests
// ============================================

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("pending to processing", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusProcessing))
		assert.Equal(t, OrderStatusProcessing, order.Status)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := createTestOrder(t)
		assert.Error(t, order.TransitionTo(OrderStatus("shipped")))
	})

	t.Run("rejects delivered to cancelled", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusDelivered))
		assert.Error(t, order.TransitionTo(OrderStatusCancelled))
	})

	t.Run("same-status transition is a no-op", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusProcessing))
		events := len(order.GetDomainEvents())
		require.NoError(t, order.TransitionTo(OrderStatusProcessing))
		assert.Len(t, order.GetDomainEvents(), events)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels a pending order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.NotNil(t, order.CancelledAt)
	})

	t.Run("cancel twice ends cancelled both times", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.Cancel())
		require.NoError(t, order.Cancel())
		assert.Equal(t, OrderStatusCancelled, order.Status)
	})

	t.Run("cannot cancel a delivered order", func(t *testing.T) {
		order := createTestOrder(t)
		require.NoError(t, order.TransitionTo(OrderStatusDelivered))
		assert.Error(t, order.Cancel())
	})
}

func TestOrder_CancellableByCustomer(t *testing.T) {
	order := createTestOrder(t)
	assert.True(t, order.CancellableByCustomer())

	require.NoError(t, order.TransitionTo(OrderStatusProcessing))
	assert.False(t, order.CancellableByCustomer())
}

func TestOrderItem_Amount(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.NewFromInt(160), Quantity: 2}
	assert.True(t, item.Amount().Equal(decimal.NewFromInt(320)))
}
