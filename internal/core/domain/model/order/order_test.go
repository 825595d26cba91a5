package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	total, err := kernel.NewMoney(10000, "USD")
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-1001", kernel.NewUUID(), kernel.NewUUID(), total)
	require.NoError(t, err)
	return o
}

func newTestOrderWithDeliveries(t *testing.T, numbers ...string) *order.Order {
	t.Helper()

	o := newTestOrder(t)
	for _, number := range numbers {
		delivery, err := order.NewDelivery(kernel.NewUUID(), number)
		require.NoError(t, err)
		require.NoError(t, o.AddDelivery(delivery))
	}
	return o
}

// drives a fresh order with deliveries to InProgress so delivery-scoped
// transitions become legal.
func newProcessingOrder(t *testing.T, numbers ...string) *order.Order {
	t.Helper()

	o := newTestOrderWithDeliveries(t, numbers...)
	require.NoError(t, o.AwaitPayment())
	require.NoError(t, o.ConfirmPayment())
	require.NoError(t, o.StartProcessing())
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order in created status", func(t *testing.T) {
		o := newTestOrder(t)

		assert.Equal(t, "ORD-1001", o.Number())
		assert.Equal(t, order.Created, o.Status())
		assert.Empty(t, o.Deliveries())
		assert.False(t, o.CreatedAt().IsZero())
		require.NoError(t, o.Validate())
	})

	t.Run("rejects empty order number", func(t *testing.T) {
		total, _ := kernel.NewMoney(100, "USD")

		_, err := order.NewOrder(kernel.NewUUID(), "", kernel.NewUUID(), kernel.NewUUID(), total)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects zero-value total", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(), kernel.Money{})

		require.Error(t, err)
	})

	t.Run("rejects invalid customer id", func(t *testing.T) {
		total, _ := kernel.NewMoney(100, "USD")

		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1", kernel.UUID{}, kernel.NewUUID(), total)

		require.Error(t, err)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("nil is invalid", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_AddDelivery(t *testing.T) {
	t.Run("adds deliveries with unique numbers", func(t *testing.T) {
		o := newTestOrderWithDeliveries(t, "D-1", "D-2")

		assert.Len(t, o.Deliveries(), 2)
	})

	t.Run("rejects duplicate delivery number", func(t *testing.T) {
		o := newTestOrderWithDeliveries(t, "D-1")
		dup, err := order.NewDelivery(kernel.NewUUID(), "D-1")
		require.NoError(t, err)

		err = o.AddDelivery(dup)

		require.ErrorIs(t, err, order.ErrDuplicateDeliveryNumber)
	})

	t.Run("rejects delivery on cancelled order", func(t *testing.T) {
		o := newTestOrderWithDeliveries(t, "D-1")
		require.NoError(t, o.Cancel())
		late, err := order.NewDelivery(kernel.NewUUID(), "D-2")
		require.NoError(t, err)

		err = o.AddDelivery(late)

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	})
}

func TestOrder_Delivery(t *testing.T) {
	o := newTestOrderWithDeliveries(t, "D-1", "D-2")

	t.Run("finds owned delivery", func(t *testing.T) {
		delivery, err := o.Delivery("D-2")

		require.NoError(t, err)
		assert.Equal(t, "D-2", delivery.Number())
	})

	t.Run("unknown number is a lookup error", func(t *testing.T) {
		_, err := o.Delivery("D-99")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrder_PaymentFlow(t *testing.T) {
	t.Run("payment confirmation from created", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.ConfirmPayment())
		assert.Equal(t, order.PaymentOk, o.Status())
	})

	t.Run("payment confirmation after awaiting", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.AwaitPayment())

		require.NoError(t, o.ConfirmPayment())
		assert.Equal(t, order.PaymentOk, o.Status())
	})

	t.Run("duplicate confirmation is not allowed", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.ConfirmPayment())

		err := o.ConfirmPayment()

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
		assert.Equal(t, order.PaymentOk, o.Status())
	})

	t.Run("payment failure cancels order and deliveries", func(t *testing.T) {
		o := newTestOrderWithDeliveries(t, "D-1")
		require.NoError(t, o.AwaitPayment())

		require.NoError(t, o.FailPayment())

		assert.Equal(t, order.Cancelled, o.Status())
		delivery, _ := o.Delivery("D-1")
		assert.Equal(t, order.DeliveryCancelled, delivery.Status())
	})
}

func TestOrder_StartProcessing(t *testing.T) {
	o := newTestOrderWithDeliveries(t, "D-1", "D-2")
	require.NoError(t, o.ConfirmPayment())

	require.NoError(t, o.StartProcessing())

	assert.Equal(t, order.InProgress, o.Status())
	for _, delivery := range o.Deliveries() {
		assert.Equal(t, order.DeliveryPacking, delivery.Status())
	}
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("cancels order and cascades to non-terminal deliveries", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1", "D-2")

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		for _, delivery := range o.Deliveries() {
			assert.Equal(t, order.DeliveryCancelled, delivery.Status())
		}
	})

	t.Run("cascade skips already cancelled deliveries", func(t *testing.T) {
		o := newTestOrderWithDeliveries(t, "D-1", "D-2")
		delivery, _ := o.Delivery("D-1")
		require.NoError(t, delivery.Cancel())

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Cancelled, o.Status())
		for _, d := range o.Deliveries() {
			assert.Equal(t, order.DeliveryCancelled, d.Status())
		}
	})

	t.Run("cannot cancel shipped order", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1")
		require.NoError(t, o.ShipDelivery("D-1", "TRK-1", "UPS"))
		require.Equal(t, order.Shipped, o.Status())

		err := o.Cancel()

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
		assert.Equal(t, order.Shipped, o.Status())
	})
}

func TestOrder_ShipDelivery(t *testing.T) {
	t.Run("order ships when last delivery ships", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1", "D-2")

		require.NoError(t, o.ShipDelivery("D-1", "TRK-1", "UPS"))
		assert.Equal(t, order.InProgress, o.Status())

		require.NoError(t, o.ShipDelivery("D-2", "TRK-2", "DHL"))
		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("cancelled delivery does not gate shipment", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1", "D-2")
		delivery, _ := o.Delivery("D-2")
		require.NoError(t, delivery.Cancel())

		require.NoError(t, o.ShipDelivery("D-1", "TRK-1", "UPS"))

		assert.Equal(t, order.Shipped, o.Status())
	})

	t.Run("unknown delivery number is a lookup error", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1")

		err := o.ShipDelivery("D-99", "TRK-1", "UPS")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("cannot ship twice", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1", "D-2")
		require.NoError(t, o.ShipDelivery("D-1", "TRK-1", "UPS"))

		err := o.ShipDelivery("D-1", "TRK-1", "UPS")

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	})
}

func TestOrder_CompleteDelivery(t *testing.T) {
	t.Run("order completes when last delivery is delivered", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1", "D-2")
		require.NoError(t, o.ShipDelivery("D-1", "TRK-1", "UPS"))
		require.NoError(t, o.ShipDelivery("D-2", "TRK-2", "DHL"))

		require.NoError(t, o.CompleteDelivery("D-1"))
		assert.Equal(t, order.Shipped, o.Status())

		require.NoError(t, o.CompleteDelivery("D-2"))
		assert.Equal(t, order.Completed, o.Status())
	})
}

func TestOrder_Refund(t *testing.T) {
	t.Run("refund returns shipped and delivered deliveries", func(t *testing.T) {
		o := newProcessingOrder(t, "D-1", "D-2")
		require.NoError(t, o.ShipDelivery("D-1", "TRK-1", "UPS"))
		require.NoError(t, o.ShipDelivery("D-2", "TRK-2", "DHL"))
		require.NoError(t, o.CompleteDelivery("D-1"))

		require.NoError(t, o.Refund())

		assert.Equal(t, order.Refunded, o.Status())
		for _, delivery := range o.Deliveries() {
			assert.Equal(t, order.DeliveryReturned, delivery.Status())
		}
	})

	t.Run("cannot refund before shipment", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Refund()

		require.ErrorIs(t, err, order.ErrTransitionNotAllowed)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("restores status, timestamps and deliveries", func(t *testing.T) {
		total, _ := kernel.NewMoney(5000, "EUR")
		delivery, err := order.RestoreDelivery(kernel.NewUUID(), "D-1", order.DeliveryPacking, "", "")
		require.NoError(t, err)
		createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		updatedAt := createdAt.Add(time.Hour)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2002", kernel.NewUUID(), kernel.NewUUID(),
			total, order.InProgress, []*order.Delivery{delivery}, createdAt, updatedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, order.InProgress, o.Status())
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, updatedAt, o.UpdatedAt())
		assert.Len(t, o.Deliveries(), 1)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		total, _ := kernel.NewMoney(5000, "EUR")

		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2002", kernel.NewUUID(), kernel.NewUUID(),
			total, order.Unknown, nil, time.Now(), time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("rejects duplicate delivery numbers", func(t *testing.T) {
		total, _ := kernel.NewMoney(5000, "EUR")
		d1, _ := order.NewDelivery(kernel.NewUUID(), "D-1")
		d2, _ := order.NewDelivery(kernel.NewUUID(), "D-1")

		_, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-2002", kernel.NewUUID(), kernel.NewUUID(),
			total, order.Created, []*order.Delivery{d1, d2}, time.Now(), time.Now(),
		)

		require.ErrorIs(t, err, order.ErrDuplicateDeliveryNumber)
	})
}
