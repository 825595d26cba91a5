package commands_test

import (
	"context"
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/customer"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/shop"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTransitionOrderRepository struct{ mock.Mock }

func (m *MockTransitionOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransitionOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTransitionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockTransitionOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockTransitionOrderRepository) GetByNumberForUpdate(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockTransitionCustomerRepository struct{ mock.Mock }

func (m *MockTransitionCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockTransitionCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockTransitionCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockTransitionCustomerRepository) GetByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type MockTransitionShopRepository struct{ mock.Mock }

func (m *MockTransitionShopRepository) Add(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTransitionShopRepository) Update(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTransitionShopRepository) Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockTransitionShopRepository) GetByCode(ctx context.Context, code string) (*shop.Shop, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

type MockTransitionUoW struct{ mock.Mock }

func (m *MockTransitionUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransitionUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockTransitionUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockTransitionUoW) ShopRepository() ports.ShopRepository {
	args := m.Called()
	return args.Get(0).(ports.ShopRepository)
}

type MockTransitionUoWFactory struct{ mock.Mock }

func (m *MockTransitionUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTransitionNotifier struct{ mock.Mock }

func (m *MockTransitionNotifier) NotifyOrderTransition(
	o *order.Order, c *customer.Customer, s *shop.Shop, event order.TransitionEvent,
) {
	m.Called(o, c, s, event)
}

func newTransitionTestOrder(t *testing.T, number string) *order.Order {
	t.Helper()
	total, err := kernel.NewMoney(10050, "USD")
	require.NoError(t, err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), total)
	require.NoError(t, err)
	return testOrder
}

func newTransitionTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), "jane@example.com", "Jane", "Doe", "en")
	require.NoError(t, err)
	return c
}

func newTransitionTestShop(t *testing.T) *shop.Shop {
	t.Helper()
	s, err := shop.NewShop(kernel.NewUUID(), "SHOP10", "Demo Shop", "https://shop10.example.com")
	require.NoError(t, err)
	return s
}

func newTransitionCommand(t *testing.T, name, orderNumber, deliveryNumber string,
	params map[string]string,
) commands.TransitionOrderCommand {
	t.Helper()
	event, err := order.NewTransitionEvent(name, orderNumber, deliveryNumber, params)
	require.NoError(t, err)
	cmd, err := commands.NewTransitionOrderCommand(event)
	require.NoError(t, err)
	return cmd
}

func TestTransitionOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventPaymentOk, "ORD-1001", "",
		map[string]string{order.ParamPaymentRef: "pay-42"})

	testOrder := newTransitionTestOrder(t, "ORD-1001")
	testCustomer := newTransitionTestCustomer(t)
	testShop := newTransitionTestShop(t)

	orderRepo := new(MockTransitionOrderRepository)
	customerRepo := new(MockTransitionCustomerRepository)
	shopRepo := new(MockTransitionShopRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, testOrder.CustomerID()).Return(testCustomer, nil).Once(),
		uow.On("ShopRepository").Return(shopRepo).Once(),
		shopRepo.On("Get", ctx, testOrder.ShopID()).Return(testShop, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockTransitionNotifier)
	notifier.On("NotifyOrderTransition",
		mock.AnythingOfType("*order.Order"),
		mock.AnythingOfType("*customer.Customer"),
		mock.AnythingOfType("*shop.Shop"),
		mock.AnythingOfType("order.TransitionEvent"),
	).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, notifier, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, order.PaymentOk, testOrder.Status())
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.TransitionOrderCommand{} // not constructed properly

	factory := new(MockTransitionUoWFactory)
	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrTransitionOrderCommandIsNotConstructed)
	assert.False(t, handled)
	factory.AssertNotCalled(t, "Create")
}

func TestTransitionOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventPaymentOk, "ORD-MISSING", "", nil)

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-MISSING").
			Return(nil, errs.NewObjectNotFoundError("orderNumber", "ORD-MISSING")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.False(t, handled)
}

func TestTransitionOrderCommandHandler_Handle_NotAllowedFromCurrentStatus(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventPaymentOk, "ORD-1001", "", nil)

	// Already paid: a redelivered payment confirmation must be a no-op.
	testOrder := newTransitionTestOrder(t, "ORD-1001")
	require.NoError(t, testOrder.ConfirmPayment())

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockTransitionNotifier)

	handler := commands.NewTransitionOrderCommandHandler(factory, notifier, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, handled)
	assert.Equal(t, order.PaymentOk, testOrder.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "NotifyOrderTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_DeliveryNotFound(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventDeliveryShip, "ORD-1001", "DEL-9",
		map[string]string{order.ParamTrackingNumber: "TRK-1", order.ParamCarrier: "DHL"})

	testOrder := newTransitionTestOrder(t, "ORD-1001")
	require.NoError(t, testOrder.ConfirmPayment())
	require.NoError(t, testOrder.StartProcessing())

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.False(t, handled)
}

func TestTransitionOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventCancel, "ORD-1001", "", nil)

	uow := new(MockTransitionUoW)
	factory := new(MockTransitionUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "begin error")
	assert.False(t, handled)
}

func TestTransitionOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventCancel, "ORD-1001", "",
		map[string]string{order.ParamReason: "customer request"})

	testOrder := newTransitionTestOrder(t, "ORD-1001")

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("update error")).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "update error")
	assert.False(t, handled)
}

func TestTransitionOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventPaymentFailed, "ORD-1001", "", nil)

	testOrder := newTransitionTestOrder(t, "ORD-1001")
	require.NoError(t, testOrder.AwaitPayment())
	testCustomer := newTransitionTestCustomer(t)
	testShop := newTransitionTestShop(t)

	orderRepo := new(MockTransitionOrderRepository)
	customerRepo := new(MockTransitionCustomerRepository)
	shopRepo := new(MockTransitionShopRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, testOrder.CustomerID()).Return(testCustomer, nil).Once(),
		uow.On("ShopRepository").Return(shopRepo).Once(),
		shopRepo.On("Get", ctx, testOrder.ShopID()).Return(testShop, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockTransitionNotifier)

	handler := commands.NewTransitionOrderCommandHandler(factory, notifier, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	assert.False(t, handled)
	notifier.AssertNotCalled(t, "NotifyOrderTransition",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_DeliveryCascade(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventDeliveryShip, "ORD-1001", "DEL-1",
		map[string]string{order.ParamTrackingNumber: "TRK-1", order.ParamCarrier: "DHL"})

	testOrder := newTransitionTestOrder(t, "ORD-1001")
	testDelivery, err := order.NewDelivery(kernel.NewUUID(), "DEL-1")
	require.NoError(t, err)
	require.NoError(t, testOrder.AddDelivery(testDelivery))
	require.NoError(t, testOrder.ConfirmPayment())
	require.NoError(t, testOrder.StartProcessing())

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, handled)
	// The only delivery shipped, so the order follows.
	assert.Equal(t, order.Shipped, testOrder.Status())
	assert.Equal(t, order.DeliveryShipped, testDelivery.Status())
	assert.Equal(t, "TRK-1", testDelivery.TrackingNumber())
}

func TestTransitionOrderCommandHandler_Handle_NilNotifier_SkipsContextLoad(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventPaymentOk, "ORD-1001", "", nil)

	testOrder := newTransitionTestOrder(t, "ORD-1001")

	orderRepo := new(MockTransitionOrderRepository)
	uow := new(MockTransitionUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, nil, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, order.PaymentOk, testOrder.Status())
	uow.AssertNotCalled(t, "CustomerRepository")
	uow.AssertNotCalled(t, "ShopRepository")
	uow.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_NotificationContextUnavailable_StillCommits(t *testing.T) {
	ctx := t.Context()
	cmd := newTransitionCommand(t, order.EventPaymentOk, "ORD-1001", "",
		map[string]string{order.ParamPaymentRef: "pay-42"})

	testOrder := newTransitionTestOrder(t, "ORD-1001")

	orderRepo := new(MockTransitionOrderRepository)
	customerRepo := new(MockTransitionCustomerRepository)
	shopRepo := new(MockTransitionShopRepository)
	uow := new(MockTransitionUoW)

	// Customer and shop rows are gone. The transition must still commit
	// and the notifier receives what little context is left.
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberForUpdate", ctx, "ORD-1001").Return(testOrder, nil).Once(),
		uow.On("CustomerRepository").Return(customerRepo).Once(),
		customerRepo.On("Get", ctx, testOrder.CustomerID()).
			Return(nil, errs.NewObjectNotFoundError("customerID", testOrder.CustomerID())).
			Once(),
		uow.On("ShopRepository").Return(shopRepo).Once(),
		shopRepo.On("Get", ctx, testOrder.ShopID()).
			Return(nil, errs.NewObjectNotFoundError("shopID", testOrder.ShopID())).
			Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTransitionUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockTransitionNotifier)
	notifier.On("NotifyOrderTransition",
		mock.AnythingOfType("*order.Order"),
		mock.MatchedBy(func(c *customer.Customer) bool { return c == nil }),
		mock.MatchedBy(func(s *shop.Shop) bool { return s == nil }),
		mock.AnythingOfType("order.TransitionEvent"),
	).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, notifier, nil)
	handled, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, order.PaymentOk, testOrder.Status())
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}
