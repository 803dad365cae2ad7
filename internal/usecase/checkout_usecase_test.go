package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/luxecart/internal/domain/entity"
	"github.com/yourusername/luxecart/internal/domain/repository"
	"github.com/yourusername/luxecart/internal/infrastructure/payment"
	"github.com/yourusername/luxecart/internal/infrastructure/storage"
	"github.com/yourusername/luxecart/pkg/errs"
)

type checkoutFixture struct {
	cart     CartUseCase
	checkout CheckoutUseCase
	orders   repository.OrderRepository
}

func newCheckoutFixture(t *testing.T, payments repository.PaymentProcessor) checkoutFixture {
	t.Helper()

	shoppers := storage.NewMemoryShopperRepository()
	orders := storage.NewMemoryOrderRepository()
	products := seededProducts(t)

	return checkoutFixture{
		cart:     NewCartUseCase(shoppers, products, entity.DefaultPricing),
		checkout: NewCheckoutUseCase(shoppers, orders, payments, entity.DefaultPricing),
		orders:   orders,
	}
}

func TestPlaceOrder(t *testing.T) {
	ctx := context.Background()
	payments := &stubPayments{approved: true}
	f := newCheckoutFixture(t, payments)

	_, err := f.cart.AddToCart(ctx, "s1", "1", 1)
	require.NoError(t, err)
	_, err = f.cart.AddToCart(ctx, "s1", "10", 2)
	require.NoError(t, err)

	quote, err := f.checkout.Quote(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, quote.Items, 2)
	assert.InDelta(t, 339.97, quote.Totals.Rounded().Subtotal, 0.001)

	order, err := f.checkout.PlaceOrder(ctx, "s1", validForm())
	require.NoError(t, err)

	assert.Equal(t, 1, payments.calls)
	assert.Equal(t, entity.OrderStatusPlaced, order.Status)
	assert.Equal(t, "1111", order.CardLast4)
	assert.Equal(t, "Jane Doe, 1 Main St, Springfield, IL 62701, US", order.ShipTo)
	assert.Len(t, order.Items, 2)
	assert.InDelta(t, 339.97, order.Totals.Subtotal, 0.001)
	assert.Zero(t, order.Totals.Shipping)
	assert.InDelta(t, 34.0, order.Totals.Tax, 0.001)
	assert.InDelta(t, 373.97, order.Totals.Total, 0.001)
	assert.NotEmpty(t, order.TransactionID)

	cart, err := f.cart.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, cart)

	stored, err := f.checkout.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, stored.ID)

	list, err := f.checkout.ListOrders(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	payments := &stubPayments{approved: true}
	f := newCheckoutFixture(t, payments)

	_, err := f.checkout.PlaceOrder(context.Background(), "s1", validForm())
	assert.ErrorIs(t, err, errs.ErrEmptyCart)
	assert.Zero(t, payments.calls)
}

func TestPlaceOrderInvalidFormKeepsCart(t *testing.T) {
	ctx := context.Background()
	payments := &stubPayments{approved: true}
	f := newCheckoutFixture(t, payments)
	_, _ = f.cart.AddToCart(ctx, "s1", "1", 1)

	form := validForm()
	form.Email = "not-an-email"
	form.CVV = "12"

	_, err := f.checkout.PlaceOrder(ctx, "s1", form)
	require.ErrorIs(t, err, errs.ErrInvalidCheckout)

	var verrs errs.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("email"))
	assert.True(t, verrs.Has("cvv"))
	assert.Zero(t, payments.calls)

	cart, _ := f.cart.GetCart(ctx, "s1")
	assert.Len(t, cart, 1)
}

func TestPlaceOrderPaymentFailures(t *testing.T) {
	ctx := context.Background()

	declined := newCheckoutFixture(t, &stubPayments{approved: false})
	_, _ = declined.cart.AddToCart(ctx, "s1", "1", 1)
	_, err := declined.checkout.PlaceOrder(ctx, "s1", validForm())
	assert.ErrorIs(t, err, errs.ErrPaymentDeclined)
	cart, _ := declined.cart.GetCart(ctx, "s1")
	assert.Len(t, cart, 1)

	broken := newCheckoutFixture(t, &stubPayments{err: context.Canceled})
	_, _ = broken.cart.AddToCart(ctx, "s1", "1", 1)
	_, err = broken.checkout.PlaceOrder(ctx, "s1", validForm())
	assert.ErrorIs(t, err, context.Canceled)
	orders, _ := broken.orders.ListAll(ctx, 0)
	assert.Empty(t, orders)
}

func TestPlaceOrderCancelledDuringSimulatedPayment(t *testing.T) {
	f := newCheckoutFixture(t, payment.NewSimulatedProcessor(time.Hour))
	_, _ = f.cart.AddToCart(context.Background(), "s1", "1", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.checkout.PlaceOrder(ctx, "s1", validForm())
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	cart, _ := f.cart.GetCart(context.Background(), "s1")
	assert.Len(t, cart, 1)
}

func TestPlaceOrderKeepsItemsAddedDuringPayment(t *testing.T) {
	ctx := context.Background()
	payments := &stubPayments{approved: true}
	f := newCheckoutFixture(t, payments)

	_, err := f.cart.AddToCart(ctx, "s1", "1", 1)
	require.NoError(t, err)

	payments.during = func() {
		_, err := f.cart.AddToCart(ctx, "s1", "10", 3)
		require.NoError(t, err)
	}

	order, err := f.checkout.PlaceOrder(ctx, "s1", validForm())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "1", order.Items[0].ID)

	cart, err := f.cart.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, "10", cart[0].ID)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestPlaceOrderRejectsSecondCheckoutWhilePaying(t *testing.T) {
	ctx := context.Background()
	payments := &stubPayments{approved: true}
	f := newCheckoutFixture(t, payments)

	_, err := f.cart.AddToCart(ctx, "s1", "1", 2)
	require.NoError(t, err)

	var nestedErr error
	payments.during = func() {
		payments.during = nil
		_, nestedErr = f.checkout.PlaceOrder(ctx, "s1", validForm())
	}

	_, err = f.checkout.PlaceOrder(ctx, "s1", validForm())
	require.NoError(t, err)
	assert.ErrorIs(t, nestedErr, errs.ErrEmptyCart)
	assert.Equal(t, 1, payments.calls)

	orders, err := f.checkout.ListOrders(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestPlaceOrderConflictWhilePendingAndCartRefilled(t *testing.T) {
	ctx := context.Background()
	payments := &stubPayments{approved: true}
	f := newCheckoutFixture(t, payments)

	_, err := f.cart.AddToCart(ctx, "s1", "1", 1)
	require.NoError(t, err)

	var nestedErr error
	payments.during = func() {
		payments.during = nil
		_, _ = f.cart.AddToCart(ctx, "s1", "4", 1)
		_, nestedErr = f.checkout.PlaceOrder(ctx, "s1", validForm())
	}

	_, err = f.checkout.PlaceOrder(ctx, "s1", validForm())
	require.NoError(t, err)
	assert.ErrorIs(t, nestedErr, errs.ErrCheckoutInProgress)
	assert.Equal(t, 1, payments.calls)

	cart, _ := f.cart.GetCart(ctx, "s1")
	require.Len(t, cart, 1)
	assert.Equal(t, "4", cart[0].ID)
}

func TestPlaceOrderDeclineMergesClaimedLinesBack(t *testing.T) {
	ctx := context.Background()
	payments := &stubPayments{approved: false}
	f := newCheckoutFixture(t, payments)

	_, err := f.cart.AddToCart(ctx, "s1", "1", 2)
	require.NoError(t, err)

	payments.during = func() {
		_, err := f.cart.AddToCart(ctx, "s1", "1", 1)
		require.NoError(t, err)
	}

	_, err = f.checkout.PlaceOrder(ctx, "s1", validForm())
	require.ErrorIs(t, err, errs.ErrPaymentDeclined)

	cart, err := f.cart.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)

	// Band qilish bekor bo'lgach yana buyurtma berish mumkin
	payments.approved = true
	payments.during = nil
	order, err := f.checkout.PlaceOrder(ctx, "s1", validForm())
	require.NoError(t, err)
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func TestValidateCheckoutForm(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(f *entity.CheckoutForm)
		field  string
		tag    string
	}{
		{"missing city", func(f *entity.CheckoutForm) { f.City = "  " }, "city", TagRequired},
		{"bad email", func(f *entity.CheckoutForm) { f.Email = "jane@" }, "email", TagEmail},
		{"short card", func(f *entity.CheckoutForm) { f.CardNumber = "4111 1111" }, "cardNumber", TagCardNumber},
		{"long card", func(f *entity.CheckoutForm) { f.CardNumber = "41111111111111111" }, "cardNumber", TagCardNumber},
		{"letters in card", func(f *entity.CheckoutForm) { f.CardNumber = "4111a11111111111" }, "cardNumber", TagCardNumber},
		{"bad expiry", func(f *entity.CheckoutForm) { f.ExpiryDate = "13/30" }, "expiryDate", TagExpiry},
		{"expiry format", func(f *entity.CheckoutForm) { f.ExpiryDate = "1/30" }, "expiryDate", TagExpiry},
		{"expired", func(f *entity.CheckoutForm) { f.ExpiryDate = "02/26" }, "expiryDate", TagExpired},
		{"cvv letters", func(f *entity.CheckoutForm) { f.CVV = "12a" }, "cvv", TagCVV},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			tc.mutate(&form)

			verrs := ValidateCheckoutForm(form, now)
			require.Len(t, verrs, 1)
			assert.Equal(t, errs.FieldError{Field: tc.field, Tag: tc.tag}, verrs[0])
		})
	}

	form := validForm()
	form.ExpiryDate = "03/26"
	assert.Nil(t, ValidateCheckoutForm(form, now))

	form.CardNumber = "4111-1111-1111-1"
	assert.Nil(t, ValidateCheckoutForm(form, now))

	assert.Len(t, ValidateCheckoutForm(entity.CheckoutForm{}, now), 12)
}
