package tests

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/pkg/domain/model"
	"shopfront/pkg/domain/service"
	"shopfront/pkg/infrastructure/storage"
)

func validCustomer() model.Customer {
	return model.Customer{
		Name:    "Naman S",
		Phone:   "9999999999",
		Email:   "naman@example.com",
		Address: "42 Demo Street",
	}
}

func setupOrders(t *testing.T, allowEmptyCart bool) (service.OrderService, service.CartService, *storage.MemoryStore, *mockEventDispatcher) {
	store := storage.NewMemoryStore()
	dispatcher := &mockEventDispatcher{}

	cart, err := service.NewCartService(store, newStubCatalog(), dispatcher)
	require.NoError(t, err)

	orders, err := service.NewOrderService(store, cart, dispatcher, allowEmptyCart)
	require.NoError(t, err)
	return orders, cart, store, dispatcher
}

func TestPlaceOrder(t *testing.T) {
	orders, cart, store, dispatcher := setupOrders(t, true)
	require.NoError(t, cart.Add("p001", 2))
	require.NoError(t, cart.Add("p002", 1))

	wantItems := cart.Snapshot()
	dispatcher.Reset()

	order, err := orders.PlaceOrder(validCustomer())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Positive(t, order.CreatedAt)
	assert.Equal(t, wantItems, order.Items)
	assert.Equal(t, int64(450), order.Subtotal)
	assert.Equal(t, int64(50), order.Shipping)
	assert.Equal(t, int64(500), order.Total)

	// The cart is cleared only after the order is recorded.
	assert.Zero(t, cart.Units())
	assert.Empty(t, cart.Snapshot())

	listed := orders.Orders()
	require.Len(t, listed, 1)
	assert.Equal(t, *order, listed[0])

	var persisted []model.Order
	ok, err := store.Get(ordersKey, &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, persisted, 1)
	assert.Equal(t, order.ID, persisted[0].ID)

	var placed *model.OrderPlaced
	for _, event := range dispatcher.events {
		if e, ok := event.(model.OrderPlaced); ok {
			placed = &e
		}
	}
	require.NotNil(t, placed)
	assert.Equal(t, order.ID, placed.OrderID)
	assert.Equal(t, int64(500), placed.Total)
}

func TestPlaceOrderValidation(t *testing.T) {
	orders, cart, store, _ := setupOrders(t, true)
	require.NoError(t, cart.Add("p001", 1))

	cases := []struct {
		name   string
		mutate func(c *model.Customer)
	}{
		{"blank name", func(c *model.Customer) { c.Name = "" }},
		{"whitespace name", func(c *model.Customer) { c.Name = "   " }},
		{"blank phone", func(c *model.Customer) { c.Phone = "" }},
		{"blank address", func(c *model.Customer) { c.Address = "\t " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			customer := validCustomer()
			tc.mutate(&customer)

			_, err := orders.PlaceOrder(customer)
			assert.ErrorIs(t, err, model.ErrRequiredField)

			// Cart and log stay untouched on rejection.
			assert.Equal(t, 1, cart.Units())
			assert.Empty(t, orders.Orders())
			var persisted []model.Order
			ok, _ := store.Get(ordersKey, &persisted)
			assert.False(t, ok)
		})
	}

	t.Run("email is optional", func(t *testing.T) {
		customer := validCustomer()
		customer.Email = ""

		_, err := orders.PlaceOrder(customer)
		assert.NoError(t, err)
	})
}

func TestPlaceOrderTrimsCustomer(t *testing.T) {
	orders, cart, _, _ := setupOrders(t, true)
	require.NoError(t, cart.Add("p001", 1))

	order, err := orders.PlaceOrder(model.Customer{
		Name:    "  Naman S  ",
		Phone:   " 9999999999 ",
		Email:   " naman@example.com ",
		Address: " 42 Demo Street ",
	})
	require.NoError(t, err)
	assert.Equal(t, validCustomer(), order.Customer)
}

func TestPlaceOrderEmptyCartPolicy(t *testing.T) {
	t.Run("permitted by default behavior", func(t *testing.T) {
		orders, _, _, _ := setupOrders(t, true)

		order, err := orders.PlaceOrder(validCustomer())
		require.NoError(t, err)
		assert.Empty(t, order.Items)
		assert.Zero(t, order.Subtotal)
		assert.Zero(t, order.Shipping)
		assert.Zero(t, order.Total)
	})

	t.Run("rejected when the policy forbids it", func(t *testing.T) {
		orders, _, _, _ := setupOrders(t, false)

		_, err := orders.PlaceOrder(validCustomer())
		assert.ErrorIs(t, err, model.ErrEmptyCart)
		assert.Empty(t, orders.Orders())
	})
}

func TestOrdersOldestFirst(t *testing.T) {
	store := storage.NewMemoryStore()
	seeded := []model.Order{
		{ID: "ORD-1", CreatedAt: 1},
		{ID: "ORD-2", CreatedAt: 2},
	}
	require.NoError(t, store.Set(ordersKey, seeded))

	cart, err := service.NewCartService(store, newStubCatalog(), &mockEventDispatcher{})
	require.NoError(t, err)
	orders, err := service.NewOrderService(store, cart, &mockEventDispatcher{}, true)
	require.NoError(t, err)

	require.NoError(t, cart.Add("p001", 1))
	placed, err := orders.PlaceOrder(validCustomer())
	require.NoError(t, err)

	listed := orders.Orders()
	require.Len(t, listed, 3)
	assert.Equal(t, "ORD-1", listed[0].ID)
	assert.Equal(t, "ORD-2", listed[1].ID)
	assert.Equal(t, placed.ID, listed[2].ID)
}
