package tests

import (
	"shopfront/pkg/domain/model"
	"shopfront/pkg/domain/service"
)

// Fixed storage keys, part of the persisted-state contract.
const (
	authKey   = "shop_auth_v1"
	usersKey  = "shop_users_v1"
	cartKey   = "shop_cart_v1"
	ordersKey = "shop_orders_v1"
)

type mockEventDispatcher struct {
	events []service.Event
}

func (m *mockEventDispatcher) Dispatch(event service.Event) error {
	m.events = append(m.events, event)
	return nil
}

func (m *mockEventDispatcher) Reset() {
	m.events = nil
}

// stubCatalog serves a small fixed product list so cart and order math
// is deterministic.
type stubCatalog struct {
	products []model.Product
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: []model.Product{
		{ID: "p001", Title: "Pro Watch 1", Price: 100, Category: "Wearables"},
		{ID: "p002", Title: "Lite Wallet 2", Price: 250, Category: "Accessories"},
		{ID: "p003", Title: "Plus Shoes 3", Price: 999, Category: "Footwear"},
	}}
}

func (c *stubCatalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *stubCatalog) Product(id string) (*model.Product, error) {
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (c *stubCatalog) Categories() []string {
	out := make([]string, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.Category)
	}
	return out
}

func (c *stubCatalog) Filter(q service.CatalogQuery) []model.Product {
	return c.Products()
}

func (c *stubCatalog) drop(id string) {
	kept := c.products[:0]
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
}
