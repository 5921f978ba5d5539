package service

import (
	"shopfront/pkg/domain/model"
	"shopfront/pkg/infrastructure/storage"
)

const cartKey = "shop_cart_v1"

// shippingFee is a single flat charge applied once whenever the cart is
// non-empty, independent of item count.
const shippingFee = 50

// CartService maps product ids to positive quantities. Every mutation
// persists the full map to the durable scope before returning.
type CartService interface {
	Add(productID string, qty int) error
	Increment(productID string) error
	Decrement(productID string) error
	Remove(productID string) error
	Clear() error
	// Snapshot resolves entries against the current catalog, in catalog
	// order. Entries whose product id no longer resolves are dangling
	// references and are excluded.
	Snapshot() []model.LineItem
	Totals() model.Totals
	// Units is the total item count across all entries.
	Units() int
}

func NewCartService(store storage.Store, catalog Catalog, dispatcher EventDispatcher) (CartService, error) {
	items := make(map[string]int)
	if _, err := store.Get(cartKey, &items); err != nil {
		return nil, err
	}
	return &cartService{store: store, catalog: catalog, dispatcher: dispatcher, items: items}, nil
}

type cartService struct {
	store      storage.Store
	catalog    Catalog
	dispatcher EventDispatcher
	items      map[string]int
}

func (s *cartService) Add(productID string, qty int) error {
	if qty < 1 {
		return model.ErrInvalidQuantity
	}
	s.items[productID] += qty
	return s.persist()
}

func (s *cartService) Increment(productID string) error {
	s.items[productID]++
	return s.persist()
}

func (s *cartService) Decrement(productID string) error {
	qty, ok := s.items[productID]
	if !ok {
		return nil
	}
	if qty > 1 {
		s.items[productID]--
	} else {
		// Never store a zero quantity.
		delete(s.items, productID)
	}
	return s.persist()
}

func (s *cartService) Remove(productID string) error {
	if _, ok := s.items[productID]; !ok {
		return nil
	}
	delete(s.items, productID)
	return s.persist()
}

func (s *cartService) Clear() error {
	s.items = make(map[string]int)
	if err := s.persist(); err != nil {
		return err
	}
	_ = s.dispatcher.Dispatch(model.CartCleared{})
	return nil
}

func (s *cartService) Snapshot() []model.LineItem {
	out := make([]model.LineItem, 0, len(s.items))
	for _, p := range s.catalog.Products() {
		qty, ok := s.items[p.ID]
		if !ok {
			continue
		}
		out = append(out, model.LineItem{
			ProductID: p.ID,
			Title:     p.Title,
			UnitPrice: p.Price,
			Quantity:  qty,
			LineTotal: p.Price * int64(qty),
		})
	}
	return out
}

func (s *cartService) Totals() model.Totals {
	var subtotal int64
	for _, item := range s.Snapshot() {
		subtotal += item.LineTotal
	}

	var shipping int64
	if subtotal > 0 {
		shipping = shippingFee
	}
	return model.Totals{Subtotal: subtotal, Shipping: shipping, Total: subtotal + shipping}
}

func (s *cartService) Units() int {
	units := 0
	for _, qty := range s.items {
		units += qty
	}
	return units
}

func (s *cartService) persist() error {
	return s.store.Set(cartKey, s.items)
}
