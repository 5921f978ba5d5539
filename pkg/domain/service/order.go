package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"shopfront/pkg/domain/model"
	"shopfront/pkg/infrastructure/storage"
)

const ordersKey = "shop_orders_v1"

// OrderService keeps an append-only log of placed orders. There is no
// edit or delete operation.
type OrderService interface {
	// PlaceOrder validates the customer, snapshots the cart into a new
	// order, persists the log and clears the cart. Name, phone and
	// address must be non-blank after trimming; email is optional.
	PlaceOrder(customer model.Customer) (*model.Order, error)
	// Orders lists placed orders, oldest first.
	Orders() []model.Order
}

// NewOrderService loads the persisted log. Whether an empty cart may be
// checked out is a policy choice; zero-item orders are permitted when
// allowEmptyCart is true.
func NewOrderService(store storage.Store, cart CartService, dispatcher EventDispatcher, allowEmptyCart bool) (OrderService, error) {
	var log []model.Order
	if _, err := store.Get(ordersKey, &log); err != nil {
		return nil, err
	}
	return &orderService{
		store:          store,
		cart:           cart,
		dispatcher:     dispatcher,
		allowEmptyCart: allowEmptyCart,
		log:            log,
	}, nil
}

type orderService struct {
	store          storage.Store
	cart           CartService
	dispatcher     EventDispatcher
	allowEmptyCart bool
	log            []model.Order
}

func (s *orderService) PlaceOrder(customer model.Customer) (*model.Order, error) {
	trimmed, err := validateCustomer(customer)
	if err != nil {
		return nil, err
	}

	items := s.cart.Snapshot()
	if !s.allowEmptyCart && len(items) == 0 {
		return nil, model.ErrEmptyCart
	}
	totals := s.cart.Totals()

	now := time.Now()
	order := model.Order{
		ID:        fmt.Sprintf("ORD-%d", now.UnixMilli()),
		CreatedAt: now.UnixMilli(),
		Customer:  trimmed,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Total:     totals.Total,
	}

	appended := append(s.log, order)
	if err := s.store.Set(ordersKey, appended); err != nil {
		return nil, err
	}
	s.log = appended

	if err := s.cart.Clear(); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Dispatch(model.OrderPlaced{
		OrderID:   order.ID,
		ItemCount: len(order.Items),
		Total:     order.Total,
	})
	return &order, nil
}

func (s *orderService) Orders() []model.Order {
	out := make([]model.Order, len(s.log))
	copy(out, s.log)
	return out
}

func validateCustomer(c model.Customer) (model.Customer, error) {
	trimmed := model.Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Email:   strings.TrimSpace(c.Email),
		Address: strings.TrimSpace(c.Address),
	}

	required := []struct {
		field, value string
	}{
		{"name", trimmed.Name},
		{"phone", trimmed.Phone},
		{"address", trimmed.Address},
	}
	for _, r := range required {
		if r.value == "" {
			return model.Customer{}, errors.Wrap(model.ErrRequiredField, r.field)
		}
	}
	return trimmed, nil
}
