package model

import "errors"

var (
	ErrRequiredField = errors.New("required field is blank")
	ErrEmptyCart     = errors.New("cannot place an order with an empty cart")
)

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Order is an immutable snapshot of the cart at purchase time. The id is
// derived from the creation time in milliseconds; two orders placed
// within the same millisecond would collide. Known weakness of the demo,
// kept as is.
type Order struct {
	ID        string     `json:"id"`
	CreatedAt int64      `json:"createdAt"`
	Customer  Customer   `json:"customer"`
	Items     []LineItem `json:"items"`
	Subtotal  int64      `json:"subtotal"`
	Shipping  int64      `json:"shipping"`
	Total     int64      `json:"total"`
}
