package model

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be a positive number")

// LineItem is one cart or order row, with the unit price captured at the
// time the snapshot was taken.
type LineItem struct {
	ProductID string `json:"id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"price"`
	Quantity  int    `json:"qty"`
	LineTotal int64  `json:"lineTotal"`
}

type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Total    int64 `json:"total"`
}
