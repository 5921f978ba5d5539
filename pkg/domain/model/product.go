package model

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is immutable once generated. Price is in whole currency units;
// the catalog is rebuilt with fresh random prices on every start, so
// product ids are stable across runs but prices are not.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	ImageURL    string `json:"img"`
}
