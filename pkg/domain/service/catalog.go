package service

import (
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"sort"
	"strings"

	"shopfront/pkg/domain/model"
)

var categories = []string{
	"Electronics", "Accessories", "Footwear", "Home", "Bags", "Fitness",
	"Stationery", "Gaming", "Kitchen", "Mobile", "Wearables", "Books",
}

var adjectives = []string{
	"Pro", "Lite", "Plus", "X", "Ultra", "Neo", "Prime", "Classic",
	"Smart", "Active", "Eco", "Max",
}

var nouns = []string{
	"Headphones", "Watch", "Wallet", "Shoes", "Candle", "Backpack",
	"Speaker", "Sunglasses", "Laptop", "Mouse", "Keyboard", "Bottle",
	"Tumbler", "Charger", "Powerbank", "Lamp", "Desk", "Chair", "Printer",
	"Mug", "Jacket", "T-shirt", "Socks", "Camera", "Drone", "Tripod",
	"Bag", "Gloves", "Mat", "Racket", "Ball", "Notebook", "Pen",
	"Stapler", "Case", "Router",
}

const catalogSize = 75

type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

// CatalogQuery narrows and orders the product list. Zero values leave
// the corresponding dimension unbounded.
type CatalogQuery struct {
	Search   string
	Category string
	MinPrice int64
	MaxPrice int64
	Sort     SortOrder
}

type Catalog interface {
	Products() []model.Product
	Product(id string) (*model.Product, error)
	Categories() []string
	Filter(q CatalogQuery) []model.Product
}

// NewCatalog generates the fixed-size product list. Titles, ids,
// categories and descriptions are deterministic by index; prices carry a
// random component, so the catalog is not stable across restarts.
func NewCatalog() Catalog {
	products := make([]model.Product, 0, catalogSize)
	for i := 1; i <= catalogSize; i++ {
		category := categories[i%len(categories)]
		noun := nouns[i%len(nouns)]
		title := fmt.Sprintf("%s %s %d", adjectives[i%len(adjectives)], noun, i)

		products = append(products, model.Product{
			ID:          fmt.Sprintf("p%03d", i),
			Title:       title,
			Description: fmt.Sprintf("%s — premium %s for %s.", title, strings.ToLower(noun), strings.ToLower(category)),
			Price:       int64(math.Round(rand.Float64()*4000 + float64(i)*10)),
			Category:    category,
			ImageURL:    imageURL(title),
		})
	}
	return &catalog{products: products}
}

type catalog struct {
	products []model.Product
}

func (c *catalog) Products() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *catalog) Product(id string) (*model.Product, error) {
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p, nil
		}
	}
	return nil, model.ErrProductNotFound
}

func (c *catalog) Categories() []string {
	seen := make(map[string]bool, len(categories))
	out := make([]string, 0, len(categories))
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

func (c *catalog) Filter(q CatalogQuery) []model.Product {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if q.MinPrice > 0 && p.Price < q.MinPrice {
			continue
		}
		if q.MaxPrice > 0 && p.Price > q.MaxPrice {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

func imageURL(title string) string {
	seed := url.PathEscape(strings.ReplaceAll(title, " ", ""))
	return fmt.Sprintf("https://picsum.photos/seed/%s/600/600", seed)
}
