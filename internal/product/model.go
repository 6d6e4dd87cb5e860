package product

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Price            decimal.Decimal `json:"price"`
	Stock            int             `json:"stock"`
	WeightKg         decimal.Decimal `json:"weight_kg"`
	ShortDescription string          `json:"short_description,omitempty"`
	Description      string          `json:"description,omitempty"`
	MainImageURL     string          `json:"main_image_url,omitempty"`
	Images           []string        `json:"images"`
	Specifications   json.RawMessage `json:"specifications" swaggertype:"object"`
	CategoryID       *string         `json:"category_id"`
	Views            int             `json:"views"`
	AverageRating    decimal.Decimal `json:"average_rating"`
	ReviewCount      int             `json:"review_count"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Detail is a product together with up to three related products.
type Detail struct {
	Product
	Related []Product `json:"related"`
}

// Page is one slice of a ranked category listing.
type Page struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Patch holds the columns a partial update touches; nil means unchanged.
// ClearCategory detaches the product from its category and wins over CategoryID.
type Patch struct {
	Name             *string
	Slug             *string
	Price            *decimal.Decimal
	Stock            *int
	WeightKg         *decimal.Decimal
	ShortDescription *string
	Description      *string
	CategoryID       *string
	ClearCategory    bool
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Price == nil && p.Stock == nil &&
		p.WeightKg == nil && p.ShortDescription == nil && p.Description == nil && p.CategoryID == nil &&
		!p.ClearCategory
}
