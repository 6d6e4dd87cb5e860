package product

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"
)

// UpdateProductRequest payload de actualización parcial. Los campos omitidos no cambian
// y category_id en null deja el producto sin categoría.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name             *string          `json:"name"              binding:"omitempty,notblank,max=150" example:"Teclado mecánico"`
	Slug             *string          `json:"slug"              binding:"omitempty,notblank,max=150"`
	Price            *decimal.Decimal `json:"price"             swaggertype:"string" example:"199.90"`
	Stock            *int             `json:"stock"             binding:"omitempty,min=0" example:"10"`
	WeightKg         *decimal.Decimal `json:"weight_kg"         swaggertype:"string" example:"0.8"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=255"`
	Description      *string          `json:"description"`
	CategoryID       OptionalID       `json:"category_id"       swaggertype:"string" example:"4e7d4e5c-5cb9-4a3f-9f21-7e1a4f9f2b2a"`
}

// OptionalID tells an omitted JSON field (Set false) from an explicit null
// (Set true, Value nil).
type OptionalID struct {
	Set   bool
	Value *string
}

// SomeID is an OptionalID carrying id.
func SomeID(id string) OptionalID {
	return OptionalID{Set: true, Value: &id}
}

func (o *OptionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// ReviewRequest payload de reseña.
// swagger:model ReviewRequest
type ReviewRequest struct {
	Score   int    `json:"score"   binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"omitempty,max=1000"   example:"Excelente"`
}

// Upload is an incoming image file.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// CreateInput is the decoded multipart form of a product creation.
type CreateInput struct {
	Name             string
	Slug             string
	Price            decimal.Decimal
	Stock            int
	WeightKg         *decimal.Decimal
	ShortDescription string
	Description      string
	CategoryID       string
	Specifications   []byte
	MainImage        *Upload
	Images           []Upload
}
