package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
)

var statusAliases = map[string]Status{
	"PENDING":   StatusPending,
	"PENDIENTE": StatusPending,
	"SHIPPED":   StatusShipped,
	"ENVIADO":   StatusShipped,
	"DELIVERED": StatusDelivered,
	"ENTREGADO": StatusDelivered,
}

// ParseStatus accepts the canonical names and their Spanish aliases in any case.
func ParseStatus(raw string) (Status, error) {
	s, ok := statusAliases[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", apperr.Validation("unknown order status %q", raw)
	}
	return s, nil
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusShipped
	case StatusShipped:
		return to == StatusDelivered
	default:
		return false
	}
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Status          Status          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shipping_address,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []Item          `json:"items"`
}

type Item struct {
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Position    int             `json:"position"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
