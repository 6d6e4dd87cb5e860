// Package order prices and persists orders and moves them through their
// lifecycle.
package order

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
)

// Caller is the verified identity behind a request.
type Caller struct {
	UserID string
	Role   identity.Role
}

func (c Caller) canSee(ownerID string) bool {
	return c.Role.IsAdmin() || (c.UserID != "" && c.UserID == ownerID)
}

type Service struct {
	repo         Repository
	reserveStock bool
}

func NewService(repo Repository, reserveStock bool) *Service {
	return &Service{repo: repo, reserveStock: reserveStock}
}

// CreateOrder prices every line at the product's current price and stores
// the order with all its items, or nothing.
func (s *Service) CreateOrder(ctx context.Context, userID string, in CreateOrderRequest) (*Order, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperr.Unauthorized("invalid user identity")
	}
	if len(in.Items) == 0 {
		return nil, apperr.Validation("an order needs at least one item")
	}

	ids := make([]string, 0, len(in.Items))
	seen := map[string]bool{}
	for i, line := range in.Items {
		if _, err := uuid.Parse(line.ProductID); err != nil {
			return nil, apperr.Validation("items[%d]: invalid product id %q", i, line.ProductID)
		}
		if line.Quantity != nil && (*line.Quantity < 1 || *line.Quantity > MaxQuantity) {
			return nil, apperr.Validation("items[%d]: quantity must be between 1 and %d", i, MaxQuantity)
		}
		if !seen[line.ProductID] {
			seen[line.ProductID] = true
			ids = append(ids, line.ProductID)
		}
	}

	prices, err := s.repo.ProductPrices(ctx, ids)
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Status:          StatusPending,
		ShippingAddress: strings.TrimSpace(in.ShippingAddress),
		Total:           decimal.Zero,
		Items:           make([]Item, 0, len(in.Items)),
	}
	for i, line := range in.Items {
		price, ok := prices[line.ProductID]
		if !ok {
			return nil, apperr.NotFound("product %s not found", line.ProductID)
		}
		qty := 1
		if line.Quantity != nil {
			qty = *line.Quantity
		}
		subtotal := price.Mul(decimal.NewFromInt(int64(qty)))
		o.Items = append(o.Items, Item{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Position:  i,
			Quantity:  qty,
			UnitPrice: price,
			Subtotal:  subtotal,
		})
		o.Total = o.Total.Add(subtotal)
	}

	if err := s.repo.Create(ctx, o, s.reserveStock); err != nil {
		return nil, err
	}
	log.Printf("[order] created id=%s user=%s items=%d total=%s", o.ID, o.UserID, len(o.Items), o.Total.StringFixed(2))
	return o, nil
}

func (s *Service) Get(ctx context.Context, id string, caller Caller) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Validation("invalid order id %q", id)
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.canSee(o.UserID) {
		return nil, apperr.Forbidden("order belongs to another user")
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string, caller Caller) ([]Order, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperr.Validation("invalid user id %q", userID)
	}
	if !caller.canSee(userID) {
		return nil, apperr.Forbidden("cannot list orders of another user")
	}
	return s.repo.ListByUser(ctx, userID)
}

// UpdateStatus moves an order one step along PENDING -> SHIPPED -> DELIVERED.
// A nil status leaves the order as it is.
func (s *Service) UpdateStatus(ctx context.Context, id string, raw *string, caller Caller) (*Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Validation("invalid order id %q", id)
	}
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		if !caller.canSee(o.UserID) {
			return nil, apperr.Forbidden("order belongs to another user")
		}
		return o, nil
	}
	if !caller.Role.IsAdmin() {
		return nil, apperr.Forbidden("only an administrator can change an order status")
	}
	to, err := ParseStatus(*raw)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, to) {
		return nil, apperr.InvalidTransition("cannot move order from %s to %s", o.Status, to)
	}
	ok, err := s.repo.UpdateStatus(ctx, id, o.Status, to)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidTransition("order %s changed concurrently", id)
	}
	log.Printf("[order] status id=%s %s->%s by=%s", id, o.Status, to, caller.UserID)
	return s.repo.GetByID(ctx, id)
}
