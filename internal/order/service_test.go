package order

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
)

func init() {
	log.SetOutput(io.Discard)
}

type stubRepo struct {
	prices  map[string]decimal.Decimal
	stock   map[string]int
	orders  map[string]*Order
	creates int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		prices: map[string]decimal.Decimal{},
		stock:  map[string]int{},
		orders: map[string]*Order{},
	}
}

func (s *stubRepo) ProductPrices(_ context.Context, ids []string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, id := range ids {
		if p, ok := s.prices[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *stubRepo) Create(_ context.Context, o *Order, reserveStock bool) error {
	s.creates++
	if reserveStock {
		left := map[string]int{}
		for k, v := range s.stock {
			left[k] = v
		}
		for _, it := range o.Items {
			if left[it.ProductID] < it.Quantity {
				return apperr.Conflict("insufficient stock for product %s", it.ProductID)
			}
			left[it.ProductID] -= it.Quantity
		}
		s.stock = left
	}
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	cp.Items = append([]Item(nil), o.Items...)
	s.orders[o.ID] = &cp
	return nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubRepo) ListByUser(_ context.Context, userID string) ([]Order, error) {
	out := []Order{}
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id string, from, to Status) (bool, error) {
	o, ok := s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func qty(n int) *int { return &n }

var (
	admin = Caller{UserID: uuid.NewString(), Role: identity.RoleAdmin}
)

func TestCreateOrderTotalIsSumOfSubtotals(t *testing.T) {
	repo := newStubRepo()
	p1, p2 := uuid.NewString(), uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("9.99")
	repo.prices[p2] = decimal.RequireFromString("0.10")
	svc := NewService(repo, false)
	user := uuid.NewString()

	o, err := svc.CreateOrder(context.Background(), user, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: p1, Quantity: qty(2)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "19.98", o.Total.StringFixed(2))
	require.Len(t, o.Items, 1)
	assert.Equal(t, "19.98", o.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, user, o.UserID)

	o, err = svc.CreateOrder(context.Background(), user, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: p2, Quantity: qty(3)}, {ProductID: p1}, {ProductID: p2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.39", o.Total.StringFixed(2))
	assert.Equal(t, 1, o.Items[1].Quantity)
	assert.Equal(t, 2, o.Items[2].Position)
}

func TestCreateOrderSnapshotsPrice(t *testing.T) {
	repo := newStubRepo()
	p1 := uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("5.00")
	svc := NewService(repo, false)

	o, err := svc.CreateOrder(context.Background(), uuid.NewString(), CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: p1, Quantity: qty(2)}},
	})
	require.NoError(t, err)

	repo.prices[p1] = decimal.RequireFromString("99.00")
	got, err := svc.Get(context.Background(), o.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "10.00", got.Total.StringFixed(2))
	assert.Equal(t, "5.00", got.Items[0].UnitPrice.StringFixed(2))
}

func TestCreateOrderUnknownProductPersistsNothing(t *testing.T) {
	repo := newStubRepo()
	p1 := uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("1.00")
	svc := NewService(repo, false)
	missing := uuid.NewString()

	_, err := svc.CreateOrder(context.Background(), uuid.NewString(), CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: p1}, {ProductID: missing}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), missing)
	assert.Zero(t, repo.creates)
	assert.Empty(t, repo.orders)
}

func TestCreateOrderValidation(t *testing.T) {
	repo := newStubRepo()
	svc := NewService(repo, false)
	ctx := context.Background()
	user := uuid.NewString()

	_, err := svc.CreateOrder(ctx, user, CreateOrderRequest{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateOrder(ctx, user, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: "abc"}}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateOrder(ctx, user, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: uuid.NewString(), Quantity: qty(0)}}})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.CreateOrder(ctx, "", CreateOrderRequest{Items: []CreateOrderItem{{ProductID: uuid.NewString()}}})
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestCreateOrderQuantityBounds(t *testing.T) {
	repo := newStubRepo()
	p1 := uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("999999.99")
	svc := NewService(repo, false)
	ctx := context.Background()
	user := uuid.NewString()

	for _, n := range []int{MaxQuantity + 1, MaxQuantity * 1000, -1} {
		_, err := svc.CreateOrder(ctx, user, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: p1, Quantity: qty(n)}}})
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), n)
	}
	assert.Empty(t, repo.orders)

	o, err := svc.CreateOrder(ctx, user, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: p1, Quantity: qty(MaxQuantity)}}})
	require.NoError(t, err)
	assert.Equal(t, "9999999900.00", o.Total.StringFixed(2))
}

func TestCreateOrderReservesStock(t *testing.T) {
	repo := newStubRepo()
	p1 := uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("2.50")
	repo.stock[p1] = 3
	svc := NewService(repo, true)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, uuid.NewString(), CreateOrderRequest{Items: []CreateOrderItem{{ProductID: p1, Quantity: qty(2)}}})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.stock[p1])

	_, err = svc.CreateOrder(ctx, uuid.NewString(), CreateOrderRequest{Items: []CreateOrderItem{{ProductID: p1, Quantity: qty(2)}}})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, 1, repo.stock[p1])
	assert.Len(t, repo.orders, 1)
}

func TestGetAndListAuthorization(t *testing.T) {
	repo := newStubRepo()
	p1 := uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("1.00")
	svc := NewService(repo, false)
	ctx := context.Background()

	owner := Caller{UserID: uuid.NewString(), Role: identity.RoleCustomer}
	other := Caller{UserID: uuid.NewString(), Role: identity.RoleCustomer}

	o, err := svc.CreateOrder(ctx, owner.UserID, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: p1}}})
	require.NoError(t, err)

	_, err = svc.Get(ctx, o.ID, owner)
	require.NoError(t, err)
	_, err = svc.Get(ctx, o.ID, admin)
	require.NoError(t, err)
	_, err = svc.Get(ctx, o.ID, other)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	_, err = svc.Get(ctx, uuid.NewString(), admin)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	list, err := svc.ListByUser(ctx, owner.UserID, owner)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	_, err = svc.ListByUser(ctx, owner.UserID, other)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
}

func TestUpdateStatusLifecycle(t *testing.T) {
	repo := newStubRepo()
	p1 := uuid.NewString()
	repo.prices[p1] = decimal.RequireFromString("1.00")
	svc := NewService(repo, false)
	ctx := context.Background()
	customer := Caller{UserID: uuid.NewString(), Role: identity.RoleCustomer}

	o, err := svc.CreateOrder(ctx, customer.UserID, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: p1}}})
	require.NoError(t, err)

	s := "SHIPPED"
	_, err = svc.UpdateStatus(ctx, o.ID, &s, customer)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, StatusPending, repo.orders[o.ID].Status)

	same, err := svc.UpdateStatus(ctx, o.ID, nil, customer)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, same.Status)

	bogus := "LOST"
	_, err = svc.UpdateStatus(ctx, o.ID, &bogus, admin)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	skip := "delivered"
	_, err = svc.UpdateStatus(ctx, o.ID, &skip, admin)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	alias := "enviado"
	got, err := svc.UpdateStatus(ctx, o.ID, &alias, admin)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, got.Status)

	_, err = svc.UpdateStatus(ctx, o.ID, &alias, admin)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	got, err = svc.UpdateStatus(ctx, o.ID, &skip, admin)
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)

	back := "PENDING"
	_, err = svc.UpdateStatus(ctx, o.ID, &back, admin)
	assert.Equal(t, apperr.KindInvalidTransition, apperr.KindOf(err))

	_, err = svc.UpdateStatus(ctx, uuid.NewString(), &s, customer)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCanTransition(t *testing.T) {
	t.Parallel()

	all := []Status{StatusPending, StatusShipped, StatusDelivered}
	legal := map[[2]Status]bool{
		{StatusPending, StatusShipped}:   true,
		{StatusShipped, StatusDelivered}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, legal[[2]Status{from, to}], CanTransition(from, to), "%s->%s", from, to)
		}
	}
}
