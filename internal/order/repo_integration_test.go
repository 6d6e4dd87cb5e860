//go:build integration

package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/database/dbtest"
)

type fixture struct {
	db     *pgxpool.Pool
	user   string
	p1, p2 string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := dbtest.NewPool(t)
	ctx := context.Background()
	f := fixture{db: db, user: uuid.NewString(), p1: uuid.NewString(), p2: uuid.NewString()}

	_, err := db.Exec(ctx, `INSERT INTO users (id, name, email, password_hash) VALUES ($1,'Ana','ana@example.com','x')`, f.user)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `INSERT INTO products (id, name, slug, price, stock) VALUES
		($1,'Teclado','teclado',9.99,5), ($2,'Mouse','mouse',4.50,1)`, f.p1, f.p2)
	require.NoError(t, err)
	return f
}

func countRows(t *testing.T, db *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

func TestPGRepoCreateAndRead(t *testing.T) {
	f := newFixture(t)
	svc := NewService(NewPGRepo(f.db), true)
	ctx := context.Background()
	two := 2

	o, err := svc.CreateOrder(ctx, f.user, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: f.p1, Quantity: &two}, {ProductID: f.p2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "24.48", o.Total.StringFixed(2))

	owner := Caller{UserID: f.user}
	got, err := svc.Get(ctx, o.ID, owner)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Teclado", got.Items[0].ProductName)
	assert.Equal(t, "19.98", got.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "24.48", got.Total.StringFixed(2))

	var stock int
	require.NoError(t, f.db.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1`, f.p1).Scan(&stock))
	assert.Equal(t, 3, stock)

	list, err := svc.ListByUser(ctx, f.user, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Items, 2)
}

func TestPGRepoCreateIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	svc := NewService(NewPGRepo(f.db), true)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, f.user, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: f.p1}, {ProductID: uuid.NewString()}},
	})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	five := 5
	_, err = svc.CreateOrder(ctx, f.user, CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: f.p1}, {ProductID: f.p2, Quantity: &five}},
	})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	assert.Zero(t, countRows(t, f.db, "orders"))
	assert.Zero(t, countRows(t, f.db, "order_items"))
	var stock int
	require.NoError(t, f.db.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1`, f.p1).Scan(&stock))
	assert.Equal(t, 5, stock)
}

func TestPGRepoStatusCompareAndSet(t *testing.T) {
	f := newFixture(t)
	repo := NewPGRepo(f.db)
	svc := NewService(repo, false)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, f.user, CreateOrderRequest{Items: []CreateOrderItem{{ProductID: f.p1}}})
	require.NoError(t, err)

	ok, err := repo.UpdateStatus(ctx, o.ID, StatusPending, StatusShipped)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.UpdateStatus(ctx, o.ID, StatusPending, StatusShipped)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, got.Status)
}
