//go:build integration

package maint

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/database/dbtest"
)

func TestRepairerAgainstPostgres(t *testing.T) {
	pool := dbtest.NewPool(t)
	ctx := context.Background()

	db, err := Open(pool.Config().ConnString())
	require.NoError(t, err)

	broken, clean := uuid.NewString(), uuid.NewString()
	_, err = pool.Exec(ctx, `
		INSERT INTO products (id, name, slug, price, description, specifications)
		VALUES ($1, 'Teclado mec├ínico', 'teclado', 10, 'Ã©xito', 'not json'),
		       ($2, 'Mouse', 'mouse', 5, 'Inalámbrico', '{"dpi":1600}')
	`, broken, clean)
	require.NoError(t, err)
	cat := uuid.NewString()
	_, err = pool.Exec(ctx, `INSERT INTO categories (id, name) VALUES ($1, 'Perif├®ricos')`, cat)
	require.NoError(t, err)
	admin := uuid.NewString()
	_, err = pool.Exec(ctx, `INSERT INTO users (id, name, email, password_hash) VALUES ($1, 'Ana', 'ana@example.com', 'x')`, admin)
	require.NoError(t, err)

	// dry run reports without writing
	changes, err := New(db, true).RepairEncoding(ctx)
	require.NoError(t, err)
	assert.Len(t, changes, 3)
	var name string
	require.NoError(t, pool.QueryRow(ctx, `SELECT name FROM products WHERE id=$1`, broken).Scan(&name))
	assert.Equal(t, "Teclado mec├ínico", name)

	r := New(db, false)
	changes, err = r.RepairEncoding(ctx)
	require.NoError(t, err)
	assert.Len(t, changes, 3)
	require.NoError(t, pool.QueryRow(ctx, `SELECT name FROM products WHERE id=$1`, broken).Scan(&name))
	assert.Equal(t, "Teclado mecánico", name)
	require.NoError(t, pool.QueryRow(ctx, `SELECT name FROM categories WHERE id=$1`, cat).Scan(&name))
	assert.Equal(t, "Periféricos", name)

	changes, err = r.RepairEncoding(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)

	changes, err = r.RepairSpecs(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, broken, changes[0].ID)
	var specs string
	require.NoError(t, pool.QueryRow(ctx, `SELECT specifications FROM products WHERE id=$1`, broken).Scan(&specs))
	assert.Equal(t, "{}", specs)

	changes, err = r.PromoteAdmin(ctx, " ANA@example.com ")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	var role string
	require.NoError(t, pool.QueryRow(ctx, `SELECT role FROM users WHERE id=$1`, admin).Scan(&role))
	assert.Equal(t, "ADMIN", role)

	changes, err = r.PromoteAdmin(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Empty(t, changes)

	_, err = r.PromoteAdmin(ctx, "nadie@example.com")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
