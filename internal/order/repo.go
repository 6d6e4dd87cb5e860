package order

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/database"
)

var ErrNotFound = apperr.NotFound("order not found")

type Repository interface {
	ProductPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
	Create(ctx context.Context, o *Order, reserveStock bool) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// UpdateStatus sets status to `to` only while it still equals `from`.
	UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) ProductPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, price::text FROM products WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load product prices")
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal, len(ids))
	for rows.Next() {
		var id string
		var price decimal.Decimal
		if err := rows.Scan(&id, &price); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, err, "scan product price")
		}
		out[id] = price
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load product prices")
	}
	return out, nil
}

// Create writes the order and its items in one transaction. With
// reserveStock each line also takes its quantity from products.stock.
func (r *PGRepo) Create(ctx context.Context, o *Order, reserveStock bool) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "begin order")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (id, user_id, status, total, shipping_address, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		RETURNING created_at, updated_at
	`, o.ID, o.UserID, o.Status, o.Total.String(), o.ShippingAddress).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
		if database.IsForeignKeyViolation(err) {
			return apperr.NotFound("user %s not found", o.UserID)
		}
		return apperr.Wrap(apperr.KindInternal, err, "insert order")
	}

	for _, it := range o.Items {
		if reserveStock {
			tag, err := tx.Exec(ctx, `
				UPDATE products SET stock = stock - $2, updated_at = NOW()
				WHERE id = $1 AND stock >= $2
			`, it.ProductID, it.Quantity)
			if err != nil {
				return apperr.Wrap(apperr.KindInternal, err, "reserve stock")
			}
			if tag.RowsAffected() == 0 {
				var exists bool
				if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`, it.ProductID).Scan(&exists); err != nil {
					return apperr.Wrap(apperr.KindInternal, err, "reserve stock")
				}
				if !exists {
					return apperr.NotFound("product %s not found", it.ProductID)
				}
				return apperr.Conflict("insufficient stock for product %s", it.ProductID)
			}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, position, quantity, unit_price, subtotal)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, it.ID, o.ID, it.ProductID, it.Position, it.Quantity, it.UnitPrice.String(), it.Subtotal.String()); err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.NotFound("product %s not found", it.ProductID)
			}
			return apperr.Wrap(apperr.KindInternal, err, "insert order item")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "commit order")
	}
	return nil
}

const orderColumns = `id, user_id, status, total::text, shipping_address, created_at, updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Total, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.KindInternal, err, "scan order")
	}
	o.Items = []Item{}
	return &o, nil
}

// items loads the line items of the given orders, keyed by order id.
func (r *PGRepo) items(ctx context.Context, orderIDs []string) (map[string][]Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT i.id, i.order_id, i.product_id, COALESCE(p.name, ''), i.position, i.quantity,
		       i.unit_price::text, i.subtotal::text
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::uuid[])
		ORDER BY i.order_id, i.position
	`, orderIDs)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list order items")
	}
	defer rows.Close()

	out := make(map[string][]Item, len(orderIDs))
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Position, &it.Quantity,
			&it.UnitPrice, &it.Subtotal); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, err, "scan order item")
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list order items")
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	items, err := r.items(ctx, []string{o.ID})
	if err != nil {
		return nil, err
	}
	if its, ok := items[o.ID]; ok {
		o.Items = its
	}
	return o, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE user_id=$1
		ORDER BY created_at DESC, id
	`, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list orders")
	}
	defer rows.Close()

	out := []Order{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list orders")
	}
	if len(out) == 0 {
		return out, nil
	}

	items, err := r.items(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		if its, ok := items[out[i].ID]; ok {
			out[i].Items = its
		}
	}
	return out, nil
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE orders SET status=$3, updated_at=NOW()
		WHERE id=$1 AND status=$2
	`, id, from, to)
	if err != nil {
		return false, apperr.Wrap(apperr.KindInternal, err, "update order status")
	}
	return tag.RowsAffected() == 1, nil
}
