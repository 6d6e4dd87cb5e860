// Package product implements the catalog: ranked listings, product detail,
// product mutation and reviews.
package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/database"
)

var (
	ErrNotFound         = apperr.NotFound("product not found")
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrSlugConflict     = apperr.Conflict("product slug already in use")
	ErrReferenced       = apperr.Conflict("product is referenced by existing orders")
)

// rankOrder sorts by 0.7*views + 0.3*average_rating; created_at and id make
// the order total so pages never overlap.
const rankOrder = `(p.views * 0.7 + p.average_rating * 0.3) DESC, p.created_at DESC, p.id`

const productColumns = `p.id, p.name, p.slug, p.price::text, p.stock, p.weight_kg::text,
	p.short_description, p.description, p.main_image_url, p.specifications,
	p.category_id, p.views, p.average_rating::text, p.review_count, p.created_at, p.updated_at`

type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]Product, int, error)
	Related(ctx context.Context, p *Product, limit int) ([]Product, error)
	Update(ctx context.Context, id string, patch Patch) (*Product, error)
	Delete(ctx context.Context, id string) ([]string, error)
	IncrementViews(ctx context.Context, id string) error
	AddReview(ctx context.Context, r *Review) error
	ListReviews(ctx context.Context, productID string) ([]Review, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var specs string
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Price, &p.Stock, &p.WeightKg,
		&p.ShortDescription, &p.Description, &p.MainImageURL, &specs,
		&p.CategoryID, &p.Views, &p.AverageRating, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.KindInternal, err, "scan product")
	}
	p.Specifications = NormalizeSpecs([]byte(specs))
	p.Images = []string{}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()
	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "read products")
	}
	return out, nil
}

// writeErr maps constraint violations of product writes to domain errors.
func writeErr(err error, what string) error {
	switch {
	case database.IsNoRows(err):
		return ErrNotFound
	case database.IsUniqueViolation(err):
		return ErrSlugConflict
	case database.IsForeignKeyViolation(err):
		return ErrCategoryNotFound
	case database.IsCheckViolation(err):
		return apperr.Validation("price, stock and weight must not be negative")
	default:
		return apperr.Wrap(apperr.KindInternal, err, what)
	}
}

func decimalArg(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func (r *PGRepo) Create(ctx context.Context, p *Product) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	return database.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO products (id, name, slug, price, stock, weight_kg, short_description, description,
			                      main_image_url, specifications, category_id, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW(),NOW())
			RETURNING created_at, updated_at
		`, p.ID, p.Name, p.Slug, p.Price.String(), p.Stock, p.WeightKg.String(), p.ShortDescription,
			p.Description, p.MainImageURL, string(p.Specifications), p.CategoryID).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return writeErr(err, "insert product")
		}
		for i, url := range p.Images {
			if _, err := tx.Exec(ctx, `
				INSERT INTO product_images (id, product_id, url, position) VALUES ($1,$2,$3,$4)
			`, uuid.NewString(), p.ID, url, i); err != nil {
				return apperr.Wrap(apperr.KindInternal, err, "insert product image")
			}
		}
		return nil
	})
}

func (r *PGRepo) images(ctx context.Context, productID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT url FROM product_images WHERE product_id=$1 ORDER BY position`, productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list product images")
	}
	urls, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list product images")
	}
	return urls, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id=$1`, id))
	if err != nil {
		return nil, err
	}
	if p.Images, err = r.images(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PGRepo) ListByCategory(ctx context.Context, categoryID string, limit, offset int) ([]Product, int, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id=$1`, categoryID).Scan(&total); err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, err, "count products")
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.category_id = $1
		ORDER BY `+rankOrder+`
		LIMIT $2 OFFSET $3
	`, categoryID, limit, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.KindInternal, err, "list products")
	}
	items, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *PGRepo) Related(ctx context.Context, p *Product, limit int) ([]Product, error) {
	if p.CategoryID == nil {
		return []Product{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products p
		WHERE p.category_id = $1 AND p.id <> $2
		ORDER BY p.views DESC, p.average_rating DESC, p.id
		LIMIT $3
	`, *p.CategoryID, p.ID, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list related products")
	}
	return collectProducts(rows)
}

func (r *PGRepo) Update(ctx context.Context, id string, patch Patch) (*Product, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRow(ctx, `
		UPDATE products p
		SET name              = COALESCE($2, p.name),
		    slug              = COALESCE($3, p.slug),
		    price             = COALESCE($4::numeric, p.price),
		    stock             = COALESCE($5, p.stock),
		    weight_kg         = COALESCE($6::numeric, p.weight_kg),
		    short_description = COALESCE($7, p.short_description),
		    description       = COALESCE($8, p.description),
		    category_id       = CASE WHEN $10 THEN NULL ELSE COALESCE($9::uuid, p.category_id) END,
		    updated_at        = NOW()
		WHERE p.id = $1
		RETURNING `+productColumns,
		id, patch.Name, patch.Slug, decimalArg(patch.Price), patch.Stock, decimalArg(patch.WeightKg),
		patch.ShortDescription, patch.Description, patch.CategoryID, patch.ClearCategory))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
		return nil, writeErr(err, "update product")
	}
	if p.Images, err = r.images(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the product and returns the image URLs it owned.
func (r *PGRepo) Delete(ctx context.Context, id string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	var urls []string
	err := database.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT url FROM product_images WHERE product_id=$1 ORDER BY position`, id)
		if err != nil {
			return apperr.Wrap(apperr.KindInternal, err, "list product images")
		}
		if urls, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
			return apperr.Wrap(apperr.KindInternal, err, "list product images")
		}

		var main string
		if err := tx.QueryRow(ctx, `DELETE FROM products WHERE id=$1 RETURNING main_image_url`, id).Scan(&main); err != nil {
			if database.IsNoRows(err) {
				return ErrNotFound
			}
			if database.IsForeignKeyViolation(err) {
				return ErrReferenced
			}
			return apperr.Wrap(apperr.KindInternal, err, "delete product")
		}
		if main != "" {
			urls = append(urls, main)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return urls, nil
}

func (r *PGRepo) IncrementViews(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `UPDATE products SET views = views + 1 WHERE id=$1`, id)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, err, "increment views")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddReview stores the review and recomputes the product's rating aggregate
// in the same transaction.
func (r *PGRepo) AddReview(ctx context.Context, rv *Review) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	return database.WithTx(ctx, r.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var one int
		if err := tx.QueryRow(ctx, `SELECT 1 FROM products WHERE id=$1 FOR UPDATE`, rv.ProductID).Scan(&one); err != nil {
			if database.IsNoRows(err) {
				return ErrNotFound
			}
			return apperr.Wrap(apperr.KindInternal, err, "lock product")
		}
		if err := tx.QueryRow(ctx, `
			INSERT INTO reviews (id, product_id, user_id, score, comment, created_at)
			VALUES ($1,$2,$3,$4,$5,NOW())
			RETURNING created_at
		`, rv.ID, rv.ProductID, rv.UserID, rv.Score, rv.Comment).Scan(&rv.CreatedAt); err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperr.NotFound("user not found")
			}
			return apperr.Wrap(apperr.KindInternal, err, "insert review")
		}
		if _, err := tx.Exec(ctx, `
			UPDATE products
			SET average_rating = (SELECT ROUND(AVG(score)::numeric, 2) FROM reviews WHERE product_id=$1),
			    review_count   = (SELECT COUNT(*) FROM reviews WHERE product_id=$1)
			WHERE id=$1
		`, rv.ProductID); err != nil {
			return apperr.Wrap(apperr.KindInternal, err, "update rating")
		}
		return nil
	})
}

func (r *PGRepo) ListReviews(ctx context.Context, productID string) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, user_id, score, comment, created_at
		FROM reviews WHERE product_id=$1
		ORDER BY created_at DESC, id
	`, productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list reviews")
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.Score, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, err, "scan review")
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list reviews")
	}
	return out, nil
}
