package category

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/database"
)

var (
	ErrNotFound     = apperr.NotFound("category not found")
	ErrSlugConflict = apperr.Conflict("category slug already in use")
)

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"image_url,omitempty"`
	Slug      *string   `json:"slug,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest payload de creación de categoría.
// swagger:model CreateCategoryRequest
type CreateRequest struct {
	Name     string `json:"name"      binding:"required,notblank,max=100" example:"Teclados"`
	ImageURL string `json:"image_url" binding:"omitempty,max=200"`
	Slug     string `json:"slug"      binding:"omitempty,max=150"        example:"teclados"`
}

type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (*Category, error)
	Create(ctx context.Context, c *Category) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func scanCategory(row pgx.Row) (*Category, error) {
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.ImageURL, &c.Slug, &c.CreatedAt); err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(apperr.KindInternal, err, "scan category")
	}
	return &c, nil
}

func (r *PGRepo) List(ctx context.Context) ([]Category, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, name, image_url, slug, created_at FROM categories ORDER BY name, id`)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list categories")
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "list categories")
	}
	return out, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	return scanCategory(r.db.QueryRow(ctx,
		`SELECT id, name, image_url, slug, created_at FROM categories WHERE id=$1`, id))
}

func (r *PGRepo) Create(ctx context.Context, c *Category) error {
	ctx, cancel := context.WithTimeout(ctx, database.QueryTimeout)
	defer cancel()

	err := r.db.QueryRow(ctx, `
		INSERT INTO categories (id, name, image_url, slug, created_at)
		VALUES ($1,$2,$3,$4,NOW())
		RETURNING created_at
	`, c.ID, c.Name, c.ImageURL, c.Slug).Scan(&c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrSlugConflict
		}
		return apperr.Wrap(apperr.KindInternal, err, "insert category")
	}
	return nil
}

type Service struct{ repo Repository }

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context) ([]Category, error) { return s.repo.List(ctx) }

func (s *Service) Get(ctx context.Context, id string) (*Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Validation("invalid category id %q", id)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in CreateRequest) (*Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	c := &Category{
		ID:       uuid.NewString(),
		Name:     name,
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
	if slug := strings.TrimSpace(in.Slug); slug != "" {
		c.Slug = &slug
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
