// Package maint holds offline data repairs run against the store database
// by cmd/catalog-maint. It goes through gorm rather than the pgx
// repositories because the jobs scan whole tables and patch rows generically.
package maint

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
	"github.com/MikeMC777/tienda-ecom/internal/product"
)

type productRow struct {
	ID               string `gorm:"primaryKey"`
	Name             string
	ShortDescription string
	Description      string
	Specifications   string
}

func (productRow) TableName() string { return "products" }

type categoryRow struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func (categoryRow) TableName() string { return "categories" }

type userRow struct {
	ID    string `gorm:"primaryKey"`
	Email string
	Role  string
}

func (userRow) TableName() string { return "users" }

// Change is one field a job rewrote, or would rewrite in dry-run mode.
type Change struct {
	Table string
	ID    string
	Field string
	From  string
	To    string
}

type Repairer struct {
	db     *gorm.DB
	DryRun bool
}

// Open connects gorm to dsn with its logger writing through the standard log.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "[gorm] ", log.LstdFlags), logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
}

func New(db *gorm.DB, dryRun bool) *Repairer {
	return &Repairer{db: db, DryRun: dryRun}
}

// RepairEncoding fixes mojibake in product and category text.
func (r *Repairer) RepairEncoding(ctx context.Context) ([]Change, error) {
	var changes []Change
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []productRow
		if err := tx.Select("id", "name", "short_description", "description").Find(&products).Error; err != nil {
			return err
		}
		for _, p := range products {
			fields := [][2]string{
				{"name", p.Name},
				{"short_description", p.ShortDescription},
				{"description", p.Description},
			}
			updates := map[string]any{}
			for _, f := range fields {
				if fixed := RepairText(f[1]); fixed != f[1] {
					updates[f[0]] = fixed
					changes = append(changes, Change{Table: "products", ID: p.ID, Field: f[0], From: f[1], To: fixed})
				}
			}
			if len(updates) > 0 {
				updates["updated_at"] = gorm.Expr("NOW()")
			}
			if err := r.apply(tx, &productRow{ID: p.ID}, updates); err != nil {
				return err
			}
		}

		var cats []categoryRow
		if err := tx.Select("id", "name").Find(&cats).Error; err != nil {
			return err
		}
		for _, c := range cats {
			if fixed := RepairText(c.Name); fixed != c.Name {
				changes = append(changes, Change{Table: "categories", ID: c.ID, Field: "name", From: c.Name, To: fixed})
				if err := r.apply(tx, &categoryRow{ID: c.ID}, map[string]any{"name": fixed}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "repair encoding")
	}
	return changes, nil
}

// RepairSpecs resets specifications that are not a JSON object to {}.
func (r *Repairer) RepairSpecs(ctx context.Context) ([]Change, error) {
	var changes []Change
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products []productRow
		if err := tx.Select("id", "specifications").Find(&products).Error; err != nil {
			return err
		}
		for _, p := range products {
			if product.IsSpecsObject([]byte(p.Specifications)) {
				continue
			}
			changes = append(changes, Change{Table: "products", ID: p.ID, Field: "specifications", From: p.Specifications, To: "{}"})
			if err := r.apply(tx, &productRow{ID: p.ID}, map[string]any{"specifications": "{}", "updated_at": gorm.Expr("NOW()")}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "repair specifications")
	}
	return changes, nil
}

// PromoteAdmin gives the user with email the ADMIN role. No change is
// reported when the user already is an administrator.
func (r *Repairer) PromoteAdmin(ctx context.Context, email string) ([]Change, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.Validation("email is required")
	}
	var u userRow
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user %s not found", email)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "load user")
	}
	if identity.Role(u.Role).IsAdmin() {
		return nil, nil
	}
	to := string(identity.RoleAdmin)
	if err := r.apply(r.db.WithContext(ctx), &userRow{ID: u.ID}, map[string]any{"role": to, "updated_at": gorm.Expr("NOW()")}); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "promote user")
	}
	return []Change{{Table: "users", ID: u.ID, Field: "role", From: u.Role, To: to}}, nil
}

func (r *Repairer) apply(tx *gorm.DB, model any, updates map[string]any) error {
	if len(updates) == 0 || r.DryRun {
		return nil
	}
	return tx.Model(model).Updates(updates).Error
}
