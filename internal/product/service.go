package product

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
	"github.com/MikeMC777/tienda-ecom/internal/storage"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	relatedLimit    = 3
)

// ParsePaging reads page and page size query values. Empty values take the
// defaults and an oversized page size is capped.
func ParsePaging(pageRaw, sizeRaw string) (page, size int, err error) {
	page, size = 1, DefaultPageSize
	if s := strings.TrimSpace(pageRaw); s != "" {
		if page, err = strconv.Atoi(s); err != nil || page < 1 {
			return 0, 0, apperr.Validation("page must be a positive integer")
		}
	}
	if s := strings.TrimSpace(sizeRaw); s != "" {
		if size, err = strconv.Atoi(s); err != nil || size < 1 {
			return 0, 0, apperr.Validation("page_size must be a positive integer")
		}
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size, nil
}

// Catalog is the product service.
type Catalog struct {
	repo  Repository
	files storage.Store
}

func NewCatalog(repo Repository, files storage.Store) *Catalog {
	return &Catalog{repo: repo, files: files}
}

func checkID(id, what string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperr.Validation("invalid %s id %q", what, id)
	}
	return nil
}

func (s *Catalog) ListByCategory(ctx context.Context, categoryID string, page, size int) (*Page, error) {
	if err := checkID(categoryID, "category"); err != nil {
		return nil, err
	}
	if page < 1 || size < 1 {
		return nil, apperr.Validation("page and page_size must be positive")
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	items, total, err := s.repo.ListByCategory(ctx, categoryID, size, (page-1)*size)
	if err != nil {
		return nil, err
	}
	return &Page{Items: items, Total: total, Page: page, PageSize: size}, nil
}

// Detail returns the product with its related products and counts the view.
func (s *Catalog) Detail(ctx context.Context, id string) (*Detail, error) {
	if err := checkID(id, "product"); err != nil {
		return nil, err
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		log.Printf("[product] increment views id=%s: %v", id, err)
	} else {
		p.Views++
	}
	related, err := s.repo.Related(ctx, p, relatedLimit)
	if err != nil {
		return nil, err
	}
	return &Detail{Product: *p, Related: related}, nil
}

func nonNegative(d decimal.Decimal, field string) error {
	if d.IsNegative() {
		return apperr.Validation("%s must not be negative", field)
	}
	return nil
}

// Create validates every field and file first, then stores the images and
// the product. Images already written are removed if the insert fails.
func (s *Catalog) Create(ctx context.Context, in CreateInput) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}
	if err := nonNegative(in.Price, "price"); err != nil {
		return nil, err
	}
	if in.Stock < 0 {
		return nil, apperr.Validation("stock must not be negative")
	}
	weight := decimal.RequireFromString("0.4")
	if in.WeightKg != nil {
		if err := nonNegative(*in.WeightKg, "weight"); err != nil {
			return nil, err
		}
		weight = *in.WeightKg
	}
	var categoryID *string
	if c := strings.TrimSpace(in.CategoryID); c != "" {
		if err := checkID(c, "category"); err != nil {
			return nil, err
		}
		categoryID = &c
	}
	uploads := make([]Upload, 0, len(in.Images)+1)
	if in.MainImage != nil {
		uploads = append(uploads, *in.MainImage)
	}
	uploads = append(uploads, in.Images...)
	for _, u := range uploads {
		if err := storage.CheckImageName(u.Filename); err != nil {
			return nil, err
		}
	}

	id := uuid.NewString()
	slug := Slugify(in.Slug)
	if strings.TrimSpace(in.Slug) == "" {
		slug = generatedSlug(name, id)
	}
	p := &Product{
		ID:               id,
		Name:             name,
		Slug:             slug,
		Price:            in.Price.Round(2),
		Stock:            in.Stock,
		WeightKg:         weight,
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		Description:      in.Description,
		Specifications:   NormalizeSpecs(in.Specifications),
		CategoryID:       categoryID,
		Images:           []string{},
	}

	saved := []string{}
	cleanup := func() {
		for _, path := range saved {
			_ = s.files.Remove(ctx, path)
		}
	}
	for i, u := range uploads {
		url, err := s.saveUpload(ctx, p, i, u)
		if err != nil {
			cleanup()
			return nil, err
		}
		saved = append(saved, url)
		if i == 0 && in.MainImage != nil {
			p.MainImageURL = url
		} else {
			p.Images = append(p.Images, url)
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		cleanup()
		return nil, err
	}
	log.Printf("[product] created id=%s slug=%s images=%d", p.ID, p.Slug, len(saved))
	return p, nil
}

func (s *Catalog) saveUpload(ctx context.Context, p *Product, index int, u Upload) (string, error) {
	rc, err := u.Open()
	if err != nil {
		return "", apperr.Wrap(apperr.KindInternal, err, "open upload")
	}
	defer rc.Close()
	ext := strings.ToLower(filepath.Ext(u.Filename))
	return s.files.Save(ctx, fmt.Sprintf("%s_%s_%d%s", p.ID, p.Slug, index, ext), rc)
}

func (s *Catalog) Update(ctx context.Context, id string, in UpdateProductRequest) (*Product, error) {
	if err := checkID(id, "product"); err != nil {
		return nil, err
	}
	patch := Patch{
		Stock:            in.Stock,
		ShortDescription: in.ShortDescription,
		Description:      in.Description,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation("name cannot be blank")
		}
		patch.Name = &name
	}
	if in.Slug != nil {
		if strings.TrimSpace(*in.Slug) == "" {
			return nil, apperr.Validation("slug cannot be blank")
		}
		slug := Slugify(*in.Slug)
		patch.Slug = &slug
	}
	if in.Price != nil {
		if err := nonNegative(*in.Price, "price"); err != nil {
			return nil, err
		}
		price := in.Price.Round(2)
		patch.Price = &price
	}
	if in.WeightKg != nil {
		if err := nonNegative(*in.WeightKg, "weight"); err != nil {
			return nil, err
		}
		patch.WeightKg = in.WeightKg
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, apperr.Validation("stock must not be negative")
	}
	if in.CategoryID.Set {
		if in.CategoryID.Value == nil {
			patch.ClearCategory = true
		} else {
			c := strings.TrimSpace(*in.CategoryID.Value)
			if err := checkID(c, "category"); err != nil {
				return nil, err
			}
			patch.CategoryID = &c
		}
	}
	if patch.Empty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Catalog) Delete(ctx context.Context, id string) error {
	if err := checkID(id, "product"); err != nil {
		return err
	}
	urls, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	for _, u := range urls {
		if err := s.files.Remove(ctx, u); err != nil {
			log.Printf("[product] remove image %s: %v", u, err)
		}
	}
	log.Printf("[product] deleted id=%s", id)
	return nil
}

func (s *Catalog) AddReview(ctx context.Context, productID, userID string, in ReviewRequest) (*Review, error) {
	if err := checkID(productID, "product"); err != nil {
		return nil, err
	}
	if in.Score < 1 || in.Score > 5 {
		return nil, apperr.Validation("score must be between 1 and 5")
	}
	rv := &Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Score:     in.Score,
		Comment:   strings.TrimSpace(in.Comment),
	}
	if err := s.repo.AddReview(ctx, rv); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *Catalog) Reviews(ctx context.Context, productID string) ([]Review, error) {
	if err := checkID(productID, "product"); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, productID)
}
