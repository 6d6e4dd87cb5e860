package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/tienda-ecom/internal/apperr"
)

type stubRepo struct {
	items map[string]Category
}

func (s *stubRepo) List(context.Context) ([]Category, error) {
	out := []Category{}
	for _, c := range s.items {
		out = append(out, c)
	}
	return out, nil
}

func (s *stubRepo) GetByID(_ context.Context, id string) (*Category, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *stubRepo) Create(_ context.Context, c *Category) error {
	for _, x := range s.items {
		if x.Slug != nil && c.Slug != nil && *x.Slug == *c.Slug {
			return ErrSlugConflict
		}
	}
	s.items[c.ID] = *c
	return nil
}

func TestCreateAndGet(t *testing.T) {
	svc := NewService(&stubRepo{items: map[string]Category{}})
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateRequest{Name: " Teclados ", Slug: "teclados"})
	require.NoError(t, err)
	assert.Equal(t, "Teclados", c.Name)
	require.NotNil(t, c.Slug)

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = svc.Create(ctx, CreateRequest{Name: "Otros", Slug: "teclados"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestGetValidatesID(t *testing.T) {
	svc := NewService(&stubRepo{items: map[string]Category{}})

	_, err := svc.Get(context.Background(), "nope")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Get(context.Background(), "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCreateWithoutSlugStoresNull(t *testing.T) {
	repo := &stubRepo{items: map[string]Category{}}
	svc := NewService(repo)

	a, err := svc.Create(context.Background(), CreateRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(context.Background(), CreateRequest{Name: "B"})
	require.NoError(t, err)
	assert.Nil(t, a.Slug)
	assert.Nil(t, b.Slug)
	assert.Len(t, repo.items, 2)
}
