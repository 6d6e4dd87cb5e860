package main

import (
	"context"

	"github.com/MikeMC777/tienda-ecom/internal/category"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
	"github.com/MikeMC777/tienda-ecom/internal/order"
	"github.com/MikeMC777/tienda-ecom/internal/product"
	"github.com/MikeMC777/tienda-ecom/internal/user"
)

type userService interface {
	Register(ctx context.Context, in user.RegisterRequest) (*user.User, error)
	Authenticate(ctx context.Context, email, password string) (identity.Token, error)
	Get(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	UpdateProfile(ctx context.Context, id string, in user.UpdateProfileRequest) (*user.User, error)
}

type categoryService interface {
	List(ctx context.Context) ([]category.Category, error)
	Get(ctx context.Context, id string) (*category.Category, error)
	Create(ctx context.Context, in category.CreateRequest) (*category.Category, error)
}

type catalogService interface {
	ListByCategory(ctx context.Context, categoryID string, page, size int) (*product.Page, error)
	Detail(ctx context.Context, id string) (*product.Detail, error)
	Create(ctx context.Context, in product.CreateInput) (*product.Product, error)
	Update(ctx context.Context, id string, in product.UpdateProductRequest) (*product.Product, error)
	Delete(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID, userID string, in product.ReviewRequest) (*product.Review, error)
	Reviews(ctx context.Context, productID string) ([]product.Review, error)
}

type orderService interface {
	CreateOrder(ctx context.Context, userID string, in order.CreateOrderRequest) (*order.Order, error)
	Get(ctx context.Context, id string, caller order.Caller) (*order.Order, error)
	ListByUser(ctx context.Context, userID string, caller order.Caller) ([]order.Order, error)
	UpdateStatus(ctx context.Context, id string, status *string, caller order.Caller) (*order.Order, error)
}
