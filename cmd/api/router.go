package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/MikeMC777/tienda-ecom/docs"
	"github.com/MikeMC777/tienda-ecom/internal/httpx"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
)

type routerDeps struct {
	users      userService
	categories categoryService
	catalog    catalogService
	orders     orderService
	verifier   identity.Verifier

	corsOrigins  []string
	uploadDir    string
	uploadPrefix string
	maxUpload    int64
	health       func(ctx context.Context) error
}

func newRouter(d routerDeps) *gin.Engine {
	httpx.RegisterValidators()

	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(), httpx.Recover(), httpx.CORS(d.corsOrigins))
	if d.maxUpload > 0 {
		r.MaxMultipartMemory = d.maxUpload
	}

	r.GET("/healthz", func(c *gin.Context) {
		if d.health != nil {
			if err := d.health(c.Request.Context()); err != nil {
				c.String(http.StatusServiceUnavailable, "db unavailable")
				return
			}
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if d.uploadDir != "" && d.uploadPrefix != "" {
		r.Static(d.uploadPrefix, d.uploadDir)
	}

	authn := httpx.Auth(d.verifier)
	admin := httpx.RequireRole(identity.RoleAdmin)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/login", loginHandler(d.users))
	auth.POST("/register", registerHandler(d.users))
	auth.GET("/me", authn, meHandler(d.users))
	auth.GET("/", authn, admin, listUsersHandler(d.users))
	auth.PATCH("/", authn, updateProfileHandler(d.users))

	cats := api.Group("/categorias")
	cats.GET("/", listCategoriesHandler(d.categories))
	cats.GET("/:id", getCategoryHandler(d.categories))
	cats.POST("/", authn, admin, createCategoryHandler(d.categories))

	prods := api.Group("/productos")
	prods.GET("/por_categoria/:categoria_id", listByCategoryHandler(d.catalog))
	prods.GET("/:id", getProductHandler(d.catalog))
	prods.POST("/", authn, admin, createProductHandler(d.catalog))
	prods.PATCH("/:id", authn, admin, updateProductHandler(d.catalog))
	prods.DELETE("/:id", authn, admin, deleteProductHandler(d.catalog))
	prods.GET("/:id/resenas", listReviewsHandler(d.catalog))
	prods.POST("/:id/resenas", authn, addReviewHandler(d.catalog))

	orders := api.Group("/pedidos", authn)
	orders.POST("/", createOrderHandler(d.orders))
	orders.GET("/unico/:id", getOrderHandler(d.orders))
	orders.GET("/:usuario_id", listOrdersHandler(d.orders))
	orders.PATCH("/:id", updateOrderHandler(d.orders))

	return r
}
