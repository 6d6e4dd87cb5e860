// Command api serves the store's HTTP API.
//
// @title                       Tienda API
// @version                     1.0
// @description                 Users, categories, products and orders.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/MikeMC777/tienda-ecom/internal/category"
	"github.com/MikeMC777/tienda-ecom/internal/config"
	"github.com/MikeMC777/tienda-ecom/internal/database"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
	"github.com/MikeMC777/tienda-ecom/internal/order"
	"github.com/MikeMC777/tienda-ecom/internal/product"
	"github.com/MikeMC777/tienda-ecom/internal/storage"
	"github.com/MikeMC777/tienda-ecom/internal/user"
	"github.com/MikeMC777/tienda-ecom/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		applied, err := database.Migrate(ctx, pool, migrations.FS, database.Up)
		if err != nil {
			log.Fatalf("[migrate] %v", err)
		}
		log.Printf("[migrate] applied=%d", len(applied))
	}

	files, err := storage.NewDisk(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix, cfg.Uploads.MaxBytes)
	if err != nil {
		log.Fatalf("[storage] %v", err)
	}

	gate := identity.NewGate(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTTL)
	var verifier identity.Verifier = gate
	if cfg.GRPC.IdentityAddr != "" {
		client, conn, err := identity.Dial(cfg.GRPC.IdentityAddr)
		if err != nil {
			log.Fatalf("[identity] %v", err)
		}
		defer conn.Close()
		verifier = client
		log.Printf("[identity] verifying tokens via %s", cfg.GRPC.IdentityAddr)
	}
	router := newRouter(routerDeps{
		users:        user.NewService(user.NewPGRepo(pool), gate),
		categories:   category.NewService(category.NewPGRepo(pool)),
		catalog:      product.NewCatalog(product.NewPGRepo(pool), files),
		orders:       order.NewService(order.NewPGRepo(pool), cfg.Orders.ReserveStock),
		verifier:     verifier,
		corsOrigins:  cfg.HTTP.CORSOrigins,
		uploadDir:    cfg.Uploads.Dir,
		uploadPrefix: cfg.Uploads.PublicPrefix,
		maxUpload:    cfg.Uploads.MaxBytes,
		health:       pool.Ping,
	})

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("api listening on %s", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Printf("shutting down, draining requests (timeout %s)", cfg.HTTP.ShutdownTimeout)
		sctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		pool.Close()
		log.Fatalf("api stopped: %v", err)
	}
	log.Printf("api stopped")
}
