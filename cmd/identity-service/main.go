// Command identity-service exposes login and token verification over gRPC
// for services that do not talk to the HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/tienda-ecom/internal/config"
	"github.com/MikeMC777/tienda-ecom/internal/database"
	"github.com/MikeMC777/tienda-ecom/internal/identity"
	"github.com/MikeMC777/tienda-ecom/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}
	defer pool.Close()

	gate := identity.NewGate(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.AccessTTL)
	users := user.NewService(user.NewPGRepo(pool), gate)

	l, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		pool.Close()
		log.Fatalf("[grpc] listen: %v", err)
	}

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(identity.UnaryLogger()))
	identity.RegisterIdentityServer(srv, identity.NewService(users, gate))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("identity-service listening on %s", cfg.GRPC.Addr)
		if err := srv.Serve(l); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		hs.Shutdown()
		srv.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		pool.Close()
		log.Fatalf("identity-service stopped: %v", err)
	}
	log.Printf("identity-service stopped")
}
