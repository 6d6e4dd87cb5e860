// Command migrate applies or reverts the embedded schema migrations.
//
//	migrate [up|down]
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/tienda-ecom/internal/config"
	"github.com/MikeMC777/tienda-ecom/internal/database"
	"github.com/MikeMC777/tienda-ecom/migrations"
)

func main() {
	flag.Parse()
	dir := database.Up
	if flag.NArg() > 0 {
		dir = database.Direction(flag.Arg(0))
	}

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

	done, err := database.Migrate(ctx, pool, migrations.FS, dir)
	if err != nil {
		pool.Close()
		log.Fatalf("[migrate] %v", err)
	}
	for _, v := range done {
		log.Printf("[migrate] %s %s", dir, v)
	}
	log.Printf("[migrate] done, %d migration(s)", len(done))
}
