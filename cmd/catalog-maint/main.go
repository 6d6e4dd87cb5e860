// Command catalog-maint runs offline repairs on the store data.
//
//	catalog-maint repair-encoding [-dry-run]
//	catalog-maint repair-specs [-dry-run]
//	catalog-maint promote-admin -email ana@example.com [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MikeMC777/tienda-ecom/internal/config"
	"github.com/MikeMC777/tienda-ecom/internal/maint"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: catalog-maint <repair-encoding|repair-specs|promote-admin> [-dry-run] [-email addr]")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	cmd := os.Args[1]
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	dryRun := fs.Bool("dry-run", false, "report changes without writing them")
	email := fs.String("email", "", "user to promote (promote-admin)")
	_ = fs.Parse(os.Args[2:])

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[config] %v", err)
	}
	db, err := maint.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatalf("[db] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := maint.New(db, *dryRun)
	var changes []maint.Change
	switch cmd {
	case "repair-encoding":
		changes, err = r.RepairEncoding(ctx)
	case "repair-specs":
		changes, err = r.RepairSpecs(ctx)
	case "promote-admin":
		changes, err = r.PromoteAdmin(ctx, *email)
	default:
		usage()
	}
	if err != nil {
		log.Fatalf("[maint] %s: %v", cmd, err)
	}

	for _, c := range changes {
		log.Printf("[maint] %s id=%s %s: %q -> %q", c.Table, c.ID, c.Field, c.From, c.To)
	}
	verb := "changed"
	if *dryRun {
		verb = "would change"
	}
	log.Printf("[maint] %s: %s %d field(s)", cmd, verb, len(changes))
}
