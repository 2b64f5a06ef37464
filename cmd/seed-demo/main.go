// seed-demo copies the built-in demo datasets (leads and properties) into
// the store for a given agent, so a fresh environment has something to show
// beyond the in-memory seed rows.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo -user <agent-uuid>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/imovelhub/agent_backend/config"
	"github.com/imovelhub/agent_backend/models"
	"github.com/imovelhub/agent_backend/utils"
)

func main() {
	userId := flag.String("user", "", "agent uuid to own the seeded rows")
	flag.Parse()
	if *userId == "" {
		fmt.Fprintln(os.Stderr, "usage: seed-demo -user <agent-uuid>")
		os.Exit(2)
	}

	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	ctx = utils.SetUserIdInContext(ctx, *userId)
	ctx = utils.SetUserNameInContext(ctx, "Seed")
	ctx = utils.SetSkipOwnerScopeInContext(ctx, true)

	seeded := 0
	for _, lead := range models.SeedLeads() {
		// The demo identifiers stay local; the store assigns real ones.
		lead.ID = ""
		lead.SetOwner(*userId)
		if err := db.WithContext(ctx).Create(&lead).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed lead %q: %v\n", lead.Name, err)
			os.Exit(1)
		}
		seeded++
	}
	for _, property := range models.SeedProperties() {
		property.ID = ""
		property.SetOwner(*userId)
		if err := db.WithContext(ctx).Create(&property).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed property %q: %v\n", property.Title, err)
			os.Exit(1)
		}
		seeded++
	}

	fmt.Printf("Seeded %d demo rows for agent %s\n", seeded, *userId)
}
