package cli

import (
	"context"
	"log"
	"time"

	"contesthub/internal/platform/config"
	"contesthub/internal/platform/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		config.Load()
		database.Connect()
		defer database.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := database.Migrate(ctx); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		log.Println("Migration applied.")
	},
}
