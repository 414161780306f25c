package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/dirk.krummacker/relationship-service/internal/config"
	"gitlab.com/dirk.krummacker/relationship-service/internal/migrate"
	"gitlab.com/dirk.krummacker/relationship-service/internal/store"
)

// Usage example on the command line:
// > DBHOST=localhost:3306 DBUSER=dirk DBPWD=bullo92 go run main.go up
func main() {
	root := &cobra.Command{
		Use:          "migration",
		Short:        "Manage the database schema of the relationship service",
		SilenceUsage: true,
	}
	root.AddCommand(
		command("up", "Apply all pending migrations", migrate.Up),
		command("down", "Roll back the most recent migration", migrate.Down),
		command("status", "Show the state of every migration", migrate.Status),
	)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func command(use, short string, run func(ctx context.Context, db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			db, err := store.Open(cfg.DSN())
			if err != nil {
				return err
			}
			defer db.Close()
			return run(cmd.Context(), db)
		},
	}
}
