package calai

import (
	"fmt"

	"github.com/MEME-CORP/calaiweb/internal/app"
	"github.com/MEME-CORP/calaiweb/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local calai database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}

		sqldb, err := db.Open(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		if err := db.ApplyMigrations(sqldb); err != nil {
			return err
		}
		logger.Printf("schema at version %d", db.LatestVersion())

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized calai database at %s\n", path)
		fmt.Fprintln(cmd.OutOrStdout(), "Next: run `calai onboarding status` to set up your profile")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func resolveDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return app.DefaultDBPath()
}
