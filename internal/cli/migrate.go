package cli

import (
	"turfbook/internal/db"
	"turfbook/internal/logger"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = opts.Config.MigrationsPath
			}
			database, err := db.Connect(opts.Config.DatabaseURL)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := db.RunMigrations(database, path); err != nil {
				return err
			}
			logger.Info("migrations applied", "path", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "migrations directory (default MIGRATIONS_PATH)")
	return cmd
}
