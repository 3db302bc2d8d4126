package cli

import (
	"fmt"

	"turfbook/internal/db"
	"turfbook/internal/seed"

	"github.com/spf13/cobra"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	File  string
	Reset bool
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo users, turfs and slots",
		Long: `Load demo data into the database.

The built-in fixture creates admin@example.com / admin123, user@example.com /
user123, two turfs and one booking. --file loads a YAML fixture instead.

Example:
  turfbook seed --reset
  turfbook seed --file ./fixtures/league.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "YAML fixture to load instead of the built-in one")
	cmd.Flags().BoolVar(&opts.Reset, "reset", false, "delete all existing rows first")
	return cmd
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	return seed.LoadFile(path)
}

func runSeed(cmd *cobra.Command, opts *SeedOptions) error {
	fixture, err := loadFixture(opts.File)
	if err != nil {
		return err
	}

	cfg := opts.Config
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		return err
	}

	res, err := seed.NewSeeder(database).Run(cmd.Context(), fixture, opts.Reset)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d turfs, %d slots, %d bookings\n",
		res.Users, res.Turfs, res.Slots, res.Bookings)
	return nil
}
