// Command seed resets the rental database to the sample data set.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alxtravel/internal/bootstrap"
	"alxtravel/internal/config"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		configDir     string
		randomSeed    int64
		noTransaction bool
		skipBcrypt    bool
		migrate       bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Reset the database to the sample rental data set",
		Long: `Deletes every review, booking, listing and non-admin user, then creates
5 hosts and a guest, the 5 catalog listings, 10 random bookings and 1-3
reviews per listing. All seeded accounts share the password "password123".`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var dirs []string
			if configDir != "" {
				dirs = append(dirs, configDir)
			}
			cfg, err := config.LoadConfig(dirs...)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("seed") {
				cfg.SeedRandomSeed = randomSeed
			}
			if flags.Changed("no-transaction") {
				cfg.SeedTransactional = !noTransaction
			}
			if flags.Changed("skip-bcrypt") {
				cfg.SeedSkipBcrypt = skipBcrypt
			}
			applySchema := cfg.DBAutoMigrate && !cfg.IsProduction()
			if flags.Changed("migrate") {
				applySchema = migrate
			}

			ctx := cmd.Context()
			rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{ApplySchema: applySchema})
			if err != nil {
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
				defer cancel()
				_ = rt.Close(closeCtx)
			}()

			_, err = rt.Seed(ctx, out)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configDir, "config", "", "directory holding config.yml and .env")
	flags.Int64Var(&randomSeed, "seed", 0, "random seed for reproducible runs (0 picks one)")
	flags.BoolVar(&noTransaction, "no-transaction", false, "commit each row as it is created")
	flags.BoolVar(&skipBcrypt, "skip-bcrypt", false, "store the placeholder password unhashed")
	flags.BoolVar(&migrate, "migrate", false, "create or update the schema before seeding")

	return cmd
}
