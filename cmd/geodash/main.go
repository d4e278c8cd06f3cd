// Command geodash serves the India state/district population dashboard.
//
// Usage:
//
//	geodash serve --boundaries newindia.json --population state_wise_population.csv
//	geodash check --boundaries newindia.json --population state_wise_population.csv
//
// File paths default to $GEODASH_BOUNDARIES and $GEODASH_POPULATION.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andreiashu/geodash"
	"github.com/andreiashu/geodash/dashboard"
)

type dataFlags struct {
	boundaries string
	population string
	stateProp  string
	distProp   string
}

func (f *dataFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.boundaries, "boundaries", envOr("GEODASH_BOUNDARIES", "newindia.json"), "GeoJSON district boundary file")
	cmd.Flags().StringVar(&f.population, "population", envOr("GEODASH_POPULATION", "state_wise_population.csv"), "CSV state population file")
	cmd.Flags().StringVar(&f.stateProp, "state-property", "st_nm", "feature property holding the state name")
	cmd.Flags().StringVar(&f.distProp, "district-property", "district", "feature property holding the district name")
}

func (f *dataFlags) load() (*geodash.Dashboard, error) {
	return geodash.NewDashboard(
		geodash.WithBoundaryFile(f.boundaries),
		geodash.WithPopulationFile(f.population),
		geodash.WithStateProperty(f.stateProp),
		geodash.WithDistrictProperty(f.distProp),
	)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "geodash",
		Short: "India state and district population dashboard",
		Long:  `Joins district boundaries with state population counts and serves choropleth maps for a selected state and district.`,
	}
	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createCheckCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func createServeCmd() *cobra.Command {
	var data dataFlags
	cfg := dashboard.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := data.load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			return dashboard.NewServer(d, cfg, logger).ListenAndServe(ctx)
		},
	}
	data.register(cmd)
	cmd.Flags().StringVar(&cfg.Addr, "listen", cfg.Addr, "HTTP listen address")
	return cmd
}

func createCheckCmd() *cobra.Command {
	var data dataFlags
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the data files and report join and selection problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := data.load()
			if err != nil {
				return err
			}
			r := d.Report()
			fmt.Fprint(cmd.OutOrStdout(), r.String())
			if strict && !r.OK() {
				return fmt.Errorf("data check failed")
			}
			return nil
		},
	}
	data.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when a state has no population or a district is duplicated")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
