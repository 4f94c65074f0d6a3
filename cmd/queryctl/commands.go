package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"menufind/app"
	"menufind/config"
	"menufind/location"
	"menufind/logging"
	"menufind/models"
	"menufind/search"
	"menufind/variants"
)

type cliState struct {
	cfgFile  string
	logLevel string
	app      *app.App
}

func newRootCmd() *cobra.Command {
	st := &cliState{}

	root := &cobra.Command{
		Use:   "queryctl",
		Short: "Inspect how search prompts are understood",
		Long: `queryctl runs the search query pipeline locally.

It prints the taxonomy filters, free-text variants and location context that
the API would derive from a prompt. Configuration comes from --config and the
same environment variables the server reads.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(st.cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			level := cfg.Log.Level
			if st.logLevel != "" {
				level = st.logLevel
			}
			logger := logging.New(logging.Options{
				Level:   level,
				Format:  "console",
				Output:  cmd.ErrOrStderr(),
				Service: "queryctl",
			})

			st.app, err = app.New(cmd.Context(), cfg, logger)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if st.app == nil {
				return nil
			}
			return st.app.Close()
		},
	}

	root.PersistentFlags().StringVarP(&st.cfgFile, "config", "c", "", "config file path (default: env vars only)")
	root.PersistentFlags().StringVar(&st.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newAnalyzeCmd(st))
	root.AddCommand(newVariantsCmd(st))
	root.AddCommand(newLocationCmd(st))
	return root
}

type coordFlags struct {
	lat, lon float64
}

func (c *coordFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&c.lat, "lat", 0, "device latitude")
	cmd.Flags().Float64Var(&c.lon, "lon", 0, "device longitude")
}

func (c *coordFlags) location(cmd *cobra.Command) (*models.LatLng, error) {
	latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
	if !latSet && !lonSet {
		return nil, nil
	}
	if latSet != lonSet {
		return nil, fmt.Errorf("--lat and --lon must be given together")
	}
	return &models.LatLng{Lat: c.lat, Lng: c.lon}, nil
}

func newAnalyzeCmd(st *cliState) *cobra.Command {
	var (
		coords      coordFlags
		maxVariants int
	)

	cmd := &cobra.Command{
		Use:   "analyze <prompt>",
		Short: "Extract filters, free-text terms and location from a prompt",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := coords.location(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			an := st.app.Analyzer.Analyze(ctx, search.Request{
				Prompt:       strings.Join(args, " "),
				UserLocation: loc,
				MaxVariants:  maxVariants,
			})
			return printJSON(cmd.OutOrStdout(), an)
		},
	}
	coords.register(cmd)
	cmd.Flags().IntVar(&maxVariants, "max", 0, "variants per term (3-30, default from config)")
	return cmd
}

func newVariantsCmd(st *cliState) *cobra.Command {
	var maxVariants int

	cmd := &cobra.Command{
		Use:   "variants <term>",
		Short: "Expand a term into ranked spelling and morphology variants",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := st.app.Variants.Generate(strings.Join(args, " "), maxVariants)
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().IntVar(&maxVariants, "max", 0, fmt.Sprintf("number of variants (%d-%d)", variants.MinVariants, variants.MaxVariants))
	return cmd
}

func newLocationCmd(st *cliState) *cobra.Command {
	var coords coordFlags

	cmd := &cobra.Command{
		Use:   "location <query>",
		Short: "Resolve the location context and search area of a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := coords.location(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			query := strings.Join(args, " ")
			lc := st.app.Resolver.AnalyzeContext(ctx, query, loc)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"context": lc,
				"area":    location.AreaFor(lc, query),
			})
		},
	}
	coords.register(cmd)
	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
