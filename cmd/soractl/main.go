package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dustin-aeria/muster-sub008/internal/config"
	"github.com/dustin-aeria/muster-sub008/internal/logging"
)

// errInvalid signals a failed check whose report is already printed.
var errInvalid = errors.New("assessment is invalid")

// app holds what PersistentPreRunE resolves for every subcommand.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logging.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "soractl",
		Short:         "SORA ground and air risk classification for drone operations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log.Mode)
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (YAML)")

	rootCmd.AddCommand(a.assessCmd())
	rootCmd.AddCommand(a.validateCmd())
	rootCmd.AddCommand(a.osoCmd())
	rootCmd.AddCommand(a.containmentCmd())
	rootCmd.AddCommand(a.tablesCmd())
	rootCmd.AddCommand(a.serveCmd())
	return rootCmd
}

func (a *app) assessCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "assess [project-path]",
		Short: "Evaluate every site and the project-level SAIL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAssess(cmd.OutOrStdout(), args[0], asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Check a project for schema and reference-table errors without evaluating it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

func (a *app) osoCmd() *cobra.Command {
	var siteID string
	cmd := &cobra.Command{
		Use:   "oso [project-path]",
		Short: "Show OSO compliance for one site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runOSO(cmd.OutOrStdout(), args[0], siteID)
		},
	}
	cmd.Flags().StringVar(&siteID, "site", "", "site id")
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

func (a *app) containmentCmd() *cobra.Command {
	var siteID string
	cmd := &cobra.Command{
		Use:   "containment [project-path]",
		Short: "Show the containment verdict for one site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runContainment(cmd.OutOrStdout(), args[0], siteID)
		},
	}
	cmd.Flags().StringVar(&siteID, "site", "", "site id")
	_ = cmd.MarkFlagRequired("site")
	return cmd
}

func (a *app) tablesCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the SORA reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTables(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of YAML")
	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the assessment API, optionally seeding the store with a project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			seed := ""
			if len(args) == 1 {
				seed = args[0]
			}
			return a.runServe(cmd.Context(), seed)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP server port (overrides config)")
	return cmd
}
