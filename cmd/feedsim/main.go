// Package main provides the feedsim CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nammasuttu/feedsim/internal/agent"
	"github.com/nammasuttu/feedsim/internal/api"
	"github.com/nammasuttu/feedsim/internal/config"
	"github.com/nammasuttu/feedsim/internal/display"
	"github.com/nammasuttu/feedsim/internal/event"
	"github.com/nammasuttu/feedsim/internal/forwarder"
	"github.com/nammasuttu/feedsim/internal/platform"
	"github.com/nammasuttu/feedsim/internal/reports"
	"github.com/nammasuttu/feedsim/internal/store"
)

// version is set via ldflags at release time.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion picks the effective version string: an ldflags-injected
// version wins; otherwise fall back to module build info so go install
// shows the installed tag.
func resolveVersion(ldflagsVersion string, info *debug.BuildInfo) string {
	if ldflagsVersion != "dev" {
		return ldflagsVersion
	}
	if info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// newRootCmd creates the root command for the feedsim CLI.
func newRootCmd() *cobra.Command {
	var configPath string

	info, _ := debug.ReadBuildInfo()
	rootCmd := &cobra.Command{
		Use:     "feedsim",
		Short:   "Simulated multi-platform social feeds for Bangalore civic events",
		Long:    "Feedsim serves deterministic mock feeds in the wire shapes of twitter, reddit, instagram, eventbrite, and nammasuttu, and relays pages to an extraction agent.",
		Version: resolveVersion(version, info),
	}

	rootCmd.SetVersionTemplate("feedsim version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")

	rootCmd.AddCommand(newServeCmd(&configPath))
	rootCmd.AddCommand(newAgentCmd(&configPath))
	rootCmd.AddCommand(newForwardCmd(&configPath))
	rootCmd.AddCommand(newPeekCmd())

	return rootCmd
}

// openReports connects to Postgres when a DSN is configured. A missing or
// unreachable database degrades the nammasuttu feed to empty instead of
// failing startup.
func openReports(cmd *cobra.Command, dsn string) *reports.Store {
	if dsn == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "no postgres DSN configured; nammasuttu feed will be empty")
		return nil
	}
	db, err := reports.Open(dsn)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "reports database unavailable: %v\n", err)
		return nil
	}
	return db
}

// newServeCmd creates the serve subcommand: the feed API server.
func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the feed API server",
		Long:  "Serve paginated platform feeds over HTTP, refreshing each platform's pool periodically.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			db := openReports(cmd, cfg.PostgresDSN)
			if db != nil {
				defer func() { _ = db.Close() }()
			}

			var st *store.Store
			if db != nil {
				st = store.New(db, store.WithPoolSize(cfg.PoolSize))
			} else {
				st = store.New(nil, store.WithPoolSize(cfg.PoolSize))
			}
			st.Start(cfg.RefreshInterval.Std())
			defer st.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "feed server listening on %s\n", cfg.FeedAddr)
			return api.NewServer(st).ListenAndServe(cfg.FeedAddr)
		},
	}
}

// newAgentCmd creates the agent subcommand: the extraction receiver.
func newAgentCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "agent",
		Short: "Run the extraction agent receiver",
		Long:  "Accept forwarded feed envelopes on /agent, extract facts, and persist them; /trigger and /stop control the rotation loop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			db := openReports(cmd, cfg.PostgresDSN)
			if db != nil {
				defer func() { _ = db.Close() }()
			}

			fwd := forwarder.New(cfg.FeedURL, cfg.AgentURL,
				forwarder.WithLimit(cfg.ForwardLimit),
				forwarder.WithDelay(cfg.ForwardDelay.Std()))

			var writer agent.Writer
			if db != nil {
				writer = db
			}
			receiver := agent.NewReceiver(agent.KeywordExtractor{}, writer, agent.WithForwarder(fwd))

			fmt.Fprintf(cmd.OutOrStdout(), "agent listening on %s\n", cfg.AgentAddr)
			return receiver.ListenAndServe(cfg.AgentAddr)
		},
	}
}

// newForwardCmd creates the forward subcommand: a foreground rotation loop.
func newForwardCmd(configPath *string) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Rotate through the platform feeds and relay pages to the agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			fwd := forwarder.New(cfg.FeedURL, cfg.AgentURL,
				forwarder.WithLimit(cfg.ForwardLimit),
				forwarder.WithDelay(cfg.ForwardDelay.Std()))

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if once {
				return fwd.RunOnce(ctx)
			}
			err = fwd.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Perform a single rotation and exit")

	return cmd
}

// newPeekCmd creates the peek subcommand: print a platform's mock pool
// without running a server.
func newPeekCmd() *cobra.Command {
	var count int
	var day int

	cmd := &cobra.Command{
		Use:   "peek <platform>",
		Short: "Print a platform's generated events to the terminal",
		Long:  "Generate the deterministic event pool a platform would serve today and print it. Useful for inspecting feeds without a server.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := platform.Platform(args[0])
			if !platform.Supported(p) {
				return fmt.Errorf("unsupported platform %q: must be one of %v", args[0], platform.All())
			}

			if day == 0 {
				day = event.Day(time.Now())
			}
			events := event.Generate(string(p), day, count)

			formatter := display.NewTerminalFormatter()
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPage(string(p), events))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 5, "Number of events to generate")
	cmd.Flags().IntVarP(&day, "day", "d", 0, "Day-of-month seed (defaults to today, UTC)")

	return cmd
}
