package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/studiowebux/restcommander/internal/cli"
	"github.com/studiowebux/restcommander/internal/config"
	"github.com/studiowebux/restcommander/internal/executor"
	"github.com/studiowebux/restcommander/internal/keybinds"
	"github.com/studiowebux/restcommander/internal/logging"
	"github.com/studiowebux/restcommander/internal/session"
	"github.com/studiowebux/restcommander/internal/store"
	"github.com/studiowebux/restcommander/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cli.ErrRequestFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "restcommander",
	Short: "RestCommander - saved HTTP request runner",
	Long: `RestCommander keeps a list of HTTP requests in a local SQLite database
and sends them from an interactive TUI or the command line.

Examples:
  restcommander                                  # Start interactive TUI
  restcommander list                             # List saved requests
  restcommander add -t users -m GET -u URL       # Save a request
  restcommander send users                       # Send by id or title
  restcommander send create -b '{"name":"ada"}'  # Override the body`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved requests",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *session.Controller) error {
			return cli.List(ctrl, cli.ListOptions{OutputFormat: flagOutput}, cmd.OutOrStdout())
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a new request",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withController(cmd, func(ctx context.Context, ctrl *session.Controller) error {
			req, err := cli.Add(ctx, ctrl, cli.AddOptions{
				Title:  flagTitle,
				Method: flagMethod,
				URL:    flagURL,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), req.ID)
			return nil
		})
	},
}

var sendCmd = &cobra.Command{
	Use:   "send [id or title]",
	Short: "Send a saved request and print the response",
	Long: `Send a saved request and print the response.

The request is matched by id, then by title, then by the closest fuzzy
title. Without an argument an interactive picker is shown. The command
exits with status 1 when the response is not ok.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := ""
		if len(args) > 0 {
			ref = args[0]
		}
		return withController(cmd, func(ctx context.Context, ctrl *session.Controller) error {
			return cli.Send(ctx, ctrl, cli.SendOptions{
				Ref:          ref,
				OutputFormat: flagOutput,
				Body:         flagBody,
				Headers:      flagHeaders,
				Filter:       flagFilter,
				ShowFull:     flagFull,
				SavePath:     flagSave,
			}, cmd.OutOrStdout())
		})
	},
}

// Persistent flags
var (
	flagConfig string
	flagOutput string
)

// Flags for add
var (
	flagTitle  string
	flagMethod string
	flagURL    string
)

// Flags for send
var (
	flagBody    string
	flagHeaders string
	flagFilter  string
	flagFull    bool
	flagSave    string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default ~/.restcommander/config.yaml)")

	listCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml)")

	addCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Request title")
	addCmd.Flags().StringVarP(&flagMethod, "method", "m", "", "HTTP method (GET/POST/PUT/DELETE)")
	addCmd.Flags().StringVarP(&flagURL, "url", "u", "", "Request URL")

	sendCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (text/json/yaml/body)")
	sendCmd.Flags().StringVarP(&flagBody, "body", "b", "", "Request body (JSON)")
	sendCmd.Flags().StringVarP(&flagHeaders, "headers", "H", "", "Request headers (JSON object)")
	sendCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath filter for the response body")
	sendCmd.Flags().BoolVar(&flagFull, "full", false, "Show full output (status, headers, body)")
	sendCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Save response body to file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(sendCmd)
}

// setup initializes configuration and the store. The returned cleanup
// closes the store.
func setup(logOut io.Writer, toFile bool) (*config.Config, *session.Controller, func(), error) {
	if err := config.Initialize(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	var logCloser io.Closer
	if toFile {
		_, logCloser, err = logging.InitFileLogger(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		level, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, nil, nil, err
		}
		logging.InitLogger(level, logOut)
	}

	st := store.NewSQLite(cfg.DatabasePath)
	ctrl := session.NewController(st,
		session.WithClient(executor.NewClient(cfg.RequestTimeout)),
		session.WithDefaultTexts(cfg.DefaultBody, cfg.DefaultHeaders),
	)

	cleanup := func() {
		if err := st.Close(); err != nil {
			logging.For("main").WithError(err).Warn("failed to close store")
		}
		if logCloser != nil {
			logCloser.Close()
		}
	}
	return cfg, ctrl, cleanup, nil
}

// withController runs fn with an opened controller, logging to stderr
func withController(cmd *cobra.Command, fn func(context.Context, *session.Controller) error) error {
	_, ctrl, cleanup, err := setup(cmd.ErrOrStderr(), false)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl.Open(ctx)
	if !ctrl.Persistent() {
		return errors.New("request store is unavailable")
	}
	return fn(ctx, ctrl)
}

// runTUI starts the interactive TUI, logging to the log file
func runTUI(cmd *cobra.Command) error {
	cfg, ctrl, cleanup, err := setup(io.Discard, true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctrl.Open(context.Background())

	return tui.Run(ctrl, tui.Options{
		Version:      version,
		Timeout:      cfg.RequestTimeout,
		KeybindsPath: filepath.Join(config.ConfigDir, keybinds.FileName),
	})
}
