// Package cli provides the command-line interface for sshsel.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"sshsel/internal/appconfig"
	"sshsel/internal/config"
	"sshsel/internal/doctor"
	"sshsel/internal/model"
	"sshsel/internal/selector"
	"sshsel/internal/sshclient"
	"sshsel/internal/ui"
	"sshsel/internal/util"
)

// NewRootCommand creates the root cobra command. Running sshsel without a
// subcommand starts the interactive selection flow, same as `sshsel select`.
func NewRootCommand() *cobra.Command {
	var query string
	root := &cobra.Command{
		Use:   "sshsel",
		Short: "Fuzzy host selection for ssh, backed by ~/.ssh/config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, query)
		},
	}
	root.Flags().StringVar(&query, "query", "", "preload the selector filter")

	root.AddCommand(newSelectCmd())
	root.AddCommand(newHostsCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newConnectCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newDoctorCmd())
	root.AddCommand(newShellInitCmd())
	return root
}

func loadConfig() appconfig.Config {
	cfg, err := appconfig.Load()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
	}
	return cfg
}

func loadTable(cfg appconfig.Config) ([]model.HostRecord, []string, error) {
	path := cfg.SSHConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return nil, nil, err
		}
	}
	hosts, warnings := config.LoadHosts(config.ExpandHome(path))
	return hosts, warnings, nil
}

// emitSelection prints the caller contract: "<mode>\t<alias>". The shell
// widget splits on the tab, rewrites the command line with the alias and, in
// confirm mode, executes it immediately. No selection prints nothing.
func emitSelection(cmd *cobra.Command, sel *model.Selection) {
	if sel == nil {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", sel.Mode, sel.Alias)
}

func runSelect(cmd *cobra.Command, query string) error {
	cfg := loadConfig()
	hosts, _, err := loadTable(cfg)
	if err != nil {
		return err
	}

	opts := selector.Options{
		Query:            query,
		PrimaryAcceptKey: cfg.Selector.PrimaryAcceptKey,
		AcceptKeys:       cfg.Selector.AcceptKeys,
	}
	runner := selector.NewFzfRunner(opts)
	runner.Binary = cfg.Selector.Command
	runner.ExtraArgs = cfg.Selector.ExtraArgs

	sel, err := selector.Select(runner, hosts, opts)
	if err != nil {
		return err
	}
	emitSelection(cmd, sel)
	return nil
}

func newSelectCmd() *cobra.Command {
	var query string
	c := &cobra.Command{
		Use:   "select",
		Short: "Pick a host with the external fuzzy selector",
		Long: "Pick a host interactively and print \"<mode>\\t<alias>\" for the\n" +
			"shell widget. Prints nothing when cancelled or when no hosts exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelect(cmd, query)
		},
	}
	c.Flags().StringVar(&query, "query", "", "preload the selector filter")
	return c
}

func newHostsCmd() *cobra.Command {
	var showWarnings, jsonOut bool
	c := &cobra.Command{
		Use:   "hosts",
		Short: "List selectable hosts from ~/.ssh/config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			hosts, warnings, err := loadTable(cfg)
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(hosts)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-28s %-16s %s\n", "ALIAS", "HOSTNAME", "USER", "DESCRIPTION")
			for _, h := range hosts {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %-28s %-16s %s\n", h.Alias, h.HostName, util.EmptyDash(h.User), util.EmptyDash(h.Description))
			}
			if showWarnings && len(warnings) > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "warnings:")
				for _, w := range warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", w)
				}
			}
			return nil
		},
	}
	c.Flags().BoolVar(&showWarnings, "warnings", false, "print parse warnings to stderr")
	c.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	return c
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "preview <alias>",
		Short:  "Print the resolved directives for a host (selector preview pane)",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			// Preview failures render an empty pane, never an error: the
			// selector calls this once per highlighted row and must not die.
			for _, line := range sshclient.New().ResolveConfig(args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}

func newConnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <alias>",
		Short: "Open an interactive SSH session to a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sshclient.EnsureSSHBinary(); err != nil {
				return err
			}
			// Generous bound; interactive sessions may run for hours.
			ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
			defer cancel()
			return sshclient.New().RunInteractive(ctx, args[0])
		},
	}
}

func newBrowseCmd() *cobra.Command {
	var query string
	var connect bool
	c := &cobra.Command{
		Use:   "browse",
		Short: "Pick a host with the built-in picker (no fzf required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			hosts, _, err := loadTable(cfg)
			if err != nil {
				return err
			}
			sel, err := ui.Pick(hosts, query, cfg.UI.PageSize)
			if err != nil {
				return err
			}
			if sel != nil && connect && sel.Mode == model.ModeConfirm {
				ctx, cancel := context.WithTimeout(context.Background(), 24*time.Hour)
				defer cancel()
				return sshclient.New().RunInteractive(ctx, sel.Alias)
			}
			emitSelection(cmd, sel)
			return nil
		},
	}
	c.Flags().StringVar(&query, "query", "", "preload the filter")
	c.Flags().BoolVar(&connect, "connect", false, "connect immediately on confirm instead of printing")
	return c
}

func newDoctorCmd() *cobra.Command {
	var jsonOut, writeConfig bool
	c := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if writeConfig {
				if err := appconfig.Save(cfg); err != nil {
					return err
				}
			}
			report, err := doctor.Run(cfg)
			if err != nil {
				return err
			}
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			if len(report.Issues) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no issues found")
				return nil
			}
			for _, issue := range report.Issues {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s (%s): %s\n    fix: %s\n",
					issue.Severity, issue.Check, issue.Target, issue.Message, issue.Recommendation)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&jsonOut, "json", false, "output JSON")
	c.Flags().BoolVar(&writeConfig, "write-config", false, "write the effective config to config.yaml")
	return c
}
