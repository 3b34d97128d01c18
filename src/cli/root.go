package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"whistler/src/config"
	"whistler/src/logging"
	"whistler/src/store"
	"whistler/src/version"
)

func init() {
	// Commands are matched case-insensitively: "LIST" runs list.
	cobra.EnableCaseInsensitive = true
}

// app carries state resolved once per invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
	logger *log.Logger
	target store.Target
	styles styles
}

// NewRootCmd returns the root cobra command for the whistler CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd, _ := newRoot(stdout, stderr)
	return cmd
}

func newRoot(stdout, stderr io.Writer) (*cobra.Command, *app) {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	a := &app{stdout: stdout, stderr: stderr, cfg: config.DefaultConfig()}

	cmd := &cobra.Command{
		Use:           "whistler",
		Short:         version.Description,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newRenCmd(a))
	cmd.AddCommand(newRenIDCmd(a))

	return cmd, a
}

// setup resolves config, logger, styles and the store target, then prints
// the banner.
func (a *app) setup(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := logging.New(a.stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	tgt, err := store.ParseTarget(cfg.Store)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	a.target = tgt
	a.styles = newStyles(a.stdout, cfg.Color)
	if !cfg.Quiet {
		printBanner(a.stderr, newStyles(a.stderr, cfg.Color))
	}
	logger.Debug("configuration resolved", "store", tgt.String(), "output", cfg.Output)
	return nil
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	return execute(os.Stdout, os.Stderr, nil)
}

// execute runs the CLI with args, or the process arguments when args is nil.
// Errors are reported on stderr with the resolved color setting.
func execute(stdout, stderr io.Writer, args []string) int {
	root, a := newRoot(stdout, stderr)
	if args != nil {
		root.SetArgs(args)
	}
	if err := root.Execute(); err != nil {
		st := a.errorStyles()
		fmt.Fprintln(a.stderr, st.errorLabel.Render("Error:"), err)
		fmt.Fprintf(a.stderr, "Run '%s --help' for usage.\n", root.Name())
		return 1
	}
	return 0
}

// errorStyles are bound to stderr. Before setup has run they follow the
// default config.
func (a *app) errorStyles() styles {
	return newStyles(a.stderr, a.cfg.Color)
}
