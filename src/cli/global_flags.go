package cli

import (
	"github.com/spf13/cobra"

	"whistler/src/safety"
)

// addGlobalFlags adds persistent flags to the root command. Flags named in
// config.Load are bound over the config file and environment.
func addGlobalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.Bool("dry-run", false, "Show the rename that would happen without writing it")
	pf.BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
	pf.Bool("force", false, "Rename even when the new name is already taken")
	pf.String("store", "", "Distribution store: 'registry:' or 'file:/abs/path.yaml'")
	pf.String("config", "", "Config file (default <user config dir>/whistler/config.yaml)")
	pf.String("log-level", "", "Diagnostic level: debug|info|warn|error")
	pf.Bool("no-color", false, "Disable colored output")
	pf.BoolP("quiet", "q", false, "Do not print the program banner")
}

// getSafetyOptions reads global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	force, _ := cmd.Root().PersistentFlags().GetBool("force")
	return safety.Options{DryRun: dry, Yes: yes, Force: force}
}
