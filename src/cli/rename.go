package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"whistler/src/distro"
	"whistler/src/safety"
)

// usageArgs fails with the command's usage line unless exactly n args are given.
func usageArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("usage: %s", cmd.UseLine())
		}
		return nil
	}
}

func newRenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ren <oldName> <newName>",
		Short: "Rename a distribution by its current name",
		Args:  usageArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok, err := a.storeFor(cmd)
			if err != nil || !ok {
				return err
			}
			return a.rename(cmd, distro.NewRenamer(st, a.logger), args[0], args[1])
		},
	}
}

func newRenIDCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renid <Id> <newName>",
		Short: "Rename a distribution by the Id shown in 'list'",
		Args:  usageArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid Id '%s'", args[0])
			}
			st, ok, err := a.storeFor(cmd)
			if err != nil || !ok {
				return err
			}
			r := distro.NewRenamer(st, a.logger)
			d, found := r.ResolveID(id)
			if !found {
				return fmt.Errorf("no distribution with Id %d", id)
			}
			return a.rename(cmd, r, d.Name, args[1])
		},
	}
}

// rename applies the safety flags, then performs the rename. A new name that
// is already taken needs confirmation; the store itself does not forbid it.
func (a *app) rename(cmd *cobra.Command, r *distro.Renamer, oldName, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return errors.New("new name must not be empty")
	}
	out := cmd.OutOrStdout()
	opts := getSafetyOptions(cmd)

	var takenBy string
	var taken bool
	if newName != oldName {
		takenBy, taken = r.Lookup(newName)
	}
	if taken || opts.DryRun {
		q := fmt.Sprintf("A distribution named %s already exists (%s). Rename anyway?", newName, takenBy)
		dec, err := safety.Confirm(opts, cmd.InOrStdin(), out, q)
		if err != nil {
			return err
		}
		switch dec {
		case safety.Planned:
			return a.planRename(out, r, oldName, newName, takenBy, taken)
		case safety.Declined:
			return fmt.Errorf("aborted: %s is already in use", newName)
		}
	}

	if !r.Rename(oldName, newName) {
		return fmt.Errorf("failed to rename %s to %s", oldName, newName)
	}
	fmt.Fprintln(out, a.styles.success.Render(fmt.Sprintf("Success: Renamed %s to %s", oldName, newName)))
	return nil
}

// planRename describes a dry-run rename without writing.
func (a *app) planRename(out io.Writer, r *distro.Renamer, oldName, newName, takenBy string, taken bool) error {
	key, ok := r.Lookup(oldName)
	if !ok {
		return fmt.Errorf("failed to rename %s to %s: no such distribution", oldName, newName)
	}
	fmt.Fprintf(out, "Dry run: would rename %s (%s) to %s\n", oldName, key, newName)
	if taken {
		fmt.Fprintln(out, a.styles.warning.Render(fmt.Sprintf("Warning: %s is already used by %s", newName, takenBy)))
	}
	return nil
}
