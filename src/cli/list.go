package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"whistler/src/config"
	"whistler/src/distro"
)

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered WSL distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, ok, err := a.storeFor(cmd)
			if err != nil || !ok {
				return err
			}
			distros := distro.NewInventory(st, a.logger).List()
			out := cmd.OutOrStdout()
			switch a.cfg.Output {
			case config.OutputJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(distros)
			case config.OutputYAML:
				data, err := yaml.Marshal(distros)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			default:
				if len(distros) == 0 {
					fmt.Fprintln(out, "No WSL distributions found.")
					return nil
				}
				return renderTable(out, distros, time.Now(), a.styles)
			}
		},
	}
	cmd.Flags().StringP("output", "o", config.OutputTable, "Output format: table|json|yaml")
	return cmd
}

// renderTable aligns columns first and styles the default row afterwards so
// color codes do not upset the alignment. The default also carries a '*'.
func renderTable(w io.Writer, distros []distro.Distro, now time.Time, st styles) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPACE\tLAST ACCESS")
	for _, d := range distros {
		name := d.Name
		if d.IsDefault {
			name += " *"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, name, d.TotalSpace(), d.LastAccessAgo(now))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for i, line := range lines {
		if i > 0 && distros[i-1].IsDefault {
			line = st.defaultRow.Render(line)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
