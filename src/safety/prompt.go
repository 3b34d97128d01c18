package safety

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Options mirrors the global --dry-run, --yes and --force flags.
type Options struct {
	DryRun bool
	Yes    bool
	Force  bool
}

// Decision is the outcome of a confirmation.
type Decision int

const (
	Declined Decision = iota
	Approved
	// Planned means dry-run: the caller should describe the action only.
	Planned
)

// Confirm asks before a change that the caller considers risky.
// Dry-run wins over everything; --yes and --force skip the prompt. Any
// answer other than y/yes, including EOF on a closed stdin, declines.
func Confirm(opts Options, in io.Reader, out io.Writer, question string) (Decision, error) {
	if opts.DryRun {
		return Planned, nil
	}
	if opts.Yes || opts.Force {
		return Approved, nil
	}
	if out != nil {
		fmt.Fprintf(out, "%s [y/N]: ", strings.TrimSpace(question))
	}
	if in == nil {
		return Declined, nil
	}
	sc := bufio.NewScanner(in)
	if !sc.Scan() {
		return Declined, sc.Err()
	}
	switch strings.ToLower(strings.TrimSpace(sc.Text())) {
	case "y", "yes":
		return Approved, nil
	}
	return Declined, nil
}
