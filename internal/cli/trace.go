package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tenuto/segno/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	From int64
	To   int64
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <journal.db>",
		Short: "Read back a journaled session trace",
		Long: `Read back the ordered event trace of a journaled session: every
processed event with its sequence number, kind, and the UI effects it
produced.

Example:
  segno trace session.db
  segno trace session.db --from 10 --to 20 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.From, "from", 0, "first sequence number to show")
	cmd.Flags().Int64Var(&opts.To, "to", 0, "last sequence number to show (0 = end)")

	return cmd
}

// traceEntry is the JSON shape of one journaled event.
type traceEntry struct {
	Seq        int64    `json:"seq"`
	Kind       string   `json:"kind"`
	Detail     string   `json:"detail,omitempty"`
	RecordedAt string   `json:"recorded_at"`
	Effects    []string `json:"effects,omitempty"`
}

func showTrace(opts *TraceOptions, path string, cmd *cobra.Command) error {
	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "journal not found", err)
	}

	j, err := journal.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening journal failed", err)
	}
	defer j.Close()

	var entries []journal.Entry
	if opts.From > 0 || opts.To > 0 {
		to := opts.To
		if to == 0 {
			last, err := j.LastSeq()
			if err != nil {
				return WrapExitError(ExitCommandError, "reading journal failed", err)
			}
			to = last
		}
		entries, err = j.ReadRange(opts.From, to)
	} else {
		entries, err = j.ReadAll()
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "reading journal failed", err)
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if opts.Format == "json" {
		payload := make([]traceEntry, len(entries))
		for i, e := range entries {
			payload[i] = traceEntry{
				Seq:        e.Seq,
				Kind:       e.Kind,
				Detail:     e.Detail,
				RecordedAt: e.RecordedAt,
				Effects:    e.Effects,
			}
		}
		return out.Success(payload)
	}

	for _, e := range entries {
		line := fmt.Sprintf("%6d %-12s", e.Seq, e.Kind)
		if e.Detail != "" {
			line += " " + e.Detail
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		for _, effect := range e.Effects {
			fmt.Fprintf(cmd.OutOrStdout(), "       > %s\n", effect)
		}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d events\n", len(entries))
	return nil
}
