package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenuto/segno/internal/engine"
	"github.com/tenuto/segno/internal/harness"
	"github.com/tenuto/segno/internal/journal"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Journal string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run an awareness scenario and evaluate its assertions",
		Long: `Run an awareness scenario deterministically and evaluate its
assertions against the resulting effect trace.

The run wires a real reconciliation engine to an in-memory session with
fixed client ids and a virtual clock, so the same scenario always
produces the same trace.

Example:
  segno run scenarios/late_joiner.yaml
  segno run scenarios/late_joiner.yaml --journal session.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Journal, "journal", "", "journal the run to a SQLite database at this path")

	return cmd
}

// runResult is the JSON payload of a run.
type runResult struct {
	Scenario string   `json:"scenario"`
	Pass     bool     `json:"pass"`
	Effects  []string `json:"effects"`
	Failures []string `json:"failures,omitempty"`
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading scenario failed", err)
	}
	out.VerboseLog("loaded scenario %s (%d steps, %d assertions)",
		scenario.Name, len(scenario.Steps), len(scenario.Assertions))

	var engineOpts []engine.Option
	if opts.Journal != "" {
		j, err := journal.Open(opts.Journal)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening journal failed", err)
		}
		defer j.Close()
		engineOpts = append(engineOpts, engine.WithJournal(j))
		out.VerboseLog("journaling to %s", opts.Journal)
	}

	result, err := harness.RunWithOptions(scenario, engineOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "running scenario failed", err)
	}

	if opts.Format == "json" {
		payload := runResult{
			Scenario: scenario.Name,
			Pass:     result.Pass,
			Effects:  result.Effects,
		}
		for _, failure := range result.Failures {
			payload.Failures = append(payload.Failures, failure.Error())
		}
		if err := out.Success(payload); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "scenario: %s\n", scenario.Name)
		for i, effect := range result.Effects {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d %s\n", i+1, effect)
		}
		if result.Pass {
			fmt.Fprintf(cmd.OutOrStdout(), "\nPASS (%d assertions)\n", len(scenario.Assertions))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFAIL (%d of %d assertions failed)\n",
				len(result.Failures), len(scenario.Assertions))
			for _, failure := range result.Failures {
				fmt.Fprintln(cmd.OutOrStdout(), failure.Error())
			}
		}
	}

	if !result.Pass {
		return NewExitError(ExitFailure, "scenario assertions failed")
	}
	return nil
}
