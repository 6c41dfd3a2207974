package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tenuto/segno/internal/harness"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Validate scenario files without running them",
		Long: `Validate one or more scenario files: YAML well-formedness, unknown
field detection, step shape, feature keys, assertion types, and delay
ordering invariants.

Example:
  segno validate scenarios/*.yaml`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScenarios(rootOpts, args, cmd)
		},
	}
	return cmd
}

// validateResult is the JSON payload of a validation run.
type validateResult struct {
	Valid   int             `json:"valid"`
	Invalid int             `json:"invalid"`
	Files   []validatedFile `json:"files"`
}

type validatedFile struct {
	Path  string `json:"path"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func validateScenarios(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := validateResult{}
	for _, path := range paths {
		_, err := harness.LoadScenario(path)
		file := validatedFile{Path: path, OK: err == nil}
		if err != nil {
			file.Error = err.Error()
			result.Invalid++
		} else {
			result.Valid++
		}
		result.Files = append(result.Files, file)
	}

	if opts.Format == "json" {
		if err := out.Success(result); err != nil {
			return err
		}
	} else {
		for _, file := range result.Files {
			if file.OK {
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", file.Path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n     %s\n", file.Path, file.Error)
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d valid, %d invalid\n", result.Valid, result.Invalid)
	}

	if result.Invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario file(s) invalid", result.Invalid))
	}
	return nil
}
