package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(_ *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "validate <file>...",
		Short:        "Check scenario files without replaying them",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args, cmd)
		},
	}

	return cmd
}

func runValidate(files []string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	invalid := 0
	for _, path := range files {
		if _, err := loadScenario(path); err != nil {
			invalid++
			fmt.Fprintf(out, "invalid %v\n", err)
			continue
		}
		fmt.Fprintf(out, "ok %s\n", path)
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d scenario(s) invalid", invalid, len(files))
	}
	return nil
}
