package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/curve/internal/injector"
	"github.com/zeusync/curve/internal/scenario"
)

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <file>...",
		Short: "Replay scenario files and print their traces",
		Long: `Replay one or more scenario files against fresh curves.

Files are replayed concurrently; traces are printed in argument order,
separated by a blank line. The first failing file aborts the others.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runReplay(opts *RootOptions, files []string, cmd *cobra.Command) error {
	cfg, err := opts.Config()
	if err != nil {
		return err
	}
	runner := injector.InitializeRunner(cfg)

	results := make([]*scenario.Result, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range files {
		g.Go(func() error {
			sc, err := loadScenario(path)
			if err != nil {
				return err
			}
			res, err := runner.Run(ctx, sc)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := res.Render(out); err != nil {
			return err
		}
	}
	return nil
}
