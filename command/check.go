package command

import (
	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"github.com/yeseul01458-spec/BALRAIN/internal/checker"
)

func newCheck() *cobra.Command {
	var (
		flags     = &checkerFlags{}
		output    string
		reportURL string
		cmd       = &cobra.Command{
			Use:   "check [project-dir]",
			Short: "Decode, validate and resolve every variant of the Android module",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					log = balrain.LoggerFrom(ctx)
				)

				report, err := flags.checker(args, 0).Check(ctx)
				if err != nil {
					return err
				}

				if err := writeReport(cmd.OutOrStdout(), output, report); err != nil {
					return err
				}

				if reportURL != "" {
					key, err := storeReport(ctx, reportURL, report)
					if err != nil {
						return err
					}

					log.Info("stored report", "key", key)
				}

				return balrainerr.ExitCodeError(checker.Err(report), balrainerr.ExitCodeFailure)
			},
		}
	)

	flags.bind(cmd)
	bindOutput(cmd, &output)
	cmd.Flags().StringVar(&reportURL, "report-url", "", "bucket URL to store the report in, e.g. file:///var/lib/balrain")

	return cmd
}
