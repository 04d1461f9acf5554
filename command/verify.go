package command

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN"
	"github.com/yeseul01458-spec/BALRAIN/android"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainregexp"
	"github.com/yeseul01458-spec/BALRAIN/internal/checker"
)

func newVerify() *cobra.Command {
	var (
		flags     = &checkerFlags{}
		output    string
		reportURL string
		buildType string
		apktool   string
		keytool   string
		cmd       = &cobra.Command{
			Use:   "verify apk [project-dir]",
			Short: "Verify a built .apk against the build type it was built with",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					log = balrain.LoggerFrom(ctx)
				)

				name := filepath.Base(args[0])
				if !balrainregexp.IsAPK(name) {
					return balrainerr.ExitCodeError(fmt.Errorf("%s is not an .apk", args[0]), balrainerr.ExitCodeUsage)
				}

				report, err := flags.checker(args, 1).Check(ctx)
				if err != nil {
					return err
				}

				if !report.IsConditionTrue(balrainv1alpha1.ConditionTypeDecoded) {
					return balrainerr.ExitCodeError(checker.Err(report), balrainerr.ExitCodeFailure)
				}

				dec := android.NewAPKDecoder(args[0], android.WithAPKTool(apktool), android.WithKeytool(keytool))
				defer dec.Close()

				verr := checker.Verify(ctx, report, buildType, name, dec)
				if _, ok := report.Condition(balrainv1alpha1.ConditionTypeVerified); !ok {
					return verr
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

				return verr
			},
		}
	)

	flags.bind(cmd)
	bindOutput(cmd, &output)
	cmd.Flags().StringVar(&reportURL, "report-url", "", "bucket URL to store the report in, e.g. file:///var/lib/balrain")
	cmd.Flags().StringVar(&buildType, "build-type", balrain.BuildTypeRelease, "build type the .apk was built with")
	cmd.Flags().StringVar(&apktool, "apktool", "apktool", "path to apktool")
	cmd.Flags().StringVar(&keytool, "keytool", "keytool", "path to keytool")

	return cmd
}
