package command

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"github.com/yeseul01458-spec/BALRAIN/internal/checker"
)

type variantOutput struct {
	Variant *balrain.Variant               `json:"variant"`
	Status  *balrainv1alpha1.VariantStatus `json:"status"`
}

func newVariant() *cobra.Command {
	var (
		flags  = &checkerFlags{}
		output string
		cmd    = &cobra.Command{
			Use:   "variant name [project-dir]",
			Short: "Print the settings a build type resolves to",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()

				report, err := flags.checker(args, 1).Check(ctx)
				if err != nil {
					return err
				}

				if !report.IsConditionTrue(balrainv1alpha1.ConditionTypeDecoded) {
					return balrainerr.ExitCodeError(checker.Err(report), balrainerr.ExitCodeFailure)
				}

				v, err := report.Spec.Variant(args[0])
				if err != nil {
					return balrainerr.ExitCodeError(err, balrainerr.ExitCodeUsage)
				}

				status, ok := report.Variant(v.Name)
				if !ok {
					return fmt.Errorf("variant %s was not resolved", v.Name)
				}

				if ok, err := encode(cmd.OutOrStdout(), output, &variantOutput{Variant: v, Status: status}); !ok {
					t := newTable(cmd.OutOrStdout(), table.Row{"Setting", "Value"})
					t.AppendRows([]table.Row{
						{"Name", v.Name},
						{"Application ID", v.ApplicationID},
						{"Version", fmt.Sprintf("%s (%d)", v.VersionName, v.VersionCode)},
						{"Min SDK", v.MinSDK},
						{"Target SDK", v.TargetSDK},
						{"Debuggable", v.Debuggable},
						{"Minify", v.MinifyEnabled},
						{"Shrink Resources", v.ShrinkResources},
						{"Shrink Rules", proguardFiles(status.ProguardFiles)},
						{"Phase", status.Phase},
					})
					t.Render()
				} else if err != nil {
					return err
				}

				if status.Phase != balrainv1alpha1.PhasePassed {
					return balrainerr.ExitCodeError(errors.New(status.Message), balrainerr.ExitCodeFailure)
				}

				return nil
			},
		}
	)

	flags.bind(cmd)
	bindOutput(cmd, &output)

	return cmd
}
