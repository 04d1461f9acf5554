package command

import (
	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN"
)

// NewBalrain returns the root command for
// balrain which acts as its CLI entrypoint.
func NewBalrain() *cobra.Command {
	cmd := SetCommon(&cobra.Command{
		Use:   "balrain",
		Short: "Check the build configuration of a Flutter app's Android module",
	}, balrain.SemVer())

	cmd.AddCommand(newCheck(), newVariant(), newVerify(), newFmt())

	return cmd
}
