package command

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN"
)

// EnvVerbose turns on full verbosity when set to a truthy value.
const EnvVerbose = "BALRAIN_VERBOSE"

// maxVerbosity lowers the level to slog.LevelDebug, below
// which LoggerFrom(ctx).V(1) through V(4) all log.
const maxVerbosity = 3

func SetCommon(cmd *cobra.Command, version string) *cobra.Command {
	var verbosity int
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "V", fmt.Sprintf("Verbosity for %s.", cmd.Name()))
	cmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose := os.Getenv(EnvVerbose); verbose != "" && xslice.Some([]string{"1", "y", "yes", "true", "t"}, func(s string, _ int) bool {
			return strings.EqualFold(s, verbose)
		}) {
			verbosity = maxVerbosity
		}

		cmd.SetContext(
			balrain.WithLogger(
				cmd.Context(), balrain.NewLoggerTo(cmd.ErrOrStderr(), verbosity),
			),
		)
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.Version = version
	cmd.SetVersionTemplate("{{ .Name }}{{ .Version }} " + runtime.Version() + "\n")

	return cmd
}
