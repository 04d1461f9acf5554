package command

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN"
	"github.com/yeseul01458-spec/BALRAIN/gradle"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
)

func newFmt() *cobra.Command {
	var (
		flags            = &checkerFlags{}
		write            bool
		dropUnrecognized bool
		cmd              = &cobra.Command{
			Use:   "fmt [project-dir]",
			Short: "Print the Android module's build script in canonical form",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				var (
					ctx = cmd.Context()
					log = balrain.LoggerFrom(ctx)
					c   = flags.checker(args, 0)
				)

				m, _, unrecognized, err := c.Decode(ctx)
				if err != nil {
					return balrainerr.ExitCodeError(err, balrainerr.ExitCodeFailure)
				}

				for _, stmt := range unrecognized {
					log.Info("dropping unrecognized statement " + stmt)
				}

				buf := new(bytes.Buffer)
				if err := gradle.NewEncoder(buf).Encode(m); err != nil {
					return err
				}

				if !write {
					_, err := buf.WriteTo(cmd.OutOrStdout())
					return err
				}

				if len(unrecognized) > 0 && !dropUnrecognized {
					return balrainerr.ExitCodeError(
						fmt.Errorf("refusing to drop unrecognized statements %s, pass --drop-unrecognized", strings.Join(unrecognized, ", ")),
						balrainerr.ExitCodeFailure,
					)
				}

				name := filepath.Join(projectDir(args, 0), filepath.FromSlash(c.BuildFilePath()))

				fi, err := os.Stat(name)
				if err != nil {
					return err
				}

				return os.WriteFile(name, buf.Bytes(), fi.Mode().Perm())
			},
		}
	)

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the build script instead of printing it")
	cmd.Flags().BoolVar(&dropUnrecognized, "drop-unrecognized", false, "allow --write to drop statements that are not understood")

	return cmd
}
