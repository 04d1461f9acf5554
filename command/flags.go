package command

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yeseul01458-spec/BALRAIN/internal/checker"
)

type checkerFlags struct {
	moduleDir   string
	buildFile   string
	pubspec     string
	minSDKFloor int
}

func (f *checkerFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.moduleDir, "module-dir", checker.DefaultModuleDir, "Android application module relative to the project directory")
	cmd.Flags().StringVar(&f.buildFile, "build-file", checker.DefaultBuildFile, "build script relative to the module directory")
	cmd.Flags().StringVar(&f.pubspec, "pubspec", "pubspec.yaml", "pubspec relative to the project directory")
	cmd.Flags().IntVar(&f.minSDKFloor, "min-sdk-floor", 0, "lowest allowed minSdk (default 21)")
}

// checker returns a Checker for the project directory in args[i], or the
// working directory if there is none.
func (f *checkerFlags) checker(args []string, i int) *checker.Checker {
	return &checker.Checker{
		FS:          os.DirFS(projectDir(args, i)),
		ModuleDir:   f.moduleDir,
		BuildFile:   f.buildFile,
		Pubspec:     f.pubspec,
		MinSDKFloor: f.minSDKFloor,
	}
}

func projectDir(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}

	return "."
}
