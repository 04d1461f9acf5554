package apktool

import (
	"context"
	"fmt"
	"os/exec"
)

// Decode finds `apktool` on the PATH and runs Decode against it.
// See Command.Decode.
func Decode(ctx context.Context, name string, opts *DecodeOpts) error {
	return Command("apktool").Decode(ctx, name, opts)
}

// Command represents the path to an `apktool` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// DecodeOpts represent flags that can be passed to `apktool decode`.
type DecodeOpts struct {
	Force           bool
	NoSources       bool
	OutputDirectory string
}

// Decode runs `apktool decode` against the .apk at name. Resources are
// always decoded since AndroidManifest.xml is needed in plain text.
func (c Command) Decode(ctx context.Context, name string, opts *DecodeOpts) error {
	args := []string{"decode"}

	if opts != nil {
		if opts.Force {
			args = append(args, "--force")
		}

		if opts.NoSources {
			args = append(args, "--no-src")
		}

		if opts.OutputDirectory != "" {
			args = append(args, "--output", opts.OutputDirectory)
		}
	}

	args = append(args, name)

	//nolint:gosec
	if out, err := exec.CommandContext(ctx, c.String(), args...).CombinedOutput(); err != nil {
		return fmt.Errorf("apktool decode %s: %w: %s", name, err, out)
	}

	return nil
}
