package command_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	xos "github.com/frantjc/x/os"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeseul01458-spec/BALRAIN/command"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"sigs.k8s.io/yaml"

	_ "gocloud.dev/blob/fileblob"
)

const project = "../internal/checker/testdata/project"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	return runTo(t, io.Discard, args...)
}

func runTo(t *testing.T, stderr io.Writer, args ...string) (string, error) {
	t.Helper()

	var (
		cmd = command.NewBalrain()
		out = new(bytes.Buffer)
	)

	cmd.SetOut(out)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// copyProject returns a writable copy of the test project.
func copyProject(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.CopyFS(dir, os.DirFS(project)))

	return dir
}

func TestCheck(t *testing.T) {
	out, err := run(t, "check", project)
	require.NoError(t, err)
	assert.Contains(t, out, "com.example.balrain")
	assert.Contains(t, out, "ReleaseResolved")
	assert.Contains(t, out, "proguard-rules.pro (9 rules, 7 keeps)")
}

func TestCheckYAML(t *testing.T) {
	out, err := run(t, "check", project, "-o", "yaml")
	require.NoError(t, err)

	report := map[string]any{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, "AndroidModule", report["kind"])
	assert.Equal(t, "Passed", report["status"].(map[string]any)["phase"])
}

func TestCheckFailed(t *testing.T) {
	dir := copyProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "android", "app", "proguard-rules.pro")))

	out, err := run(t, "check", dir)
	require.Error(t, err)
	assert.Equal(t, balrainerr.ExitCodeFailure, balrainerr.ExitCode(err))
	assert.Contains(t, err.Error(), "ReleaseResolved")
	assert.Contains(t, out, "Failed")
}

func TestCheckReportURL(t *testing.T) {
	var (
		bucketDir = t.TempDir()
		reportURL = "file://" + filepath.ToSlash(bucketDir)
	)

	_, err := run(t, "check", project, "--report-url", reportURL)
	require.NoError(t, err)

	reports, err := filepath.Glob(filepath.Join(bucketDir, "com.example.balrain", "*", "report.yaml"))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	b, err := os.ReadFile(reports[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), "phase: Passed")
}

func TestCheckVerboseEnv(t *testing.T) {
	t.Setenv(command.EnvVerbose, "true")

	var (
		stderr    = new(bytes.Buffer)
		reportURL = "file://" + filepath.ToSlash(t.TempDir())
	)

	_, err := runTo(t, stderr, "check", project, "--report-url", reportURL)
	require.NoError(t, err)
	assert.Contains(t, stderr.String(), "opening bucket")
}

func TestCheckQuietByDefault(t *testing.T) {
	t.Setenv(command.EnvVerbose, "")

	var (
		stderr    = new(bytes.Buffer)
		reportURL = "file://" + filepath.ToSlash(t.TempDir())
	)

	_, err := runTo(t, stderr, "check", project, "--report-url", reportURL)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())
}

func TestCheckUnknownOutput(t *testing.T) {
	_, err := run(t, "check", project, "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, balrainerr.ExitCodeUsage, xos.ErrorExitCode(err))
}

func TestVerifyNotAnAPK(t *testing.T) {
	_, err := run(t, "verify", "app-release.aab", project)
	require.Error(t, err)
	assert.Equal(t, balrainerr.ExitCodeUsage, xos.ErrorExitCode(err))
	assert.Contains(t, err.Error(), "app-release.aab")
}

func TestVariant(t *testing.T) {
	out, err := run(t, "variant", "release", project, "-o", "json")
	require.NoError(t, err)

	variant := struct {
		Variant struct {
			Name          string `json:"name"`
			MinifyEnabled bool   `json:"minifyEnabled"`
		} `json:"variant"`
		Status struct {
			Phase string `json:"phase"`
		} `json:"status"`
	}{}
	require.NoError(t, json.Unmarshal([]byte(out), &variant))
	assert.Equal(t, "release", variant.Variant.Name)
	assert.True(t, variant.Variant.MinifyEnabled)
	assert.Equal(t, "Passed", variant.Status.Phase)

	out, err = run(t, "variant", "debug", project)
	require.NoError(t, err)
	assert.Contains(t, out, "Debuggable")
}

func TestVariantUnknown(t *testing.T) {
	_, err := run(t, "variant", "beta", project)
	require.Error(t, err)
	assert.Equal(t, balrainerr.ExitCodeUsage, xos.ErrorExitCode(err))
}

func TestVariantDebugIgnoresMissingRules(t *testing.T) {
	dir := copyProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "android", "app", "proguard-rules.pro")))

	_, err := run(t, "variant", "debug", dir)
	assert.NoError(t, err)

	_, err = run(t, "variant", "release", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proguard-rules.pro")
}

func TestFmt(t *testing.T) {
	out, err := run(t, "fmt", project)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "plugins {\n"))
	assert.NotContains(t, out, "//")
	assert.Contains(t, out, "                getDefaultProguardFile(\"proguard-android-optimize.txt\"),\n")
}

func TestFmtWrite(t *testing.T) {
	var (
		dir       = copyProject(t)
		buildFile = filepath.Join(dir, "android", "app", "build.gradle.kts")
	)

	_, err := run(t, "fmt", dir, "-w")
	require.NoError(t, err)

	b, err := os.ReadFile(buildFile)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "/*")

	out, err := run(t, "fmt", dir)
	require.NoError(t, err)
	assert.Equal(t, string(b), out)
}

func TestFmtWriteUnrecognized(t *testing.T) {
	var (
		dir       = copyProject(t)
		buildFile = filepath.Join(dir, "android", "app", "build.gradle.kts")
	)

	b, err := os.ReadFile(buildFile)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(buildFile, bytes.Replace(b, []byte("minSdk = 21"), []byte("minSdk = 21\n        multiDexEnabled = true"), 1), 0o644))

	_, err = run(t, "fmt", dir, "-w")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiDexEnabled")

	_, err = run(t, "fmt", dir, "-w", "--drop-unrecognized")
	require.NoError(t, err)

	b, err = os.ReadFile(buildFile)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "multiDexEnabled")
}
