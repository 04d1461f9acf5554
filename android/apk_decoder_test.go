package android_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeseul01458-spec/BALRAIN/android"
	"github.com/yeseul01458-spec/BALRAIN/apktool"
)

// fakeTool writes an executable shell script standing in for apktool or keytool.
func fakeTool(t *testing.T, name, script string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("fake tools are shell scripts")
	}

	bin := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0o755))

	return bin
}

func fakeAPKTool(t *testing.T) string {
	t.Helper()

	testdata, err := filepath.Abs("testdata")
	require.NoError(t, err)

	return fakeTool(t, "apktool", `
while [ $# -gt 0 ]; do
    case "$1" in
        --output) out="$2"; shift ;;
    esac
    shift
done
mkdir -p "$out"
cp "`+testdata+`/AndroidManifest.xml" "$out/AndroidManifest.xml"
cp "`+testdata+`/apktool.yml" "$out/apktool.yml"
`)
}

func TestAPKDecoder(t *testing.T) {
	var (
		ctx = context.Background()
		apk = filepath.Join(t.TempDir(), "app-release.apk")
	)

	require.NoError(t, os.WriteFile(apk, []byte("PK"), 0o644))

	keytool := fakeTool(t, "keytool", `
echo "Owner: C=US, O=Android, CN=Android Debug"
echo "Certificate fingerprints:"
echo "	 SHA256: AA:BB:CC"
`)

	dec := android.NewAPKDecoder(apk, android.WithAPKTool(fakeAPKTool(t)), android.WithKeytool(keytool))

	manifest, err := dec.Manifest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "com.example.balrain", manifest.Package())

	metadata, err := dec.Metadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, &apktool.VersionInfo{VersionCode: 1, VersionName: "1.0"}, metadata.VersionInfo)
	assert.Equal(t, &apktool.SDKInfo{MinSDKVersion: 21, TargetSDKVersion: 34}, metadata.SDKInfo)

	cert, err := dec.Certificate(ctx)
	require.NoError(t, err)
	assert.True(t, cert.IsDebug())
	assert.Equal(t, "AA:BB:CC", cert.SHA256)

	require.NoError(t, dec.Close())
	assert.FileExists(t, apk)
}

func TestAPKDecoderWithDir(t *testing.T) {
	var (
		ctx = context.Background()
		dir = t.TempDir()
		apk = filepath.Join(t.TempDir(), "app-debug.apk")
	)

	require.NoError(t, os.WriteFile(apk, []byte("PK"), 0o644))

	dec := android.NewAPKDecoder(apk, android.WithAPKTool(fakeAPKTool(t)), android.WithDir(dir))

	_, err := dec.Manifest(ctx)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, android.AndroidManifestName))

	require.NoError(t, dec.Close())
	assert.DirExists(t, dir)
	assert.FileExists(t, apk)
}

func TestAPKDecoderToolFailure(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	dec := android.NewAPKDecoder("missing.apk", android.WithAPKTool(fakeTool(t, "apktool", "echo 'Input file was not found' >&2\nexit 1\n")))

	_, err := dec.Manifest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Input file was not found")

	decoded, err := filepath.Glob(filepath.Join(tmp, "balrain-apk-*"))
	require.NoError(t, err)
	require.Len(t, decoded, 1)

	require.NoError(t, dec.Close())
	assert.NoDirExists(t, decoded[0])
}

func TestAPKDecoderRemovesTempDir(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	apk := filepath.Join(t.TempDir(), "app-release.apk")
	require.NoError(t, os.WriteFile(apk, []byte("PK"), 0o644))

	dec := android.NewAPKDecoder(apk, android.WithAPKTool(fakeAPKTool(t)))

	_, err := dec.Manifest(context.Background())
	require.NoError(t, err)

	require.NoError(t, dec.Close())

	decoded, err := filepath.Glob(filepath.Join(tmp, "balrain-apk-*"))
	require.NoError(t, err)
	assert.Empty(t, decoded)
	assert.FileExists(t, apk)
}
