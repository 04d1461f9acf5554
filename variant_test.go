package balrain_test

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeseul01458-spec/BALRAIN"
	"github.com/yeseul01458-spec/BALRAIN/proguard"
)

func TestVariant(t *testing.T) {
	m := newModule()

	debug, err := m.Variant(balrain.BuildTypeDebug)
	require.NoError(t, err)
	assert.True(t, debug.Debuggable)
	assert.False(t, debug.MinifyEnabled)
	assert.False(t, debug.ShrinkResources)
	assert.Equal(t, "com.example.balrain", debug.ApplicationID)

	release, err := m.Variant(balrain.BuildTypeRelease)
	require.NoError(t, err)
	assert.False(t, release.Debuggable)
	assert.True(t, release.MinifyEnabled)
	assert.True(t, release.ShrinkResources)
	assert.Equal(t, 21, release.MinSDK)
	assert.Equal(t, 34, release.TargetSDK)
	assert.Len(t, release.ProguardFiles, 2)

	_, err = m.Variant("profile")
	assert.Error(t, err)
}

func TestVariants(t *testing.T) {
	variants, err := newModule().Variants()
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, balrain.BuildTypeDebug, variants[0].Name)
	assert.Equal(t, balrain.BuildTypeRelease, variants[1].Name)
}

func TestResolveProguardFilesRelease(t *testing.T) {
	var (
		ctx   = context.Background()
		fsys  = fstest.MapFS{"proguard-rules.pro": {Data: []byte("-keep class io.flutter.** { *; }\n")}}
		m     = newModule()
		v, _  = m.Variant(balrain.BuildTypeRelease)
		files []*proguard.File
		err   error
	)

	files, err = v.ResolveProguardFiles(ctx, fsys)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "proguard-android-optimize.txt", files[0].Name)
	assert.Equal(t, "proguard-rules.pro", files[1].Name)
	assert.Equal(t, 1, files[1].Keeps())
}

func TestResolveProguardFilesReleaseMissing(t *testing.T) {
	v, err := newModule().Variant(balrain.BuildTypeRelease)
	require.NoError(t, err)

	_, err = v.ResolveProguardFiles(context.Background(), fstest.MapFS{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "proguard-rules.pro")
}

func TestResolveProguardFilesDebugIgnoresRules(t *testing.T) {
	m := newModule()
	m.SetBuildType(balrain.BuildType{
		Name:          balrain.BuildTypeDebug,
		ProguardFiles: []balrain.ProguardFile{{Name: "proguard-rules.pro"}},
	})

	v, err := m.Variant(balrain.BuildTypeDebug)
	require.NoError(t, err)

	for _, fsys := range []fs.FS{
		fstest.MapFS{},
		fstest.MapFS{"proguard-rules.pro": {Data: []byte("not a rule\n")}},
	} {
		files, err := v.ResolveProguardFiles(context.Background(), fsys)
		require.NoError(t, err)
		assert.Empty(t, files)
	}
}

func TestResolveProguardFilesUnknownDefault(t *testing.T) {
	m := newModule()
	m.BuildTypes[1].ProguardFiles = []balrain.ProguardFile{{Name: "proguard-nope.txt", Default: true}}

	v, err := m.Variant(balrain.BuildTypeRelease)
	require.NoError(t, err)

	_, err = v.ResolveProguardFiles(context.Background(), fstest.MapFS{})
	assert.Error(t, err)
}

type openCountFS struct {
	fs.FS
	opened []string
}

func (o *openCountFS) Open(name string) (fs.File, error) {
	o.opened = append(o.opened, name)
	return o.FS.Open(name)
}

func TestResolveProguardFilesUnknownDefaultReadsNothing(t *testing.T) {
	m := newModule()
	m.BuildTypes[1].ProguardFiles = []balrain.ProguardFile{
		{Name: "proguard-rules.pro"},
		{Name: "proguard-nope.txt", Default: true},
	}

	v, err := m.Variant(balrain.BuildTypeRelease)
	require.NoError(t, err)

	fsys := &openCountFS{FS: fstest.MapFS{
		"proguard-rules.pro": {Data: []byte("-keep class com.example.** { *; }\n")},
	}}

	_, err = v.ResolveProguardFiles(context.Background(), fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proguard-nope.txt")
	assert.Empty(t, fsys.opened)
}

func TestResolveProguardFilesCanceled(t *testing.T) {
	v, err := newModule().Variant(balrain.BuildTypeRelease)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = v.ResolveProguardFiles(ctx, fstest.MapFS{
		"proguard-rules.pro": {Data: []byte("-dontwarn io.flutter.**\n")},
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveProguardFilesSyntaxError(t *testing.T) {
	v, err := newModule().Variant(balrain.BuildTypeRelease)
	require.NoError(t, err)

	_, err = v.ResolveProguardFiles(context.Background(), fstest.MapFS{
		"proguard-rules.pro": {Data: []byte("-frobnicate\n")},
	})
	require.Error(t, err)

	synerr := &proguard.SyntaxError{}
	assert.True(t, errors.As(err, &synerr))
}
