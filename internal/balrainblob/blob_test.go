package balrainblob_test

import (
	"context"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeseul01458-spec/BALRAIN"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainblob"
	"gocloud.dev/blob/memblob"
)

func TestWriteReport(t *testing.T) {
	var (
		ctx    = context.Background()
		bucket = memblob.OpenBucket(nil)
		dgst   = digest.FromString("android { }")
		report = balrainv1alpha1.NewAndroidModule("balrain")
	)
	defer bucket.Close()

	report.Spec.BuildFile = "android/app/build.gradle.kts"
	report.Spec.Module = balrain.Module{
		Namespace:     "com.example.balrain",
		DefaultConfig: balrain.DefaultConfig{ApplicationID: "com.example.balrain", VersionCode: 1},
	}
	report.Status.Phase = balrainv1alpha1.PhasePassed
	report.Status.Digest = dgst.String()

	key, err := balrainblob.WriteReport(ctx, bucket, report)
	require.NoError(t, err)
	assert.Equal(t, "com.example.balrain/"+dgst.Encoded()+"/report.yaml", key)
	assert.Equal(t, balrainblob.ReportKey("com.example.balrain", dgst), key)

	attrs, err := bucket.Attributes(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "application/yaml", attrs.ContentType)

	read, ok, err := balrainblob.ReadReport(ctx, bucket, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, report.UID, read.UID)
	assert.Equal(t, report.Spec.Module, read.Spec.Module)
	assert.Equal(t, report.Spec.BuildFile, read.Spec.BuildFile)
	assert.Equal(t, report.Status.Phase, read.Status.Phase)
}

func TestWriteReportNoDigest(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, err := balrainblob.WriteReport(context.Background(), bucket, balrainv1alpha1.NewAndroidModule("balrain"))
	assert.Error(t, err)
}

func TestReadReportNotFound(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	defer bucket.Close()

	_, ok, err := balrainblob.ReadReport(context.Background(), bucket, "com.example.balrain/missing/report.yaml")
	require.NoError(t, err)
	assert.False(t, ok)
}
