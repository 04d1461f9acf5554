package balrainblob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"gocloud.dev/blob"
	"sigs.k8s.io/yaml"
)

func Copy(ctx context.Context, bucket *blob.Bucket, key string, r io.Reader, opts *blob.WriterOptions) error {
	w, err := bucket.NewWriter(ctx, key, opts)
	if err != nil {
		return err
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}

	return w.Close()
}

// WriteReport stores report as YAML under ReportKeyFor and returns the key.
func WriteReport(ctx context.Context, bucket *blob.Bucket, report *balrainv1alpha1.AndroidModule) (string, error) {
	key, err := ReportKeyFor(report)
	if err != nil {
		return "", err
	}

	b, err := yaml.Marshal(report)
	if err != nil {
		return "", err
	}

	if err := Copy(ctx, bucket, key, bytes.NewReader(b), &blob.WriterOptions{ContentType: "application/yaml"}); err != nil {
		return "", fmt.Errorf("write %s: %w", key, err)
	}

	return key, nil
}
