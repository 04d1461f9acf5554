package balrainblob

import (
	"context"

	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
	"sigs.k8s.io/yaml"
)

// ReadReport reads the report stored at key. The bool is false
// if there is none.
func ReadReport(ctx context.Context, bucket *blob.Bucket, key string) (*balrainv1alpha1.AndroidModule, bool, error) {
	b, err := bucket.ReadAll(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}

	report := &balrainv1alpha1.AndroidModule{}
	if err := yaml.Unmarshal(b, report); err != nil {
		return nil, false, err
	}

	return report, true, nil
}
