package command

import (
	"context"

	xslice "github.com/frantjc/x/slice"
	"github.com/yeseul01458-spec/BALRAIN"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainblob"
	"gocloud.dev/blob"
)

// storeReport writes report to the bucket at urlstr. Packages verified
// against the same build script before are kept in the stored report.
func storeReport(ctx context.Context, urlstr string, report *balrainv1alpha1.AndroidModule) (string, error) {
	log := balrain.LoggerFrom(ctx)

	log.V(1).Info("opening bucket " + urlstr)
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return "", err
	}
	defer bucket.Close()

	key, err := balrainblob.ReportKeyFor(report)
	if err != nil {
		return "", err
	}

	prev, ok, err := balrainblob.ReadReport(ctx, bucket, key)
	if err != nil {
		return "", err
	} else if ok {
		for _, apk := range prev.Status.APKs {
			if !hasAPK(report, apk.Name) {
				report.Status.APKs = append(report.Status.APKs, apk)
			}
		}
	}

	return balrainblob.WriteReport(ctx, bucket, report)
}

func hasAPK(report *balrainv1alpha1.AndroidModule, name string) bool {
	return xslice.Some(report.Status.APKs, func(apk balrainv1alpha1.APKStatus, _ int) bool {
		return apk.Name == name
	})
}
