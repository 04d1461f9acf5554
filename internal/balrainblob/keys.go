package balrainblob

import (
	"fmt"
	"path"

	"github.com/opencontainers/go-digest"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
)

// ReportKey is where the report for the build script with digest
// dgst of the application applicationID is stored.
func ReportKey(applicationID string, dgst digest.Digest) string {
	return path.Join(applicationID, dgst.Encoded(), "report.yaml")
}

// ReportKeyFor returns the ReportKey of report. Reports of modules
// that could not be decoded are keyed by the report's name.
func ReportKeyFor(report *balrainv1alpha1.AndroidModule) (string, error) {
	dgst, err := digest.Parse(report.Status.Digest)
	if err != nil {
		return "", fmt.Errorf("report digest: %w", err)
	}

	applicationID := report.Spec.DefaultConfig.ApplicationID
	if applicationID == "" {
		applicationID = report.Name
	}

	return ReportKey(applicationID, dgst), nil
}
