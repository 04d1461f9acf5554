package checker

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeseul01458-spec/BALRAIN"
	"github.com/yeseul01458-spec/BALRAIN/android"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/apktool"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"github.com/yeseul01458-spec/BALRAIN/keytool"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ArtifactDecoder reads what a built package declares. It is
// implemented by *android.APKDecoder.
type ArtifactDecoder interface {
	Manifest(context.Context) (*android.Manifest, error)
	Metadata(context.Context) (*apktool.Metadata, error)
	Certificate(context.Context) (*keytool.Certificate, error)
}

var _ ArtifactDecoder = &android.APKDecoder{}

// Verify compares the package dec decodes with the variant called variant
// of report's module, records it in report's status and sets the Verified
// condition. Mismatches are returned joined together.
func Verify(ctx context.Context, report *balrainv1alpha1.AndroidModule, variant, name string, dec ArtifactDecoder) error {
	log := balrain.LoggerFrom(ctx).WithValues("apk", name, "variant", variant)

	v, err := report.Spec.Variant(variant)
	if err != nil {
		return balrainerr.ExitCodeError(err, balrainerr.ExitCodeUsage)
	}

	status, err := observe(ctx, dec)
	if err != nil {
		return err
	}
	status.Name = name
	status.Variant = v.Name

	errs := []error{}

	if status.Package != v.ApplicationID {
		errs = append(errs, fmt.Errorf("package %s, expected %s", status.Package, v.ApplicationID))
	}

	if status.VersionCode != v.VersionCode {
		errs = append(errs, fmt.Errorf("versionCode %d, expected %d", status.VersionCode, v.VersionCode))
	}

	if status.VersionName != v.VersionName {
		errs = append(errs, fmt.Errorf("versionName %s, expected %s", status.VersionName, v.VersionName))
	}

	if status.MinSDK != v.MinSDK {
		errs = append(errs, fmt.Errorf("minSdk %d, expected %d", status.MinSDK, v.MinSDK))
	}

	if status.TargetSDK != v.TargetSDK {
		errs = append(errs, fmt.Errorf("targetSdk %d, expected %d", status.TargetSDK, v.TargetSDK))
	}

	if status.Debuggable != v.Debuggable {
		errs = append(errs, fmt.Errorf("debuggable %t, expected %t", status.Debuggable, v.Debuggable))
	}

	if status.DebugSigned && !v.Debuggable {
		errs = append(errs, fmt.Errorf("%s build signed with the debug key", v.Name))
	}

	err = errors.Join(errs...)

	condition := metav1.Condition{
		Type:   balrainv1alpha1.ConditionTypeVerified,
		Status: metav1.ConditionTrue,
		Reason: "Verified",
	}
	status.Phase = balrainv1alpha1.PhasePassed

	if err != nil {
		log.V(1).Info("mismatch", "err", err.Error())
		condition.Status = metav1.ConditionFalse
		condition.Reason = "Mismatch"
		condition.Message = err.Error()
		status.Phase = balrainv1alpha1.PhaseFailed
	}

	report.Status.APKs = append(report.Status.APKs, *status)
	report.SetCondition(condition)
	report.Status.Phase = phase(report)

	return balrainerr.ExitCodeError(err, balrainerr.ExitCodeFailure)
}

// observe collects what the package declares. apktool moves the version
// and SDK levels out of the manifest into its metadata, so that is
// preferred, falling back to the manifest.
func observe(ctx context.Context, dec ArtifactDecoder) (*balrainv1alpha1.APKStatus, error) {
	manifest, err := dec.Manifest(ctx)
	if err != nil {
		return nil, err
	}

	metadata, err := dec.Metadata(ctx)
	if err != nil {
		return nil, err
	}

	cert, err := dec.Certificate(ctx)
	if err != nil {
		return nil, err
	}

	status := &balrainv1alpha1.APKStatus{
		Package:                manifest.Package(),
		Debuggable:             manifest.Application.Debuggable(),
		SHA256CertFingerprints: cert.SHA256,
		DebugSigned:            cert.IsDebug(),
	}

	if vi := metadata.VersionInfo; vi != nil {
		status.VersionCode = int(vi.VersionCode)
		status.VersionName = vi.VersionName
	} else {
		status.VersionCode, _ = manifest.VersionCode()
		status.VersionName, _ = manifest.VersionName()
	}

	if si := metadata.SDKInfo; si != nil {
		status.MinSDK = int(si.MinSDKVersion)
		status.TargetSDK = int(si.TargetSDKVersion)
	} else {
		status.MinSDK, _ = manifest.MinSDKVersion()
		status.TargetSDK, _ = manifest.TargetSDKVersion()
	}

	return status, nil
}
