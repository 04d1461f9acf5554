// Package checker checks the build configuration of a Flutter
// project's Android application module and reports the outcome.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/opencontainers/go-digest"
	"github.com/yeseul01458-spec/BALRAIN"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/flutter"
	"github.com/yeseul01458-spec/BALRAIN/gradle"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	DefaultModuleDir = "android/app"
	DefaultBuildFile = "build.gradle.kts"
)

// Checker checks the module in ModuleDir of the project in FS.
type Checker struct {
	// FS is the Flutter project directory.
	FS fs.FS
	// ModuleDir is the Android application module, relative to FS.
	ModuleDir string
	// BuildFile is the build script, relative to ModuleDir.
	BuildFile string
	// Pubspec is the project manifest, relative to FS. A missing
	// pubspec.yaml leaves the flutter extension at its defaults.
	Pubspec     string
	MinSDKFloor int
}

func (c *Checker) moduleDir() string {
	if c.ModuleDir != "" {
		return c.ModuleDir
	}

	return DefaultModuleDir
}

// BuildFilePath is the path of the build script relative to FS.
func (c *Checker) BuildFilePath() string {
	if c.BuildFile != "" {
		return path.Join(c.moduleDir(), c.BuildFile)
	}

	return path.Join(c.moduleDir(), DefaultBuildFile)
}

func (c *Checker) pubspec() string {
	if c.Pubspec != "" {
		return c.Pubspec
	}

	return flutter.PubspecFilename
}

// Properties returns the flutter extension values
// the build script's references resolve to.
func (c *Checker) Properties(ctx context.Context) (*flutter.Properties, *flutter.Pubspec, error) {
	log := balrain.LoggerFrom(ctx)

	f, err := c.FS.Open(c.pubspec())
	if errors.Is(err, fs.ErrNotExist) {
		log.V(1).Info("no pubspec, using flutter defaults", "pubspec", c.pubspec())
		return flutter.DefaultProperties(), nil, nil
	} else if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	pubspec, err := flutter.ReadPubspec(f)
	if err != nil {
		return nil, nil, err
	}

	props, err := flutter.NewProperties(pubspec)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", c.pubspec(), err)
	}

	return props, pubspec, nil
}

// Decode reads the build script into a balrain.Module, returning the
// digest of the script and the statements that were not recognized.
func (c *Checker) Decode(ctx context.Context) (*balrain.Module, digest.Digest, []string, error) {
	b, err := fs.ReadFile(c.FS, c.BuildFilePath())
	if err != nil {
		return nil, "", nil, err
	}

	props, _, err := c.Properties(ctx)
	if err != nil {
		return nil, "", nil, err
	}

	var (
		m   = &balrain.Module{}
		dec = gradle.NewDecoder(bytes.NewReader(b), gradle.WithResolver(props))
	)

	if err := dec.Decode(m); err != nil {
		return nil, "", nil, fmt.Errorf("%s:%w", c.BuildFilePath(), err)
	}

	return m, digest.FromBytes(b), dec.Unrecognized(), nil
}

// Check decodes, validates and resolves every variant of the module.
// Failed checks are reported in the returned AndroidModule's status;
// the error is only non-nil when the project could not be read.
func (c *Checker) Check(ctx context.Context) (*balrainv1alpha1.AndroidModule, error) {
	log := balrain.LoggerFrom(ctx).WithValues("buildFile", c.BuildFilePath())

	b, err := fs.ReadFile(c.FS, c.BuildFilePath())
	if err != nil {
		return nil, err
	}

	props, pubspec, err := c.Properties(ctx)
	if err != nil {
		return nil, err
	}

	name := path.Base(c.moduleDir())
	if pubspec != nil {
		name = pubspec.Name
	}

	report := balrainv1alpha1.NewAndroidModule(name)
	report.Spec.BuildFile = c.BuildFilePath()
	if pubspec != nil {
		report.Spec.Pubspec = c.pubspec()
	}
	report.Status.Digest = digest.FromBytes(b).String()

	var (
		m   = &balrain.Module{}
		dec = gradle.NewDecoder(bytes.NewReader(b), gradle.WithResolver(props))
	)

	if err := dec.Decode(m); err != nil {
		log.Error(err, "decoding build file")
		report.SetCondition(metav1.Condition{
			Type:    balrainv1alpha1.ConditionTypeDecoded,
			Status:  metav1.ConditionFalse,
			Reason:  "DecodeFailed",
			Message: fmt.Sprintf("%s:%s", c.BuildFilePath(), err),
		})
		report.Status.Phase = balrainv1alpha1.PhaseFailed
		return report, nil
	}

	report.Spec.Module = *m
	report.Status.Unrecognized = dec.Unrecognized()
	report.SetCondition(metav1.Condition{
		Type:    balrainv1alpha1.ConditionTypeDecoded,
		Status:  metav1.ConditionTrue,
		Reason:  "Decoded",
		Message: fmt.Sprintf("%d unrecognized statements", len(report.Status.Unrecognized)),
	})

	var opts []balrain.ValidateOpt
	if c.MinSDKFloor > 0 {
		opts = append(opts, balrain.WithMinSDKFloor(c.MinSDKFloor))
	}

	if err := balrain.Validate(m, opts...); err != nil {
		log.V(1).Info("invalid", "err", err.Error())
		report.SetCondition(metav1.Condition{
			Type:    balrainv1alpha1.ConditionTypeValid,
			Status:  metav1.ConditionFalse,
			Reason:  "Invalid",
			Message: err.Error(),
		})
	} else {
		report.SetCondition(metav1.Condition{
			Type:   balrainv1alpha1.ConditionTypeValid,
			Status: metav1.ConditionTrue,
			Reason: "Valid",
		})
	}

	variants, err := m.Variants()
	if err != nil {
		return nil, err
	}

	moduleFS, err := fs.Sub(c.FS, c.moduleDir())
	if err != nil {
		return nil, err
	}

	for _, v := range variants {
		report.Status.Variants = append(report.Status.Variants, resolveVariant(ctx, report, v, moduleFS))
	}

	report.Status.Phase = phase(report)

	return report, nil
}

func resolveVariant(ctx context.Context, report *balrainv1alpha1.AndroidModule, v *balrain.Variant, moduleFS fs.FS) balrainv1alpha1.VariantStatus {
	status := balrainv1alpha1.VariantStatus{
		Name:            v.Name,
		Phase:           balrainv1alpha1.PhasePassed,
		ApplicationID:   v.ApplicationID,
		Debuggable:      v.Debuggable,
		MinifyEnabled:   v.MinifyEnabled,
		ShrinkResources: v.ShrinkResources,
	}
	condition := metav1.Condition{
		Type:   balrainv1alpha1.ConditionTypeResolved(v.Name),
		Status: metav1.ConditionTrue,
		Reason: "Resolved",
	}

	files, err := v.ResolveProguardFiles(ctx, moduleFS)
	if err != nil {
		status.Phase = balrainv1alpha1.PhaseFailed
		status.Message = err.Error()
		condition.Status = metav1.ConditionFalse
		condition.Reason = "ResolveFailed"
		condition.Message = err.Error()
	}

	for i, f := range files {
		pfs := balrainv1alpha1.ProguardFileStatus{
			Name:    f.Name,
			Default: v.ProguardFiles[i].Default,
		}

		if !pfs.Default {
			pfs.Digest = f.Digest.String()
			pfs.Rules = len(f.Rules)
			pfs.Keeps = f.Keeps()
		}

		status.ProguardFiles = append(status.ProguardFiles, pfs)
	}

	report.SetCondition(condition)

	return status
}

func phase(report *balrainv1alpha1.AndroidModule) string {
	for _, c := range report.Status.Conditions {
		if c.Status != metav1.ConditionTrue {
			return balrainv1alpha1.PhaseFailed
		}
	}

	return balrainv1alpha1.PhasePassed
}

// Err returns an error describing every failed condition of report, if any.
func Err(report *balrainv1alpha1.AndroidModule) error {
	errs := []error{}

	for _, c := range report.Status.Conditions {
		if c.Status != metav1.ConditionTrue {
			errs = append(errs, fmt.Errorf("%s: %s", c.Type, c.Message))
		}
	}

	return errors.Join(errs...)
}
