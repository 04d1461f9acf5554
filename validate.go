package balrain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainregexp"
	"github.com/yeseul01458-spec/BALRAIN/proguard"
)

const (
	// DefaultMinSDKFloor is the oldest API level Flutter supports.
	DefaultMinSDKFloor = 21
	// MaxVersionCode is the largest versionCode Google Play accepts.
	MaxVersionCode = 2100000000
)

type ValidateOpts struct {
	MinSDKFloor int
}

type ValidateOpt func(*ValidateOpts)

func WithMinSDKFloor(floor int) ValidateOpt {
	return func(o *ValidateOpts) {
		o.MinSDKFloor = floor
	}
}

// Validate checks m and returns every violation joined together.
func Validate(m *Module, opts ...ValidateOpt) error {
	o := &ValidateOpts{MinSDKFloor: DefaultMinSDKFloor}

	for _, opt := range opts {
		opt(o)
	}

	errs := []error{}
	errs = append(errs, validatePlugins(m)...)
	errs = append(errs, validateIdentity(m)...)
	errs = append(errs, validateSDK(m, o)...)
	errs = append(errs, validateVersion(m)...)
	errs = append(errs, validateBuildTypes(m)...)
	errs = append(errs, validateCompiler(m)...)

	return balrainerr.ExitCodeError(errors.Join(errs...), balrainerr.ExitCodeFailure)
}

func validatePlugins(m *Module) []error {
	errs := []error{}

	if !m.HasPlugin(PluginAndroidApplication) {
		errs = append(errs, fmt.Errorf("missing plugin %s", PluginAndroidApplication))
	}

	for _, id := range m.Plugins {
		if !balrainregexp.IsPluginID(id) {
			errs = append(errs, fmt.Errorf("invalid plugin ID %s", id))
		}
	}

	return errs
}

func validateIdentity(m *Module) []error {
	errs := []error{}

	if m.Namespace == "" {
		errs = append(errs, fmt.Errorf("missing namespace"))
	} else if !balrainregexp.IsApplicationID(m.Namespace) {
		errs = append(errs, fmt.Errorf("invalid namespace %s", m.Namespace))
	}

	if id := m.DefaultConfig.ApplicationID; id == "" {
		errs = append(errs, fmt.Errorf("missing applicationId"))
	} else if !balrainregexp.IsApplicationID(id) {
		errs = append(errs, fmt.Errorf("invalid applicationId %s", id))
	}

	return errs
}

func validateSDK(m *Module, o *ValidateOpts) []error {
	var (
		errs = []error{}
		dc   = m.DefaultConfig
	)

	for _, sdk := range []struct {
		name  string
		level int
	}{
		{"compileSdk", m.CompileSDK},
		{"minSdk", dc.MinSDK},
		{"targetSdk", dc.TargetSDK},
	} {
		if sdk.level < 0 {
			errs = append(errs, fmt.Errorf("%s %d is negative", sdk.name, sdk.level))
		} else if sdk.level == 0 {
			errs = append(errs, fmt.Errorf("missing %s", sdk.name))
		}
	}

	if dc.MinSDK > 0 && dc.MinSDK < o.MinSDKFloor {
		errs = append(errs, fmt.Errorf("minSdk %d is below the supported floor %d", dc.MinSDK, o.MinSDKFloor))
	}

	if dc.MinSDK > 0 && dc.TargetSDK > 0 && dc.MinSDK > dc.TargetSDK {
		errs = append(errs, fmt.Errorf("minSdk %d is greater than targetSdk %d", dc.MinSDK, dc.TargetSDK))
	}

	if dc.TargetSDK > 0 && m.CompileSDK > 0 && dc.TargetSDK > m.CompileSDK {
		errs = append(errs, fmt.Errorf("targetSdk %d is greater than compileSdk %d", dc.TargetSDK, m.CompileSDK))
	}

	return errs
}

func validateVersion(m *Module) []error {
	var (
		errs = []error{}
		dc   = m.DefaultConfig
	)

	if dc.VersionCode <= 0 {
		errs = append(errs, fmt.Errorf("versionCode %d is not positive", dc.VersionCode))
	} else if dc.VersionCode > MaxVersionCode {
		errs = append(errs, fmt.Errorf("versionCode %d exceeds %d", dc.VersionCode, MaxVersionCode))
	}

	if strings.TrimSpace(dc.VersionName) == "" {
		errs = append(errs, fmt.Errorf("missing versionName"))
	}

	return errs
}

func validateBuildTypes(m *Module) []error {
	errs := []error{}

	debug, _ := m.BuildType(BuildTypeDebug)
	if debug.MinifyEnabled {
		errs = append(errs, fmt.Errorf("debug build type must not enable minification"))
	}
	if debug.ShrinkResources {
		errs = append(errs, fmt.Errorf("debug build type must not enable resource shrinking"))
	}

	release, _ := m.BuildType(BuildTypeRelease)
	if !release.MinifyEnabled {
		errs = append(errs, fmt.Errorf("release build type must enable minification"))
	}
	if !release.ShrinkResources {
		errs = append(errs, fmt.Errorf("release build type must enable resource shrinking"))
	}
	if len(release.ProguardFiles) == 0 {
		errs = append(errs, fmt.Errorf("release build type must declare shrink-rule files"))
	}
	if release.IsDebuggable() {
		errs = append(errs, fmt.Errorf("release build type must not be debuggable"))
	}
	if release.SigningConfig == BuildTypeDebug {
		errs = append(errs, fmt.Errorf("release build type must not be signed with the debug signing config"))
	}

	for _, name := range m.BuildTypeNames() {
		bt, _ := m.BuildType(name)

		if bt.ShrinkResources && !bt.MinifyEnabled {
			errs = append(errs, fmt.Errorf("%s build type enables resource shrinking without minification", name))
		}

		for _, pf := range bt.ProguardFiles {
			if pf.Default && !proguard.IsDefault(pf.Name) {
				errs = append(errs, fmt.Errorf("%s build type references unknown default shrink-rule file %s", name, pf.Name))
			} else if !pf.Default && !balrainregexp.IsProguardFile(pf.Name) {
				errs = append(errs, fmt.Errorf("%s build type references invalid shrink-rule file %s", name, pf.Name))
			}
		}
	}

	return errs
}

func validateCompiler(m *Module) []error {
	var (
		errs   = []error{}
		source = m.CompileOptions.SourceCompatibility
		target = m.CompileOptions.TargetCompatibility
	)

	for _, v := range []struct {
		name    string
		version string
	}{
		{"sourceCompatibility", source},
		{"targetCompatibility", target},
		{"jvmTarget", m.KotlinOptions.JVMTarget},
	} {
		if v.version != "" && !balrainregexp.IsJavaVersion(v.version) {
			errs = append(errs, fmt.Errorf("invalid %s %s", v.name, v.version))
		}
	}

	if source != target {
		errs = append(errs, fmt.Errorf("sourceCompatibility %q does not match targetCompatibility %q", source, target))
	}

	if jvmTarget := m.KotlinOptions.JVMTarget; jvmTarget != "" && target != "" && jvmTarget != target {
		errs = append(errs, fmt.Errorf("kotlin jvmTarget %s does not match targetCompatibility %s", jvmTarget, target))
	}

	if m.JVMToolchain > 0 && target != "" {
		if toolchain := NormalizeJavaVersion(strconv.Itoa(m.JVMToolchain)); toolchain != target {
			errs = append(errs, fmt.Errorf("kotlin jvmToolchain %s does not match targetCompatibility %s", toolchain, target))
		}
	}

	return errs
}
