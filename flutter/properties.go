package flutter

import (
	"github.com/yeseul01458-spec/BALRAIN/gradle"
)

// SDK levels and NDK version the Flutter tool
// writes into the flutter extension by default.
const (
	DefaultCompileSDKVersion = 34
	DefaultMinSDKVersion     = 21
	DefaultTargetSDKVersion  = 34
	DefaultNDKVersion        = "23.1.7779620"
)

// References the flutter extension exposes to the build script.
const (
	RefCompileSDKVersion = "flutter.compileSdkVersion"
	RefMinSDKVersion     = "flutter.minSdkVersion"
	RefTargetSDKVersion  = "flutter.targetSdkVersion"
	RefNDKVersion        = "flutter.ndkVersion"
	RefVersionCode       = "flutter.versionCode"
	RefVersionName       = "flutter.versionName"
)

// Properties are the values of the flutter extension
// that an Android module's build script may reference.
type Properties struct {
	CompileSDKVersion int
	MinSDKVersion     int
	TargetSDKVersion  int
	NDKVersion        string
	Version           Version
}

var _ gradle.Resolver = &Properties{}

// DefaultProperties returns the Properties of a project
// whose pubspec.yaml declares no version.
func DefaultProperties() *Properties {
	return &Properties{
		CompileSDKVersion: DefaultCompileSDKVersion,
		MinSDKVersion:     DefaultMinSDKVersion,
		TargetSDKVersion:  DefaultTargetSDKVersion,
		NDKVersion:        DefaultNDKVersion,
		Version:           Version{Name: DefaultVersionName, Code: DefaultVersionCode},
	}
}

// NewProperties returns the default Properties with
// the version taken from pubspec.
func NewProperties(pubspec *Pubspec) (*Properties, error) {
	props := DefaultProperties()

	if pubspec != nil {
		var err error
		if props.Version, err = ParseVersion(pubspec.Version); err != nil {
			return nil, err
		}
	}

	return props, nil
}

// Resolve implements gradle.Resolver.
func (p *Properties) Resolve(ref string) (any, bool) {
	switch ref {
	case RefCompileSDKVersion:
		return p.CompileSDKVersion, true
	case RefMinSDKVersion:
		return p.MinSDKVersion, true
	case RefTargetSDKVersion:
		return p.TargetSDKVersion, true
	case RefNDKVersion:
		return p.NDKVersion, true
	case RefVersionCode:
		return p.Version.Code, true
	case RefVersionName:
		return p.Version.Name, true
	}

	return nil, false
}
