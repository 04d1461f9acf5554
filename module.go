package balrain

import (
	"strings"

	xslice "github.com/frantjc/x/slice"
)

const (
	PluginAndroidApplication = "com.android.application"
	PluginKotlinAndroid      = "org.jetbrains.kotlin.android"
	PluginFlutter            = "dev.flutter.flutter-gradle-plugin"
)

const (
	BuildTypeDebug   = "debug"
	BuildTypeRelease = "release"
)

// Module is the build configuration of an Android
// application module, i.e. android/app/build.gradle.kts.
type Module struct {
	Imports        []string       `json:"imports,omitempty"`
	Plugins        []string       `json:"plugins,omitempty"`
	Locals         []Local        `json:"locals,omitempty"`
	Namespace      string         `json:"namespace,omitempty"`
	CompileSDK     int            `json:"compileSdk,omitempty"`
	NDKVersion     string         `json:"ndkVersion,omitempty"`
	DefaultConfig  DefaultConfig  `json:"defaultConfig"`
	BuildTypes     []BuildType    `json:"buildTypes,omitempty"`
	CompileOptions CompileOptions `json:"compileOptions"`
	KotlinOptions  KotlinOptions  `json:"kotlinOptions,omitempty"`
	JVMToolchain   int            `json:"jvmToolchain,omitempty"`
	FlutterSource  string         `json:"flutterSource,omitempty"`
	Dependencies   []Dependency   `json:"dependencies,omitempty"`
	// References maps a property path such as "android.defaultConfig.versionCode"
	// to the expression it was read from, e.g. "flutter.versionCode".
	References map[string]string `json:"references,omitempty"`
}

// Local is a top-level val or var with a literal value, which
// other properties may reference by name. Value is the literal as
// written, e.g. `"-balrain"` or `7`.
type Local struct {
	Name    string `json:"name"`
	Mutable bool   `json:"mutable,omitempty"`
	Value   string `json:"value"`
}

type DefaultConfig struct {
	ApplicationID string `json:"applicationId,omitempty"`
	MinSDK        int    `json:"minSdk,omitempty"`
	TargetSDK     int    `json:"targetSdk,omitempty"`
	VersionCode   int    `json:"versionCode,omitempty"`
	VersionName   string `json:"versionName,omitempty"`
}

type BuildType struct {
	Name            string         `json:"name"`
	InitWith        string         `json:"initWith,omitempty"`
	MinifyEnabled   bool           `json:"minifyEnabled"`
	ShrinkResources bool           `json:"shrinkResources"`
	Debuggable      *bool          `json:"debuggable,omitempty"`
	SigningConfig   string         `json:"signingConfig,omitempty"`
	ProguardFiles   []ProguardFile `json:"proguardFiles,omitempty"`
}

// IsDebuggable returns the explicit debuggable flag, falling
// back to the Android Gradle plugin's default for the name.
func (b BuildType) IsDebuggable() bool {
	if b.Debuggable != nil {
		return *b.Debuggable
	}

	return b.Name == BuildTypeDebug
}

// ProguardFile is a shrink-rule file reference. Default files are
// resolved from the SDK via getDefaultProguardFile, others are
// relative to the module directory.
type ProguardFile struct {
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
}

type CompileOptions struct {
	SourceCompatibility string `json:"sourceCompatibility,omitempty"`
	TargetCompatibility string `json:"targetCompatibility,omitempty"`
}

// KotlinOptions are declared in android { kotlinOptions { } } or,
// when CompilerOptions is set, in kotlin { compilerOptions { } }.
type KotlinOptions struct {
	JVMTarget       string `json:"jvmTarget,omitempty"`
	CompilerOptions bool   `json:"compilerOptions,omitempty"`
}

type Dependency struct {
	Configuration string `json:"configuration"`
	Notation      string `json:"notation"`
}

func (m *Module) HasPlugin(id string) bool {
	return xslice.Includes(m.Plugins, id)
}

// BuildType returns the declared build type called name. debug and release
// always exist; when undeclared they carry the Android Gradle plugin defaults.
func (m *Module) BuildType(name string) (BuildType, bool) {
	for _, bt := range m.BuildTypes {
		if bt.Name == name {
			return bt, true
		}
	}

	switch name {
	case BuildTypeDebug, BuildTypeRelease:
		return BuildType{Name: name}, true
	}

	return BuildType{}, false
}

// BuildTypeNames returns debug, release and then any
// custom build types in declaration order.
func (m *Module) BuildTypeNames() []string {
	names := []string{BuildTypeDebug, BuildTypeRelease}

	for _, bt := range m.BuildTypes {
		if !xslice.Includes(names, bt.Name) {
			names = append(names, bt.Name)
		}
	}

	return names
}

// SetBuildType replaces the build type with the same name or appends it.
func (m *Module) SetBuildType(bt BuildType) {
	for i := range m.BuildTypes {
		if m.BuildTypes[i].Name == bt.Name {
			m.BuildTypes[i] = bt
			return
		}
	}

	m.BuildTypes = append(m.BuildTypes, bt)
}

// SetLocal declares l, replacing an earlier declaration of the same name.
func (m *Module) SetLocal(l Local) {
	for i, local := range m.Locals {
		if local.Name == l.Name {
			m.Locals[i] = l
			return
		}
	}

	m.Locals = append(m.Locals, l)
}

// SetReference records that the property at path was read from expr.
func (m *Module) SetReference(path, expr string) {
	if m.References == nil {
		m.References = map[string]string{}
	}

	m.References[path] = expr
}

// ClearReference forgets the expression the property at path was read from.
func (m *Module) ClearReference(path string) {
	delete(m.References, path)
}

// Reference returns the expression the property at path was read from.
func (m *Module) Reference(path string) (string, bool) {
	expr, ok := m.References[path]
	return expr, ok
}

// NormalizeJavaVersion converts the spellings Gradle accepts for a
// Java version, e.g. JavaVersion.VERSION_1_8, "8" or VERSION_17,
// into "1.8" or "17".
func NormalizeJavaVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "JavaVersion.")
	v = strings.TrimPrefix(v, "VERSION_")
	v = strings.ReplaceAll(v, "_", ".")

	switch v {
	case "6", "7", "8":
		return "1." + v
	}

	return v
}
