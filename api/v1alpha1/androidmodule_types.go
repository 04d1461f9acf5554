package v1alpha1

import (
	"strings"

	"github.com/google/uuid"
	"github.com/yeseul01458-spec/BALRAIN"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
)

const (
	KindAndroidModule = "AndroidModule"
)

const (
	PhasePassed = "Passed"
	PhaseFailed = "Failed"
)

const (
	ConditionTypeDecoded  = "Decoded"
	ConditionTypeValid    = "Valid"
	ConditionTypeVerified = "Verified"
)

// ConditionTypeResolved is the condition type reporting whether
// the variant called name resolved, e.g. ReleaseResolved.
func ConditionTypeResolved(name string) string {
	if name == "" {
		return "Resolved"
	}

	return strings.ToUpper(name[:1]) + name[1:] + "Resolved"
}

// AndroidModuleSpec is the checked build configuration.
type AndroidModuleSpec struct {
	// BuildFile is the path of the build script the Module was decoded from.
	BuildFile string `json:"buildFile"`
	// Pubspec is the path of the pubspec.yaml references were resolved against.
	Pubspec        string `json:"pubspec,omitempty"`
	balrain.Module `json:",inline"`
}

type ProguardFileStatus struct {
	Name    string `json:"name"`
	Default bool   `json:"default,omitempty"`
	Digest  string `json:"digest,omitempty"`
	Rules   int    `json:"rules,omitempty"`
	Keeps   int    `json:"keeps,omitempty"`
}

// VariantStatus is a build type as resolved by the check.
type VariantStatus struct {
	Name            string               `json:"name"`
	Phase           string               `json:"phase"`
	ApplicationID   string               `json:"applicationId,omitempty"`
	Debuggable      bool                 `json:"debuggable"`
	MinifyEnabled   bool                 `json:"minifyEnabled"`
	ShrinkResources bool                 `json:"shrinkResources"`
	ProguardFiles   []ProguardFileStatus `json:"proguardFiles,omitempty"`
	Message         string               `json:"message,omitempty"`
}

// APKStatus is what a built .apk was observed to declare.
type APKStatus struct {
	Name                   string `json:"name"`
	Variant                string `json:"variant"`
	Phase                  string `json:"phase"`
	Package                string `json:"package,omitempty"`
	VersionCode            int    `json:"versionCode,omitempty"`
	VersionName            string `json:"versionName,omitempty"`
	MinSDK                 int    `json:"minSdk,omitempty"`
	TargetSDK              int    `json:"targetSdk,omitempty"`
	Debuggable             bool   `json:"debuggable"`
	SHA256CertFingerprints string `json:"sha256CertFingerprints,omitempty"`
	DebugSigned            bool   `json:"debugSigned,omitempty"`
}

// AndroidModuleStatus is the outcome of checking an AndroidModule.
type AndroidModuleStatus struct {
	Phase      string             `json:"phase"`
	Conditions []metav1.Condition `json:"conditions,omitempty"`
	// Digest is the digest of the build script.
	Digest       string          `json:"digest,omitempty"`
	Variants     []VariantStatus `json:"variants,omitempty"`
	APKs         []APKStatus     `json:"apks,omitempty"`
	Unrecognized []string        `json:"unrecognized,omitempty"`
}

// AndroidModule is the report of checking the build
// configuration of an Android application module.
type AndroidModule struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   AndroidModuleSpec   `json:"spec,omitempty"`
	Status AndroidModuleStatus `json:"status,omitempty"`
}

// NewAndroidModule returns an empty report named name with a fresh UID.
func NewAndroidModule(name string) *AndroidModule {
	return &AndroidModule{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       KindAndroidModule,
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			UID:               types.UID(uuid.NewString()),
			CreationTimestamp: metav1.Now(),
		},
	}
}

func (a *AndroidModule) Passed() bool {
	return a.Status.Phase == PhasePassed
}

// Variant returns the status of the variant called name.
func (a *AndroidModule) Variant(name string) (*VariantStatus, bool) {
	for i := range a.Status.Variants {
		if a.Status.Variants[i].Name == name {
			return &a.Status.Variants[i], true
		}
	}

	return nil, false
}
