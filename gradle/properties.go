package gradle

// Property paths under which balrain.Module records
// the expression a value was read from.
const (
	PropNamespace           = "android.namespace"
	PropCompileSDK          = "android.compileSdk"
	PropNDKVersion          = "android.ndkVersion"
	PropApplicationID       = "android.defaultConfig.applicationId"
	PropMinSDK              = "android.defaultConfig.minSdk"
	PropTargetSDK           = "android.defaultConfig.targetSdk"
	PropVersionCode         = "android.defaultConfig.versionCode"
	PropVersionName         = "android.defaultConfig.versionName"
	PropSourceCompatibility = "android.compileOptions.sourceCompatibility"
	PropTargetCompatibility = "android.compileOptions.targetCompatibility"
	PropJVMTarget           = "android.kotlinOptions.jvmTarget"
	PropJVMToolchain        = "kotlin.jvmToolchain"
	PropFlutterSource       = "flutter.source"
)

// ImportJvmTarget is the import kotlin { compilerOptions { } }
// needs for JvmTarget constants.
const ImportJvmTarget = "org.jetbrains.kotlin.gradle.dsl.JvmTarget"

// Resolver resolves references such as flutter.versionCode
// to an int or string value.
type Resolver interface {
	Resolve(ref string) (any, bool)
}

// MapResolver is a Resolver backed by a map.
type MapResolver map[string]any

func (r MapResolver) Resolve(ref string) (any, bool) {
	v, ok := r[ref]
	return v, ok
}
