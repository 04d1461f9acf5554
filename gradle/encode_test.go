package gradle_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeseul01458-spec/BALRAIN"
	"github.com/yeseul01458-spec/BALRAIN/gradle"
)

const canonicalBuildGradleKts = `plugins {
    id("com.android.application")
    id("org.jetbrains.kotlin.android")
    id("dev.flutter.flutter-gradle-plugin")
}

android {
    namespace = "com.example.balrain"
    compileSdk = 34

    defaultConfig {
        applicationId = "com.example.balrain"
        minSdk = 21
        targetSdk = 34
        versionCode = 1
        versionName = "1.0"
    }

    buildTypes {
        debug {
            isMinifyEnabled = false
            isShrinkResources = false
        }
        release {
            isMinifyEnabled = true
            isShrinkResources = true
            proguardFiles(
                getDefaultProguardFile("proguard-android-optimize.txt"),
                "proguard-rules.pro"
            )
        }
    }

    compileOptions {
        sourceCompatibility = JavaVersion.VERSION_17
        targetCompatibility = JavaVersion.VERSION_17
    }
}

kotlin {
    jvmToolchain(17)
}

dependencies {
}
`

func TestEncode(t *testing.T) {
	m := &balrain.Module{}
	require.NoError(t, gradle.NewDecoder(bytes.NewReader(buildGradleKts)).Decode(m))

	buf := new(bytes.Buffer)
	require.NoError(t, gradle.NewEncoder(buf).Encode(m))
	assert.Equal(t, canonicalBuildGradleKts, buf.String())
}

func TestEncodeRoundTrip(t *testing.T) {
	for name, src := range map[string][]byte{
		"build.gradle.kts":   buildGradleKts,
		"flutter.gradle.kts": flutterGradleKts,
	} {
		t.Run(name, func(t *testing.T) {
			expected := &balrain.Module{}
			require.NoError(t, gradle.NewDecoder(bytes.NewReader(src), gradle.WithResolver(flutterProperties)).Decode(expected))

			buf := new(bytes.Buffer)
			require.NoError(t, gradle.NewEncoder(buf).Encode(expected))

			actual := &balrain.Module{}
			dec := gradle.NewDecoder(bytes.NewReader(buf.Bytes()), gradle.WithResolver(flutterProperties))
			require.NoError(t, dec.Decode(actual), buf.String())
			assert.Empty(t, dec.Unrecognized())
			assert.Equal(t, expected, actual)
		})
	}
}

func TestEncodeReferences(t *testing.T) {
	m := &balrain.Module{}
	require.NoError(t, gradle.NewDecoder(bytes.NewReader(flutterGradleKts), gradle.WithResolver(flutterProperties)).Decode(m))

	buf := new(bytes.Buffer)
	require.NoError(t, gradle.NewEncoder(buf).Encode(m))

	out := buf.String()
	assert.Contains(t, out, "    compileSdk = flutter.compileSdkVersion\n")
	assert.Contains(t, out, "        versionCode = flutter.versionCode\n")
	assert.Contains(t, out, "        jvmTarget = JavaVersion.VERSION_11.toString()\n")
	assert.Contains(t, out, "        create(\"staging\") {\n            initWith(getByName(\"release\"))\n")
	assert.Contains(t, out, "            isDebuggable = false\n")
	assert.Contains(t, out, "    implementation(platform(\"com.google.firebase:firebase-bom:33.1.0\"))\n")
	assert.Contains(t, out, "    coreLibraryDesugaring(\"com.android.tools:desugar_jdk_libs:2.0.4\")\n")
	assert.NotContains(t, out, "multiDexEnabled")
	assert.True(t, strings.HasPrefix(out, "import java.util.Properties\nimport java.io.FileInputStream\n\nplugins {\n"), out)
	assert.Contains(t, out, "}\n\nval appVersionSuffix = \"-balrain\"\n\nandroid {\n")
}

func TestEncodeLocals(t *testing.T) {
	src := `plugins {
    id("com.android.application")
}

val code = 7
var name = "1.0"

android {
    defaultConfig {
        versionCode = code
        versionName = name
    }
}
`

	expected := &balrain.Module{}
	dec := gradle.NewDecoder(strings.NewReader(src))
	require.NoError(t, dec.Decode(expected))
	assert.Empty(t, dec.Unrecognized())

	buf := new(bytes.Buffer)
	require.NoError(t, gradle.NewEncoder(buf).Encode(expected))

	out := buf.String()
	assert.Contains(t, out, "val code = 7\nvar name = \"1.0\"\n")
	assert.Contains(t, out, "        versionCode = code\n")

	actual := &balrain.Module{}
	require.NoError(t, gradle.NewDecoder(strings.NewReader(out)).Decode(actual), out)
	assert.Equal(t, expected, actual)
	assert.Equal(t, 7, actual.DefaultConfig.VersionCode)
	assert.Equal(t, "1.0", actual.DefaultConfig.VersionName)
}

func TestEncodeCompilerOptions(t *testing.T) {
	src := `plugins {
    id("org.jetbrains.kotlin.android")
}

kotlin {
    compilerOptions {
        jvmTarget.set(JvmTarget.JVM_17)
    }
}
`

	expected := &balrain.Module{}
	require.NoError(t, gradle.NewDecoder(strings.NewReader(src)).Decode(expected))
	assert.True(t, expected.KotlinOptions.CompilerOptions)

	buf := new(bytes.Buffer)
	require.NoError(t, gradle.NewEncoder(buf).Encode(expected))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "import "+gradle.ImportJvmTarget+"\n\n"), out)
	assert.Contains(t, out, "kotlin {\n    compilerOptions {\n        jvmTarget.set(JvmTarget.JVM_17)\n    }\n}\n")
	assert.NotContains(t, out, "kotlinOptions")

	actual := &balrain.Module{}
	require.NoError(t, gradle.NewDecoder(strings.NewReader(out)).Decode(actual), out)
	assert.Equal(t, "17", actual.KotlinOptions.JVMTarget)
	assert.True(t, actual.KotlinOptions.CompilerOptions)
}
