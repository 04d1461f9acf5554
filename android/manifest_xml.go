package android

import (
	"encoding/xml"
	"strconv"
)

const (
	AndroidManifestName = "AndroidManifest.xml"
	// NamespaceAndroid is the namespace of android:* attributes.
	NamespaceAndroid = "http://schemas.android.com/apk/res/android"
)

// Manifest is the part of a decoded AndroidManifest.xml
// that reflects the module's build configuration.
type Manifest struct {
	XMLName        xml.Name                 `xml:"manifest"`
	UsesSDK        *ManifestUsesSDK         `xml:"uses-sdk"`
	UsesPermission []ManifestUsesPermission `xml:"uses-permission"`
	Application    ManifestApplication      `xml:"application"`
	Attrs          []xml.Attr               `xml:",any,attr"`
}

// Package is the application ID the .apk was built with.
func (m *Manifest) Package() string {
	value, _ := attr(m.Attrs, "", "package")
	return value
}

func (m *Manifest) VersionCode() (int, bool) {
	return intAttr(m.Attrs, "versionCode")
}

func (m *Manifest) VersionName() (string, bool) {
	return attr(m.Attrs, NamespaceAndroid, "versionName")
}

func (m *Manifest) MinSDKVersion() (int, bool) {
	if m.UsesSDK == nil {
		return 0, false
	}

	return intAttr(m.UsesSDK.Attrs, "minSdkVersion")
}

func (m *Manifest) TargetSDKVersion() (int, bool) {
	if m.UsesSDK == nil {
		return 0, false
	}

	return intAttr(m.UsesSDK.Attrs, "targetSdkVersion")
}

type ManifestUsesSDK struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

type ManifestUsesPermission struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

func (p ManifestUsesPermission) Name() string {
	value, _ := attr(p.Attrs, NamespaceAndroid, "name")
	return value
}

type ManifestApplication struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// Debuggable reports the android:debuggable flag,
// which AGP sets only on debuggable build types.
func (a ManifestApplication) Debuggable() bool {
	value, _ := attr(a.Attrs, NamespaceAndroid, "debuggable")
	debuggable, _ := strconv.ParseBool(value)
	return debuggable
}

func attr(attrs []xml.Attr, space, local string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value, true
		}
	}

	return "", false
}

func intAttr(attrs []xml.Attr, local string) (int, bool) {
	value, ok := attr(attrs, NamespaceAndroid, local)
	if !ok {
		return 0, false
	}

	i, err := strconv.Atoi(value)
	return i, err == nil
}
