package apktool

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MetadataFilename is written by `apktool decode` next to the decoded manifest.
const MetadataFilename = "apktool.yml"

// Int is an integer that apktool may write quoted, e.g. minSdkVersion: '21'.
type Int int

func (i *Int) UnmarshalYAML(value *yaml.Node) error {
	n, err := strconv.Atoi(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %q is not an integer", value.Line, value.Value)
	}

	*i = Int(n)
	return nil
}

type SDKInfo struct {
	MinSDKVersion    Int `yaml:"minSdkVersion"`
	TargetSDKVersion Int `yaml:"targetSdkVersion"`
}

type VersionInfo struct {
	VersionCode Int    `yaml:"versionCode"`
	VersionName string `yaml:"versionName"`
}

// Metadata is the part of apktool.yml describing the decoded .apk.
// apktool moves the SDK levels and version out of AndroidManifest.xml into here.
type Metadata struct {
	Version       string         `yaml:"version,omitempty"`
	APKFileName   string         `yaml:"apkFileName,omitempty"`
	SDKInfo       *SDKInfo       `yaml:"sdkInfo,omitempty"`
	VersionInfo   *VersionInfo   `yaml:"versionInfo,omitempty"`
	DoNotCompress []string       `yaml:"doNotCompress,omitempty"`
	UnknownFiles  map[string]Int `yaml:"unknownFiles,omitempty"`
}

// ReadMetadata decodes an apktool.yml from r.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	metadata := &Metadata{}

	if err := yaml.NewDecoder(r).Decode(metadata); err != nil {
		return nil, fmt.Errorf("decode %s: %w", MetadataFilename, err)
	}

	return metadata, nil
}
