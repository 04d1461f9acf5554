package flutter

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// PubspecFilename is the name of the Flutter project manifest,
// found two directories above the Android application module.
const PubspecFilename = "pubspec.yaml"

type Environment struct {
	SDK     string `yaml:"sdk,omitempty"`
	Flutter string `yaml:"flutter,omitempty"`
}

// Pubspec is the subset of pubspec.yaml that feeds the Android build.
type Pubspec struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	PublishTo   string       `yaml:"publish_to,omitempty"`
	Version     string       `yaml:"version,omitempty"`
	Environment *Environment `yaml:"environment,omitempty"`
}

// ReadPubspec decodes a pubspec.yaml from r.
func ReadPubspec(r io.Reader) (*Pubspec, error) {
	pubspec := &Pubspec{}

	if err := yaml.NewDecoder(r).Decode(pubspec); errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty %s", PubspecFilename)
	} else if err != nil {
		return nil, fmt.Errorf("decode %s: %w", PubspecFilename, err)
	}

	if pubspec.Name == "" {
		return nil, fmt.Errorf("%s has no name", PubspecFilename)
	}

	return pubspec, nil
}

const (
	// DefaultVersionName and DefaultVersionCode are what the Flutter
	// Gradle plugin falls back to when pubspec.yaml declares no version.
	DefaultVersionName = "1.0"
	DefaultVersionCode = 1
)

// Version is a pubspec version split into the
// Android versionName and versionCode.
type Version struct {
	Name string
	Code int
}

func (v Version) String() string {
	return fmt.Sprintf("%s+%d", v.Name, v.Code)
}

// ParseVersion splits a pubspec version such as "1.2.3+4" into the build
// name "1.2.3" and build number 4. The build number defaults to 1.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{Name: DefaultVersionName, Code: DefaultVersionCode}, nil
	}

	version := Version{Name: s, Code: DefaultVersionCode}

	if name, build, ok := strings.Cut(s, "+"); ok {
		code, err := strconv.Atoi(build)
		if err != nil || code <= 0 {
			return Version{}, fmt.Errorf("invalid build number %q in version %q", build, s)
		}

		version.Name = name
		version.Code = code
	}

	if !semver.IsValid("v" + version.Name) {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	return version, nil
}
