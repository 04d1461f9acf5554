package balrain

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/yeseul01458-spec/BALRAIN/proguard"
	"golang.org/x/sync/errgroup"
)

// Variant is a build type resolved against the default config: the
// settings a package built with that build type ends up with.
type Variant struct {
	Name            string         `json:"name"`
	ApplicationID   string         `json:"applicationId"`
	VersionCode     int            `json:"versionCode"`
	VersionName     string         `json:"versionName"`
	MinSDK          int            `json:"minSdk"`
	TargetSDK       int            `json:"targetSdk"`
	Debuggable      bool           `json:"debuggable"`
	MinifyEnabled   bool           `json:"minifyEnabled"`
	ShrinkResources bool           `json:"shrinkResources"`
	ProguardFiles   []ProguardFile `json:"proguardFiles,omitempty"`
}

// Variant resolves the build type called name.
func (m *Module) Variant(name string) (*Variant, error) {
	bt, ok := m.BuildType(name)
	if !ok {
		return nil, fmt.Errorf("unknown build type %s", name)
	}

	return &Variant{
		Name:            bt.Name,
		ApplicationID:   m.DefaultConfig.ApplicationID,
		VersionCode:     m.DefaultConfig.VersionCode,
		VersionName:     m.DefaultConfig.VersionName,
		MinSDK:          m.DefaultConfig.MinSDK,
		TargetSDK:       m.DefaultConfig.TargetSDK,
		Debuggable:      bt.IsDebuggable(),
		MinifyEnabled:   bt.MinifyEnabled,
		ShrinkResources: bt.ShrinkResources,
		ProguardFiles:   bt.ProguardFiles,
	}, nil
}

// Variants resolves every build type of m.
func (m *Module) Variants() ([]*Variant, error) {
	variants := []*Variant{}

	for _, name := range m.BuildTypeNames() {
		v, err := m.Variant(name)
		if err != nil {
			return nil, err
		}

		variants = append(variants, v)
	}

	return variants, nil
}

// ResolveProguardFiles reads the shrink-rule files of v from fsys, the module
// directory. Nothing is read when minification is disabled, so a missing rule
// file only fails variants that shrink. Default files ship with the Android
// Gradle plugin and are checked by name only.
func (v *Variant) ResolveProguardFiles(ctx context.Context, fsys fs.FS) ([]*proguard.File, error) {
	if !v.MinifyEnabled {
		return nil, nil
	}

	files := make([]*proguard.File, len(v.ProguardFiles))
	for i, pf := range v.ProguardFiles {
		if pf.Default {
			if !proguard.IsDefault(pf.Name) {
				return nil, fmt.Errorf("unknown default shrink-rule file %s", pf.Name)
			}

			files[i] = &proguard.File{Name: pf.Name}
		}
	}

	var (
		eg, egctx = errgroup.WithContext(ctx)
		log       = LoggerFrom(ctx).WithValues("variant", v.Name)
	)

	for i, pf := range v.ProguardFiles {
		if pf.Default {
			continue
		}

		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}

			log.V(1).Info("reading shrink-rule file " + pf.Name)

			f, err := fsys.Open(pf.Name)
			if err != nil {
				return fmt.Errorf("shrink-rule file %s: %w", pf.Name, err)
			}
			defer f.Close()

			if files[i], err = proguard.Parse(pf.Name, f); err != nil {
				return fmt.Errorf("shrink-rule file %s: %w", pf.Name, err)
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}
