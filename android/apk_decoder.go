package android

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yeseul01458-spec/BALRAIN/apktool"
	"github.com/yeseul01458-spec/BALRAIN/keytool"
)

// APKDecoder reads what a built .apk declares about its build
// configuration. The .apk is decoded at most once.
type APKDecoder struct {
	Name string

	apktool     string
	keytool     string
	dir         string
	tmp         bool
	decoded     bool
	manifest    *Manifest
	metadata    *apktool.Metadata
	certificate *keytool.Certificate
}

type APKDecoderOpt func(*APKDecoder)

func WithAPKTool(b string) APKDecoderOpt {
	return func(a *APKDecoder) {
		a.apktool = b
	}
}

func WithKeytool(b string) APKDecoderOpt {
	return func(a *APKDecoder) {
		a.keytool = b
	}
}

// WithDir decodes into dir instead of a temporary directory.
// Close leaves dir in place.
func WithDir(dir string) APKDecoderOpt {
	return func(a *APKDecoder) {
		a.dir = dir
	}
}

func NewAPKDecoder(name string, opts ...APKDecoderOpt) *APKDecoder {
	ad := &APKDecoder{Name: name, keytool: "keytool", apktool: "apktool"}

	for _, opt := range opts {
		opt(ad)
	}

	return ad
}

func (a *APKDecoder) decode(ctx context.Context) error {
	if a.decoded {
		return nil
	} else if a.dir == "" {
		var err error
		if a.dir, err = os.MkdirTemp("", "balrain-apk-*"); err != nil {
			return err
		}
		a.tmp = true
	}

	opts := &apktool.DecodeOpts{
		Force:           true,
		NoSources:       true,
		OutputDirectory: a.dir,
	}

	if err := apktool.Command(a.apktool).Decode(ctx, a.Name, opts); err != nil {
		return err
	}

	a.decoded = true

	return nil
}

func (a *APKDecoder) Manifest(ctx context.Context) (*Manifest, error) {
	if a.manifest != nil {
		return a.manifest, nil
	}

	if err := a.decode(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(a.dir, AndroidManifestName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	manifest := &Manifest{}
	if err := xml.NewDecoder(f).Decode(manifest); err != nil {
		return nil, fmt.Errorf("decode %s: %w", AndroidManifestName, err)
	}

	a.manifest = manifest
	return a.manifest, nil
}

func (a *APKDecoder) Metadata(ctx context.Context) (*apktool.Metadata, error) {
	if a.metadata != nil {
		return a.metadata, nil
	}

	if err := a.decode(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(a.dir, apktool.MetadataFilename))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if a.metadata, err = apktool.ReadMetadata(f); err != nil {
		return nil, err
	}

	return a.metadata, nil
}

// Certificate returns the certificate the .apk is signed with.
// It does not need the .apk to be decoded.
func (a *APKDecoder) Certificate(ctx context.Context) (*keytool.Certificate, error) {
	if a.certificate != nil {
		return a.certificate, nil
	}

	var err error
	if a.certificate, err = keytool.Command(a.keytool).PrintCert(ctx, a.Name); err != nil {
		return nil, err
	}

	return a.certificate, nil
}

// Close removes the directory the .apk was decoded into if the
// APKDecoder created it, even when decoding failed. The .apk
// itself is left alone.
func (a *APKDecoder) Close() error {
	if a.tmp {
		if err := os.RemoveAll(a.dir); err != nil {
			return err
		}

		a.dir = ""
		a.tmp = false
	}

	a.decoded = false
	a.metadata = nil
	a.manifest = nil
	a.certificate = nil

	return nil
}
