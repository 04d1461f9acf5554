package keytool

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// DebugOwner is the distinguished name the Android SDK
// gives the key in ~/.android/debug.keystore.
const DebugOwner = "CN=Android Debug"

// PrintCert finds `keytool` on the PATH and runs PrintCert against it.
// See Command.PrintCert.
func PrintCert(ctx context.Context, name string) (*Certificate, error) {
	return Command("keytool").PrintCert(ctx, name)
}

// Command represents the path to a `keytool` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// PrintCert runs `keytool -printcert -jarfile` against the .apk at
// name and parses the certificate of its first signer.
func (c Command) PrintCert(ctx context.Context, name string) (*Certificate, error) {
	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), "-printcert", "-jarfile", name)
	)

	cmd.Stdout = buf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("keytool -printcert %s: %w", name, err)
	}

	return ParsePrintCert(buf)
}

// Certificate is a signing certificate as printed by `keytool -printcert`.
type Certificate struct {
	Owner  string `json:"owner"`
	Issuer string `json:"issuer,omitempty"`
	SHA256 string `json:"sha256"`
}

// IsDebug reports whether the certificate is the Android debug key.
func (c *Certificate) IsDebug() bool {
	return strings.Contains(c.Owner, DebugOwner)
}

// ParsePrintCert reads the output of `keytool -printcert`.
// Only the first certificate is returned.
func ParsePrintCert(r io.Reader) (*Certificate, error) {
	var (
		cert    = &Certificate{}
		scanner = bufio.NewScanner(r)
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case strings.HasPrefix(line, "Owner: ") && cert.Owner == "":
			cert.Owner = strings.TrimPrefix(line, "Owner: ")
		case strings.HasPrefix(line, "Issuer: ") && cert.Issuer == "":
			cert.Issuer = strings.TrimPrefix(line, "Issuer: ")
		case strings.HasPrefix(line, "SHA256: ") && cert.SHA256 == "":
			if fields := strings.Fields(line); len(fields) >= 2 {
				cert.SHA256 = fields[1]
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if cert.SHA256 == "" {
		return nil, fmt.Errorf("sha256 cert fingerprints not found")
	}

	return cert, nil
}
