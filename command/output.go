package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	balrainv1alpha1 "github.com/yeseul01458-spec/BALRAIN/api/v1alpha1"
	"github.com/yeseul01458-spec/BALRAIN/internal/balrainerr"
	"sigs.k8s.io/yaml"
)

const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

var outputs = []string{outputTable, outputYAML, outputJSON}

func bindOutput(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", outputTable, "output format, one of "+strings.Join(outputs, ", "))
}

// encode writes v as YAML or JSON. It returns false for table output,
// which the caller renders itself.
func encode(w io.Writer, output string, v any) (bool, error) {
	switch output {
	case outputTable:
		return false, nil
	case outputYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}

		_, err = w.Write(b)
		return true, err
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	}

	return true, balrainerr.ExitCodeError(fmt.Errorf("unknown output %s, expected one of %s", output, strings.Join(outputs, ", ")), balrainerr.ExitCodeUsage)
}

func newTable(w io.Writer, header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(header)
	t.SetStyle(table.StyleRounded)
	return t
}

func writeReport(w io.Writer, output string, report *balrainv1alpha1.AndroidModule) error {
	if ok, err := encode(w, output, report); ok {
		return err
	}

	var (
		spec = report.Spec
		dc   = spec.DefaultConfig
	)

	t := newTable(w, table.Row{"Module", "Application ID", "Version", "Min SDK", "Target SDK", "Compile SDK", "Phase"})
	t.AppendRow(table.Row{
		report.Name,
		dc.ApplicationID,
		fmt.Sprintf("%s (%d)", dc.VersionName, dc.VersionCode),
		dc.MinSDK,
		dc.TargetSDK,
		spec.CompileSDK,
		report.Status.Phase,
	})
	t.Render()

	if len(report.Status.Variants) > 0 {
		t = newTable(w, table.Row{"Variant", "Phase", "Debuggable", "Minify", "Shrink Resources", "Shrink Rules"})
		for _, v := range report.Status.Variants {
			t.AppendRow(table.Row{v.Name, v.Phase, v.Debuggable, v.MinifyEnabled, v.ShrinkResources, proguardFiles(v.ProguardFiles)})
		}
		t.Render()
	}

	if len(report.Status.APKs) > 0 {
		t = newTable(w, table.Row{"APK", "Variant", "Phase", "Package", "Version", "Debuggable", "SHA256"})
		for _, apk := range report.Status.APKs {
			t.AppendRow(table.Row{
				apk.Name,
				apk.Variant,
				apk.Phase,
				apk.Package,
				fmt.Sprintf("%s (%d)", apk.VersionName, apk.VersionCode),
				apk.Debuggable,
				apk.SHA256CertFingerprints,
			})
		}
		t.Render()
	}

	t = newTable(w, table.Row{"Condition", "Status", "Reason", "Message"})
	for _, c := range report.Status.Conditions {
		t.AppendRow(table.Row{c.Type, c.Status, c.Reason, c.Message})
	}
	t.Render()

	return nil
}

func proguardFiles(files []balrainv1alpha1.ProguardFileStatus) string {
	names := make([]string, len(files))

	for i, f := range files {
		switch {
		case f.Default:
			names[i] = f.Name + " (default)"
		default:
			names[i] = f.Name + " (" + strconv.Itoa(f.Rules) + " rules, " + strconv.Itoa(f.Keeps) + " keeps)"
		}
	}

	return strings.Join(names, "\n")
}
