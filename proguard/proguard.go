// Package proguard reads shrink-rule files in the ProGuard/R8
// configuration syntax.
package proguard

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/opencontainers/go-digest"
)

const (
	// DefaultFileAndroid is the SDK-provided rule file that disables optimization.
	DefaultFileAndroid = "proguard-android.txt"
	// DefaultFileAndroidOptimize is the SDK-provided rule file that enables optimization.
	DefaultFileAndroidOptimize = "proguard-android-optimize.txt"
)

// DefaultFiles are the names accepted by getDefaultProguardFile.
var DefaultFiles = []string{DefaultFileAndroid, DefaultFileAndroidOptimize}

// IsDefault reports whether name is a rule file shipped with the Android Gradle plugin.
func IsDefault(name string) bool {
	return xslice.Includes(DefaultFiles, name)
}

// Rule is a single option, e.g. `-keep class io.flutter.** { *; }`.
type Rule struct {
	Directive string
	Modifiers []string
	Args      string
	Line      int
}

func (r Rule) String() string {
	var (
		b = new(strings.Builder)
	)

	b.WriteString("-" + r.Directive)
	if len(r.Modifiers) > 0 {
		b.WriteString("," + strings.Join(r.Modifiers, ","))
	}
	if r.Args != "" {
		b.WriteString(" " + r.Args)
	}

	return b.String()
}

// File is a parsed rule file.
type File struct {
	Name   string
	Rules  []Rule
	Digest digest.Digest
}

var keepDirectives = []string{
	"keep",
	"keepclassmembers",
	"keepclasseswithmembers",
	"keepnames",
	"keepclassmembernames",
	"keepclasseswithmembernames",
}

// Keeps returns the number of rules that keep classes or members.
func (f *File) Keeps() int {
	return len(xslice.Filter(f.Rules, func(r Rule, _ int) bool {
		return xslice.Includes(keepDirectives, r.Directive)
	}))
}

// SyntaxError is returned by Parse for a malformed rule.
type SyntaxError struct {
	Name string
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Msg)
}

// Parse reads the rule file name from r.
func Parse(name string, r io.Reader) (*File, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var (
		f       = &File{Name: name, Rules: []Rule{}, Digest: digest.FromBytes(b)}
		scanner = bufio.NewScanner(bytes.NewReader(b))
		cur     *Rule
		depth   int
		lineNo  int
	)

	flush := func() {
		if cur != nil {
			cur.Args = strings.Join(strings.Fields(cur.Args), " ")
			f.Rules = append(f.Rules, *cur)
			cur = nil
		}
	}

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if depth == 0 && strings.HasPrefix(line, "-") {
			flush()

			var (
				head, args, _ = strings.Cut(line[1:], " ")
				parts         = strings.Split(head, ",")
			)

			if !xslice.Includes(Directives, parts[0]) {
				return nil, &SyntaxError{Name: name, Line: lineNo, Msg: fmt.Sprintf("unknown option -%s", parts[0])}
			}

			cur = &Rule{
				Directive: parts[0],
				Modifiers: parts[1:],
				Args:      args,
				Line:      lineNo,
			}
		} else if cur == nil {
			return nil, &SyntaxError{Name: name, Line: lineNo, Msg: fmt.Sprintf("expected option, found %q", line)}
		} else {
			cur.Args += " " + line
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			return nil, &SyntaxError{Name: name, Line: lineNo, Msg: "unbalanced '}'"}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if depth != 0 {
		return nil, &SyntaxError{Name: name, Line: lineNo, Msg: "unterminated '{'"}
	}

	flush()

	return f, nil
}
