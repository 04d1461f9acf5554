package gradle

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/yeseul01458-spec/BALRAIN"
)

const indent = "    "

// Encoder writes a balrain.Module as a canonical build.gradle.kts.
type Encoder struct {
	w     io.Writer
	depth int
	err   error
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes m. Properties that were read from a reference
// are written as that reference.
func (e *Encoder) Encode(m *balrain.Module) error {
	imports := m.Imports
	if e.jvmTargetLiteral(m) && !xslice.Includes(imports, ImportJvmTarget) {
		imports = append(append([]string{}, imports...), ImportJvmTarget)
	}

	if len(imports) > 0 {
		for _, path := range imports {
			e.line("import %s", path)
		}
		e.blank()
	}

	e.block("plugins", func() {
		for _, id := range m.Plugins {
			e.line("id(%s)", Quote(id))
		}
	})
	e.blank()

	if len(m.Locals) > 0 {
		for _, local := range m.Locals {
			keyword := "val"
			if local.Mutable {
				keyword = "var"
			}

			e.line("%s %s = %s", keyword, local.Name, local.Value)
		}
		e.blank()
	}

	e.block("android", func() {
		e.assign("namespace", e.stringProp(m, PropNamespace, m.Namespace))
		e.assign("compileSdk", e.intProp(m, PropCompileSDK, m.CompileSDK))
		if m.NDKVersion != "" {
			e.assign("ndkVersion", e.stringProp(m, PropNDKVersion, m.NDKVersion))
		}
		e.blank()

		e.block("defaultConfig", func() {
			dc := m.DefaultConfig
			e.assign("applicationId", e.stringProp(m, PropApplicationID, dc.ApplicationID))
			e.assign("minSdk", e.intProp(m, PropMinSDK, dc.MinSDK))
			e.assign("targetSdk", e.intProp(m, PropTargetSDK, dc.TargetSDK))
			e.assign("versionCode", e.intProp(m, PropVersionCode, dc.VersionCode))
			e.assign("versionName", e.stringProp(m, PropVersionName, dc.VersionName))
		})

		if len(m.BuildTypes) > 0 {
			e.blank()
			e.block("buildTypes", func() {
				for _, bt := range m.BuildTypes {
					e.buildType(bt)
				}
			})
		}

		if co := m.CompileOptions; co.SourceCompatibility != "" || co.TargetCompatibility != "" {
			e.blank()
			e.block("compileOptions", func() {
				if co.SourceCompatibility != "" {
					e.assign("sourceCompatibility", e.javaVersionProp(m, PropSourceCompatibility, co.SourceCompatibility))
				}
				if co.TargetCompatibility != "" {
					e.assign("targetCompatibility", e.javaVersionProp(m, PropTargetCompatibility, co.TargetCompatibility))
				}
			})
		}

		if jvmTarget := m.KotlinOptions.JVMTarget; jvmTarget != "" && !m.KotlinOptions.CompilerOptions {
			e.blank()
			e.block("kotlinOptions", func() {
				if ref, ok := m.Reference(PropJVMTarget); ok {
					e.assign("jvmTarget", ref)
				} else {
					e.assign("jvmTarget", e.javaVersionProp(m, PropJVMTarget, jvmTarget)+".toString()")
				}
			})
		}
	})

	compilerOptions := m.KotlinOptions.JVMTarget != "" && m.KotlinOptions.CompilerOptions
	if m.JVMToolchain > 0 || compilerOptions {
		e.blank()
		e.block("kotlin", func() {
			if m.JVMToolchain > 0 {
				e.line("jvmToolchain(%s)", e.intProp(m, PropJVMToolchain, m.JVMToolchain))
			}

			if compilerOptions {
				e.block("compilerOptions", func() {
					jvmTarget, ok := m.Reference(PropJVMTarget)
					if !ok {
						jvmTarget = "JvmTarget.JVM_" + strings.ReplaceAll(m.KotlinOptions.JVMTarget, ".", "_")
					}

					e.line("jvmTarget.set(%s)", jvmTarget)
				})
			}
		})
	}

	if m.FlutterSource != "" {
		e.blank()
		e.block("flutter", func() {
			e.assign("source", e.stringProp(m, PropFlutterSource, m.FlutterSource))
		})
	}

	e.blank()
	e.block("dependencies", func() {
		for _, dep := range m.Dependencies {
			notation := dep.Notation
			if !strings.Contains(notation, "(") {
				notation = Quote(notation)
			}

			e.line("%s(%s)", dep.Configuration, notation)
		}
	})

	return e.err
}

// jvmTargetLiteral reports whether Encode writes a JvmTarget constant.
func (e *Encoder) jvmTargetLiteral(m *balrain.Module) bool {
	if m.KotlinOptions.JVMTarget == "" || !m.KotlinOptions.CompilerOptions {
		return false
	}

	_, ok := m.Reference(PropJVMTarget)
	return !ok
}

func (e *Encoder) buildType(bt balrain.BuildType) {
	head := bt.Name
	switch bt.Name {
	case balrain.BuildTypeDebug, balrain.BuildTypeRelease:
	default:
		head = fmt.Sprintf("create(%s)", Quote(bt.Name))
	}

	e.block(head, func() {
		if bt.InitWith != "" {
			e.line("initWith(getByName(%s))", Quote(bt.InitWith))
		}
		e.assign("isMinifyEnabled", strconv.FormatBool(bt.MinifyEnabled))
		e.assign("isShrinkResources", strconv.FormatBool(bt.ShrinkResources))
		if bt.Debuggable != nil {
			e.assign("isDebuggable", strconv.FormatBool(*bt.Debuggable))
		}
		if bt.SigningConfig != "" {
			e.assign("signingConfig", fmt.Sprintf("signingConfigs.getByName(%s)", Quote(bt.SigningConfig)))
		}

		if len(bt.ProguardFiles) > 0 {
			e.line("proguardFiles(")
			e.depth++
			for i, pf := range bt.ProguardFiles {
				arg := Quote(pf.Name)
				if pf.Default {
					arg = fmt.Sprintf("getDefaultProguardFile(%s)", arg)
				}
				if i < len(bt.ProguardFiles)-1 {
					arg += ","
				}
				e.line("%s", arg)
			}
			e.depth--
			e.line(")")
		}
	})
}

func (e *Encoder) stringProp(m *balrain.Module, prop, value string) string {
	if ref, ok := m.Reference(prop); ok {
		return ref
	}

	return Quote(value)
}

func (e *Encoder) intProp(m *balrain.Module, prop string, value int) string {
	if ref, ok := m.Reference(prop); ok {
		return ref
	}

	return strconv.Itoa(value)
}

func (e *Encoder) javaVersionProp(m *balrain.Module, prop, value string) string {
	if ref, ok := m.Reference(prop); ok {
		return ref
	}

	return "JavaVersion.VERSION_" + strings.ReplaceAll(value, ".", "_")
}

func (e *Encoder) block(head string, body func()) {
	e.line("%s {", head)
	e.depth++
	body()
	e.depth--
	e.line("}")
}

func (e *Encoder) assign(name, value string) {
	e.line("%s = %s", name, value)
}

func (e *Encoder) blank() {
	if e.err == nil {
		_, e.err = io.WriteString(e.w, "\n")
	}
}

func (e *Encoder) line(format string, a ...any) {
	if e.err != nil {
		return
	}

	_, e.err = fmt.Fprintf(e.w, strings.Repeat(indent, e.depth)+format+"\n", a...)
}
