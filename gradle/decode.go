package gradle

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/yeseul01458-spec/BALRAIN"
)

var (
	pluginAliases = map[string]string{
		"kotlin-android": balrain.PluginKotlinAndroid,
		"android":        balrain.PluginAndroidApplication,
	}

	buildTypeAccessors = []string{"getByName", "create", "maybeCreate", "named", "register"}
)

// Decoder reads a balrain.Module from a build.gradle.kts.
type Decoder struct {
	r            io.Reader
	resolver     Resolver
	locals       map[string]any
	unrecognized []string
}

type DecoderOpt func(*Decoder)

// WithResolver sets the Resolver used for references
// that are not local `val` declarations.
func WithResolver(resolver Resolver) DecoderOpt {
	return func(d *Decoder) {
		d.resolver = resolver
	}
}

func NewDecoder(r io.Reader, opts ...DecoderOpt) *Decoder {
	d := &Decoder{r: r, locals: map[string]any{}}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Unrecognized returns the statements the last Decode skipped because
// balrain.Module has no place for them, as "line:col: name".
func (d *Decoder) Unrecognized() []string {
	return d.unrecognized
}

// Decode parses the build script and stores the settings it declares in m.
func (d *Decoder) Decode(m *balrain.Module) error {
	f, err := Parse(d.r)
	if err != nil {
		return err
	}

	return d.DecodeFile(f, m)
}

// DecodeFile stores the settings declared in f in m.
func (d *Decoder) DecodeFile(f *File, m *balrain.Module) error {
	d.unrecognized = []string{}

	for _, stmt := range f.Stmts {
		var err error

		switch s := stmt.(type) {
		case *ImportStmt:
			if !xslice.Includes(m.Imports, s.Path) {
				m.Imports = append(m.Imports, s.Path)
			}
		case *DeclStmt:
			if lit, ok := s.Value.(*BasicLit); ok {
				d.locals[s.Name.Name] = literalValue(lit)
				m.SetLocal(balrain.Local{
					Name:    s.Name.Name,
					Mutable: s.Mutable,
					Value:   String(lit),
				})
			} else {
				d.unrecognize(s)
			}
		case *BlockStmt:
			switch Name(s.Head) {
			case "plugins":
				err = d.decodePlugins(s.Body, m)
			case "android":
				err = d.decodeAndroid(s.Body, m)
			case "kotlin":
				err = d.decodeKotlin(s.Body, m)
			case "flutter":
				err = d.decodeFlutter(s.Body, m)
			case "dependencies":
				err = d.decodeDependencies(s.Body, m)
			default:
				d.unrecognize(s)
			}
		default:
			d.unrecognize(s)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodePlugins(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		s, ok := stmt.(*ExprStmt)
		if !ok {
			return errorAt(stmt, "unsupported plugin declaration %s", stmtName(stmt))
		}

		call, ok := unwrapInfix(s.X).(*CallExpr)
		if !ok {
			return errorAt(stmt, "unsupported plugin declaration %s", String(s.X))
		}

		name := Name(call)
		if name != "id" && name != "kotlin" {
			return errorAt(stmt, "unsupported plugin declaration %s", String(call))
		}

		id, err := stringArg(call)
		if err != nil {
			return err
		}

		if name == "kotlin" {
			id = "org.jetbrains.kotlin." + id
		}

		if alias, ok := pluginAliases[id]; ok {
			id = alias
		}

		if !m.HasPlugin(id) {
			m.Plugins = append(m.Plugins, id)
		}
	}

	return nil
}

func (d *Decoder) decodeAndroid(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		var err error

		switch s := stmt.(type) {
		case *AssignStmt:
			switch Path(s.LHS) {
			case "namespace":
				m.Namespace, err = d.stringValue(PropNamespace, s.RHS, m)
			case "compileSdk":
				m.CompileSDK, err = d.intValue(PropCompileSDK, s.RHS, m)
			case "ndkVersion":
				m.NDKVersion, err = d.stringValue(PropNDKVersion, s.RHS, m)
			default:
				d.unrecognize(s)
			}
		case *ExprStmt:
			switch call, _ := s.X.(*CallExpr); Name(s.X) {
			case "compileSdkVersion":
				m.CompileSDK, err = d.intArg(PropCompileSDK, call, m)
			case "namespace":
				m.Namespace, err = d.stringArg(PropNamespace, call, m)
			default:
				d.unrecognize(s)
			}
		case *BlockStmt:
			switch Name(s.Head) {
			case "defaultConfig":
				err = d.decodeDefaultConfig(s.Body, m)
			case "buildTypes":
				err = d.decodeBuildTypes(s.Body, m)
			case "compileOptions":
				err = d.decodeCompileOptions(s.Body, m)
			case "kotlinOptions":
				err = d.decodeKotlinOptions(s.Body, m)
			default:
				d.unrecognize(s)
			}
		default:
			d.unrecognize(s)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeDefaultConfig(body []Stmt, m *balrain.Module) error {
	dc := &m.DefaultConfig

	for _, stmt := range body {
		var err error

		switch s := stmt.(type) {
		case *AssignStmt:
			switch Path(s.LHS) {
			case "applicationId":
				dc.ApplicationID, err = d.stringValue(PropApplicationID, s.RHS, m)
			case "minSdk":
				dc.MinSDK, err = d.intValue(PropMinSDK, s.RHS, m)
			case "targetSdk":
				dc.TargetSDK, err = d.intValue(PropTargetSDK, s.RHS, m)
			case "versionCode":
				dc.VersionCode, err = d.intValue(PropVersionCode, s.RHS, m)
			case "versionName":
				dc.VersionName, err = d.stringValue(PropVersionName, s.RHS, m)
			default:
				d.unrecognize(s)
			}
		case *ExprStmt:
			switch call, _ := s.X.(*CallExpr); Name(s.X) {
			case "minSdkVersion":
				dc.MinSDK, err = d.intArg(PropMinSDK, call, m)
			case "targetSdkVersion":
				dc.TargetSDK, err = d.intArg(PropTargetSDK, call, m)
			default:
				d.unrecognize(s)
			}
		default:
			d.unrecognize(s)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeBuildTypes(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		s, ok := stmt.(*BlockStmt)
		if !ok {
			d.unrecognize(stmt)
			continue
		}

		var name string
		switch head := s.Head.(type) {
		case *Ident:
			name = head.Name
		case *CallExpr:
			if !xslice.Includes(buildTypeAccessors, Name(head)) {
				return errorAt(s, "unsupported build type declaration %s", String(head))
			}

			var err error
			if name, err = stringArg(head); err != nil {
				return err
			}
		default:
			return errorAt(s, "unsupported build type declaration %s", String(s.Head))
		}

		bt, _ := m.BuildType(name)
		bt.Name = name

		if err := d.decodeBuildType(s.Body, &bt, m); err != nil {
			return err
		}

		m.SetBuildType(bt)
	}

	return nil
}

func (d *Decoder) decodeBuildType(body []Stmt, bt *balrain.BuildType, m *balrain.Module) error {
	for _, stmt := range body {
		var err error

		switch s := stmt.(type) {
		case *AssignStmt:
			switch Path(s.LHS) {
			case "isMinifyEnabled":
				bt.MinifyEnabled, err = boolValue(s.RHS)
			case "isShrinkResources":
				bt.ShrinkResources, err = boolValue(s.RHS)
			case "isDebuggable":
				var debuggable bool
				if debuggable, err = boolValue(s.RHS); err == nil {
					bt.Debuggable = &debuggable
				}
			case "signingConfig":
				bt.SigningConfig, err = namedObject("signingConfigs", s.RHS)
			default:
				d.unrecognize(s)
			}
		case *ExprStmt:
			call, ok := s.X.(*CallExpr)
			if !ok {
				d.unrecognize(s)
				continue
			}

			switch Name(call) {
			case "proguardFiles", "proguardFile":
				for _, arg := range call.Args {
					pf, err := proguardFile(arg)
					if err != nil {
						return err
					}

					if !xslice.Includes(bt.ProguardFiles, pf) {
						bt.ProguardFiles = append(bt.ProguardFiles, pf)
					}
				}
			case "initWith":
				if len(call.Args) != 1 {
					return errorAt(call, "initWith takes exactly one build type")
				}

				var from string
				if from, err = namedObject("buildTypes", call.Args[0]); err != nil {
					return err
				}

				src, ok := m.BuildType(from)
				if !ok {
					return errorAt(call, "initWith unknown build type %s", from)
				}

				name := bt.Name
				*bt = src
				bt.Name = name
				if src.Debuggable == nil {
					debuggable := src.IsDebuggable()
					bt.Debuggable = &debuggable
				}
				bt.InitWith = from
				bt.ProguardFiles = append([]balrain.ProguardFile{}, src.ProguardFiles...)
			default:
				d.unrecognize(s)
			}
		default:
			d.unrecognize(s)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeCompileOptions(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		var err error

		switch s := stmt.(type) {
		case *AssignStmt:
			switch Path(s.LHS) {
			case "sourceCompatibility":
				m.CompileOptions.SourceCompatibility, err = d.javaVersion(PropSourceCompatibility, s.RHS, m)
			case "targetCompatibility":
				m.CompileOptions.TargetCompatibility, err = d.javaVersion(PropTargetCompatibility, s.RHS, m)
			default:
				d.unrecognize(s)
			}
		default:
			d.unrecognize(s)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeKotlinOptions(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		if s, ok := stmt.(*AssignStmt); ok && Path(s.LHS) == "jvmTarget" {
			m.ClearReference(PropJVMTarget)
			m.KotlinOptions.CompilerOptions = false

			var err error
			if m.KotlinOptions.JVMTarget, err = d.javaVersion(PropJVMTarget, s.RHS, m); err != nil {
				return err
			}
		} else {
			d.unrecognize(stmt)
		}
	}

	return nil
}

func (d *Decoder) decodeKotlin(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		var err error

		switch s := stmt.(type) {
		case *ExprStmt:
			if call, ok := s.X.(*CallExpr); ok && Name(call) == "jvmToolchain" {
				m.JVMToolchain, err = d.intArg(PropJVMToolchain, call, m)
			} else {
				d.unrecognize(s)
			}
		case *BlockStmt:
			if Name(s.Head) == "compilerOptions" {
				err = d.decodeCompilerOptions(s.Body, m)
			} else {
				d.unrecognize(s)
			}
		default:
			d.unrecognize(s)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeCompilerOptions(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		var (
			value Expr
		)

		switch s := stmt.(type) {
		case *AssignStmt:
			if Path(s.LHS) == "jvmTarget" {
				value = s.RHS
			}
		case *ExprStmt:
			if call, ok := s.X.(*CallExpr); ok && Name(call) == "jvmTarget.set" && len(call.Args) == 1 {
				value = call.Args[0]
			}
		}

		if value == nil {
			d.unrecognize(stmt)
			continue
		}

		m.ClearReference(PropJVMTarget)
		m.KotlinOptions.CompilerOptions = true

		var err error
		if m.KotlinOptions.JVMTarget, err = d.javaVersion(PropJVMTarget, value, m); err != nil {
			return err
		}
	}

	return nil
}

func (d *Decoder) decodeFlutter(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		if s, ok := stmt.(*AssignStmt); ok && Path(s.LHS) == "source" {
			var err error
			if m.FlutterSource, err = d.stringValue(PropFlutterSource, s.RHS, m); err != nil {
				return err
			}
		} else {
			d.unrecognize(stmt)
		}
	}

	return nil
}

func (d *Decoder) decodeDependencies(body []Stmt, m *balrain.Module) error {
	for _, stmt := range body {
		var head Expr

		switch s := stmt.(type) {
		case *ExprStmt:
			head = s.X
		case *BlockStmt:
			head = s.Head
		}

		call, ok := head.(*CallExpr)
		if !ok || len(call.Args) != 1 || Path(call.Fun) == "" {
			d.unrecognize(stmt)
			continue
		}

		notation := String(call.Args[0])
		if lit, ok := call.Args[0].(*BasicLit); ok && lit.Kind == LitString {
			notation = lit.Value
		}

		m.Dependencies = append(m.Dependencies, balrain.Dependency{
			Configuration: Path(call.Fun),
			Notation:      notation,
		})
	}

	return nil
}

func (d *Decoder) resolve(ref string) (any, bool) {
	if v, ok := d.locals[ref]; ok {
		return v, true
	}

	if d.resolver != nil {
		return d.resolver.Resolve(ref)
	}

	return nil, false
}

func (d *Decoder) intValue(prop string, e Expr, m *balrain.Module) (int, error) {
	if lit, ok := e.(*BasicLit); ok && lit.Kind == LitInt {
		return strconv.Atoi(lit.Value)
	}

	ref := Path(e)
	if ref == "" {
		return 0, errorAt(e, "expected integer for %s, found %s", prop, String(e))
	}

	v, ok := d.resolve(ref)
	if !ok {
		return 0, errorAt(e, "unresolved reference %s", ref)
	}

	m.SetReference(prop, ref)

	switch v := v.(type) {
	case int:
		return v, nil
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, errorAt(e, "reference %s is not an integer: %q", ref, v)
		}
		return i, nil
	}

	return 0, errorAt(e, "reference %s is not an integer", ref)
}

func (d *Decoder) stringValue(prop string, e Expr, m *balrain.Module) (string, error) {
	if lit, ok := e.(*BasicLit); ok && lit.Kind == LitString {
		return lit.Value, nil
	}

	ref := Path(e)
	if ref == "" {
		return "", errorAt(e, "expected string for %s, found %s", prop, String(e))
	}

	v, ok := d.resolve(ref)
	if !ok {
		return "", errorAt(e, "unresolved reference %s", ref)
	}

	m.SetReference(prop, ref)

	return fmt.Sprint(v), nil
}

func (d *Decoder) intArg(prop string, call *CallExpr, m *balrain.Module) (int, error) {
	if call == nil || len(call.Args) != 1 {
		return 0, fmt.Errorf("%s takes exactly one argument", prop)
	}

	return d.intValue(prop, call.Args[0], m)
}

func (d *Decoder) stringArg(prop string, call *CallExpr, m *balrain.Module) (string, error) {
	if call == nil || len(call.Args) != 1 {
		return "", fmt.Errorf("%s takes exactly one argument", prop)
	}

	return d.stringValue(prop, call.Args[0], m)
}

// javaVersion accepts JavaVersion.VERSION_17, JavaVersion.VERSION_17.toString(),
// JavaVersion.toVersion(17), JvmTarget.JVM_17, "17", 17 and references to those.
func (d *Decoder) javaVersion(prop string, e Expr, m *balrain.Module) (string, error) {
	switch x := e.(type) {
	case *BasicLit:
		if x.Kind != LitBool {
			return balrain.NormalizeJavaVersion(x.Value), nil
		}
	case *CallExpr:
		if sel, ok := x.Fun.(*SelectorExpr); ok && sel.Sel.Name == "toString" && len(x.Args) == 0 {
			return d.javaVersion(prop, sel.X, m)
		} else if Name(x) == "JavaVersion.toVersion" && len(x.Args) == 1 {
			return d.javaVersion(prop, x.Args[0], m)
		}
	default:
		switch path := Path(e); {
		case strings.HasPrefix(path, "JavaVersion.VERSION_"):
			return balrain.NormalizeJavaVersion(path), nil
		case strings.HasPrefix(path, "JvmTarget.JVM_"):
			return balrain.NormalizeJavaVersion(strings.TrimPrefix(path, "JvmTarget.JVM_")), nil
		case path != "":
			v, err := d.stringValue(prop, e, m)
			if err != nil {
				return "", err
			}

			return balrain.NormalizeJavaVersion(v), nil
		}
	}

	return "", errorAt(e, "expected Java version for %s, found %s", prop, String(e))
}

func (d *Decoder) unrecognize(stmt Stmt) {
	d.unrecognized = append(d.unrecognized, fmt.Sprintf("%s: %s", stmt.Pos(), stmtName(stmt)))
}

func boolValue(e Expr) (bool, error) {
	if lit, ok := e.(*BasicLit); ok && lit.Kind == LitBool {
		return lit.Value == "true", nil
	}

	return false, errorAt(e, "expected boolean, found %s", String(e))
}

func stringArg(call *CallExpr) (string, error) {
	if len(call.Args) == 1 {
		if lit, ok := call.Args[0].(*BasicLit); ok && lit.Kind == LitString {
			return lit.Value, nil
		}
	}

	return "", errorAt(call, "%s takes exactly one string argument", Name(call))
}

// namedObject extracts the name from an element of the named container,
// e.g. signingConfigs.getByName("debug") or signingConfigs.debug.
func namedObject(container string, e Expr) (string, error) {
	if call, ok := e.(*CallExpr); ok {
		fun := Name(call)
		if fun == "getByName" || fun == container+".getByName" {
			return stringArg(call)
		}
	} else if path := Path(e); path != "" {
		return strings.TrimPrefix(path, container+"."), nil
	}

	return "", errorAt(e, "expected element of %s, found %s", container, String(e))
}

func proguardFile(e Expr) (balrain.ProguardFile, error) {
	switch x := e.(type) {
	case *BasicLit:
		if x.Kind == LitString {
			return balrain.ProguardFile{Name: x.Value}, nil
		}
	case *CallExpr:
		if Name(x) == "getDefaultProguardFile" {
			name, err := stringArg(x)
			return balrain.ProguardFile{Name: name, Default: true}, err
		} else if Name(x) == "file" {
			name, err := stringArg(x)
			return balrain.ProguardFile{Name: name}, err
		}
	}

	return balrain.ProguardFile{}, errorAt(e, "unsupported shrink-rule file %s", String(e))
}

func unwrapInfix(e Expr) Expr {
	for {
		call, ok := e.(*CallExpr)
		if !ok {
			return e
		}

		sel, ok := call.Fun.(*SelectorExpr)
		if !ok || !xslice.Includes(infixCalls, sel.Sel.Name) {
			return e
		}

		e = sel.X
	}
}

func literalValue(lit *BasicLit) any {
	switch lit.Kind {
	case LitInt:
		if i, err := strconv.Atoi(lit.Value); err == nil {
			return i
		}
	case LitBool:
		return lit.Value == "true"
	}

	return lit.Value
}

func stmtName(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ImportStmt:
		return "import " + s.Path
	case *DeclStmt:
		if s.Mutable {
			return "var " + s.Name.Name
		}
		return "val " + s.Name.Name
	case *AssignStmt:
		return Path(s.LHS)
	case *ExprStmt:
		return Name(unwrapInfix(s.X))
	case *BlockStmt:
		return Name(s.Head)
	}

	return ""
}

func errorAt(n Node, format string, a ...any) error {
	return &SyntaxError{Pos: n.Pos(), Msg: fmt.Sprintf(format, a...)}
}
