package gradle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeseul01458-spec/BALRAIN/gradle"
)

func TestParseString(t *testing.T) {
	f, err := gradle.ParseString(`import java.util.*
val answer = 42
android {
    namespace = "com.example.balrain"; compileSdk = 34
    buildTypes {
        getByName("release") {
            proguardFiles(
                getDefaultProguardFile("proguard-android.txt"),
                "proguard-rules.pro",
            )
        }
    }
}
plugins { id("com.android.application") version "8.1.0" apply false }
`)
	require.NoError(t, err)
	require.Len(t, f.Stmts, 4)

	imp, ok := f.Stmts[0].(*gradle.ImportStmt)
	require.True(t, ok)
	assert.Equal(t, "java.util.*", imp.Path)

	decl, ok := f.Stmts[1].(*gradle.DeclStmt)
	require.True(t, ok)
	assert.False(t, decl.Mutable)
	assert.Equal(t, "answer", decl.Name.Name)
	assert.Equal(t, "42", gradle.String(decl.Value))

	android, ok := f.Stmts[2].(*gradle.BlockStmt)
	require.True(t, ok)
	assert.Equal(t, "android", gradle.Name(android.Head))
	require.Len(t, android.Body, 3)

	namespace, ok := android.Body[0].(*gradle.AssignStmt)
	require.True(t, ok)
	assert.Equal(t, "namespace", gradle.Path(namespace.LHS))
	assert.Equal(t, `"com.example.balrain"`, gradle.String(namespace.RHS))
	assert.Equal(t, gradle.Position{Line: 4, Col: 5}, namespace.Pos())

	buildTypes := android.Body[2].(*gradle.BlockStmt)
	release := buildTypes.Body[0].(*gradle.BlockStmt)
	assert.Equal(t, `getByName("release")`, gradle.String(release.Head))

	proguardFiles := release.Body[0].(*gradle.ExprStmt)
	assert.Equal(t, `proguardFiles(getDefaultProguardFile("proguard-android.txt"), "proguard-rules.pro")`, gradle.String(proguardFiles.X))

	plugins := f.Stmts[3].(*gradle.BlockStmt)
	id := plugins.Body[0].(*gradle.ExprStmt)
	assert.Equal(t, `id("com.android.application").version("8.1.0").apply(false)`, gradle.String(id.X))
}

func TestParseStringLiterals(t *testing.T) {
	f, err := gradle.ParseString(`a = "quote \" dollar \$ tab \t"
b = """raw "text" ${'$'}"""
c = -1_000
d = true
e = JavaVersion.VERSION_17.toString()
`)
	require.NoError(t, err)
	require.Len(t, f.Stmts, 5)

	values := []string{}
	for _, stmt := range f.Stmts {
		values = append(values, gradle.String(stmt.(*gradle.AssignStmt).RHS))
	}

	assert.Equal(t, []string{
		`"quote \" dollar \$ tab \t"`,
		`"raw \"text\" \${'\$'}"`,
		"-1000",
		"true",
		"JavaVersion.VERSION_17.toString()",
	}, values)
}

func TestParseStringErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		src string
		pos gradle.Position
	}{
		"unterminated string":  {"a = \"abc\n", gradle.Position{Line: 1, Col: 5}},
		"unterminated comment": {"/* abc", gradle.Position{Line: 1, Col: 1}},
		"unterminated block":   {"android {\n", gradle.Position{Line: 2, Col: 1}},
		"unbalanced brace":     {"}\n", gradle.Position{Line: 1, Col: 1}},
		"unsupported operator": {"a = 1 + 2\n", gradle.Position{Line: 1, Col: 7}},
		"unsupported if":       {"if (true) {}\n", gradle.Position{Line: 1, Col: 1}},
		"equality":             {"a == b\n", gradle.Position{Line: 1, Col: 3}},
		"assign to call":       {"f() = 1\n", gradle.Position{Line: 1, Col: 5}},
		"two statements":       {"a = 1 b = 2\n", gradle.Position{Line: 1, Col: 7}},
		"bad escape":           {`a = "\q"`, gradle.Position{Line: 1, Col: 6}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := gradle.ParseString(tc.src)
			require.Error(t, err)

			synerr := &gradle.SyntaxError{}
			require.True(t, errors.As(err, &synerr), err.Error())
			assert.Equal(t, tc.pos, synerr.Pos, err.Error())
		})
	}
}

func TestParseStringComments(t *testing.T) {
	f, err := gradle.ParseString("// leading\nandroid { /* inline */ namespace = \"a.b\" // trailing ← unicode\n}\n")
	require.NoError(t, err)
	require.Len(t, f.Stmts, 1)

	android := f.Stmts[0].(*gradle.BlockStmt)
	require.Len(t, android.Body, 1)
	assert.Equal(t, gradle.Position{Line: 2, Col: 24}, android.Body[0].Pos())
}
