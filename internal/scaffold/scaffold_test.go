package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/testingx"
)

var flutterDirs = []string{
	".github",
	".github/workflows",
	"android",
	"assets",
	"assets/fonts",
	"assets/icons",
	"assets/images",
	"ios",
	"lib",
	"lib/models",
	"lib/providers",
	"lib/screens",
	"lib/services",
	"lib/utils",
	"lib/widgets",
	"scripts",
	"test",
	"test/integration_test",
	"test/unit_test",
	"test/widget_test",
	"web",
}

var androidDirs = []string{
	".github",
	".github/workflows",
	"app",
	"app/src",
	"app/src/androidTest",
	"app/src/main",
	"app/src/main/assets",
	"app/src/main/java",
	"app/src/main/res",
	"app/src/main/res/drawable",
	"app/src/main/res/layout",
	"app/src/main/res/values",
	"app/src/test",
	"gradle",
	"gradle/wrapper",
	"scripts",
}

func newScaffolder(t *testing.T) (*Scaffolder, *testingx.MockLogger) {
	t.Helper()
	logger := testingx.NewMockLogger(t)
	s, err := New(memfs.New(), logger, WithWorkingDir("/work"))
	require.NoError(t, err)
	return s, logger
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Cool App", "my_cool_app"},
		{"Weather App", "weather_app"},
		{"already_clean", "already_clean"},
		{"MiXeD  Spaces", "mixed__spaces"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sanitize(got), "Sanitize must be idempotent")
		})
	}
}

func TestScaffoldFlutterEndToEnd(t *testing.T) {
	s, logger := newScaffolder(t)

	res, err := s.Scaffold(Request{Kind: "flutter", Name: "Weather App", Destination: "/tmp/out"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out/weather_app", res.ProjectPath)
	assert.Equal(t, "weather_app", res.SanitizedName)
	assert.False(t, res.RootExisted)
	assert.Equal(t, flutterDirs, testingx.ListDirs(t, s.fs, res.ProjectPath))
	assert.Equal(t, []string{".gitignore", "README.md", "lib/main.dart", "pubspec.yaml"},
		testingx.ListFiles(t, s.fs, res.ProjectPath))

	mainDart := testingx.ReadFile(t, s.fs, "/tmp/out/weather_app/lib/main.dart")
	assert.Contains(t, mainDart, "Weather App Home Page")

	pubspec := testingx.ReadFile(t, s.fs, "/tmp/out/weather_app/pubspec.yaml")
	assert.Contains(t, pubspec, "name: weather_app\n")

	logger.AssertLogged("INFO", "Created directory")
	logger.AssertLogged("INFO", "Created file")
	logger.AssertLogged("INFO", "Project creation complete")
	logger.AssertNotLogged("WARN", "Directory already exists. Files may be overwritten.")
}

func TestScaffoldAndroid(t *testing.T) {
	s, _ := newScaffolder(t)

	res, err := s.Scaffold(Request{Kind: "Android", Name: "  Field Notes  ", Destination: "/tmp/out"})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out/field_notes", res.ProjectPath)
	assert.Equal(t, androidDirs, testingx.ListDirs(t, s.fs, res.ProjectPath))

	settings := testingx.ReadFile(t, s.fs, "/tmp/out/field_notes/settings.gradle")
	assert.Contains(t, settings, `rootProject.name = "field_notes"`)
	assert.Contains(t, settings, "include ':app'")

	readme := testingx.ReadFile(t, s.fs, "/tmp/out/field_notes/README.md")
	assert.True(t, strings.HasPrefix(readme, "# Field Notes\n"))
}

func TestReadmeEnumeratesCreatedDirectories(t *testing.T) {
	for _, kind := range []string{KindFlutter, KindAndroid} {
		t.Run(kind, func(t *testing.T) {
			s, _ := newScaffolder(t)
			res, err := s.Scaffold(Request{Kind: kind, Name: "Demo", Destination: "/out"})
			require.NoError(t, err)

			readme := testingx.ReadFile(t, s.fs, filepath.Join(res.ProjectPath, "README.md"))
			for _, dir := range testingx.ListDirs(t, s.fs, res.ProjectPath) {
				assert.Contains(t, readme, filepath.Base(dir)+"/", "README should mention %s", dir)
			}
		})
	}
}

func TestScaffoldTwiceRewritesFiles(t *testing.T) {
	s, logger := newScaffolder(t)
	req := Request{Kind: KindFlutter, Name: "Weather App", Destination: "/tmp/out"}

	first, err := s.Scaffold(req)
	require.NoError(t, err)
	dirsBefore := testingx.ListDirs(t, s.fs, first.ProjectPath)

	pubspec := "/tmp/out/weather_app/pubspec.yaml"
	require.NoError(t, util.WriteFile(s.fs, pubspec, []byte("edited by hand\n"), 0o644))

	second, err := s.Scaffold(req)
	require.NoError(t, err)

	assert.True(t, second.RootExisted)
	assert.Empty(t, second.CreatedDirs)
	assert.Len(t, second.ExistingDirs, len(first.CreatedDirs))
	assert.Empty(t, second.WrittenFiles)
	assert.ElementsMatch(t, first.WrittenFiles, second.OverwrittenFiles)
	assert.Equal(t, dirsBefore, testingx.ListDirs(t, s.fs, second.ProjectPath))

	content := testingx.ReadFile(t, s.fs, pubspec)
	assert.NotContains(t, content, "edited by hand")
	assert.True(t, strings.HasPrefix(content, "name: weather_app\n"))

	logger.AssertLogged("WARN", "Directory already exists. Files may be overwritten.")
	logger.AssertLogged("WARN", "Overwrote existing file")
}

func TestScaffoldSkipExisting(t *testing.T) {
	s, _ := newScaffolder(t)
	req := Request{Kind: KindAndroid, Name: "Notes", Destination: "/tmp/out"}

	_, err := s.Scaffold(req)
	require.NoError(t, err)

	settings := "/tmp/out/notes/settings.gradle"
	require.NoError(t, util.WriteFile(s.fs, settings, []byte("custom\n"), 0o644))

	req.SkipExisting = true
	res, err := s.Scaffold(req)
	require.NoError(t, err)

	assert.Len(t, res.SkippedFiles, 4)
	assert.Equal(t, "custom\n", testingx.ReadFile(t, s.fs, settings))
}

func TestUnsupportedKindCreatesNothing(t *testing.T) {
	s, _ := newScaffolder(t)

	_, err := s.Scaffold(Request{Kind: "ios-native", Name: "Weather App", Destination: "/tmp/out"})
	testingx.AssertError(t, err, errors.CodeUnsupportedKind)
	assert.Contains(t, err.Error(), "flutter, android")

	_, statErr := s.fs.Stat("/tmp")
	assert.True(t, os.IsNotExist(statErr), "no filesystem entry may be created")
}

func TestInvalidNameCreatesNothing(t *testing.T) {
	tests := []struct {
		name string
		msg  string
	}{
		{"", "project name cannot be empty"},
		{"   \t ", "project name cannot be empty"},
		{"../escape", "path separators"},
		{`a\b`, "path separators"},
		{"..", "not a valid directory name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newScaffolder(t)

			_, err := s.Scaffold(Request{Kind: KindFlutter, Name: tt.name, Destination: "/tmp/out"})
			testingx.AssertError(t, err, errors.CodeValidation)
			assert.Contains(t, err.Error(), tt.msg)

			_, statErr := s.fs.Stat("/tmp")
			assert.True(t, os.IsNotExist(statErr), "no filesystem entry may be created")
		})
	}
}

func TestDestinationDefaultsToWorkingDir(t *testing.T) {
	s, _ := newScaffolder(t)

	res, err := s.Scaffold(Request{Kind: KindFlutter, Name: "App"})
	require.NoError(t, err)
	assert.Equal(t, "/work/app", res.ProjectPath)

	res, err = s.Scaffold(Request{Kind: KindFlutter, Name: "App", Destination: "nested"})
	require.NoError(t, err)
	assert.Equal(t, "/work/nested/app", res.ProjectPath)
}

func TestDirectoryCreationFailureLeavesPartialTree(t *testing.T) {
	fs := testingx.NewFailingFS(memfs.New()).FailMkdir("weather_app/lib/screens")
	logger := testingx.NewMockLogger(t)
	s, err := New(fs, logger)
	require.NoError(t, err)

	res, err := s.Scaffold(Request{Kind: KindFlutter, Name: "Weather App", Destination: "/tmp/out"})
	testingx.AssertError(t, err, errors.CodeDirectoryCreation)
	assert.ErrorIs(t, err, testingx.ErrInjected)
	assert.Contains(t, err.Error(), "/tmp/out/weather_app/lib/screens")

	assert.Equal(t, []string{"lib", "lib/models", "lib/providers"}, res.CreatedDirs)
	assert.Equal(t, []string{"lib", "lib/models", "lib/providers"}, testingx.ListDirs(t, fs, "/tmp/out/weather_app"))
	logger.AssertLogged("ERROR", "Failed to create directory")
}

func TestRootCreationFailure(t *testing.T) {
	fs := testingx.NewFailingFS(memfs.New()).FailMkdir("/tmp/out/weather_app")
	s, err := New(fs, nil)
	require.NoError(t, err)

	_, err = s.Scaffold(Request{Kind: KindFlutter, Name: "Weather App", Destination: "/tmp/out"})
	testingx.AssertError(t, err, errors.CodeDirectoryCreation)
}

func TestFileWriteFailureLeavesPartialTree(t *testing.T) {
	fs := testingx.NewFailingFS(memfs.New()).FailWrite("weather_app/README.md")
	s, err := New(fs, nil)
	require.NoError(t, err)

	res, err := s.Scaffold(Request{Kind: KindFlutter, Name: "Weather App", Destination: "/tmp/out"})
	testingx.AssertError(t, err, errors.CodeFileWrite)
	assert.Equal(t, []string{"lib/main.dart", "pubspec.yaml"}, res.WrittenFiles)

	// Re-running after the fault is gone completes the tree.
	s.fs = fs.Filesystem
	res, err = s.Scaffold(Request{Kind: KindFlutter, Name: "Weather App", Destination: "/tmp/out"})
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", ".gitignore"}, res.WrittenFiles)
	assert.Equal(t, flutterDirs, testingx.ListDirs(t, s.fs, res.ProjectPath))
}

func TestProjectPathIsAFile(t *testing.T) {
	s, _ := newScaffolder(t)
	require.NoError(t, util.WriteFile(s.fs, "/tmp/out/weather_app", []byte("x"), 0o644))

	_, err := s.Scaffold(Request{Kind: KindFlutter, Name: "Weather App", Destination: "/tmp/out"})
	testingx.AssertError(t, err, errors.CodeDirectoryCreation)
}

func TestValidateName(t *testing.T) {
	s, _ := newScaffolder(t)

	assert.NoError(t, s.ValidateName("  Weather App "))
	assert.NoError(t, s.ValidateName("my.app"))
	testingx.AssertError(t, s.ValidateName(" "), errors.CodeValidation)
	testingx.AssertError(t, s.ValidateName("a/b"), errors.CodeValidation)
	testingx.AssertError(t, s.ValidateName("."), errors.CodeValidation)
}

func TestLookupKind(t *testing.T) {
	s, _ := newScaffolder(t)

	layout, err := s.LookupKind(" Android ")
	require.NoError(t, err)
	assert.Equal(t, KindAndroid, layout.Kind)

	_, err = s.LookupKind("ios-native")
	testingx.AssertError(t, err, errors.CodeUnsupportedKind)
	assert.Contains(t, err.Error(), `"ios-native"`)
	assert.Contains(t, err.Error(), "flutter, android")
}
