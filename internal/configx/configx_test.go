package configx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/mobilestructure/internal/errors"
	"go.eggybyte.com/mobilestructure/internal/testingx"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadDefaults(t *testing.T) {
	settings, err := Load(LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *settings)
	assert.Equal(t, "project_builder_log.txt", settings.LogFile)
}

func TestLoadSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".mobilestructure.yaml", "log_level: debug\ndestination: /srv/apps\nkind: Flutter\n")

	settings, err := Load(LoadOptions{SearchPaths: []string{dir}})
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, "/srv/apps", settings.Destination)
	assert.Equal(t, "flutter", settings.Kind)
}

func TestLoadMissingSearchPathFileIsFine(t *testing.T) {
	settings, err := Load(LoadOptions{SearchPaths: []string{t.TempDir()}})
	require.NoError(t, err)
	assert.Equal(t, "info", settings.LogLevel)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	testingx.AssertError(t, err, errors.CodeConfig)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := writeConfig(t, dir, "settings.yaml", "log_file: from-file.txt\nlog_level: warn\njson: true\n")
	t.Setenv("MOBILESTRUCTURE_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-file", DefaultLogFile, "")
	flags.Bool("json", false, "")
	require.NoError(t, flags.Parse([]string{"--log-file", "from-flag.txt"}))

	settings, err := Load(LoadOptions{ConfigFile: file, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "from-flag.txt", settings.LogFile, "changed flag wins")
	assert.Equal(t, "error", settings.LogLevel, "env beats file")
	assert.True(t, settings.JSON, "unchanged flag keeps file value")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad level", "log_level: loud\n", "log_level"},
		{"empty log file", "log_file: \"\"\n", "log_file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeConfig(t, t.TempDir(), "c.yaml", tt.content)
			_, err := Load(LoadOptions{ConfigFile: file})
			testingx.AssertError(t, err, errors.CodeConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadKeepsUnknownKind(t *testing.T) {
	file := writeConfig(t, t.TempDir(), "c.yaml", "kind: iOS-Native\n")
	settings, err := Load(LoadOptions{ConfigFile: file})
	require.NoError(t, err)
	assert.Equal(t, "ios-native", settings.Kind, "kinds are checked against the layout table, not here")
}

func TestValidateStructNilValidator(t *testing.T) {
	type target struct {
		Name string `validate:"required"`
	}
	err := ValidateStruct(nil, &target{})
	testingx.AssertError(t, err, errors.CodeConfig)
	assert.NoError(t, ValidateStruct(nil, &target{Name: "x"}))
}
