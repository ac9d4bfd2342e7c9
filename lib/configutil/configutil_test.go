package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Platform          string  `json:"platform"`
	UseDecimal        bool    `json:"use_decimal"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

func writeFile(t testing.TB, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "overstats.json5")
	writeFile(t, name, `{
		// json5 allows comments
		platform: "psn",
		requests_per_second: 2,
	}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{Platform: "psn", RequestsPerSecond: 2}, cfg)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "overstats.json5")
	writeFile(t, name, `{platform: "psn", requests_per_second: 2}`)
	writeFile(t, filepath.Join(dir, "overstats.local.json5"), `{platform: "xbl", use_decimal: true}`)

	cfg, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, testConfig{Platform: "xbl", UseDecimal: true, RequestsPerSecond: 2}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "overstats.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadRecursivelyOr(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0777))
	writeFile(t, filepath.Join(root, "overstats.json5"), `{platform: "xbl"}`)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	defaults := testConfig{Platform: "pc", RequestsPerSecond: 2}

	cfg, err := ReadRecursivelyOr("overstats.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, testConfig{Platform: "xbl", RequestsPerSecond: 2}, cfg)

	cfg, err = ReadRecursivelyOr("does-not-exist.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, cfg)
}

func TestReadConfigOr(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "overstats.json5")
	writeFile(t, name, `{use_decimal: true}`)

	cfg, err := ReadConfigOr(name, testConfig{Platform: "pc", RequestsPerSecond: 2})
	require.NoError(t, err)
	require.Equal(t, testConfig{Platform: "pc", UseDecimal: true, RequestsPerSecond: 2}, cfg)

	_, err = ReadConfigOr(filepath.Join(dir, "missing.json5"), testConfig{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigMalformed(t *testing.T) {
	name := filepath.Join(t.TempDir(), "overstats.json5")
	writeFile(t, name, `{platform: }`)

	_, err := ReadConfig[testConfig](name)
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
	require.Contains(t, err.Error(), name)
}
