package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name    string   `json:"name"`
	Limit   int      `json:"limit"`
	Servers []string `json:"servers"`
}

func writeFile(t *testing.T, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	require.NoError(t, err)
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bot.json5"), `{
		// comments and trailing commas are fine
		name: "iidxbot",
		limit: 5,
	}`)
	writeFile(t, filepath.Join(dir, "bot.local.json5"), `{limit: 10, servers: ["a"]}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "bot.json5"))
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "iidxbot", Limit: 10, Servers: []string{"a"}}, config)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bot.local.json5"), `{name: "local"}`)

	config, err := ReadConfig[testConfig](filepath.Join(dir, "bot.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", config.Name)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "bot.json5"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bot.json5"), `{name: `)

	_, err := ReadConfig[testConfig](filepath.Join(dir, "bot.json5"))
	require.Error(t, err)
	require.False(t, errors.Is(err, os.ErrNotExist))
}

func TestReadRecursively(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bot.json5"), `{name: "parent"}`)
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	config, err := ReadRecursively[testConfig]("bot.json5")
	require.NoError(t, err)
	require.Equal(t, "parent", config.Name)
}

func TestWithDefaults(t *testing.T) {
	config, err := WithDefaults(testConfig{Limit: 3}, testConfig{Name: "default", Limit: 5})
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "default", Limit: 3}, config)
}
