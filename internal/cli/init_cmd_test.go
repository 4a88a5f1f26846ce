package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyclef-go/wyclef/internal/config"
)

// resetInitFlags resets the init command's local flag state.
func resetInitFlags(t *testing.T) {
	t.Helper()
	resetRootCmd(t)
	initFlagUser = false
	initFlagForce = false
	initCmd.Flags().VisitAll(func(f *pflag.Flag) {
		f.Changed = false
	})
}

func TestInitCmd_WritesToWorkingDirectory(t *testing.T) {
	resetInitFlags(t)
	dir := isolateConfig(t)

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	_, err := runRoot(t, "init")
	require.NoError(t, err)

	path := filepath.Join(dir, config.ConfigFileName)
	cfg, _, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaults(), cfg)
	assert.Contains(t, stderr.String(), "Created "+path)
}

func TestInitCmd_UserFlag(t *testing.T) {
	resetInitFlags(t)
	isolateConfig(t)

	_, err := runRoot(t, "init", "--user")
	require.NoError(t, err)
	assert.FileExists(t, config.UserConfigPath())
}

func TestInitCmd_ExistingFileNeedsForce(t *testing.T) {
	resetInitFlags(t)
	dir := isolateConfig(t)
	path := writeMinimalToml(t, dir, "[viewer]\npage_step = 3\n")

	_, err := runRoot(t, "init")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrConfigExists))

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "[viewer]\npage_step = 3\n", string(content))

	resetInitFlags(t)
	_, err = runRoot(t, "init", "--force")
	require.NoError(t, err)
	cfg, _, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultPageStep, cfg.Viewer.PageStep)
}

func TestInitCmd_RejectsArgs(t *testing.T) {
	resetInitFlags(t)
	isolateConfig(t)

	_, err := runRoot(t, "init", "go-cli")
	assert.Error(t, err)
}
