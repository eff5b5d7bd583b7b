package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/l5x/internal/testutil"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "l5x", cmd.Use)
	assert.Contains(t, cmd.Long, "decorated data")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"format", "parse", "tags", "get", "set", "types", "typedef", "index", "test"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, DefaultConfigFile, configFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, "tags", testutil.WriteSample(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestConfigSetsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "l5x.yaml", "format: json\nstore: "+filepath.Join(dir, "index.db")+"\n")

	out, err := run(t, "tags", testutil.WriteSample(t), "--config", cfg)
	require.NoError(t, err)
	resp := decode[[]TagInfo](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Len(t, resp.Data, 7)

	// Flags win over the config.
	out, err = run(t, "tags", testutil.WriteSample(t), "--config", cfg, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "TAG")
}

func TestConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "tags", testutil.WriteSample(t), "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	typo := writeFile(t, dir, "typo.yaml", "formt: json\n")
	_, err = run(t, "tags", testutil.WriteSample(t), "--config", typo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")

	bad := writeFile(t, dir, "bad.yaml", "format: xml\n")
	_, err = run(t, "tags", testutil.WriteSample(t), "--config", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "absent.yaml"), false)
	require.NoError(t, err)
	assert.Equal(t, &Config{Store: DefaultStore}, cfg)

	empty := writeFile(t, dir, "empty.yaml", "")
	cfg, err = LoadConfig(empty, true)
	require.NoError(t, err)
	assert.Equal(t, DefaultStore, cfg.Store)

	full := writeFile(t, dir, "full.yaml", "format: json\nverbose: true\nstore: a.db\nscenarios: ./scenarios\ntypes: ./types\n")
	cfg, err = LoadConfig(full, true)
	require.NoError(t, err)
	assert.Equal(t, &Config{Format: "json", Verbose: true, Store: "a.db", Scenarios: "./scenarios", Types: "./types"}, cfg)
}
