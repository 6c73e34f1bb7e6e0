package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "projects", cfg.ProjectsDir)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `projects_dir: /data/papers
server_addr: ":9090"
llm:
  provider: openai
  model: gpt-4o
  api_key: sk-test
  base_url: https://example.invalid/v1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/papers", cfg.ProjectsDir)
	assert.Equal(t, ":9090", cfg.ServerAddr)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
}

func TestLoadResolvesAPIKeyFromNamedEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "llm:\n  provider: openai\n  api_key_env: PAPER_TEST_KEY\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PAPER_TEST_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
}

func TestLoadResolvesProviderDefaultEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gm-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gm-key", cfg.LLM.APIKey)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
