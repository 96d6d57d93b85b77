package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
model:
  model: "llama-3.1-8b-instant"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.groq.com/openai", cfg.Model.BaseURL)
	assert.Equal(t, "vecgo", cfg.RAG.Backend)
	assert.Equal(t, 512, cfg.RAG.ChunkSize)
	assert.Equal(t, 50, cfg.RAG.ChunkOverlap)
	assert.Equal(t, 5, cfg.RAG.TopK)
	assert.Equal(t, 768, cfg.Embeddings.Dimension)
	assert.Equal(t, "nexi", cfg.Session.Identity)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_GROQ_KEY", "secret-token")
	path := writeConfig(t, `
model:
  api_key: "${TEST_GROQ_KEY}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-token", cfg.Model.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "model: [this is not a mapping")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *Config)
		valid  bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
			valid:  true,
		},
		{
			name:   "overlap must stay under chunk size",
			mutate: func(cfg *Config) { cfg.RAG.ChunkOverlap = 512 },
			valid:  false,
		},
		{
			name:   "unknown vector backend",
			mutate: func(cfg *Config) { cfg.RAG.Backend = "pinecone" },
			valid:  false,
		},
		{
			name:   "vecgo needs a snapshot path",
			mutate: func(cfg *Config) { cfg.RAG.SnapshotPath = "" },
			valid:  false,
		},
		{
			name: "qdrant needs a collection",
			mutate: func(cfg *Config) {
				cfg.RAG.Backend = "qdrant"
				cfg.RAG.Qdrant.Collection = ""
			},
			valid: false,
		},
		{
			name:   "enabled session needs credentials",
			mutate: func(cfg *Config) { cfg.Session.Enabled = true },
			valid:  false,
		},
		{
			name:   "enabled discord needs a token",
			mutate: func(cfg *Config) { cfg.Discord.Enabled = true },
			valid:  false,
		},
		{
			name:   "negative temperature",
			mutate: func(cfg *Config) { cfg.Model.Temperature = -1 },
			valid:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
