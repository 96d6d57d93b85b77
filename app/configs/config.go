package configs

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Model      ModelConfig      `yaml:"model" validate:"required"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" validate:"required"`
	RAG        RAGConfig        `yaml:"rag" validate:"required"`
	Session    SessionConfig    `yaml:"session"`
	Discord    DiscordConfig    `yaml:"discord"`
	Storage    StorageConfig    `yaml:"storage"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// ModelConfig points at an OpenAI-compatible chat completions provider.
type ModelConfig struct {
	BaseURL     string  `yaml:"base_url" validate:"required,url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model" validate:"required"`
	Temperature float64 `yaml:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// EmbeddingsConfig points at an OpenAI-compatible embeddings provider. The
// chat provider may not serve embeddings (Groq does not), so it is configured
// separately.
type EmbeddingsConfig struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model" validate:"required"`
	Dimension int    `yaml:"dimension" validate:"required,gt=0"`
}

type RAGConfig struct {
	CorpusDir    string       `yaml:"corpus_dir" validate:"required"`
	Backend      string       `yaml:"backend" validate:"required,oneof=vecgo qdrant"`
	SnapshotPath string       `yaml:"snapshot_path"`
	ChunkSize    int          `yaml:"chunk_size" validate:"gt=0"`
	ChunkOverlap int          `yaml:"chunk_overlap" validate:"gte=0"`
	TopK         int          `yaml:"top_k" validate:"gt=0"`
	Qdrant       QdrantConfig `yaml:"qdrant"`
}

type QdrantConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	Collection string `yaml:"collection"`
}

// SessionConfig holds the real-time audio room credentials.
type SessionConfig struct {
	Enabled   bool   `yaml:"enabled"`
	URL       string `yaml:"url" validate:"required_if=Enabled true"`
	APIKey    string `yaml:"api_key" validate:"required_if=Enabled true"`
	APISecret string `yaml:"api_secret" validate:"required_if=Enabled true"`
	Room      string `yaml:"room" validate:"required_if=Enabled true"`
	Identity  string `yaml:"identity"`
}

type DiscordConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Token     string `yaml:"token" validate:"required_if=Enabled true"`
	ChannelID string `yaml:"channel_id"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr" validate:"required_if=Enabled true"`
}

var validate = validator.New()

// Load reads the YAML config at path, expands ${ENV} references and validates
// the result. Secrets stay in the environment, the file only names them.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configs file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		Model: ModelConfig{
			BaseURL:     "https://api.groq.com/openai",
			Model:       "llama-3.1-8b-instant",
			Temperature: 0,
			MaxTokens:   -1,
		},
		Embeddings: EmbeddingsConfig{
			BaseURL:   "http://localhost:1234",
			Model:     "text-embedding-nomic-embed-text-v1.5",
			Dimension: 768,
		},
		RAG: RAGConfig{
			CorpusDir:    "./corpus",
			Backend:      "vecgo",
			SnapshotPath: "./data/index.snapshot",
			ChunkSize:    512,
			ChunkOverlap: 50,
			TopK:         5,
			Qdrant: QdrantConfig{
				Host:       "localhost",
				Port:       6334,
				Collection: "university_data",
			},
		},
		Session: SessionConfig{
			Identity: "nexi",
		},
		Storage: StorageConfig{
			Path: "./data/assistant.db",
		},
		Metrics: MetricsConfig{
			Addr: ":9091",
		},
	}
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("config validation: chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.RAG.ChunkOverlap, c.RAG.ChunkSize)
	}
	if c.RAG.Backend == "vecgo" && c.RAG.SnapshotPath == "" {
		return fmt.Errorf("config validation: snapshot_path is required for the vecgo backend")
	}
	if c.RAG.Backend == "qdrant" && c.RAG.Qdrant.Collection == "" {
		return fmt.Errorf("config validation: qdrant.collection is required for the qdrant backend")
	}
	return nil
}
