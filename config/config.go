// Package config loads the agent configuration from a YAML file and the
// environment. A missing config file is fine; defaults plus environment
// variables are enough to run.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type LLM struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
}

type Config struct {
	ProjectsDir string `yaml:"projects_dir"`
	ServerAddr  string `yaml:"server_addr"`
	LLM         LLM    `yaml:"llm"`
}

func Default() Config {
	return Config{
		ProjectsDir: "projects",
		ServerAddr:  ":8080",
		LLM:         LLM{Provider: "gemini"},
	}
}

// Load reads path, layering it over the defaults. A .env file in the working
// directory is applied first so api_key_env lookups see it.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ResolveAPIKey()
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ProjectsDir == "" {
		cfg.ProjectsDir = Default().ProjectsDir
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = Default().ServerAddr
	}
	cfg.ResolveAPIKey()
	return cfg, nil
}

// ResolveAPIKey fills LLM.APIKey from the environment when the file left it
// empty: first the configured env var, then the provider's conventional one.
func (c *Config) ResolveAPIKey() {
	if c.LLM.APIKey != "" {
		return
	}
	if c.LLM.APIKeyEnv != "" {
		c.LLM.APIKey = os.Getenv(c.LLM.APIKeyEnv)
		return
	}
	switch c.LLM.Provider {
	case "", "gemini":
		c.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	case "openai":
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	case "deepseek":
		c.LLM.APIKey = os.Getenv("DEEPSEEK_API_KEY")
	}
}
