package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed schema.json
var schemaJSON string

// Load reads .env, then merges the config file at path (JSON or YAML) over
// the defaults, validates it and fills credentials from the environment. A
// missing config file yields the defaults.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	default:
		if err := decode(path, data, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}

	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	isYAML := false
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		isYAML = true
	}

	var raw any
	if isYAML {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("config: invalid YAML: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("config: invalid JSON: %w", err)
		}
	}

	schema, err := jsonschema.CompileString("config.schema.json", schemaJSON)
	if err != nil {
		return fmt.Errorf("config: failed to compile schema: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}

	// Decoding over the defaults keeps every key the file does not mention.
	if isYAML {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("config: failed to unmarshal into Config struct: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Env = getEnv("SAHACHARI_ENV", cfg.Env)
	cfg.Server.Addr = getEnv("SAHACHARI_HTTP_ADDR", cfg.Server.Addr)
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.Keys = APIKeys{
		GoogleTranslate:     os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
		GoogleVision:        os.Getenv("GOOGLE_VISION_API_KEY"),
		GoogleCloudTTS:      os.Getenv("GOOGLE_CLOUD_TTS_API_KEY"),
		AzureComputerVision: os.Getenv("AZURE_COMPUTER_VISION_KEY"),
		AzureVisionEndpoint: os.Getenv("AZURE_COMPUTER_VISION_ENDPOINT"),
		OpenAI:              os.Getenv("OPENAI_API_KEY"),
		Spoonacular:         os.Getenv("SPOONACULAR_API_KEY"),
		Gemini:              os.Getenv("GEMINI_API_KEY"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
