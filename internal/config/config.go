package config

import (
	"errors"
	"fmt"
	"time"
)

// Data sources understood by the record store.
const (
	DataSourceTemporary  = "temporary"
	DataSourceProduction = "production"
	DataSourceSQLite     = "sqlite"
)

// Config holds the main configuration for the application.
type Config struct {
	DataSource string         `json:"data_source"           yaml:"data_source"`
	DataFile   string         `json:"data_file,omitempty"   yaml:"data_file,omitempty"`
	SQLitePath string         `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	App        AppSettings    `json:"app_settings"          yaml:"app_settings"`
	Server     ServerSettings `json:"server"                yaml:"server"`
	Log        LogSettings    `json:"log"                   yaml:"log"`

	// Populated from the environment only, never from the config file.
	Env         string  `json:"-" yaml:"-"`
	DatabaseURL string  `json:"-" yaml:"-"`
	Keys        APIKeys `json:"-" yaml:"-"`
}

// AppSettings mirrors the user-facing limits.
type AppSettings struct {
	DefaultLanguage       string   `json:"default_language"        yaml:"default_language"`
	MaxFileSizeMB         int      `json:"max_file_size_mb"        yaml:"max_file_size_mb"`
	SupportedImageFormats []string `json:"supported_image_formats" yaml:"supported_image_formats"`
	MaxTextLength         int      `json:"max_text_length"         yaml:"max_text_length"`
	CacheDuration         int      `json:"cache_duration"          yaml:"cache_duration"` // seconds
}

// ServerSettings holds HTTP listener settings.
type ServerSettings struct {
	Addr               string   `json:"addr"                  yaml:"addr"`
	AllowOrigins       []string `json:"allow_origins"         yaml:"allow_origins"`
	RateLimitPerSecond float64  `json:"rate_limit_per_second" yaml:"rate_limit_per_second"`
	RateLimitBurst     int      `json:"rate_limit_burst"      yaml:"rate_limit_burst"`
	RequestTimeoutSec  int      `json:"request_timeout_sec"   yaml:"request_timeout_sec"`
}

// LogSettings controls the rotating log file.
type LogSettings struct {
	ToFile bool   `json:"to_file" yaml:"to_file"`
	File   string `json:"file"    yaml:"file"`
}

// APIKeys are the credentials that decide which provider backs each capability.
type APIKeys struct {
	GoogleTranslate     string
	GoogleVision        string
	GoogleCloudTTS      string
	AzureComputerVision string
	AzureVisionEndpoint string
	OpenAI              string
	Spoonacular         string
	Gemini              string
}

// CacheTTL returns the result cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.App.CacheDuration) * time.Second
}

// RequestTimeout bounds outbound calls made on behalf of one request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSec) * time.Second
}

// MaxUploadBytes is the image upload limit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.App.MaxFileSizeMB) << 20
}

// APIStatus reports which credentials are present.
func (c *Config) APIStatus() map[string]bool {
	return map[string]bool{
		"google_translate":      c.Keys.GoogleTranslate != "",
		"google_vision":         c.Keys.GoogleVision != "",
		"google_cloud_tts":      c.Keys.GoogleCloudTTS != "",
		"azure_computer_vision": c.Keys.AzureComputerVision != "" && c.Keys.AzureVisionEndpoint != "",
		"openai":                c.Keys.OpenAI != "",
		"spoonacular":           c.Keys.Spoonacular != "",
		"gemini":                c.Keys.Gemini != "",
	}
}

// Validate checks values the schema cannot express.
func (c *Config) Validate() error {
	var errs []error

	switch c.DataSource {
	case DataSourceTemporary, DataSourceProduction, DataSourceSQLite:
	default:
		errs = append(errs, fmt.Errorf("unknown data_source %q", c.DataSource))
	}

	if c.DataSource == DataSourceSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("sqlite_path is required for the sqlite data source"))
	}
	if c.App.MaxFileSizeMB <= 0 {
		errs = append(errs, errors.New("max_file_size_mb must be greater than 0"))
	}
	if c.App.MaxTextLength <= 0 {
		errs = append(errs, errors.New("max_text_length must be greater than 0"))
	}
	if c.App.CacheDuration < 0 {
		errs = append(errs, errors.New("cache_duration must not be negative"))
	}

	return errors.Join(errs...)
}
