package config

// Default returns the built-in configuration that a config file is merged over.
func Default() *Config {
	return &Config{
		DataSource: DataSourceTemporary,
		DataFile:   "data/sample_data.json",
		App: AppSettings{
			DefaultLanguage:       "english",
			MaxFileSizeMB:         10,
			SupportedImageFormats: []string{"jpg", "jpeg", "png"},
			MaxTextLength:         5000,
			CacheDuration:         3600,
		},
		Server: ServerSettings{
			Addr:               ":8080",
			AllowOrigins:       []string{"http://localhost:8081"},
			RateLimitPerSecond: 5,
			RateLimitBurst:     10,
			RequestTimeoutSec:  45,
		},
		Log: LogSettings{
			File: "logs/sahachari.log",
		},
		Env: "development",
	}
}
