package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Load reads configuration from the named file (optional), falling back to
// environment variables and defaults. A missing file is not an error.
func Load(configName string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	cfg := &Config{
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("SERVER_PORT"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			MaxUploadMB:  v.GetInt("MAX_UPLOAD_MB"),
		},
		Engine: EngineConfig{
			RulesPath:       v.GetString("RULES_PATH"),
			SampleStatement: v.GetString("SAMPLE_STATEMENT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("MAX_UPLOAD_MB", 10)

	v.SetDefault("RULES_PATH", "")
	v.SetDefault("SAMPLE_STATEMENT", "testdata/sample_statement.pdf")
}
