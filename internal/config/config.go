package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Mail     MailConfig     `yaml:"mail"`
	Report   ReportConfig   `yaml:"report"`
	Database DatabaseConfig `yaml:"database"`
	LLM      LLMConfig      `yaml:"llm"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	HTTPHost string `yaml:"http_host"`
	HTTPPort int    `yaml:"http_port"`
}

// MailConfig holds outbound email settings
type MailConfig struct {
	Provider    string `yaml:"provider"` // "resend", "smtp", or empty for none
	ResendKey   string `yaml:"resend_key"`
	FromAddress string `yaml:"from_address"`
	FromName    string `yaml:"from_name"`
	ToAddress   string `yaml:"to_address"`
	// SMTP settings (if provider is "smtp")
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// ReportConfig holds report generation settings
type ReportConfig struct {
	Account    string `yaml:"account"`
	SenderName string `yaml:"sender_name"`
	CronSecret string `yaml:"cron_secret"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LLMConfig holds the optional draft-refiner settings
type LLMConfig struct {
	Enabled     bool    `yaml:"enabled"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	cfg.setDefaults()

	return &cfg, nil
}

// Default returns a configuration with only defaults applied, used when
// no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// expandEnvVars expands ${VAR} patterns in the string
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		return "${" + key + "}"
	})
}

// setDefaults sets default values for missing configuration
func (c *Config) setDefaults() {
	if c.Server.HTTPHost == "" {
		c.Server.HTTPHost = "0.0.0.0"
	}
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.FromAddress == "" {
		c.Mail.FromAddress = c.Report.Account
	}
	if c.Mail.ToAddress == "" {
		c.Mail.ToAddress = c.Report.Account
	}
	if c.Database.Path == "" {
		c.Database.Path = "./mailbrief.db"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-4o-mini"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 512
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
}
