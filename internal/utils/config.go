package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Output formats for the header report
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// EnvPrefix is prepended to every configuration key read from the environment
const EnvPrefix = "RELF"

// Config represents the application configuration
type Config struct {
	LogLevel     string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat    string `yaml:"log_format" mapstructure:"log_format"`
	OutputFormat string `yaml:"output_format" mapstructure:"output_format"`
}

// LoggerConfig returns the logger settings described by c
func (c *Config) LoggerConfig() LoggerConfig {
	level, _ := ParseLogLevel(c.LogLevel)
	format, _ := ParseLogFormat(c.LogFormat)
	return LoggerConfig{Level: level, Format: format}
}

// ConfigManager handles configuration loading and management
type ConfigManager struct {
	config *Config
	viper  *viper.Viper
	logger *Logger
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		config: &Config{},
		viper:  viper.New(),
		logger: NewDefaultLogger(),
	}
}

// LoadConfig loads configuration from defaults, an optional file and
// RELF_* environment variables, in increasing order of precedence.
// An explicitly named file must exist; otherwise relf.yaml is looked up
// in the working directory and $HOME/.relf.
func (c *ConfigManager) LoadConfig(configFile string) error {
	c.setDefaults()

	c.viper.SetEnvPrefix(EnvPrefix)
	c.viper.AutomaticEnv()
	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configFile != "" {
		c.viper.SetConfigFile(configFile)
		if err := c.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		c.logger.WithComponent("config").Debugf("Loaded config from: %s", c.viper.ConfigFileUsed())
	} else {
		c.viper.SetConfigName("relf")
		c.viper.AddConfigPath(".")
		c.viper.AddConfigPath("$HOME/.relf")

		if err := c.viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("failed to read config file: %w", err)
			}
			c.logger.WithComponent("config").Debug("No config file found, using defaults and environment variables")
		} else {
			c.logger.WithComponent("config").Debugf("Loaded config from: %s", c.viper.ConfigFileUsed())
		}
	}

	return c.finish()
}

// LoadWithOverrides loads configuration like LoadConfig and then applies
// overrides, which take precedence over every other source
func (c *ConfigManager) LoadWithOverrides(configFile string, overrides map[string]interface{}) error {
	for key, value := range overrides {
		c.viper.Set(key, value)
	}
	return c.LoadConfig(configFile)
}

func (c *ConfigManager) finish() error {
	if err := c.viper.Unmarshal(c.config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.validateConfig(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func (c *ConfigManager) setDefaults() {
	c.viper.SetDefault("log_level", string(LogLevelWarn))
	c.viper.SetDefault("log_format", string(LogFormatText))
	c.viper.SetDefault("output_format", OutputFormatText)
}

// validateConfig validates the loaded configuration
func (c *ConfigManager) validateConfig() error {
	if _, ok := ParseLogLevel(c.config.LogLevel); !ok {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.config.LogLevel,
			[]string{"debug", "info", "warn", "error"})
	}
	if _, ok := ParseLogFormat(c.config.LogFormat); !ok {
		return fmt.Errorf("invalid log format: %s (valid: %v)", c.config.LogFormat,
			[]string{"text", "json"})
	}

	validOutputFormats := []string{OutputFormatText, OutputFormatJSON}
	c.config.OutputFormat = strings.ToLower(c.config.OutputFormat)
	if !contains(validOutputFormats, c.config.OutputFormat) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.config.OutputFormat, validOutputFormats)
	}
	return nil
}

// GetConfig returns the loaded configuration
func (c *ConfigManager) GetConfig() *Config {
	return c.config
}

// SetLogger sets the logger for the config manager
func (c *ConfigManager) SetLogger(logger *Logger) {
	c.logger = logger
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// LoadDefaultConfig loads configuration without an explicit file
func LoadDefaultConfig() (*Config, error) {
	manager := NewConfigManager()
	if err := manager.LoadConfig(""); err != nil {
		return nil, err
	}
	return manager.GetConfig(), nil
}

// LoadConfigFromFile loads configuration from a specific file
func LoadConfigFromFile(filename string) (*Config, error) {
	manager := NewConfigManager()
	if err := manager.LoadConfig(filename); err != nil {
		return nil, err
	}
	return manager.GetConfig(), nil
}
