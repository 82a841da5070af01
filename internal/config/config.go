package config

import (
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "alumcli/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/alumcli.log"`
}

// AnalysisConfig contains the analysis window and matching options shared
// by the reporting tools.
type AnalysisConfig struct {
	FirstYear         int      `yaml:"first_year" envconfig:"FIRST_YEAR" default:"2021" validate:"min=1974"`
	LastYear          int      `yaml:"last_year" envconfig:"LAST_YEAR" default:"2025" validate:"gtefield=FirstYear"`
	DirectiveKeywords []string `yaml:"directive_keywords" envconfig:"DIRECTIVE_KEYWORDS"`

	// RequirePriorDegree restricts matches to graduates whose registry
	// credential is a different program completed before the enrollment
	// year.
	RequirePriorDegree bool `yaml:"require_prior_degree" envconfig:"REQUIRE_PRIOR_DEGREE" default:"false"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("ALUM", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	cfg.applyDefaults()

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file or
// environment overrides are present.
func Default() *Config {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/alumcli.log",
		},
		Analysis: AnalysisConfig{
			FirstYear: DefaultFirstYear,
			LastYear:  DefaultLastYear,
		},
	}
	cfg.applyDefaults()
	return cfg
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Output == "" {
		envConfig.Logging.Output = fileConfig.Logging.Output
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Analysis.FirstYear == 0 {
		envConfig.Analysis.FirstYear = fileConfig.Analysis.FirstYear
	}
	if envConfig.Analysis.LastYear == 0 {
		envConfig.Analysis.LastYear = fileConfig.Analysis.LastYear
	}
	if len(envConfig.Analysis.DirectiveKeywords) == 0 {
		envConfig.Analysis.DirectiveKeywords = fileConfig.Analysis.DirectiveKeywords
	}
	// A false boolean is indistinguishable from unset, so env presence
	// decides whether the file value applies.
	if _, set := os.LookupEnv("ALUM_ANALYSIS_REQUIRE_PRIOR_DEGREE"); !set {
		envConfig.Analysis.RequirePriorDegree = fileConfig.Analysis.RequirePriorDegree
	}
	return envConfig
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(DefaultLogsDir, "alumcli.log")
	}
	if c.Analysis.FirstYear == 0 {
		c.Analysis.FirstYear = DefaultFirstYear
	}
	if c.Analysis.LastYear == 0 {
		c.Analysis.LastYear = DefaultLastYear
	}
	if len(c.Analysis.DirectiveKeywords) == 0 {
		c.Analysis.DirectiveKeywords = append([]string(nil), DefaultDirectiveKeywords...)
	}
}

// validate checks the configuration using struct tags
func (c *Config) validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path of the optional config file, next to
// the executable.
func getConfigFilePath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yaml")
}
