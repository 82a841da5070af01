package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "alumcli/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, DefaultFirstYear, cfg.Analysis.FirstYear)
	assert.Equal(t, DefaultLastYear, cfg.Analysis.LastYear)
	assert.Equal(t, DefaultDirectiveKeywords, cfg.Analysis.DirectiveKeywords)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "bad output mode",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: true,
		},
		{
			name:    "last year before first year",
			mutate:  func(c *Config) { c.Analysis.LastYear = c.Analysis.FirstYear - 1 },
			wantErr: true,
		},
		{
			name:    "first year before registry epoch",
			mutate:  func(c *Config) { c.Analysis.FirstYear = 1900 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeConfigs_EnvTakesPrecedence(t *testing.T) {
	fileCfg := Config{
		Logging:  LoggingConfig{Level: "debug", Output: "file", FilePath: "logs/file.log"},
		Analysis: AnalysisConfig{FirstYear: 2019, LastYear: 2023},
	}
	envCfg := Config{
		Logging:  LoggingConfig{Level: "warn"},
		Analysis: AnalysisConfig{LastYear: 2024},
	}

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, "warn", merged.Logging.Level, "env level wins")
	assert.Equal(t, "file", merged.Logging.Output, "file output kept")
	assert.Equal(t, 2019, merged.Analysis.FirstYear, "file year kept")
	assert.Equal(t, 2024, merged.Analysis.LastYear, "env year wins")
}

func TestMergeConfigs_PriorDegreeEnvPresence(t *testing.T) {
	fileCfg := Config{Analysis: AnalysisConfig{RequirePriorDegree: true}}

	t.Run("unset env keeps the file value", func(t *testing.T) {
		merged := mergeConfigs(fileCfg, Config{})
		assert.True(t, merged.Analysis.RequirePriorDegree)
	})

	t.Run("explicit false overrides the file", func(t *testing.T) {
		t.Setenv("ALUM_ANALYSIS_REQUIRE_PRIOR_DEGREE", "false")
		merged := mergeConfigs(fileCfg, Config{Analysis: AnalysisConfig{RequirePriorDegree: false}})
		assert.False(t, merged.Analysis.RequirePriorDegree)
	})
}

func TestLoadInvalidEnvIsConfigError(t *testing.T) {
	t.Setenv("ALUM_ANALYSIS_FIRST_YEAR", "1900")

	_, err := Load()
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestPathsFromBase(t *testing.T) {
	base := t.TempDir()
	paths := PathsFromBase(base)

	assert.Equal(t, base, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(base, "data", "posgrados"), paths.EnrollmentDir)
	assert.Equal(t, filepath.Join(base, "output", "egresados-posgrados"), paths.MatchReportsDir)
	assert.Equal(t, filepath.Join(base, "data", DefaultRegistryFile), paths.RegistryFile)

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.CleanDir)
	assert.DirExists(t, paths.SurveyDir)
	assert.DirExists(t, paths.LogsDir)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "missing.csv")))
}
