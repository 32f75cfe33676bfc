package config

import (
	"errors"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Report output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatPDF   = "pdf"
)

type Config struct {
	Env string `validate:"required"`

	GitHub  GitHubConfig
	Report  ReportConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// GitHubConfig controls how the gh program is invoked.
type GitHubConfig struct {
	Token       string
	Binary      string `validate:"required"`
	MinVersion  string `validate:"required"`
	PerPage     int    `validate:"min=1,max=100"`
	Concurrency int    `validate:"min=1"`
}

// ReportConfig names the classroom and assignment a report is built for.
type ReportConfig struct {
	ClassroomName  string
	AssignmentName string
	Format         string `validate:"oneof=table csv pdf"`
	OutputDir      string
}

type LogConfig struct {
	Level  string
	Format string `validate:"omitempty,oneof=console json"`
}

// MetricsConfig enables the prometheus textfile dump written at exit.
type MetricsConfig struct {
	File string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.GitHub = GitHubConfig{
		Token:       v.GetString("GC_TOKEN"),
		Binary:      v.GetString("GH_PATH"),
		MinVersion:  v.GetString("GH_MIN_VERSION"),
		PerPage:     v.GetInt("GC_PER_PAGE"),
		Concurrency: v.GetInt("GC_CONCURRENCY"),
	}

	cfg.Report = ReportConfig{
		ClassroomName:  v.GetString("GC_CLASSROOM_NAME"),
		AssignmentName: v.GetString("GC_ASSIGNMENT_NAME"),
		Format:         strings.ToLower(v.GetString("REPORT_FORMAT")),
		OutputDir:      v.GetString("REPORT_OUTPUT_DIR"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{File: v.GetString("METRICS_FILE")}

	return cfg, nil
}

// Validate checks field constraints. It is called after command flags are applied.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("GC_TOKEN", "")
	v.SetDefault("GC_CLASSROOM_NAME", "")
	v.SetDefault("GC_ASSIGNMENT_NAME", "")

	v.SetDefault("GH_PATH", "gh")
	v.SetDefault("GH_MIN_VERSION", "2.0.0")
	v.SetDefault("GC_PER_PAGE", 100)
	v.SetDefault("GC_CONCURRENCY", 1)

	v.SetDefault("REPORT_FORMAT", FormatTable)
	v.SetDefault("REPORT_OUTPUT_DIR", "./reports")

	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("METRICS_FILE", "")
}
