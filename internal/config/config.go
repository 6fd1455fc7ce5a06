package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Scrape ScrapeConfig `yaml:"scrape" mapstructure:"scrape"`
	Clean  CleanConfig  `yaml:"clean" mapstructure:"clean"`
	Fix    FixConfig    `yaml:"fix" mapstructure:"fix"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// ScrapeConfig configures the extraction run.
type ScrapeConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	UserAgent      string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs    int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries     int    `yaml:"max_retries" mapstructure:"max_retries"`
	DelaySecs      int    `yaml:"delay_secs" mapstructure:"delay_secs"`
	OutputDir      string `yaml:"output_dir" mapstructure:"output_dir"`
	CheckpointFile string `yaml:"checkpoint_file" mapstructure:"checkpoint_file"`
	SaveEvery      int    `yaml:"save_every" mapstructure:"save_every"`
}

// Timeout returns the per-request timeout.
func (c ScrapeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// Delay returns the courtesy delay between page fetches.
func (c ScrapeConfig) Delay() time.Duration {
	return time.Duration(c.DelaySecs) * time.Second
}

// CleanConfig configures the normalizer pass.
type CleanConfig struct {
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`
}

// FixConfig configures the season-specific correction pass.
type FixConfig struct {
	CorrectionsFile string `yaml:"corrections_file" mapstructure:"corrections_file"`
	BackupDir       string `yaml:"backup_dir" mapstructure:"backup_dir"`
}

// StoreConfig configures the database migration.
type StoreConfig struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"`
}

// ReportConfig configures report output.
type ReportConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BASEBALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("scrape.base_url", "https://www.baseball-almanac.com")
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")
	v.SetDefault("scrape.timeout_secs", 30)
	v.SetDefault("scrape.max_retries", 3)
	v.SetDefault("scrape.delay_secs", 2)
	v.SetDefault("scrape.output_dir", "data")
	v.SetDefault("scrape.checkpoint_file", "data/checkpoint.json")
	v.SetDefault("scrape.save_every", 10)
	v.SetDefault("clean.max_workers", 4)
	v.SetDefault("fix.corrections_file", "corrections.yaml")
	v.SetDefault("fix.backup_dir", "data/backup")
	v.SetDefault("store.database_path", "data/baseball.db")
	v.SetDefault("report.dir", "reports")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
