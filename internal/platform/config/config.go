package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "focusfence/internal/platform/errors"
)

const envPrefix = "FOCUSFENCE"

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error"`
}

type TimezoneConfig struct {
	OffsetHours int `mapstructure:"offsetHours"`
}

type SessionConfig struct {
	DefaultMinutes  int           `mapstructure:"defaultMinutes" validate:"required|min:1"`
	CompletionDelay time.Duration `mapstructure:"completionDelay" validate:"required|min:1"`
	WitheredDelay   time.Duration `mapstructure:"witheredDelay" validate:"required|min:1"`
}

type ScheduleConfig struct {
	PollInterval time.Duration `mapstructure:"pollInterval" validate:"required|min:1"`
}

type JournalConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Config struct {
	DataDir    string `mapstructure:"-"`
	DBPath     string `mapstructure:"-"`
	LogPath    string `mapstructure:"-"`
	JournalDir string `mapstructure:"-"`

	Log      LogConfig      `mapstructure:"log"`
	Timezone TimezoneConfig `mapstructure:"timezone"`
	Session  SessionConfig  `mapstructure:"session"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// New loads <dataDir>/.env and <dataDir>/config.yaml (both optional), then
// lets FOCUSFENCE_* variables override, e.g. FOCUSFENCE_SESSION_WITHEREDDELAY.
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	if err := godotenv.Load(filepath.Join(dataDir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(dataDir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}

	conf.DataDir = dataDir
	conf.DBPath = filepath.Join(dataDir, "focusfence.db")
	conf.LogPath = filepath.Join(dataDir, "focusfence.log")
	conf.JournalDir = filepath.Join(dataDir, "sessions")
	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("timezone.offsetHours", 7)
	v.SetDefault("session.defaultMinutes", 25)
	v.SetDefault("session.completionDelay", 500*time.Millisecond)
	v.SetDefault("session.witheredDelay", 4*time.Second)
	v.SetDefault("schedule.pollInterval", time.Minute)
	v.SetDefault("journal.enabled", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "127.0.0.1:9464")
}

func (c Config) Validate() error {
	for _, section := range []any{c.Log, c.Session, c.Schedule} {
		v := validate.Struct(section)
		if !v.Validate() {
			return fmt.Errorf("%w: config: %s", apperrors.ErrInvalidInput, v.Errors.One())
		}
	}
	if c.Timezone.OffsetHours < -12 || c.Timezone.OffsetHours > 14 {
		return fmt.Errorf("%w: config: timezone offset %d out of range", apperrors.ErrInvalidInput, c.Timezone.OffsetHours)
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		return fmt.Errorf("%w: config: metrics addr is required when metrics are enabled", apperrors.ErrInvalidInput)
	}
	return nil
}
