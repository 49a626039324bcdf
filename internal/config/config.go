package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces the environment overrides, e.g. CLINIC_LOG_LEVEL.
	EnvPrefix = "CLINIC"

	// FlagConfigDir names the command line flag pointing at config.yaml's
	// directory.
	FlagConfigDir = "config"

	configDirKey = "config_dir"
)

type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Log           LogConfig          `mapstructure:"log"`
	Locale        string             `mapstructure:"locale"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	UI            UIConfig           `mapstructure:"ui"`
	Metrics       MetricsConfig      `mapstructure:"metrics"`
	Audit         AuditConfig        `mapstructure:"audit"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type NotificationConfig struct {
	// AppointmentCreated posts a feed notice for every new booking.
	AppointmentCreated bool `mapstructure:"appointment_created"`
}

type UIConfig struct {
	RecoveryNoticeTTL time.Duration `mapstructure:"recovery_notice_ttl"`
}

type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

type AuditConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// overrides lists the variables read from the environment. Unset
// variables leave the pointer nil so file values survive.
type overrides struct {
	Env                *string        `envconfig:"APP_ENV"`
	LogLevel           *string        `envconfig:"LOG_LEVEL"`
	LogJSON            *bool          `envconfig:"LOG_JSON"`
	Locale             *string        `envconfig:"LOCALE"`
	AppointmentNotices *bool          `envconfig:"NOTIFICATIONS_APPOINTMENT_CREATED"`
	RecoveryNoticeTTL  *time.Duration `envconfig:"UI_RECOVERY_NOTICE_TTL"`
	MetricsNamespace   *string        `envconfig:"METRICS_NAMESPACE"`
	AuditMaxEntries    *int           `envconfig:"AUDIT_MAX_ENTRIES"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("locale", "pt-BR")
	v.SetDefault("notifications.appointment_created", false)
	v.SetDefault("ui.recovery_notice_ttl", 3*time.Second)
	v.SetDefault("metrics.namespace", "clinic")
	v.SetDefault("audit.max_entries", 500)
}

// Load reads config.yaml from the given directories (or . and ./config),
// falls back to defaults when no file exists, then applies CLINIC_*
// environment overrides.
func Load(paths ...string) (*Config, error) {
	return load(viper.New(), paths)
}

// BindFlags registers --config on flags.
func BindFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfigDir, "", "directory holding config.yaml")
}

// LoadFlags loads the configuration from the directory given by --config,
// or the default search paths when it is empty. flags must have been
// prepared with BindFlags.
func LoadFlags(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := v.BindPFlag(configDirKey, flags.Lookup(FlagConfigDir)); err != nil {
		return nil, fmt.Errorf("failed to bind --%s: %w", FlagConfigDir, err)
	}

	var paths []string
	if dir := v.GetString(configDirKey); dir != "" {
		paths = append(paths, dir)
	}
	return load(v, paths)
}

func load(v *viper.Viper, paths []string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var env overrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.Env != nil {
		cfg.App.Env = *env.Env
	}
	if env.LogLevel != nil {
		cfg.Log.Level = *env.LogLevel
	}
	if env.LogJSON != nil {
		cfg.Log.JSON = *env.LogJSON
	}
	if env.Locale != nil {
		cfg.Locale = *env.Locale
	}
	if env.AppointmentNotices != nil {
		cfg.Notifications.AppointmentCreated = *env.AppointmentNotices
	}
	if env.RecoveryNoticeTTL != nil {
		cfg.UI.RecoveryNoticeTTL = *env.RecoveryNoticeTTL
	}
	if env.MetricsNamespace != nil {
		cfg.Metrics.Namespace = *env.MetricsNamespace
	}
	if env.AuditMaxEntries != nil {
		cfg.Audit.MaxEntries = *env.AuditMaxEntries
	}
	return nil
}

func (c *Config) Validate() error {
	if c.UI.RecoveryNoticeTTL <= 0 {
		return fmt.Errorf("ui.recovery_notice_ttl must be positive, got %s", c.UI.RecoveryNoticeTTL)
	}
	if c.Audit.MaxEntries < 0 {
		return fmt.Errorf("audit.max_entries must not be negative, got %d", c.Audit.MaxEntries)
	}
	if c.Metrics.Namespace == "" {
		return errors.New("metrics.namespace is required")
	}
	return nil
}
