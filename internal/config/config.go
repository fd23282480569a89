package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"example.com/registro/internal/tracing"
)

// EnvPrefix prefixes every environment override, e.g. REGISTRO_STORE_PATH.
const EnvPrefix = "REGISTRO"

type Config struct {
	HTTP    HTTPConfig     `mapstructure:"http" yaml:"http"`
	Store   StoreConfig    `mapstructure:"store" yaml:"store"`
	Tracing tracing.Config `mapstructure:"tracing" yaml:"tracing"`
}

type HTTPConfig struct {
	Port         string `mapstructure:"port" yaml:"port"`
	SubmitPath   string `mapstructure:"submit_path" yaml:"submit_path"`
	LandingURL   string `mapstructure:"landing_url" yaml:"landing_url"`
	StaticDir    string `mapstructure:"static_dir" yaml:"static_dir"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	// StrictStatus answers validation errors with 422 and store faults
	// with 500. When false both render with 200.
	StrictStatus bool          `mapstructure:"strict_status" yaml:"strict_status"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
}

type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
	Lock bool   `mapstructure:"lock" yaml:"lock"`
}

func Defaults() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:         "8080",
			SubmitPath:   "/procesar",
			LandingURL:   "index.html",
			StaticDir:    "",
			MaxBodyBytes: 1_048_576,
			StrictStatus: true,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Store: StoreConfig{
			Path: "registros.csv",
			Lock: true,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// SetDefaults registers every key on v so that environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("http.port", d.HTTP.Port)
	v.SetDefault("http.submit_path", d.HTTP.SubmitPath)
	v.SetDefault("http.landing_url", d.HTTP.LandingURL)
	v.SetDefault("http.static_dir", d.HTTP.StaticDir)
	v.SetDefault("http.max_body_bytes", d.HTTP.MaxBodyBytes)
	v.SetDefault("http.strict_status", d.HTTP.StrictStatus)
	v.SetDefault("http.read_timeout", d.HTTP.ReadTimeout)
	v.SetDefault("http.write_timeout", d.HTTP.WriteTimeout)
	v.SetDefault("http.idle_timeout", d.HTTP.IdleTimeout)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.lock", d.Store.Lock)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
}

// Load resolves configuration from defaults, the optional YAML file at
// cfgFile, and REGISTRO_* environment variables, in increasing priority.
// Flags bound to v beforehand take precedence over all of them.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Store.Path) == "" {
		errs = append(errs, errors.New("store.path is required"))
	}
	if !strings.HasPrefix(c.HTTP.SubmitPath, "/") {
		errs = append(errs, fmt.Errorf("http.submit_path must start with /, got %q", c.HTTP.SubmitPath))
	}
	if c.HTTP.LandingURL == "" {
		errs = append(errs, errors.New("http.landing_url is required"))
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("http.max_body_bytes must be positive, got %d", c.HTTP.MaxBodyBytes))
	}
	if c.HTTP.Port == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if err := c.Tracing.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
