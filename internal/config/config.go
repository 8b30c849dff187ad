package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/lexiroute/internal/model"
)

// EnvConfigPath names the environment variable that points at the config file.
const EnvConfigPath = "LEXIROUTE_CONFIG"

const defaultConfigPath = "./config.yaml"

// Config is the root configuration for LexiRoute.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Providers ProvidersConfig
	History   HistoryConfig
	Tracing   TracingConfig
	Keys      KeysConfig
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string
	Path            string // analysis endpoint, e.g. "/api/analyze"
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// CORSConfig holds the headers the CORS middleware answers with.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedHeaders []string
	MaxAge         int // seconds
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text or json
}

// HTTPConfig controls the outbound client shared by all provider adapters.
type HTTPConfig struct {
	Timeout time.Duration // 0 means no timeout
}

// ProvidersConfig overrides vendor endpoints and OpenRouter attribution.
type ProvidersConfig struct {
	GeminiBaseURL     string
	DeepSeekBaseURL   string
	OpenRouterBaseURL string
	OpenRouterReferer string
	OpenRouterTitle   string
}

// BaseURLs returns the configured base URL overrides keyed by provider kind.
// Unset entries are empty and select the vendor default.
func (p ProvidersConfig) BaseURLs() map[model.ProviderKind]string {
	return map[model.ProviderKind]string{
		model.ProviderGemini:     p.GeminiBaseURL,
		model.ProviderDeepSeek:   p.DeepSeekBaseURL,
		model.ProviderOpenRouter: p.OpenRouterBaseURL,
	}
}

// HistoryConfig controls the dispatch history log.
type HistoryConfig struct {
	Enabled   bool
	Path      string        // SQLite database file
	Retention time.Duration // rows older than this are pruned while serving
}

// TracingConfig controls OpenTelemetry export. An empty Endpoint disables it.
type TracingConfig struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
	SampleRate  float64
}

// KeysConfig holds API keys used by the CLI commands only. The HTTP endpoint
// always takes the key from the request.
type KeysConfig struct {
	Gemini     string
	DeepSeek   string
	OpenRouter string
}

// For returns the configured key for a provider identifier, or "".
func (k KeysConfig) For(provider string) string {
	switch model.ProviderKind(provider) {
	case model.ProviderGemini:
		return k.Gemini
	case model.ProviderDeepSeek:
		return k.DeepSeek
	case model.ProviderOpenRouter:
		return k.OpenRouter
	default:
		return ""
	}
}

// rawConfig is used for YAML unmarshaling and env overrides (snake_case fields
// and durations as strings).
type rawConfig struct {
	Server    rawServerConfig    `yaml:"server"`
	CORS      rawCORSConfig      `yaml:"cors"`
	Log       rawLogConfig       `yaml:"log"`
	HTTP      rawHTTPConfig      `yaml:"http"`
	Providers rawProvidersConfig `yaml:"providers"`
	History   rawHistoryConfig   `yaml:"history"`
	Tracing   rawTracingConfig   `yaml:"tracing"`
	Keys      rawKeysConfig      `yaml:"keys"`
}

type rawServerConfig struct {
	Addr            string `yaml:"addr"             env:"LEXIROUTE_SERVER_ADDR"             env-default:":8080"`
	Path            string `yaml:"path"             env:"LEXIROUTE_SERVER_PATH"             env-default:"/api/analyze"`
	ReadTimeout     string `yaml:"read_timeout"     env:"LEXIROUTE_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    string `yaml:"write_timeout"    env:"LEXIROUTE_SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     string `yaml:"idle_timeout"     env:"LEXIROUTE_SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout string `yaml:"shutdown_timeout" env:"LEXIROUTE_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type rawCORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"LEXIROUTE_CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedHeaders []string `yaml:"allowed_headers" env:"LEXIROUTE_CORS_ALLOWED_HEADERS" env-default:"Content-Type"`
	MaxAge         string   `yaml:"max_age"         env:"LEXIROUTE_CORS_MAX_AGE"         env-default:"86400"`
}

type rawLogConfig struct {
	Level  string `yaml:"level"  env:"LEXIROUTE_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LEXIROUTE_LOG_FORMAT" env-default:"text"`
}

type rawHTTPConfig struct {
	Timeout string `yaml:"timeout" env:"LEXIROUTE_HTTP_TIMEOUT"`
}

type rawProvidersConfig struct {
	GeminiBaseURL     string `yaml:"gemini_base_url"     env:"LEXIROUTE_GEMINI_BASE_URL"`
	DeepSeekBaseURL   string `yaml:"deepseek_base_url"   env:"LEXIROUTE_DEEPSEEK_BASE_URL"`
	OpenRouterBaseURL string `yaml:"openrouter_base_url" env:"LEXIROUTE_OPENROUTER_BASE_URL"`
	OpenRouterReferer string `yaml:"openrouter_referer"  env:"LEXIROUTE_OPENROUTER_REFERER"`
	OpenRouterTitle   string `yaml:"openrouter_title"    env:"LEXIROUTE_OPENROUTER_TITLE"`
}

type rawHistoryConfig struct {
	Enabled   bool   `yaml:"enabled"   env:"LEXIROUTE_HISTORY_ENABLED"`
	Path      string `yaml:"path"      env:"LEXIROUTE_HISTORY_PATH"      env-default:"lexiroute.db"`
	Retention string `yaml:"retention" env:"LEXIROUTE_HISTORY_RETENTION" env-default:"720h"`
}

type rawTracingConfig struct {
	Endpoint    string `yaml:"endpoint"     env:"LEXIROUTE_OTLP_ENDPOINT"`
	Insecure    bool   `yaml:"insecure"     env:"LEXIROUTE_OTLP_INSECURE"`
	ServiceName string `yaml:"service_name" env:"LEXIROUTE_SERVICE_NAME" env-default:"lexiroute"`
	SampleRate  string `yaml:"sample_rate"  env:"LEXIROUTE_TRACE_SAMPLE_RATE" env-default:"1"`
}

type rawKeysConfig struct {
	Gemini     string `yaml:"gemini"     env:"LEXIROUTE_GEMINI_API_KEY"`
	DeepSeek   string `yaml:"deepseek"   env:"LEXIROUTE_DEEPSEEK_API_KEY"`
	OpenRouter string `yaml:"openrouter" env:"LEXIROUTE_OPENROUTER_API_KEY"`
}

// ResolvePath picks the config file: the flag value, then $LEXIROUTE_CONFIG,
// then ./config.yaml if it exists. An empty result means no file.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

// Load reads the YAML config at path (skipped when path is empty), applies
// LEXIROUTE_* environment overrides and defaults, validates, and returns Config.
// Priority: env > YAML > defaults.
func Load(path string) (*Config, error) {
	raw := rawConfig{History: rawHistoryConfig{Enabled: true}}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&raw); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	cfg, err := raw.build()
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (raw rawConfig) build() (*Config, error) {
	var errs []error
	duration := func(field, value string) time.Duration {
		if value == "" {
			return 0
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s %q: %w", field, value, err))
		}
		return d
	}

	maxAge, err := strconv.Atoi(raw.CORS.MaxAge)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse cors.max_age %q: %w", raw.CORS.MaxAge, err))
	}
	sampleRate, err := strconv.ParseFloat(raw.Tracing.SampleRate, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("parse tracing.sample_rate %q: %w", raw.Tracing.SampleRate, err))
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            raw.Server.Addr,
			Path:            raw.Server.Path,
			ReadTimeout:     duration("server.read_timeout", raw.Server.ReadTimeout),
			WriteTimeout:    duration("server.write_timeout", raw.Server.WriteTimeout),
			IdleTimeout:     duration("server.idle_timeout", raw.Server.IdleTimeout),
			ShutdownTimeout: duration("server.shutdown_timeout", raw.Server.ShutdownTimeout),
		},
		CORS: CORSConfig{
			AllowedOrigins: trimAll(raw.CORS.AllowedOrigins),
			AllowedHeaders: trimAll(raw.CORS.AllowedHeaders),
			MaxAge:         maxAge,
		},
		Log: LogConfig{
			Level:  strings.ToLower(raw.Log.Level),
			Format: strings.ToLower(raw.Log.Format),
		},
		HTTP: HTTPConfig{
			Timeout: duration("http.timeout", raw.HTTP.Timeout),
		},
		Providers: ProvidersConfig(raw.Providers),
		History: HistoryConfig{
			Enabled:   raw.History.Enabled,
			Path:      raw.History.Path,
			Retention: duration("history.retention", raw.History.Retention),
		},
		Tracing: TracingConfig{
			Endpoint:    raw.Tracing.Endpoint,
			Insecure:    raw.Tracing.Insecure,
			ServiceName: raw.Tracing.ServiceName,
			SampleRate:  sampleRate,
		},
		Keys: KeysConfig(raw.Keys),
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if !strings.HasPrefix(cfg.Server.Path, "/") {
		return fmt.Errorf("server.path must start with /, got %q", cfg.Server.Path)
	}
	if cfg.Server.Path == "/healthz" {
		return fmt.Errorf("server.path must not be /healthz")
	}

	for name, d := range map[string]time.Duration{
		"server.read_timeout":     cfg.Server.ReadTimeout,
		"server.write_timeout":    cfg.Server.WriteTimeout,
		"server.idle_timeout":     cfg.Server.IdleTimeout,
		"server.shutdown_timeout": cfg.Server.ShutdownTimeout,
		"http.timeout":            cfg.HTTP.Timeout,
		"history.retention":       cfg.History.Retention,
	} {
		if d < 0 {
			return fmt.Errorf("%s must not be negative, got %v", name, d)
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error; got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", cfg.Log.Format)
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		return fmt.Errorf("history.path is required when history.enabled is true")
	}

	if cfg.Tracing.SampleRate < 0 || cfg.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1, got %v", cfg.Tracing.SampleRate)
	}

	if cfg.CORS.MaxAge < 0 {
		return fmt.Errorf("cors.max_age must not be negative, got %d", cfg.CORS.MaxAge)
	}

	return nil
}
