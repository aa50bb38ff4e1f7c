package server

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/specview/specview/pkg/chunk"
	"github.com/specview/specview/pkg/errdefs"
)

// Transport selects how the MCP server talks to its client.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the full server configuration. Values come from flags and from
// SPECVIEW_* environment variables, flags winning.
type Config struct {
	Transport string `mapstructure:"transport"`
	HTTPAddr  string `mapstructure:"http_addr"`
	BasePath  string `mapstructure:"base_path"`

	// SpecSource is a file path or URL; empty with no database means the
	// server starts without a document and waits for a reload.
	SpecSource string `mapstructure:"spec_source"`

	DatabaseURL string `mapstructure:"database_url"`
	// SpecName selects the document to load from the database.
	SpecName string `mapstructure:"spec_name"`

	Watch     bool   `mapstructure:"watch"`
	ChunkSize int    `mapstructure:"chunk_size"`
	LogLevel  string `mapstructure:"log_level"`
}

// LoadConfig reads configuration from v, which the command layer has already
// bound to flags and defaults.
func LoadConfig(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("SPECVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeInternal, "unmarshal configuration")
	}
	// A zero chunk size means "unset": bound flags shadow viper defaults, so
	// the fallback is applied here rather than via SetDefault.
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = chunk.DefaultChunkSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key, zero-valued where there is no real
// default: AutomaticEnv only surfaces keys viper already knows about.
func setDefaults(v *viper.Viper) {
	v.SetDefault("transport", TransportStdio)
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("base_path", "/mcp")
	v.SetDefault("spec_source", "")
	v.SetDefault("database_url", "")
	v.SetDefault("spec_name", "")
	v.SetDefault("watch", false)
	v.SetDefault("chunk_size", 0)
	v.SetDefault("log_level", "info")
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return errdefs.Newf(errdefs.ErrorTypeInvalidParameter,
			"transport must be %q or %q, got %q", TransportStdio, TransportHTTP, c.Transport)
	}
	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return errdefs.New(errdefs.ErrorTypeInvalidParameter,
			"http transport requires an address", "")
	}
	if c.ChunkSize <= 0 {
		return errdefs.Newf(errdefs.ErrorTypeInvalidParameter,
			"chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.SpecName != "" && c.DatabaseURL == "" {
		return errdefs.New(errdefs.ErrorTypeInvalidParameter,
			"spec name requires a database URL", "")
	}
	if c.Watch && c.SpecSource == "" {
		return errdefs.New(errdefs.ErrorTypeInvalidParameter,
			"watch mode requires a file spec source", "")
	}
	return nil
}

// DatabaseMode reports whether the document comes from PostgreSQL instead of
// a file or URL.
func (c *Config) DatabaseMode() bool {
	return c.DatabaseURL != "" && c.SpecName != ""
}
