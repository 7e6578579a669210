package config

import (
	"strings"

	"github.com/spf13/viper"

	"binimg/internal/bytesize"
	"binimg/stego"
)

const (
	DefaultPort          = 8080
	DefaultMaxUploadSize = 32 * bytesize.MiB
)

// DefaultAllowOrigins is the development frontend origin.
var DefaultAllowOrigins = []string{"http://localhost:3000"}

// GetDefaultConfig returns a configuration with every default applied.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields and normalises the log level to
// upper case. Explicit values are kept.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.AllowOrigins == nil {
		cfg.Server.AllowOrigins = append([]string(nil), DefaultAllowOrigins...)
	}
	if cfg.Server.MaxUploadSize == 0 {
		cfg.Server.MaxUploadSize = DefaultMaxUploadSize
	}

	if cfg.Encode.DefaultName == "" {
		cfg.Encode.DefaultName = stego.DefaultName
	}
}

func setDefaults(v *viper.Viper) {
	d := GetDefaultConfig()
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output", d.Logging.Output)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.allow_origins", d.Server.AllowOrigins)
	v.SetDefault("server.max_upload_size", d.Server.MaxUploadSize.String())
	v.SetDefault("encode.default_name", d.Encode.DefaultName)
	v.SetDefault("encode.compress", d.Encode.Compress)
	v.SetDefault("encode.min_psnr", d.Encode.MinPSNR)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
}
