package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config for the optional TOML file. Durations are kept
// as strings so they parse exactly like their environment counterparts.
type fileConfig struct {
	Server struct {
		Port            string `toml:"port"`
		Host            string `toml:"host"`
		ShutdownTimeout string `toml:"shutdown_timeout"`
	} `toml:"server"`

	Auth struct {
		APIToken  string `toml:"api_token"`
		JWTSecret string `toml:"jwt_secret"`
		JWTIssuer string `toml:"jwt_issuer"`
	} `toml:"auth"`

	API struct {
		RateLimitRequests int    `toml:"rate_limit_requests"`
		RateLimitWindow   string `toml:"rate_limit_window"`
	} `toml:"api"`

	YtDlp struct {
		Path             string `toml:"path"`
		Timeout          string `toml:"timeout"`
		MaxOutputBytes   int64  `toml:"max_output_bytes"`
		DefaultMaxVideos int    `toml:"default_max_videos"`
		MaxVideosLimit   int    `toml:"max_videos_limit"`
	} `toml:"ytdlp"`

	CORS fileCORSConfig `toml:"cors"`
}

type fileCORSConfig struct {
	Profile          string   `toml:"profile"`
	Enabled          *bool    `toml:"enabled"`
	AllowedOrigins   []string `toml:"allowed_origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	ExposedHeaders   []string `toml:"exposed_headers"`
	AllowCredentials *bool    `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// loadFile decodes path; an empty path yields an empty fileConfig.
func loadFile(path string) (*fileConfig, error) {
	file := &fileConfig{}
	if path == "" {
		return file, nil
	}

	meta, err := toml.DecodeFile(path, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}

	return file, nil
}
