package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	API    APIConfig
	YtDlp  YtDlpConfig
	CORS   CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	ShutdownTimeout time.Duration
}

type AuthConfig struct {
	APIToken  string
	JWTSecret string
	JWTIssuer string
}

type APIConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

type YtDlpConfig struct {
	Path             string
	Timeout          time.Duration
	MaxOutputBytes   int64
	DefaultMaxVideos int
	MaxVideosLimit   int
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
	Profile          string
}

// Load reads .env, then the optional TOML file named by CONFIG_FILE, then
// the environment. Environment variables win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	file, err := loadFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	return load(file)
}

func load(file *fileConfig) (*Config, error) {
	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", file.Server.Port, "8080")
	cfg.Server.Host = getEnv("SERVER_HOST", file.Server.Host, "0.0.0.0")
	shutdownTimeout, err := time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", file.Server.ShutdownTimeout, "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.Server.ShutdownTimeout = shutdownTimeout

	// Auth configuration
	cfg.Auth.APIToken = getEnv("API_TOKEN", file.Auth.APIToken, "")
	if cfg.Auth.APIToken == "" {
		return nil, fmt.Errorf("required environment variable API_TOKEN is not set")
	}
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", file.Auth.JWTSecret, "")
	if cfg.Auth.JWTSecret != "" && len(cfg.Auth.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	cfg.Auth.JWTIssuer = getEnv("JWT_ISSUER", file.Auth.JWTIssuer, "yt-dlp-api")

	// API configuration
	cfg.API.RateLimitRequests = getEnvInt("RATE_LIMIT_REQUESTS", file.API.RateLimitRequests, 60)
	rateLimitWindow, err := time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", file.API.RateLimitWindow, "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	cfg.API.RateLimitWindow = rateLimitWindow

	// yt-dlp configuration
	cfg.YtDlp.Path = getEnv("YTDLP_PATH", file.YtDlp.Path, "yt-dlp")
	ytdlpTimeout, err := time.ParseDuration(getEnv("YTDLP_TIMEOUT", file.YtDlp.Timeout, "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YTDLP_TIMEOUT: %w", err)
	}
	if ytdlpTimeout <= 0 {
		return nil, fmt.Errorf("YTDLP_TIMEOUT must be positive")
	}
	cfg.YtDlp.Timeout = ytdlpTimeout
	cfg.YtDlp.MaxOutputBytes = getEnvInt64("YTDLP_MAX_OUTPUT", file.YtDlp.MaxOutputBytes, 50*1024*1024) // 50MB default
	if cfg.YtDlp.MaxOutputBytes <= 0 {
		return nil, fmt.Errorf("YTDLP_MAX_OUTPUT must be positive")
	}
	cfg.YtDlp.DefaultMaxVideos = getEnvInt("YTDLP_DEFAULT_MAX_VIDEOS", file.YtDlp.DefaultMaxVideos, 30)
	cfg.YtDlp.MaxVideosLimit = getEnvInt("YTDLP_MAX_VIDEOS_LIMIT", file.YtDlp.MaxVideosLimit, 500)
	if cfg.YtDlp.DefaultMaxVideos < 1 || cfg.YtDlp.MaxVideosLimit < cfg.YtDlp.DefaultMaxVideos {
		return nil, fmt.Errorf("invalid max videos settings: default %d, limit %d",
			cfg.YtDlp.DefaultMaxVideos, cfg.YtDlp.MaxVideosLimit)
	}

	// CORS configuration
	cfg.CORS = loadCORSConfig(file.CORS)

	return cfg, nil
}

// getEnv returns the environment value, else the file value, else the default.
func getEnv(key, fileValue, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func getEnvInt(key string, fileValue, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	if fileValue != 0 {
		return fileValue
	}
	return defaultValue
}

func getEnvInt64(key string, fileValue, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	if fileValue != 0 {
		return fileValue
	}
	return defaultValue
}

func getEnvBool(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

func getEnvStringSlice(key string, fileValue, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(strings.TrimSpace(value), ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	if len(fileValue) > 0 {
		return fileValue
	}
	return defaultValue
}

// loadCORSConfig loads CORS configuration based on profile or custom settings
func loadCORSConfig(file fileCORSConfig) CORSConfig {
	profile := getEnv("CORS_PROFILE", file.Profile, "custom")

	switch profile {
	case "development":
		return getDevelopmentCORSConfig(file)
	case "production":
		return getProductionCORSConfig(file)
	default:
		return getCustomCORSConfig(file)
	}
}

// getDevelopmentCORSConfig returns permissive CORS settings for a local front-end
func getDevelopmentCORSConfig(file fileCORSConfig) CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", file.Enabled, true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", file.AllowedOrigins, []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", file.AllowedMethods, []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", file.AllowedHeaders, []string{
			"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Correlation-ID",
		}),
		ExposedHeaders: getEnvStringSlice("CORS_EXPOSED_HEADERS", file.ExposedHeaders, []string{
			"X-Correlation-ID", "X-Request-ID",
		}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", file.AllowCredentials, true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", file.MaxAge, 86400),
		Profile:          "development",
	}
}

// getProductionCORSConfig returns strict CORS settings; origins must be listed explicitly
func getProductionCORSConfig(file fileCORSConfig) CORSConfig {
	return CORSConfig{
		Enabled:        getEnvBool("CORS_ENABLED", file.Enabled, true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", file.AllowedOrigins, []string{}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", file.AllowedMethods, []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", file.AllowedHeaders, []string{
			"Origin", "Content-Type", "Accept", "Authorization",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", file.ExposedHeaders, []string{"X-Request-ID"}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", file.AllowCredentials, false),
		MaxAge:           getEnvInt("CORS_MAX_AGE", file.MaxAge, 3600),
		Profile:          "production",
	}
}

// getCustomCORSConfig returns CORS settings from individual environment variables
func getCustomCORSConfig(file fileCORSConfig) CORSConfig {
	return CORSConfig{
		Enabled: getEnvBool("CORS_ENABLED", file.Enabled, true),
		AllowedOrigins: getEnvStringSlice("CORS_ALLOWED_ORIGINS", file.AllowedOrigins, []string{
			"http://localhost:3000",
		}),
		AllowedMethods: getEnvStringSlice("CORS_ALLOWED_METHODS", file.AllowedMethods, []string{
			"GET", "POST", "OPTIONS",
		}),
		AllowedHeaders: getEnvStringSlice("CORS_ALLOWED_HEADERS", file.AllowedHeaders, []string{
			"Origin", "Content-Type", "Accept", "Authorization",
		}),
		ExposedHeaders:   getEnvStringSlice("CORS_EXPOSED_HEADERS", file.ExposedHeaders, []string{}),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", file.AllowCredentials, true),
		MaxAge:           getEnvInt("CORS_MAX_AGE", file.MaxAge, 3600),
		Profile:          "custom",
	}
}
