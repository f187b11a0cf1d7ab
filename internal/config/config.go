package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Log     LogConfig
	CORS    CORSConfig
	Storage StorageConfig
	Upload  UploadConfig
	Render  RenderConfig
	Gemini  GeminiConfig
	Explain ExplainConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StorageConfig selects and configures the deck storage backend.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // "local" or "s3"
	LocalDir  string `mapstructure:"local_dir"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// UploadConfig holds upload intake limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// RenderConfig holds page rasterization settings. DPI scales the 72-DPI base
// coordinate system and is the same for every page of every document.
type RenderConfig struct {
	DPI int `mapstructure:"dpi"`
}

// GeminiConfig holds vision model settings. APIKey is required; a missing key
// is a fatal configuration error at startup.
type GeminiConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExplainConfig holds explanation pipeline settings. Mode is a deployment
// choice, never a per-request one.
type ExplainConfig struct {
	Mode            string  `mapstructure:"mode"` // "structured" or "narrative"
	MaxAttempts     int     `mapstructure:"max_attempts"`
	RetryDelaySecs  int     `mapstructure:"retry_delay_secs"`
	MinTextLen      int     `mapstructure:"min_text_len"`
	Temperature     float64 `mapstructure:"temperature"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens"`
	ContextPages    int     `mapstructure:"context_pages"`
}

// Load reads configuration from environment variables with the SLIDETUTOR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SLIDETUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "slidetutor")
	v.SetDefault("db.password", "slidetutor_secret")
	v.SetDefault("db.name", "slidetutor_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for the Next.js dev frontend)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Storage defaults
	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_dir", "uploads")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "slidetutor-decks")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.key_prefix", "")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// Render defaults
	v.SetDefault("render.dpi", 150)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("gemini.timeout_secs", 120)

	// Explain defaults
	v.SetDefault("explain.mode", "structured")
	v.SetDefault("explain.max_attempts", 3)
	v.SetDefault("explain.retry_delay_secs", 2)
	v.SetDefault("explain.min_text_len", 50)
	v.SetDefault("explain.temperature", 0.3)
	v.SetDefault("explain.max_output_tokens", 2000)
	v.SetDefault("explain.context_pages", 0)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "SLIDETUTOR_SERVER_PORT",
		"server.read_timeout":       "SLIDETUTOR_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "SLIDETUTOR_SERVER_WRITE_TIMEOUT",
		"server.environment":        "SLIDETUTOR_SERVER_ENVIRONMENT",
		"db.host":                   "SLIDETUTOR_DB_HOST",
		"db.port":                   "SLIDETUTOR_DB_PORT",
		"db.user":                   "SLIDETUTOR_DB_USER",
		"db.password":               "SLIDETUTOR_DB_PASSWORD",
		"db.name":                   "SLIDETUTOR_DB_NAME",
		"db.sslmode":                "SLIDETUTOR_DB_SSLMODE",
		"db.max_open":               "SLIDETUTOR_DB_MAX_OPEN",
		"db.max_idle":               "SLIDETUTOR_DB_MAX_IDLE",
		"log.level":                 "SLIDETUTOR_LOG_LEVEL",
		"log.format":                "SLIDETUTOR_LOG_FORMAT",
		"cors.allowed_origins":      "SLIDETUTOR_CORS_ALLOWED_ORIGINS",
		"storage.backend":           "SLIDETUTOR_STORAGE_BACKEND",
		"storage.local_dir":         "SLIDETUTOR_STORAGE_LOCAL_DIR",
		"storage.region":            "SLIDETUTOR_STORAGE_REGION",
		"storage.bucket":            "SLIDETUTOR_STORAGE_BUCKET",
		"storage.endpoint":          "SLIDETUTOR_STORAGE_ENDPOINT",
		"storage.access_key":        "SLIDETUTOR_STORAGE_ACCESS_KEY",
		"storage.secret_key":        "SLIDETUTOR_STORAGE_SECRET_KEY",
		"storage.key_prefix":        "SLIDETUTOR_STORAGE_KEY_PREFIX",
		"upload.max_file_size_mb":   "SLIDETUTOR_UPLOAD_MAX_FILE_SIZE_MB",
		"render.dpi":                "SLIDETUTOR_RENDER_DPI",
		"gemini.api_key":            "SLIDETUTOR_GEMINI_API_KEY",
		"gemini.model":              "SLIDETUTOR_GEMINI_MODEL",
		"gemini.timeout_secs":       "SLIDETUTOR_GEMINI_TIMEOUT_SECS",
		"explain.mode":              "SLIDETUTOR_EXPLAIN_MODE",
		"explain.max_attempts":      "SLIDETUTOR_EXPLAIN_MAX_ATTEMPTS",
		"explain.retry_delay_secs":  "SLIDETUTOR_EXPLAIN_RETRY_DELAY_SECS",
		"explain.min_text_len":      "SLIDETUTOR_EXPLAIN_MIN_TEXT_LEN",
		"explain.temperature":       "SLIDETUTOR_EXPLAIN_TEMPERATURE",
		"explain.max_output_tokens": "SLIDETUTOR_EXPLAIN_MAX_OUTPUT_TOKENS",
		"explain.context_pages":     "SLIDETUTOR_EXPLAIN_CONTEXT_PAGES",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if SLIDETUTOR_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("SLIDETUTOR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Storage = StorageConfig{
		Backend:   v.GetString("storage.backend"),
		LocalDir:  v.GetString("storage.local_dir"),
		Region:    v.GetString("storage.region"),
		Bucket:    v.GetString("storage.bucket"),
		Endpoint:  v.GetString("storage.endpoint"),
		AccessKey: v.GetString("storage.access_key"),
		SecretKey: v.GetString("storage.secret_key"),
		KeyPrefix: v.GetString("storage.key_prefix"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Render = RenderConfig{
		DPI: v.GetInt("render.dpi"),
	}
	cfg.Gemini = GeminiConfig{
		APIKey:      v.GetString("gemini.api_key"),
		Model:       v.GetString("gemini.model"),
		TimeoutSecs: v.GetInt("gemini.timeout_secs"),
	}
	cfg.Explain = ExplainConfig{
		Mode:            v.GetString("explain.mode"),
		MaxAttempts:     v.GetInt("explain.max_attempts"),
		RetryDelaySecs:  v.GetInt("explain.retry_delay_secs"),
		MinTextLen:      v.GetInt("explain.min_text_len"),
		Temperature:     v.GetFloat64("explain.temperature"),
		MaxOutputTokens: v.GetInt("explain.max_output_tokens"),
		ContextPages:    v.GetInt("explain.context_pages"),
	}

	return cfg, nil
}
