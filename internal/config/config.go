package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Storage    StorageConfig
	SMTP       SMTPConfig
	Assistant  AssistantConfig
	NewsImport NewsImportConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	CORSOrigins []string
	// PublicSiteURL is the web front end, used to build share links.
	PublicSiteURL string
	// EmailWorkers is the size of the background pool that sends welcome emails.
	EmailWorkers int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type StorageConfig struct {
	Dir           string
	PublicBaseURL string
	MaxFileBytes  int64
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	AdminEmail string
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.From != ""
}

type AssistantConfig struct {
	Provider      string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	Model         string
	AdvancedModel string
	// ThinkingBudget applies to advanced requests only.
	ThinkingBudget int32
	Timeout        time.Duration
}

type NewsImportConfig struct {
	Schedule          string
	SourceName        string
	ListURL           string
	LinkSelector      string
	TitleSelector     string
	SummarySelector   string
	ImageSelector     string
	DefaultCategory   string
	MaxArticlesPerRun int
}

func (c NewsImportConfig) Enabled() bool {
	return c.ListURL != ""
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	optInt := func(key string, def int) int {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optDur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(os.Getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:       req("APP_NAME"),
		Environment:   req("APP_ENV"),
		HTTPPort:      req("HTTP_PORT"),
		CORSOrigins:   splitList(opt("CORS_ALLOW_ORIGINS", "*")),
		PublicSiteURL: strings.TrimRight(opt("PUBLIC_SITE_URL", "https://fsti.bi"), "/"),
		EmailWorkers:  optInt("EMAIL_WORKERS", 2),
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", "fsti_hub"),
		DBUser:                opt("DB_USER", "postgres"),
		DBPassword:            opt("DB_PASSWORD", ""),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        optDur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDur("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   optDur("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: optDur("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      time.Duration(optInt("REDIS_TTL", 600)) * time.Second,
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Storage = StorageConfig{
		Dir:           opt("STORAGE_DIR", "./data/uploads"),
		PublicBaseURL: strings.TrimRight(opt("STORAGE_PUBLIC_BASE_URL", "/files"), "/"),
		MaxFileBytes:  int64(optInt("STORAGE_MAX_FILE_MB", 10)) << 20,
	}

	cfg.SMTP = SMTPConfig{
		Host:       opt("SMTP_HOST", ""),
		Port:       optInt("SMTP_PORT", 465),
		Username:   opt("SMTP_USERNAME", ""),
		Password:   opt("SMTP_PASSWORD", ""),
		From:       opt("SMTP_FROM", ""),
		AdminEmail: opt("ADMIN_EMAIL", ""),
	}

	cfg.Assistant = AssistantConfig{
		Provider:       strings.ToLower(opt("ASSISTANT_PROVIDER", "gemini")),
		GeminiAPIKey:   opt("GEMINI_API_KEY", ""),
		OpenAIAPIKey:   opt("OPENAI_API_KEY", ""),
		Model:          opt("ASSISTANT_MODEL", ""),
		AdvancedModel:  opt("ASSISTANT_ADVANCED_MODEL", ""),
		ThinkingBudget: int32(optInt("ASSISTANT_THINKING_BUDGET", 24576)),
		Timeout:        optDur("ASSISTANT_TIMEOUT", 30*time.Second),
	}

	cfg.NewsImport = NewsImportConfig{
		Schedule:          opt("NEWS_IMPORT_SCHEDULE", "0 */6 * * *"),
		SourceName:        opt("NEWS_IMPORT_SOURCE", ""),
		ListURL:           opt("NEWS_IMPORT_LIST_URL", ""),
		LinkSelector:      opt("NEWS_IMPORT_LINK_SELECTOR", "article a"),
		TitleSelector:     opt("NEWS_IMPORT_TITLE_SELECTOR", "h1"),
		SummarySelector:   opt("NEWS_IMPORT_SUMMARY_SELECTOR", "article p"),
		ImageSelector:     opt("NEWS_IMPORT_IMAGE_SELECTOR", "meta[property='og:image']"),
		DefaultCategory:   opt("NEWS_IMPORT_CATEGORY", "Technology"),
		MaxArticlesPerRun: optInt("NEWS_IMPORT_MAX_ARTICLES", 20),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.App.Environment) {
	case "dev", "development", "local":
		return true
	}
	return false
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
