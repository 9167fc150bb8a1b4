package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/xelth-com/pcardgo/internal/policy"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	BaseURL   string
	JWTSecret string
	Database  DatabaseConfig
	Gemini    GeminiConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Approvers ApproverConfig

	// Directory with static frontend assets, served at /
	FrontendDir string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	LogSQL   bool
}

// GeminiConfig holds receipt verification AI configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// StorageConfig holds receipt storage configuration.
// When Endpoint is empty, receipts are stored in LocalDir instead of MinIO.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	LocalDir  string
}

// RedisConfig holds the optional dashboard cache configuration.
// An empty Addr disables caching entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ApproverConfig carries contact overrides for the approval chain. Names are
// fixed by policy (they appear verbatim in tier labels); emails and titles
// are deployment configuration.
type ApproverConfig struct {
	ControllerEmail string
	VPFinanceEmail  string
	CEOEmail        string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3310"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:3310"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "pcard"),
			LogSQL:   getEnv("DB_LOG_SQL", "false") == "true",
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		},
		Storage: StorageConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
			SecretKey: os.Getenv("MINIO_SECRET_KEY"),
			Bucket:    getEnv("MINIO_BUCKET", "pcard-receipts"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
			LocalDir:  getEnv("RECEIPT_DATA_DIR", "./receipt_data"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		Approvers: ApproverConfig{
			ControllerEmail: os.Getenv("APPROVER_CONTROLLER_EMAIL"),
			VPFinanceEmail:  os.Getenv("APPROVER_VP_FINANCE_EMAIL"),
			CEOEmail:        os.Getenv("APPROVER_CEO_EMAIL"),
		},
		FrontendDir: getEnv("FRONTEND_DIR", "./public"),
	}, nil
}

// ApproverDirectory builds the policy directory with configured email
// overrides applied on top of the defaults.
func (c *Config) ApproverDirectory() policy.Directory {
	dir := policy.Directory{}
	defaults := policy.DefaultDirectory()

	if c.Approvers.ControllerEmail != "" {
		a := defaults[policy.KeyMerrill]
		a.Email = c.Approvers.ControllerEmail
		dir[policy.KeyMerrill] = a
	}
	if c.Approvers.VPFinanceEmail != "" {
		a := defaults[policy.KeyRyan]
		a.Email = c.Approvers.VPFinanceEmail
		dir[policy.KeyRyan] = a
	}
	if c.Approvers.CEOEmail != "" {
		a := defaults[policy.KeyCEO]
		a.Email = c.Approvers.CEOEmail
		dir[policy.KeyCEO] = a
	}
	return dir
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
