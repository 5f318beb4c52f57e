// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Database drivers understood by the store factory.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Storefront fallback policies.
const (
	FallbackDemo   = "demo"
	FallbackStrict = "strict"
)

// Storefront state backends.
const (
	StateBackendFile   = "file"
	StateBackendRedis  = "redis"
	StateBackendMemory = "memory"
)

// Config holds all configuration for our application
type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Security   SecurityConfig
	External   ExternalConfig
	Logging    LoggingConfig
	Pricing    PricingConfig
	Storefront StorefrontConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver        string
	Host          string
	Port          string
	Name          string
	User          string
	Password      string
	SSLMode       string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	MaxOpenConns  int
	MaxIdleConns  int
	MaxLifetime   time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// JWTConfig contains JWT token configuration
type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	BcryptCost         int
	MinPasswordLength  int
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Email EmailConfig
}

// EmailConfig contains email service configuration
type EmailConfig struct {
	Provider     string
	FromEmail    string
	FromName     string
	ReplyTo      string
	BaseURL      string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// PricingConfig holds the storefront pricing rules. Monetary thresholds are
// expressed in the display currency.
type PricingConfig struct {
	BaseCurrency          string
	DisplayCurrency       string
	Locale                string
	Rate                  decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	TaxRate               decimal.Decimal
}

// StorefrontConfig configures the shop client.
type StorefrontConfig struct {
	APIBaseURL   string
	StateBackend string
	StatePath    string
	StateKey     string
	Fallback     string
	Timeout      time.Duration
	MaxRetries   int
}

// Load loads configuration from environment variables and .env file and
// validates everything the API server needs.
func Load() (*Config, error) {
	config := load()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadClient loads configuration for the storefront client. Server-only
// settings such as the JWT secret are not validated.
func LoadClient() (*Config, error) {
	config := load()

	if err := config.ValidateClient(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func load() *Config {
	// .env is optional
	_ = godotenv.Load()

	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Beauty Store"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "5000"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
			MaxBodyBytes:   getEnvAsInt64("SERVER_MAX_BODY_BYTES", 10<<20),
		},
		Database: DatabaseConfig{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			Name:          getEnv("DB_NAME", "beauty_store"),
			User:          getEnv("DB_USER", "beauty"),
			Password:      getEnv("DB_PASSWORD", "beauty"),
			SSLMode:       getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:    getEnv("SQLITE_PATH", "beauty-store.db"),
			MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			MongoDatabase: getEnv("MONGO_DATABASE", "beauty-store"),
			MaxOpenConns:  getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:  getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:   getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "beauty-secret-key-2024-change-in-production"),
			Expiry: getEnvAsDuration("JWT_EXPIRE", 7*24*time.Hour),
		},
		Security: SecurityConfig{
			BcryptCost:         getEnvAsInt("BCRYPT_COST", 10),
			MinPasswordLength:  getEnvAsInt("MIN_PASSWORD_LENGTH", 6),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		External: ExternalConfig{
			Email: EmailConfig{
				Provider:     getEnv("EMAIL_PROVIDER", "log"),
				FromEmail:    getEnv("FROM_EMAIL", "orders@beauty-store.local"),
				FromName:     getEnv("FROM_NAME", "Beauty Store"),
				ReplyTo:      getEnv("REPLY_TO_EMAIL", ""),
				BaseURL:      getEnv("STORE_BASE_URL", "http://localhost:3000"),
				SMTPHost:     getEnv("SMTP_HOST", ""),
				SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
				SMTPUsername: getEnv("SMTP_USER", ""),
				SMTPPassword: getEnv("SMTP_PASS", ""),
				SMTPUseTLS:   getEnvAsBool("SMTP_USE_TLS", false),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Pricing: PricingConfig{
			BaseCurrency:          strings.ToUpper(getEnv("PRICING_BASE_CURRENCY", "USD")),
			DisplayCurrency:       strings.ToUpper(getEnv("PRICING_DISPLAY_CURRENCY", "INR")),
			Locale:                getEnv("PRICING_LOCALE", "en-IN"),
			Rate:                  getEnvAsDecimal("PRICING_RATE", decimal.RequireFromString("83.5")),
			FreeShippingThreshold: getEnvAsDecimal("PRICING_FREE_SHIPPING_THRESHOLD", decimal.NewFromInt(5000)),
			FlatShippingFee:       getEnvAsDecimal("PRICING_FLAT_SHIPPING_FEE", decimal.NewFromInt(150)),
			TaxRate:               getEnvAsDecimal("PRICING_TAX_RATE", decimal.RequireFromString("0.08")),
		},
		Storefront: StorefrontConfig{
			APIBaseURL:   strings.TrimRight(getEnv("STOREFRONT_API_URL", "http://localhost:5000/api"), "/"),
			StateBackend: strings.ToLower(getEnv("STOREFRONT_STATE_BACKEND", StateBackendFile)),
			StatePath:    getEnv("STOREFRONT_STATE_PATH", defaultStatePath()),
			StateKey:     getEnv("STOREFRONT_STATE_KEY", "beauty-store"),
			Fallback:     strings.ToLower(getEnv("STOREFRONT_FALLBACK", FallbackDemo)),
			Timeout:      getEnvAsDuration("STOREFRONT_TIMEOUT", 10*time.Second),
			MaxRetries:   getEnvAsInt("STOREFRONT_MAX_RETRIES", 2),
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate JWT secret
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	if c.JWT.Expiry <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be positive")
	}

	// Validate database configuration
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case DriverMongo:
		if c.Database.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required")
		}
		if c.Database.MongoDatabase == "" {
			return fmt.Errorf("MONGO_DATABASE is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}

	// Validate Redis configuration
	if c.Redis.Enabled && c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	// Validate server port
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	switch c.External.Email.Provider {
	case "log", "smtp":
	default:
		return fmt.Errorf("unsupported EMAIL_PROVIDER: %s", c.External.Email.Provider)
	}

	return c.validatePricing()
}

// ValidateClient validates the subset of configuration used by the storefront.
func (c *Config) ValidateClient() error {
	if c.Storefront.APIBaseURL == "" {
		return fmt.Errorf("STOREFRONT_API_URL is required")
	}

	switch c.Storefront.StateBackend {
	case StateBackendFile:
		if c.Storefront.StatePath == "" {
			return fmt.Errorf("STOREFRONT_STATE_PATH is required")
		}
	case StateBackendRedis:
		if c.Redis.Host == "" {
			return fmt.Errorf("REDIS_HOST is required")
		}
	case StateBackendMemory:
	default:
		return fmt.Errorf("unsupported STOREFRONT_STATE_BACKEND: %s", c.Storefront.StateBackend)
	}

	if c.Storefront.StateKey == "" {
		return fmt.Errorf("STOREFRONT_STATE_KEY is required")
	}

	switch c.Storefront.Fallback {
	case FallbackDemo, FallbackStrict:
	default:
		return fmt.Errorf("unsupported STOREFRONT_FALLBACK: %s", c.Storefront.Fallback)
	}

	if c.Storefront.Timeout <= 0 {
		return fmt.Errorf("STOREFRONT_TIMEOUT must be positive")
	}

	return c.validatePricing()
}

func (c *Config) validatePricing() error {
	if !c.Pricing.Rate.IsPositive() {
		return fmt.Errorf("PRICING_RATE must be positive")
	}
	if c.Pricing.TaxRate.IsNegative() {
		return fmt.Errorf("PRICING_TAX_RATE must not be negative")
	}
	if c.Pricing.FlatShippingFee.IsNegative() || c.Pricing.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("shipping amounts must not be negative")
	}
	if len(c.Pricing.DisplayCurrency) != 3 || len(c.Pricing.BaseCurrency) != 3 {
		return fmt.Errorf("currencies must be ISO 4217 codes")
	}
	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the postgres connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".beauty-store.json"
	}
	return dir + string(os.PathSeparator) + "beauty-store" + string(os.PathSeparator) + "state.json"
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
