package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"saccoledger/internal/pkg/consts"
	"saccoledger/internal/pkg/logger"
)

// ServerConfig holds server-level config
type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// MongoDB connection config
type MongoConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_minutes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout_seconds"`
}

// Redis connection config
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	LeaseTTL       time.Duration `yaml:"lease_ttl_seconds"`
}

// AuthConfig points at the identity provider used for member auth accounts.
type AuthConfig struct {
	BaseURL     string        `yaml:"base_url"`
	APIKey      string        `yaml:"api_key"`
	HTTPTimeout time.Duration `yaml:"http_timeout_seconds"`
}

// CollectionsConfig maps logical collections to deployment-specific names.
// An empty ledger_entries disables ledger posting.
type CollectionsConfig struct {
	Members          string `yaml:"members"`
	Savings          string `yaml:"savings"`
	Loans            string `yaml:"loans"`
	LoanCharges      string `yaml:"loan_charges"`
	LoanRepayments   string `yaml:"loan_repayments"`
	FinancialConfig  string `yaml:"financial_config"`
	LedgerEntries    string `yaml:"ledger_entries"`
	InterestMonthly  string `yaml:"interest_monthly"`
	RetainedEarnings string `yaml:"retained_earnings"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Mongo       MongoConfig       `yaml:"mongo"`
	Redis       RedisConfig       `yaml:"redis"`
	Auth        AuthConfig        `yaml:"auth"`
	Logging     LogConfig         `yaml:"logging"`
	Collections CollectionsConfig `yaml:"collections"`
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	// server config defaults
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", 8080)

	// log config defaults
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", cfg.Logging.LogLevel)

	// MongoDB config defaults
	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = GetEnvOrDefaultAsString("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = GetEnvOrDefaultAsString("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", cfg.Mongo.MaxPoolSize)
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", cfg.Mongo.MinPoolSize)
	cfg.Mongo.MaxConnIdleTime = time.Duration(GetEnvOrDefaultAsInt("MONGO_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute
	cfg.Mongo.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	// Redis config defaults
	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.Redis.LeaseTTL = time.Duration(GetEnvOrDefaultAsInt("REDIS_LEASE_TTL_SECONDS", 30)) * time.Second

	// Auth provider defaults
	cfg.Auth.BaseURL = GetEnvOrDefaultAsString("AUTH_BASE_URL", cfg.Auth.BaseURL)
	cfg.Auth.APIKey = GetEnvOrDefaultAsString("AUTH_API_KEY", cfg.Auth.APIKey)
	cfg.Auth.HTTPTimeout = time.Duration(GetEnvOrDefaultAsInt("AUTH_HTTP_TIMEOUT_SECONDS", 10)) * time.Second

	// Collection name defaults. ledger_entries deliberately has no fallback:
	// leaving it unset turns the ledger poster into a no-op.
	cfg.Collections.Members = collectionOrDefault("MEMBERS_COLLECTION", cfg.Collections.Members, consts.MembersCollection)
	cfg.Collections.Savings = collectionOrDefault("SAVINGS_COLLECTION", cfg.Collections.Savings, consts.SavingsCollection)
	cfg.Collections.Loans = collectionOrDefault("LOANS_COLLECTION", cfg.Collections.Loans, consts.LoansCollection)
	cfg.Collections.LoanCharges = collectionOrDefault("LOAN_CHARGES_COLLECTION",
		cfg.Collections.LoanCharges, consts.LoanChargesCollection)
	cfg.Collections.LoanRepayments = collectionOrDefault("LOAN_REPAYMENTS_COLLECTION",
		cfg.Collections.LoanRepayments, consts.LoanRepaymentsCollection)
	cfg.Collections.FinancialConfig = collectionOrDefault("FINANCIAL_CONFIG_COLLECTION",
		cfg.Collections.FinancialConfig, consts.FinancialConfigCollection)
	cfg.Collections.LedgerEntries = GetEnvOrDefaultAsString("LEDGER_ENTRIES_COLLECTION", cfg.Collections.LedgerEntries)
	cfg.Collections.InterestMonthly = collectionOrDefault("INTEREST_MONTHLY_COLLECTION",
		cfg.Collections.InterestMonthly, consts.InterestMonthlyCollection)
	cfg.Collections.RetainedEarnings = collectionOrDefault("RETAINED_EARNINGS_COLLECTION",
		cfg.Collections.RetainedEarnings, consts.RetainedEarningsCollection)

	return cfg
}

func collectionOrDefault(envKey, current, fallback string) string {
	value := GetEnvOrDefaultAsString(envKey, current)
	if value == "" {
		return fallback
	}
	return value
}

// LoadFromConfigFilePath loads and parses the config file into AppConfig.
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	// #nosec G304: configPath comes from the deployment environment
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, slog.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", slog.String("path", configPath))

	return defaultCfg, nil
}

// LoadFromConfig resolves the config file path from CONFIG_PATH and loads it.
func LoadFromConfig() (*AppConfig, error) {
	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return cfg, nil
}

func validateConfig(cfg *AppConfig) error {
	if err := validateMongoConfig(cfg.Mongo); err != nil {
		return err
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid port, got %d", cfg.Server.Port)
	}
	return nil
}

func validateMongoConfig(mongo MongoConfig) error {
	if mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required")
	}
	if mongo.DBName == "" {
		return fmt.Errorf("mongo.db_name is required")
	}
	if mongo.MaxPoolSize > 0 && mongo.MinPoolSize > mongo.MaxPoolSize {
		return fmt.Errorf(
			"mongo.min_pool_size %d exceeds mongo.max_pool_size %d",
			mongo.MinPoolSize,
			mongo.MaxPoolSize,
		)
	}
	return nil
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

// GetEnvOrDefaultAsString returns the value of the given env variable or the
// default value if not set.
func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if val != "" {
			return val
		}
	}
	return defaultVal
}

func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}
