package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Chain configuration.
	RPCURL  string `mapstructure:"RPC_URL"`
	ChainID int64  `mapstructure:"CHAIN_ID"`

	// Contract addresses. A zero/empty address leaves that binding absent.
	RegistryAddress   string `mapstructure:"REGISTRY_ADDRESS"`
	VaultAddress      string `mapstructure:"VAULT_ADDRESS"`
	MarketAddress     string `mapstructure:"MARKET_ADDRESS"`
	GovernanceAddress string `mapstructure:"GOVERNANCE_ADDRESS"`

	// Wallet keystore.
	KeystoreDir        string `mapstructure:"KEYSTORE_DIR"`
	KeystorePassphrase string `mapstructure:"KEYSTORE_PASSPHRASE"`

	// Redis snapshot cache configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Background sync.
	SyncIntervalSeconds int `mapstructure:"SYNC_INTERVAL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("RPC_URL", "http://127.0.0.1:8545")
	viper.SetDefault("CHAIN_ID", 31337)
	viper.SetDefault("REGISTRY_ADDRESS", "")
	viper.SetDefault("VAULT_ADDRESS", "")
	viper.SetDefault("MARKET_ADDRESS", "")
	viper.SetDefault("GOVERNANCE_ADDRESS", "")
	viper.SetDefault("KEYSTORE_DIR", "./keystore")
	viper.SetDefault("KEYSTORE_PASSPHRASE", "")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("SYNC_INTERVAL_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
