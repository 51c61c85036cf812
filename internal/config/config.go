package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// StorageConfig holds object-storage configuration
type StorageConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
	Bucket     string `mapstructure:"bucket"`
}

// VendorsConfig holds upstream marketplace API configurations
type VendorsConfig struct {
	OpenSeaURL    string `mapstructure:"opensea_url"`
	OpenSeaAPIKey string `mapstructure:"opensea_api_key"`
	SuperRareURL  string `mapstructure:"superrare_url"`
	TezosAPIURL   string `mapstructure:"tezos_api_url"`
}

// URIConfig holds gateway rewriting configuration
type URIConfig struct {
	IPFSGateway string `mapstructure:"ipfs_gateway"`
}

// MediaConfig holds media resolution and transcode configuration
type MediaConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	SniffTimeout time.Duration `mapstructure:"sniff_timeout"`
	MaxWidth     int           `mapstructure:"max_width"`
	MaxHeight    int           `mapstructure:"max_height"`
	FFmpegPath   string        `mapstructure:"ffmpeg_path"`
	FFprobePath  string        `mapstructure:"ffprobe_path"`
}

// PricingConfig holds order-price derivation configuration
type PricingConfig struct {
	// SecondsToBacktrack shifts price evaluation into the past to avoid
	// racing in-flight transactions
	SecondsToBacktrack int `mapstructure:"seconds_to_backtrack"`
}

// RefreshConfig holds batch refresh scheduler configuration
type RefreshConfig struct {
	Window   time.Duration `mapstructure:"window"`
	Interval time.Duration `mapstructure:"interval"`
	MaxDepth int           `mapstructure:"max_depth"`
	PoolSize int           `mapstructure:"pool_size"`
}

// SweeperConfig holds configuration for the batch refresh sweeper
type SweeperConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Vendors    VendorsConfig  `mapstructure:"vendors"`
	URI        URIConfig      `mapstructure:"uri"`
	Refresh    RefreshConfig  `mapstructure:"refresh"`
}

// RefreshTokenConfig holds configuration for the one-shot refresh CLI
type RefreshTokenConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	Storage    StorageConfig  `mapstructure:"storage"`
	Vendors    VendorsConfig  `mapstructure:"vendors"`
	URI        URIConfig      `mapstructure:"uri"`
	Media      MediaConfig    `mapstructure:"media"`
	Pricing    PricingConfig  `mapstructure:"pricing"`
}

// LoadSweeperConfig loads configuration for the sweeper daemon
func LoadSweeperConfig(configFile string, envPath string) (*SweeperConfig, error) {
	v := configureViper("sweeper", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("vendors.opensea_url", "https://api.opensea.io")
	v.SetDefault("vendors.superrare_url", "https://superrare.co/api")
	v.SetDefault("vendors.tezos_api_url", "https://api.tzkt.io")
	v.SetDefault("uri.ipfs_gateway", "https://ipfs.io")
	v.SetDefault("refresh.window", "15m")
	v.SetDefault("refresh.interval", "1h")
	v.SetDefault("refresh.max_depth", 10)
	v.SetDefault("refresh.pool_size", 20)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg SweeperConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}

	return &cfg, nil
}

// LoadRefreshTokenConfig loads configuration for the refresh-token CLI
func LoadRefreshTokenConfig(configFile string, envPath string) (*RefreshTokenConfig, error) {
	v := configureViper("refresh-token", configFile, envPath)

	// Set defaults
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("storage.bucket", "nft-media")
	v.SetDefault("vendors.opensea_url", "https://api.opensea.io")
	v.SetDefault("vendors.superrare_url", "https://superrare.co/api")
	v.SetDefault("vendors.tezos_api_url", "https://api.tzkt.io")
	v.SetDefault("uri.ipfs_gateway", "https://ipfs.io")
	v.SetDefault("media.fetch_timeout", "8s")
	v.SetDefault("media.sniff_timeout", "5s")
	v.SetDefault("media.max_width", 2048)
	v.SetDefault("media.max_height", 2048)
	v.SetDefault("media.ffmpeg_path", "ffmpeg")
	v.SetDefault("media.ffprobe_path", "ffprobe")
	v.SetDefault("pricing.seconds_to_backtrack", 30)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg RefreshTokenConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// readConfig reads the config file, tolerating its absence so the binary
// can run on environment variables alone
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("NFT_INGEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// Required for viper to map env vars to struct fields when no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// Storage
		"storage.url",
		"storage.service_key",
		"storage.bucket",
		// Vendors
		"vendors.opensea_url",
		"vendors.opensea_api_key",
		"vendors.superrare_url",
		"vendors.tezos_api_url",
		// URI
		"uri.ipfs_gateway",
		// Media
		"media.fetch_timeout",
		"media.sniff_timeout",
		"media.max_width",
		"media.max_height",
		"media.ffmpeg_path",
		"media.ffprobe_path",
		// Pricing
		"pricing.seconds_to_backtrack",
		// Refresh
		"refresh.window",
		"refresh.interval",
		"refresh.max_depth",
		"refresh.pool_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
