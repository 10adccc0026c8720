package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Payment  PaymentConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// RateLimit is requests per minute per client IP on the admin routes.
	RateLimit int
}

// StoreConfig selects the document store backend: rtdb, firestore, mysql or memory.
type StoreConfig struct {
	Driver  string
	Timeout time.Duration
}

type FirebaseConfig struct {
	ServiceAccountPath string
	ProjectID          string
	DatabaseURL        string
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

type PaymentConfig struct {
	// DeepLinkURL is where the gateway return page sends the user's browser.
	DeepLinkURL      string
	DeepLinkErrorURL string
	OrderIDPrefix    string
	OrderIDMinLength int
	DefaultMethod    string
	// SnowflakeNode must differ between replicas sharing a store.
	SnowflakeNode int64
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load builds the configuration from defaults, an optional YAML file named by
// PRINTPAY_CONFIG, and environment variables (highest precedence).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := os.Getenv("PRINTPAY_CONFIG"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	origins := v.GetStringSlice("cors.allowed_origins")
	if len(origins) == 1 && strings.Contains(origins[0], ",") {
		origins = strings.Split(origins[0], ",")
	}

	return &Config{
		Server: ServerConfig{
			Port:         v.GetString("server.port"),
			Env:          v.GetString("server.env"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			RateLimit:    v.GetInt("server.rate_limit"),
		},
		Store: StoreConfig{
			Driver:  strings.ToLower(v.GetString("store.driver")),
			Timeout: v.GetDuration("store.timeout"),
		},
		Firebase: FirebaseConfig{
			ServiceAccountPath: v.GetString("firebase.service_account_path"),
			ProjectID:          v.GetString("firebase.project_id"),
			DatabaseURL:        v.GetString("firebase.database_url"),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("database.dsn"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		JWT: JWTConfig{
			AccessSecret: v.GetString("jwt.access_secret"),
			AccessExpiry: v.GetDuration("jwt.access_expiry"),
			Issuer:       v.GetString("jwt.issuer"),
		},
		Payment: PaymentConfig{
			DeepLinkURL:      v.GetString("payment.deep_link_url"),
			DeepLinkErrorURL: v.GetString("payment.deep_link_error_url"),
			OrderIDPrefix:    v.GetString("payment.order_id_prefix"),
			OrderIDMinLength: v.GetInt("payment.order_id_min_length"),
			DefaultMethod:    v.GetString("payment.default_method"),
			SnowflakeNode:    v.GetInt64("payment.snowflake_node"),
		},
		CORS: CORSConfig{
			AllowedOrigins: origins,
		},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit", 120)

	v.SetDefault("store.driver", "rtdb")
	v.SetDefault("store.timeout", time.Duration(0))

	v.SetDefault("firebase.service_account_path", "")
	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.database_url", "")

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("jwt.access_secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", 15*time.Minute)
	v.SetDefault("jwt.issuer", "printpay")

	v.SetDefault("payment.deep_link_url", "printapp://payment/result")
	v.SetDefault("payment.deep_link_error_url", "printapp://payment/error")
	v.SetDefault("payment.order_id_prefix", "ORD")
	v.SetDefault("payment.order_id_min_length", 15)
	v.SetDefault("payment.default_method", "toyyibpay")
	v.SetDefault("payment.snowflake_node", 1)

	v.SetDefault("cors.allowed_origins", []string{"*"})
}
