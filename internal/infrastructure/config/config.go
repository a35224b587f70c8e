package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App           AppConfig
	DatabaseAdmin DatabaseConfig
	DatabaseUser  DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Log           LogConfig
	HTTP          HTTPConfig
	Assets        AssetsConfig
	Availability  AvailabilityConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds connection settings for one namespace database.
// The admin and user namespaces each get their own copy.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds token settings. The admin and user namespaces sign with
// different secrets so a storefront token can never pass an admin check.
type JWTConfig struct {
	AdminSecret     string
	UserSecret      string
	TokenExpiration time.Duration
	Issuer          string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// AssetsConfig holds the image hosting settings
type AssetsConfig struct {
	CloudName    string
	UploadPreset string
	APIKey       string
	APISecret    string
}

// AvailabilityConfig tunes the startup dependency probe
type AvailabilityConfig struct {
	Attempts int
	Interval time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with CHV_ prefix (e.g., CHV_DATABASE_ADMIN_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("CHV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		DatabaseAdmin: databaseSection(v, "database_admin"),
		DatabaseUser:  databaseSection(v, "database_user"),
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			AdminSecret:     v.GetString("jwt.admin_secret"),
			UserSecret:      v.GetString("jwt.user_secret"),
			TokenExpiration: v.GetDuration("jwt.token_expiration"),
			Issuer:          v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Assets: AssetsConfig{
			CloudName:    v.GetString("assets.cloud_name"),
			UploadPreset: v.GetString("assets.upload_preset"),
			APIKey:       v.GetString("assets.api_key"),
			APISecret:    v.GetString("assets.api_secret"),
		},
		Availability: AvailabilityConfig{
			Attempts: v.GetInt("availability.attempts"),
			Interval: v.GetDuration("availability.interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func databaseSection(v *viper.Viper, section string) DatabaseConfig {
	return DatabaseConfig{
		Host:            v.GetString(section + ".host"),
		Port:            v.GetInt(section + ".port"),
		User:            v.GetString(section + ".user"),
		Password:        v.GetString(section + ".password"),
		DBName:          v.GetString(section + ".dbname"),
		SSLMode:         v.GetString(section + ".sslmode"),
		MaxOpenConns:    v.GetInt(section + ".max_open_conns"),
		MaxIdleConns:    v.GetInt(section + ".max_idle_conns"),
		ConnMaxLifetime: v.GetInt(section + ".conn_max_lifetime"),
		ConnMaxIdleTime: v.GetInt(section + ".conn_max_idle_time"),
	}
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "chickenviken-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	applyDatabaseDefaults(&cfg.DatabaseAdmin, "chickenviken_admin")
	applyDatabaseDefaults(&cfg.DatabaseUser, "chickenviken_user")
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.TokenExpiration == 0 {
		cfg.JWT.TokenExpiration = 72 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "chickenviken-backend"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	// CORS origins deliberately have no "*" fallback; an empty list means no
	// cross-origin requests until configured
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Availability.Attempts == 0 {
		cfg.Availability.Attempts = 10
	}
	if cfg.Availability.Interval == 0 {
		cfg.Availability.Interval = 3 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig, dbname string) {
	if d.Host == "" {
		d.Host = "localhost"
	}
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.User == "" {
		d.User = "postgres"
	}
	if d.DBName == "" {
		d.DBName = dbname
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.MaxOpenConns == 0 {
		d.MaxOpenConns = 25
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = 5
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = 60
	}
	if d.ConnMaxIdleTime == 0 {
		d.ConnMaxIdleTime = 30
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	for name, d := range map[string]*DatabaseConfig{
		"database_admin": &c.DatabaseAdmin,
		"database_user":  &c.DatabaseUser,
	} {
		if d.MaxOpenConns <= 0 {
			return fmt.Errorf("%s.max_open_conns must be positive", name)
		}
		if d.MaxIdleConns < 0 {
			return fmt.Errorf("%s.max_idle_conns cannot be negative", name)
		}
		if d.MaxIdleConns > d.MaxOpenConns {
			return fmt.Errorf("%s.max_idle_conns (%d) cannot exceed %s.max_open_conns (%d)",
				name, d.MaxIdleConns, name, d.MaxOpenConns)
		}
	}

	if c.App.Env == "production" {
		if c.JWT.AdminSecret == "" || c.JWT.UserSecret == "" {
			return fmt.Errorf("jwt.admin_secret and jwt.user_secret are required in production")
		}
		if len(c.JWT.AdminSecret) < 32 || len(c.JWT.UserSecret) < 32 {
			return fmt.Errorf("jwt secrets must be at least 32 characters in production")
		}
		if c.JWT.AdminSecret == c.JWT.UserSecret {
			return fmt.Errorf("jwt.admin_secret and jwt.user_secret must differ")
		}
		if c.DatabaseAdmin.Password == "" || c.DatabaseUser.Password == "" {
			return fmt.Errorf("database passwords are required in production")
		}
		if c.DatabaseAdmin.SSLMode == "disable" || c.DatabaseUser.SSLMode == "disable" {
			return fmt.Errorf("database sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
