package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Modos de autenticación soportados.
const (
	AuthModeDev    = "dev"    // X-Debug-User-* headers, sin verifier
	AuthModeJWT    = "jwt"    // session token HS256 firmado por el proveedor
	AuthModeRemote = "remote" // verificación contra el proveedor de identidad por HTTP
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	AMQP      AMQPConfig      `yaml:"amqp"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
	Lifecycle LifecycleConfig `yaml:"lifecycle"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// DatabaseConfig: DSN vacío => store in-memory (modo dev).
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"`
	MaxOpenConns    int           `yaml:"maxOpenConns"`
	MaxIdleConns    int           `yaml:"maxIdleConns"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `yaml:"connMaxIdleTime"`
	PingTimeout     time.Duration `yaml:"pingTimeout"`
	AutoMigrate     bool          `yaml:"autoMigrate"`
}

// RedisConfig: Addr vacío => sin cache de catálogos.
type RedisConfig struct {
	Addr       string        `yaml:"addr"`
	Password   string        `yaml:"password"`
	DB         int           `yaml:"db"`
	Prefix     string        `yaml:"prefix"`
	CatalogTTL time.Duration `yaml:"catalogTTL"`
}

// AMQPConfig: URL vacía => alertas solo al log.
type AMQPConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type AuthConfig struct {
	Mode string `yaml:"mode"`

	// OwnerIdentity: identidad que recibe rol admin al iniciar sesión.
	OwnerIdentity string `yaml:"ownerIdentity"`

	JWTSecret   string        `yaml:"jwtSecret"`
	JWTIssuer   string        `yaml:"jwtIssuer"`
	JWTAudience string        `yaml:"jwtAudience"`
	JWTLeeway   time.Duration `yaml:"jwtLeeway"`

	RemoteBaseURL string        `yaml:"remoteBaseURL"`
	RemoteAPIKey  string        `yaml:"remoteAPIKey"`
	RemoteTimeout time.Duration `yaml:"remoteTimeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

type LifecycleConfig struct {
	// EnforceTransitions=false acepta cualquier estado enumerado en updates.
	EnforceTransitions *bool `yaml:"enforceTransitions"`
}

func (l LifecycleConfig) Enforce() bool {
	return l.EnforceTransitions == nil || *l.EnforceTransitions
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			PingTimeout:     3 * time.Second,
		},
		Redis: RedisConfig{
			Prefix:     "avacc",
			CatalogTTL: 10 * time.Minute,
		},
		AMQP: AMQPConfig{
			Exchange: "avacc.events",
		},
		Auth: AuthConfig{
			Mode:          AuthModeDev,
			JWTLeeway:     30 * time.Second,
			RemoteTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			App:    "avacc",
		},
	}
}

// Load lee path (si existe) sobre los defaults y aplica overrides de env.
// path vacío => solo defaults + env.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Database.MaxOpenConns = n
		}
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		cfg.Database.AutoMigrate = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.AMQP.URL = v
	}
	if v := os.Getenv("AUTH_MODE"); v != "" {
		cfg.Auth.Mode = v
	}
	if v := os.Getenv("OWNER_IDENTITY"); v != "" {
		cfg.Auth.OwnerIdentity = v
	}
	if v := os.Getenv("AUTH_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("AUTH_REMOTE_BASE_URL"); v != "" {
		cfg.Auth.RemoteBaseURL = v
	}
	if v := os.Getenv("AUTH_REMOTE_API_KEY"); v != "" {
		cfg.Auth.RemoteAPIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		cfg.Log.App = v
	}
	if v := os.Getenv("LIFECYCLE_ENFORCE_TRANSITIONS"); v != "" {
		b := strings.EqualFold(v, "true")
		cfg.Lifecycle.EnforceTransitions = &b
	}
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Server.Port) == "" {
		return errors.New("config: server.port is required")
	}
	switch cfg.Auth.Mode {
	case AuthModeDev:
	case AuthModeJWT:
		if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
			return errors.New("config: auth.jwtSecret is required in jwt mode (or AUTH_JWT_SECRET)")
		}
	case AuthModeRemote:
		if strings.TrimSpace(cfg.Auth.RemoteBaseURL) == "" {
			return errors.New("config: auth.remoteBaseURL is required in remote mode")
		}
	default:
		return fmt.Errorf("config: unknown auth.mode %q", cfg.Auth.Mode)
	}
	if cfg.Database.MaxOpenConns < 0 || cfg.Database.MaxIdleConns < 0 {
		return errors.New("config: database pool sizes must be >= 0")
	}
	return nil
}
