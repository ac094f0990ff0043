package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"

	// TokenTTL is the lifetime of both the auth cookie and the JWT inside it.
	TokenTTL = 365 * 24 * time.Hour
)

type Config struct {
	Port        int    `koanf:"port"`
	NodeEnv     string `koanf:"node_env"`
	LogLevel    string `koanf:"log_level"`
	StoreDriver string `koanf:"store_driver"`
	CORSOrigins string `koanf:"cors_origins"`

	MongoURI string `koanf:"mongodb_uri"`
	DBName   string `koanf:"db_name"`

	AccessTokenSecret string `koanf:"access_token_secret"`
	StripeSecretKey   string `koanf:"stripe_secret_key"`

	SMTPHost        string `koanf:"smtp_host"`
	SMTPPort        int    `koanf:"smtp_port"`
	SMTPUser        string `koanf:"smtp_user"`
	SMTPPass        string `koanf:"smtp_pass"`
	MailFrom        string `koanf:"mail_from"`
	NotifyQueueSize int    `koanf:"notify_queue_size"`
}

func defaults() *Config {
	return &Config{
		Port:            9000,
		NodeEnv:         "development",
		LogLevel:        "info",
		StoreDriver:     StoreDriverMongo,
		CORSOrigins:     "http://localhost:5173,http://localhost:5174",
		DBName:          "plantNet",
		SMTPPort:        587,
		NotifyQueueSize: 64,
	}
}

// LoadEnv loads environment variables from a .env file
func LoadEnv() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Error loading .env file")
	}
}

// GetEnv retrieves environment variables with a fallback
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load builds the config from defaults, an optional yaml file and the
// environment, in that order of precedence.
func Load(yamlPath string) (*Config, error) {
	cfg := defaults()
	k := koanf.New(".")

	if yamlPath != "" {
		if _, err := os.Stat(yamlPath); err == nil {
			if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config file %s", yamlPath)
			}
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(key), value
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New is the fx constructor: .env first, then config.yaml, then the process env.
func New() (*Config, error) {
	LoadEnv()
	return Load(GetEnv("CONFIG_FILE", "config.yaml"))
}

func (c *Config) Validate() error {
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET must be set")
	}
	switch c.StoreDriver {
	case StoreDriverMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI must be set for the mongo store driver")
		}
	case StoreDriverMemory:
	default:
		return errors.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.NotifyQueueSize <= 0 {
		return errors.Errorf("notify queue size must be positive, got %d", c.NotifyQueueSize)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.NodeEnv == "production"
}

// AllowedOrigins splits the comma separated CORS origin list.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// MailEnabled reports whether an SMTP relay is configured.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.MailFrom != ""
}
