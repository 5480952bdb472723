package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	CacheDriverFile  = "file"
	CacheDriverRedis = "redis"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env" validate:"required"` // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`                       // Telegram API token loaded from environment
	Storage          Storage `mapstructure:"storage"`                 // where trainer state lives
	DB               DB      `mapstructure:"database"`                // database configuration section
	Quiz             Quiz    `mapstructure:"quiz"`                    // quiz feedback timing
	Speech           Speech  `mapstructure:"speech"`                  // text-to-speech settings
	Redis            Redis   `mapstructure:"redis"`                   // redis connection, used by the redis speech cache
	Daily            Daily   `mapstructure:"daily"`                   // number of the day broadcast
	Random           Random  `mapstructure:"random"`                  // random source
}

type Storage struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres memory"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                                  // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections" validate:"gte=1"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime" validate:"gte=0"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

type Quiz struct {
	CorrectDelay time.Duration `mapstructure:"correct_delay" validate:"gte=0"` // pause after a right answer
	WrongDelay   time.Duration `mapstructure:"wrong_delay" validate:"gte=0"`   // pause after a wrong answer
}

type Speech struct {
	Enabled bool        `mapstructure:"enabled"`                    // switched off when no API key is set
	APIKey  string      `mapstructure:"-"`                          // Google TTS API key loaded from environment
	Rate    float64     `mapstructure:"rate" validate:"gt=0,lte=4"` // speaking rate, 1.0 is normal speed
	Cache   SpeechCache `mapstructure:"cache"`                      // where synthesized audio is kept
}

type SpeechCache struct {
	Driver string        `mapstructure:"driver" validate:"oneof=file redis"`
	Dir    string        `mapstructure:"dir"`
	TTL    time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
}

type Daily struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required"` // cron expression
	Timezone string `mapstructure:"timezone" validate:"required"` // IANA name or UTC offset
}

// Location returns the time zone the schedule is evaluated in.
func (d Daily) Location() (*time.Location, error) {
	loc, err := parseLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", d.Timezone, err)
	}
	return loc, nil
}

type Random struct {
	Seed int64 `mapstructure:"seed"` // 0 seeds from the clock
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file if there is one.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("quiz.correct_delay", "3s")
	v.SetDefault("quiz.wrong_delay", "5s")
	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.rate", 0.9)
	v.SetDefault("speech.cache.driver", CacheDriverFile)
	v.SetDefault("speech.cache.dir", "cache/tts")
	v.SetDefault("speech.cache.ttl", "720h")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("daily.enabled", true)
	v.SetDefault("daily.schedule", "0 9 * * *")
	v.SetDefault("daily.timezone", "UTC")
	v.SetDefault("random.seed", 0)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("speech_api_key", "GOOGLE_TTS_API_KEY")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.Storage.Driver == StorageDriverPostgres && cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	// Speech without a key is switched off rather than treated as an error.
	cfg.Speech.APIKey = v.GetString("speech_api_key")
	if cfg.Speech.APIKey == "" {
		cfg.Speech.Enabled = false
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if _, err := cfg.Daily.Location(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
