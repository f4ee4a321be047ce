package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ProcessorConfig holds the business policy injected into the transaction processor.
type ProcessorConfig struct {
	WithdrawalLimit   float64
	FeeRate           float64
	ReferenceCurrency string
	EnforceDailyLimit bool
}

type TokenConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// Argon2Config parameters for PIN hashing
type Argon2Config struct {
	Time       uint32
	Memory     uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

type RatesConfig struct {
	FilePath        string
	APIURL          string
	APIKey          string
	BaseCurrency    string
	Currencies      []string
	RefreshInterval time.Duration
}

type ServerConfig struct {
	Port           string
	MetricsEnabled bool
}

type Config struct {
	Server    ServerConfig
	Processor ProcessorConfig
	Token     TokenConfig
	Argon2    Argon2Config
	Rates     RatesConfig
}

var envBindings = map[string]string{
	"server.port":                  "PORT",
	"server.metrics_enabled":       "METRICS_ENABLED",
	"processor.withdrawal_limit":   "WITHDRAWAL_LIMIT",
	"processor.fee_rate":           "CONVERSION_FEE_RATE",
	"processor.reference_currency": "REFERENCE_CURRENCY",
	"processor.enforce_daily":      "ENFORCE_DAILY_LIMIT",
	"jwt.secret_key":               "JWT_SECRET_KEY",
	"jwt.ttl":                      "JWT_TTL",
	"jwt.issuer":                   "JWT_ISSUER",
	"argon2.time":                  "ARGON2_TIME",
	"argon2.memory":                "ARGON2_MEMORY",
	"argon2.threads":               "ARGON2_THREADS",
	"argon2.key_length":            "ARGON2_KEY_LENGTH",
	"argon2.salt_length":           "ARGON2_SALT_LENGTH",
	"rates.file_path":              "RATES_FILE",
	"rates.api_url":                "RATES_API_URL",
	"rates.api_key":                "API_KEY",
	"rates.base_currency":          "RATES_BASE_CURRENCY",
	"rates.currencies":             "RATES_CURRENCIES",
	"rates.refresh_interval":       "RATES_REFRESH_INTERVAL",
	"database.host":                "DATABASE_HOST",
	"database.port":                "DATABASE_PORT",
	"database.user":                "DATABASE_USER",
	"database.password":            "DATABASE_PASSWORD",
	"database.name":                "DATABASE_NAME",
	"database.ssl_mode":            "DATABASE_SSL_MODE",
	"redis.host":                   "REDIS_HOST",
	"redis.port":                   "REDIS_PORT",
	"redis.password":               "REDIS_PASSWORD",
	"redis.db":                     "REDIS_DB",
}

// Init reads the .env file, binds environment variables and registers defaults.
func Init() {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	for key, env := range envBindings {
		viper.BindEnv(key, env)
	}
	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}
}

// SetDefaults registers default values for every key Load reads.
func SetDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.metrics_enabled", true)

	viper.SetDefault("processor.withdrawal_limit", 1000.0)
	viper.SetDefault("processor.fee_rate", 0.02)
	viper.SetDefault("processor.reference_currency", "USD")
	viper.SetDefault("processor.enforce_daily", false)

	viper.SetDefault("jwt.secret_key", "default-secret-key")
	viper.SetDefault("jwt.ttl", 15*time.Minute)
	viper.SetDefault("jwt.issuer", "atm-network")

	viper.SetDefault("argon2.time", 1)
	viper.SetDefault("argon2.memory", 64*1024)
	viper.SetDefault("argon2.threads", 4)
	viper.SetDefault("argon2.key_length", 32)
	viper.SetDefault("argon2.salt_length", 16)

	viper.SetDefault("rates.file_path", "./rates.json")
	viper.SetDefault("rates.api_url", "https://api.apilayer.com/exchangerates_data/latest")
	viper.SetDefault("rates.base_currency", "USD")
	viper.SetDefault("rates.currencies", "USD,EUR,GBP")
	viper.SetDefault("rates.refresh_interval", 24*time.Hour)
}

// Load builds the typed configuration from viper.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("server.port"),
			MetricsEnabled: viper.GetBool("server.metrics_enabled"),
		},
		Processor: ProcessorConfig{
			WithdrawalLimit:   viper.GetFloat64("processor.withdrawal_limit"),
			FeeRate:           viper.GetFloat64("processor.fee_rate"),
			ReferenceCurrency: strings.ToUpper(viper.GetString("processor.reference_currency")),
			EnforceDailyLimit: viper.GetBool("processor.enforce_daily"),
		},
		Token: TokenConfig{
			SecretKey: viper.GetString("jwt.secret_key"),
			TTL:       viper.GetDuration("jwt.ttl"),
			Issuer:    viper.GetString("jwt.issuer"),
		},
		Argon2: Argon2Config{
			Time:       viper.GetUint32("argon2.time"),
			Memory:     viper.GetUint32("argon2.memory"),
			Threads:    uint8(viper.GetUint("argon2.threads")),
			KeyLength:  viper.GetUint32("argon2.key_length"),
			SaltLength: viper.GetUint32("argon2.salt_length"),
		},
		Rates: RatesConfig{
			FilePath:        viper.GetString("rates.file_path"),
			APIURL:          viper.GetString("rates.api_url"),
			APIKey:          viper.GetString("rates.api_key"),
			BaseCurrency:    strings.ToUpper(viper.GetString("rates.base_currency")),
			Currencies:      splitList(viper.GetString("rates.currencies")),
			RefreshInterval: viper.GetDuration("rates.refresh_interval"),
		},
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
