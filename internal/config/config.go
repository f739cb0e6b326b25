package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Resolver   ResolverConfig   `mapstructure:"resolver"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Redis      RedisConfig      `mapstructure:"redis"`
	ExerciseDB ExerciseDBConfig `mapstructure:"exercisedb"`
	LLM        LLMConfig        `mapstructure:"llm"`
	S3         S3Config         `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// ResolverConfig tunes the lookup cascade. ScanLimit caps how many
// glossary documents the last-resort batch scan reads; records beyond
// the cap are invisible to that stage.
type ResolverConfig struct {
	ScanLimit int `mapstructure:"scan_limit"`
}

// CacheConfig selects the answer cache backend ("memory" or "redis")
// and its TTL.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ExerciseDBConfig carries the RapidAPI credential pair for the
// third-party exercise catalog. An empty key disables the resolver's
// catalog-fallback stage and the ExerciseDB seeder.
type ExerciseDBConfig struct {
	APIKey string `mapstructure:"api_key"`
	Host   string `mapstructure:"host"`
}

// LLMConfig configures the text-generation service. An empty key makes
// the summary generator use its deterministic fallback formatter.
type LLMConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Environment variable handling: cache.ttl -> CACHE_TTL etc.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "chronic_relief")
	viper.SetDefault("jwt.expiration", "24h")
	viper.SetDefault("resolver.scan_limit", 500)
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("exercisedb.host", "exercisedb.p.rapidapi.com")
	viper.SetDefault("llm.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.model", "gpt-4o-mini")
	viper.SetDefault("llm.max_tokens", 320)
	viper.SetDefault("llm.temperature", 0.1)
	viper.SetDefault("llm.timeout", "30s")
	viper.SetDefault("s3.use_ssl", true)

	err = viper.ReadInConfig()
	// Config file is optional; env vars and defaults can carry the app.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
