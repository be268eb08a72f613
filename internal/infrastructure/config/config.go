package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Providers   ProvidersConfig `mapstructure:"providers"`
	Fetch       FetchConfig     `mapstructure:"fetch"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Inventory   InventoryConfig `mapstructure:"inventory"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Image       ImageConfig     `mapstructure:"image"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
	LogLevel    string          `mapstructure:"log_level"`
	LogDir      string          `mapstructure:"log_dir"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// ProviderConfig 單一外部食譜來源設定
type ProviderConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// ProvidersConfig 外部食譜來源設定
type ProvidersConfig struct {
	Timeout     time.Duration  `mapstructure:"timeout"`
	MaxRetries  int            `mapstructure:"max_retries"`
	DetailLimit int            `mapstructure:"detail_limit"`
	MealDB      ProviderConfig `mapstructure:"mealdb"`
	Forkify     ProviderConfig `mapstructure:"forkify"`
	CocktailDB  ProviderConfig `mapstructure:"cocktaildb"`
}

// FetchConfig 外部查詢週期設定
type FetchConfig struct {
	MaxTerms     int           `mapstructure:"max_terms"`
	Workers      int           `mapstructure:"workers"`
	QueueSize    int           `mapstructure:"queue_size"`
	CycleTimeout time.Duration `mapstructure:"cycle_timeout"`
	WaitTimeout  time.Duration `mapstructure:"wait_timeout"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RedisConfig Redis 連線設定，快取與庫存共用
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// InventoryConfig 庫存保存設定
type InventoryConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	Key     string `mapstructure:"key"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// ImageConfig 外部食譜缺圖時的替代圖片設定
type ImageConfig struct {
	FallbackEnabled bool   `mapstructure:"fallback_enabled"`
	FallbackURL     string `mapstructure:"fallback_url"`
}

// 後端名稱
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendFile   = "file"
)

// LoadConfig 載入設定，讀取目前目錄的 .env（不存在時略過）
func LoadConfig() (*Config, error) {
	return Load(".env")
}

// Load 以指定的 .env 檔案載入設定，環境變數優先
func Load(envFile string) (*Config, error) {
	// 加載 .env 文件
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"server.port":         "PORT",
		"cache.enabled":       "CACHE_ENABLED",
		"cache.backend":       "CACHE_BACKEND",
		"redis.addr":          "REDIS_ADDR",
		"redis.password":      "REDIS_PASSWORD",
		"inventory.backend":   "INVENTORY_BACKEND",
		"inventory.path":      "INVENTORY_PATH",
		"rate_limit.enabled":  "RATE_LIMIT_ENABLED",
		"rate_limit.requests": "RATE_LIMIT_REQUESTS",
		"rate_limit.window":   "RATE_LIMIT_WINDOW",
		"dedup_window":        "DEDUP_WINDOW",
		"log_level":           "LOG_LEVEL",
		"log_dir":             "LOG_DIR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.name", "recipe-matcher")

	// 伺服器設定
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 外部來源設定
	v.SetDefault("providers.timeout", "10s")
	v.SetDefault("providers.max_retries", 1)
	v.SetDefault("providers.detail_limit", 5)
	v.SetDefault("providers.mealdb.enabled", true)
	v.SetDefault("providers.mealdb.base_url", "https://www.themealdb.com/api/json/v1/1")
	v.SetDefault("providers.forkify.enabled", true)
	v.SetDefault("providers.forkify.base_url", "https://forkify-api.herokuapp.com/api/v2")
	v.SetDefault("providers.cocktaildb.enabled", true)
	v.SetDefault("providers.cocktaildb.base_url", "https://www.thecocktaildb.com/api/json/v1/1")

	// 查詢週期設定
	v.SetDefault("fetch.max_terms", 3)
	v.SetDefault("fetch.workers", 2)
	v.SetDefault("fetch.queue_size", 16)
	v.SetDefault("fetch.cycle_timeout", "20s")
	v.SetDefault("fetch.wait_timeout", "15s")

	// 快取設定
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", BackendMemory)
	v.SetDefault("cache.max_size", 1000)
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.cleanup_interval", "10m")

	// Redis 設定
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "recipe-matcher")

	// 庫存設定
	v.SetDefault("inventory.backend", BackendFile)
	v.SetDefault("inventory.path", "data/kitchen-inventory.json")
	v.SetDefault("inventory.key", "kitchen-inventory")

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", "1m")

	// 圖片設定
	v.SetDefault("image.fallback_enabled", true)
	v.SetDefault("image.fallback_url", "https://source.unsplash.com/800x600/?%s")

	v.SetDefault("dedup_window", "1s")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.Backend != BackendMemory && config.Cache.Backend != BackendRedis {
			return fmt.Errorf("invalid cache backend %q", config.Cache.Backend)
		}
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證庫存設定
	switch config.Inventory.Backend {
	case BackendFile:
		if config.Inventory.Path == "" {
			return fmt.Errorf("inventory path is required")
		}
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid inventory backend %q", config.Inventory.Backend)
	}
	if config.Inventory.Key == "" {
		return fmt.Errorf("inventory key is required")
	}

	// 驗證查詢週期設定
	if config.Fetch.MaxTerms <= 0 {
		return fmt.Errorf("invalid fetch max terms")
	}
	if config.Fetch.Workers <= 0 {
		return fmt.Errorf("invalid fetch workers")
	}
	if config.Fetch.QueueSize <= 0 {
		return fmt.Errorf("invalid fetch queue size")
	}
	if config.Fetch.CycleTimeout <= 0 {
		return fmt.Errorf("invalid fetch cycle timeout")
	}

	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}

// UsesRedis 是否有任何元件需要 Redis 連線
func (c *Config) UsesRedis() bool {
	return (c.Cache.Enabled && c.Cache.Backend == BackendRedis) || c.Inventory.Backend == BackendRedis
}
