package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type HTTPClient struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Enabled reports whether rates are persisted. Without a host the service runs in memory only.
func (config *DbServer) Enabled() bool {
	return config.Host != ""
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type ExchangeRateAPI struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type FX struct {
	ReferenceCurrency   string             `mapstructure:"reference_currency"`
	Currencies          []string           `mapstructure:"currencies"`
	PollIntervalSeconds int                `mapstructure:"poll_interval_seconds"`
	RetryMaxTries       uint               `mapstructure:"retry_max_tries"`
	UseStaticRates      bool               `mapstructure:"use_static_rates"`
	StaticRates         map[string]float64 `mapstructure:"static_rates"`
}

func (f FX) PollInterval() time.Duration {
	return time.Duration(f.PollIntervalSeconds) * time.Second
}

type Marketplace struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

type Marketplaces struct {
	Asset           string      `mapstructure:"asset"`
	Rows            int         `mapstructure:"rows"`
	CacheTTLSeconds int         `mapstructure:"cache_ttl_seconds"`
	CacheMaxItems   int64       `mapstructure:"cache_max_items"`
	MaxConcurrency  int         `mapstructure:"max_concurrency"`
	Binance         Marketplace `mapstructure:"binance"`
	OKX             Marketplace `mapstructure:"okx"`
}

func (m Marketplaces) CacheTTL() time.Duration {
	return time.Duration(m.CacheTTLSeconds) * time.Second
}

type Plausibility struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

type Engine struct {
	Mode                string       `mapstructure:"mode"`
	Capital             float64      `mapstructure:"capital"`
	TopK                int          `mapstructure:"top_k"`
	ExecutableThreshold float64      `mapstructure:"executable_threshold"`
	WatchThreshold      float64      `mapstructure:"watch_threshold"`
	Plausibility        Plausibility `mapstructure:"plausibility"`
}

type AppConfig struct {
	HTTPServer      HTTPServer      `mapstructure:"http_server"`
	Logging         Logging         `mapstructure:"logging"`
	HTTPClient      HTTPClient      `mapstructure:"http_client"`
	DbServer        DbServer        `mapstructure:"db_server"`
	ExchangeRateAPI ExchangeRateAPI `mapstructure:"exchange_rate_api"`
	FX              FX              `mapstructure:"fx"`
	Marketplaces    Marketplaces    `mapstructure:"marketplaces"`
	Engine          Engine          `mapstructure:"engine"`
}

func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return Load("config.yaml")
}

// Load reads the yaml file at path, applies defaults and env overrides.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// http server env vars
	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// http client env vars
	_ = v.BindEnv("http_client.timeout_seconds", "HTTP_CLIENT_TIMEOUT_SECONDS")

	// rate provider env vars
	_ = v.BindEnv("exchange_rate_api.base_url", "EXCHANGE_RATE_API_BASE_URL")
	_ = v.BindEnv("exchange_rate_api.api_key", "EXCHANGE_RATE_API_KEY")
	_ = v.BindEnv("fx.use_static_rates", "FX_USE_STATIC_RATES")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	normalize(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_server.port", "8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("http_client.timeout_seconds", 10)
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("exchange_rate_api.base_url", "https://v6.exchangerate-api.com/v6")

	v.SetDefault("fx.reference_currency", "KES")
	v.SetDefault("fx.currencies", []string{"UGX", "TZS"})
	v.SetDefault("fx.poll_interval_seconds", 3600)
	v.SetDefault("fx.retry_max_tries", 3)
	v.SetDefault("fx.use_static_rates", false)
	v.SetDefault("fx.static_rates", map[string]float64{"UGX": 0.038, "TZS": 0.058})

	v.SetDefault("marketplaces.asset", "USDT")
	v.SetDefault("marketplaces.rows", 10)
	v.SetDefault("marketplaces.cache_ttl_seconds", 30)
	v.SetDefault("marketplaces.cache_max_items", 1000)
	v.SetDefault("marketplaces.max_concurrency", 4)
	v.SetDefault("marketplaces.binance.enabled", true)
	v.SetDefault("marketplaces.binance.base_url", "https://p2p.binance.com")
	v.SetDefault("marketplaces.okx.enabled", true)
	v.SetDefault("marketplaces.okx.base_url", "https://www.okx.com")

	v.SetDefault("engine.mode", "all_pairs")
	v.SetDefault("engine.capital", 10000)
	v.SetDefault("engine.top_k", 10)
	v.SetDefault("engine.executable_threshold", 2.5)
	v.SetDefault("engine.watch_threshold", 1.0)
	v.SetDefault("engine.plausibility.min", 50)
	v.SetDefault("engine.plausibility.max", 500)
}

func normalize(cfg *AppConfig) {
	cfg.FX.ReferenceCurrency = strings.ToUpper(strings.TrimSpace(cfg.FX.ReferenceCurrency))
	for i, c := range cfg.FX.Currencies {
		cfg.FX.Currencies[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	// viper lowercases map keys
	static := make(map[string]float64, len(cfg.FX.StaticRates))
	for c, v := range cfg.FX.StaticRates {
		static[strings.ToUpper(c)] = v
	}
	cfg.FX.StaticRates = static
	cfg.Marketplaces.Asset = strings.ToUpper(strings.TrimSpace(cfg.Marketplaces.Asset))
	cfg.ExchangeRateAPI.BaseURL = strings.TrimSuffix(cfg.ExchangeRateAPI.BaseURL, "/")
}

func (cfg *AppConfig) validate() error {
	if cfg.FX.ReferenceCurrency == "" {
		return errors.New("fx.reference_currency is required")
	}
	if cfg.Engine.Capital <= 0 {
		return errors.New("engine.capital must be positive")
	}
	if cfg.Engine.TopK < 0 {
		return errors.New("engine.top_k must not be negative")
	}
	if cfg.Engine.WatchThreshold > cfg.Engine.ExecutableThreshold {
		return errors.New("engine.watch_threshold must not exceed engine.executable_threshold")
	}
	if cfg.Engine.Plausibility.Max > 0 && cfg.Engine.Plausibility.Min > cfg.Engine.Plausibility.Max {
		return errors.New("engine.plausibility.min must not exceed engine.plausibility.max")
	}
	if !cfg.FX.UseStaticRates && cfg.ExchangeRateAPI.APIKey == "" {
		return errors.New("exchange rate api key is required unless fx.use_static_rates is set")
	}
	return nil
}
