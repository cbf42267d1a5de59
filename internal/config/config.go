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

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Distance DistanceConfig `mapstructure:"distance"`
	Matching MatchingConfig `mapstructure:"matching"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port              string        `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	SeedPath string `mapstructure:"seed_path"`
}

type RedisConfig struct {
	Address     string        `mapstructure:"address"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DistanceTTL time.Duration `mapstructure:"distance_ttl"`
}

// DistanceConfig selects how provider distances are computed: "haversine"
// (great-circle, no I/O) or "ors" (OpenRouteService driving matrix).
type DistanceConfig struct {
	Provider   string `mapstructure:"provider"`
	ORSAPIKey  string `mapstructure:"ors_api_key"`
	ORSBaseURL string `mapstructure:"ors_base_url"`
	ORSProfile string `mapstructure:"ors_profile"`
}

type MatchingConfig struct {
	DefaultRadiusKm float64 `mapstructure:"default_radius_km"`
	MaxRadiusKm     float64 `mapstructure:"max_radius_km"`
}

type DispatchConfig struct {
	Phone    string `mapstructure:"phone"`
	Timezone string `mapstructure:"timezone"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads .env, then config.yaml (optional), then environment overrides.
// Environment keys use underscores for nesting: MATCHING_MAX_RADIUS_KM.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	return load(v)
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config: read config: %w", err)
		}
	}

	// Short aliases kept for compatibility with plain .env files.
	bindAlias(v, "server.port", "PORT")
	bindAlias(v, "database.url", "DATABASE_URL")
	bindAlias(v, "database.seed_path", "SEED_PATH")
	bindAlias(v, "distance.provider", "DISTANCE_PROVIDER")
	bindAlias(v, "distance.ors_api_key", "ORS_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.seed_path", "data/seeds/providers.json")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.distance_ttl", 24*time.Hour)

	v.SetDefault("distance.provider", "haversine")
	v.SetDefault("distance.ors_api_key", "")
	v.SetDefault("distance.ors_base_url", "https://api.openrouteservice.org")
	v.SetDefault("distance.ors_profile", "driving-car")

	v.SetDefault("matching.default_radius_km", 5.0)
	v.SetDefault("matching.max_radius_km", 20.0)

	v.SetDefault("dispatch.phone", "")
	v.SetDefault("dispatch.timezone", "Local")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func bindAlias(v *viper.Viper, key, env string) {
	if val, ok := os.LookupEnv(env); ok && strings.TrimSpace(val) != "" {
		v.Set(key, val)
	}
}

// Validate reports settings that would make the service unusable.
func (c *Config) Validate() error {
	switch c.Distance.Provider {
	case "haversine":
	case "ors":
		if strings.TrimSpace(c.Distance.ORSAPIKey) == "" {
			return errors.New("ORS_API_KEY is required when distance provider is ors")
		}
	default:
		return fmt.Errorf("unknown distance provider %q", c.Distance.Provider)
	}

	if c.Matching.DefaultRadiusKm <= 0 {
		return fmt.Errorf("matching.default_radius_km must be positive, got %v", c.Matching.DefaultRadiusKm)
	}
	if c.Matching.MaxRadiusKm != 0 && c.Matching.MaxRadiusKm < c.Matching.DefaultRadiusKm {
		return fmt.Errorf("matching.max_radius_km (%v) must be 0 or at least default_radius_km (%v)",
			c.Matching.MaxRadiusKm, c.Matching.DefaultRadiusKm)
	}

	if _, err := c.Dispatch.Location(); err != nil {
		return err
	}

	return nil
}

// Location resolves the configured dispatch timezone.
func (d DispatchConfig) Location() (*time.Location, error) {
	if d.Timezone == "" || d.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return nil, fmt.Errorf("dispatch.timezone: %w", err)
	}
	return loc, nil
}
