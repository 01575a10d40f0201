package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Upload       UploadConfig
	OCR          OCRConfig
	Verification VerificationConfig
	Cache        CacheConfig
	RateLimit    RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds image upload configuration
type UploadConfig struct {
	Dir               string   `mapstructure:"dir"`
	MaxSizeMB         int64    `mapstructure:"max_size_mb"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// OCRConfig holds Tesseract-related configuration
type OCRConfig struct {
	Language       string `mapstructure:"language"`
	TessdataPrefix string `mapstructure:"tessdata_prefix"`
	MinTextLength  int    `mapstructure:"min_text_length"`
}

// VerificationConfig holds thresholds and tolerances for the engine
type VerificationConfig struct {
	BrandThreshold       float64 `mapstructure:"brand_threshold"`
	ProductTypeThreshold float64 `mapstructure:"product_type_threshold"`
	ABVTolerance         float64 `mapstructure:"abv_tolerance"`
	VolumeTolerance      float64 `mapstructure:"volume_tolerance"`
	EnableFuzzyMatching  bool    `mapstructure:"enable_fuzzy_matching"`
	EnableDebugLogging   bool    `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds OCR result cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP float64 `mapstructure:"per_ip"` // requests per second per client IP
	Burst int     `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/labellens/")

	v.SetEnvPrefix("LABELLENS")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Upload defaults
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_size_mb", 16)
	v.SetDefault("upload.allowed_extensions", []string{"png", "jpg", "jpeg"})

	// OCR defaults
	v.SetDefault("ocr.language", "eng")
	v.SetDefault("ocr.min_text_length", 5)

	// Verification defaults: brand names are short and sensitive to small
	// deviations, product-type phrasing varies more
	v.SetDefault("verification.brand_threshold", 0.85)
	v.SetDefault("verification.product_type_threshold", 0.75)
	v.SetDefault("verification.abv_tolerance", 0.5)
	v.SetDefault("verification.volume_tolerance", 0.01)
	v.SetDefault("verification.enable_fuzzy_matching", true)
	v.SetDefault("verification.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 5)
	v.SetDefault("ratelimit.burst", 10)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Upload.Dir == "" {
		return fmt.Errorf("upload dir is required")
	}

	if config.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("upload max size must be positive, got: %d", config.Upload.MaxSizeMB)
	}

	if t := config.Verification.BrandThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("brand threshold must be in (0,1], got: %v", t)
	}

	if t := config.Verification.ProductTypeThreshold; t <= 0 || t > 1 {
		return fmt.Errorf("product type threshold must be in (0,1], got: %v", t)
	}

	if config.Verification.ABVTolerance <= 0 {
		return fmt.Errorf("abv tolerance must be positive, got: %v", config.Verification.ABVTolerance)
	}

	if config.Verification.VolumeTolerance <= 0 {
		return fmt.Errorf("volume tolerance must be positive, got: %v", config.Verification.VolumeTolerance)
	}

	return nil
}
