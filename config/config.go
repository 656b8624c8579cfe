package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const VERSION = "1.2"

// Config holds the engine and CLI configuration. Everything is optional:
// the zero configuration renders with the standard 600px canvas.
type Config struct {
	Canvas      CanvasConfig
	Tracking    TrackingConfig
	LogLevel    string
	Environment string
	Version     string
}

// CanvasConfig overrides the global rendering defaults.
type CanvasConfig struct {
	MaxWidth         int
	MobileBreakpoint int
	FontFamily       string
	BackgroundColor  string
}

// TrackingConfig configures the post-render link instrumentation pass.
type TrackingConfig struct {
	Enabled     bool
	Endpoint    string
	UTMSource   string
	UTMMedium   string
	UTMCampaign string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("RENDER_MAX_WIDTH", 600)
	v.SetDefault("RENDER_MOBILE_BREAKPOINT", 480)
	v.SetDefault("RENDER_FONT_FAMILY", "Arial, Helvetica, sans-serif")
	v.SetDefault("RENDER_BACKGROUND_COLOR", "#f4f4f4")

	v.SetDefault("TRACKING_ENABLED", false)
	v.SetDefault("TRACKING_ENDPOINT", "")
	v.SetDefault("TRACKING_UTM_SOURCE", "")
	v.SetDefault("TRACKING_UTM_MEDIUM", "email")
	v.SetDefault("TRACKING_UTM_CAMPAIGN", "")

	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		Canvas: CanvasConfig{
			MaxWidth:         v.GetInt("RENDER_MAX_WIDTH"),
			MobileBreakpoint: v.GetInt("RENDER_MOBILE_BREAKPOINT"),
			FontFamily:       v.GetString("RENDER_FONT_FAMILY"),
			BackgroundColor:  v.GetString("RENDER_BACKGROUND_COLOR"),
		},
		Tracking: TrackingConfig{
			Enabled:     v.GetBool("TRACKING_ENABLED"),
			Endpoint:    v.GetString("TRACKING_ENDPOINT"),
			UTMSource:   v.GetString("TRACKING_UTM_SOURCE"),
			UTMMedium:   v.GetString("TRACKING_UTM_MEDIUM"),
			UTMCampaign: v.GetString("TRACKING_UTM_CAMPAIGN"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	if cfg.Tracking.Enabled && cfg.Tracking.Endpoint == "" {
		return nil, fmt.Errorf("TRACKING_ENDPOINT is required when TRACKING_ENABLED is set")
	}

	return cfg, nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
