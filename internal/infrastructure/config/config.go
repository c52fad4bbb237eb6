package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	sharedConfig "userbot/internal/shared/config"
)

type Config struct {
	Server       sharedConfig.ServerConfig       `mapstructure:"server"`
	Logger       sharedConfig.LoggerConfig       `mapstructure:"logger"`
	Redis        sharedConfig.RedisConfig        `mapstructure:"redis"`
	Telegram     sharedConfig.TelegramConfig     `mapstructure:"telegram"`
	Subscription sharedConfig.SubscriptionConfig `mapstructure:"subscription"`
	Media        sharedConfig.MediaConfig        `mapstructure:"media"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads config.yaml (optional) and USERBOT_* environment variables.
// An explicit path takes precedence over the search directories.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("USERBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// ValidateForServe checks the sections the long-running host depends on.
func (c *Config) ValidateForServe() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Telegram); err != nil {
		return fmt.Errorf("invalid telegram config: %w", err)
	}
	if err := validate.Struct(c.Server); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Telegram defaults
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.api_base_url", "https://api.telegram.org")
	v.SetDefault("telegram.mode", "polling")
	v.SetDefault("telegram.webhook_url", "")
	v.SetDefault("telegram.webhook_secret", "")
	v.SetDefault("telegram.poll_timeout", 30)
	v.SetDefault("telegram.command_prefixes", []string{",", "-", "/"})
	v.SetDefault("telegram.allowed_user_ids", []int64{})

	// Subscription inspector defaults
	v.SetDefault("subscription.user_agent", "ClashforWindows/0.18.1")
	v.SetDefault("subscription.browser_user_agent",
		"Mozilla/5.0 (Windows NT 6.1; Win64; x64) AppleWebKit/537.36 (HTML, like Gecko) Chrome/108.0.0.0Safari/537.36")
	v.SetDefault("subscription.fetch_timeout", "5s")
	v.SetDefault("subscription.login_timeout", "10s")
	v.SetDefault("subscription.fallback_timeout", "1s")
	v.SetDefault("subscription.max_redirects", 10)
	v.SetDefault("subscription.max_body_bytes", 16<<20)

	// Media defaults
	v.SetDefault("media.image_api_timeout", "15s")
	v.SetDefault("media.image_download_timeout", "15s")
	v.SetDefault("media.video_api_timeout", "30s")
	v.SetDefault("media.video_download_timeout", "60s")
	v.SetDefault("media.max_download_bytes", 50<<20)
}
