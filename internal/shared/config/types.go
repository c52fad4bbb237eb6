package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Mode    string `mapstructure:"mode" validate:"oneof=debug release test"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// TelegramConfig configures the Bot API host the plugins run on.
type TelegramConfig struct {
	BotToken        string   `mapstructure:"bot_token" validate:"required"`
	APIBaseURL      string   `mapstructure:"api_base_url" validate:"required,url"`
	Mode            string   `mapstructure:"mode" validate:"oneof=polling webhook"`
	WebhookURL      string   `mapstructure:"webhook_url" validate:"required_if=Mode webhook"`
	WebhookSecret   string   `mapstructure:"webhook_secret" validate:"required_if=Mode webhook"`
	PollTimeout     int      `mapstructure:"poll_timeout" validate:"gte=0,lte=60"`
	CommandPrefixes []string `mapstructure:"command_prefixes" validate:"min=1,dive,required"`
	// AllowedUserIDs limits who may trigger commands. Empty means anyone.
	AllowedUserIDs []int64 `mapstructure:"allowed_user_ids"`
}

// SubscriptionConfig tunes the HTTP behaviour of the subscription inspector.
type SubscriptionConfig struct {
	UserAgent        string        `mapstructure:"user_agent"`
	BrowserUserAgent string        `mapstructure:"browser_user_agent"`
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`
	LoginTimeout     time.Duration `mapstructure:"login_timeout"`
	FallbackTimeout  time.Duration `mapstructure:"fallback_timeout"`
	MaxRedirects     int           `mapstructure:"max_redirects"`
	MaxBodyBytes     int64         `mapstructure:"max_body_bytes"`
}

// MediaConfig tunes the img/vd plugins.
type MediaConfig struct {
	ImageAPITimeout      time.Duration `mapstructure:"image_api_timeout"`
	ImageDownloadTimeout time.Duration `mapstructure:"image_download_timeout"`
	VideoAPITimeout      time.Duration `mapstructure:"video_api_timeout"`
	VideoDownloadTimeout time.Duration `mapstructure:"video_download_timeout"`
	MaxDownloadBytes     int64         `mapstructure:"max_download_bytes"`
}
