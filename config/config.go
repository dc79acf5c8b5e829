package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	ClientOrigin      string `mapstructure:"CLIENT_ORIGIN"`
	TrustedProxies    string `mapstructure:"TRUSTED_PROXIES"`

	// Token and OTP lifetimes.
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	JWTExpireDays   int    `mapstructure:"JWT_EXPIRE"`
	JWTCookieExpire int    `mapstructure:"JWT_COOKIE_EXPIRE"`
	OTPExpMinutes   int    `mapstructure:"OTP_EXP_MINUTES"`

	// Redis configuration (health checks and the reminder queue).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Outbound mail.
	Notifier     string `mapstructure:"NOTIFIER"`
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	ReminderLeadMinutes int `mapstructure:"REMINDER_LEAD_MINUTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Every key needs a default so Unmarshal picks up its env override.
	viper.SetDefault("APP_PORT", "5003")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CLIENT_ORIGIN", "http://localhost:5173")
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "cowork")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRE", 30)
	viper.SetDefault("JWT_COOKIE_EXPIRE", 30)
	viper.SetDefault("OTP_EXP_MINUTES", 10)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("NOTIFIER", "smtp")
	viper.SetDefault("SMTP_HOST", "localhost")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_EMAIL", "")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("SMTP_FROM", "")
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// OTPWindow is the lifetime of a login challenge. Non-positive values fall back to 10 minutes.
func (c Config) OTPWindow() time.Duration {
	if c.OTPExpMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.OTPExpMinutes) * time.Minute
}

// SessionTTL is the lifetime embedded in session tokens.
func (c Config) SessionTTL() time.Duration {
	if c.JWTExpireDays <= 0 {
		return 30 * 24 * time.Hour
	}
	return time.Duration(c.JWTExpireDays) * 24 * time.Hour
}

// SessionCookieTTL is the lifetime of the session cookie.
func (c Config) SessionCookieTTL() time.Duration {
	if c.JWTCookieExpire <= 0 {
		return c.SessionTTL()
	}
	return time.Duration(c.JWTCookieExpire) * 24 * time.Hour
}

func (c Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadMinutes) * time.Minute
}

// AllowedOrigins splits CLIENT_ORIGIN on commas.
func (c Config) AllowedOrigins() []string {
	return splitCSV(c.ClientOrigin)
}

// TrustedProxyList splits TRUSTED_PROXIES on commas. Empty means forwarding
// headers are ignored and the socket address identifies the client.
func (c Config) TrustedProxyList() []string {
	return splitCSV(c.TrustedProxies)
}

func splitCSV(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
