package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Wizard sessions and submission.
	SessionTTLMinutes    int    `mapstructure:"SESSION_TTL_MINUTES"`
	BookingEndpoint      string `mapstructure:"BOOKING_ENDPOINT"`
	ThankYouPath         string `mapstructure:"THANK_YOU_PATH"`
	SubmitTimeoutSeconds int    `mapstructure:"SUBMIT_TIMEOUT_SECONDS"`

	// Booking notification email.
	ResendAPIKey     string `mapstructure:"RESEND_API_KEY"`
	DevBookingEmail  string `mapstructure:"DEV_BOOKING_EMAIL"`
	BookingEmail     string `mapstructure:"BOOKING_EMAIL"`
	EmailFromAddress string `mapstructure:"EMAIL_FROM_ADDRESS"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key. Unmarshal only sees
// keys viper knows about, so every field needs a default.
func SetDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_TTL_MINUTES", 30)
	viper.SetDefault("BOOKING_ENDPOINT", "http://127.0.0.1:8080/api/book")
	viper.SetDefault("THANK_YOU_PATH", "/book/thank-you")
	viper.SetDefault("SUBMIT_TIMEOUT_SECONDS", 15)
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("DEV_BOOKING_EMAIL", "")
	viper.SetDefault("BOOKING_EMAIL", "")
	viper.SetDefault("EMAIL_FROM_ADDRESS", "Lucy Russell Hair <onboarding@resend.dev>")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

func (c Config) SubmitTimeout() time.Duration {
	return time.Duration(c.SubmitTimeoutSeconds) * time.Second
}

// BookingRecipient prefers the development inbox when one is set.
func (c Config) BookingRecipient() string {
	if c.DevBookingEmail != "" {
		return c.DevBookingEmail
	}
	return c.BookingEmail
}
