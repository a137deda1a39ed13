package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string   `mapstructure:"APP_PORT"`
	DatabaseURL       string   `mapstructure:"DATABASE_URL"`
	DatabaseName      string   `mapstructure:"DATABASE_NAME"`
	Env               string   `mapstructure:"ENV"`
	JWTSecret         string   `mapstructure:"JWT_SECRET"`
	LogLevel          string   `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int      `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`

	// Admin credentials. AdminPassword may be a bcrypt hash or, for local
	// development, a plain value.
	AdminUsername string `mapstructure:"ADMIN_USERNAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Reservation lifecycle. The expiry threshold bounds how long an
	// unconfirmed reservation may hold a slot.
	ReservationExpiryMin     int `mapstructure:"RESERVATION_EXPIRY_MIN"`
	ExpirySweepIntervalMin   int `mapstructure:"EXPIRY_SWEEP_INTERVAL_MIN"`
	ReminderSweepIntervalMin int `mapstructure:"REMINDER_SWEEP_INTERVAL_MIN"`
	ReminderLookaheadHours   int `mapstructure:"REMINDER_LOOKAHEAD_HOURS"`
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

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:5500", "http://127.0.0.1:5500"})
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "admin123")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "medbuddy")
	viper.SetDefault("RESERVATION_EXPIRY_MIN", 30)
	viper.SetDefault("EXPIRY_SWEEP_INTERVAL_MIN", 10)
	viper.SetDefault("REMINDER_SWEEP_INTERVAL_MIN", 5)
	viper.SetDefault("REMINDER_LOOKAHEAD_HOURS", 24)

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

// ReservationExpiry returns the configured expiry threshold as a duration.
func ReservationExpiry() time.Duration {
	return time.Duration(AppConfig.ReservationExpiryMin) * time.Minute
}

// ExpirySweepInterval returns how often the expiry sweep runs.
func ExpirySweepInterval() time.Duration {
	return time.Duration(AppConfig.ExpirySweepIntervalMin) * time.Minute
}

// ReminderSweepInterval returns how often the reminder sweep runs.
func ReminderSweepInterval() time.Duration {
	return time.Duration(AppConfig.ReminderSweepIntervalMin) * time.Minute
}

// ReminderLookahead returns the reminder window size.
func ReminderLookahead() time.Duration {
	return time.Duration(AppConfig.ReminderLookaheadHours) * time.Hour
}
