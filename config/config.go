package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string        `mapstructure:"APP_PORT"`
	DatabaseURL       string        `mapstructure:"DATABASE_URL"`
	DatabaseName      string        `mapstructure:"DATABASE_NAME"`
	Env               string        `mapstructure:"ENV"`
	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTExpiration     time.Duration `mapstructure:"JWT_EXPIRATION"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int           `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       []string      `mapstructure:"CORS_ORIGINS"`

	// Redis configuration. An empty address disables the stats cache.
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int           `mapstructure:"REDIS_CACHE_DB"`
	StatsCacheTTL time.Duration `mapstructure:"STATS_CACHE_TTL"`

	// Email delivery.
	SMTPHost         string        `mapstructure:"SMTP_HOST"`
	SMTPPort         int           `mapstructure:"SMTP_PORT"`
	SMTPUsername     string        `mapstructure:"SMTP_USERNAME"`
	SMTPPassword     string        `mapstructure:"SMTP_PASSWORD"`
	SMTPTimeout      time.Duration `mapstructure:"SMTP_TIMEOUT"`
	EmailFrom        string        `mapstructure:"EMAIL_FROM"`
	EmailFromName    string        `mapstructure:"EMAIL_FROM_NAME"`
	EmailTestingMode bool          `mapstructure:"EMAIL_TESTING_MODE"`
	FrontendURL      string        `mapstructure:"FRONTEND_URL"`

	// Reminder pipeline.
	ReminderHoursBefore         int           `mapstructure:"REMINDER_HOURS_BEFORE"`
	ReminderMinutesBefore       int           `mapstructure:"REMINDER_MINUTES_BEFORE"`
	ReminderCronSpec            string        `mapstructure:"REMINDER_CRON_SPEC"`
	ReminderDispatchConcurrency int           `mapstructure:"REMINDER_DISPATCH_CONCURRENCY"`
	ReminderClaimTimeout        time.Duration `mapstructure:"REMINDER_CLAIM_TIMEOUT"`
}

// ReminderSettings is the single configuration surface of the reminder
// pipeline. The creation and reschedule fallbacks are kept as separate named
// durations because they come from differently-unitted settings.
type ReminderSettings struct {
	// CreationOffset applies when a task is created without reminderMinutes.
	CreationOffset time.Duration
	// RescheduleOffset applies when a deadline changes and the update carries
	// no reminderMinutes.
	RescheduleOffset time.Duration
	CronSpec         string
	Concurrency      int
	ClaimTimeout     time.Duration
}

var AppConfig Config

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "taskly")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION", "1h")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("STATS_CACHE_TTL", "30s")

	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_TIMEOUT", "30s")
	v.SetDefault("EMAIL_FROM", "no-reply@taskly.local")
	v.SetDefault("EMAIL_FROM_NAME", "Task Manager")
	v.SetDefault("EMAIL_TESTING_MODE", false)
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")

	v.SetDefault("REMINDER_HOURS_BEFORE", 24)
	v.SetDefault("REMINDER_MINUTES_BEFORE", 60)
	v.SetDefault("REMINDER_CRON_SPEC", "*/15 * * * *")
	v.SetDefault("REMINDER_DISPATCH_CONCURRENCY", 1)
	v.SetDefault("REMINDER_CLAIM_TIMEOUT", "10m")
}

// Load reads configuration from an optional config.yaml and the environment.
func Load(v *viper.Viper) (Config, error) {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig populates AppConfig from the global viper instance.
func LoadConfig() {
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Reminders converts the raw reminder keys into typed durations.
func (c Config) Reminders() ReminderSettings {
	concurrency := c.ReminderDispatchConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return ReminderSettings{
		CreationOffset:   time.Duration(c.ReminderHoursBefore) * time.Hour,
		RescheduleOffset: time.Duration(c.ReminderMinutesBefore) * time.Minute,
		CronSpec:         c.ReminderCronSpec,
		Concurrency:      concurrency,
		ClaimTimeout:     c.ReminderClaimTimeout,
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

func IsDevelopment() bool {
	return GetEnv() == "development"
}
