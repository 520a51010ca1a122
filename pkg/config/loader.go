package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without the APP_ prefix for Docker/VM deploys
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("database.url", "DATABASE_URL", "APP_DATABASE_URL")
	viper.BindEnv("redis.url", "REDIS_URL", "APP_REDIS_URL")
	viper.BindEnv("queue.nats_url", "NATS_URL", "APP_QUEUE_NATS_URL")
	viper.BindEnv("queue.rabbitmq_url", "RABBITMQ_URL", "APP_QUEUE_RABBITMQ_URL")
	viper.BindEnv("nlu.openai_api_key", "OPENAI_API_KEY", "APP_NLU_OPENAI_API_KEY")
	viper.BindEnv("webhook.token", "OMI_WEBHOOK_TOKEN", "APP_WEBHOOK_TOKEN")
	viper.BindEnv("vault.address", "VAULT_ADDR")
	viper.BindEnv("vault.token", "VAULT_TOKEN")
	viper.BindEnv("email.sendgrid_api_key", "SENDGRID_API_KEY")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// env vars only
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.name", "retailmind")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("http.port", 8080)
	viper.SetDefault("http.body_limit", 256*1024)
	viper.SetDefault("queue.driver", "nats")
	viper.SetDefault("nlu.provider", "openai")
	viper.SetDefault("nlu.model", "gpt-4o-mini")
	viper.SetDefault("nlu.timeout", 5*time.Second)
	viper.SetDefault("nlu.confidence_threshold", 0.3)
	viper.SetDefault("nlu.breaker.max_requests", 1)
	viper.SetDefault("nlu.breaker.interval", time.Minute)
	viper.SetDefault("nlu.breaker.timeout", 30*time.Second)
	viper.SetDefault("nlu.breaker.failure_threshold", 5)
	viper.SetDefault("cache.parse_result_ttl", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", time.Minute)
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.max_requests", 60)
	viper.SetDefault("rate_limiting.window", time.Minute)
	viper.SetDefault("email.from_email", "noreply@retailmind.app")
	viper.SetDefault("email.from_name", "Retailmind")
	viper.SetDefault("logging.level", "info")
}
