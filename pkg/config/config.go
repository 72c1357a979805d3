package config

import (
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		Demo      bool   `env:"APP_DEMO" env-default:"false"`
		SentryUrl string `env:"SENTRY_URL"`
	}
	API struct {
		BaseURL string        `env:"API_BASE_URL" env-default:"http://localhost:8081"`
		Timeout time.Duration `env:"API_TIMEOUT" env-default:"10s"`
	}
	Playback struct {
		SlideDuration time.Duration `env:"PLAYBACK_SLIDE_DURATION" env-default:"5s"`
		TickInterval  time.Duration `env:"PLAYBACK_TICK_INTERVAL" env-default:"50ms"`
	}
	Feed struct {
		SkeletonCount int `env:"FEED_SKELETON_COUNT" env-default:"6"`
	}
	Session struct {
		IdleTimeout     time.Duration `env:"SESSION_IDLE_TIMEOUT" env-default:"2m"`
		JanitorInterval time.Duration `env:"SESSION_JANITOR_INTERVAL" env-default:"30s"`
	}
	Tracking struct {
		Workers       int `env:"TRACKING_WORKERS" env-default:"4"`
		RatePerMinute int `env:"TRACKING_RATE_PER_MINUTE" env-default:"60"`
		Burst         int `env:"TRACKING_BURST" env-default:"10"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}
