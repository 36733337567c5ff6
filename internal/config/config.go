package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr          string
	Port                string
	DatabasePath        string
	DatabaseDSN         string
	SessionSecret       string
	GinMode             string
	LogLevel            string
	LogFormat           string
	AdminEmail          string
	AdminPassword       string
	MealGenerationDelay time.Duration
	RateLimitRPS        float64
	RateLimitBurst      int
}

var defaults = map[string]any{
	"PORT":                  "8080",
	"DATABASE_PATH":         "wellcampus.db",
	"DATABASE_DSN":          "",
	"SESSION_SECRET":        "wellcampus-dev-secret",
	"GIN_MODE":              "release",
	"LOG_LEVEL":             "info",
	"LOG_FORMAT":            "json",
	"ADMIN_EMAIL":           "",
	"ADMIN_PASSWORD":        "",
	"MEAL_GENERATION_DELAY": "1500ms",
	"RATE_LIMIT_RPS":        20.0,
	"RATE_LIMIT_BURST":      40,
}

// Load 从 .env 与环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() AppConfig {
	// .env 缺失时忽略，仅在本地开发时使用
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) AppConfig {
	port := strings.TrimSpace(v.GetString("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(v.GetString("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(v.GetString("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "wellcampus.db"
	}

	sessionSecret := strings.TrimSpace(v.GetString("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "wellcampus-dev-secret"
	}

	ginMode := strings.TrimSpace(v.GetString("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	logLevel := strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := strings.ToLower(strings.TrimSpace(v.GetString("LOG_FORMAT")))
	if logFormat != "console" {
		logFormat = "json"
	}

	delay := v.GetDuration("MEAL_GENERATION_DELAY")
	if delay < 0 {
		delay = 1500 * time.Millisecond
	}

	rps := v.GetFloat64("RATE_LIMIT_RPS")
	if rps <= 0 {
		rps = 20
	}
	burst := v.GetInt("RATE_LIMIT_BURST")
	if burst <= 0 {
		burst = int(rps * 2)
	}

	return AppConfig{
		ListenAddr:          listenAddr,
		Port:                port,
		DatabasePath:        databasePath,
		DatabaseDSN:         strings.TrimSpace(v.GetString("DATABASE_DSN")),
		SessionSecret:       sessionSecret,
		GinMode:             ginMode,
		LogLevel:            logLevel,
		LogFormat:           logFormat,
		AdminEmail:          strings.TrimSpace(v.GetString("ADMIN_EMAIL")),
		AdminPassword:       strings.TrimSpace(v.GetString("ADMIN_PASSWORD")),
		MealGenerationDelay: delay,
		RateLimitRPS:        rps,
		RateLimitBurst:      burst,
	}
}
