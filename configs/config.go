package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
}

type Config struct {
	Port              string
	PostgresURI       string
	RedisURI          string
	FrontendURL       string
	SecretKey         string
	CookieName        string
	TokenTTL          time.Duration
	Timezone          string
	OptimalHours      []int
	AutoTrustedThemes []string
	DailyCron         string
	TransportURL      string
	TransportTimeout  time.Duration
	R2                R2
}

func LoadConfig() *Config {
	return &Config{
		Port:              getEnv("PORT", "3000"),
		PostgresURI:       getEnv("POSTGRES_URI", ""),
		RedisURI:          getEnv("REDIS_URI", "localhost:6379"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:5173"),
		SecretKey:         getEnv("SECRET_KEY", ""),
		CookieName:        getEnv("COOKIE_NAME", "contentflow_session"),
		TokenTTL:          getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		Timezone:          getEnv("TIMEZONE", "UTC"),
		OptimalHours:      getEnvAsIntList("OPTIMAL_HOURS", []int{8, 12, 15, 18, 20}),
		AutoTrustedThemes: getEnvList("AUTO_TRUSTED_THEMES", []string{"sunday_reflection"}),
		DailyCron:         getEnv("DAILY_CRON", "0 0 6 * * *"),
		TransportURL:      getEnv("TRANSPORT_URL", ""),
		TransportTimeout:  getEnvAsDuration("TRANSPORT_TIMEOUT", 30*time.Second),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
		},
	}
}

// Location resolves Timezone, falling back to UTC when it is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func getEnvAsIntList(key string, defaultValue []int) []int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []int
	for _, item := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil || n < 0 || n > 23 {
			return defaultValue
		}
		list = append(list, n)
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
