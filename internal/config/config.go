package config

import (
	"os"
)

// Config 应用配置，全部来自环境变量（.env 由 main 加载）
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	// 外部服务
	MarketDataURL    string // 行情 API 基础地址
	MarketDataKey    string // 行情 API Key
	ContentNetURL    string // 外部内容网络基础地址
	ContentUserAgent string
}

// Load 读取环境变量并填充默认值
func Load() *Config {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=cardfeed port=5432 sslmode=disable"),
		JWTSecret:        getEnv("JWT_SECRET", "secret_key_change_me"),
		MarketDataURL:    getEnv("MARKET_DATA_URL", "https://www.alphavantage.co"),
		MarketDataKey:    getEnv("MARKET_DATA_KEY", "demo"),
		ContentNetURL:    getEnv("CONTENT_NET_URL", "https://www.reddit.com"),
		ContentUserAgent: getEnv("CONTENT_USER_AGENT", "cardfeed/1.0"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
