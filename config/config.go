package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port          int
	MongoURI      string
	MongoDB       string
	JWTKey        string
	AdminEmail    string
	AdminPassword string
	Debug         bool
}

// LoadConfig 从环境变量加载配置（支持 .env 文件）
// 配置只在 main 中加载一次，由调用方显式注入各模块
func LoadConfig() *Config {
	// .env 不存在时静默忽略
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "3001"))
	return &Config{
		Port:          port,
		MongoURI:      getEnv("MONGODB_URL", "mongodb://127.0.0.1:27017"),
		MongoDB:       getEnv("MONGO_DB", "leads_crm"),
		JWTKey:        getEnv("ACCESS_TOKEN_SECRET", "your-secret-key"), // 实际环境应替换为安全密钥
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		Debug:         getEnv("GIN_MODE", "debug") == "debug",
	}
}

// getEnv 获取环境变量，如果不存在则返回默认值
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
