package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ==================== 配置结构 ====================

// Config 服务配置
// 先读 YAML 文件（可选），再用环境变量覆盖
type Config struct {
	ServerPort string `yaml:"server_port"`
	CORSOrigin string `yaml:"cors_origin"`

	Database    DatabaseConfig   `yaml:"database"`
	Auth        AuthConfig       `yaml:"auth"`
	Permissions PermissionConfig `yaml:"permissions"`
	RateLimit   RateLimitConfig  `yaml:"rate_limit"`
	Search      SearchConfig     `yaml:"search"`
	Backup      BackupConfig     `yaml:"backup"`
	AI          AIConfig         `yaml:"ai"`
}

// DatabaseConfig 数据库连接与连接池
// LogSQL 打开后每条 SQL 进日志（含大体积截图列），只建议开发环境用
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	LogSQL                 bool   `yaml:"log_sql"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// AuthConfig JWT 验签配置
// Domain 配置后走 Auth0 JWKS（RS256）；否则用 SecretKey 本地验签（HS256，开发/测试）
type AuthConfig struct {
	Domain    string `yaml:"domain"`
	Audience  string `yaml:"audience"`
	SecretKey string `yaml:"secret_key"`
}

// PermissionConfig 各路由要求的权限 scope 字符串
type PermissionConfig struct {
	Read   string `yaml:"read"`
	Write  string `yaml:"write"`
	Admin  string `yaml:"admin"`
	Search string `yaml:"search"`
	Backup string `yaml:"backup"`
}

// RateLimitConfig 按 pathname 的固定窗口限流
type RateLimitConfig struct {
	Requests      int `yaml:"requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// SearchConfig 采购搜索参数
type SearchConfig struct {
	MinQueryLength int `yaml:"min_query_length"`
	DefaultLimit   int `yaml:"default_limit"`
	MaxLimit       int `yaml:"max_limit"`
}

// BackupConfig S3 备份配置，Bucket 为空则不启用定时备份
type BackupConfig struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	BasePath  string `yaml:"base_path"`
}

// AIConfig 截图摘要（Gemini），ApiKey 为空则不启用
type AIConfig struct {
	ApiKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// ==================== 加载 ====================

// Load 加载配置
// path 为空或文件不存在时只用默认值 + 环境变量
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		ServerPort: "8080",
		CORSOrigin: "*",
		Database: DatabaseConfig{
			MaxIdleConns:           10,
			MaxOpenConns:           100,
			ConnMaxLifetimeMinutes: 60,
		},
		Permissions: PermissionConfig{
			Read:   "read:purchases",
			Write:  "write:purchases",
			Admin:  "admin:testers",
			Search: "search:purchases",
			Backup: "backup:data",
		},
		RateLimit: RateLimitConfig{
			Requests:      60,
			WindowSeconds: 60,
		},
		Search: SearchConfig{
			MinQueryLength: 4,
			DefaultLimit:   50,
			MaxLimit:       1000,
		},
		Backup: BackupConfig{
			BasePath: "feedback-flow",
		},
		AI: AIConfig{
			Model: "gemini-3-flash",
		},
	}
}

// applyEnv 环境变量覆盖（部署时优先于配置文件）
func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.CORSOrigin = getEnv("CORS_ORIGIN", c.CORSOrigin)

	c.Database.DSN = getEnv("DATABASE_DSN", c.Database.DSN)
	c.Database.LogSQL = getEnvBool("DATABASE_LOG_SQL", c.Database.LogSQL)
	c.Database.MaxIdleConns = getEnvInt("DATABASE_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.MaxOpenConns = getEnvInt("DATABASE_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.ConnMaxLifetimeMinutes = getEnvInt("DATABASE_CONN_MAX_LIFETIME", c.Database.ConnMaxLifetimeMinutes)

	c.Auth.Domain = getEnv("AUTH_DOMAIN", c.Auth.Domain)
	c.Auth.Audience = getEnv("AUTH_AUDIENCE", c.Auth.Audience)
	c.Auth.SecretKey = getEnv("AUTH_SECRET_KEY", c.Auth.SecretKey)

	c.Permissions.Read = getEnv("READ_PERMISSION", c.Permissions.Read)
	c.Permissions.Write = getEnv("WRITE_PERMISSION", c.Permissions.Write)
	c.Permissions.Admin = getEnv("ADMIN_PERMISSION", c.Permissions.Admin)
	c.Permissions.Search = getEnv("SEARCH_PERMISSION", c.Permissions.Search)
	c.Permissions.Backup = getEnv("BACKUP_PERMISSION", c.Permissions.Backup)

	c.RateLimit.Requests = getEnvInt("RATE_LIMIT_REQUESTS", c.RateLimit.Requests)
	c.RateLimit.WindowSeconds = getEnvInt("RATE_LIMIT_WINDOW", c.RateLimit.WindowSeconds)

	c.Backup.Bucket = getEnv("BACKUP_BUCKET", c.Backup.Bucket)
	c.Backup.Region = getEnv("AWS_REGION", c.Backup.Region)
	c.Backup.AccessKey = getEnv("AWS_ACCESS_KEY_ID", c.Backup.AccessKey)
	c.Backup.SecretKey = getEnv("AWS_SECRET_ACCESS_KEY", c.Backup.SecretKey)
	c.Backup.BasePath = getEnv("BACKUP_BASE_PATH", c.Backup.BasePath)

	c.AI.ApiKey = getEnv("GEMINI_API_KEY", c.AI.ApiKey)
	c.AI.Model = getEnv("GEMINI_MODEL", c.AI.Model)
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
