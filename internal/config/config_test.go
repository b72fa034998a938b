package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %s, want 8080", cfg.ServerPort)
	}
	if cfg.Permissions.Read != "read:purchases" {
		t.Errorf("Permissions.Read = %s, want read:purchases", cfg.Permissions.Read)
	}
	if cfg.Search.MinQueryLength != 4 {
		t.Errorf("Search.MinQueryLength = %d, want 4", cfg.Search.MinQueryLength)
	}
	if cfg.Search.MaxLimit != 1000 {
		t.Errorf("Search.MaxLimit = %d, want 1000", cfg.Search.MaxLimit)
	}
	if cfg.RateLimit.Requests != 60 {
		t.Errorf("RateLimit.Requests = %d, want 60", cfg.RateLimit.Requests)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server_port: "9090"
permissions:
  read: "custom:read"
search:
  default_limit: 25
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %s, want 9090", cfg.ServerPort)
	}
	if cfg.Permissions.Read != "custom:read" {
		t.Errorf("Permissions.Read = %s, want custom:read", cfg.Permissions.Read)
	}
	if cfg.Search.DefaultLimit != 25 {
		t.Errorf("Search.DefaultLimit = %d, want 25", cfg.Search.DefaultLimit)
	}
	// 文件没写的字段保留默认值
	if cfg.Permissions.Admin != "admin:testers" {
		t.Errorf("Permissions.Admin = %s, want admin:testers", cfg.Permissions.Admin)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(`server_port: "9090"`), 0644); err != nil {
		t.Fatalf("写配置文件失败: %v", err)
	}

	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("READ_PERMISSION", "env:read")
	t.Setenv("RATE_LIMIT_REQUESTS", "120")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerPort != "7070" {
		t.Errorf("ServerPort = %s, want 7070（环境变量优先）", cfg.ServerPort)
	}
	if cfg.Permissions.Read != "env:read" {
		t.Errorf("Permissions.Read = %s, want env:read", cfg.Permissions.Read)
	}
	if cfg.RateLimit.Requests != 120 {
		t.Errorf("RateLimit.Requests = %d, want 120", cfg.RateLimit.Requests)
	}
}

func TestLoad_DatabaseSection(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// SQL 日志默认关闭，连接池取保守默认值
	if cfg.Database.LogSQL {
		t.Error("Database.LogSQL 默认应为 false")
	}
	if cfg.Database.MaxIdleConns != 10 {
		t.Errorf("Database.MaxIdleConns = %d, want 10", cfg.Database.MaxIdleConns)
	}
	if cfg.Database.MaxOpenConns != 100 {
		t.Errorf("Database.MaxOpenConns = %d, want 100", cfg.Database.MaxOpenConns)
	}

	t.Setenv("DATABASE_DSN", "host=db user=app dbname=feedback")
	t.Setenv("DATABASE_LOG_SQL", "true")
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "20")

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.DSN != "host=db user=app dbname=feedback" {
		t.Errorf("Database.DSN = %s", cfg.Database.DSN)
	}
	if !cfg.Database.LogSQL {
		t.Error("DATABASE_LOG_SQL=true 应打开 SQL 日志")
	}
	if cfg.Database.MaxOpenConns != 20 {
		t.Errorf("Database.MaxOpenConns = %d, want 20", cfg.Database.MaxOpenConns)
	}
}

func TestLoad_FileMissing(t *testing.T) {
	// 文件不存在时静默使用默认值
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %s, want 8080", cfg.ServerPort)
	}
}

func TestLoad_InvalidInt(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "abc")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// 非法整数回退默认值
	if cfg.RateLimit.Requests != 60 {
		t.Errorf("RateLimit.Requests = %d, want 60", cfg.RateLimit.Requests)
	}
}
