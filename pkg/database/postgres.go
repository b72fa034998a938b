package database

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options 连接池与 SQL 日志参数，零值回退到保守默认
type Options struct {
	// LogSQL 打印每条 SQL；采购截图是大体积 base64 列，生产默认关
	LogSQL          bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// logMode SQL 日志级别：默认只记慢查询和错误
func (o Options) logMode() logger.LogLevel {
	if o.LogSQL {
		return logger.Info
	}
	return logger.Warn
}

// withDefaults 未配置的池参数取默认值
func (o Options) withDefaults() Options {
	if o.MaxIdleConns <= 0 {
		o.MaxIdleConns = 10
	}
	if o.MaxOpenConns <= 0 {
		o.MaxOpenConns = 100
	}
	if o.ConnMaxLifetime <= 0 {
		o.ConnMaxLifetime = time.Hour
	}
	return o
}

// InitDB 打开 postgres 连接，配置连接池并迁移给定模型
func InitDB(dsn string, opts Options, models ...interface{}) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(opts.logMode()),
	})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("获取底层连接池失败: %v", err)
	}

	opts = opts.withDefaults()
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			log.Fatalf("数据库迁移失败: %v", err)
		}
	}

	log.Println("数据库就绪")
	return db
}
