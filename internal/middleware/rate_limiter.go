package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== PathRateLimiter 路径限流器 ====================

// PathRateLimiter 按请求路径的固定窗口限流器
// 粗粒度挡请求洪峰，超限统一 429
type PathRateLimiter struct {
	windows sync.Map // pathname -> *windowEntry

	limit  int
	window time.Duration

	sweepMu   sync.Mutex
	lastSweep time.Time
}

// windowEntry 窗口条目
type windowEntry struct {
	windowStart time.Time
	count       int
	mu          sync.Mutex
}

// NewPathRateLimiter 创建路径限流器
func NewPathRateLimiter(limit int, window time.Duration) *PathRateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &PathRateLimiter{
		limit:  limit,
		window: window,
	}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Check 检查指定路径是否允许通过
func (l *PathRateLimiter) Check(pathname string) CheckResult {
	l.maybeSweep()

	actual, _ := l.windows.LoadOrStore(pathname, &windowEntry{})
	entry := actual.(*windowEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.Sub(entry.windowStart) >= l.window {
		// 新窗口
		entry.windowStart = now
		entry.count = 0
	}

	if entry.count >= l.limit {
		return CheckResult{
			Allowed:    false,
			RetryAfter: l.window - now.Sub(entry.windowStart),
		}
	}

	entry.count++
	return CheckResult{Allowed: true}
}

// Reset 重置指定路径的窗口
func (l *PathRateLimiter) Reset(pathname string) {
	l.windows.Delete(pathname)
}

// maybeSweep 清理过期窗口条目
// 请求路径任意可构造（含打不到路由的 404 路径），不清理会无限增长
func (l *PathRateLimiter) maybeSweep() {
	l.sweepMu.Lock()
	now := time.Now()
	if now.Sub(l.lastSweep) < l.window {
		l.sweepMu.Unlock()
		return
	}
	l.lastSweep = now
	l.sweepMu.Unlock()

	l.windows.Range(func(key, value interface{}) bool {
		entry := value.(*windowEntry)
		entry.mu.Lock()
		lapsed := now.Sub(entry.windowStart) >= 2*l.window
		entry.mu.Unlock()
		if lapsed {
			l.windows.Delete(key)
		}
		return true
	})
}

// ==================== Gin 中间件 ====================

// RateLimit 限流中间件，按 URL pathname 计数
func RateLimit(limiter *PathRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := limiter.Check(c.Request.URL.Path)
		if !result.Allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many requests",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
