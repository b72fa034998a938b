package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestPathRateLimiter_Check(t *testing.T) {
	limiter := NewPathRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if result := limiter.Check("/api/tester"); !result.Allowed {
			t.Fatalf("第 %d 次请求应放行", i+1)
		}
	}

	result := limiter.Check("/api/tester")
	if result.Allowed {
		t.Error("超限后应拒绝")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, 应为正值", result.RetryAfter)
	}
}

func TestPathRateLimiter_PathsIndependent(t *testing.T) {
	limiter := NewPathRateLimiter(1, time.Minute)

	if !limiter.Check("/api/purchase").Allowed {
		t.Fatal("首个请求应放行")
	}
	if limiter.Check("/api/purchase").Allowed {
		t.Fatal("同路径第二个请求应拒绝")
	}

	// 其他路径不受影响
	if !limiter.Check("/api/testers").Allowed {
		t.Error("不同路径应各自计数")
	}
}

func TestPathRateLimiter_Reset(t *testing.T) {
	limiter := NewPathRateLimiter(1, time.Minute)

	limiter.Check("/api/backup")
	if limiter.Check("/api/backup").Allowed {
		t.Fatal("超限后应拒绝")
	}

	limiter.Reset("/api/backup")
	if !limiter.Check("/api/backup").Allowed {
		t.Error("重置后应重新放行")
	}
}

func TestPathRateLimiter_WindowExpiry(t *testing.T) {
	limiter := NewPathRateLimiter(1, 20*time.Millisecond)

	limiter.Check("/p")
	if limiter.Check("/p").Allowed {
		t.Fatal("窗口内第二个请求应拒绝")
	}

	time.Sleep(30 * time.Millisecond)
	if !limiter.Check("/p").Allowed {
		t.Error("窗口过期后应重新放行")
	}
}

func TestPathRateLimiter_SweepsLapsedPaths(t *testing.T) {
	limiter := NewPathRateLimiter(1, 10*time.Millisecond)

	limiter.Check("/gone-1")
	limiter.Check("/gone-2")

	// 两个完整窗口后条目视为废弃
	time.Sleep(25 * time.Millisecond)
	if !limiter.Check("/fresh").Allowed {
		t.Fatal("新路径首个请求应放行")
	}

	if _, ok := limiter.windows.Load("/gone-1"); ok {
		t.Error("过期条目 /gone-1 应被清理")
	}
	if _, ok := limiter.windows.Load("/gone-2"); ok {
		t.Error("过期条目 /gone-2 应被清理")
	}
	if _, ok := limiter.windows.Load("/fresh"); !ok {
		t.Error("活跃条目 /fresh 应保留")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewPathRateLimiter(2, time.Minute)

	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/api/purchases/refunded", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	do := func(path string) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	if w := do("/api/purchases/refunded"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w := do("/api/purchases/refunded"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	w := do("/api/purchases/refunded")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"success":false`) {
		t.Errorf("429 响应应带标准信封: %s", w.Body.String())
	}
}
