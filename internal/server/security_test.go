package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker_AllowAll(t *testing.T) {
	oc := NewOriginChecker(nil)

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.True(t, oc.Check(req))
}

func TestOriginChecker_Wildcard(t *testing.T) {
	oc := NewOriginChecker([]string{"https://trix.example.com", "*"})

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://anything.example.com")
	assert.True(t, oc.Check(req))
}

func TestOriginChecker_Whitelist(t *testing.T) {
	oc := NewOriginChecker([]string{"https://trix.example.com"})

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://trix.example.com")
	assert.True(t, oc.Check(req))

	// 大小写不敏感
	req.Header.Set("Origin", "https://TRIX.example.com")
	assert.True(t, oc.Check(req))

	req.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, oc.Check(req))

	// 没有 Origin 头视为同源或本地客户端
	req.Header.Del("Origin")
	assert.True(t, oc.Check(req))
}

func TestMessageRateLimiter(t *testing.T) {
	ml := NewMessageRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, ml.AllowMessage("c1"), "第 %d 条消息应被允许", i+1)
	}

	assert.False(t, ml.AllowMessage("c1"))
	assert.False(t, ml.AllowMessage("c1"))
	assert.Equal(t, 2, ml.WarningCount("c1"))

	// 互不影响
	assert.True(t, ml.AllowMessage("c2"))
	assert.Equal(t, 0, ml.WarningCount("c2"))

	ml.RemoveClient("c1")
	assert.Equal(t, 0, ml.WarningCount("c1"))
	assert.True(t, ml.AllowMessage("c1"))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", GetClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", GetClientIP(req))

	// X-Forwarded-For 优先，取第一跳
	req.Header.Set("X-Forwarded-For", "203.0.113.1, 198.51.100.7")
	assert.Equal(t, "203.0.113.1", GetClientIP(req))
}
