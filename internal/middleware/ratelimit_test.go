package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/start", RateLimit(client, "test", limit, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func doStart(r *gin.Engine, user string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/start", nil)
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 3)

	for i := 0; i < 3; i++ {
		if code := doStart(r, "user-1"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := doStart(r, "user-1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 past the limit, got %d", code)
	}
}

func TestRateLimitIsPerUser(t *testing.T) {
	r, _ := newLimitedRouter(t, 1)

	if code := doStart(r, "user-1"); code != http.StatusOK {
		t.Fatalf("expected 200 for first user, got %d", code)
	}
	if code := doStart(r, "user-2"); code != http.StatusOK {
		t.Errorf("expected 200 for a different user, got %d", code)
	}
	if code := doStart(r, "user-1"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 for the throttled user, got %d", code)
	}
}

func TestRateLimitWindowResets(t *testing.T) {
	r, mr := newLimitedRouter(t, 1)

	if code := doStart(r, "user-1"); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := doStart(r, "user-1"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 within the window, got %d", code)
	}

	mr.FastForward(2 * time.Minute)

	if code := doStart(r, "user-1"); code != http.StatusOK {
		t.Errorf("expected 200 after the window expired, got %d", code)
	}
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/start", RateLimit(nil, "test", 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		if code := doStart(r, "user-1"); code != http.StatusOK {
			t.Fatalf("expected pass-through without redis, got %d", code)
		}
	}
}
