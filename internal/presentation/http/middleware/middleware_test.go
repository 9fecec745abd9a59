package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/jewelbill-api/internal/domain/entity"
	"github.com/sangkips/jewelbill-api/pkg/utils"
	"github.com/sirupsen/logrus"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
}

func (r *fakeIdempotencyRepo) GetByKey(_ context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.keys[key+userID.String()]
	if !ok {
		return nil, nil
	}
	return &k, nil
}

func (r *fakeIdempotencyRepo) Create(_ context.Context, k *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[k.Key+k.UserID.String()] = *k
	return nil
}

func (r *fakeIdempotencyRepo) DeleteExpired(context.Context) error { return nil }

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestIdempotencyReplaysAndRejectsReuse(t *testing.T) {
	repo := &fakeIdempotencyRepo{keys: map[string]entity.IdempotencyKey{}}
	userID := uuid.New()
	calls := 0

	router := gin.New()
	router.POST("/bills", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, Idempotency(IdempotencyConfig{Repo: repo, Logger: quietLogger()}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"bill_number": "150324-001"})
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(body))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := send(`{"type":"sales-bill"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", first.Code)
	}

	second := send(`{"type":"sales-bill"}`)
	if second.Code != http.StatusCreated || second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("expected identical body, got %s", second.Body.String())
	}
	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}

	third := send(`{"type":"purchase"}`)
	if third.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a reused key, got %d", third.Code)
	}
}

func TestIdempotencyDoesNotStoreFailures(t *testing.T) {
	repo := &fakeIdempotencyRepo{keys: map[string]entity.IdempotencyKey{}}
	userID := uuid.New()
	fail := true

	router := gin.New()
	router.POST("/bills", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		if fail {
			c.JSON(http.StatusConflict, gin.H{"message": "busy"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	for _, want := range []int{http.StatusConflict, http.StatusCreated} {
		req := httptest.NewRequest(http.MethodPost, "/bills", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "key-2")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Fatalf("expected %d, got %d", want, w.Code)
		}
		fail = false
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	defer rl.Stop()

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status codes %v", codes)
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("secret", time.Minute, time.Hour)
	userID := uuid.New()
	token, err := jwtManager.GenerateAccessToken(userID, "owner@shop.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expiredManager := utils.NewJWTManager("secret", -time.Minute, time.Hour)
	expired, err := expiredManager.GenerateAccessToken(userID, "owner@shop.test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	router := gin.New()
	router.GET("/me", AuthMiddleware(jwtManager), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("user_id").(uuid.UUID).String())
	})

	cases := []struct {
		name    string
		header  string
		code    int
		message string
	}{
		{"missing", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid authorization header format"},
		{"garbage", "Bearer abc", http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"valid", "Bearer " + token, http.StatusOK, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, w.Code)
			}
			if tc.message != "" && !strings.Contains(w.Body.String(), `"message":"`+tc.message+`"`) {
				t.Fatalf("expected message %q, got %s", tc.message, w.Body.String())
			}
			if tc.code == http.StatusOK && w.Body.String() != userID.String() {
				t.Fatalf("expected user id in context, got %s", w.Body.String())
			}
		})
	}
}
