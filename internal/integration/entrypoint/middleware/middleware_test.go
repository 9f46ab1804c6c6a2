package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitbank/ledger/internal/application/adapter"
	domainerror "github.com/bitbank/ledger/internal/domain/error"
)

type stubVerifier struct {
	claims *adapter.TokenClaims
	err    error
}

func (s stubVerifier) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if token != "good" {
		return nil, domainerror.ErrInvalidToken
	}
	return s.claims, s.err
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		header       string
		verifier     stubVerifier
		wantStatus   int
		wantMemberID int64
	}{
		{
			name:         "valid token",
			header:       "Bearer good",
			verifier:     stubVerifier{claims: &adapter.TokenClaims{MemberID: 42}},
			wantStatus:   http.StatusOK,
			wantMemberID: 42,
		},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer   ", wantStatus: http.StatusUnauthorized},
		{name: "rejected token", header: "Bearer bad", wantStatus: http.StatusUnauthorized},
		{
			name:       "token without member",
			header:     "Bearer good",
			verifier:   stubVerifier{err: domainerror.ErrMissingMemberClaim},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotMemberID int64
			router := gin.New()
			router.Use(NewAuthMiddleware(tt.verifier).Authenticate())
			router.GET("/", func(c *gin.Context) {
				gotMemberID, _ = GetMemberIDFromContext(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if gotMemberID != tt.wantMemberID {
				t.Errorf("member id = %d, want %d", gotMemberID, tt.wantMemberID)
			}
		})
	}
}

func TestGetMemberIDFromContext_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := GetMemberIDFromContext(c); ok {
		t.Fatal("expected no member id")
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	router := gin.New()
	router.Use(limiter.Middleware())
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusCreated) })

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	for i, want := range []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests} {
		if got := send(); got != want {
			t.Fatalf("request %d: status = %d, want %d", i+1, got, want)
		}
	}

	now = now.Add(time.Minute + time.Second)
	if got := send(); got != http.StatusCreated {
		t.Fatalf("after window: status = %d", got)
	}

	now = now.Add(2 * time.Minute)
	limiter.Cleanup()
	if len(limiter.entries) != 0 {
		t.Errorf("expected expired entries to be removed, got %d", len(limiter.entries))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(NewRateLimiter(0, time.Minute).Middleware())
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusCreated) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d", i+1, w.Code)
		}
	}
}
