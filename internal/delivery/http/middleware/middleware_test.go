package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"easi-website/internal/delivery/http/middleware"
	"easi-website/internal/delivery/http/response"
	"easi-website/internal/domain"
	"easi-website/pkg/apperror"
	"easi-website/pkg/audit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	goleak.VerifyTestMain(m)
}

func TestRateLimiterInMemory(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rl := middleware.NewRateLimiter(nil, audit.NewWithZap(zap.New(core), "easi-website", "test"), time.Minute)
	defer rl.Close()

	r := gin.New()
	r.Use(rl.Middleware(middleware.FormRateLimitConfig(2, time.Minute)))
	r.POST("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	send := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1").Code)
	w := send("10.0.0.1")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = send("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)

	// Other clients have their own budget
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2").Code)

	entries := logs.FilterMessage("rate_limit_triggered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "10.0.0.1", entries[0].ContextMap()["ip"])
}

func TestRateLimiterOnLimit(t *testing.T) {
	rl := middleware.NewRateLimiter(nil, nil, 0)
	defer rl.Close()

	cfg := middleware.GlobalRateLimitConfig(1, time.Minute)
	cfg.OnLimit = func(c *gin.Context, retryAfter int) {
		c.String(http.StatusTooManyRequests, "slow down")
	}

	r := gin.New()
	r.Use(rl.Middleware(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, want, w.Code, "request %d", i)
		if want == http.StatusTooManyRequests {
			assert.Equal(t, "slow down", w.Body.String())
		}
	}
}

func TestRateLimiterCloseTwice(t *testing.T) {
	rl := middleware.NewRateLimiter(nil, nil, time.Millisecond)
	rl.Close()
	rl.Close()
}

func csrfRouter() *gin.Engine {
	r := gin.New()
	r.Use(middleware.CSRFMiddleware(false, nil))
	r.GET("/contact", func(c *gin.Context) { c.String(http.StatusOK, middleware.CSRFToken(c)) })
	r.POST("/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestCSRF(t *testing.T) {
	r := csrfRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	token := cookies[0].Value
	assert.Equal(t, middleware.CSRFTokenCookieName, cookies[0].Name)
	assert.Len(t, token, middleware.CSRFTokenLength*2)
	assert.Equal(t, token, w.Body.String())

	post := func(form url.Values, header string) int {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: middleware.CSRFTokenCookieName, Value: token})
		if header != "" {
			req.Header.Set(middleware.CSRFTokenHeaderName, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusForbidden, post(url.Values{}, ""))
	assert.Equal(t, http.StatusForbidden, post(url.Values{"csrf_token": {"forged"}}, ""))
	assert.Equal(t, http.StatusNoContent, post(url.Values{"csrf_token": {token}}, ""))
	assert.Equal(t, http.StatusNoContent, post(url.Values{}, token))
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ := c.Request.Context().Value(domain.KeyRequestID).(string)
		assert.Equal(t, c.GetString("RequestID"), fromCtx)
		c.Status(http.StatusOK)
	})

	t.Run("Should generate an ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(w.Header().Get(middleware.RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("Should reuse a well-formed incoming ID", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Should replace a malformed incoming ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "<script>")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "<script>", w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(middleware.CORSMiddleware([]string{"https://easi.ac.ug"}, true))
	r.POST("/v1/contact", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/v1/contact", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := preflight("https://easi.ac.ug")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://easi.ac.ug", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight("http://localhost:3000")
	assert.Equal(t, http.StatusForbidden, w.Code, "localhost is not allowed in production")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/invalid", func(c *gin.Context) {
		_ = c.Error(apperror.BadRequest("Please fill in all required fields correctly.").
			WithDetails(map[string]bool{"email": true}))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(assert.AnError)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/invalid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{
		"success": false,
		"message": "Please fill in all required fields correctly.",
		"error": {"email": true}
	}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(middleware.SecurityHeadersMiddleware(true))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/static/site.css", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "form-action 'self'")
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	assert.Empty(t, w.Header().Get("Cache-Control"))
}
