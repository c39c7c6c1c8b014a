package v1

import (
	"fmt"
	"io/fs"
	"net/http"

	"easi-website/config"
	"easi-website/internal/delivery/http/middleware"
	"easi-website/internal/delivery/http/response"
	"easi-website/internal/site"
	"easi-website/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC    usecase.ContactUsecase
	NewsletterUC usecase.NewsletterUsecase
	ResourceUC   usecase.ResourceUsecase
	HealthUC     usecase.HealthUsecase
	RateLimiter  *middleware.RateLimiter
	Content      *site.Content
	// Web holds templates/ and static/ (web.Templates and web.Static in production)
	Templates fs.FS
	Static    fs.FS
	Config    *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := LoadTemplates(deps.Templates)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(deps.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	cfg := deps.Config
	p := newPages(deps.Content, cfg.NoticeTTL)
	window := cfg.RateLimitWindow()

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.CookieSecure))
	r.Use(middleware.ErrorHandler())

	r.StaticFS("/static", http.FS(static))

	// HTML site
	pagesGroup := r.Group("")
	pageHandler := &PageHandler{pages: p}
	htmlLimit := func(c *gin.Context, retryAfter int) {
		pageHandler.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again in a moment.")
	}
	globalHTML := middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)
	globalHTML.OnLimit = htmlLimit
	pagesGroup.Use(deps.RateLimiter.Middleware(globalHTML))
	pagesGroup.Use(middleware.CSRFMiddleware(cfg.CookieSecure, func(c *gin.Context, status int, message string) {
		pageHandler.Error(c, status, "Your session expired. Please reload the page and try again.")
	}))

	formHTML := middleware.FormRateLimitConfig(cfg.RateLimitFormThreshold, window)
	formHTML.OnLimit = htmlLimit
	formPosts := formPostLimiter(deps.RateLimiter.Middleware(formHTML))
	pagesGroup.Use(formPosts)

	// JSON API
	api := r.Group("/v1")
	api.Use(middleware.CORSMiddleware(cfg.AllowedOrigins, cfg.IsProduction()))
	api.Use(deps.RateLimiter.Middleware(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window)))
	api.Use(formPostLimiter(deps.RateLimiter.Middleware(middleware.FormRateLimitConfig(cfg.RateLimitFormThreshold, window))))

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	NewPageHandler(pagesGroup, p)
	NewContactHandler(pagesGroup, api, deps.ContactUC, p)
	NewNewsletterHandler(pagesGroup, api, deps.NewsletterUC, p)
	NewResourceHandler(pagesGroup, api, deps.ResourceUC, p)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(pageHandler.NotFound)

	return r, nil
}

// formPostLimiter applies the stricter form budget to POSTs only.
func formPostLimiter(limit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		limit(c)
	}
}
