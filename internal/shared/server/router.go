package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/services/health"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/metrics"
	"intake-backend/internal/shared/server/middleware"
	"intake-backend/internal/shared/server/respond"
	"intake-backend/internal/shipments"
	"intake-backend/internal/submissions"
)

const submitRateGroup = "SUBMIT"

// RouterDeps carries the handlers mounted by NewRouter.
type RouterDeps struct {
	Config      config.Config
	Health      *health.Service
	Submissions *submissions.Handler
	Shipments   *shipments.Handler
	// Limiter is shared across routers built in the same process; nil builds a fresh one.
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Limiter: deps.Limiter,
			GroupFor: func(c *gin.Context) string {
				switch c.FullPath() {
				case "/submit-form", "/api/submit-form":
					return submitRateGroup
				}
				return ""
			},
			Rules: map[string]middleware.RateLimitRule{
				submitRateGroup: {Rate: deps.Config.SubmitRatePerSec, Burst: deps.Config.SubmitRateBurst},
			},
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil)
	}
	r.GET("/health", func(c *gin.Context) {
		status := healthSvc.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.Submissions != nil {
		deps.Submissions.RegisterRoutes(r)
	}
	if deps.Shipments != nil {
		deps.Shipments.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
