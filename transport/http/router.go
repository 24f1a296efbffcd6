package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/academia-alliance/academia/internal/logger"
	"github.com/academia-alliance/academia/internal/metrics"
	"github.com/academia-alliance/academia/service"
)

const greeting = "Hello from Academia Alliance server!"

// Pinger reports whether a backing dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies groups everything the router wires into handlers
type Dependencies struct {
	Sessions    *service.SessionService
	Assignments *service.AssignmentService
	Submissions *service.SubmissionService

	Cookie      CookieConfig
	CORSOrigins []string
	Health      []Pinger

	Logger  logger.Logger
	Metrics *metrics.Metrics
}

// SetupRouter sets up the Gin router
func SetupRouter(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	log = log.Named("http")

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log), requestMetrics(deps.Metrics))
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Create handlers
	sessions := NewSessionHandlers(deps.Sessions, deps.Cookie, log)
	assignments := NewAssignmentHandlers(deps.Assignments, log)
	submissions := NewSubmissionHandlers(deps.Submissions, log)
	guard := SessionGuard(deps.Sessions, deps.Cookie, log, deps.Metrics)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, greeting)
	})
	router.GET("/healthz", healthz(deps.Health, log))
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Session routes
	router.POST("/jwt", sessions.Issue)
	router.POST("/logout", sessions.Logout)

	// Assignment catalog
	router.POST("/add-assignment", guard, assignments.Create)
	router.GET("/assignments", assignments.List)
	router.GET("/getCount", assignments.Count)
	router.GET("/assignment/:id", assignments.Get)
	router.PUT("/update-assignment/:id", guard, assignments.Update)
	router.DELETE("/assignment/:id", assignments.Delete)

	// Submission workflow
	router.POST("/submit-assignment", guard, submissions.Create)
	router.GET("/mySubmitted", guard, submissions.ListMine)
	router.GET("/pending-assignments", submissions.ListByStatus)
	router.PUT("/update-marks/:id", submissions.Grade)
	router.GET("/submitted-assignments", submissions.ListAll)

	return router
}

func healthz(checks []Pinger, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		for _, p := range checks {
			if err := p.Ping(ctx); err != nil {
				log.Warn(ctx, "health check failed", logger.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
