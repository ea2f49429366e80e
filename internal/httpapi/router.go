// Package httpapi exposes the session store and the risk engines to the
// single-page UI over JSON, and serves the UI's static assets.
package httpapi

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/healthcare-ai/internal/kv"
	"github.com/Skufu/healthcare-ai/internal/risk"
	"github.com/Skufu/healthcare-ai/internal/session"
)

const maxBodyBytes = 1 << 20 // 1MB

// Deps wires the router to the rest of the service.
type Deps struct {
	Sessions   *session.Store
	Predictor  *risk.Predictor
	Health     kv.HealthChecker
	Log        *zap.Logger
	StaticRoot string

	// Artificial latency before answering prediction and recommendation
	// requests. Zero disables it.
	PredictionDelay     time.Duration
	RecommendationDelay time.Duration
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Predictor == nil {
		d.Predictor = risk.NewPredictor(nil)
	}
	h := &handler{
		sessions:            d.Sessions,
		predictor:           d.Predictor,
		health:              d.Health,
		log:                 d.Log,
		predictionDelay:     d.PredictionDelay,
		recommendationDelay: d.RecommendationDelay,
	}

	router := gin.New()
	router.Use(
		requestLogger(d.Log),
		gin.Recovery(),
		limitBodySize(maxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", h.readyz)

	api := router.Group("/api")
	{
		api.GET("/session", h.getSession)
		api.POST("/session/login", h.login)
		api.POST("/session/signup", h.signup)
		api.POST("/session/logout", h.logout)
		api.GET("/access", h.access)
		api.GET("/vocabulary", h.vocabulary)

		signedIn := api.Group("", requireIdentity(d.Sessions))
		signedIn.PUT("/profile", h.updateProfile)
		signedIn.POST("/predictions/disease", h.predictDisease)
		signedIn.POST("/recommendations/medicine", h.recommendMedicine)
	}

	if d.StaticRoot != "" {
		mountStatic(router, d.StaticRoot)
	}

	return router
}

// mountStatic serves the UI bundle; unknown GET paths outside /api fall back
// to index.html so client-side routes load.
func mountStatic(router *gin.Engine, root string) {
	index := filepath.Join(root, "index.html")
	router.Static("/static", root)
	router.StaticFile("/", index)

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.File(index)
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})
}
