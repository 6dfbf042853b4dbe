package handlers

import (
	"net/http"
	"sort"

	"holocron/internal/models"
	"holocron/internal/repository"
	"holocron/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type endpoint struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter) *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false

	// Middleware
	r.Use(gin.Recovery())
	r.Use(h.RequestID())
	r.Use(h.RequestLogger())
	r.Use(h.Metrics())
	r.Use(h.ErrorHandler())
	if rateLimiter != nil {
		r.Use(h.RateLimitMiddleware(rateLimiter))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Routes
	r.GET("/", h.ShowSitemap(r))
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/get/initial", h.GetInitialData)

	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/:id", h.GetUser)
	r.GET("/users/:id/favorites", h.ListUserFavorites)

	r.GET("/characters", h.ListCharacters())
	r.GET("/characters/:id", h.GetCharacter())
	r.GET("/planets", h.ListPlanets())
	r.GET("/planets/:id", h.GetPlanet())
	r.GET("/vehicles", h.ListVehicles())
	r.GET("/vehicles/:id", h.GetVehicle())

	for _, kind := range []models.TargetKind{models.KindPlanet, models.KindCharacter, models.KindVehicle} {
		path := "/favorite/" + string(kind) + "/:id"
		r.POST(path, h.AddFavorite(kind))
		r.DELETE(path, h.RemoveFavorite(kind))
	}

	return r
}

// ShowSitemap lists every registered route.
func (h *Handler) ShowSitemap(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := r.Routes()
		endpoints := make([]endpoint, 0, len(routes))
		for _, route := range routes {
			endpoints = append(endpoints, endpoint{Method: route.Method, Path: route.Path})
		}
		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return endpoints[i].Method < endpoints[j].Method
		})
		c.JSON(http.StatusOK, gin.H{"endpoints": endpoints})
	}
}

func (h *Handler) Health(c *gin.Context) {
	if err := repository.Ping(c.Request.Context(), h.db); err != nil {
		h.logger.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
