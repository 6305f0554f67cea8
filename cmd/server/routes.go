package main

import (
	"os"
	"strings"
	"time"

	"codeberg.org/guidebot/server/api/rest/admin"
	"codeberg.org/guidebot/server/api/rest/content"
	"codeberg.org/guidebot/server/api/rest/health"
	"codeberg.org/guidebot/server/api/rest/query"
	"codeberg.org/guidebot/server/internal/responsecache"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)
	router.GET("/ready", health.ReadyHandler(server.db))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(server.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		query.RegisterRoutes(v1, server.services.Retriever, server.rateLimit)
		content.RegisterRoutes(v1, server.contentRepo)
		admin.RegisterRoutes(v1, responsecache.NewAdmin(server.cache), server.contentRepo, server.services.LLM)
	}
}

// allows the origins listed in CORS_ALLOWED_ORIGINS (comma separated), any origin when unset
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(corsConfig(os.Getenv("CORS_ALLOWED_ORIGINS")))
}

func corsConfig(rawOrigins string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}

	var origins []string
	for _, origin := range strings.Split(rawOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cfg
}
