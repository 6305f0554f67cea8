package main

import (
	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/config"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/responsecache"
	"codeberg.org/guidebot/server/internal/retriever"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// holds all dependencies and state for the API server
type Server struct {
	db             *pgxpool.Pool
	redis          *redis.Client
	config         *config.Config
	contentRepo    *content.Repository
	cacheStore     responsecache.Store
	cache          *responsecache.Cache
	cleanupService *responsecache.CleanupService
	registry       *prometheus.Registry
	rateLimit      gin.HandlerFunc
	services       *Services
	router         *gin.Engine
}

// holds all external service clients (LLM, retriever)
type Services struct {
	LLM       *llm.Client
	Retriever *retriever.Client
}
