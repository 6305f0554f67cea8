package admin

import (
	"codeberg.org/guidebot/server/internal/auth"
	"codeberg.org/guidebot/server/internal/llm"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, cacheAdmin CacheAdmin, contentRepo ContentWriter, embedder llm.Embedder) {
	admin := router.Group("/admin")
	admin.Use(auth.AuthMiddleware(), auth.AdminMiddleware())

	admin.GET("/cache/stats", GetCacheStats(cacheAdmin))
	admin.DELETE("/cache", ClearCache(cacheAdmin))
	admin.POST("/cache/cleanup", CleanupCache(cacheAdmin))

	admin.POST("/content", CreateContent(contentRepo, embedder, cacheAdmin))
	admin.DELETE("/content/:id", DeleteContent(contentRepo, cacheAdmin))
}
