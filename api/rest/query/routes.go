package query

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, answerer Answerer, rateLimit gin.HandlerFunc) {
	router.POST("/query", rateLimit, QueryHandler(answerer))
}
