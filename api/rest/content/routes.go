package content

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, contentRepo ContentReader) {
	router.GET("/content", ListContentHandler(contentRepo))
	router.GET("/content/:id", GetContentHandler(contentRepo))
}
