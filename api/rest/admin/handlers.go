package admin

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/errors"
	"codeberg.org/guidebot/server/internal/llm"
	"codeberg.org/guidebot/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// GetCacheStats godoc
// @Summary Response cache statistics
// @Description Admin-only endpoint reporting entry counts, hits and hit rate
// @Tags admin
// @Produce json
// @Success 200 {object} StatsResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.APIErrorEnvelope
// @Router /api/v1/admin/cache/stats [get]
// @Security BearerAuth
func GetCacheStats(cacheAdmin CacheAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := cacheAdmin.GetStats(c.Request.Context())
		if err != nil {
			errors.APIInternalError(c, "failed to retrieve cache statistics", err)
			return
		}

		c.JSON(http.StatusOK, StatsResponse{Data: stats})
	}
}

// ClearCache godoc
// @Summary Clear the response cache
// @Tags admin
// @Produce json
// @Success 200 {object} DeletedResponse
// @Failure 500 {object} errors.APIErrorEnvelope
// @Router /api/v1/admin/cache [delete]
// @Security BearerAuth
func ClearCache(cacheAdmin CacheAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := cacheAdmin.ClearAll(c.Request.Context())
		if err != nil {
			errors.APIInternalError(c, "failed to clear cache", err)
			return
		}

		c.JSON(http.StatusOK, DeletedResponse{Data: DeletedResult{
			Message:      "cache cleared",
			DeletedCount: deleted,
		}})
	}
}

// CleanupCache godoc
// @Summary Remove expired response cache entries
// @Tags admin
// @Produce json
// @Success 200 {object} DeletedResponse
// @Failure 500 {object} errors.APIErrorEnvelope
// @Router /api/v1/admin/cache/cleanup [post]
// @Security BearerAuth
func CleanupCache(cacheAdmin CacheAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := cacheAdmin.CleanupExpired(c.Request.Context())
		if err != nil {
			errors.APIInternalError(c, "failed to clean up cache", err)
			return
		}

		c.JSON(http.StatusOK, DeletedResponse{Data: DeletedResult{
			Message:      "expired entries removed",
			DeletedCount: deleted,
		}})
	}
}

// CreateContent godoc
// @Summary Add a content item
// @Description Embeds and stores an item, then clears cached answers
// @Tags admin
// @Accept json
// @Produce json
// @Param request body content.CreateItemRequest true "Content item"
// @Success 201 {object} ContentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/admin/content [post]
// @Security BearerAuth
func CreateContent(contentRepo ContentWriter, embedder llm.Embedder, cacheAdmin CacheAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req content.CreateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		kind, err := content.ParseKind(string(req.Kind))
		if err != nil {
			errors.BadRequest(c, "invalid content kind", err)
			return
		}
		req.Kind = kind

		embedding, err := embedder.GenerateEmbedding(c.Request.Context(), content.EmbeddingText(req.Title, req.Body))
		if err != nil {
			errors.InternalError(c, "failed to embed content", err)
			return
		}

		item, err := contentRepo.Create(c.Request.Context(), req, embedding)
		if err != nil {
			errors.InternalError(c, "failed to create content", err)
			return
		}

		invalidateCache(c, cacheAdmin, "content_created")

		c.JSON(http.StatusCreated, ContentResponse{Data: item})
	}
}

// DeleteContent godoc
// @Summary Delete a content item
// @Description Deletes an item, then clears cached answers
// @Tags admin
// @Param id path string true "Content ID"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/admin/content/{id} [delete]
// @Security BearerAuth
func DeleteContent(contentRepo ContentWriter, cacheAdmin CacheAdmin) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		if err := contentRepo.Delete(c.Request.Context(), id); err != nil {
			if stderrors.Is(err, content.ErrNotFound) {
				errors.NotFound(c, "content item")
				return
			}

			errors.InternalError(c, "failed to delete content", err)
			return
		}

		invalidateCache(c, cacheAdmin, "content_deleted")

		c.Status(http.StatusNoContent)
	}
}

// cached answers may cite changed content, so every write drops them all
func invalidateCache(c *gin.Context, cacheAdmin CacheAdmin, reason string) {
	deleted, err := cacheAdmin.ClearAll(c.Request.Context())
	if err != nil {
		logger.ErrorErr(err, "failed to invalidate response cache", "reason", reason)
		return
	}

	logger.Info("response cache invalidated", "reason", reason, "deleted", deleted)
}
