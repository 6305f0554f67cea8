package content

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/guidebot/server/api/rest/pagination"
	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// ListContentHandler godoc
// @Summary List content items
// @Tags content
// @Produce json
// @Param kind query string false "article, faq or video"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Items to skip"
// @Success 200 {object} ListResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/content [get]
func ListContentHandler(contentRepo ContentReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var kind content.Kind

		if raw := c.Query("kind"); raw != "" {
			parsed, err := content.ParseKind(raw)
			if err != nil {
				errors.BadRequest(c, "invalid content kind", err)
				return
			}
			kind = parsed
		}

		params := pagination.ParseQuery(c, defaultPageSize, maxPageSize)

		items, total, err := contentRepo.List(c.Request.Context(), kind, params.Limit, params.Offset)
		if err != nil {
			errors.InternalError(c, "failed to list content", err)
			return
		}

		if items == nil {
			items = []content.Item{}
		}

		c.JSON(http.StatusOK, ListResponse{
			Data:       items,
			Pagination: pagination.NewMeta(params, total),
		})
	}
}

// GetContentHandler godoc
// @Summary Get a content item
// @Tags content
// @Produce json
// @Param id path string true "Content ID"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/content/{id} [get]
func GetContentHandler(contentRepo ContentReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := errors.ValidatePathUUID(c, "id")
		if !ok {
			return
		}

		item, err := contentRepo.Get(c.Request.Context(), id)
		if err != nil {
			if stderrors.Is(err, content.ErrNotFound) {
				errors.NotFound(c, "content item")
				return
			}

			errors.InternalError(c, "failed to get content", err)
			return
		}

		c.JSON(http.StatusOK, ItemResponse{Data: item})
	}
}
