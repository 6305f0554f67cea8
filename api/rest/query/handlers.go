package query

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/guidebot/server/guidebot/content"
	"codeberg.org/guidebot/server/internal/errors"
	"codeberg.org/guidebot/server/internal/retriever"
	"codeberg.org/guidebot/server/internal/similarity"
	"github.com/gin-gonic/gin"
)

// QueryHandler godoc
// @Summary Answer a question from indexed content
// @Description Returns a cached answer when one exists for the same normalized query
// @Tags query
// @Accept json
// @Produce json
// @Param request body Request true "Question and optional content kinds"
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/v1/query [post]
func QueryHandler(answerer Answerer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		kinds, err := content.ParseKinds(req.Kinds)
		if err != nil {
			errors.BadRequest(c, "invalid content kind", err)
			return
		}

		answer, err := answerer.Answer(c.Request.Context(), req.Query, kinds)
		if err != nil {
			switch {
			case stderrors.Is(err, retriever.ErrEmptyQuery):
				errors.BadRequest(c, "query is required", nil)
			case stderrors.Is(err, similarity.ErrInvalidInput):
				errors.InternalError(c, "content index is inconsistent", err)
			default:
				errors.InternalError(c, "failed to answer query", err)
			}
			return
		}

		c.JSON(http.StatusOK, Response{Data: answer})
	}
}
