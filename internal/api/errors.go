package api

import (
	"errors"
	"net/http"

	"blogcms-be/internal/article"
	"blogcms-be/internal/category"
	"blogcms-be/internal/logger"
	"blogcms-be/internal/tag"
	"blogcms-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, category.ErrInvalidInput),
		errors.Is(err, category.ErrNothingToUpdate),
		errors.Is(err, tag.ErrInvalidInput),
		errors.Is(err, article.ErrInvalidInput),
		errors.Is(err, article.ErrNothingToUpdate),
		errors.Is(err, article.ErrInvalidReference),
		errors.Is(err, user.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, tag.ErrTagNotFound),
		errors.Is(err, article.ErrArticleNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, category.ErrSlugTaken),
		errors.Is(err, category.ErrCategoryCycle),
		errors.Is(err, tag.ErrSlugTaken),
		errors.Is(err, article.ErrSlugTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError maps a service error to its status code. Internal errors
// are logged and hidden from the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = "internal server error"
	}
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: msg})
}
