package api

import (
	"net/http"
	"strconv"

	"blogcms-be/internal/tag"

	"github.com/gin-gonic/gin"
)

func (h *handler) listTags(c *gin.Context) {
	tags, err := h.Tags.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *handler) popularTags(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	tags, err := h.Tags.Popular(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *handler) createTag(c *gin.Context) {
	var in tag.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	t, err := h.Tags.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
