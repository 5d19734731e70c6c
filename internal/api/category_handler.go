package api

import (
	"net/http"

	"blogcms-be/internal/category"

	"github.com/gin-gonic/gin"
)

func (h *handler) listCategories(c *gin.Context) {
	cats, err := h.Categories.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

func (h *handler) categoryTree(c *gin.Context) {
	tree, err := h.Categories.Tree(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": tree})
}

// parentOptions lists the categories that may become the parent of
// ?exclude=<id>, flattened in tree order with their depth.
func (h *handler) parentOptions(c *gin.Context) {
	opts, err := h.Categories.ParentOptions(c.Request.Context(), c.Query("exclude"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"options": opts})
}

func (h *handler) getCategoryBySlug(c *gin.Context) {
	cat, err := h.Categories.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handler) createCategory(c *gin.Context) {
	var in category.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	cat, err := h.Categories.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handler) updateCategory(c *gin.Context) {
	var in category.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	cat, err := h.Categories.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}
