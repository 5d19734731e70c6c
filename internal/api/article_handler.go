package api

import (
	"net/http"

	"blogcms-be/internal/article"
	"blogcms-be/internal/auth"

	"github.com/gin-gonic/gin"
)

func (h *handler) listPublishedArticles(c *gin.Context) {
	var f article.ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}
	f.Status = article.StatusPublished

	res, err := h.Articles.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) getPublishedArticle(c *gin.Context) {
	a, err := h.Articles.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handler) listArticles(c *gin.Context) {
	var f article.ListFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, "invalid query parameters")
		return
	}

	res, err := h.Articles.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *handler) getArticle(c *gin.Context) {
	a, err := h.Articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handler) createArticle(c *gin.Context) {
	var in article.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	claims, _ := auth.ClaimsFromContext(c.Request.Context())
	a, err := h.Articles.Create(c.Request.Context(), claims.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *handler) updateArticle(c *gin.Context) {
	var in article.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	a, err := h.Articles.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *handler) deleteArticle(c *gin.Context) {
	if err := h.Articles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
