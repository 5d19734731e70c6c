package api

import (
	"context"
	"net/http"

	"blogcms-be/internal/article"
	"blogcms-be/internal/auth"
	"blogcms-be/internal/category"
	"blogcms-be/internal/metrics"
	"blogcms-be/internal/tag"
	"blogcms-be/internal/user"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Categories category.Service
	Tags       tag.Service
	Articles   article.Service
	Users      user.Service
	DB         Pinger
	Metrics    *metrics.Metrics

	Env          string
	SecureCookie bool
}

type handler struct {
	Deps
}

func NewRouter(d Deps) *gin.Engine {
	if d.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	secureConfig := secure.Config{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         d.Env != "production",
	}
	if d.SecureCookie {
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	router.Use(secure.New(secureConfig))

	if d.Metrics != nil {
		router.Use(d.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	h := &handler{Deps: d}

	router.GET("/health", h.health)

	pub := router.Group("/api")
	{
		pub.GET("/articles", h.listPublishedArticles)
		pub.GET("/articles/:slug", h.getPublishedArticle)
		pub.GET("/categories", h.categoryTree)
		pub.GET("/categories/:slug", h.getCategoryBySlug)
		pub.GET("/tags", h.listTags)
		pub.GET("/tags/popular", h.popularTags)
		pub.POST("/auth/login", h.login)
		pub.POST("/auth/logout", h.logout)
	}

	admin := router.Group("/api/admin", requireContentManager())
	{
		admin.GET("/me", h.me)

		admin.GET("/categories", h.listCategories)
		admin.POST("/categories", h.createCategory)
		admin.GET("/categories/tree", h.categoryTree)
		admin.GET("/categories/parent-options", h.parentOptions)
		admin.PUT("/categories/:id", h.updateCategory)

		admin.GET("/tags", h.listTags)
		admin.POST("/tags", h.createTag)

		admin.GET("/articles", h.listArticles)
		admin.POST("/articles", h.createArticle)
		admin.GET("/articles/:id", h.getArticle)
		admin.PUT("/articles/:id", h.updateArticle)
		admin.DELETE("/articles/:id", h.deleteArticle)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	})

	return router
}

// requireContentManager admits admins and editors. Claims are placed in
// the request context by the auth middleware in front of the router.
func requireContentManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := auth.ClaimsFromContext(c.Request.Context())
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
			return
		}
		if !auth.CanManageContent(claims.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "insufficient permissions"})
			return
		}
		c.Next()
	}
}
