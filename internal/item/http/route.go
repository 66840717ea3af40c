package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/items")

	// Public routes: anyone can browse an item or search.
	group.GET("/search", h.Search)
	group.GET("/:id", h.Get)

	// Routes acting on behalf of a caller.
	authed := group.Group("")
	authed.Use(identityMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("", h.ListOwn)
		authed.PATCH("/:id", h.Update)
		authed.POST("/:id/comment", h.AddComment)
	}
}
