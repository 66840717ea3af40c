package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, identityMiddleware gin.HandlerFunc) {
	group := g.Group("/requests")

	group.GET("/:id", h.Get)

	authed := group.Group("")
	authed.Use(identityMiddleware)
	{
		authed.POST("", h.Create)
		authed.GET("", h.ListOwn)
		authed.GET("/all", h.ListOthers)
	}
}
