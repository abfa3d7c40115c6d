package accounts

import "github.com/gin-gonic/gin"

// PublicPrefixes lists the route prefixes the auth gate must not guard.
var PublicPrefixes = []string{"/auth/register", "/auth/login", "/health"}

// RegisterRoutes attaches the account endpoints to the router.
func RegisterRoutes(r gin.IRouter, h *Handler) {
	auth := r.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)

	r.GET("/profile", h.Profile)
}
