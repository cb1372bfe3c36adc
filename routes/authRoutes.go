package routes

import (
	"civicsync/controllers"

	"github.com/gin-gonic/gin"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, d Deps, auth gin.HandlerFunc) {
	ac := controllers.NewAuthController(d.Store, d.Config.JWTSecret, d.Config.IsProduction(), d.Config.Domain, d.Logger.Sugar())

	group := r.Group("/api/auth")
	{
		group.POST("/login", ac.LoginUser)
		group.POST("/logout", ac.LogoutUser)
		group.GET("/me", auth, ac.GetMe)
	}
}
