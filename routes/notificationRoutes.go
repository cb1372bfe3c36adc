package routes

import (
	"civicsync/controllers"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(r *gin.Engine, d Deps, auth gin.HandlerFunc) {
	nc := controllers.NewNotificationController(d.Notifications)

	group := r.Group("/api/notifications", auth)
	{
		group.GET("/current", nc.CurrentNotification)
		group.POST("/dismiss", nc.DismissNotification)
	}
}
