package routes

import (
	"civicsync/controllers"
	"civicsync/middlewares"
	"civicsync/models"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the issue and analytics routes
func IssueRoutes(r *gin.Engine, d Deps, auth gin.HandlerFunc) {
	ic := controllers.NewIssueController(d.Store, d.Notifications, d.Logger.Sugar())

	create := []gin.HandlerFunc{auth}
	if d.RateCounter != nil {
		create = append(create, middlewares.IssueRateLimiter(d.RateCounter, d.Config.IssueLimitQueue, d.Config.IssueDailyLimit))
	}
	create = append(create, ic.CreateIssue)

	issue := r.Group("/api/issues")
	{
		issue.GET("", ic.GetAllIssues)
		issue.POST("", create...)
		issue.GET("/:id", ic.GetIssue)
		issue.PATCH("/:id/status", auth, middlewares.RequireUserType(string(models.Admin)), ic.UpdateIssueStatus)
	}

	r.GET("/api/analytics", ic.GetIssueAnalytics)
}
