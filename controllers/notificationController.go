package controllers

import (
	"net/http"

	"civicsync/middlewares"
	"civicsync/notify"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	center *notify.Center
}

func NewNotificationController(center *notify.Center) *NotificationController {
	return &NotificationController{center: center}
}

// CurrentNotification returns the caller's visible toast, or null when there is none
func (nc *NotificationController) CurrentNotification(c *gin.Context) {
	q := nc.center.For(c.GetString(middlewares.UserIDKey))
	c.JSON(http.StatusOK, snapshotResponse(q))
}

func snapshotResponse(q *notify.Queue) gin.H {
	n, ok, pending := q.Snapshot()
	if !ok {
		return gin.H{"notification": nil, "pending": pending}
	}
	return gin.H{"notification": n, "pending": pending}
}

// DismissNotification is called once the client's exit transition finishes;
// it advances the caller's queue
func (nc *NotificationController) DismissNotification(c *gin.Context) {
	q := nc.center.For(c.GetString(middlewares.UserIDKey))
	if _, ok := q.Exited(); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No notification to dismiss"})
		return
	}

	c.JSON(http.StatusOK, snapshotResponse(q))
}
