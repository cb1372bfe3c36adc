package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"civicsync/middlewares"
	"civicsync/models"
	"civicsync/notify"
	"civicsync/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxPageSize = 100

// IssueService is the part of the store the issue handlers use
type IssueService interface {
	Find(f store.IssueFilter) []models.Issue
	GetByID(id string) (models.Issue, error)
	Add(data models.NewIssue) models.Issue
	UpdateStatus(id string, status models.IssueStatus) (models.Issue, error)
	GetAnalytics() models.AnalyticsSnapshot
}

type IssueController struct {
	issues        IssueService
	notifications *notify.Center
	log           *zap.SugaredLogger
}

func NewIssueController(issues IssueService, notifications *notify.Center, log *zap.SugaredLogger) *IssueController {
	return &IssueController{issues: issues, notifications: notifications, log: log}
}

// CreateIssue handles the creation of a new issue
func (ic *IssueController) CreateIssue(c *gin.Context) {
	var input models.NewIssue
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue := ic.issues.Add(input)
	userID := c.GetString(middlewares.UserIDKey)
	ic.log.Infow("Issue reported", "id", issue.ID, "category", issue.Category, "user", userID)
	ic.notifications.For(userID).ShowSuccess("Issue " + issue.ID + " reported successfully")

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues lists issues with optional category, status and search filters.
// Pagination applies only when limit is given.
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	filter := store.IssueFilter{
		Category: models.IssueCategory(queryFilter(c, "category")),
		Status:   models.IssueStatus(queryFilter(c, "status")),
		Query:    c.Query("search"),
	}
	issues := ic.issues.Find(filter)
	total := len(issues)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if page < 1 {
		page = 1
	}

	totalPages := 1
	if limit > 0 {
		if limit > maxPageSize {
			limit = maxPageSize
		}
		totalPages = (total + limit - 1) / limit
		// compare pages before multiplying; page comes straight from the query
		start, end := total, total
		if page <= totalPages {
			start = (page - 1) * limit
			end = min(start+limit, total)
		}
		issues = issues[start:end]
	} else {
		page = 1
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": total,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// queryFilter treats "all" like an absent filter.
func queryFilter(c *gin.Context, key string) string {
	v := c.Query(key)
	if v == "all" {
		return ""
	}
	return v
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	issue, err := ic.issues.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus moves an issue to a new status and records it in the timeline
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	var input struct {
		Status models.IssueStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	issue, err := ic.issues.UpdateStatus(c.Param("id"), input.Status)
	if err != nil {
		if errors.Is(err, store.ErrIssueNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		}
		return
	}

	userID := c.GetString(middlewares.UserIDKey)
	ic.log.Infow("Issue status updated", "id", issue.ID, "status", issue.Status, "user", userID)
	ic.notifications.For(userID).ShowSuccess("Status updated to " + string(issue.Status))

	c.JSON(http.StatusOK, issue)
}

// GetIssueAnalytics returns issue counts by category and status
func (ic *IssueController) GetIssueAnalytics(c *gin.Context) {
	c.JSON(http.StatusOK, ic.issues.GetAnalytics())
}
