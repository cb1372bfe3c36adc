package controllers

import (
	"net/http"

	"civicsync/middlewares"
	"civicsync/models"
	authUtils "civicsync/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserService is the part of the store the auth handlers use
type UserService interface {
	AuthenticateUser(email, password string) (models.DemoUser, error)
	GetUser(email string) (models.DemoUser, bool)
}

type AuthController struct {
	users      UserService
	secret     string
	production bool
	domain     string
	log        *zap.SugaredLogger
}

func NewAuthController(users UserService, secret string, production bool, domain string, log *zap.SugaredLogger) *AuthController {
	return &AuthController{users: users, secret: secret, production: production, domain: domain, log: log}
}

func userResponse(u models.DemoUser) gin.H {
	return gin.H{
		"email": u.Email,
		"name":  u.Name,
		"type":  u.Type,
	}
}

// LoginUser handles demo login
func (ac *AuthController) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.AuthenticateUser(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateAndSetToken(user, ac.secret)
	if err != nil {
		ac.log.Errorw("Error generating token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	// For production, don't set domain to allow cross-origin cookies
	domain := ac.domain
	if ac.production {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     middlewares.AuthCookie,
		Value:    token,
		MaxAge:   3600,
		Path:     "/",
		Domain:   domain,
		Secure:   ac.production,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)

	resp := userResponse(user)
	resp["token"] = token
	c.JSON(http.StatusOK, resp)
}

// GetMe retrieves the authenticated user's information
func (ac *AuthController) GetMe(c *gin.Context) {
	user, ok := ac.users.GetUser(c.GetString(middlewares.UserIDKey))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}

// LogoutUser handles user logout by clearing the auth_token cookie
func (ac *AuthController) LogoutUser(c *gin.Context) {
	c.SetCookie(middlewares.AuthCookie, "", -1, "/", ac.domain, ac.production, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
