package handlers

import (
	"net/http"
	"time"

	"crowdfund_webapp/internal/domain"
	"crowdfund_webapp/internal/http/middleware"
	"crowdfund_webapp/internal/repository"
	"crowdfund_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

const sessionMaxAge = int(7 * 24 * time.Hour / time.Second)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := gin.Mode() == gin.ReleaseMode
	c.SetCookie(middleware.SessionCookie, token, sessionMaxAge, "/", "", secure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := gin.Mode() == gin.ReleaseMode
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secure, true)
}

func userPayload(u *domain.User) gin.H {
	return gin.H{
		"id":       u.ID,
		"email":    u.Email,
		"name":     u.Name,
		"is_admin": u.IsAdmin,
	}
}

// Register creates a user account and opens a session.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password and name are required"})
		return
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}

	ctx := c.Request.Context()
	if err := h.Users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "user with this email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	token, err := service.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	h.setSessionCookie(c, token)
	h.audit(c, user.ID, domain.AuditActionRegister, domain.AuditCategoryAuth, nil)

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created successfully",
		"user":    userPayload(user),
	})
}

// Login verifies credentials and opens a session.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil || !service.ComparePassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := service.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	h.setSessionCookie(c, token)
	h.audit(c, user.ID, domain.AuditActionLogin, domain.AuditCategoryAuth, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    userPayload(user),
	})
}

// Logout clears the session cookie. Valid for anonymous callers too.
func (h *Handler) Logout(c *gin.Context) {
	if user, ok := middleware.AuthUserFromContext(c); ok {
		h.audit(c, user.ID, domain.AuditActionLogout, domain.AuditCategoryAuth, nil)
	}
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the current user from the session.
func (h *Handler) Me(c *gin.Context) {
	authUser, ok := middleware.AuthUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), authUser.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userPayload(user)})
}
