package handler

import (
	"errors"
	"log"
	"net/http"

	"complaintwall/backend/internal/auth"
	"complaintwall/backend/internal/config"
	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userView(u *models.User) gin.H {
	return gin.H{"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role}
}

// Register creates an account. The public path accepts the student and
// admin role names only; the real admin account is provisioned at boot.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	role := models.RoleStudent
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
			return
		}
		role = parsed
	}

	hash, err := auth.HashPassword(req.Password, config.BcryptCost)
	if err != nil {
		log.Printf("ERROR: password hashing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user := &models.User{Name: req.Name, Email: req.Email, Password: hash, Role: role}
	if err := h.Storage.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
			return
		}
		log.Printf("ERROR: failed to create user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	token, err := h.Auth.IssueToken(user)
	if err != nil {
		log.Printf("ERROR: failed to issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    userView(user),
	})
}

// Login verifies credentials and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing email or password"})
		return
	}

	user, err := h.Storage.GetUserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		log.Printf("ERROR: login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.Auth.IssueToken(user)
	if err != nil {
		log.Printf("ERROR: failed to issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"role":    user.Role,
		"user":    userView(user),
	})
}
