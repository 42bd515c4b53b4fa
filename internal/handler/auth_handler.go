package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/driftwell/riverplan/pkg/response"
)

// AuthHandler issues admin tokens
type AuthHandler struct {
	adminPassword string
	jwtSecret     string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(adminPassword, jwtSecret string) *AuthHandler {
	return &AuthHandler{adminPassword: adminPassword, jwtSecret: jwtSecret}
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid login payload", err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}

	response.Success(c, gin.H{"token": signed})
}
