package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jwt "github.com/golang-jwt/jwt/v5"

	"complainthub/backend/internal/auth"
	"complainthub/backend/internal/config"
	"complainthub/backend/internal/models"
)

const tokenTTL = 72 * time.Hour

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the demo set and registered users and returns
// a bearer token plus the session user.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields."})
		return
	}

	user, err := h.Auth.Login(c.Request.Context(), strings.TrimSpace(req.Email), req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		h.log.Error("login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed. Please try again."})
		return
	}

	h.respondWithToken(c, http.StatusOK, *user)
}

// Register validates the form the way the original did (all fields present,
// password length) before invoking the auth service.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields."})
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields."})
		return
	}
	if len(req.Password) < config.MinPasswordLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters long."})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), name, email, req.Password)
	if errors.Is(err, auth.ErrUserExists) {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}
	if err != nil {
		h.log.Error("register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed. Please try again."})
		return
	}

	h.respondWithToken(c, http.StatusCreated, *user)
}

// Logout clears the session's current user.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Auth.Logout(c.Request.Context()); err != nil {
		h.log.Error("logout", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed. Please try again."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session returns the persisted session user, or null when logged out.
func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": h.State.User()})
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user models.PublicUser) {
	token, err := h.issueToken(user)
	if err != nil {
		h.log.Error("issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create token"})
		return
	}
	c.JSON(status, gin.H{"token": token, "user": user})
}

func (h *Handler) issueToken(user models.PublicUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(tokenTTL).Unix(),
		"iss":   "complainthub",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.Cfg.JWTSecret))
}

func (h *Handler) parseToken(tokenString string) (*models.PublicUser, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(h.Cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &models.PublicUser{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  models.Role(role),
	}, nil
}
