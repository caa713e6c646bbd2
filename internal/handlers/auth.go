package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/flock-console/internal/clientstate"
	"github.com/yukikurage/flock-console/internal/dto"
	apierrors "github.com/yukikurage/flock-console/internal/errors"
	"github.com/yukikurage/flock-console/internal/middleware"
	"github.com/yukikurage/flock-console/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates against the API server and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, apierrors.FormatBindingError(err))
		return
	}

	sess, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	store := clientstate.FromContext(c)
	if previous := store.Auth(); previous.SessionID != "" {
		h.authService.Logout(previous.SessionID)
	}
	store.ClearAll()
	user := sess.User
	if err := store.SetAuth(clientstate.AuthState{
		User:          &user,
		Token:         sess.Token,
		Authenticated: true,
		SessionID:     sess.SessionID,
	}); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.SessionDTO{User: &user, Authenticated: true})
}

// Logout clears every persisted store and the session's cached queries.
func (h *AuthHandler) Logout(c *gin.Context) {
	store := clientstate.FromContext(c)
	h.authService.Logout(store.Auth().SessionID)
	store.ClearAll()
	if err := store.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	state, exists := middleware.GetAuth(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.SessionDTO{User: state.User, Authenticated: state.Authenticated})
}
