package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edugo-labs/aula-api/internal/service"
	appErrors "github.com/edugo-labs/aula-api/pkg/errors"
	"github.com/edugo-labs/aula-api/pkg/response"
)

// AuthHandler handles session and Google OAuth endpoints.
type AuthHandler struct {
	service     *service.AuthService
	frontendURL string
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(svc *service.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{service: svc, frontendURL: frontendURL}
}

// CreateSession godoc
// @Summary Issue a session token
// @Tags Auth
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /auth/session [post]
func (h *AuthHandler) CreateSession(c *gin.Context) {
	session, err := h.service.IssueSession(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// GoogleAuthURL godoc
// @Summary Build the Google consent URL
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/google/url [get]
func (h *AuthHandler) GoogleAuthURL(c *gin.Context) {
	url, err := h.service.AuthURL(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"url": url})
}

// GoogleCallback completes the OAuth flow and bounces back to the frontend.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing authorization code"))
		return
	}
	if err := h.service.HandleCallback(c.Request.Context(), state, code); err != nil {
		response.Error(c, err)
		return
	}
	if h.frontendURL != "" {
		c.Redirect(http.StatusFound, h.frontendURL+"?google=connected")
		return
	}
	response.OK(c, gin.H{"connected": true})
}

// GoogleDisconnect godoc
// @Summary Disconnect the Google account
// @Tags Auth
// @Success 204
// @Router /auth/google [delete]
func (h *AuthHandler) GoogleDisconnect(c *gin.Context) {
	if err := h.service.Disconnect(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
