package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/forevo/internal/common"
)

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	UserName    string `json:"username"`
	AvatarColor string `json:"avatarColor"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendMessageRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// handleError maps a service error to a status and a safe message. Storage
// and unexpected faults are logged with their cause but surfaced as a
// generic server error.
func (s *Server) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail),
		errors.Is(err, common.ErrDuplicateUsername),
		errors.Is(err, common.ErrMissingParameter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, common.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	user, err := s.users.Register(ctx, req.Email, req.Password, req.DisplayName, req.UserName, req.AvatarColor)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.logger.Info(ctx, "user registered", "username", user.UserName)
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, user, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) handleListUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message, err := s.messages.Send(c.Request.Context(), req.From, req.To, req.Text)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

func (s *Server) handleListMessages(c *gin.Context) {
	userID := c.Query("userId")

	msgs, err := s.messages.ListForUser(c.Request.Context(), userID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, msgs)
}
