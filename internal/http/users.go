package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"notes-server/internal/domain"
	"notes-server/internal/service"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (h *Handler) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserAlreadyExists):
		writeError(c, http.StatusBadRequest, "username already exists")
		return
	case errors.Is(err, service.ErrMissingCredentials):
		writeError(c, http.StatusBadRequest, err.Error())
		return
	default:
		h.internalError(c, "there was an error storing the user", err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(c, http.StatusUnauthorized, "the credentials provided are not correct")
		return
	default:
		h.internalError(c, "there was an error checking the credentials", err)
		return
	}

	c.JSON(http.StatusOK, userToResponse(user))
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Token:    user.Token,
	}
}
