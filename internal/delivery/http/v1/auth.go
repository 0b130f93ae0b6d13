package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkarpenko/go-tasklist/internal/services"
)

type credentialsRequest struct {
	Username string `json:"username" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *handlerImpl) HandleSignUp(c *gin.Context) {
	var req credentialsRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.SignUp(c, services.CredentialsParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to sign up")
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			abort(c, newConflictError(services.ErrUserAlreadyExists.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, tokenResponse{Token: result.Token})
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req credentialsRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	result, err := h.auth.Login(c, services.CredentialsParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		// Unknown username and wrong password answer identically so the
		// response never reveals which factor failed.
		case errors.Is(err, services.ErrUserNotFound),
			errors.Is(err, services.ErrUserPasswordMismatch):
			abort(c, newUnauthorizedError(errInvalidCredentials.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: result.Token})
}
