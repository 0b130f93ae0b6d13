package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mkarpenko/go-tasklist/internal/services"
	"github.com/mkarpenko/go-tasklist/internal/token"
)

type Handler interface {
	HandleSignUp(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleListTasks(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	auth   services.AuthService
	tasks  services.TaskService
	codec  *token.Codec
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	taskService services.TaskService,
	codec *token.Codec,
) Handler {
	return &handlerImpl{
		logger: logger,
		auth:   authService,
		tasks:  taskService,
		codec:  codec,
	}
}
