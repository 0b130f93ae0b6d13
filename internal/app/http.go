package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mkarpenko/go-tasklist/internal/config"
	v1 "github.com/mkarpenko/go-tasklist/internal/delivery/http/v1"
	"github.com/mkarpenko/go-tasklist/internal/services"
	"github.com/mkarpenko/go-tasklist/internal/storage"
	"github.com/mkarpenko/go-tasklist/internal/token"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(v1.RequestLogger(globalLogger))
	router.Use(newCORSMiddleware(cfg.CORS))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func newCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsCfg)
}

func registerRoutes(router gin.IRouter) {
	jwtCfg := config.Global().JWT
	codec := token.NewCodec(jwtCfg.Issuer, []byte(jwtCfg.SigningKey))

	userRepo := storage.NewUserRepository(globalPostgresPool)
	taskRepo := storage.NewTaskRepository(globalPostgresPool)

	v1Handler := v1.New(
		globalLogger,
		services.NewAuthService(globalLogger, userRepo, codec),
		services.NewTaskService(globalLogger, taskRepo),
		codec,
	)
	router = router.Group("/api")

	authRouter := router.Group("/auth")
	authRouter.POST("/signup", v1Handler.HandleSignUp)
	authRouter.POST("/login", v1Handler.HandleLogin)

	taskRouter := router.Group("/tasks")
	taskRouter.Use(v1Handler.HandleAuthMiddleware)
	taskRouter.GET("", v1Handler.HandleListTasks)
	taskRouter.POST("", v1Handler.HandleCreateTask)
	taskRouter.PUT("/:id", v1Handler.HandleUpdateTask)
	taskRouter.DELETE("/:id", v1Handler.HandleDeleteTask)
}
