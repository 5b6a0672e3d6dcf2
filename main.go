package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tourjudge/etc"
	"tourjudge/handler"
	"tourjudge/middleware"
	"tourjudge/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	ginlogrus "github.com/toorop/gin-logrus"
)

func setupRouter() *gin.Engine {
	r := gin.New()

	r.Use(ginlogrus.Logger(log.StandardLogger()), gin.Recovery())

	r.GET("/ping", handler.HandlePing)
	r.POST("/login", handler.HandleLogin)

	authorized := r.Group("/")
	authorized.Use(middleware.JWTMiddleware())
	{
		authorized.DELETE("/logout", handler.HandleLogout)

		problem := authorized.Group("/problem")
		{
			problem.POST("/validate", handler.HandleProblemValidate)
			problem.GET("/inputs", handler.HandleInputList)
		}

		authorized.POST("/score", handler.HandleScore)

		run := authorized.Group("/run")
		{
			run.POST("/", handler.HandleRunStart)
			run.GET("/", handler.HandleRunList)
			run.GET("/:id", handler.HandleRunGet)
		}
	}

	return r
}

func main() {
	utils.SetTokenSecret(etc.Config.Auth.TokenSecret)

	router := setupRouter()
	srv := &http.Server{
		Addr:    etc.Config.ListenAddr,
		Handler: router,
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Error listening")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server with a timeout of 10 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("Server shutdown failed")
	}
	log.Info("Server exiting")
}
