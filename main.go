// File: whenfree/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whenfree/config"
	"whenfree/cron"
	"whenfree/database"
	blockRepo "whenfree/database/repository/block"
	friendshipRepo "whenfree/database/repository/friendship"
	profileRepo "whenfree/database/repository/profile"
	"whenfree/handlers"
	"whenfree/middleware"
	"whenfree/routes"
	"whenfree/services/friends"
	"whenfree/services/overlap"
	"whenfree/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitLimiterStore()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	ipLimiter := middleware.NewIPRateLimiter(config.AppConfig.MaxRequestsPerMin)
	router.Use(ipLimiter.Middleware())

	overlapWindow := middleware.NewRequestWindow(
		utils.GetLimiterClient(),
		config.AppConfig.OverlapWindowMax,
		time.Duration(config.AppConfig.OverlapWindowSeconds)*time.Second,
	)

	// repositories.
	blocks := blockRepo.NewMongoBlockRepo()
	users := profileRepo.NewMongoUserRepo()
	friendships := friendshipRepo.NewMongoFriendshipRepo()

	// services.
	overlapService := &overlap.DefaultOverlapService{
		BlockRepo: blocks,
	}
	friendService := &friends.DefaultFriendService{
		Repo:  friendships,
		Users: users,
	}

	overlapHandler := handlers.NewOverlapHandler(overlapService, logger)
	blockHandler := handlers.NewBlockHandler(blocks, logger)
	friendHandler := handlers.NewFriendHandler(friendService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ComputeOverlapsHandler: overlapHandler.ComputeOverlapsHandler,

		CreateBlockHandler: blockHandler.CreateBlockHandler,
		ListBlocksHandler:  blockHandler.ListBlocksHandler,
		DeleteBlockHandler: blockHandler.DeleteBlockHandler,

		SearchUsersHandler:          friendHandler.SearchUsersHandler,
		SendFriendRequestHandler:    friendHandler.SendRequestHandler,
		AcceptFriendRequestHandler:  friendHandler.AcceptRequestHandler,
		DeclineFriendRequestHandler: friendHandler.DeclineRequestHandler,
		ListFriendsHandler:          friendHandler.ListFriendsHandler,
		ListPendingRequestsHandler:  friendHandler.ListPendingRequestsHandler,
		RemoveFriendHandler:         friendHandler.RemoveFriendHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, overlapWindow)

	// Background maintenance and health monitoring.
	cron.InitRetentionSweeper(blocks)
	utils.StartHealthMonitor(utils.GetLimiterClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
