package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"whenfree/handlers"
	"whenfree/middleware"
	"whenfree/utils"
)

// RegisterOverlapRoutes sets up the shared free-time endpoint. The overlap
// query carries its own per-caller request window on top of the global
// throttle.
func RegisterOverlapRoutes(r *gin.Engine, hb *handlers.HandlerBundle, window *middleware.RequestWindow) {
	api := r.Group("/api/overlap")
	{
		api.POST("", window.Middleware(), hb.ComputeOverlapsHandler)
	}
}

// RegisterBlockRoutes registers busy-block management endpoints.
func RegisterBlockRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/blocks")
	{
		api.POST("", hb.CreateBlockHandler)
		api.GET("/:ownerId", hb.ListBlocksHandler)
		api.DELETE("/:ownerId/:blockId", hb.DeleteBlockHandler)
	}
}

// RegisterFriendRoutes registers the friend-request workflow endpoints.
func RegisterFriendRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/friends")
	{
		api.GET("/search", hb.SearchUsersHandler)
		api.POST("/request", hb.SendFriendRequestHandler)
		api.POST("/accept", hb.AcceptFriendRequestHandler)
		api.POST("/decline", hb.DeclineFriendRequestHandler)
		api.GET("/:userId", hb.ListFriendsHandler)
		api.GET("/:userId/requests", hb.ListPendingRequestsHandler)
		api.DELETE("/:userId/:friendId", hb.RemoveFriendHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, window *middleware.RequestWindow) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterOverlapRoutes(r, hb, window)
	RegisterBlockRoutes(r, hb)
	RegisterFriendRoutes(r, hb)
	RegisterHealthRoute(r)
}
