package routes

import (
	"fmt"
	"time"

	"cowork/handlers"
	"cowork/middleware"
	"cowork/models"
	"cowork/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the two-stage login endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", hb.Auth.Register)
		authGroup.POST("/login", hb.Auth.Login)
		authGroup.POST("/verify-otp", middleware.RequirePendingLogin(hb.AuthService), hb.Auth.VerifyOTP)
		authGroup.GET("/logout", hb.Auth.Logout)

		// Protected routes (Require Authentication)
		authGroup.GET("/me", middleware.Protect(hb.AuthService), hb.Auth.Me)
	}
}

// RegisterSpaceRoutes registers the space directory and the nested reservation endpoints.
func RegisterSpaceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	protect := middleware.Protect(hb.AuthService)
	adminOnly := middleware.Authorize(models.RoleAdmin)

	spaces := api.Group("/coworking-spaces")
	{
		spaces.GET("", hb.Spaces.List)
		spaces.GET("/:id", hb.Spaces.Get)
		spaces.POST("", protect, adminOnly, hb.Spaces.Create)
		spaces.PUT("/:id", protect, adminOnly, hb.Spaces.Update)
		spaces.DELETE("/:id", protect, adminOnly, hb.Spaces.Delete)

		spaces.GET("/:id/reservations", protect, hb.Reservations.ListForSpace)
		spaces.POST("/:id/reservations", protect,
			middleware.Authorize(models.RoleUser, models.RoleAdmin), hb.Reservations.Add)
	}
}

// RegisterReservationRoutes registers reservation endpoints.
func RegisterReservationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	reservations := api.Group("/reservations")
	{
		reservations.Use(middleware.Protect(hb.AuthService))
		reservations.GET("", hb.Reservations.List)
		reservations.GET("/:id", hb.Reservations.Get)
		reservations.PUT("/:id", middleware.Authorize(models.RoleUser, models.RoleAdmin), hb.Reservations.Update)
		reservations.DELETE("/:id", middleware.Authorize(models.RoleUser, models.RoleAdmin), hb.Reservations.Delete)
	}
}

// RegisterFavoriteRoutes registers favorites endpoints.
func RegisterFavoriteRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	favorites := api.Group("/favorites")
	{
		favorites.Use(middleware.Protect(hb.AuthService))
		favorites.GET("", hb.Favorites.List)
		favorites.POST("", hb.Favorites.Add)
		favorites.DELETE("/:spaceId", hb.Favorites.Remove)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RouterOptions configures the global middleware chain.
type RouterOptions struct {
	AllowedOrigins    []string
	MaxRequestsPerMin int
	// TrustedProxies may set X-Forwarded-For; nil trusts none.
	TrustedProxies []string
}

// SetupRouter builds the engine with the global middleware chain and every route.
func SetupRouter(hb *handlers.HandlerBundle, opts RouterOptions) (*gin.Engine, error) {
	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(opts.MaxRequestsPerMin))

	RegisterRoutes(router, hb, opts.AllowedOrigins)
	return router, nil
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api/v1")
	RegisterAuthRoutes(api, hb)
	RegisterSpaceRoutes(api, hb)
	RegisterReservationRoutes(api, hb)
	RegisterFavoriteRoutes(api, hb)
	RegisterHealthRoute(r)
}
