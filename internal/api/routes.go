package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"foodbridge/internal/api/controllers"
	"foodbridge/internal/config"
	"foodbridge/internal/models/db_models"
	mem "foodbridge/pkg/memcache"
	"foodbridge/pkg/middleware"
	"foodbridge/pkg/utils"
)

// RouterParams is everything the HTTP surface needs.
type RouterParams struct {
	fx.In

	Config *config.Config
	Logger *zap.Logger
	Issuer *utils.TokenIssuer
	Tokens mem.TokenStore

	Account    *controllers.AccountController
	Menu       *controllers.MenuController
	Rating     *controllers.RatingController
	Preference *controllers.PreferenceController
	Request    *controllers.RequestController
	Admin      *controllers.AdminController
	Dashboard  *controllers.DashboardController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	utils.RegisterValidators()

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "Service is healthy")
	})

	r.GET("/request-lifecycle", p.Request.Lifecycle)

	accounts := r.Group("/accounts")
	accounts.POST("/register", p.Account.Register)
	accounts.POST("/login", p.Account.Login)
	accounts.POST("/forgot-password", p.Account.ForgotPassword)
	accounts.POST("/reset-password", p.Account.ResetPassword)

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware(p.Issuer, p.Tokens))

	auth.PUT("/accounts/me", p.Account.UpdateProfile)

	session := auth.Group("/session")
	session.GET("/me", p.Account.Me)
	session.POST("/logout", p.Account.Logout)

	restaurants := auth.Group("/restaurants")
	restaurants.GET("", p.Menu.ListRestaurants)
	restaurants.GET("/:id/menu", p.Menu.GetRestaurantMenu)
	restaurants.GET("/:id/ratings", p.Rating.GetRestaurantRatings)

	menu := auth.Group("/menu", middleware.RequireCapability(db_models.CapOwnMenu))
	menu.GET("", p.Menu.ListOwnMenu)
	menu.POST("", p.Menu.CreateMenuItem)
	menu.PUT("/:id", p.Menu.UpdateMenuItem)
	menu.DELETE("/:id", p.Menu.DeleteMenuItem)

	auth.PUT("/ratings", middleware.RequireCapability(db_models.CapRateRestaurant), p.Rating.RateRestaurant)

	prefs := auth.Group("/", middleware.RequireCapability(db_models.CapKeepPreferences))
	prefs.GET("/preferences", p.Preference.GetPreferences)
	prefs.PUT("/preferences", p.Preference.SavePreferences)
	prefs.GET("/suggestions/menu", p.Preference.SuggestMenu)

	// per-kind capabilities are checked by the request service
	requests := auth.Group("/requests/:kind")
	requests.POST("", p.Request.CreateRequest)
	requests.GET("/outgoing", p.Request.ListOutgoing)
	requests.GET("/incoming", p.Request.ListIncoming)
	requests.POST("/:id/accept", p.Request.Accept)
	requests.POST("/:id/reject", p.Request.Reject)
	requests.POST("/:id/complete", p.Request.Complete)

	admin := auth.Group("/admin", middleware.RequireCapability(db_models.CapManageAccounts))
	admin.GET("/accounts", p.Admin.ListAccounts)
	admin.GET("/accounts/:id", p.Admin.GetAccount)
	admin.PUT("/accounts/:id", p.Admin.UpdateAccount)
	admin.DELETE("/accounts/:id", p.Admin.DeleteAccount)
	admin.GET("/overview", p.Dashboard.GetOverview)
}
