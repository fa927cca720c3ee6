package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"smartstay/handlers"
)

// RegisterWalletRoutes registers wallet session endpoints.
func RegisterWalletRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/wallet")
	{
		api.GET("/session", hb.Wallet.Session)
		api.POST("/connect", hb.Wallet.Connect)
		api.POST("/disconnect", hb.Wallet.Disconnect)
	}
}

// RegisterPropertyRoutes registers registry-backed property endpoints.
func RegisterPropertyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/properties")
	{
		api.GET("", hb.Property.List)
		api.GET("/:id", hb.Property.Get)
		api.GET("/:id/units", hb.Property.Units)
		api.POST("", hb.Property.Create)
		api.PUT("/:id", hb.Property.Update)
		api.POST("/:id/verify", hb.Property.Verify)
		api.POST("/:id/mint-week", hb.Property.MintWeek)
		api.POST("/:id/mint-ownership", hb.Property.MintOwnership)
	}
}

// RegisterMarketRoutes registers marketplace and reservation endpoints.
func RegisterMarketRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/market")
	{
		api.GET("/offers", hb.Market.Offers)
		api.POST("/offers", hb.Market.CreateOffer)
		api.POST("/offers/:id/accept", hb.Market.AcceptOffer)
		api.DELETE("/offers/:id", hb.Market.CancelOffer)
		api.GET("/slots", hb.Market.Slots)
		api.GET("/reservations", hb.Market.MyReservations)
	}
}

// RegisterGovernanceRoutes registers proposal, voting and role endpoints.
func RegisterGovernanceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/governance")
	{
		api.GET("/proposals", hb.Governance.Proposals)
		api.POST("/proposals", hb.Governance.CreateProposal)
		api.POST("/proposals/:id/vote", hb.Governance.Vote)
		api.POST("/proposals/:id/execute", hb.Governance.Execute)
		api.GET("/roles/:role", hb.Governance.HasRole)
		api.POST("/roles/grant", hb.Governance.GrantRole)
	}
}

// RegisterTxRoutes registers submission status endpoints.
func RegisterTxRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/tx")
	{
		api.GET("/latest", hb.Tx.Latest)
		api.GET("/:id", hb.Tx.Get)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWalletRoutes(r, hb)
	RegisterPropertyRoutes(r, hb)
	RegisterMarketRoutes(r, hb)
	RegisterGovernanceRoutes(r, hb)
	RegisterTxRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
