package routes

import (
	"taxigo/internal/handlers"
	"taxigo/internal/middleware"
	"taxigo/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public signup/login routes
func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", authHandler.Login)
}

// SetupWalletRoutes sets up the wallet and transaction routes
func SetupWalletRoutes(r *gin.RouterGroup, walletHandler *handlers.WalletHandler, jwtSecret string) {
	wallet := r.Group("/wallet")
	wallet.Use(middleware.AuthRequired(jwtSecret))
	{
		wallet.GET("", walletHandler.GetWallet)
		wallet.POST("/topup", walletHandler.TopUp)
	}

	r.GET("/transactions", middleware.AuthRequired(jwtSecret), walletHandler.ListTransactions)
}

// SetupDriverRoutes sets up the public driver listing
func SetupDriverRoutes(r *gin.RouterGroup, driverHandler *handlers.DriverHandler) {
	r.GET("/drivers", driverHandler.ListDrivers)
}

// SetupRideRoutes sets up the ride lifecycle routes
func SetupRideRoutes(r *gin.RouterGroup, rideHandler *handlers.RideHandler, jwtSecret string) {
	rides := r.Group("/rides")
	rides.Use(middleware.AuthRequired(jwtSecret))
	{
		rides.POST("/request", rideHandler.RequestRide)
		rides.GET("", rideHandler.ListRides)
		rides.POST("/complete/:rideId", rideHandler.CompleteRide)
		rides.POST("/cancel/:rideId", rideHandler.CancelRide)
		rides.GET("/driver-location/:rideId", rideHandler.GetDriverLocation)
	}
}

// SetupTrackingRoutes sets up the live driver-location stream
func SetupTrackingRoutes(r *gin.RouterGroup, wsHandler *websocket.Handler) {
	r.GET("/ws/rides/:rideId/track", wsHandler.HandleTrack)
}
