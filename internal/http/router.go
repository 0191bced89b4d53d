package api

import (
	stdhttp "net/http"

	intconfig "github.com/Tripcarte/easytix-booking/internal/config"
	h "github.com/Tripcarte/easytix-booking/internal/http/handlers"
	"github.com/Tripcarte/easytix-booking/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, hd h.Handler, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		gin.Recovery(),
		middleware.CORS(env.CORSAllowedOrigins),
		middleware.Actor(env.JWTSecret),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.OPTIONS("/*path", func(c *gin.Context) { c.AbortWithStatus(stdhttp.StatusNoContent) })

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Bookings
		bookings := api.Group("/bookings")
		bookings.POST("", hd.CreateBooking)
		bookings.GET("/:id", hd.GetBooking)
		bookings.POST("/:id/finalize", hd.FinalizeBooking)
		bookings.PUT("/:id/manifest", hd.UpdateBookingManifest)
		bookings.POST("/:id/approve", hd.ApproveBooking)
		bookings.POST("/:id/reject", hd.RejectBooking)

		// Scheduled trips (read-only)
		trips := api.Group("/scheduled-trips")
		trips.GET("", hd.ListScheduledTrips)
		trips.GET("/count", hd.CountScheduledTrips)
		trips.GET("/:id", hd.GetScheduledTrip)
		trips.GET("/:id/manifest", hd.GetScheduledTripManifestPDF)
	}

	h.SetRouter(r)
	return r
}
