// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/handlers"
	"shuttle/internal/http/middleware"
	"shuttle/internal/infra"
	"shuttle/internal/modules/booking"
	"shuttle/internal/modules/metrics"
	"shuttle/internal/modules/notify"
	"shuttle/internal/modules/planner"
	"shuttle/internal/modules/wallet"
)

func NewRouter(
	verifier infra.TokenVerifier,
	bookingService *booking.Service,
	plannerService *planner.Service,
	walletService *wallet.Service,
	notifyService *notify.Service,
	recorder *metrics.Recorder,
) http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.Logging())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.Use(middleware.Auth(verifier))

	bookingHandler := handlers.NewBookingHandler(bookingService)
	api.POST("/bookings", bookingHandler.Create)
	api.GET("/bookings", bookingHandler.History)

	plannerHandler := handlers.NewPlannerHandler(plannerService)
	api.POST("/optimize-route", plannerHandler.Optimize)

	walletHandler := handlers.NewWalletHandler(walletService)
	api.GET("/wallets/balance", walletHandler.Balance)
	api.POST("/wallets/topup", walletHandler.TopUp)
	api.GET("/wallets/statement", walletHandler.Statement)

	notificationHandler := handlers.NewNotificationHandler(notifyService)
	api.GET("/notifications", notificationHandler.List)
	api.POST("/notifications/:id/read", notificationHandler.MarkRead)

	metricsHandler := handlers.NewMetricsHandler(recorder)
	api.GET("/admin/metrics", metricsHandler.Summary)

	return r
}
