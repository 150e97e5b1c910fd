package cmd

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Danieliragi/johnserviceMotel-sub001/app/controller"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/middleware"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/provider"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/repository"
	"github.com/Danieliragi/johnserviceMotel-sub001/app/service"
	"github.com/Danieliragi/johnserviceMotel-sub001/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the Echo HTTP server exposing the public booking API, the admin back-office API, and the Stripe webhook endpoint.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, services, cleanup := mustCreateServices()
	defer cleanup()

	e := setupHTTPServer(cfg, services)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}

	logrus.Info("Server stopped")
}

type appServices struct {
	invoiceService     *service.InvoiceService
	reservationService *service.ReservationService
}

func setupHTTPServer(cfg *config.Config, services *appServices) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	invoiceController := controller.NewInvoiceController(services.invoiceService)
	reservationController := controller.NewReservationController(services.reservationService)
	webhookController := controller.NewWebhookController(services.reservationService)

	e.GET("/health", reservationController.Health)

	e.GET("/rooms", reservationController.ListRooms)
	e.GET("/rooms/:id", reservationController.GetRoom)
	e.POST("/reservations", reservationController.CreateReservation)

	webhooks := e.Group("/webhooks")
	webhooks.POST("/stripe", webhookController.HandleStripeWebhook)

	admin := e.Group("/admin", middleware.RequireAdmin(cfg.App.AdminJWTSecret))
	admin.GET("/reservations", reservationController.ListReservations)
	admin.GET("/reservations/:id", reservationController.GetReservation)
	admin.PATCH("/reservations/:id", reservationController.UpdateReservation)
	admin.POST("/invoices", invoiceController.CreateInvoice)
	admin.GET("/invoices", invoiceController.ListInvoices)
	admin.GET("/invoices/:id", invoiceController.GetInvoice)
	admin.DELETE("/invoices/:id", invoiceController.DeleteInvoice)
	admin.GET("/payments", reservationController.ListPayments)
	admin.POST("/payments", reservationController.CreatePayment)

	return e
}

func mustCreateServices() (*config.Config, *appServices, func()) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	invoiceRepo := repository.NewInvoiceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	analyticsRepo := repository.NewAnalyticsEventRepository(db)
	webhookRepo := repository.NewWebhookEventRepository(db)
	emailLogRepo := repository.NewEmailLogRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	clientRepo := repository.NewClientRepository(db)

	stripeProvider := provider.NewStripeProvider(provider.StripeConfig{
		SecretKey:                 cfg.Stripe.SecretKey,
		WebhookSecret:             cfg.Stripe.WebhookSecret,
		SignatureToleranceSeconds: cfg.Stripe.SignatureToleranceSeconds,
	})

	notifier := service.NewNotifier(emailLogRepo, service.NewConsoleMailer(), cfg.Notifications.FromEmail)

	invoiceService := service.NewInvoiceService(invoiceRepo)
	reservationService := service.NewReservationService(
		reservationRepo,
		paymentRepo,
		analyticsRepo,
		webhookRepo,
		roomRepo,
		clientRepo,
		notifier,
		stripeProvider,
		cfg.Notifications,
		cfg.Jobs,
	)

	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	return cfg, &appServices{
		invoiceService:     invoiceService,
		reservationService: reservationService,
	}, cleanup
}
