package router

import (
	"time"

	"printpay/config"
	"printpay/internal/auth"
	"printpay/internal/domain"
	"printpay/internal/handler"
	"printpay/internal/middleware"
	"printpay/internal/repository"
	"printpay/internal/service"
	"printpay/internal/store"
	"printpay/pkg/idgen"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the process-wide collaborators built once in main.
type Deps struct {
	Store  store.Store
	Pusher service.Pusher
	IDs    *idgen.Generator
	Logger *zap.Logger
}

func Setup(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Repositories
	orderRepo := repository.NewOrderRepository(d.Store)
	paymentRepo := repository.NewPaymentRepository(d.Store)
	unmatchedRepo := repository.NewUnmatchedPaymentRepository(d.Store)
	userRepo := repository.NewUserRepository(d.Store)

	// Services
	resolver := service.NewOrderResolver(orderRepo, paymentRepo, service.ResolverConfig{
		OrderIDPrefix:    cfg.Payment.OrderIDPrefix,
		OrderIDMinLength: cfg.Payment.OrderIDMinLength,
	}, d.Logger)
	recorder := service.NewPaymentRecorder(paymentRepo, d.IDs, cfg.Payment.DefaultMethod)
	sink := service.NewUnmatchedSink(unmatchedRepo, d.IDs, d.Logger)
	updater := service.NewOrderStatusUpdater(orderRepo, d.Store, d.Logger)
	notifSvc := service.NewNotificationService(userRepo, d.Pusher, d.Logger)
	reconcileSvc := service.NewReconcileService(service.ReconcileDeps{
		Store:    d.Store,
		Resolver: resolver,
		Recorder: recorder,
		Sink:     sink,
		Updater:  updater,
		Notifier: notifSvc,
		Logger:   d.Logger,
		Timeout:  cfg.Store.Timeout,
	})

	// Handlers
	callbackHandler := handler.NewPaymentCallbackHandler(reconcileSvc, &cfg.Payment, d.Logger)
	healthHandler := handler.NewHealthHandler(d.Store)
	adminHandler := handler.NewAdminHandler(paymentRepo, unmatchedRepo, d.Logger)

	// The gateway is never throttled: anything but 200 makes it retry.
	adminLimit := middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.Server.RateLimit, time.Minute))
	signer := auth.NewSigner(&cfg.JWT)

	r.GET("/health", healthHandler.Health)

	payment := r.Group("/payment")
	{
		payment.POST("/callback", callbackHandler.Handle)
		payment.GET("/callback", callbackHandler.Return)
		payment.GET("/return", callbackHandler.Return)
	}

	admin := r.Group("/api/v1/admin", adminLimit, middleware.Authenticate(signer))
	{
		admin.GET("/orders/:orderId/payments", middleware.RequireScope(domain.ScopePaymentsRead), adminHandler.OrderPayments)
		admin.GET("/payments/unmatched/:id", middleware.RequireScope(domain.ScopeUnmatchedRead), adminHandler.UnmatchedPayment)
	}

	return r
}
