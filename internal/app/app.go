package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopcore/shopcore/internal/config"
	"github.com/shopcore/shopcore/internal/handler"
	"github.com/shopcore/shopcore/internal/repository"
	"github.com/shopcore/shopcore/internal/service"
	"github.com/shopcore/shopcore/internal/utils"
	"github.com/shopcore/shopcore/pkg/observability"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	shutdownTimeout      = 5 * time.Second
	sessionSweepInterval = time.Hour
)

type App struct {
	infra  Infrastructure
	config *config.Config
	repos  *repository.Repositories
	router *gin.Engine
	server *http.Server
}

type handlers struct {
	auth       *handler.AuthHandler
	catalog    *handler.CatalogHandler
	cart       *handler.CartHandler
	card       *handler.CardHandler
	review     *handler.ReviewHandler
	admin      *handler.AdminHandler
	newsletter *handler.NewsletterHandler
}

func NewApp(infra Infrastructure, cfg *config.Config) (*App, error) {
	repos := repository.NewRepositories(infra.SQLite())

	key, err := cfg.Security.EncryptionKey()
	if err != nil {
		return nil, err
	}
	encryptor, err := utils.NewEncryptor(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create card encryptor: %w", err)
	}

	var gateway service.PaymentGateway
	if cfg.Payment.GatewayURL != "" {
		gateway = service.NewHTTPGateway(cfg.Payment.GatewayURL, cfg.Payment.Timeout.Duration)
	} else {
		gateway = service.NewSandboxGateway()
	}

	authService := service.NewAuthService(repos, cfg.Security.BCryptCost, cfg.Session.TTL.Duration)
	catalogService := service.NewCatalogService(repos, cfg.Shop.SearchLimit)
	cartService := service.NewCartService(repos, gateway, cfg.Shop.ShippingFee, infra.Logger())
	cardService := service.NewCardService(repos, encryptor, cfg.Security.CardLuhnCheck)
	reviewService := service.NewReviewService(repos)
	newsletterService := service.NewNewsletterService(repos, cfg.Shop.UnsubscribeTTL.Duration)

	h := handlers{
		auth:       handler.NewAuthHandler(authService, cfg.Session.CookieSecure),
		catalog:    handler.NewCatalogHandler(catalogService),
		cart:       handler.NewCartHandler(cartService),
		card:       handler.NewCardHandler(cardService),
		review:     handler.NewReviewHandler(reviewService),
		admin:      handler.NewAdminHandler(catalogService),
		newsletter: handler.NewNewsletterHandler(newsletterService),
	}

	healthChecker := NewHealthChecker(infra)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("shopcore"))
	router.Use(handler.LoggerMiddleware(infra.Logger()))
	router.Use(handler.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders))

	setupRoutes(router, h, authService, healthChecker, infra.MetricsHandler())

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	}

	return &App{
		infra:  infra,
		config: cfg,
		repos:  repos,
		router: router,
		server: srv,
	}, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func setupRoutes(
	router *gin.Engine,
	h handlers,
	authService service.AuthService,
	healthChecker *HealthChecker,
	metricsHandler http.Handler,
) {
	router.GET("/metrics", observability.PrometheusHandler(metricsHandler))
	router.GET("/health", healthChecker.Handler)

	authRequired := handler.SessionMiddleware(authService)

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.auth.Register)
			auth.POST("/login", h.auth.Login)
			auth.POST("/logout", h.auth.Logout)
			auth.GET("/me", authRequired, h.auth.GetMe)
		}

		api.GET("/products/:id", h.catalog.GetProduct)
		api.GET("/search", h.catalog.Search)

		api.POST("/cart", authRequired, h.cart.AddToCart)
		api.POST("/checkout", authRequired, h.cart.Checkout)

		cards := api.Group("/cards", authRequired)
		{
			cards.POST("", h.card.AddCard)
			cards.GET("", h.card.ListCards)
		}

		api.POST("/reviews", authRequired, h.review.AddReview)

		api.POST("/unsubscribe", authRequired, h.newsletter.UnsubscribeLink)
		api.GET("/unsubscribe/:token", h.newsletter.UnsubscribeForm)
		api.POST("/unsubscribe/:token", h.newsletter.Unsubscribe)

		admin := api.Group("/admin", authRequired, handler.AdminMiddleware())
		{
			admin.POST("/products", h.admin.CreateProduct)
			admin.PUT("/products/:id", h.admin.UpdateProduct)
			admin.DELETE("/products/:id", h.admin.DeleteProduct)
		}
	}
}

// sweepExpiredSessions clears expired session rows on startup and then
// hourly. Revoked-but-unexpired rows stay until their expiry passes.
func (a *App) sweepExpiredSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		if err := a.repos.Sessions.DeleteExpired(ctx, time.Now().UTC()); err != nil {
			a.infra.Logger().Warn("Failed to sweep expired sessions", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *App) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go a.sweepExpiredSessions(ctx)

	go func() {
		a.infra.Logger().Info("Application starting",
			zap.String("host", a.config.Server.Host),
			zap.String("port", a.config.Server.Port),
		)

		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.infra.Logger().Error("Server error", zap.Error(err))
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case err := <-errChan:
		a.infra.Logger().Error("Application failed to start", zap.Error(err))
		serverErr = err
	case <-ctx.Done():
		a.infra.Logger().Info("Application stopped by context")
	}

	if err := a.Shutdown(); err != nil {
		a.infra.Logger().Error("Shutdown error", zap.Error(err))
		if serverErr != nil {
			return errors.Join(serverErr, err)
		}
		return err
	}

	return serverErr
}

func (a *App) Shutdown() error {
	a.infra.Logger().Info("Application shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	errs := make(chan error, 2)

	go func() {
		errs <- a.server.Shutdown(ctx)
	}()

	go func() {
		errs <- a.infra.Shutdown(ctx)
	}()

	err := errors.Join(<-errs, <-errs)
	if err != nil {
		a.infra.Logger().Error("Shutdown failed", zap.Error(err))
		return err
	}

	a.infra.Logger().Info("Application exited successfully")
	return nil
}
