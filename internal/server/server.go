package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/sweetdelights/backend/internal/auth"
	"github.com/sweetdelights/backend/internal/cart"
	"github.com/sweetdelights/backend/internal/config"
	"github.com/sweetdelights/backend/internal/database"
	"github.com/sweetdelights/backend/internal/events"
	"github.com/sweetdelights/backend/internal/logging"
	"github.com/sweetdelights/backend/internal/middlewares"
	"github.com/sweetdelights/backend/internal/models"
	"github.com/sweetdelights/backend/internal/store"
)

type Server struct {
	router    *gin.Engine
	db        *database.DB
	cfg       *config.Config
	users     *store.UserStore
	sweets    *store.SweetStore
	purchases *store.PurchaseStore
	carts     *cart.Store
	tokens    *auth.Manager
	publisher events.Publisher
	log       *logrus.Logger

	// clock collaborator for analytics windows; overridable in tests
	now func() time.Time
}

// NewServer wires the HTTP layer to its collaborators. publisher may be a
// nil *events.Broker when messaging is disabled.
func NewServer(db *database.DB, cfg *config.Config, publisher events.Publisher) *Server {
	router := gin.Default()
	router.Use(middlewares.PrometheusMiddleware())

	server := &Server{
		router:    router,
		db:        db,
		cfg:       cfg,
		users:     store.NewUserStore(db),
		sweets:    store.NewSweetStore(db),
		purchases: store.NewPurchaseStore(db),
		carts:     cart.NewStore(db),
		tokens:    auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		publisher: publisher,
		log:       logging.GetLogger(),
		now:       time.Now,
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.Static(s.cfg.Uploads.PublicPath, s.cfg.Uploads.Dir)

	api := s.router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", s.register)
		authGroup.POST("/login", s.login)
	}

	authed := api.Group("")
	authed.Use(middlewares.AuthMiddleware(s.tokens))
	admin := middlewares.RequireRole(models.RoleAdmin)
	{
		authed.GET("/auth/profile", s.getProfile)

		authed.GET("/sweets", s.listSweets)
		authed.GET("/sweets/search", s.searchSweets)
		authed.GET("/sweets/user/:userId", s.listUserPurchases)
		authed.POST("/sweets", admin, s.createSweet)
		authed.PUT("/sweets/:id", s.updateSweet)
		authed.DELETE("/sweets/:id", admin, s.deleteSweet)
		authed.POST("/sweets/:id/purchase", s.purchaseSweet)
		authed.POST("/sweets/purchase/bulk", s.purchaseBulk)
		authed.POST("/sweets/:id/restock", admin, s.restockSweet)

		authed.GET("/orders/user/:userId", s.listUserOrders)
		authed.GET("/orders/all", admin, s.listAllOrders)

		authed.GET("/customers", admin, s.listCustomers)

		authed.GET("/cart", s.getCart)
		authed.POST("/cart", s.addToCart)
		authed.PUT("/cart", s.updateCartItem)
		authed.DELETE("/cart", s.clearCart)
		authed.DELETE("/cart/:sweetId", s.removeFromCart)
		authed.POST("/cart/checkout", s.checkoutCart)

		authed.POST("/upload", admin, s.uploadImage)
		authed.DELETE("/upload/:filename", admin, s.deleteImage)
	}
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.db.HealthCheck(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "sweetdelights",
		"version": "0.1.0",
	})
}

// Start starts the HTTP server and blocks until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data, "message": message})
}

func respondCreated(c *gin.Context, data any, message string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data, "message": message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
