// Package devserver is an in-memory stand-in for the campus backend. It serves
// the same auth and cafeteria endpoints so the CLI and the client tests can
// run without a database.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"sigma_app/internal/catalog"
	"sigma_app/platform/config"
	"sigma_app/platform/httpkit"
	"sigma_app/platform/logger"
	"sigma_app/platform/validator"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	authRatePerMinute = 30
	authBurst         = 10
	shutdownTimeout   = 10 * time.Second
)

type Server struct {
	cfg   config.DevServerConfig
	store *store
	val   *validator.Validator
	log   *logger.Logger
}

// New seeds a server from cat. A nil catalog starts with no cafeterias.
func New(cfg config.DevServerConfig, cat *catalog.Catalog, log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	val := validator.New()
	if err := val.RegisterValidation(tagUserType, validUserType); err != nil {
		panic(err)
	}
	return &Server{
		cfg:   cfg,
		store: newStore(cat),
		val:   val,
		log:   log,
	}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(s.log))
	engine.Use(cors.New(corsConfig(s.cfg.GetAllowOrigins())))

	engine.GET("/health", health)

	authLimiter := httpkit.NewAuthRateLimiter(authRatePerMinute, authBurst, s.log)
	authGroup := engine.Group("/auth", authLimiter.RateLimit())
	authGroup.POST("/signup", s.signUp)
	authGroup.POST("/login", s.login)
	engine.GET("/auth/me", httpkit.RequireAccessToken(s.cfg.GetDevJWTSecret()), s.me)

	engine.GET("/cafeterias", s.listCafeterias)
	engine.GET("/menus", s.listMenus)
	engine.POST("/menus", s.upsertMenu)

	return engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.GetDevAddr(),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		s.log.Info("dev server listening", "addr", srv.Addr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.log.Error("server error", "error", err)
		return err
	}
}

// corsConfig allows every origin when the list is empty or contains "*".
// Credentials are only allowed for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", httpkit.HeaderRequestID)
	cfg.ExposeHeaders = []string{httpkit.HeaderRequestID}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
