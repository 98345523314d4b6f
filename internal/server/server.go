package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shinyyama/skillswap-backend/internal/auth"
	"github.com/shinyyama/skillswap-backend/internal/config"
	"github.com/shinyyama/skillswap-backend/internal/handler"
	appmw "github.com/shinyyama/skillswap-backend/internal/middleware"
	"github.com/shinyyama/skillswap-backend/internal/ratelimit"
	"github.com/shinyyama/skillswap-backend/internal/repository"
	"github.com/shinyyama/skillswap-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e     *echo.Echo
	repos []repository.DBSetter
	db    *gorm.DB
	ready atomic.Bool
	sha   string
	build string
}

// New wires every route. db may be nil; API routes answer 503 until SetDB is called.
func New(cfg *config.Config, db *gorm.DB, verifier auth.Verifier, limiter ratelimit.Limiter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.Recover())
	e.Use(appmw.RequestID())
	e.Use(appmw.RequestLogger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		AllowOriginFunc:  originAllowed(cfg.AllowedOrigins),
	}))

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	exchangeRepo := repository.NewExchangeRequestRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	userSvc := service.NewUserService(userRepo, ratingRepo)
	userHandler := handler.NewUserHandler(userSvc)

	categoryHandler := handler.NewCategoryHandler(service.NewCategoryService(categoryRepo))
	skillHandler := handler.NewSkillHandler(service.NewSkillService(skillRepo, categoryRepo))
	exchangeHandler := handler.NewExchangeHandler(service.NewExchangeService(exchangeRepo, skillRepo, userRepo))
	messageHandler := handler.NewMessageHandler(service.NewMessageService(messageRepo, userRepo, exchangeRepo))
	ratingHandler := handler.NewRatingHandler(service.NewRatingService(ratingRepo, exchangeRepo))
	notificationHandler := handler.NewNotificationHandler(service.NewNotificationService(notificationRepo))

	s := &Server{
		e:     e,
		repos: []repository.DBSetter{userRepo, categoryRepo, skillRepo, exchangeRepo, messageRepo, ratingRepo, notificationRepo},
		sha:   cfg.GitSHA,
		build: cfg.BuildTime,
	}
	if db != nil {
		s.SetDB(db)
	}

	e.GET("/healthz", s.health)

	authMw := appmw.NewAuthMiddleware(verifier, userSvc)
	requireAuth := authMw.RequireAuth
	limit := func(action string) echo.MiddlewareFunc {
		return appmw.RateLimit(limiter, action)
	}

	api := e.Group("/api", s.requireDB)

	api.GET("/auth/user", userHandler.Me, requireAuth)
	api.PUT("/auth/user", userHandler.UpdateMe, requireAuth)

	api.GET("/users", userHandler.List)
	api.GET("/users/:userId", userHandler.GetPublic)
	api.GET("/users/:userId/exchange-requests", exchangeHandler.History)
	api.GET("/users/:userId/skills", skillHandler.ListByUser)
	api.GET("/users/:userId/ratings", ratingHandler.ListForUser)
	api.GET("/users/:userId/average-rating", ratingHandler.Average)

	api.GET("/skill-categories", categoryHandler.List)
	api.POST("/admin/seed-categories", categoryHandler.Seed, requireAuth, appmw.RequireAdmin(cfg.IsAdmin))

	api.GET("/skills", skillHandler.List)
	api.GET("/skills/:id", skillHandler.Get)
	api.POST("/skills", skillHandler.Create, requireAuth)
	api.PUT("/skills/:id", skillHandler.Update, requireAuth)
	api.DELETE("/skills/:id", skillHandler.Delete, requireAuth)

	api.GET("/exchange-requests", exchangeHandler.List, requireAuth)
	api.GET("/exchange-requests/:id", exchangeHandler.Get, requireAuth)
	api.POST("/exchange-requests", exchangeHandler.Create, requireAuth, limit("exchange_requests"))
	api.PUT("/exchange-requests/:id/status", exchangeHandler.UpdateStatus, requireAuth)
	api.DELETE("/exchange-requests/:id", exchangeHandler.Withdraw, requireAuth)

	api.GET("/conversations", messageHandler.Conversations, requireAuth)
	api.GET("/messages/:userId", messageHandler.Transcript, requireAuth)
	api.POST("/messages", messageHandler.Send, requireAuth, limit("messages"))
	api.PUT("/messages/:senderId/read", messageHandler.MarkRead, requireAuth)

	api.POST("/ratings", ratingHandler.Create, requireAuth, limit("ratings"))

	api.GET("/notifications", notificationHandler.List, requireAuth)
	api.PUT("/notifications/read", notificationHandler.MarkAllRead, requireAuth)
	api.PUT("/notifications/:id/read", notificationHandler.MarkRead, requireAuth)

	return s
}

// originAllowed accepts localhost on any port plus the configured origins. An entry starting with
// a dot matches any subdomain, e.g. ".vercel.app".
func originAllowed(allowed []string) func(string) (bool, error) {
	return func(origin string) (bool, error) {
		low := strings.ToLower(origin)
		if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
			strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
			return true, nil
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false, nil
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return false, nil
		}
		host := u.Hostname()
		for _, a := range allowed {
			a = strings.ToLower(strings.TrimSpace(a))
			if a == "" {
				continue
			}
			if strings.HasPrefix(a, ".") && strings.HasSuffix(host, a) {
				return true, nil
			}
			if a == low || a == host {
				return true, nil
			}
		}
		return false, nil
	}
}

func (s *Server) requireDB(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.ready.Load() {
			return c.JSON(http.StatusServiceUnavailable, handler.NewErrorResponse("service_unavailable", "database not ready"))
		}
		return next(c)
	}
}

func (s *Server) health(c echo.Context) error {
	dbStatus := "starting"
	if s.ready.Load() {
		dbStatus = "ok"
		if sqlDB, err := s.db.DB(); err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			dbStatus = "unreachable"
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"ok":         "true",
		"db":         dbStatus,
		"git_sha":    s.sha,
		"build_time": s.build,
	})
}

func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// SetDB injects the connection into every repository, then opens the API.
func (s *Server) SetDB(db *gorm.DB) {
	for _, r := range s.repos {
		r.SetDB(db)
	}
	s.db = db
	s.ready.Store(db != nil)
}
