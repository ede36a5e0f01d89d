package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"festx/config"
	"festx/infrastructure"
	"festx/internal/auth"
	"festx/internal/chatbot"
	"festx/internal/dashboard"
	"festx/internal/events"
	"festx/internal/notifications"
	"festx/internal/quizzes"
	"festx/internal/tickets"
)

const requestsPerSecond = 10

type Handlers struct {
	Auth          *auth.JSONHandler
	Events        *events.Handler
	Tickets       *tickets.Handler
	Quizzes       *quizzes.Handler
	Notifications *notifications.Handler
	Dashboard     *dashboard.Handler
	Chatbot       *chatbot.Handler
}

type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

func NewServer(cfg *config.Config, logger zerolog.Logger, h Handlers) *Server {
	router := mux.NewRouter()
	router.Use(RequestLogger(logger))
	router.Use(Recoverer(logger))
	router.Use(RateLimitMiddleware(requestsPerSecond))

	router.HandleFunc("/health", healthCheck).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	auth.SetupJSONAuthRoutes(apiRouter, h.Auth)
	events.SetupEventRoutes(apiRouter, h.Events, h.Auth.RequireAuth)
	tickets.SetupTicketRoutes(apiRouter, h.Tickets, h.Auth.RequireAuth)
	quizzes.SetupQuizRoutes(apiRouter, h.Quizzes, h.Auth.RequireAuth)
	notifications.SetupNotificationRoutes(apiRouter, h.Notifications, h.Auth.RequireAuth)
	dashboard.SetupDashboardRoutes(apiRouter, h.Dashboard, h.Auth.RequireAuth)
	chatbot.SetupChatbotRoutes(apiRouter, h.Chatbot, h.Auth.RequireAuth, h.Auth.OptionalAuth)

	// Credentials must be allowed for the session cookie to travel.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	return &Server{
		httpServer: configureHTTPServer(":"+cfg.Port, corsHandler),
		logger:     logger,
	}
}

func configureHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}

func (s *Server) Run() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting http server")
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	infrastructure.WriteJSON(w, http.StatusOK, infrastructure.Response{
		Success: true,
		Message: "ok",
	})
}
