package router

import (
	"net/http"

	"github.com/authgate/authgate-server/internal/api/http/handler"
	"github.com/authgate/authgate-server/internal/api/http/middleware"
	"github.com/authgate/authgate-server/internal/logger"
)

// Router registers the authentication endpoints and middleware.
type Router struct {
	authService handler.AuthService
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(authService handler.AuthService, logger *logger.Logger) *Router {
	return &Router{
		authService: authService,
		logger:      logger,
	}
}

// Register builds the HTTP handler with all routes and middleware.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", authHandler.Signup)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("POST /verify-2fa", authHandler.Verify2FA)
	mux.HandleFunc("POST /verify-token", authHandler.VerifyToken)
	mux.HandleFunc("POST /logout", authHandler.Logout)

	logging := middleware.NewLogging(r.logger)

	return logging.Handle(mux)
}
