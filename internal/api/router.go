package api

import (
	"net/http"
	"time"

	"digilocker/internal/api/handler"
	"digilocker/internal/api/middleware"
	"digilocker/internal/app/service"
	"digilocker/internal/common/security"
	"digilocker/internal/domain/authz"
	"digilocker/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	documentService *service.DocumentService,
	userService *service.UserService,
	userRepo repository.UserRepository,
	rateLimiter *middleware.RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	authenticator := middleware.NewAuthenticator(userRepo)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(apiRouter chi.Router) {
		// Auth routes (public, rate limited)
		authHandler := handler.NewAuthHandler(authService)
		apiRouter.Route("/auth", func(publicAuth chi.Router) {
			if rateLimiter != nil {
				publicAuth.Use(rateLimiter.Handler)
			}
			authHandler.RegisterRoutes(publicAuth)
		})

		// Document routes (authenticated, role-gated per group)
		documentHandler := handler.NewDocumentHandler(documentService)
		apiRouter.Route("/documents", func(docs chi.Router) {
			docs.Use(authenticator.Handler)
			documentHandler.RegisterRoutes(docs)
		})

		// User administration routes (admin only)
		userHandler := handler.NewUserHandler(userService)
		apiRouter.Route("/users", func(users chi.Router) {
			users.Use(authenticator.Handler)
			users.Use(middleware.Require(authz.OpListUsers))
			userHandler.RegisterRoutes(users)
		})
	})

	return r
}
