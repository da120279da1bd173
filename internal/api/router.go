package api

import (
	"embed"
	"net/http"
	"time"

	"algorithm_guessr/internal/api/handler"
	"algorithm_guessr/internal/api/middleware"
	"algorithm_guessr/internal/app/service"
	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed static/index.html static/openapi.yaml
var staticFiles embed.FS

type Services struct {
	Tokens     *security.TokenService
	Auth       *service.AuthService
	Settings   *service.SettingsService
	Admin      *service.AdminService
	Extensions *service.ExtensionService
	Problems   *service.ProblemService
	Quiz       *service.QuizService

	DefaultMinDifficulty int
	DefaultMaxDifficulty int
}

func NewRouter(s Services) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	corsMethods := []string{"GET", "POST", "OPTIONS"}
	corsHeaders := []string{"Authorization", "Content-Type"}
	r.Use(middleware.CORSDefaults(corsMethods, corsHeaders))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     []string{"*"},
		AllowedMethods:     corsMethods,
		AllowedHeaders:     corsHeaders,
		OptionsPassthrough: true,
	}))
	r.Use(middleware.Preflight)

	// Puts the verified token (or the verification error) in the request context.
	r.Use(jwtauth.Verify(s.Tokens.JWTAuth(), middleware.BearerToken))

	notFound := func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithError(w, http.StatusNotFound, common.MsgNotFound)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/", serveStatic("static/index.html", "text/html; charset=utf-8"))
	r.Get("/openapi.yaml", serveStatic("static/openapi.yaml", "application/x-yaml"))
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/openapi.yaml")))

	authHandler := handler.NewAuthHandler(s.Auth, s.Settings)
	accountHandler := handler.NewAccountHandler(s.Settings, s.Extensions)
	quizHandler := handler.NewQuizHandler(s.Quiz, s.Problems, s.DefaultMinDifficulty, s.DefaultMaxDifficulty)
	adminHandler := handler.NewAdminHandler(s.Admin)

	r.Route("/api", func(api chi.Router) {
		api.Group(func(public chi.Router) {
			authHandler.RegisterRoutes(public)
			quizHandler.RegisterPublicRoutes(public)
		})

		api.Group(func(private chi.Router) {
			private.Use(middleware.Authenticator(s.Auth))
			accountHandler.RegisterRoutes(private)
			quizHandler.RegisterRoutes(private)

			private.Route("/admin", func(admin chi.Router) {
				admin.Use(middleware.AdminOnly)
				adminHandler.RegisterRoutes(admin)
			})
		})
	})

	return r
}

func serveStatic(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := staticFiles.ReadFile(name)
		if err != nil {
			common.RespondWithAppError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Write(data)
	}
}
