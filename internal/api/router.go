package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/todo-sync-be/internal/api/handlers"
	"github.com/isdelr/todo-sync-be/internal/auth"
	"github.com/isdelr/todo-sync-be/internal/logger"
	"github.com/isdelr/todo-sync-be/internal/services"
	"github.com/rs/zerolog"
)

// Deps bundles what the router wires into its handlers.
type Deps struct {
	Users     services.UserServiceProvider
	Tasks     services.TaskServiceProvider
	Assistant services.AssistantServiceProvider
	Store     handlers.Pinger
	Logger    zerolog.Logger

	// Tokens enables token issuing on login when non-nil.
	Tokens *auth.TokenIssuer
	// RequireToken puts every route except register and login behind the
	// bearer-token middleware. Requires Tokens.
	RequireToken bool

	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger(d.Logger))
	r.Use(handlers.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	userHandler := handlers.NewUserHandler(d.Users, d.Tokens)
	taskHandler := handlers.NewTaskHandler(d.Tasks)
	assistantHandler := handlers.NewAssistantHandler(d.Assistant)
	healthHandler := handlers.NewHealthHandler(d.Store)

	r.Get("/", healthHandler.Banner)
	r.Get("/healthz", healthHandler.Ready)

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	r.Group(func(r chi.Router) {
		if d.RequireToken && d.Tokens != nil {
			r.Use(d.Tokens.Middleware())
		}

		r.Post("/change_password", userHandler.ChangePassword)
		r.Post("/change_avatar", userHandler.ChangeAvatar)
		r.Post("/delete_user", userHandler.Delete)

		r.Post("/sync", taskHandler.Sync)
		r.Get("/get_tasks", taskHandler.GetAll)

		r.Post("/smart_parse", assistantHandler.SmartParse)
	})

	return r
}
