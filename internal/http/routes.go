package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/member-portal/internal/domain/auth"
	"github.com/example/member-portal/internal/service"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth  *service.AuthService
	Users *service.UserService
	Chat  *service.ChatService
	Rules *auth.Ruleset

	CookieDomain     string
	CSRFExemptPaths  []string
	RememberMeWindow time.Duration

	Logger *slog.Logger
}

// NewRouter builds the application handler: the page and API routes
// wrapped by the security chain and CSRF protection. Request logging and
// panic recovery are applied by the caller around the returned handler.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templates, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	renderer, err := NewTemplateRenderer(templates, logger)
	if err != nil {
		return nil, err
	}

	pages := &PageHandlers{T: renderer}
	join := &JoinHandlers{Users: services.Users, T: renderer, Logger: logger}
	chat := &ChatHandlers{Svc: services.Chat}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", pages.Home)
	mux.HandleFunc("GET /login", pages.LoginPage)
	mux.HandleFunc("GET /join", join.JoinPage)
	mux.HandleFunc("POST /join", join.JoinSubmit)
	mux.HandleFunc("GET /user", pages.UserPage)
	mux.HandleFunc("GET /admin", pages.AdminPage)
	mux.HandleFunc("GET /chat", pages.ChatPage)
	mux.HandleFunc("POST /api/chat", chat.Chat)
	mux.HandleFunc("GET /docs", Docs)
	mux.HandleFunc("GET /openapi.json", OpenAPI)

	// POST /login and POST /logout never reach the mux; the security chain
	// terminates them itself.
	var handler http.Handler = mux
	handler = SecurityChain(SecurityConfig{
		Auth:             services.Auth,
		Rules:            services.Rules,
		RememberMeWindow: services.RememberMeWindow,
		Logger:           logger,
	})(handler)
	handler = CSRFProtection(CSRFConfig{
		CookieDomain: services.CookieDomain,
		ExemptPaths:  services.CSRFExemptPaths,
	})(handler)

	return handler, nil
}
