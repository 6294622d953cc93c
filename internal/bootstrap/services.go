package bootstrap

import (
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/example/member-portal/config"
	"github.com/example/member-portal/internal/adapters/password"
	postgresadapter "github.com/example/member-portal/internal/adapters/postgres"
	redisadapter "github.com/example/member-portal/internal/adapters/redis"
	"github.com/example/member-portal/internal/domain/auth"
	"github.com/example/member-portal/internal/service"
)

// ServiceContainer holds the application services and the access rule set.
type ServiceContainer struct {
	Auth  *service.AuthService
	Users *service.UserService
	Chat  *service.ChatService
	Rules *auth.Ruleset
}

// ServicesConfig groups dependencies for InitServices.
type ServicesConfig struct {
	Config *config.AppConfig
	Pool   *pgxpool.Pool
	Redis  redis.UniversalClient
	Logger *slog.Logger
}

// InitServices wires the stores and services together.
func InitServices(cfg ServicesConfig) ServiceContainer {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userStore := postgresadapter.NewUserStore(cfg.Pool)
	sessionStore := redisadapter.NewSessionStore(cfg.Redis)
	rememberStore := redisadapter.NewRememberMeStore(cfg.Redis)
	hasher := password.NewBcryptHasher(cfg.Config.Security.BcryptCost)

	authSvc := service.NewAuthService(service.AuthServiceOptions{
		Users:            userStore,
		Sessions:         sessionStore,
		RememberMe:       rememberStore,
		Hasher:           hasher,
		SessionTTL:       cfg.Config.Security.SessionTTL,
		RememberMeWindow: cfg.Config.Security.RememberMeWindow,
		Logger:           logger,
	})

	userSvc := service.NewUserService(service.UserServiceOptions{
		Users:  userStore,
		Hasher: hasher,
	})

	chatSvc := service.NewChatService(service.ChatServiceOptions{
		BackendURL: cfg.Config.Chat.BackendURL,
		Timeout:    cfg.Config.Chat.Timeout,
		Logger:     logger,
	})

	return ServiceContainer{
		Auth:  authSvc,
		Users: userSvc,
		Chat:  chatSvc,
		Rules: AccessRules(),
	}
}

// AccessRules builds the portal's ordered access rule set. The first
// matching rule decides; anything unmatched falls through to the terminal
// deny-all rule.
func AccessRules() *auth.Ruleset {
	return auth.NewRuleset(
		auth.Rule{Path: "/docs", Kind: auth.PermitAll},
		auth.Rule{Path: "/openapi.json", Kind: auth.PermitAll},
		auth.Rule{Path: "/", Kind: auth.PermitAll},
		auth.Rule{Path: "/join", Kind: auth.AnonymousOnly},
		auth.Rule{Path: "/login", Kind: auth.AnonymousOnly},
		auth.Rule{Path: "/user", Kind: auth.RequiresRole, Role: auth.RoleUser},
		auth.Rule{Path: "/admin", Kind: auth.Custom, Predicate: auth.DirectAdmin},
		auth.Rule{Path: "/chat", Kind: auth.RequiresRole, Role: auth.RoleUser},
		auth.Rule{Path: "/api/chat", Kind: auth.RequiresRole, Role: auth.RoleUser},
		// Everything unmatched is denied by the rule set itself.
	)
}
