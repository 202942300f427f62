// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, authentication, panic
// recovery, metrics, CORS, security headers, idempotency, and rate limiting.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/huntschedule/huntschedule-api/docs"
	"github.com/huntschedule/huntschedule-api/internal/config"
	"github.com/huntschedule/huntschedule-api/internal/domain"
	"github.com/huntschedule/huntschedule-api/internal/http/handlers"
	"github.com/huntschedule/huntschedule-api/internal/http/middleware"
	"github.com/huntschedule/huntschedule-api/internal/repo"
	"github.com/huntschedule/huntschedule-api/internal/services"
)

// userRepoShim adapts the repository free functions to the
// services.UserRepo interface expected by AuthService and UserService.
type userRepoShim struct{}

func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return repo.CreateUser(ctx, db, u)
}

func (userRepoShim) GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	return repo.GetUser(ctx, db, id)
}

func (userRepoShim) GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	return repo.GetUserByUsername(ctx, db, username)
}

func (userRepoShim) ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	return repo.ListUsers(ctx, db)
}

func (userRepoShim) UpdateUserRole(ctx context.Context, db *gorm.DB, id uint, role string) error {
	return repo.UpdateUserRole(ctx, db, id, role)
}

// Deps carries the collaborators built outside the HTTP layer.
type Deps struct {
	// Lookup verifies characters and lists worlds (normally *tibia.Validator).
	Lookup handlers.CharacterLookup
	// Notifier receives approval and rejection notifications; may be nil.
	Notifier services.Notifier
}

// RegisterRoutes attaches all middleware and HTTP endpoints to r.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Authenticate: optional bearer token, adds the caller to the logger
//  5. Recovery: capture panics after logger
//  6. Body size limiter
//  7. Metrics
//  8. Idempotency validator (before rate limiter to allow bypass on replay)
//  9. Rate limiter (per user/IP, bypass on replay)
//  10. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	authSvc := services.NewAuthService(db, userRepoShim{}, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.BcryptCost)

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{middleware.HeaderIdempotencyKey},
	}))
	r.Use(middleware.Authenticate(func(token string) (uint, string, error) {
		a, err := authSvc.Parse(token)
		return a.ID, a.Role, err
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(1 << 20))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiBase := cfg.APIBasePath
	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{
			MaxLen: 200,
			Scope: middleware.ScopeByRoute(map[string]string{
				http.MethodPost + " " + joinPath(apiBase, "/requests"): services.ScopeCreateRequest,
			}),
		},
		func(ctx context.Context, userID uint, scope, key string, now time.Time) (bool, error) {
			rec, err := repo.GetIdempotency(ctx, db, userID, scope, key, now)
			if err != nil || rec == nil {
				return false, nil
			}
			return true, nil
		},
	))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)

	// Security headers (HSTS only when enabled and request is HTTPS).
	// NoStore stays off so list ETags can be revalidated.
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", health(db))
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/validator/notifier
	reqSvc := services.NewRequestService(db, deps.Lookup, deps.Notifier)
	if cfg.Notify.DefaultLanguage != "" {
		reqSvc.DefaultLanguage = cfg.Notify.DefaultLanguage
	}
	if cfg.IdempotencyTTL > 0 {
		reqSvc.IdempotencyTTL = cfg.IdempotencyTTL
	}
	h := handlers.New(handlers.Deps{
		Auth:       authSvc,
		Users:      &services.UserService{DB: db, Repo: userRepoShim{}},
		Characters: services.NewCharacterService(db, deps.Lookup),
		Requests:   reqSvc,
		Points:     services.NewPointService(db),
		Lookup:     deps.Lookup,
	})
	catalog := services.NewCatalog(db)

	api := groupWithPrefix(r, apiBase)
	api.Use(gzip.Gzip(gzip.DefaultCompression))

	authed := api.Group("", middleware.RequireAuth())
	admin := api.Group("", middleware.RequireRole(domain.RoleAdmin))
	{
		// Auth and users
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		authed.GET("/users/me", h.Me)
		admin.GET("/users", h.ListUsers)
		admin.PUT("/users/:id/role", h.SetUserRole)

		// Reference data
		handlers.NewCatalogHandler(catalog.Servers, nil).Mount(api, admin, "/servers")
		handlers.NewCatalogHandler(catalog.Difficulties, nil).Mount(api, admin, "/difficulties")
		handlers.NewCatalogHandler(catalog.Respawns, handlers.FilterByServer).Mount(api, admin, "/respawns")
		handlers.NewCatalogHandler(catalog.Slots, nil).Mount(api, admin, "/slots")
		handlers.NewCatalogHandler(catalog.Periods, handlers.FilterByActive).Mount(api, admin, "/schedule-periods")
		handlers.NewCatalogHandler(catalog.Statuses, nil).Mount(api, admin, "/request-statuses")

		// Characters
		authed.GET("/characters", h.ListCharacters)
		authed.GET("/characters/:id", h.GetCharacter)
		authed.POST("/characters", h.CreateCharacter)
		authed.PUT("/characters/:id", h.UpdateCharacter)
		authed.PUT("/characters/:id/main", h.SetMainCharacter)
		authed.DELETE("/characters/:id", h.DeleteCharacter)

		// Requests
		authed.POST("/requests", h.CreateRequest)
		authed.GET("/requests", h.ListRequests)
		authed.GET("/requests/:id", h.GetRequest)
		admin.PATCH("/requests/:id/status", h.UpdateRequestStatus)
		authed.POST("/requests/:id/cancel", h.CancelRequest)
		authed.DELETE("/requests/:id", h.DeleteRequest)

		// Points
		authed.POST("/point-claims", h.CreateClaim)
		authed.GET("/point-claims", h.ListClaims)
		admin.POST("/point-claims/:id/review", h.ReviewClaim)
		admin.POST("/point-transactions", h.AwardPoints)
		authed.GET("/point-transactions", h.ListTransactions)

		// Tibia lookups
		authed.GET("/tibia/characters/:name", h.LookupCharacter)
		authed.GET("/tibia/worlds", h.ListWorlds)
	}
}

// corsMiddleware returns the CORS chain: allow-all when no origins are
// configured, otherwise an allowlist that echoes the matching Origin.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	methods := []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	headers := []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey}
	expose := []string{"X-Request-ID", "Content-Length", "ETag", middleware.HeaderIdempotencyReplayed}

	if len(origins) == 0 {
		return []gin.HandlerFunc{
			// Force ACAO: * even without an Origin header (health checks, curl).
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(cors.Config{
				AllowAllOrigins:  true,
				AllowMethods:     methods,
				AllowHeaders:     headers,
				ExposeHeaders:    expose,
				AllowCredentials: false, // must remain false with AllowAllOrigins
				MaxAge:           12 * time.Hour,
			}),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins:     origins,
			AllowMethods:     methods,
			AllowHeaders:     headers,
			ExposeHeaders:    expose,
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
	}
}

// health reports liveness plus database reachability.
func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("health: database unreachable")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}

// limitBody caps request bodies at maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

// joinPath builds the full route template gin reports via c.FullPath().
func joinPath(prefix, path string) string {
	return strings.TrimSuffix(prefix, "/") + path
}
