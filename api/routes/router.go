package routes

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/storescouthq/storescout-backend/api/controllers"
	"github.com/storescouthq/storescout-backend/api/middleware"
	"github.com/storescouthq/storescout-backend/internal/auth"
	"github.com/storescouthq/storescout-backend/internal/hearts"
	"github.com/storescouthq/storescout-backend/internal/photos"
	"github.com/storescouthq/storescout-backend/internal/rankings"
	"github.com/storescouthq/storescout-backend/internal/reviews"
	"github.com/storescouthq/storescout-backend/internal/stores"
	"github.com/storescouthq/storescout-backend/internal/users"
	"github.com/storescouthq/storescout-backend/pkg/auth/session"
	"github.com/storescouthq/storescout-backend/pkg/config"
	"github.com/storescouthq/storescout-backend/pkg/logger"
	"github.com/storescouthq/storescout-backend/pkg/metrics"
	"github.com/storescouthq/storescout-backend/pkg/redis"
)

// Deps bundles everything the router needs so NewRouter stays readable.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DBPinger       controllers.Pinger
	RedisClient    *redis.Client
	SessionManager session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	Registry       *prometheus.Registry

	AuthService          auth.Service
	RegisterService      auth.RegisterService
	PasswordResetService auth.PasswordResetService
	UsersService         users.Service
	StoresService        stores.Service
	ReviewsService       reviews.Service
	HeartsService        hearts.Service
	RankingsService      rankings.Service
	PhotosService        photos.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var redisPinger controllers.Pinger
	if deps.RedisClient != nil {
		redisPinger = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DBPinger, redisPinger, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	// resized photos are served straight off disk
	uploadsDir := strings.TrimPrefix(cfg.Uploads.Dir, "./")
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/forgot", controllers.AuthForgotPassword(deps.PasswordResetService, logg))
		r.Post("/reset", controllers.AuthResetPassword(deps.PasswordResetService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/stores", controllers.StoreList(deps.StoresService, logg))
		r.Get("/stores/search", controllers.StoreSearch(deps.StoresService, logg))
		r.Get("/stores/near", controllers.StoreNear(deps.StoresService, logg))
		r.Get("/stores/slug/{slug}", controllers.StoreBySlug(deps.StoresService, deps.ReviewsService, logg))
		r.Get("/stores/{storeId}/reviews", controllers.ReviewList(deps.ReviewsService, logg))
		r.Get("/tags", controllers.TagsList(deps.RankingsService, logg))
		r.Get("/top", controllers.TopStores(deps.RankingsService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

			r.Post("/auth/logout", controllers.AuthLogout(deps.AuthService, logg))

			r.Route("/account", func(r chi.Router) {
				r.Get("/", controllers.AccountMe(deps.UsersService, logg))
				r.Put("/", controllers.AccountUpdate(deps.UsersService, deps.PhotosService, cfg.Uploads, logg))
			})

			r.Post("/stores", controllers.StoreCreate(deps.StoresService, deps.PhotosService, cfg.Uploads, logg))
			r.Get("/stores/mine", controllers.StoresMine(deps.StoresService, logg))
			r.Put("/stores/{storeId}", controllers.StoreUpdate(deps.StoresService, deps.PhotosService, cfg.Uploads, logg))
			r.Post("/stores/{storeId}/reviews", controllers.ReviewCreate(deps.ReviewsService, logg))
			r.Post("/stores/{storeId}/heart", controllers.HeartToggle(deps.HeartsService, logg))
			r.Get("/hearts", controllers.HeartedStores(deps.HeartsService, logg))
		})
	})

	return r
}
