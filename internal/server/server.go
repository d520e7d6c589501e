package server

import (
	"github.com/SNMDESERT/peak-finder/internal/achievement"
	"github.com/SNMDESERT/peak-finder/internal/apperr"
	"github.com/SNMDESERT/peak-finder/internal/auth"
	"github.com/SNMDESERT/peak-finder/internal/booking"
	"github.com/SNMDESERT/peak-finder/internal/catalog"
	"github.com/SNMDESERT/peak-finder/internal/config"
	"github.com/SNMDESERT/peak-finder/internal/invitation"
	"github.com/SNMDESERT/peak-finder/internal/logging"
	"github.com/SNMDESERT/peak-finder/internal/metrics"
	"github.com/SNMDESERT/peak-finder/internal/photo"
	"github.com/SNMDESERT/peak-finder/internal/review"
	"github.com/SNMDESERT/peak-finder/internal/stream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	App          *fiber.App
	Cfg          config.Config
	DB           *pgxpool.Pool
	Redis        *redis.Client
	Log          *zap.Logger
	Stream       *stream.Hub
	Metrics      *metrics.Metrics
	Achievements *achievement.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{ErrorHandler: apperr.Handler(log)})

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Log:     log,
		Stream:  stream.NewHub(redisClient, log.Named("stream")),
		Metrics: metrics.New(),
	}

	app.Use(recover.New())
	app.Use(logging.Middleware(log.Named("http")))
	app.Use(s.Metrics.Middleware())

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	s.App.Get("/metrics", s.Metrics.Handler())

	authSvc := auth.NewService(s.Cfg.JWTSecret, s.DB)
	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	catalogSvc := catalog.NewService(s.DB, s.Redis, s.Cfg.CatalogCacheTTL, s.Log.Named("catalog"))
	s.Achievements = achievement.NewService(s.DB, s.Log.Named("achievement"), s.Metrics, s.Stream)
	bookingSvc := booking.NewService(s.DB, catalogSvc, s.Achievements, s.Stream, s.Metrics, s.Log.Named("booking"),
		booking.Options{GrantOnComplete: s.Cfg.GrantAchievementsOnComplete})
	invitationSvc := invitation.NewService(s.DB, catalogSvc, s.Metrics, s.Log.Named("invitation"))
	reviewSvc := review.NewService(s.DB, catalogSvc, s.Log.Named("review"))
	photoSvc := photo.NewService(s.DB, catalogSvc, s.Log.Named("photo"))

	api := s.App.Group("/api")
	user := api.Group("/user")
	trips := api.Group("/trips")

	auth.RegisterRoutes(api.Group("/auth"), authSvc, jwtMiddleware)
	catalog.RegisterRoutes(api.Group("/regions"), trips, catalogSvc)
	photo.RegisterRoutes(trips, api.Group("/photos"), photoSvc, jwtMiddleware)
	achievement.RegisterRoutes(api.Group("/achievements"), user, s.Achievements, jwtMiddleware)
	booking.RegisterRoutes(user, bookingSvc, jwtMiddleware)
	invitation.RegisterRoutes(api.Group("/invitations"), user, invitationSvc, jwtMiddleware)
	review.RegisterRoutes(api.Group("/reviews"), reviewSvc, jwtMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream, authSvc)
}
