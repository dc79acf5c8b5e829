package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"cowork/config"
	"cowork/cron"
	"cowork/database"
	favoriteRepo "cowork/database/repository/favorite"
	"cowork/database/repository/memstore"
	reservationRepo "cowork/database/repository/reservation"
	spaceRepo "cowork/database/repository/space"
	userRepoPkg "cowork/database/repository/user"
	"cowork/handlers"
	"cowork/routes"
	"cowork/services/auth"
	"cowork/services/favorite"
	"cowork/services/notification"
	"cowork/services/reservation"
	"cowork/services/space"
	"cowork/services/tasks"
	"cowork/utils"

	"github.com/hibiken/asynq"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const memoryDatabaseURL = "memory://"

type repositories struct {
	users        userRepoPkg.UserRepository
	spaces       spaceRepo.SpaceRepository
	reservations reservationRepo.ReservationRepository
	favorites    favoriteRepo.FavoriteRepository
}

// openRepositories connects to MongoDB, or keeps everything in memory when
// DATABASE_URL is memory://.
func openRepositories(checks map[string]utils.HealthCheck) (*repositories, error) {
	if strings.HasPrefix(config.AppConfig.DatabaseURL, memoryDatabaseURL) {
		utils.GetLogger().Warn("main: using in-memory store; data is lost on exit")
		store := memstore.New()
		return &repositories{
			users:        store.Users(),
			spaces:       store.Spaces(),
			reservations: store.Reservations(),
			favorites:    store.Favorites(),
		}, nil
	}

	if err := database.InitDB(); err != nil {
		return nil, err
	}
	checks["mongo"] = func(ctx context.Context) error {
		return database.MongoClient.Ping(ctx, nil)
	}

	db := database.Database()
	users, err := userRepoPkg.NewMongoUserRepo(db)
	if err != nil {
		return nil, err
	}
	spaces, err := spaceRepo.NewMongoSpaceRepo(db)
	if err != nil {
		return nil, err
	}
	reservations, err := reservationRepo.NewMongoReservationRepo(db)
	if err != nil {
		return nil, err
	}
	favorites, err := favoriteRepo.NewMongoFavoriteRepo(db)
	if err != nil {
		return nil, err
	}
	return &repositories{users: users, spaces: spaces, reservations: reservations, favorites: favorites}, nil
}

func newNotifier() (notification.Notifier, error) {
	cfg := config.AppConfig
	if strings.EqualFold(cfg.Notifier, "log") {
		return notification.LogNotifier{}, nil
	}
	return notification.NewSMTPNotifier(notification.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPEmail,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	cfg := config.AppConfig
	if cfg.JWTSecret == "" {
		logger.Fatal("main: JWT_SECRET must be set")
	}

	rootCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()

	healthChecks := map[string]utils.HealthCheck{}
	repos, err := openRepositories(healthChecks)
	if err != nil {
		logger.Fatal("main: failed to open repositories", zap.Error(err))
	}

	notifier, err := newNotifier()
	if err != nil {
		logger.Fatal("main: failed to configure notifier", zap.Error(err))
	}

	// Reminders are optional; without Redis the API still serves every route.
	var (
		reminders   reservation.ReminderScheduler
		queueClient *asynq.Client
		worker      *asynq.Server
	)
	if err := utils.InitRedis(); err != nil {
		logger.Warn("main: Redis unavailable, reservation reminders disabled", zap.Error(err))
	} else {
		healthChecks["redis"] = utils.RedisPing(utils.RedisClient)
		redisOpts := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisQueueDB,
		}
		queueClient = asynq.NewClient(redisOpts)
		reminders = tasks.NewAsynqReminderScheduler(queueClient, cfg.ReminderLead())
		worker = cron.InitReminderWorker(redisOpts, cron.ReminderDeps{
			Reservations: repos.reservations,
			Users:        repos.users,
			Notifier:     notifier,
		})
	}
	utils.StartHealthMonitor(rootCtx, 30*time.Second, healthChecks)

	// services.
	authService, err := auth.NewDefaultAuthService(repos.users, notifier, auth.Options{
		OTPWindow:     cfg.OTPWindow(),
		Secret:        []byte(cfg.JWTSecret),
		SessionTTL:    cfg.SessionTTL(),
		CookieTTL:     cfg.SessionCookieTTL(),
		SecureCookies: config.IsProduction(),
	})
	if err != nil {
		logger.Fatal("main: failed to initialize auth service", zap.Error(err))
	}
	spaceService, err := space.NewDefaultSpaceService(repos.spaces, repos.reservations, repos.favorites)
	if err != nil {
		logger.Fatal("main: failed to initialize space service", zap.Error(err))
	}
	reservationService, err := reservation.NewDefaultReservationService(repos.reservations, repos.spaces, reminders)
	if err != nil {
		logger.Fatal("main: failed to initialize reservation service", zap.Error(err))
	}
	favoriteService, err := favorite.NewDefaultFavoriteService(repos.favorites, repos.spaces)
	if err != nil {
		logger.Fatal("main: failed to initialize favorite service", zap.Error(err))
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthService:  authService,
		Auth:         handlers.NewAuthHandler(authService),
		Spaces:       handlers.NewSpaceHandler(spaceService),
		Reservations: handlers.NewReservationHandler(reservationService),
		Favorites:    handlers.NewFavoriteHandler(favoriteService),
	}

	router, err := routes.SetupRouter(handlerBundle, routes.RouterOptions{
		AllowedOrigins:    cfg.AllowedOrigins(),
		MaxRequestsPerMin: cfg.MaxRequestsPerMin,
		TrustedProxies:    cfg.TrustedProxyList(),
	})
	if err != nil {
		logger.Fatal("main: failed to build router", zap.Error(err))
	}

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "5003"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           otelhttp.NewHandler(router, "cowork-api"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("main: starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stopMonitor()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close queue client", zap.Error(err))
		}
	}
	if utils.RedisClient != nil {
		_ = utils.RedisClient.Close()
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
