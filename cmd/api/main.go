package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-shopkeeper/internal/config"
	"go-shopkeeper/internal/event"
	"go-shopkeeper/internal/handler"
	"go-shopkeeper/internal/otp"
	"go-shopkeeper/internal/repository"
	"go-shopkeeper/internal/service"
	"go-shopkeeper/internal/ws"
	"go-shopkeeper/pkg/database"
	"go-shopkeeper/pkg/jwt"
	applog "go-shopkeeper/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

func main() {
	// 1. Load config (.env, then environment)
	envErr := config.LoadEnvFiles()
	cfg, err := config.FromEnv(viper.New())
	if err != nil {
		bootLog := applog.New("info", true)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := applog.New(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Warn().Err(envErr).Msg(".env file not found, relying on system env")
	}

	// 2. Setup Database
	db, err := database.Connect(database.Options{
		DSN:             cfg.DSN(),
		MaxIdleConns:    cfg.DbMaxIdleConns,
		MaxOpenConns:    cfg.DbMaxOpenConns,
		ConnMaxLifetime: cfg.DbConnMaxLifetime,
		Logger:          log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if cfg.AutoMigrate {
		if err := database.MigrateUp(cfg.MigrationURL()); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
	}

	tokens, err := jwt.NewManager(cfg.JWTSecretOrDefault(), cfg.JWTTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid jwt settings")
	}

	// 3. OTP
	var otpService otp.Service = otp.PhoneSuffix{}
	if cfg.OTPMode == config.OTPModeRedis {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		otpService = otp.NewRedisStore(rdb, otp.LogSender{Log: log}, cfg.OTPTTL)
	} else {
		log.Warn().Msg("OTP_MODE=phone-suffix: the last four digits of the phone number are accepted as OTP")
	}

	// 4. Setup WebSocket Hub and event sinks
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)

	sinks := event.Multi{wsHub}
	if brokers := cfg.KafkaBrokerList(); len(brokers) > 0 {
		kafkaPub := event.NewKafkaPublisher(brokers, cfg.KafkaTopic)
		defer kafkaPub.Close()
		sinks = append(sinks, kafkaPub)
		log.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaTopic).Msg("publishing events to kafka")
	}
	events := event.NewAsync(sinks, log)

	// 5. Dependency Injection (Wiring Layers)
	accountRepo := repository.NewAccountRepo(db)
	shopRepo := repository.NewShopRepo(db)
	itemRepo := repository.NewItemRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	priceRepo := repository.NewPriceRepo(db)
	billRepo := repository.NewBillRepo(db)

	authService := service.NewAuthService(accountRepo, shopRepo, otpService, tokens, log)
	shopService := service.NewShopService(db, accountRepo, shopRepo)
	itemService := service.NewItemService(db, itemRepo, shopRepo, events)
	customerService := service.NewCustomerService(customerRepo, shopRepo, events)
	billingService := service.NewBillingService(db, shopRepo, itemRepo, customerRepo, priceRepo, billRepo, events)
	dashService := service.NewDashboardService(shopRepo, billRepo)

	h := handlers{
		auth:      handler.NewAuthHandler(authService, log),
		shop:      handler.NewShopHandler(shopService, log),
		item:      handler.NewItemHandler(itemService, log),
		customer:  handler.NewCustomerHandler(customerService, log),
		bill:      handler.NewBillHandler(billingService, log),
		dashboard: handler.NewDashboardHandler(dashService, log),
		ws:        handler.NewWSHandler(wsHub, shopService, log),
		health:    handler.NewHealthHandler(func(ctx context.Context) error { return database.Ping(ctx, db) }, cfg.AppName),
	}

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ErrorHandler: handler.ErrorHandler(log),
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOriginList(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// 7. Routes
	registerRoutes(app, h, tokens, cfg.AuthRateLimit)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	stop()
	<-wsHub.Done()
	log.Info().Msg("Server exited")
}

