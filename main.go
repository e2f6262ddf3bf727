// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/nphn2028thief/shoes-store-server/config"
	"github.com/nphn2028thief/shoes-store-server/controllers"
	"github.com/nphn2028thief/shoes-store-server/middleware"
	"github.com/nphn2028thief/shoes-store-server/routes"
	"github.com/nphn2028thief/shoes-store-server/store/mongostore"
	"github.com/nphn2028thief/shoes-store-server/utils"
)

func main() {
	logger := newLogger(os.Getenv("LOG_LEVEL"))

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("No .env file found. Proceeding with environment variables.")
	}
	cfg := config.Load()
	logger = newLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongostore.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("disconnect MongoDB")
		}
	}()

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = mongostore.EnsureIndexes(ctx, client)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("ensure indexes")
	}

	stores := mongostore.New(client)
	tokens := utils.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret)
	mailer, err := utils.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailSender)
	if err != nil {
		logger.Fatal().Err(err).Msg("build mailer")
	}

	auth := middleware.NewAuth(tokens, stores.Accounts)
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger(logger))
	routes.RegisterRoutes(router, auth, routes.Controllers{
		Auth:            controllers.NewAuthController(stores.Accounts, stores.Addresses, tokens, mailer, logger),
		Cart:            controllers.NewCartController(stores.Carts, logger),
		Category:        controllers.NewCategoryController(stores, logger),
		Product:         controllers.NewProductController(stores, cfg.UploadDir, logger),
		Order:           controllers.NewOrderController(stores, logger),
		ShippingAddress: controllers.NewShippingAddressController(stores, logger),
	}, cfg.UploadDir)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("server stopped")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
