// @title          Adote Fácil API
// @version        1.0
// @description    Adopción de animales: cuentas, anuncios y chats entre owner e interesado.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pg "adote-facil/internal/adapters/storage/postgres"
	"adote-facil/internal/platform/config"
	"adote-facil/internal/platform/logger"
	"adote-facil/internal/router"

	"github.com/spf13/pflag"
)

func main() {
	var (
		configPath = pflag.String("config", os.Getenv("CONFIG_FILE"), "ruta a un archivo YAML de configuración")
		port       = pflag.String("port", "", "puerto HTTP (pisa PORT)")
		devAuth    = pflag.Bool("dev-auth", false, "acepta el header X-Debug-User-ID (solo desarrollo)")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewFromEnv().Error("config load failed", map[string]any{"err": err})
		os.Exit(1)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if pflag.CommandLine.Changed("dev-auth") {
		cfg.DevAuth = *devAuth
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", map[string]any{"err": err})
		os.Exit(1)
	}

	opts := router.Options{Config: cfg, Logger: log}

	if cfg.DatabaseDSN != "" {
		db, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Error("postgres migrate failed", map[string]any{"err": err})
			os.Exit(1)
		}
		opts.DB = db
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	if cfg.DevAuth {
		log.Warn("dev auth enabled: X-Debug-User-ID is trusted", nil)
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		log.Error("router init failed", map[string]any{"err": err})
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err})
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", map[string]any{"err": err})
	}
}
