package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
	"github.com/iliyamo/fyyur/internal/queue"
	"github.com/iliyamo/fyyur/internal/repository"
	"github.com/iliyamo/fyyur/internal/router"
	queue_publisher "github.com/iliyamo/fyyur/internal/service"
	"github.com/iliyamo/fyyur/internal/showtime"
	"github.com/iliyamo/fyyur/internal/web"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, e, cfg); err != nil {
		e.Logger.Fatal(err)
	}
}

func run(ctx context.Context, e *echo.Echo, cfg config.Config) error {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, e.Logger); err != nil {
		return err
	}

	rdb := config.NewRedisClient(ctx)
	if rdb == nil {
		e.Logger.Warn("redis unavailable: page cache off, rate limiter in-process")
	} else {
		defer rdb.Close()
	}

	events := queue_publisher.New(cfg.Queue, e.Logger)
	if cfg.Queue.Enabled {
		go queue.NewActivityConsumer(cfg.Queue, e.Logger).Run(ctx)
	}

	renderer, err := handler.NewTemplateRenderer(web.Templates, cfg.Location)
	if err != nil {
		return err
	}
	e.Renderer = renderer
	e.Validator = form.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			c.Logger().Infof("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb))
	e.Use(middleware.NewRedisCache(cfg.Cache, rdb, handler.HasFlash))

	venues := repository.NewVenueRepo(db)
	artists := repository.NewArtistRepo(db)
	shows := repository.NewShowRepo(db)
	cl := showtime.NewClassifier(time.Now, cfg.Location)

	router.RegisterRoutes(e)
	router.RegisterListings(e, router.Handlers{
		Venues:  handler.NewVenueHandler(venues, shows, cl, events),
		Artists: handler.NewArtistHandler(artists, shows, cl, events),
		Shows:   handler.NewShowHandler(shows, venues, artists, cl, events, cfg.Location),
	}, cfg.AdminJWTSecret)

	addr := ":" + cfg.Port
	e.Logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	e.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// logLevel maps LOG_LEVEL onto gommon levels; unknown values mean info.
func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
