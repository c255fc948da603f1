package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fsti-hub/internal/config"
	"fsti-hub/internal/delivery/http/handler"
	"fsti-hub/internal/delivery/http/middleware"
	"fsti-hub/internal/delivery/http/routes"
	v1 "fsti-hub/internal/delivery/http/routes/v1"
	"fsti-hub/internal/scheduler"
	"fsti-hub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const (
	loginPerMinute     = 10
	assistantPerMinute = 20
	newsImportJob      = "news_import"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
	Scheduler *scheduler.Scheduler

	stop context.CancelFunc
}

func New(c *Container) *App {
	cfg := c.Config
	f := fiber.New(fiber.Config{
		AppName:      cfg.App.AppName,
		BodyLimit:    int(cfg.Storage.MaxFileBytes)*2 + 1<<20,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c, Scheduler: scheduler.New(c.Logger)}
}

// Bootstrap builds the container and the HTTP app and starts the background
// workers. The returned cleanup stops them and releases the container.
func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	if err := app.Start(); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	cleanup := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		app.Stop(ctx)
		return c.Close()
	}
	return app, cleanup, nil
}

// Start runs the websocket hub, the mail queue and the scheduler.
func (a *App) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.stop = cancel

	go a.Container.Hub.Run(ctx)
	a.Container.Mail.Start(ctx)

	if a.Container.Config.NewsImport.Enabled() {
		news := a.Container.Usecases.News
		logger := a.Container.Logger.With(zap.String("component", newsImportJob))
		err := a.Scheduler.Add(a.Container.Config.NewsImport.Schedule, newsImportJob, func(ctx context.Context) error {
			res, err := news.Import(ctx)
			if err != nil {
				return err
			}
			logger.Info("news import finished", zap.Int("found", res.Found), zap.Int("inserted", res.Inserted))
			return nil
		})
		if err != nil {
			cancel()
			return fmt.Errorf("schedule news import: %w", err)
		}
	}
	a.Scheduler.Start()
	return nil
}

// Stop drains the mail queue, stops scheduled jobs and disconnects websocket clients.
func (a *App) Stop(ctx context.Context) {
	a.Scheduler.Stop(ctx)
	a.Container.Mail.Stop(ctx)
	if a.stop != nil {
		a.stop()
	}
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	accessLog := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessLog.Middleware())

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	cfg := c.Config
	u := c.Usecases
	auth := middleware.NewAuthMiddleware(c.Tokens)

	health := handler.NewHealthHandler(map[string]handler.HealthCheck{
		"postgres": c.DB.Ping,
	})

	registry := routes.NewRegistry(
		health,
		ws.NewHandler(c.Hub, c.Tokens, cfg.App.CORSOrigins, c.Logger),
		auth,
		v1.Handlers{
			Auth:         handler.NewAuthHandler(u.Auth),
			Registration: handler.NewRegistrationHandler(u.Registration),
			Talent:       handler.NewTalentHandler(u.Talents),
			Coach:        handler.NewCoachHandler(u.Coaches),
			Recruiter:    handler.NewRecruiterHandler(u.Recruiters),
			Job:          handler.NewJobHandler(u.Jobs),
			Application:  handler.NewApplicationHandler(u.Applications),
			Coaching:     handler.NewCoachingHandler(u.Coaching),
			News:         handler.NewNewsHandler(u.News),
			Community:    handler.NewCommunityHandler(u.Community),
			Dashboard:    handler.NewDashboardHandler(u.Dashboards),
			Assistant:    handler.NewAssistantHandler(u.Assistant),
		},
		routes.Options{
			CORSOrigins:        cfg.App.CORSOrigins,
			FilesDir:           c.Files.Dir(),
			FilesPrefix:        filesPrefix(cfg.Storage.PublicBaseURL),
			LoginPerMinute:     loginPerMinute,
			AssistantPerMinute: assistantPerMinute,
		},
	)
	registry.Register(app)
}

// filesPrefix is the path part of the public base URL, so that an absolute
// STORAGE_PUBLIC_BASE_URL still serves from this process.
func filesPrefix(publicBaseURL string) string {
	u, err := url.Parse(publicBaseURL)
	if err != nil {
		return "/files"
	}
	p := "/" + strings.Trim(u.Path, "/")
	if p == "/" {
		return "/files"
	}
	return p
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
