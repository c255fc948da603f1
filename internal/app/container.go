package app

import (
	"context"
	"errors"
	"time"

	"fsti-hub/internal/config"
	dbpostgres "fsti-hub/internal/database/postgres"
	"fsti-hub/internal/infrastructure/assistant"
	"fsti-hub/internal/infrastructure/cache"
	"fsti-hub/internal/infrastructure/mailer"
	"fsti-hub/internal/infrastructure/newsimport"
	"fsti-hub/internal/infrastructure/storage"
	"fsti-hub/internal/pkg/jwt"
	"fsti-hub/internal/pkg/markdown"
	"fsti-hub/internal/repository"
	"fsti-hub/internal/usecase"
	"fsti-hub/internal/worker"
	"fsti-hub/internal/ws"

	"go.uber.org/zap"
)

type Repositories struct {
	Admins       *repository.PostgresAdminRepository
	Talents      *repository.PostgresTalentRepository
	Coaches      *repository.PostgresCoachRepository
	Recruiters   *repository.PostgresRecruiterRepository
	Jobs         *repository.PostgresJobRepository
	Applications *repository.PostgresApplicationRepository
	Assignments  *repository.PostgresAssignmentRepository
	Appointments *repository.PostgresAppointmentRepository
	News         *repository.PostgresNewsRepository
	Traffic      *repository.PostgresTrafficRepository
	Events       *repository.PostgresEventRepository
	Stats        *repository.PostgresStatsRepository
}

type Usecases struct {
	Auth         *usecase.Auth
	Registration *usecase.Registration
	Talents      *usecase.Talents
	Coaches      *usecase.Coaches
	Recruiters   *usecase.Recruiters
	Jobs         *usecase.Jobs
	Applications *usecase.Applications
	Coaching     *usecase.Coaching
	News         *usecase.News
	Community    *usecase.Community
	Dashboards   *usecase.Dashboards
	Assistant    *usecase.Assistant
}

// Container owns the process wide dependencies. The HTTP server and hubctl
// both build one.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB        *dbpostgres.Pool
	Cache     *cache.Redis
	Files     *storage.Local
	Mail      *worker.MailQueue
	Hub       *ws.Hub
	Tokens    *jwt.HMACService
	Assistant assistant.Provider

	Repos     Repositories
	Usecases  Usecases
	Notifier  *ws.Notifier
	Crawler   *newsimport.Crawler
	Markdown  *markdown.Renderer
}

func NewContainer(cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	files, err := storage.NewLocal(cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	provider, err := buildAssistant(ctx, cfg.Assistant)
	if err != nil && !errors.Is(err, assistant.ErrNotConfigured) {
		_ = db.Close()
		return nil, err
	}
	if provider == nil {
		logger.Info("assistant disabled", zap.String("provider", cfg.Assistant.Provider))
	}

	c := &Container{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Cache:     cache.NewRedis(ctx, cfg.Redis, logger),
		Files:     files,
		Mail:      worker.NewMailQueue(mailer.NewSMTP(cfg.SMTP, logger), cfg.App.EmailWorkers, logger),
		Hub:       ws.NewHub(logger),
		Tokens:    jwt.NewHMACService(cfg.App.AppName, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn),
		Assistant: provider,
		Crawler:   newsimport.NewCrawler(logger),
		Markdown:  markdown.NewRenderer(),
	}
	c.Notifier = ws.NewNotifier(c.Hub)
	c.Repos = newRepositories(db)
	c.Usecases = c.newUsecases()
	return c, nil
}

func newRepositories(db *dbpostgres.Pool) Repositories {
	return Repositories{
		Admins:       repository.NewPostgresAdminRepository(db),
		Talents:      repository.NewPostgresTalentRepository(db),
		Coaches:      repository.NewPostgresCoachRepository(db),
		Recruiters:   repository.NewPostgresRecruiterRepository(db),
		Jobs:         repository.NewPostgresJobRepository(db),
		Applications: repository.NewPostgresApplicationRepository(db),
		Assignments:  repository.NewPostgresAssignmentRepository(db),
		Appointments: repository.NewPostgresAppointmentRepository(db),
		News:         repository.NewPostgresNewsRepository(db),
		Traffic:      repository.NewPostgresTrafficRepository(db),
		Events:       repository.NewPostgresEventRepository(db),
		Stats:        repository.NewPostgresStatsRepository(db),
	}
}

func (c *Container) newUsecases() Usecases {
	r := c.Repos
	cfg := c.Config
	l := c.Logger

	return Usecases{
		Auth:         usecase.NewAuthUsecase(r.Admins, r.Talents, r.Coaches, r.Recruiters, c.Tokens, l),
		Registration: usecase.NewRegistrationUsecase(r.Talents, r.Coaches, r.Recruiters, c.Files, c.Mail, cfg.SMTP.AdminEmail, l),
		Talents:      usecase.NewTalentUsecase(r.Talents, c.Files, l),
		Coaches:      usecase.NewCoachUsecase(r.Coaches, l),
		Recruiters:   usecase.NewRecruiterUsecase(r.Recruiters, c.Cache, l),
		Jobs:         usecase.NewJobUsecase(r.Jobs, r.Applications, r.Talents, r.Recruiters, c.Files, c.Cache, c.Notifier, l),
		Applications: usecase.NewApplicationUsecase(r.Applications, r.Jobs, c.Notifier, l),
		Coaching:     usecase.NewCoachingUsecase(r.Assignments, r.Appointments, c.Notifier, l),
		News: usecase.NewNewsUsecase(r.News, c.Markdown, c.Files, c.Cache, c.Assistant, c.Crawler, usecase.NewsConfig{
			SiteURL:         cfg.App.PublicSiteURL,
			Source:          newsSource(cfg.NewsImport),
			DefaultCategory: cfg.NewsImport.DefaultCategory,
		}, l),
		Community:  usecase.NewCommunityUsecase(r.Traffic, r.Events, l),
		Dashboards: usecase.NewDashboardUsecase(r.Stats, r.Jobs, r.Applications, r.Assignments, r.Appointments, l),
		Assistant:  usecase.NewAssistantUsecase(c.Assistant, l),
	}
}

func newsSource(cfg config.NewsImportConfig) newsimport.Source {
	return newsimport.Source{
		Name:            cfg.SourceName,
		ListURL:         cfg.ListURL,
		LinkSelector:    cfg.LinkSelector,
		TitleSelector:   cfg.TitleSelector,
		SummarySelector: cfg.SummarySelector,
		ImageSelector:   cfg.ImageSelector,
		MaxArticles:     cfg.MaxArticlesPerRun,
	}
}

// buildAssistant returns a nil provider and ErrNotConfigured when the selected
// provider has no API key.
func buildAssistant(ctx context.Context, cfg config.AssistantConfig) (assistant.Provider, error) {
	switch cfg.Provider {
	case "openai":
		p, err := assistant.NewOpenAI(assistant.OpenAIConfig{
			APIKey:        cfg.OpenAIAPIKey,
			Model:         cfg.Model,
			AdvancedModel: cfg.AdvancedModel,
		})
		if err != nil {
			return nil, err
		}
		return assistant.WithTimeout(p, cfg.Timeout), nil
	case "", "gemini":
		p, err := assistant.NewGemini(ctx, assistant.GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.Model,
			AdvancedModel:  cfg.AdvancedModel,
			ThinkingBudget: cfg.ThinkingBudget,
		})
		if err != nil {
			return nil, err
		}
		return assistant.WithTimeout(p, cfg.Timeout), nil
	default:
		return nil, errors.New("unknown assistant provider: " + cfg.Provider)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
