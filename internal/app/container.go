package app

import (
	"context"
	"log"
	"time"

	"job-matcher/internal/config"
	"job-matcher/internal/database"
	"job-matcher/internal/database/migration"
	dbpostgres "job-matcher/internal/database/postgres"
	"job-matcher/internal/delivery/http/handler"
	"job-matcher/internal/delivery/http/middleware"
	v1 "job-matcher/internal/delivery/http/routes/v1"
	"job-matcher/internal/domain/taxonomy"
	"job-matcher/internal/infrastructure/cache"
	"job-matcher/internal/notify"
	"job-matcher/internal/pipeline"
	"job-matcher/internal/pkg/jwt"
	"job-matcher/internal/repository"
	"job-matcher/internal/usecase"
	ucauth "job-matcher/internal/usecase/auth"
	"job-matcher/internal/ws"
)

// Container builds the full dependency graph once so the HTTP server and the
// CLIs share identical wiring.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub

	Taxonomy   *taxonomy.Taxonomy
	Dispatcher *pipeline.AlertDispatcher

	Users   repository.UserRepository
	Jobs    repository.JobRepository
	Resumes repository.ResumeRepository
	Alerts  repository.AlertRepository

	JWT    jwt.Service
	Auth   ucauth.AuthUsecase
	List   usecase.JobListUsecase
	Ingest usecase.JobIngestUsecase
	Match  usecase.MatchUsecase
	Resume usecase.ResumeUsecase
	Alert  usecase.AlertUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Hub:    ws.NewHub(logger),
	}

	c.Taxonomy = taxonomy.Default()

	c.Users = repository.NewPostgresUserRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)
	c.Resumes = repository.NewPostgresResumeRepository(db)
	c.Alerts = repository.NewPostgresAlertRepository(db)

	sender := notify.NewLogSender(logger)
	c.Dispatcher = pipeline.NewAlertDispatcher(c.Alerts, c.Jobs, sender, logger)

	c.JWT = jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	c.Auth = ucauth.NewService(c.Users, c.JWT)
	c.List = usecase.NewJobListUsecase(c.Jobs, c.Cache)
	c.Ingest = usecase.NewJobIngestService(c.Jobs, c.Taxonomy, c.Dispatcher, c.Cache, logger)
	c.Match = usecase.NewMatchService(c.Jobs, c.Resumes, c.Taxonomy, c.Cache)
	c.Resume = usecase.NewResumeService(c.Resumes, c.Taxonomy, c.Cache)
	c.Alert = usecase.NewAlertService(c.Alerts, c.Dispatcher)

	return c, nil
}

func (c *Container) V1Deps() v1.Deps {
	return v1.Deps{
		Auth:   handler.NewAuthHandler(c.Auth),
		Jobs:   handler.NewJobsHandler(c.List, c.Ingest),
		Match:  handler.NewMatchHandler(c.Match),
		Resume: handler.NewResumeHandler(c.Resume),
		Alerts: handler.NewAlertHandler(c.Alert),
		AuthMw: middleware.NewAuthMiddleware(c.JWT),
	}
}

func (c *Container) Close() error {
	if c == nil || c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
