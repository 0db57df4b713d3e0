package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/artifacts"
	"intake-backend/internal/assets"
	"intake-backend/internal/fulfillment"
	"intake-backend/internal/mailer"
	"intake-backend/internal/notify"
	"intake-backend/internal/services/health"
	"intake-backend/internal/shared/config"
	"intake-backend/internal/shared/server"
	"intake-backend/internal/shared/storage/db"
	"intake-backend/internal/shared/storage/object"
	localstore "intake-backend/internal/shared/storage/object/local"
	s3store "intake-backend/internal/shared/storage/object/s3"
	"intake-backend/internal/shared/telemetry"
	"intake-backend/internal/shipments"
	"intake-backend/internal/submissions"
	"intake-backend/internal/summary"
)

const pharmacyName = "City Life Pharmacy"

// App holds shared dependencies.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Artifacts        *artifacts.Store
	Sweeper          *artifacts.Sweeper
	Mailer           mailer.Sender
	Instructions     *assets.Library
	ShipStation      *fulfillment.Client
	SubmissionsRepo  submissions.Repo
	NotificationRepo shipments.NotificationRepo
	SubmissionsSvc   *submissions.Service
	ShipmentsSvc     *shipments.Service
	Health           *health.Service
}

// Build wires every dependency and the router. Nothing is started.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		Artifacts:    artifacts.New(localstore.New(cfg.ArtifactDir)),
		Mailer:       buildMailer(cfg),
		Instructions: assets.NewLibrary(cfg.InstructionsDir),
		Health:       health.NewService(sqlDB),
	}
	app.Sweeper = artifacts.NewSweeper(app.Artifacts, cfg.ArtifactMaxAge, cfg.ArtifactSweepInterval)

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      app.Config,
		Health:      app.Health,
		Submissions: submissions.NewHandler(app.SubmissionsSvc, cfg.MaxSubmissionSize),
		Shipments:   shipments.NewHandler(app.ShipmentsSvc),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.database.disabled", map[string]any{"env": cfg.Env, "reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database.fallback", map[string]any{"error": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildMailer(cfg config.Config) mailer.Sender {
	if !cfg.Mail.Configured() {
		telemetry.Warn("bootstrap.mail.log_only", map[string]any{"reason": "MAIL_USERNAME or MAIL_PASSWORD empty"})
		return mailer.NewLogSender()
	}
	return mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		Timeout:  cfg.Mail.Timeout,
	})
}

func buildServices(app *App) {
	cfg := app.Config

	if app.DB != nil {
		app.SubmissionsRepo = &submissions.PGRepo{DB: app.DB}
		app.NotificationRepo = &shipments.PGRepo{DB: app.DB}
	} else {
		app.SubmissionsRepo = submissions.NewMemoryRepo()
		app.NotificationRepo = shipments.NewMemoryRepo()
	}

	// Interface fields stay nil when credentials are missing; a typed nil
	// pointer would make the forwarder call through it.
	var (
		creator fulfillment.OrderCreator
		source  shipments.ShipmentSource
	)
	if client, err := fulfillment.NewClient(cfg.ShipStation); err == nil {
		app.ShipStation = client
		creator = client
		source = client
	} else {
		telemetry.Warn("bootstrap.shipstation.disabled", map[string]any{"reason": err.Error()})
	}

	var archive *submissions.Archive
	if cfg.ArchiveLastSubmission {
		archive = submissions.NewArchive(app.Store)
	}

	app.SubmissionsSvc = &submissions.Service{
		Renderer:  summary.NewRenderer(pharmacyName),
		Artifacts: app.Artifacts,
		Notifier:  notify.NewDispatcher(app.Mailer, app.Instructions, cfg.Mail.From, cfg.Mail.PharmacyEmail),
		Forwarder: fulfillment.NewForwarder(creator, fulfillment.DefaultsFromConfig(cfg.ShipStation)),
		Repo:      app.SubmissionsRepo,
		Archive:   archive,
	}
	app.ShipmentsSvc = &shipments.Service{
		Source: source,
		Sender: app.Mailer,
		From:   cfg.Mail.From,
		Repo:   app.NotificationRepo,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
