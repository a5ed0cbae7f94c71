package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	_ "github.com/hnv-dev/product_desc_app/cmd/docs"
	"github.com/hnv-dev/product_desc_app/internal/adapters/gemini"
	"github.com/hnv-dev/product_desc_app/internal/adapters/mail"
	"github.com/hnv-dev/product_desc_app/internal/adapters/storage"
	"github.com/hnv-dev/product_desc_app/internal/adapters/tts"
	"github.com/hnv-dev/product_desc_app/internal/apperrors"
	"github.com/hnv-dev/product_desc_app/internal/core/domain"
	portsrepo "github.com/hnv-dev/product_desc_app/internal/core/ports/repositories"
	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
	"github.com/hnv-dev/product_desc_app/internal/core/services"
	"github.com/hnv-dev/product_desc_app/internal/handlers"
	"github.com/hnv-dev/product_desc_app/internal/middleware"
	"github.com/hnv-dev/product_desc_app/internal/platform/config"
	"github.com/hnv-dev/product_desc_app/internal/repositories/database/mongodb"
	"github.com/hnv-dev/product_desc_app/internal/repositories/database/pgsql"
	"github.com/hnv-dev/product_desc_app/internal/utils"
	"github.com/hnv-dev/product_desc_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Product Description Generator API
// @version 1.0
// @description AI-assisted product description backend: generation, history, conversations, subscriptions.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	repos, cleanup, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize persistence", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	collab, closeCollab, err := buildCollaborators(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize adapters", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeCollab()

	serviceContainer := services.NewServiceContainer(cfg, repos, collab)

	if err := seedAdminUser(ctx, cfg, repos, logger); err != nil {
		logger.Error("Failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Local uploads and avatars are served from the static dir; with S3
	// configured this only serves leftovers from local runs.
	r.Static("/static", cfg.StaticDir)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreBackend))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildRepositories connects the configured backing store and returns its
// repository provider plus a cleanup func for the underlying connections.
func buildRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, err := database.NewMongoClient(ctx, cfg.MongoURI)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		db := client.Database(cfg.MongoDB)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			database.CloseMongoClient(ctx, client)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("MongoDB connection established.", slog.String("database", cfg.MongoDB))
		cleanup := func() { database.CloseMongoClient(context.Background(), client) }
		return mongodb.NewRepositoryProvider(db), cleanup, nil

	case config.StorePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Database connection pool established.")

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, err
		}

		cleanup := func() { database.ClosePgxPool(dbPool) }
		return pgsql.NewRepositoryProvider(dbPool), cleanup, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, errors.New("unknown STORE_BACKEND: " + cfg.StoreBackend)
	}
}

// runMigrations applies all pending Postgres schema migrations. A separate
// database/sql connection is used because migrate does not speak pgxpool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		migrationDB.Close()
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// buildCollaborators constructs the outward-facing adapters: Gemini
// generation, image storage, reset-code mail and the TTS client.
func buildCollaborators(ctx context.Context, cfg *config.Config, logger *slog.Logger) (services.Collaborators, func(), error) {
	generator, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return services.Collaborators{}, nil, err
	}

	var images portssvc.ImageStore
	if cfg.S3Bucket != "" {
		images, err = storage.NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			generator.Close()
			return services.Collaborators{}, nil, err
		}
		logger.Info("Using S3 image storage", slog.String("bucket", cfg.S3Bucket))
	} else {
		images, err = storage.NewLocalStore(cfg.StaticDir)
		if err != nil {
			generator.Close()
			return services.Collaborators{}, nil, err
		}
		logger.Info("Using local image storage", slog.String("dir", cfg.StaticDir))
	}

	collab := services.Collaborators{
		Generator:  generator,
		MailSender: mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPSender),
		ImageStore: images,
		Speech:     tts.NewClient(cfg.TTSServiceURL, cfg.TTSVoice, cfg.HTTPClientTimeout),
	}

	closeCollab := func() {
		if err := generator.Close(); err != nil {
			logger.Error("Error closing generator client", slog.String("error", err.Error()))
		}
	}
	return collab, closeCollab, nil
}

// seedAdminUser creates the bootstrap admin account on first start. Skipped
// entirely unless both ADMIN_EMAIL and ADMIN_PASSWORD are set.
func seedAdminUser(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	email := domain.NormalizeEmail(cfg.AdminEmail)
	if _, err := repos.UserRepo.FindUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	passwordHash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	admin := domain.User{
		UserID:       uuid.NewString(),
		Email:        &email,
		FullName:     "Administrator",
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := repos.UserRepo.SaveUser(ctx, admin); err != nil {
		// Another replica may have seeded concurrently.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil
		}
		return err
	}

	logger.Info("Seeded admin user", slog.String("email", email))
	return nil
}
