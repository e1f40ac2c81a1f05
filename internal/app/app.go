package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobhub_backend/internal/auth"
	"jobhub_backend/internal/config"
	"jobhub_backend/internal/email"
	"jobhub_backend/internal/handlers"
	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/middleware"
	"jobhub_backend/internal/models"
	"jobhub_backend/internal/repositories"
	"jobhub_backend/internal/routes"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/storage"
	"jobhub_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Connecting to database...", "uri", cfg.Database.URI)
	client, err := repositories.Connect(ctx, cfg.Database.URI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", "error", err)
	}
	defer func() {
		if err := repositories.Disconnect(context.Background(), client); err != nil {
			logger.Error("Failed to disconnect from MongoDB", "error", err)
		}
	}()
	db := client.Database(cfg.Database.Name)
	logger.Info("Database connected", "name", cfg.Database.Name)

	if err := seedFirstAdmin(ctx, db, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, client, db)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, client *mongo.Client, db *mongo.Database) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:     "local",
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "base_path", cfg.Storage.BasePath)

	serviceContainer := initializeServices(cfg, client, db, storageInstance)
	appHandlers := initializeHandlers(serviceContainer, storageInstance)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, client *mongo.Client, db *mongo.Database, storageInstance storage.Storage) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		smtp, err := email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize SMTP provider", "error", err)
		}
		emailService = smtp
	} else {
		logger.Warn("SMTP is not configured. Outgoing email is disabled.")
		emailService = &MockEmailProvider{}
	}

	repos := services.Repositories{
		Users:       repositories.NewUserRepository(db),
		Customers:   repositories.NewCustomerRepository(db),
		Freelancers: repositories.NewFreelancerRepository(db),
		Skills:      repositories.NewSkillRepository(db),
		Jobs:        repositories.NewJobRepository(db),
		Tx:          repositories.NewTxRunner(client),
	}

	return services.NewServiceContainer(repos, storageInstance, emailService)
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator, container.User)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, container.Auth),
		UserHandler:       handlers.NewUserHandler(baseHandler, container.User),
		CustomerHandler:   handlers.NewCustomerHandler(baseHandler, container.Customer),
		FreelancerHandler: handlers.NewFreelancerHandler(baseHandler, container.Freelancer),
		JobHandler:        handlers.NewJobHandler(baseHandler, container.Job),
		SkillHandler:      handlers.NewSkillHandler(baseHandler, container.Skill),
		FileHandler:       handlers.NewFileHandler(baseHandler, storageInstance),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

// seedFirstAdmin creates the bootstrap admin account when FIRST_ADMIN_EMAIL
// and FIRST_ADMIN_PASSWORD are configured and no such user exists yet.
func seedFirstAdmin(ctx context.Context, db *mongo.Database, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	users := repositories.NewUserRepository(db)

	_, err := users.FindByEmail(ctx, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		FirstName:    "Admin",
		LastName:     "Admin",
		Email:        adminEmail,
		Username:     "admin",
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Image:        models.DefaultImage,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", adminEmail)
	return nil
}
