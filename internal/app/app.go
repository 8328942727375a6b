package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	"taskway/internal/config"
	"taskway/internal/handlers"
	"taskway/internal/middleware"
	"taskway/internal/pdf"
	"taskway/internal/repositories"
	"taskway/internal/routes"
	"taskway/internal/services"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	loc := cfg.Location()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	taskRepo := repositories.NewTaskRepository(db)
	subtaskRepo := repositories.NewSubtaskRepository(db)
	profileRepo := repositories.NewProfileRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		loc,
	)
	telegramService, err := services.NewTelegramService(cfg.Telegram.BotToken)
	if err != nil {
		log.Printf("telegram disabled: %v", err)
	}

	taskService := services.NewTaskService(taskRepo)
	subtaskService := services.NewSubtaskService(subtaskRepo)
	profileService := services.NewProfileService(profileRepo)
	reminderService := services.NewReminderService(taskRepo, emailService, loc)
	exportService := services.NewExportService(pdf.NewReportGenerator(), loc)

	// === Handlers ===
	taskHandler := handlers.NewTaskHandler(taskService, loc, telegramService, profileRepo)
	subtaskHandler := handlers.NewSubtaskHandler(subtaskService)
	profileHandler := handlers.NewProfileHandler(profileService)
	exportHandler := handlers.NewExportHandler(taskService, profileService, exportService)
	reminderHandler := handlers.NewReminderHandler(reminderService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())

	routes.SetupRoutes(
		router,
		[]byte(cfg.Auth.JWTSecret),
		cfg.Reminder.ServiceKey,
		taskHandler,
		subtaskHandler,
		profileHandler,
		exportHandler,
		reminderHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s (tz=%s)", listenAddr, cfg.Reminder.Timezone)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("failed to start server: ", err)
	}
}
