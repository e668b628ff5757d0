package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tutorhive/tutorhive-api/internal/auth"
	"github.com/tutorhive/tutorhive-api/internal/config"
	"github.com/tutorhive/tutorhive-api/internal/entity"
	"github.com/tutorhive/tutorhive-api/internal/infra/database"
	"github.com/tutorhive/tutorhive-api/internal/infra/http/handlers"
	"github.com/tutorhive/tutorhive-api/internal/infra/http/middleware"
	"github.com/tutorhive/tutorhive-api/internal/infra/integration/captcha"
	"github.com/tutorhive/tutorhive-api/internal/infra/mail"
	"github.com/tutorhive/tutorhive-api/internal/infra/queue"
	"github.com/tutorhive/tutorhive-api/internal/infra/worker"
	"github.com/tutorhive/tutorhive-api/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	db, err := database.NewDBConnection(ctx, cfg.Mongo.URI, cfg.Mongo.DBName)
	if err != nil {
		log.Fatalf("❌ mongo connection failed: %v", err)
	}
	defer db.Client().Disconnect(ctx)

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.User, cfg.RabbitMQ.Pass, cfg.RabbitMQ.Host, cfg.RabbitMQ.Port)
	if err != nil {
		log.Fatalf("❌ rabbitmq connection failed: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	adminRepo := database.NewAdminRepository(db)
	settingsRepo := database.NewSettingsRepository(db)
	verificationRepo := database.NewVerificationRepository(db)
	rateLimitRepo := database.NewRateLimitRepository(db)

	// 2. Collaborators
	captchaClient := captcha.NewClient(cfg.Captcha.Secret, cfg.Captcha.VerifyURL)
	mailSender := mail.NewEmailSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	tokens := auth.NewTokenManager(cfg.JWT.Secret)

	mailDefaults := entity.Settings{
		FromEmail:  cfg.Mail.FromEmail,
		AdminEmail: cfg.Mail.AdminEmail,
	}

	// 3. Background workers
	notificationWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go notificationWorker.Start(queue.QueueName)

	janitor := worker.NewRateLimitJanitor(rateLimitRepo)
	go janitor.Start(ctx)

	// 4. Use cases
	rateLimiter := usecase.NewRateLimiter(rateLimitRepo)
	submitUC := usecase.NewSubmitLeadUseCase(leadRepo, settingsRepo, captchaClient, rateLimiter, producer, mailSender, mailDefaults)
	sendCodeUC := usecase.NewSendVerificationCodeUseCase(verificationRepo, settingsRepo, mailSender, mailDefaults)
	checkCodeUC := usecase.NewCheckVerificationCodeUseCase(verificationRepo)
	authUC := usecase.NewAuthUseCase(adminRepo, tokens, cfg.Admin.BootstrapEmail, cfg.Admin.BootstrapPassword)
	accountUC := usecase.NewAdminAccountUseCase(adminRepo)
	lifecycleUC := usecase.NewLeadLifecycleUseCase(leadRepo, settingsRepo, mailSender, mailDefaults)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(submitUC)
	verificationHandler := handlers.NewVerificationHandler(sendCodeUC, checkCodeUC, rateLimiter)
	authHandler := handlers.NewAuthHandler(authUC)
	adminLeadHandler := handlers.NewAdminLeadHandler(lifecycleUC)
	accountHandler := handlers.NewAdminAccountHandler(accountUC)
	settingsHandler := handlers.NewSettingsHandler(settingsRepo, mailDefaults)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, cfg.Captcha.Secret != "")

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))

	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Public surface
	r.Post("/leads/submit", leadHandler.HandleSubmit)
	r.Post("/verification/send", verificationHandler.HandleSendCode)
	r.Post("/verification/check", verificationHandler.HandleCheckCode)

	// Admin surface
	r.Post("/admin/login", authHandler.HandleLogin)
	r.Post("/admin/logout", authHandler.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens))

		r.Post("/admin/change-password", authHandler.HandleChangePassword)

		r.Route("/admin/leads/{kind}", func(r chi.Router) {
			r.Get("/", adminLeadHandler.HandleList)
			r.Get("/{id}", adminLeadHandler.HandleGet)
			r.Patch("/{id}/status", adminLeadHandler.HandleUpdateStatus)
			r.Patch("/{id}/tele-calling-status", adminLeadHandler.HandleUpdateTeleCallingStatus)
			r.Post("/{id}/notes", adminLeadHandler.HandleAddNote)
			r.Post("/{id}/email", adminLeadHandler.HandleSendEmail)
			r.Delete("/{id}", adminLeadHandler.HandleDelete)
		})

		r.Get("/admin/settings", settingsHandler.HandleGet)
		r.Put("/admin/settings", settingsHandler.HandleUpdate)

		r.Route("/admin/accounts", func(r chi.Router) {
			r.Get("/", accountHandler.HandleList)
			r.Post("/", accountHandler.HandleCreate)
			r.Put("/{id}", accountHandler.HandleUpdate)
			r.Delete("/{id}", accountHandler.HandleDelete)
		})
	})

	port := ":" + cfg.Server.Port
	log.Printf("🔥 TutorHive API listening on %s", port)
	http.ListenAndServe(port, r)
}
