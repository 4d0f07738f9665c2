package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"complaintwall/backend/internal/api/handler"
	"complaintwall/backend/internal/auth"
	"complaintwall/backend/internal/complaint"
	"complaintwall/backend/internal/config"
	"complaintwall/backend/internal/feed"
	"complaintwall/backend/internal/filestore"
	"complaintwall/backend/internal/models"
	"complaintwall/backend/internal/notify"
	"complaintwall/backend/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Complaint{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional: without it the status cache and rate limiter
	// quietly disable themselves.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPass})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect Redis: %v", err)
		}
	}

	log.Println("Database connections established, migrations complete.")
	return db, rdb
}

// seedAdmin makes sure the configured administrator account exists and
// carries the configured password. Admin provisioning is out-of-band;
// the public registration path never grants this account.
func seedAdmin(ctx context.Context, s storage.Storage, cfg config.Config) {
	hash, err := auth.HashPassword(cfg.AdminPassword, config.BcryptCost)
	if err != nil {
		log.Printf("ERROR: admin seeding failed: %v", err)
		return
	}

	existing, err := s.GetUserByEmail(ctx, cfg.AdminEmail)
	if errors.Is(err, storage.ErrNotFound) {
		admin := &models.User{
			Name:     cfg.AdminName,
			Email:    cfg.AdminEmail,
			Password: hash,
			Role:     models.RoleAdmin,
		}
		if err := s.CreateUser(ctx, admin); err != nil {
			log.Printf("ERROR: admin seeding failed: %v", err)
			return
		}
		log.Printf("Seeded default admin: %s", cfg.AdminEmail)
		return
	}
	if err != nil {
		log.Printf("ERROR: admin seeding lookup failed: %v", err)
		return
	}

	if err := s.UpdateUserPassword(ctx, existing.ID, hash); err != nil {
		log.Printf("ERROR: admin password update failed: %v", err)
		return
	}
	log.Printf("Updated admin password: %s", cfg.AdminEmail)
}

func main() {
	log.Println("Starting Complaint Wall backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}
	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	store := storage.NewService(db, rdb)

	files, err := filestore.New(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to prepare upload directory: %v", err)
	}

	hub := feed.NewHub()
	go hub.Run()

	svc := complaint.NewService(store, files)
	svc.Feed = hub
	if mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom); mailer != nil {
		svc.Mailer = mailer
	} else {
		log.Println("Warning: SMTP not configured, resolution emails disabled")
	}
	if alerter, err := notify.NewTelegramAlerter(cfg.TelegramBotToken, cfg.TelegramChatID); err != nil {
		log.Printf("Warning: telegram alerts disabled: %v", err)
	} else if alerter != nil {
		svc.Alerter = alerter
	}

	seedAdmin(context.Background(), store, cfg)

	authMgr := auth.NewManager(cfg.JWTSecret, config.TokenTTL)
	h := handler.NewHandler(svc, store, authMgr, hub)

	r := gin.Default()
	r.MaxMultipartMemory = config.MaxUploadBytes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	h.RegisterRoutes(r)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("HTTP server closed. Exiting.")
}
