package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/tektai/tektai-backend/internal/config"
	"github.com/tektai/tektai-backend/internal/logging"
	"github.com/tektai/tektai-backend/internal/repository/minio"
	"github.com/tektai/tektai-backend/internal/repository/ports"
	"github.com/tektai/tektai-backend/internal/repository/postgres"
	"github.com/tektai/tektai-backend/internal/risk"
	"github.com/tektai/tektai-backend/internal/service"
	transporthttp "github.com/tektai/tektai-backend/internal/transport/http"
	"github.com/tektai/tektai-backend/internal/transport/mail"
	"github.com/tektai/tektai-backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stderr, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepo(db)
	resetRepo := postgres.NewPasswordResetRepo(db)

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		client, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect object storage: %v", err)
		}
		storage = minio.NewStorage(client, cfg.MinIOPublicURL, cfg.MinIOUseSSL)
	}

	var assessor risk.Assessor
	if cfg.RecaptchaProjectID != "" && cfg.RecaptchaSiteKey != "" {
		recaptcha, err := risk.NewRecaptchaAssessor(context.Background(), cfg.RecaptchaProjectID, cfg.RecaptchaSiteKey)
		if err != nil {
			log.Fatalf("init risk assessor: %v", err)
		}
		assessor = recaptcha
	}

	mailer := mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.FrontendBaseURL)
	jwtManager := util.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	resetService := service.NewResetService(resetRepo, cfg.PasswordResetTTL)
	authService := service.NewAuthService(userRepo, resetService, mailer, jwtManager, assessor, cfg.RecaptchaMinScore)
	userService := service.NewUserService(userRepo, storage, cfg.MinIOBucketAvatar, cfg.AvatarMaxBytes)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterUsers(e, authService, userService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
