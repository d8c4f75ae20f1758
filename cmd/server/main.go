package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/rangerisrael/futura-home-sub004/internal/config"
	"github.com/rangerisrael/futura-home-sub004/internal/database"
	"github.com/rangerisrael/futura-home-sub004/internal/handler"
	"github.com/rangerisrael/futura-home-sub004/internal/middleware"
	"github.com/rangerisrael/futura-home-sub004/internal/queue"
	"github.com/rangerisrael/futura-home-sub004/internal/repository"
	"github.com/rangerisrael/futura-home-sub004/internal/router"
	queue_publisher "github.com/rangerisrael/futura-home-sub004/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)
	if err != nil {
		log.Fatalf("database open failed: %v", err)
	}

	// Repositories — constructed once and injected into handlers; no
	// package-level singletons.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	roles := repository.NewRoleRepo(db)
	appointments := repository.NewAppointmentRepo(db)
	reservations := repository.NewReservationRepo(db)
	transactions := repository.NewTransactionRepo(db)
	contracts := repository.NewContractRepo(db)
	inquiries := repository.NewInquiryRepo(db)
	otps := repository.NewOTPRepo(db)
	notifications := repository.NewNotificationRepo(db)
	announcements := repository.NewAnnouncementRepo(db)

	captcha := queue_publisher.NewCaptchaVerifier(cfg.CaptchaSecret, cfg.CaptchaURL, cfg.CaptchaThreshold)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	otpH := handler.NewOTPHandler(cfg, otps)
	apptH := handler.NewAppointmentHandler(appointments, notifications, captcha)
	resH := handler.NewReservationHandler(reservations, transactions, notifications)
	conH := handler.NewContractHandler(contracts, notifications)
	inqH := handler.NewInquiryHandler(inquiries)
	roleH := handler.NewRoleHandler(roles)
	annH := handler.NewAnnouncementHandler(announcements)
	notH := handler.NewNotificationHandler(notifications)

	// Redis-backed limiter for the abuse-prone endpoints; a nil client
	// degrades to a pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Outbound email consumer (OTP codes, follow-ups) runs for the life of
	// the process and reconnects on broker failure.
	go func() {
		if err := queue.StartEmailConsumer(queue.SMTPSettings{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		}); err != nil {
			log.Printf("email consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, apptH, inqH, otpH, limiter)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterStaff(e, cfg.JWTSecret, apptH, resH, conH, inqH, roleH)
	router.RegisterShared(e, cfg.JWTSecret, resH, conH, annH, notH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
