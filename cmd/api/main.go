package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xavierca1/creator-deals/internal/config"
	"github.com/xavierca1/creator-deals/internal/infra/database"
	"github.com/xavierca1/creator-deals/internal/infra/http/handlers"
	"github.com/xavierca1/creator-deals/internal/infra/integration/openai"
	"github.com/xavierca1/creator-deals/internal/infra/mail"
	"github.com/xavierca1/creator-deals/internal/infra/queue"
	"github.com/xavierca1/creator-deals/internal/infra/worker"
	"github.com/xavierca1/creator-deals/internal/logger"
	"github.com/xavierca1/creator-deals/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.L().Fatalf("❌ config: %v", err)
	}
	log := logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL, database.Pool{})
	if err != nil {
		log.Fatalf("❌ banco: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("❌ migrations: %v", err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("❌ rabbitmq: %v", err)
	}
	defer rabbitMQ.Close()

	// 1. Repositórios
	outreachRepo := database.NewOutreachRepository(db)
	brandRepo := database.NewBrandRepository(db)
	campaignRepo := database.NewCampaignRepository(db)
	creatorRepo := database.NewCreatorRepository(db)

	// 2. Adapters
	mailSender := mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, "")
	aiClient := openai.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAITimeout)
	producer := queue.NewProducer(rabbitMQ.Ch)

	// 3. UseCases
	sendEmailUC := usecase.NewSendEmailUseCase(outreachRepo, mailSender)
	followUpUC := usecase.NewSendFollowUpUseCase(sendEmailUC)
	scheduleUC := usecase.NewScheduleFollowUpsUseCase(outreachRepo, producer, cfg.FollowUpBatchSize)

	outreachHandler := &handlers.OutreachHandler{
		StartUC:       usecase.NewStartOutreachUseCase(outreachRepo, brandRepo),
		QueryUC:       usecase.NewOutreachQueryUseCase(outreachRepo),
		DraftsUC:      usecase.NewUpdateDraftsUseCase(outreachRepo),
		TransitionUC:  usecase.NewTransitionOutreachUseCase(outreachRepo),
		AutoSendUC:    usecase.NewSetAutoSendUseCase(outreachRepo),
		SendEmailUC:   sendEmailUC,
		SendPropUC:    usecase.NewSendProposalUseCase(outreachRepo, mailSender),
		GenEmailsUC:   usecase.NewGenerateEmailsUseCase(outreachRepo, creatorRepo, aiClient),
		GenProposalUC: usecase.NewGenerateProposalUseCase(outreachRepo, creatorRepo, aiClient),
	}

	// 4. Workers: scheduler publica, consumidor envia
	go worker.NewFollowUpScheduler(scheduleUC, cfg.FollowUpScanInterval).Start(ctx)

	consumer := queue.NewWorker(rabbitMQ.Ch, followUpUC)
	go func() {
		if err := consumer.Start(ctx, queue.QueueName); err != nil {
			log.WithError(err).Error("❌ follow-up consumer parou")
			stop()
		}
	}()

	// 5. Router
	router := handlers.NewRouter(handlers.RouterConfig{
		Health:      handlers.NewHealthHandler(db, rabbitMQ, cfg.OpenAIKey != "", cfg.MailHost != ""),
		Outreach:    outreachHandler,
		Brand:       handlers.NewBrandHandler(usecase.NewBrandUseCase(brandRepo)),
		Campaign:    handlers.NewCampaignHandler(usecase.NewCampaignUseCase(campaignRepo, brandRepo)),
		Creator:     handlers.NewCreatorHandler(usecase.NewCreatorProfileUseCase(creatorRepo)),
		CORSOrigins: cfg.CORSOrigins,
		AILimiter:   handlers.NewRateLimiter(cfg.AIRateLimit, time.Minute),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("🔥 Server rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ http: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("⚠️ Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("❌ shutdown")
	}
}
