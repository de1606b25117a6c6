package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/joho/godotenv"
	"github.com/maxaizer/recruit-agent/internal/api"
	"github.com/maxaizer/recruit-agent/internal/bot"
	"github.com/maxaizer/recruit-agent/internal/clients/gemini"
	"github.com/maxaizer/recruit-agent/internal/clients/mail"
	"github.com/maxaizer/recruit-agent/internal/clients/pdf"
	"github.com/maxaizer/recruit-agent/internal/clients/zoom"
	"github.com/maxaizer/recruit-agent/internal/config"
	"github.com/maxaizer/recruit-agent/internal/logger"
	"github.com/maxaizer/recruit-agent/internal/metrics"
	"github.com/maxaizer/recruit-agent/internal/repositories"
	"github.com/maxaizer/recruit-agent/internal/scheduling"
	"github.com/maxaizer/recruit-agent/internal/services"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

// wireIntegrations fills the optional dependencies whose credentials are configured.
// Unconfigured ones stay nil so the workflows report them as misconfigured.
func wireIntegrations(ctx context.Context, cfg *config.Config, deps *services.Dependencies) (cleanup func()) {
	cleanup = func() {}

	if cfg.Oracle.Configured() {
		aiClient, err := gemini.NewClient(ctx, cfg.Oracle.AIKey, gemini.Model(cfg.Oracle.Model))
		if err != nil {
			log.Fatalf("can't create AI client: %v", err)
		}
		aiClient.SetSystemInstruction(services.ScorerInstructions...)
		aiClient.SetMinuteRateLimit(cfg.Oracle.MaxRequestsPerMinute)
		aiClient.SetDayRateLimit(cfg.Oracle.MaxRequestsPerDay)
		deps.Scorer = services.NewAIService(aiClient)
		cleanup = func() {
			if err := aiClient.Close(); err != nil {
				log.Errorf("failed to close AI client: %v", err)
			}
		}
	} else {
		log.Warn("scoring oracle key is not set, analysis is disabled")
	}

	if cfg.Mail.Configured() {
		sender, err := mail.NewSender(cfg.Mail)
		if err != nil {
			log.Fatalf("can't create mail sender: %v", err)
		}
		deps.Sender = sender
	} else {
		log.Warn("mail credentials are not set, notifications are disabled")
	}

	if cfg.Meeting.Configured() {
		zoomClient := zoom.NewClient(cfg.Meeting.TokenURL, cfg.Meeting.APIURL)
		zoomClient.SetRateLimit(cfg.Meeting.MaxRequestsPerSecond)
		deps.Meetings = zoomClient
		deps.Tokens = zoom.NewTokenCache(zoomClient, zoom.Credentials{
			AccountID:    cfg.Meeting.AccountID,
			ClientID:     cfg.Meeting.ClientID,
			ClientSecret: cfg.Meeting.ClientSecret,
		}, cfg.Meeting.TokenSafetyMargin)
	} else {
		log.Warn("meeting provider credentials are not set, scheduling is disabled")
	}

	return cleanup
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %v", err)
	}

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	applications := repositories.NewApplicationsRepository()
	journal := repositories.NewJournalRepository(dbContext.DB)
	bus := EventBus.New()

	if _, err = services.NewJournalRecorder(bus, journal); err != nil {
		log.Fatalf("can't create journal recorder: %v", err)
	}

	cleaner, err := services.NewJournalCleaner(journal, cfg.DB.JournalRetentionDays)
	if err != nil {
		log.Fatalf("can't create journal cleaner: %v", err)
	}
	cleaner.Start()
	defer cleaner.Stop()

	deps := services.Dependencies{
		Applications: applications,
		Extractor:    pdf.NewExtractor(),
		Slots:        scheduling.NewCalculator(cfg.Scheduling),
		Letters:      services.NewLetters(cfg.Mail.CompanyName),
		Bus:          bus,
	}
	closeIntegrations := wireIntegrations(ctx, cfg, &deps)
	defer closeIntegrations()

	recruitment, err := services.NewRecruitment(deps, services.SchedulingOptions{
		Timezone:                 cfg.Scheduling.Timezone,
		InterviewDurationMinutes: cfg.Meeting.InterviewDurationMinutes,
	})
	if err != nil {
		log.Fatalf("can't create recruitment service: %v", err)
	}

	if cfg.Telegram.Enabled() {
		notifier, err := bot.NewNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, bus, applications)
		if err != nil {
			log.Fatalf("can't create telegram notifier: %v", err)
		}
		go notifier.Run()
		defer notifier.Stop()
	}

	server := api.NewServer(cfg.Server, api.NewAPI(recruitment, journal, api.CredentialsStatus{
		Oracle:   cfg.Oracle.Configured(),
		Mail:     cfg.Mail.Configured(),
		Meeting:  cfg.Meeting.Configured(),
		Telegram: cfg.Telegram.Enabled(),
	}))

	if err = server.Run(ctx); err != nil {
		log.Errorf("http server stopped with error: %v", err)
	}

	log.Info("Shutting down services...")
	bus.WaitAsync()
	log.Info("Services stopped.")
}
