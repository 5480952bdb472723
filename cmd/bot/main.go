package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/config"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/delivery/telegram"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/kids-number-trainer-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/infra/redis"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/logger"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/repository"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/sampling"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/service"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/storage"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "เริ่มต้นใช้งาน"},
		{Command: "learn", Description: "เรียนด้วยแฟลชการ์ด"},
		{Command: "quiz", Description: "ทดสอบ"},
		{Command: "next", Description: "การ์ดถัดไป"},
		{Command: "prev", Description: "การ์ดก่อนหน้า"},
		{Command: "shuffle", Description: "สุ่มการ์ด"},
		{Command: "restart", Description: "เริ่มจากเลข 1"},
		{Command: "speak", Description: "ฟังเสียง"},
		{Command: "all", Description: "ดูตัวเลขทั้งหมด"},
		{Command: "range", Description: "ดูตัวเลขในช่วง (ใช้แบบนี้: /range 20 30)"},
		{Command: "daily", Description: "เปิดหรือปิดเลขประจำวัน"},
		{Command: "reset", Description: "ล้างความคืบหน้า"},
		{Command: "help", Description: "ความช่วยเหลือ"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	rng := sampling.NewRand(cfg.Random.Seed)

	numberRepo, err := repository.NewNumberRepository(rng)
	if err != nil {
		lg.Fatal("failed to build number catalog", zap.Error(err))
	}

	stateRepo, userRepo, closeStorage, err := newStorage(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to init storage", zap.Error(err))
	}
	defer closeStorage()

	synth, closeSynth, err := newSynthesizer(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to init speech", zap.Error(err))
	}
	defer closeSynth()

	// Initialize services.
	numberService := service.NewNumberService(numberRepo)
	userService := service.NewUserService(userRepo, lg)
	stateService := service.NewStateService(stateRepo)
	flashcardService := service.NewFlashcardService(numberRepo, stateRepo, rng)
	quizService := service.NewQuizService(numberRepo, stateRepo, rng, service.QuizConfig{
		CorrectDelay: cfg.Quiz.CorrectDelay,
		WrongDelay:   cfg.Quiz.WrongDelay,
	})
	speechService := service.NewSpeechService(synth, cfg.Speech.Rate, lg)

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		numberService,
		flashcardService,
		quizService,
		stateService,
		speechService,
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return handler.Run(gctx)
	})

	if cfg.Daily.Enabled {
		loc, err := cfg.Daily.Location()
		if err != nil {
			lg.Fatal("invalid daily timezone", zap.Error(err))
		}

		dailyService := service.NewDailyService(numberRepo, stateRepo, userRepo, service.DailyConfig{
			Schedule: cfg.Daily.Schedule,
			Location: loc,
		}, lg)
		dailyService.SetNotifier(handler)

		g.Go(func() error {
			return dailyService.Start(gctx)
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("bot stopped with error", zap.Error(err))
		return
	}

	lg.Info("shutdown signal received")
}

// newStorage returns the state and user repositories for the configured driver.
func newStorage(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.StateRepository, service.UserRepository, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		lg.Warn("using in-memory storage, progress is lost on restart")
		return storage.NewStateStorage(), storage.NewUserStorage(), func() {}, nil
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return nil, nil, nil, err
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	tr := postgres.NewTransactor(pool)

	return pgrepo.NewStateRepository(pool, tr), pgrepo.NewUserRepository(pool), pool.Close, nil
}

// newSynthesizer returns nil when speech is switched off.
func newSynthesizer(ctx context.Context, cfg *config.Config, lg *zap.Logger) (service.Synthesizer, func(), error) {
	if !cfg.Speech.Enabled {
		lg.Info("speech disabled")
		return nil, func() {}, nil
	}

	switch cfg.Speech.Cache.Driver {
	case config.CacheDriverRedis:
		client, err := redis.NewClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}

		cache := tts.NewRedisCache(client, cfg.Speech.Cache.TTL)
		return tts.NewClient(cfg.Speech.APIKey, cache, lg), func() { _ = client.Close() }, nil

	default:
		cache, err := tts.NewFileCache(cfg.Speech.Cache.Dir)
		if err != nil {
			return nil, nil, err
		}
		return tts.NewClient(cfg.Speech.APIKey, cache, lg), func() {}, nil
	}
}
