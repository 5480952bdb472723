package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/kids-number-trainer-bot/internal/domain/entities"
	"github.com/aliskhannn/kids-number-trainer-bot/internal/numerals"
)

const maxConcurrentSends = 10

type DailyConfig struct {
	Schedule string
	Location *time.Location
}

// DailyService pushes a random "number of the day" to subscribed users.
type DailyService struct {
	numbers  NumberRepository
	states   StateRepository
	users    UserRepository
	notifier DailyNotifier
	cfg      DailyConfig
	logger   *zap.Logger
}

func NewDailyService(
	numbers NumberRepository,
	states StateRepository,
	users UserRepository,
	cfg DailyConfig,
	logger *zap.Logger,
) *DailyService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}

	return &DailyService{
		numbers: numbers,
		states:  states,
		users:   users,
		cfg:     cfg,
		logger:  logger,
	}
}

// SetNotifier sets the notifier (called after handler is created).
func (s *DailyService) SetNotifier(notifier DailyNotifier) {
	s.notifier = notifier
}

// Start runs the scheduler until ctx is cancelled.
func (s *DailyService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(s.cfg.Location))

	_, err := c.AddFunc(s.cfg.Schedule, func() {
		s.logger.Info("cron triggered: sending number of the day")
		sent, err := s.Broadcast(ctx)
		if err != nil {
			s.logger.Error("failed to send number of the day", zap.Error(err))
			return
		}
		s.logger.Info("number of the day sent", zap.Int("total_sent", sent))
	})
	if err != nil {
		return fmt.Errorf("add cron job %q: %w", s.cfg.Schedule, err)
	}

	c.Start()
	s.logger.Info("daily scheduler started",
		zap.String("schedule", s.cfg.Schedule),
		zap.String("timezone", s.cfg.Location.String()),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("daily scheduler stopped")

	return nil
}

// Broadcast sends one random number to every subscriber and returns how many got it.
func (s *DailyService) Broadcast(ctx context.Context) (int, error) {
	if s.notifier == nil {
		return 0, errors.New("notifier not initialized")
	}

	n, err := s.numbers.GetRandom(ctx)
	if err != nil {
		return 0, fmt.Errorf("pick number: %w", err)
	}
	card := newCard(n, n.Value-numerals.Min, s.numbers.Len())

	userIDs, err := s.states.ListUsersWithValue(ctx, entities.StateKeyDaily, entities.DailyOn)
	if err != nil {
		return 0, fmt.Errorf("list subscribers: %w", err)
	}

	var sent atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSends)

	for _, userID := range userIDs {
		g.Go(func() error {
			delivered, err := s.sendTo(gctx, userID, card)
			if err != nil {
				s.logger.Error("failed to send number of the day",
					zap.Int64("user_id", userID),
					zap.Error(err))
				return nil
			}
			if delivered {
				sent.Add(1)
			}
			return nil
		})
	}

	// Per-recipient errors are logged above, so Wait only reports cancellation.
	_ = g.Wait()

	return int(sent.Load()), ctx.Err()
}

func (s *DailyService) sendTo(ctx context.Context, userID int64, card entities.Card) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return false, nil
	}

	if err := s.notifier.SendDailyNumber(ctx, user.ID, user.ChatID, card); err != nil {
		return false, err
	}
	return true, nil
}
