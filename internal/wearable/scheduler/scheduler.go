package scheduler

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"cyclesense-backend/internal/wearable/repository"
	"cyclesense-backend/internal/wearable/usecase"
	"cyclesense-backend/pkg/ultrahuman"
)

// AutoSyncScheduler periodically pulls the last week of metrics for every
// user with a linked wearable.
type AutoSyncScheduler struct {
	tokenRepo       repository.TokenRepository
	wearableUsecase usecase.WearableUsecase
	interval        time.Duration
	stopChan        chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

func NewAutoSyncScheduler(tokenRepo repository.TokenRepository, wearableUsecase usecase.WearableUsecase, interval time.Duration) *AutoSyncScheduler {
	return &AutoSyncScheduler{
		tokenRepo:       tokenRepo,
		wearableUsecase: wearableUsecase,
		interval:        interval,
		stopChan:        make(chan struct{}),
		now:             time.Now,
	}
}

// Start begins the scheduler loop. A non-positive interval disables it.
func (s *AutoSyncScheduler) Start() {
	if s.interval <= 0 {
		log.Println("[AutoSync] interval not set, scheduler disabled")
		return
	}

	log.Printf("[AutoSync] starting wearable auto-sync (interval: %s)", s.interval)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.RunOnce(context.Background())
			case <-s.stopChan:
				log.Println("[AutoSync] scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *AutoSyncScheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

// RunOnce syncs every linked user sequentially and returns how many
// succeeded. A rejected token gets one forced refresh and retry.
func (s *AutoSyncScheduler) RunOnce(ctx context.Context) int {
	userIDs, err := s.tokenRepo.ListUserIDs()
	if err != nil {
		log.Printf("[AutoSync] error listing linked users: %v", err)
		return 0
	}

	synced := 0
	for _, userID := range userIDs {
		if err := s.syncUser(ctx, userID); err != nil {
			log.Printf("[AutoSync] sync failed for user %s: %v", userID, err)
			continue
		}
		synced++
	}

	if len(userIDs) > 0 {
		log.Printf("[AutoSync] synced %d of %d linked users", synced, len(userIDs))
	}
	return synced
}

func (s *AutoSyncScheduler) syncUser(ctx context.Context, userID string) error {
	_, err := s.wearableUsecase.Sync(ctx, userID, s.now())
	if !errors.Is(err, ultrahuman.ErrTokenExpired) {
		return err
	}

	if err := s.wearableUsecase.ForceRefresh(ctx, userID); err != nil {
		return err
	}
	_, err = s.wearableUsecase.Sync(ctx, userID, s.now())
	return err
}
